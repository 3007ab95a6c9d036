package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), &Config{Addr: mr.Addr(), TTL: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	content := []byte("%PDF-1.4 fake")

	_, ok, err := c.Get(ctx, content, "application/pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, content, "application/pdf", "Jane Doe\nEngineer"))

	text, ok, err := c.Get(ctx, content, "application/pdf")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe\nEngineer", text)

	assert.Equal(t, time.Hour, mr.TTL(Key(content, "application/pdf")))
}

func TestRedisCacheKeyIncludesMimeType(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	content := []byte("Hello world")

	require.NoError(t, c.Set(ctx, content, "text/plain", "Hello world"))

	_, ok, err := c.Get(ctx, content, "application/pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	content := []byte("Hello world")

	require.NoError(t, c.Set(ctx, content, "text/plain", "Hello world"))
	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Get(ctx, content, "text/plain")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	k := Key([]byte("abc"), "text/plain")
	assert.Equal(t, "resume:text:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad:text/plain", k)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, &Config{Addr: addr})
	assert.Error(t, err)
}
