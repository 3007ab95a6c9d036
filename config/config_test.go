package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsWith(file FileConfig, env map[string]string) *settings {
	s := newSettings(file)
	s.lookup = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return s
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	s := settingsWith(FileConfig{}, nil)

	server := newServerConfig(s)
	assert.Equal(t, ":8080", server.Addr)
	assert.Equal(t, 5*time.Second, server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, server.AllowedOrigins)

	logCfg := newLogConfig(s)
	assert.Equal(t, "info", logCfg.Level)
	assert.Equal(t, "json", logCfg.Encoding)
	assert.Equal(t, []string{"stdout", "logs/app.log"}, logCfg.OutputPaths)
	assert.False(t, logCfg.Development)

	cache := newCacheConfig(s)
	assert.False(t, cache.Enabled())
	assert.Equal(t, 24*time.Hour, cache.TTL)

	tx := newTextractConfig(s)
	assert.False(t, tx.Enabled)
	assert.Equal(t, float32(80), tx.MinConfidence)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  addr: ":9090"
  shutdownTimeout: 10s
  allowedOrigins: ["https://jobs.example.com"]
log:
  level: debug
  encoding: console
  outputPaths: [stderr]
  development: true
cache:
  redisAddr: localhost:6379
  redisDB: 2
  ttl: 1h
textract:
  enabled: true
  region: eu-west-1
  minConfidence: 90
`)

	file, err := ReadFile(path)
	require.NoError(t, err)
	s := settingsWith(*file, nil)

	server := newServerConfig(s)
	assert.Equal(t, ":9090", server.Addr)
	assert.Equal(t, 10*time.Second, server.ShutdownTimeout)
	assert.Equal(t, []string{"https://jobs.example.com"}, server.AllowedOrigins)

	logCfg := newLogConfig(s)
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "console", logCfg.Encoding)
	assert.Equal(t, []string{"stderr"}, logCfg.OutputPaths)
	assert.True(t, logCfg.Development)

	cache := newCacheConfig(s)
	assert.True(t, cache.Enabled())
	assert.Equal(t, 2, cache.RedisDB)
	assert.Equal(t, time.Hour, cache.TTL)

	tx := newTextractConfig(s)
	assert.True(t, tx.Enabled)
	assert.Equal(t, "eu-west-1", tx.Region)
	assert.Equal(t, float32(90), tx.MinConfidence)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  addr: ":9090"
cache:
  redisDB: 2
textract:
  enabled: true
`)
	file, err := ReadFile(path)
	require.NoError(t, err)

	s := settingsWith(*file, map[string]string{
		"SERVER_ADDR":          ":7070",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com ,",
		"REDIS_DB":             "5",
		"TEXTRACT_ENABLED":     "false",
		"CACHE_TTL":            "30m",
	})

	server := newServerConfig(s)
	assert.Equal(t, ":7070", server.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, server.AllowedOrigins)
	assert.Equal(t, 5, newCacheConfig(s).RedisDB)
	assert.Equal(t, 30*time.Minute, newCacheConfig(s).TTL)
	assert.False(t, newTextractConfig(s).Enabled)
}

func TestInvalidValuesFallBack(t *testing.T) {
	s := settingsWith(FileConfig{}, map[string]string{
		"SERVER_SHUTDOWN_TIMEOUT": "soon",
		"REDIS_DB":                "two",
		"TEXTRACT_ENABLED":        "maybe",
		"TEXTRACT_MIN_CONFIDENCE": "high",
	})

	assert.Equal(t, 5*time.Second, newServerConfig(s).ShutdownTimeout)
	assert.Equal(t, 0, newCacheConfig(s).RedisDB)
	assert.False(t, newTextractConfig(s).Enabled)
	assert.Equal(t, float32(80), newTextractConfig(s).MinConfidence)
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ReadFile(writeConfigFile(t, "server: [not, a, map"))
	assert.Error(t, err)
}
