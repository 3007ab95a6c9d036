package cache

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"
)

const keyPrefix = "resume:text:"

type Config struct {
    Addr     string
    Password string
    DB       int
    TTL      time.Duration
}

// RedisCache stores extracted text keyed by a SHA-256 of the document bytes
// and its MIME type.
type RedisCache struct {
    client *redis.Client
    ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg *Config) (*RedisCache, error) {
    client := redis.NewClient(&redis.Options{
        Addr:     cfg.Addr,
        Password: cfg.Password,
        DB:       cfg.DB,
    })

    if err := client.Ping(ctx).Err(); err != nil {
        client.Close()
        return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
    }

    return NewRedisCacheWithClient(client, cfg.TTL), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
    return &RedisCache{client: client, ttl: ttl}
}

// Key returns the Redis key for a document.
func Key(content []byte, mimeType string) string {
    sum := sha256.Sum256(content)
    return keyPrefix + hex.EncodeToString(sum[:]) + ":" + mimeType
}

func (c *RedisCache) Get(ctx context.Context, content []byte, mimeType string) (string, bool, error) {
    text, err := c.client.Get(ctx, Key(content, mimeType)).Result()
    if errors.Is(err, redis.Nil) {
        return "", false, nil
    }
    if err != nil {
        return "", false, fmt.Errorf("failed to get cached text: %w", err)
    }
    return text, true, nil
}

func (c *RedisCache) Set(ctx context.Context, content []byte, mimeType string, text string) error {
    if err := c.client.Set(ctx, Key(content, mimeType), text, c.ttl).Err(); err != nil {
        return fmt.Errorf("failed to cache text: %w", err)
    }
    return nil
}

func (c *RedisCache) Close() error {
    return c.client.Close()
}
