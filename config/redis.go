package config

import (
	"os"
	"sync"
	"time"
)

var (
	cacheOnce   sync.Once
	cacheConfig *CacheConfig
)

// CacheConfig configures the Redis extraction cache. An empty RedisAddr
// disables caching.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

func (c *CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

func GetCacheConfig() *CacheConfig {
	cacheOnce.Do(func() {
		cacheConfig = newCacheConfig(getSettings())
	})
	return cacheConfig
}

func newCacheConfig(s *settings) *CacheConfig {
	return &CacheConfig{
		RedisAddr:     s.String("REDIS_ADDR", s.file.Cache.RedisAddr, ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       s.Int("REDIS_DB", s.file.Cache.RedisDB, 0),
		TTL:           s.Duration("CACHE_TTL", s.file.Cache.TTL, 24*time.Hour),
	}
}
