package common

import (
	"fmt"
	"time"
)

const redisKeyPrefix = "propdesk:"

// NewCache returns the cache for backend: memory, redis or none. none yields
// a nil CacheInterface, which callers treat as "always load".
func NewCache(backend string, ttl time.Duration, redisAddr, redisPassword string) (CacheInterface, error) {
	switch backend {
	case "memory", "":
		return NewCacheService(ttl, 2*ttl), nil
	case "redis":
		return NewRedisCacheService(NewRedisClient(redisAddr, redisPassword), redisKeyPrefix), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
