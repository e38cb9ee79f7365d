package common

import (
	"log"
	"os"
	"strings"
)

// NewCacheFromEnv selects the cache backend from CACHE_BACKEND: "redis"
// uses the shared Redis instance, anything else the in-process cache.
// A failed Redis connection falls back to in-process so the service
// still comes up.
func NewCacheFromEnv(defaultExpirationSeconds, cleanUpIntervalSeconds int) CacheInterface {
	if strings.EqualFold(os.Getenv("CACHE_BACKEND"), "redis") {
		redisCache, err := NewRedisCacheService()
		if err == nil {
			return redisCache
		}
		log.Printf("[Cache] Redis backend unavailable, using in-process cache: %v", err)
	}

	return NewCacheService(defaultExpirationSeconds, cleanUpIntervalSeconds)
}
