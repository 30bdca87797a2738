package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig defines settings for the public promotion listing cache.
// When Enabled is false or no Redis client could be constructed, the
// listing is computed against the store on every request. TTL bounds how
// stale a cached listing may be; Prefix namespaces the single cache key.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set: enabled, 300s TTL,
// "promo" prefix.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "300s")),
		Prefix:  getenv("CACHE_PREFIX", "promo"),
	}
}

// Helper functions shared with redis.go and ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 300 * time.Second
	}
	return d
}
