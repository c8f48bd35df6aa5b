package config

import "time"

// CacheConfig defines settings for the rotation response cache.
// Caching is restricted to GET endpoints whose payload is a pure
// function of the query (the rotation lookup); seat and pool views
// must always be computed fresh and are never cached.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads CACHE_* environment variables with defaults.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 5*time.Minute),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
