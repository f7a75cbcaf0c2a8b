package config

import "time"

// CacheConfig defines settings for the public flight-list cache.  Only
// safe idempotent reads are cached; the booking path never goes through
// the cache.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads cache settings from the environment.  The short
// default TTL keeps derived selling states (e.g. FULLY_BOOKED) from
// lagging too far behind committed bookings.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 30*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}
