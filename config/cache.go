package config

import "time"

const (
	DefaultCacheTTLSeconds         = 7 * 24 * 3600
	DefaultCacheNegativeTTLSeconds = 60
)

// Cache sets how long favourite answers stay cached. Negative answers get
// the shorter NegativeTTLSeconds.
type Cache struct {
	TTLSeconds         int `json:"ttl_seconds" yaml:"ttl_seconds"`
	NegativeTTLSeconds int `json:"negative_ttl_seconds" yaml:"negative_ttl_seconds"`
}

func (c *Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c *Cache) NegativeTTL() time.Duration {
	if c.NegativeTTLSeconds <= 0 {
		return min(c.TTL(), DefaultCacheNegativeTTLSeconds*time.Second)
	}
	return time.Duration(c.NegativeTTLSeconds) * time.Second
}

func ProvideCacheConfig(cfg *Config) *Cache {
	return cfg.Cache
}
