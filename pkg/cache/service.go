package cache

import "time"

// CacheService is the process-local cache shared by the settings, dashboard and client state layers.
type CacheService interface {
	// Get returns the value and true, or nil and false when absent or expired.
	Get(key string) (interface{}, bool)

	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)

	// DeletePrefix removes every key that starts with prefix.
	DeletePrefix(prefix string)

	Flush()
}
