package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// GetTyped reads key as a T. The in-memory cache hands back the stored value
// as-is; Redis hands back decoded JSON, which is re-decoded into T.
func GetTyped[T any](c CacheInterface, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	raw, found := c.Get(key)
	if !found {
		return zero, false
	}
	if v, ok := raw.(T); ok {
		return v, true
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, false
	}
	return out, true
}

// GetOrLoad is the typed form of GetOrSet. A nil cache always calls loader.
func GetOrLoad[T any](c CacheInterface, key string, duration time.Duration, loader func() (T, error)) (T, bool, error) {
	if v, ok := GetTyped[T](c, key); ok {
		return v, true, nil
	}

	v, err := loader()
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("cache loader for %s: %w", key, err)
	}
	if c != nil {
		c.Set(key, v, duration)
	}
	return v, false, nil
}
