// Package cache stores rendered recipes between reads.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a byte-oriented key/value cache with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New picks the store named by driver: "memory", "redis" or "none".
func New(driver, redisURL string) (Store, error) {
	switch driver {
	case "memory", "":
		return NewMemory(10 * time.Minute), nil
	case "redis":
		return NewRedis(redisURL)
	case "none":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unsupported CACHE_DRIVER %q", driver)
	}
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                  { return nil }
func (Noop) Close() error                                             { return nil }
