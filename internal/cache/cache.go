// Package cache provides the read-through cache used by the beer service.
//
// Entries live in a sturdyc client. Every key handed out is remembered in a
// registry so that whole key families (for example every cached list page)
// can be dropped after a write. Keys sturdyc has evicted or expired are
// swept from the registry once it grows past twice the cache capacity.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viccon/sturdyc"
)

// KeySeparator joins cache key segments.
const KeySeparator = "::"

// Config holds the sturdyc sizing options.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

// DefaultConfig returns the sizing used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be greater than 0, got %d", c.Capacity)
	}
	if c.NumShards <= 0 {
		return fmt.Errorf("cache shards must be greater than 0, got %d", c.NumShards)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache ttl must be greater than 0, got %s", c.TTL)
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return fmt.Errorf("cache eviction percentage must be between 1 and 100, got %d", c.EvictionPercentage)
	}
	return nil
}

// Store is a read-through cache with prefix invalidation.
type Store struct {
	client *sturdyc.Client[any]
	keys   sync.Map
	// number of entries in keys
	tracked  atomic.Int64
	sweepAt  int64
	sweeping sync.Mutex
}

// New builds a Store from cfg.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		client:  sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage),
		sweepAt: 2 * int64(cfg.Capacity),
	}, nil
}

// Key builds a cache key from its segments.
func Key(parts ...any) string {
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = fmt.Sprint(p)
	}
	return strings.Join(segments, KeySeparator)
}

// GetOrFetch returns the cached value for key, calling fetch on a miss.
// Errors returned by fetch are passed through and never cached.
func GetOrFetch[T any](ctx context.Context, s *Store, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	s.track(key)
	value, err := s.client.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	// a sweep may have run while fetch was in flight
	s.track(key)
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T", key, value)
	}
	return typed, nil
}

// Delete drops a single key.
func (s *Store) Delete(key string) {
	s.client.Delete(key)
	s.untrack(key)
}

// DeletePrefix drops every key starting with prefix and reports how many
// live entries were removed. Registered keys sturdyc no longer holds are
// forgotten along the way.
func (s *Store) DeletePrefix(prefix string) int {
	removed := 0
	s.keys.Range(func(k, _ any) bool {
		key := k.(string)
		if !strings.HasPrefix(key, prefix) {
			return true
		}
		if _, ok := s.client.Get(key); ok {
			s.client.Delete(key)
			removed++
		}
		s.untrack(key)
		return true
	})
	return removed
}

// Tracked returns the number of keys in the invalidation registry.
func (s *Store) Tracked() int {
	return int(s.tracked.Load())
}

func (s *Store) track(key string) {
	if _, loaded := s.keys.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	if s.tracked.Add(1) > s.sweepAt {
		s.sweep()
	}
}

func (s *Store) untrack(key string) {
	if _, loaded := s.keys.LoadAndDelete(key); loaded {
		s.tracked.Add(-1)
	}
}

// sweep forgets every registered key that is no longer cached.
func (s *Store) sweep() {
	if !s.sweeping.TryLock() {
		return
	}
	defer s.sweeping.Unlock()

	s.keys.Range(func(k, _ any) bool {
		key := k.(string)
		if _, ok := s.client.Get(key); !ok {
			s.untrack(key)
		}
		return true
	})
}

// Size returns the number of live entries.
func (s *Store) Size() int {
	return s.client.Size()
}
