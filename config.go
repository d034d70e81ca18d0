package obscache

import (
	"fmt"
	"time"

	"github.com/goelayush89/go-obscache/eviction"
)

type Strategy string

const (
	StrategyFIFO   Strategy = "fifo"
	StrategyLRU    Strategy = "lru"
	StrategyExpire Strategy = "expire"
)

// Config selects a cache variant and its stale policy. FIFO and LRU are
// bounded by Capacity; Expire drops entries untouched for longer than
// ExpireAfter and ignores Capacity.
type Config struct {
	Strategy    Strategy
	Capacity    int
	ExpireAfter time.Duration
}

// DefaultConfig is an LRU cache of 1000 entries.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyLRU,
		Capacity: 1000,
	}
}

// Validate reports an error wrapping ErrInvalidConfig when c cannot build
// a cache.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyFIFO, StrategyLRU:
		if c.Capacity <= 0 {
			return fmt.Errorf("%w: capacity must be positive for %s", ErrInvalidConfig, c.Strategy)
		}
	case StrategyExpire:
		if c.ExpireAfter < 0 {
			return fmt.Errorf("%w: ExpireAfter cannot be negative", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}
	return nil
}

// New builds the cache described by cfg with its stale policy installed.
// A bad configuration is rejected here, never on first use.
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case StrategyFIFO:
		c := NewFIFO(opts...)
		c.SetStalePolicy(eviction.Capacity[K, V](c.Len, cfg.Capacity))
		return c, nil
	case StrategyLRU:
		c := NewLRU(opts...)
		c.SetStalePolicy(eviction.Capacity[K, V](c.Len, cfg.Capacity))
		return c, nil
	default:
		c := NewTimeAware(opts...)
		c.SetExpirePolicy(cfg.ExpireAfter)
		return c, nil
	}
}

// MustNew is like New but panics on an invalid configuration.
func MustNew[K comparable, V any](cfg Config, opts ...Option[K, V]) Cache[K, V] {
	c, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithCapacity builds a FIFO or LRU cache holding at most capacity
// entries.
func NewWithCapacity[K comparable, V any](strategy Strategy, capacity int, opts ...Option[K, V]) (Cache[K, V], error) {
	if strategy == StrategyExpire {
		return nil, fmt.Errorf("%w: %s is not capacity bounded", ErrUnknownStrategy, strategy)
	}
	return New(Config{Strategy: strategy, Capacity: capacity}, opts...)
}

// NewWithExpiration builds a cache that drops entries not read or written
// for longer than ttl.
func NewWithExpiration[K comparable, V any](ttl time.Duration, opts ...Option[K, V]) (*TimeAware[K, V], error) {
	if err := (Config{Strategy: StrategyExpire, ExpireAfter: ttl}).Validate(); err != nil {
		return nil, err
	}
	c := NewTimeAware(opts...)
	c.SetExpirePolicy(ttl)
	return c, nil
}
