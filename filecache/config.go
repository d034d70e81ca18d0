package filecache

import (
	"fmt"
	"time"

	obscache "github.com/goelayush89/go-obscache"
)

type Config struct {
	// Cache selects the eviction strategy and its bound.
	Cache obscache.Config
	// CleanupInterval runs a stale pass in the background. Zero disables
	// it; stale entries are then only dropped on Get and Put.
	CleanupInterval time.Duration
	// Watch drops cached files whose contents change on disk, and files
	// that are removed or renamed.
	Watch bool
	// MaxAttempts bounds disk reads per miss. A missing file is never retried.
	MaxAttempts        int
	RetryBackoff       time.Duration
	PreloadConcurrency int
}

func DefaultConfig() Config {
	return Config{
		Cache:              obscache.DefaultConfig(),
		CleanupInterval:    0,
		Watch:              false,
		MaxAttempts:        3,
		RetryBackoff:       50 * time.Millisecond,
		PreloadConcurrency: 8,
	}
}

func (c Config) Validate() error {
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("%w: CleanupInterval cannot be negative", obscache.ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: MaxAttempts must be at least 1", obscache.ErrInvalidConfig)
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("%w: RetryBackoff cannot be negative", obscache.ErrInvalidConfig)
	}
	if c.PreloadConcurrency < 1 {
		return fmt.Errorf("%w: PreloadConcurrency must be at least 1", obscache.ErrInvalidConfig)
	}
	return nil
}
