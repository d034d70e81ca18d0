package filecache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader reads the contents of a file on a cache miss.
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

type LoaderFunc func(ctx context.Context, path string) (string, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// DiskLoader reads from the local filesystem.
type DiskLoader struct{}

func (DiskLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// retryLoader collapses concurrent misses for the same path into one read
// and retries failed reads a bounded number of times.
type retryLoader struct {
	source   Loader
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
	group    singleflight.Group

	// done ends in-flight reads when the cache closes.
	done context.Context
}

// Load joins or starts the shared read of path. The read is detached from
// ctx so one caller giving up does not fail the others waiting on it.
func (r *retryLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := r.group.DoChan(path, func() (any, error) {
		loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(r.done, cancel)
		defer stop()
		return r.loadWithRetry(loadCtx, path)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Shared {
			r.logger.Debug("filecache: shared load", "path", path)
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (r *retryLoader) loadWithRetry(ctx context.Context, path string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		contents, err := r.source.Load(ctx, path)
		if err == nil {
			return contents, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		lastErr = err
		r.logger.Debug("filecache: read failed", "path", path, "attempt", attempt, "err", err)

		if attempt == r.attempts {
			break
		}
		timer := time.NewTimer(r.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, r.attempts, lastErr)
}

var (
	_ Loader = DiskLoader{}
	_ Loader = LoaderFunc(nil)
	_ Loader = (*retryLoader)(nil)
)
