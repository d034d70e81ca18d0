package filecache

import "errors"

var (
	ErrClosed           = errors.New("file cache is closed")
	ErrNotFound         = errors.New("file not found")
	ErrRetriesExhausted = errors.New("file read retries exhausted")
)
