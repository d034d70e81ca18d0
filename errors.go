package obscache

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrUnknownStrategy = fmt.Errorf("%w: unknown cache strategy", ErrInvalidConfig)
)
