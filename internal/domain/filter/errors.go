package filter

import "errors"

// Sentinel kinds for query errors.
var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrInvalidDirection = errors.New("invalid sort direction")
)
