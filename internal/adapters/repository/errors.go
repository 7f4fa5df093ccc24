package repository

import "errors"

// Sentinel kinds for slot errors.
var (
	ErrNotFound = errors.New("slot is empty")
	ErrEncode   = errors.New("encode slot")
	ErrDecode   = errors.New("decode slot")
	ErrClosed   = errors.New("store is closed")
)
