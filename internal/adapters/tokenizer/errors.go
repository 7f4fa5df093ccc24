package tokenizer

import "errors"

// Structural failures. Anything else found while reading is reported as a Table warning.
var (
	ErrUnsupportedFormat = errors.New("unsupported slate format")
	ErrUnreadable        = errors.New("slate is unreadable")
)
