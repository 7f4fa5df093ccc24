package service

import "errors"

// Sentinel kinds returned by the service.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoSlate    = errors.New("no slate uploaded")
	ErrTooLarge   = errors.New("slate too large")
)
