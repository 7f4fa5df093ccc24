// Package sampledata generates synthetic DFS slates and submits them to a
// running server. It backs the sample command and end-to-end checks.
package sampledata

import (
	"errors"
	"fmt"
	"time"
)

// Style selects the header set written for a slate.
type Style string

// Header styles.
const (
	// StyleDK mirrors a DraftKings salary export with projection columns appended.
	StyleDK Style = "dk"

	// StyleExport uses the snake_case keys the server itself emits.
	StyleExport Style = "export"
)

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("invalid sample config")
	ErrUpload        = errors.New("upload failed")
)

// Config holds configuration for slate generation and submission.
type Config struct {
	Players     int           // Number of player rows
	Seed        uint64        // Seed for the deterministic generator
	Style       Style         // Header style
	MissingRate float64       // Share of numeric cells left blank, 0..1
	BaseURL     string        // Base URL of the server for Upload
	Timeout     time.Duration // HTTP request timeout
}

// DefaultConfig returns the settings used by the sample command.
func DefaultConfig() Config {
	return Config{
		Players:     120,
		Seed:        1,
		Style:       StyleDK,
		MissingRate: 0.02,
		BaseURL:     "http://localhost:9080",
		Timeout:     30 * time.Second,
	}
}

// Validate checks the generation settings.
func (c Config) Validate() error {
	switch {
	case c.Players < 0:
		return fmt.Errorf("%w: players must not be negative", ErrInvalidConfig)
	case c.Style != StyleDK && c.Style != StyleExport:
		return fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, c.Style)
	case c.MissingRate < 0 || c.MissingRate > 1:
		return fmt.Errorf("%w: missing rate must be within 0..1", ErrInvalidConfig)
	}
	return nil
}
