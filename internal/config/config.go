// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config holding every default.
// - Load layers a YAML file and DFSVIZ_* environment variables on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"

	"github.com/okian/dfsviz/internal/domain/imageref"
)

// Storage drivers understood by the service.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// NameCorrection maps a raw roster name on a team to the display name used for headshots.
type NameCorrection struct {
	Name    string `koanf:"name"`
	Team    string `koanf:"team"`
	Display string `koanf:"display"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StorageDriver selects the slot store: memory or sqlite.
	StorageDriver string `koanf:"storage_driver"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// StorageSlot names the single persisted slot.
	StorageSlot string `koanf:"storage_slot"`

	// MaxUploadBytes caps the size of an uploaded slate.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// PageSize is the default table page size; MaxPageSize caps ?page_size.
	PageSize    int `koanf:"page_size"`
	MaxPageSize int `koanf:"max_page_size"`

	// HeadshotBasePath prefixes local headshot image paths.
	HeadshotBasePath string `koanf:"headshot_base_path"`

	// TeamLogoTemplate is a fmt template taking the uppercased team abbreviation.
	TeamLogoTemplate string `koanf:"team_logo_template"`

	// NameCorrections strips roster suffixes the headshot library does not carry.
	NameCorrections []NameCorrection `koanf:"name_corrections"`
}

// DefaultNameCorrections are the corrections shipped with the service.
func DefaultNameCorrections() []NameCorrection {
	builtin := imageref.DefaultCorrections()
	out := make([]NameCorrection, 0, len(builtin))
	for _, c := range builtin {
		out = append(out, NameCorrection{Name: c.Name, Team: c.Team, Display: c.Display})
	}
	return out
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		StorageDriver:    DriverMemory,
		SQLitePath:       "dfsviz.db",
		StorageSlot:      "nflDfsUploadedData",
		MaxUploadBytes:   10 << 20,
		PageSize:         25,
		MaxPageSize:      500,
		HeadshotBasePath: "/nfl-dfs/headshots",
		TeamLogoTemplate: "https://a.espncdn.com/i/teamlogos/nfl/500/%s.png",
		NameCorrections:  DefaultNameCorrections(),
	}
}

// Corrections returns the name-correction table keyed by "name|team".
func (c *Config) Corrections(_ context.Context) map[string]string {
	cs := make([]imageref.Correction, 0, len(c.NameCorrections))
	for _, nc := range c.NameCorrections {
		cs = append(cs, imageref.Correction{Name: nc.Name, Team: nc.Team, Display: nc.Display})
	}
	return imageref.CorrectionTable(cs)
}
