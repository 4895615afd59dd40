// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and env vars on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Store drivers understood by the repository package.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// PublicURL is the externally reachable base URL, used for share links.
	PublicURL string `koanf:"public_url"`

	// StoreDriver selects the session store: memory, sqlite or json.
	StoreDriver string `koanf:"store_driver"`

	// StorePath is the sqlite database file or the json directory.
	StorePath string `koanf:"store_path"`

	// SeedDates are created as empty sessions on startup when missing.
	SeedDates []string `koanf:"seed_dates"`

	// QRSize is the edge length in pixels of rendered share QR codes.
	QRSize int `koanf:"qr_size"`
}

// New returns a Config populated with defaults. The context is reserved
// for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":9080",
		PublicURL:   "http://localhost:9080",
		StoreDriver: StoreMemory,
		StorePath:   "",
		SeedDates:   nil,
		QRSize:      256,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QRSize <= 0:
		return fmt.Errorf("%w: qr_size must be positive", ErrInvalidConfig)
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreSQLite, StoreJSON:
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("%w: store_path is required for the %s store", ErrInvalidConfig, c.StoreDriver)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}
	return nil
}
