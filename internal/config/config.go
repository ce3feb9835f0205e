// Package config loads tarjetitas settings from defaults, a YAML file, .env,
// TARJETITAS_* environment variables and command-line flags, in that order.
package config

import (
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"tarjetitas/internal/domain"
)

// Storage drivers
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

const (
	DefaultDataDir   = "~/.local/share/tarjetitas"
	DefaultServeAddr = "127.0.0.1:8080"
	DefaultLogFile   = "tarjetitas.log"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `koanf:"storage" yaml:"storage"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Notify  NotifyConfig  `koanf:"notify" yaml:"notify"`
	Serve   ServeConfig   `koanf:"serve" yaml:"serve"`
	Image   ImageConfig   `koanf:"image" yaml:"image"`
	Grid    GridConfig    `koanf:"grid" yaml:"grid"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Serve.Validate(); err != nil {
		return err
	}
	if err := c.Image.Validate(); err != nil {
		return err
	}
	return c.Grid.Validate()
}

// StorageConfig selects where the deck state lives.
type StorageConfig struct {
	Driver string `koanf:"driver" yaml:"driver"`
	Dir    string `koanf:"dir" yaml:"dir"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverJSON, DriverSQLite)),
		validation.Field(&c.Dir, validation.Required),
	)
}

// DataDir returns Dir with a leading ~ expanded.
func (c *StorageConfig) DataDir() string {
	return ExpandHome(c.Dir)
}

// LogConfig holds logging configuration.
//
// File is only used by the terminal UI, which owns stdout and stderr. An empty
// File means tarjetitas.log inside the data directory.
type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

// NotifyConfig toggles desktop notifications.
type NotifyConfig struct {
	Desktop bool `koanf:"desktop" yaml:"desktop"`
}

// ServeConfig holds HTTP server configuration.
type ServeConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// Validate validates the HTTP configuration.
func (c *ServeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
	)
}

// ImageConfig bounds images embedded in cards.
type ImageConfig struct {
	MaxDimension int   `koanf:"max_dimension" yaml:"max_dimension"`
	MaxBytes     int64 `koanf:"max_bytes" yaml:"max_bytes"`
	Quality      int   `koanf:"quality" yaml:"quality"`
}

// Validate validates the image configuration.
func (c *ImageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxDimension, validation.Required, validation.Min(16)),
		validation.Field(&c.MaxBytes, validation.Required, validation.Min(int64(1024))),
		validation.Field(&c.Quality, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// GridConfig holds the dimension ranges the front ends accept.
type GridConfig struct {
	MinRows int `koanf:"min_rows" yaml:"min_rows"`
	MaxRows int `koanf:"max_rows" yaml:"max_rows"`
	MinCols int `koanf:"min_cols" yaml:"min_cols"`
	MaxCols int `koanf:"max_cols" yaml:"max_cols"`
}

// Validate validates the grid configuration.
func (c *GridConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MinRows, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxRows, validation.Required, validation.Min(c.MinRows)),
		validation.Field(&c.MinCols, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxCols, validation.Required, validation.Min(c.MinCols)),
	)
}

// Limits converts the configured ranges to domain limits.
func (c *GridConfig) Limits() domain.GridLimits {
	return domain.GridLimits{
		MinRows: c.MinRows,
		MaxRows: c.MaxRows,
		MinCols: c.MinCols,
		MaxCols: c.MaxCols,
	}
}

// LogFile returns the log file path, defaulting into the data directory.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return ExpandHome(c.Log.File)
	}
	return filepath.Join(c.Storage.DataDir(), DefaultLogFile)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	limits := domain.DefaultGridLimits()
	return &Config{
		Storage: StorageConfig{
			Driver: DriverJSON,
			Dir:    DefaultDataDir,
		},
		Log: LogConfig{
			Level: "info",
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
		Image: ImageConfig{
			MaxDimension: 1920,
			MaxBytes:     1 << 20,
			Quality:      85,
		},
		Grid: GridConfig{
			MinRows: limits.MinRows,
			MaxRows: limits.MaxRows,
			MinCols: limits.MinCols,
			MaxCols: limits.MaxCols,
		},
	}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
