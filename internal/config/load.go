package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides, e.g. TARJETITAS_STORAGE_DRIVER
const EnvPrefix = "TARJETITAS_"

// FlagKeys maps command-line flag names to config keys
var FlagKeys = map[string]string{
	"driver":    "storage.driver",
	"data-dir":  "storage.dir",
	"log-level": "log.level",
	"log-file":  "log.file",
	"notify":    "notify.desktop",
	"addr":      "serve.addr",
}

// Options controls where Load looks for settings
type Options struct {
	// File is an explicit config path; it must exist when set.
	File string
	// EnvFile is a dotenv file loaded into the environment when present.
	EnvFile string
	// Flags are applied last; only flags named in FlagKeys and changed by the user count.
	Flags *pflag.FlagSet
}

// DefaultFile returns the per-user config path
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ExpandHome("~/.config/tarjetitas/config.yaml")
	}
	return filepath.Join(dir, "tarjetitas", "config.yaml")
}

// Load builds the configuration from defaults, file, .env, environment and flags.
func Load(opts Options) (*Config, error) {
	cfg := NewDefaultConfig()
	k := koanf.New(".")

	path, required := opts.File, true
	if path == "" {
		path, required = DefaultFile(), false
	}
	path = ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if opts.Flags != nil {
		p := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("failed to read flags: %w", err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// envKey maps TARJETITAS_IMAGE_MAX_DIMENSION to image.max_dimension
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + rest
}
