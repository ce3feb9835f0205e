package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Driver != DriverJSON {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.Image.MaxDimension != 1920 || cfg.Image.MaxBytes != 1<<20 {
		t.Errorf("image = %+v", cfg.Image)
	}
	limits := cfg.Grid.Limits()
	if limits.MinRows != 2 || limits.MaxRows != 8 || limits.MinCols != 2 || limits.MaxCols != 6 {
		t.Errorf("limits = %+v", limits)
	}
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfgFile := writeFile(t, dir, "config.yaml", `
storage:
  driver: sqlite
  dir: /tmp/from-file
log:
  level: debug
image:
  quality: 70
`)
	envFile := writeFile(t, dir, ".env", "TARJETITAS_SERVE_ADDR=127.0.0.1:9999\n")
	t.Setenv("TARJETITAS_IMAGE_MAX_DIMENSION", "800")
	// godotenv never overrides a set variable; Setenv registers the cleanup
	t.Setenv("TARJETITAS_SERVE_ADDR", "")
	os.Unsetenv("TARJETITAS_SERVE_ADDR")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--data-dir", "/tmp/from-flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{File: cfgFile, EnvFile: envFile, Flags: flags})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"file value", cfg.Storage.Driver, "sqlite"},
		{"flag overrides file", cfg.Storage.Dir, "/tmp/from-flag"},
		{"unchanged flag keeps file value", cfg.Log.Level, "debug"},
		{"env overrides default", cfg.Image.MaxDimension, 800},
		{"dotenv value", cfg.Serve.Addr, "127.0.0.1:9999"},
		{"file keeps untouched defaults", cfg.Image.MaxBytes, int64(1 << 20)},
		{"file partial section", cfg.Image.Quality, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "storage:\n  driver: postgres\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"quality out of range", "image:\n  quality: 101\n"},
		{"inverted rows", "grid:\n  min_rows: 5\n  max_rows: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			if _, err := Load(Options{File: path}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TARJETITAS_STORAGE_DRIVER", "storage.driver"},
		{"TARJETITAS_IMAGE_MAX_BYTES", "image.max_bytes"},
		{"TARJETITAS_GRID_MIN_ROWS", "grid.min_rows"},
		{"TARJETITAS_CONFIG", "config"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	if err := WriteDefault(path, false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("expected ErrConfigExists, got %v", err)
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}

	cfg, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("addr = %q", cfg.Serve.Addr)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	if _, err := ParseLevel("warn"); err != nil {
		t.Errorf("warn rejected: %v", err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
