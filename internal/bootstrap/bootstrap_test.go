package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tarjetitas/internal/config"
	"tarjetitas/internal/domain"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Storage.Driver = driver
	cfg.Storage.Dir = t.TempDir()
	return cfg
}

func TestOpen_Drivers(t *testing.T) {
	tests := []struct {
		driver string
		file   string
	}{
		{config.DriverJSON, "card-storage.json"},
		{config.DriverSQLite, "tarjetitas.db"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, tt.driver)

			rt, err := Open(ctx, cfg, nil)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if rt.Store.TotalCards() != 48 {
				t.Errorf("TotalCards = %d", rt.Store.TotalCards())
			}
			if err := rt.Store.UpdateCard(ctx, domain.Card{ID: 1, Front: "pan"}); err != nil {
				t.Fatal(err)
			}
			if err := rt.Close(); err != nil {
				t.Fatal(err)
			}
			if _, err := os.Stat(filepath.Join(cfg.Storage.Dir, tt.file)); err != nil {
				t.Errorf("expected %s: %v", tt.file, err)
			}

			again, err := Open(ctx, cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			defer again.Close()
			if c, _ := again.Store.Card(1); c.Front != "pan" {
				t.Errorf("card 1 after reopen = %+v", c)
			}
		})
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := testConfig(t, "redis")
	if _, err := OpenStorage(cfg, nil); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

func TestWatch_UnsupportedDriver(t *testing.T) {
	rt, err := Open(context.Background(), testConfig(t, config.DriverSQLite), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()

	if err := rt.Watch(context.Background()); !errors.Is(err, ErrWatchUnsupported) {
		t.Errorf("got %v, want ErrWatchUnsupported", err)
	}
}

func TestWatch_ReloadsExternalChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t, config.DriverJSON)
	rt, err := Open(ctx, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()

	// A second runtime plays the part of another process
	other, err := Open(ctx, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()

	reloaded := make(chan domain.Deck, 4)
	rt.Store.Subscribe(func(d domain.Deck) { reloaded <- d })

	done := make(chan error, 1)
	go func() { done <- rt.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := other.Store.SetRows(ctx, 3); err != nil {
		t.Fatal(err)
	}

	select {
	case d := <-reloaded:
		if d.Rows != 3 {
			t.Errorf("reloaded rows = %d, want 3", d.Rows)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("store was not reloaded")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}
