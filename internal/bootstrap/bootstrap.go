// Package bootstrap wires configuration to the storage driver, the deck store and
// the shared adapters used by every binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tarjetitas/internal/adapters/imaging"
	"tarjetitas/internal/adapters/jsonfile"
	"tarjetitas/internal/adapters/notify"
	"tarjetitas/internal/adapters/sqlite"
	"tarjetitas/internal/application"
	"tarjetitas/internal/config"
	"tarjetitas/internal/ports"
)

// ErrWatchUnsupported is returned by Watch when the storage driver cannot report changes
var ErrWatchUnsupported = errors.New("storage driver does not support watching")

// Runtime holds the long-lived collaborators built from a Config
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	Storage  ports.StateStorage
	Store    *application.DeckStore
	Notifier *notify.Dispatcher
}

// OpenStorage opens the storage driver selected by cfg
func OpenStorage(cfg *config.Config, logger *slog.Logger) (ports.StateStorage, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dir := cfg.Storage.DataDir()
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.Open(dir)
	case config.DriverJSON, "":
		return jsonfile.New(dir, logger.With(slog.String("component", "storage")))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Open builds the runtime and hydrates the deck store
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	storage, err := OpenStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	store := application.NewDeckStore(storage,
		application.WithLogger(logger.With(slog.String("component", "store"))))
	if err := store.Hydrate(ctx); err != nil {
		storage.Close()
		return nil, err
	}

	logger.Debug("runtime ready",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("dir", cfg.Storage.DataDir()))

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Storage:  storage,
		Store:    store,
		Notifier: notify.NewDispatcher(logger, cfg.Notify.Desktop),
	}, nil
}

// Encoder returns the image encoder configured for inline images
func (r *Runtime) Encoder() *imaging.Encoder {
	img := r.Config.Image
	return imaging.NewEncoder(img.MaxDimension, img.MaxBytes, img.Quality)
}

// Watch re-hydrates the store whenever another process changes the persisted deck.
// It blocks until ctx is cancelled.
func (r *Runtime) Watch(ctx context.Context) error {
	w, ok := r.Storage.(ports.StateWatcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return w.Watch(ctx, application.StorageKey, func() {
		if err := r.Store.Hydrate(ctx); err != nil {
			r.Logger.Warn("failed to reload deck", slog.String("error", err.Error()))
			return
		}
		r.Logger.Info("deck reloaded after external change")
	})
}

// Close releases the storage
func (r *Runtime) Close() error {
	return r.Storage.Close()
}
