package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tarjetitas/internal/ports"
)

const debounce = 150 * time.Millisecond

// Storage keeps each key in <dir>/<key>.json
type Storage struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
	// last bytes written per key, so Watch can ignore our own writes
	written map[string][]byte
}

var (
	_ ports.StateStorage = (*Storage)(nil)
	_ ports.StateWatcher = (*Storage)(nil)
)

// New creates the directory if needed and returns a storage rooted at dir
func New(dir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		dir:     dir,
		logger:  logger,
		written: make(map[string][]byte),
	}, nil
}

// Path returns the file backing key
func (s *Storage) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the document stored under key
func (s *Storage) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Save replaces the document under key. The write goes through a temp file and a
// rename so readers never observe a partial document.
func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(key)
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	s.written[key] = bytes.Clone(data)
	return nil
}

// Close releases nothing; files are written synchronously
func (s *Storage) Close() error { return nil }

// Watch calls onChange when another process rewrites the document under key.
// It blocks until ctx is cancelled.
func (s *Storage) Watch(ctx context.Context, key string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: atomic renames replace the inode of the file itself.
	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	target := filepath.Base(s.Path(key))
	s.logger.Debug("watcher: started", slog.String("path", s.Path(key)))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.logger.Debug("watcher: stopped")
			return nil

		case <-fire:
			fire = nil
			if s.ownWrite(key) {
				continue
			}
			s.logger.Debug("watcher: external change", slog.String("key", key))
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// ownWrite reports whether the file still holds exactly what this process last saved
func (s *Storage) ownWrite(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.written[key]
	if !ok {
		return false
	}
	current, err := os.ReadFile(s.Path(key))
	if err != nil {
		return false
	}
	return bytes.Equal(current, last)
}
