package ports

import (
	"context"
	"errors"
)

// ErrStateNotFound is returned by StateStorage.Load when nothing has been stored under the key
var ErrStateNotFound = errors.New("state not found")

// StateStorage persists opaque state documents by key, like browser local storage
type StateStorage interface {
	// Load returns the document stored under key or ErrStateNotFound
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the document stored under key
	Save(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the storage
	Close() error
}

// StateWatcher is implemented by storages that can report changes made by other processes
type StateWatcher interface {
	// Watch calls onChange for every external change to key until ctx is cancelled
	Watch(ctx context.Context, key string, onChange func()) error
}
