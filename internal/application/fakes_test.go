package application

import (
	"context"
	"errors"
	"sync"

	"tarjetitas/internal/ports"
)

// memStorage is an in-memory ports.StateStorage
type memStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	saveErr error
	// onLoad runs inside Load before the document is read
	onLoad func()
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	if m.onLoad != nil {
		m.onLoad()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ports.ErrStateNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *memStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStorage) Close() error { return nil }

// recordingNotifier remembers every notification
type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_, message string) {
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

var errDiskFull = errors.New("disk full")

func hydratedStore(tb interface{ Fatalf(string, ...any) }, storage ports.StateStorage) *DeckStore {
	s := NewDeckStore(storage)
	if err := s.Hydrate(context.Background()); err != nil {
		tb.Fatalf("Hydrate failed: %v", err)
	}
	return s
}
