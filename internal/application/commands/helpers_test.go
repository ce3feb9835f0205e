package commands

import (
	"context"
	"testing"

	"tarjetitas/internal/application"
	"tarjetitas/internal/ports"
)

type memStorage struct {
	data map[string][]byte
}

func (m *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, ports.ErrStateNotFound
	}
	return data, nil
}

func (m *memStorage) Save(_ context.Context, key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStorage) Close() error { return nil }

func newStore(t *testing.T) *application.DeckStore {
	t.Helper()
	s := application.NewDeckStore(&memStorage{data: make(map[string][]byte)})
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	return s
}
