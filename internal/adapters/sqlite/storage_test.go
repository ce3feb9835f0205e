package sqlite

import (
	"context"
	"errors"
	"testing"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

func openTestStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage_LoadMissing(t *testing.T) {
	s := openTestStorage(t, t.TempDir())
	if _, err := s.Load(context.Background(), "card-storage"); !errors.Is(err, ports.ErrStateNotFound) {
		t.Errorf("expected ErrStateNotFound, got %v", err)
	}
	if _, err := s.UpdatedAt(context.Background(), "card-storage"); !errors.Is(err, ports.ErrStateNotFound) {
		t.Errorf("expected ErrStateNotFound, got %v", err)
	}
}

func TestStorage_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStorage(t, t.TempDir())

	for _, v := range []string{`{"rows":2}`, `{"rows":3}`} {
		if err := s.Save(ctx, "card-storage", []byte(v)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := s.Load(ctx, "card-storage")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"rows":3}` {
		t.Errorf("Load = %s", got)
	}
	if ts, err := s.UpdatedAt(ctx, "card-storage"); err != nil || ts.IsZero() {
		t.Errorf("UpdatedAt = %v, %v", ts, err)
	}
}

func TestStorage_DeckRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := openTestStorage(t, dir)
	store := application.NewDeckStore(first)
	if err := store.Hydrate(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.SetRows(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateCard(ctx, domain.Card{ID: 0, Front: "<em>hola</em>"}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := openTestStorage(t, dir)
	other := application.NewDeckStore(second)
	if err := other.Hydrate(ctx); err != nil {
		t.Fatal(err)
	}
	if other.Rows() != 5 || other.TotalCards() != 30 {
		t.Errorf("dimensions = %dx%d", other.Rows(), other.Cols())
	}
	if c, _ := other.Card(0); c.Front != "<em>hola</em>" {
		t.Errorf("card 0 = %+v", c)
	}
}
