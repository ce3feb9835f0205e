package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
)

func TestImportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	data := []byte(`{
		// exported yesterday
		"rows": 2,
		"cols": 3,
		"cards": [
			{"id": 0, "front": "uno", "back": "one"},
			{"id": 1, "front": "dos", "back": "two"},
		],
	}`)

	res, err := NewImportCommand(store, data).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Message != ImportSuccess || res.Title != ImportTitle {
		t.Errorf("result = %+v", res)
	}
	if res.CardsSkipped {
		t.Error("CardsSkipped should be false for a card array")
	}

	deck := store.Snapshot()
	if deck.Rows != 2 || deck.Cols != 3 || deck.TotalCards != 6 {
		t.Errorf("dimensions = %dx%d (%d)", deck.Rows, deck.Cols, deck.TotalCards)
	}
	if len(deck.Cards) != 2 || deck.Cards[1].Back != "two" {
		t.Errorf("cards = %+v", deck.Cards)
	}
}

func TestImportCommand_NonArrayCardsKeepsCollection(t *testing.T) {
	tests := []struct {
		name  string
		cards string
	}{
		{name: "missing", cards: ``},
		{name: "null", cards: `, "cards": null`},
		{name: "object", cards: `, "cards": {"0": {"front": "x"}}`},
		{name: "string", cards: `, "cards": "nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			if err := store.UpdateCard(ctx, domain.Card{ID: 0, Front: "queda"}); err != nil {
				t.Fatal(err)
			}

			data := []byte(`{"rows": 3, "cols": 2` + tt.cards + `}`)
			res, err := NewImportCommand(store, data).Execute(ctx)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !res.CardsSkipped {
				t.Error("expected CardsSkipped")
			}
			if res.Cards != 48 {
				t.Errorf("Cards = %d, want 48", res.Cards)
			}

			deck := store.Snapshot()
			if deck.Rows != 3 || deck.Cols != 2 || deck.TotalCards != 6 {
				t.Errorf("dimensions not applied: %dx%d", deck.Rows, deck.Cols)
			}
			if c, _ := store.Card(0); c.Front != "queda" {
				t.Errorf("existing cards changed: %+v", c)
			}
		})
	}
}

func TestImportCommand_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "empty", data: "  ", want: "empty document"},
		{name: "not json", data: "{rows: ", want: "invalid JSON"},
		{name: "missing rows", data: `{"cols": 3, "cards": []}`, want: "invalid dimensions"},
		{name: "zero cols", data: `{"rows": 3, "cols": 0, "cards": []}`, want: "invalid dimensions"},
		{name: "string rows", data: `{"rows": "3", "cols": 3}`, want: "invalid JSON"},
		{name: "negative card id", data: `{"rows": 2, "cols": 2, "cards": [{"id": -1}]}`, want: "invalid cards"},
		{name: "bad card shape", data: `{"rows": 2, "cols": 2, "cards": [1, 2]}`, want: "invalid cards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			before := store.Snapshot()

			_, err := NewImportCommand(store, []byte(tt.data)).Execute(ctx)
			if !errors.Is(err, application.ErrMalformedImport) {
				t.Fatalf("expected ErrMalformedImport, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}

			after := store.Snapshot()
			if after.Rows != before.Rows || after.Cols != before.Cols || len(after.Cards) != len(before.Cards) {
				t.Error("store changed after a rejected import")
			}
		})
	}
}

func TestImportCommand_EmptyArrayClearsCollection(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	res, err := NewImportCommand(store, []byte(`{"rows": 2, "cols": 2, "cards": []}`)).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.CardsSkipped || res.Cards != 0 {
		t.Errorf("result = %+v", res)
	}
	if tiles := store.Snapshot().Tiles(); len(tiles) != 4 || !tiles[3].Placeholder {
		t.Errorf("expected 4 placeholder tiles, got %+v", tiles)
	}
}
