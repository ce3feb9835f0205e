package domain

import (
	"strings"
	"testing"
)

func TestOrientation_Opposite(t *testing.T) {
	if Front.Opposite() != Back {
		t.Errorf("Front.Opposite() = %v, want Back", Front.Opposite())
	}
	if Back.Opposite() != Front {
		t.Errorf("Back.Opposite() = %v, want Front", Back.Opposite())
	}
}

func TestOrientation_Label(t *testing.T) {
	tests := []struct {
		o    Orientation
		want string
	}{
		{Front, "Frente"},
		{Back, "Reverso"},
	}

	for _, tt := range tests {
		if got := tt.o.Label(); got != tt.want {
			t.Errorf("%v.Label() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in     string
		want   Orientation
		wantOK bool
	}{
		{"front", Front, true},
		{"Reverso", Back, true},
		{"back", Back, true},
		{"sideways", Front, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOrientation(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseOrientation(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCard_WithSide(t *testing.T) {
	c := Card{ID: 3, Front: "hola", Back: "hello"}

	back := c.WithSide(Back, "")
	if back.Front != "hola" || back.Back != "" || back.ID != 3 {
		t.Errorf("WithSide(Back) = %+v", back)
	}
	if c.Back != "hello" {
		t.Error("WithSide must not modify the receiver")
	}

	front := c.WithSide(Front, "adiós")
	if front.Front != "adiós" || front.Back != "hello" {
		t.Errorf("WithSide(Front) = %+v", front)
	}
}

func TestNewCards_SequentialIDs(t *testing.T) {
	cards := NewCards(5)
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(cards))
	}
	for i, c := range cards {
		if c.ID != i || !c.IsEmpty() {
			t.Errorf("card %d = %+v, want empty card with ID %d", i, c, i)
		}
	}

	if got := NewCards(-1); len(got) != 0 {
		t.Errorf("NewCards(-1) returned %d cards", len(got))
	}
}

func TestDefaultDeck(t *testing.T) {
	d := DefaultDeck()
	if d.Rows != 8 || d.Cols != 6 || d.TotalCards != 48 {
		t.Errorf("default dimensions = %dx%d (%d)", d.Rows, d.Cols, d.TotalCards)
	}
	if len(d.Cards) != 48 || d.Cards[47].ID != 47 {
		t.Errorf("default deck should hold cards 0..47, got %d cards", len(d.Cards))
	}
}

func TestDeck_Tiles_RowMajor(t *testing.T) {
	d := Deck{Rows: 2, Cols: 3, TotalCards: 6, Cards: NewCards(6)}

	tiles := d.Tiles()
	if len(tiles) != 6 {
		t.Fatalf("expected 6 tiles, got %d", len(tiles))
	}

	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	for i, tile := range tiles {
		if tile.Row != want[i][0] || tile.Col != want[i][1] {
			t.Errorf("tile %d at (%d,%d), want (%d,%d)", i, tile.Row, tile.Col, want[i][0], want[i][1])
		}
		if tile.Placeholder {
			t.Errorf("tile %d should be bound to a card", i)
		}
	}
}

func TestDeck_Tiles_PlaceholdersWhenCollectionIsShort(t *testing.T) {
	// Dimensions grown without resizing the collection
	d := Deck{Rows: 3, Cols: 3, TotalCards: 9, Cards: NewCards(4)}
	d.Cards[1].Front = "uno"

	tiles := d.Tiles()
	if len(tiles) != 9 {
		t.Fatalf("expected 9 tiles, got %d", len(tiles))
	}
	if tiles[1].Card.Front != "uno" {
		t.Errorf("tile 1 should show card 1, got %+v", tiles[1].Card)
	}
	for i := 4; i < 9; i++ {
		tile := tiles[i]
		if !tile.Placeholder {
			t.Errorf("tile %d should be a placeholder", i)
		}
		if tile.Card.ID != i || !tile.Card.IsEmpty() {
			t.Errorf("placeholder %d = %+v, want empty card with ID %d", i, tile.Card, i)
		}
	}
}

func TestDeck_Tiles_ExtraCardsAreNotRendered(t *testing.T) {
	d := Deck{Rows: 2, Cols: 2, TotalCards: 4, Cards: NewCards(48)}
	if got := len(d.Tiles()); got != 4 {
		t.Errorf("expected 4 tiles, got %d", got)
	}
}

func TestDeck_TileAt_OutOfRange(t *testing.T) {
	d := Deck{Rows: 2, Cols: 2, TotalCards: 4}
	tile := d.TileAt(100)
	if !tile.Placeholder || tile.Card.ID != 100 {
		t.Errorf("TileAt(100) = %+v", tile)
	}
}

func TestTile_Compact(t *testing.T) {
	short := Tile{Card: Card{Front: "corto"}}
	if short.Compact(Front) {
		t.Error("short content should not be compact")
	}

	long := Tile{Card: Card{Back: "Lorem ipsum dolor sit amet, consectetur adipiscing elit"}}
	if !long.Compact(Back) {
		t.Error("content over the threshold should be compact")
	}
}

func TestTile_CompactCountsCharacters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "accented under threshold", text: strings.Repeat("ñ", 9) + strings.Repeat("a", 37), want: false},
		{name: "exactly at threshold", text: strings.Repeat("é", 50), want: false},
		{name: "one over threshold", text: strings.Repeat("é", 51), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := Tile{Card: Card{Front: tt.text}}
			if got := tile.Compact(Front); got != tt.want {
				t.Errorf("Compact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeck_CloneIsIndependent(t *testing.T) {
	d := DefaultDeck()
	c := d.Clone()
	c.Cards[0].Front = "cambiado"
	if d.Cards[0].Front != "" {
		t.Error("Clone must copy the card slice")
	}
}

func TestDeck_Find(t *testing.T) {
	d := Deck{Cards: []Card{{ID: 7, Front: "siete"}, {ID: 2}}}
	c, ok := d.Find(7)
	if !ok || c.Front != "siete" {
		t.Errorf("Find(7) = %+v, %v", c, ok)
	}
	if _, ok := d.Find(3); ok {
		t.Error("Find(3) should miss")
	}
}
