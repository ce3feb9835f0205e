package domain

import (
	"slices"
	"unicode/utf8"
)

const (
	// DefaultRows and DefaultCols describe the deck created on first run
	DefaultRows = 8
	DefaultCols = 6

	// Slider ranges offered by the front ends; the store itself does not enforce them
	MinRows = 2
	MaxRows = 8
	MinCols = 2
	MaxCols = 6

	// CompactTextThreshold is the content length above which tiles use smaller text
	CompactTextThreshold = 50
)

// GridLimits bounds the dimensions the front ends accept
type GridLimits struct {
	MinRows int
	MaxRows int
	MinCols int
	MaxCols int
}

// DefaultGridLimits returns the slider ranges
func DefaultGridLimits() GridLimits {
	return GridLimits{MinRows: MinRows, MaxRows: MaxRows, MinCols: MinCols, MaxCols: MaxCols}
}

// Deck is a snapshot of the deck store state
type Deck struct {
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	TotalCards int    `json:"totalCards"`
	Cards      []Card `json:"cards"`
}

// NewCards returns n empty cards with sequential IDs starting at 0
func NewCards(n int) []Card {
	if n < 0 {
		n = 0
	}
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{ID: i}
	}
	return cards
}

// DefaultDeck returns the deck used when nothing has been persisted yet
func DefaultDeck() Deck {
	return Deck{
		Rows:       DefaultRows,
		Cols:       DefaultCols,
		TotalCards: DefaultRows * DefaultCols,
		Cards:      NewCards(DefaultRows * DefaultCols),
	}
}

// Clone returns a deep copy of the deck
func (d Deck) Clone() Deck {
	d.Cards = slices.Clone(d.Cards)
	return d
}

// IndexOf returns the position of the card with the given ID, or -1
func (d Deck) IndexOf(id int) int {
	return slices.IndexFunc(d.Cards, func(c Card) bool { return c.ID == id })
}

// Find looks a card up by ID
func (d Deck) Find(id int) (Card, bool) {
	if i := d.IndexOf(id); i >= 0 {
		return d.Cards[i], true
	}
	return Card{}, false
}

// Tile is one cell of the grid
type Tile struct {
	Index       int
	Row         int
	Col         int
	Card        Card
	Placeholder bool
}

// Compact reports whether the given side is long enough to need compact text
func (t Tile) Compact(o Orientation) bool {
	return utf8.RuneCountInString(t.Card.Side(o)) > CompactTextThreshold
}

// TileAt returns the tile for grid index i. When the card collection is shorter than
// the grid, indexes past its end yield an empty placeholder bound to card ID i.
func (d Deck) TileAt(i int) Tile {
	t := Tile{Index: i}
	if d.Cols > 0 {
		t.Row = i / d.Cols
		t.Col = i % d.Cols
	}
	if i >= 0 && i < len(d.Cards) {
		t.Card = d.Cards[i]
		return t
	}
	t.Card = Card{ID: i}
	t.Placeholder = true
	return t
}

// Tiles returns exactly TotalCards tiles in row-major order
func (d Deck) Tiles() []Tile {
	if d.TotalCards <= 0 {
		return nil
	}
	tiles := make([]Tile, d.TotalCards)
	for i := range tiles {
		tiles[i] = d.TileAt(i)
	}
	return tiles
}
