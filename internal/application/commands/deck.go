package commands

import (
	"context"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
)

// DeckReader is the read side of the deck store
type DeckReader interface {
	Snapshot() domain.Deck
	Card(id int) (domain.Card, bool)
}

// DeckWriter is the deck store as seen by commands that mutate it
type DeckWriter interface {
	DeckReader
	UpdateCard(ctx context.Context, card domain.Card) error
	PutCard(ctx context.Context, card domain.Card) error
	SetRows(ctx context.Context, rows int) error
	SetCols(ctx context.Context, cols int) error
	Replace(ctx context.Context, r application.Replacement) error
	Reset(ctx context.Context) error
}

// Document is the export/import file format
type Document struct {
	Rows  int           `json:"rows"`
	Cols  int           `json:"cols"`
	Cards []domain.Card `json:"cards"`
}

// ExportFilename is the suggested name for exported decks
const ExportFilename = "tarjetitas.json"
