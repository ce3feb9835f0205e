package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"tarjetitas/internal/domain"
)

// ExportResult contains the serialized deck
type ExportResult struct {
	Document Document
	Data     []byte
	Filename string
	Message  string
}

// ExportCommand serializes the deck to the import/export format
type ExportCommand struct {
	store DeckReader
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(store DeckReader) *ExportCommand {
	return &ExportCommand{store: store}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	deck := c.store.Snapshot()
	doc := Document{
		Rows:  deck.Rows,
		Cols:  deck.Cols,
		Cards: slices.Clone(deck.Cards),
	}
	if doc.Cards == nil {
		doc.Cards = []domain.Card{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode deck: %w", err)
	}

	return &ExportResult{
		Document: doc,
		Data:     append(data, '\n'),
		Filename: ExportFilename,
		Message:  fmt.Sprintf("Exported %d cards (%dx%d)", len(doc.Cards), doc.Rows, doc.Cols),
	}, nil
}
