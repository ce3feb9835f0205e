package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
)

// Import notification texts
const (
	ImportTitle   = "Tarjetas Importadas"
	ImportSuccess = "Se importaron los datos correctamente"
)

// importDocument is the wire shape accepted by Import. Cards is decoded separately
// because a non-array value is tolerated.
type importDocument struct {
	Rows  *int            `json:"rows" validate:"required,gte=1"`
	Cols  *int            `json:"cols" validate:"required,gte=1"`
	Cards json.RawMessage `json:"cards"`
}

type importCards struct {
	Cards []domain.Card `validate:"dive"`
}

// ImportResult contains the result of an import
type ImportResult struct {
	Rows  int
	Cols  int
	Cards int
	// CardsSkipped is set when the document had no card array; dimensions were
	// applied and the existing collection was kept.
	CardsSkipped bool
	Title        string
	Message      string
}

// ImportCommand replaces the deck with the contents of an exported document
type ImportCommand struct {
	store DeckWriter
	Data  []byte
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store DeckWriter, data []byte) *ImportCommand {
	return &ImportCommand{store: store, Data: data}
}

// Validate checks that there is something to import
func (c *ImportCommand) Validate() error {
	if len(bytes.TrimSpace(c.Data)) == 0 {
		return &application.ImportError{Reason: "empty document"}
	}
	return nil
}

// Parse decodes and validates the document without touching the store
func (c *ImportCommand) Parse() (application.Replacement, error) {
	if err := c.Validate(); err != nil {
		return application.Replacement{}, err
	}

	var doc importDocument
	if err := json.Unmarshal(jsonc.ToJSON(c.Data), &doc); err != nil {
		return application.Replacement{}, &application.ImportError{Reason: "invalid JSON", Err: err}
	}
	if err := application.ValidateStruct(doc); err != nil {
		return application.Replacement{}, &application.ImportError{Reason: "invalid dimensions", Err: err}
	}

	r := application.Replacement{Rows: *doc.Rows, Cols: *doc.Cols}

	raw := bytes.TrimSpace(doc.Cards)
	if len(raw) == 0 || raw[0] != '[' {
		r.KeepCards = true
		return r, nil
	}

	var cards importCards
	if err := json.Unmarshal(raw, &cards.Cards); err != nil {
		return application.Replacement{}, &application.ImportError{Reason: "invalid cards", Err: err}
	}
	if err := application.ValidateStruct(cards); err != nil {
		return application.Replacement{}, &application.ImportError{Reason: "invalid cards", Err: err}
	}
	if cards.Cards == nil {
		cards.Cards = []domain.Card{}
	}
	r.Cards = cards.Cards
	return r, nil
}

// Execute runs the import command. The store is left untouched on any parse error.
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	r, err := c.Parse()
	if err != nil {
		return nil, err
	}

	if err := c.store.Replace(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to import deck: %w", err)
	}

	res := &ImportResult{
		Rows:         r.Rows,
		Cols:         r.Cols,
		Cards:        len(r.Cards),
		CardsSkipped: r.KeepCards,
		Title:        ImportTitle,
		Message:      ImportSuccess,
	}
	if r.KeepCards {
		res.Cards = len(c.store.Snapshot().Cards)
	}
	return res, nil
}
