package commands

import (
	"context"
	"fmt"
)

// ResetPrompt is the confirmation shown before clearing the deck
const ResetPrompt = "Se borrará todo"

// ResetResult contains the result of clearing the deck
type ResetResult struct {
	TotalCards int
	Message    string
}

// ResetCommand replaces every card with an empty one, keeping the grid dimensions
type ResetCommand struct {
	store DeckWriter
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand(store DeckWriter) *ResetCommand {
	return &ResetCommand{store: store}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context) (*ResetResult, error) {
	if err := c.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset deck: %w", err)
	}

	total := c.store.Snapshot().TotalCards
	return &ResetResult{
		TotalCards: total,
		Message:    fmt.Sprintf("Cleared deck: %d empty cards", total),
	}, nil
}
