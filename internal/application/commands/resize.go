package commands

import (
	"context"
	"fmt"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
)

// ResizeResult contains the result of resizing the grid
type ResizeResult struct {
	Rows       int
	Cols       int
	TotalCards int
	Message    string
}

// ResizeCommand changes the grid dimensions. A zero value leaves that dimension as is.
type ResizeCommand struct {
	store  DeckWriter
	limits domain.GridLimits
	Rows   int
	Cols   int
}

// NewResizeCommand creates a new ResizeCommand
func NewResizeCommand(store DeckWriter, limits domain.GridLimits, rows, cols int) *ResizeCommand {
	return &ResizeCommand{
		store:  store,
		limits: limits,
		Rows:   rows,
		Cols:   cols,
	}
}

// Validate checks the requested dimensions against the grid limits
func (c *ResizeCommand) Validate() error {
	if c.Rows == 0 && c.Cols == 0 {
		return &application.ValidationError{
			Field:   "rows",
			Message: "rows or columns are required",
		}
	}
	if c.Rows != 0 {
		if err := application.ValidateRange("rows", c.Rows, c.limits.MinRows, c.limits.MaxRows); err != nil {
			return err
		}
	}
	if c.Cols != 0 {
		if err := application.ValidateRange("cols", c.Cols, c.limits.MinCols, c.limits.MaxCols); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the resize command
func (c *ResizeCommand) Execute(ctx context.Context) (*ResizeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Rows != 0 {
		if err := c.store.SetRows(ctx, c.Rows); err != nil {
			return nil, fmt.Errorf("failed to set rows: %w", err)
		}
	}
	if c.Cols != 0 {
		if err := c.store.SetCols(ctx, c.Cols); err != nil {
			return nil, fmt.Errorf("failed to set columns: %w", err)
		}
	}

	deck := c.store.Snapshot()
	return &ResizeResult{
		Rows:       deck.Rows,
		Cols:       deck.Cols,
		TotalCards: deck.TotalCards,
		Message:    fmt.Sprintf("Grid resized to %dx%d (%d cards)", deck.Rows, deck.Cols, deck.TotalCards),
	}, nil
}
