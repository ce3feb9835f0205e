package commands

import (
	"context"
	"fmt"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// SetSideResult contains the result of writing one side of a card
type SetSideResult struct {
	Card    domain.Card
	Created bool
	Message string
}

// SetSideCommand writes the content of one card side without an interactive session.
// An empty Text clears the side.
type SetSideCommand struct {
	store    DeckWriter
	notifier ports.Notifier
	CardID   int
	Side     string
	Text     string
}

// NewSetSideCommand creates a new SetSideCommand
func NewSetSideCommand(store DeckWriter, notifier ports.Notifier, cardID int, side, text string) *SetSideCommand {
	return &SetSideCommand{
		store:    store,
		notifier: notifier,
		CardID:   cardID,
		Side:     side,
		Text:     text,
	}
}

// Validate checks if the set operation is valid
func (c *SetSideCommand) Validate() error {
	if c.CardID < 0 {
		return &application.ValidationError{
			Field:   "cardID",
			Message: fmt.Sprintf("card ID must be at least 0, got %d", c.CardID),
		}
	}
	if err := application.ValidateRequired("side", c.Side); err != nil {
		return err
	}
	if _, ok := domain.ParseOrientation(c.Side); !ok {
		return &application.ValidationError{
			Field:   "side",
			Message: fmt.Sprintf("side must be front or back, got %q", c.Side),
		}
	}
	return nil
}

// Execute runs the set side command through an edit session, so saving follows the
// same rules as the interactive editor.
func (c *SetSideCommand) Execute(ctx context.Context) (*SetSideResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	o, _ := domain.ParseOrientation(c.Side)
	session := application.NewSession(c.store, c.notifier, c.CardID, o)
	created := session.Missing()

	session.SetText(c.Text)
	if err := session.Save(ctx); err != nil {
		return nil, err
	}

	return &SetSideResult{
		Card:    session.Card(),
		Created: created,
		Message: fmt.Sprintf("%s: %d (%s)", application.MsgCardSaved, c.CardID, o.Label()),
	}, nil
}
