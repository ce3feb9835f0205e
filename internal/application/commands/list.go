package commands

import (
	"context"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
)

// ListResult is a grid projection of the deck
type ListResult struct {
	Deck  domain.Deck
	Tiles []domain.Tile
}

// ListCommand lists the grid tiles in row-major order
type ListCommand struct {
	store DeckReader
}

// NewListCommand creates a new ListCommand
func NewListCommand(store DeckReader) *ListCommand {
	return &ListCommand{store: store}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	deck := c.store.Snapshot()
	return &ListResult{
		Deck:  deck,
		Tiles: deck.Tiles(),
	}, nil
}

// GetCardCommand looks up a single card
type GetCardCommand struct {
	store  DeckReader
	CardID int
}

// NewGetCardCommand creates a new GetCardCommand
func NewGetCardCommand(store DeckReader, cardID int) *GetCardCommand {
	return &GetCardCommand{store: store, CardID: cardID}
}

// Execute runs the get card command
func (c *GetCardCommand) Execute(ctx context.Context) (domain.Card, error) {
	card, ok := c.store.Card(c.CardID)
	if !ok {
		return domain.Card{}, &application.CardNotFoundError{ID: c.CardID}
	}
	return card, nil
}
