package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tarjetitas/internal/adapters/richtext"
	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/domain"
)

const previewRunes = 60

// RegisterReadTools adds all read-only deck tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store commands.DeckReader) {
	s.AddTool(getDeckTool(), getDeckHandler(store))
	s.AddTool(getCardTool(), getCardHandler(store))
}

// --- get_deck ---

func getDeckTool() mcp.Tool {
	return mcp.NewTool("get_deck",
		mcp.WithDescription("Show the deck grid: dimensions and a plain-text preview of every tile in row-major order. Tiles past the end of the card list are empty placeholders."),
		mcp.WithBoolean("include_empty",
			mcp.Description("Also list tiles whose front and back are both empty (default false)"),
		),
	)
}

func getDeckHandler(store commands.DeckReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeEmpty := req.GetBool("include_empty", false)

		res, err := commands.NewListCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Grid %dx%d, %d tiles, %d cards stored\n", res.Deck.Rows, res.Deck.Cols, res.Deck.TotalCards, len(res.Deck.Cards))
		shown := 0
		for _, t := range res.Tiles {
			if !includeEmpty && t.Card.IsEmpty() {
				continue
			}
			sb.WriteString(formatTile(t))
			sb.WriteByte('\n')
			shown++
		}
		if shown == 0 {
			sb.WriteString("All tiles are empty.\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_card ---

func getCardTool() mcp.Tool {
	return mcp.NewTool("get_card",
		mcp.WithDescription("Get the full front and back content (HTML) of one card."),
		mcp.WithNumber("id",
			mcp.Description("Card ID"),
			mcp.Required(),
		),
	)
}

func getCardHandler(store commands.DeckReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return toolError(err)
		}

		card, err := commands.NewGetCardCommand(store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("Card %d\n%s:\n%s\n\n%s:\n%s\n",
			card.ID,
			domain.Front.Label(), card.Front,
			domain.Back.Label(), card.Back,
		)), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatTile(t domain.Tile) string {
	placeholder := ""
	if t.Placeholder {
		placeholder = " (placeholder)"
	}
	return fmt.Sprintf("#%d [%d,%d]%s  %s | %s",
		t.Card.ID, t.Row, t.Col, placeholder,
		orDash(richtext.Preview(t.Card.Front, previewRunes)),
		orDash(richtext.Preview(t.Card.Back, previewRunes)),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
