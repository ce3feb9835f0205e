package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// RegisterWriteTools adds all deck mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store commands.DeckWriter, limits domain.GridLimits, notifier ports.Notifier) {
	s.AddTool(setCardSideTool(), setCardSideHandler(store, notifier))
	s.AddTool(resizeDeckTool(limits), resizeDeckHandler(store, limits))
	s.AddTool(exportDeckTool(), exportDeckHandler(store))
	s.AddTool(importDeckTool(), importDeckHandler(store, notifier))
	s.AddTool(resetDeckTool(), resetDeckHandler(store))
}

// --- set_card_side ---

func setCardSideTool() mcp.Tool {
	return mcp.NewTool("set_card_side",
		mcp.WithDescription("Replace the content of one side of a card. Content may be HTML or Markdown. An empty text clears the side. A card that does not exist yet is created."),
		mcp.WithNumber("id",
			mcp.Description("Card ID"),
			mcp.Required(),
		),
		mcp.WithString("side",
			mcp.Description("Side to write"),
			mcp.Enum("front", "back"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("New content for the side"),
		),
	)
}

func setCardSideHandler(store commands.DeckWriter, notifier ports.Notifier) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return toolError(err)
		}
		side := req.GetString("side", "")
		text := req.GetString("text", "")

		result, err := commands.NewSetSideCommand(store, notifier, id, side, text).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- resize_deck ---

func resizeDeckTool(limits domain.GridLimits) mcp.Tool {
	return mcp.NewTool("resize_deck",
		mcp.WithDescription("Change the grid dimensions. Cards are kept; tiles past the end of the card list show as empty placeholders."),
		mcp.WithNumber("rows",
			mcp.Description(fmt.Sprintf("Rows (%d-%d). Omit to keep the current value.", limits.MinRows, limits.MaxRows)),
		),
		mcp.WithNumber("cols",
			mcp.Description(fmt.Sprintf("Columns (%d-%d). Omit to keep the current value.", limits.MinCols, limits.MaxCols)),
		),
	)
}

func resizeDeckHandler(store commands.DeckWriter, limits domain.GridLimits) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows := req.GetInt("rows", 0)
		cols := req.GetInt("cols", 0)

		result, err := commands.NewResizeCommand(store, limits, rows, cols).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export_deck ---

func exportDeckTool() mcp.Tool {
	return mcp.NewTool("export_deck",
		mcp.WithDescription("Export the deck as the JSON document accepted by import_deck."),
	)
}

func exportDeckHandler(store commands.DeckReader) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewExportCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(result.Data)), nil
	}
}

// --- import_deck ---

func importDeckTool() mcp.Tool {
	return mcp.NewTool("import_deck",
		mcp.WithDescription("Replace the deck with a document of the form {\"rows\": n, \"cols\": n, \"cards\": [{\"id\", \"front\", \"back\"}]}. Comments and trailing commas are tolerated."),
		mcp.WithString("document",
			mcp.Description("The JSON document"),
			mcp.Required(),
		),
	)
}

func importDeckHandler(store commands.DeckWriter, notifier ports.Notifier) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := req.RequireString("document")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewImportCommand(store, []byte(doc)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if notifier != nil {
			notifier.Notify(result.Title, result.Message)
		}

		msg := fmt.Sprintf("%s: %dx%d, %d cards", result.Message, result.Rows, result.Cols, result.Cards)
		if result.CardsSkipped {
			msg += " (document had no card list; existing cards kept)"
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- reset_deck ---

func resetDeckTool() mcp.Tool {
	return mcp.NewTool("reset_deck",
		mcp.WithDescription("Erase every card, leaving one empty card per grid tile. This cannot be undone."),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true"),
			mcp.Required(),
		),
	)
}

func resetDeckHandler(store commands.DeckWriter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !req.GetBool("confirm", false) {
			return toolError(fmt.Errorf("%s: set confirm to true", commands.ResetPrompt))
		}

		result, err := commands.NewResetCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
