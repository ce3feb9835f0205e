package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tarjetitas/internal/adapters/richtext"
	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the grid tiles",
	Long: `List the tiles of the grid in row-major order with a plain-text preview of
both sides. Empty tiles are hidden unless --all is given.

Examples:
  tarjetitas-cli list
  tarjetitas-cli list --all --width 80`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		width, _ := cmd.Flags().GetInt("width")

		result, err := commands.NewListCommand(GetRuntime().Store).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%dx%d, %d tarjetas\n", result.Deck.Rows, result.Deck.Cols, result.Deck.TotalCards)
		for _, t := range result.Tiles {
			if !all && t.Card.IsEmpty() {
				continue
			}
			fmt.Fprintln(out, formatTile(t, width))
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show the full content of a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCardID(args[0])
		if err != nil {
			return err
		}
		card, err := commands.NewGetCardCommand(GetRuntime().Store, id).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s:\n%s\n\n%s:\n%s\n", domain.Front.Label(), card.Front, domain.Back.Label(), card.Back)
		return nil
	},
}

func formatTile(t domain.Tile, width int) string {
	mark := " "
	if t.Placeholder {
		mark = "·"
	}
	return fmt.Sprintf("%s%3d  (%d,%d)  %s | %s", mark, t.Card.ID, t.Row+1, t.Col+1,
		orDash(richtext.Preview(t.Card.Front, width)),
		orDash(richtext.Preview(t.Card.Back, width)))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	listCmd.Flags().BoolP("all", "a", false, "include empty tiles")
	listCmd.Flags().Int("width", 40, "preview length per side")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
}
