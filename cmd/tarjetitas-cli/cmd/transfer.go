package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"tarjetitas/internal/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the deck with an exported JSON document",
	Long: `Replace the deck with a document of the form {"rows", "cols", "cards"}.
Use "-" to read from stdin. Comments and trailing commas are accepted.

Examples:
  tarjetitas-cli import tarjetitas.json
  cat tarjetitas.json | tarjetitas-cli import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		rt := GetRuntime()
		result, err := commands.NewImportCommand(rt.Store, data).Execute(cmd.Context())
		if err != nil {
			return err
		}
		rt.Notifier.Notify(result.Title, result.Message)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%dx%d, %d tarjetas)\n", result.Message, result.Rows, result.Cols, result.Cards)
		if result.CardsSkipped {
			fmt.Fprintln(out, "El documento no tenía lista de tarjetas; se conservaron las actuales.")
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the deck as JSON",
	Long: `Export the deck as JSON to stdout, a file, or the clipboard.

Examples:
  tarjetitas-cli export > tarjetitas.json
  tarjetitas-cli export -o tarjetitas.json
  tarjetitas-cli export --clipboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		toClipboard, _ := cmd.Flags().GetBool("clipboard")

		result, err := commands.NewExportCommand(GetRuntime().Store).Execute(cmd.Context())
		if err != nil {
			return err
		}

		switch {
		case toClipboard:
			if err := clipboard.WriteAll(string(result.Data)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
		case output != "":
			if err := os.WriteFile(output, result.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", result.Message, output)
		default:
			_, err := cmd.OutOrStdout().Write(result.Data)
			return err
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to a file (e.g. "+commands.ExportFilename+")")
	exportCmd.Flags().Bool("clipboard", false, "copy to the clipboard")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
