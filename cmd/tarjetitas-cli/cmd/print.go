package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tarjetitas/internal/adapters/browser"
	"tarjetitas/internal/adapters/printview"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Write the printable HTML page",
	Long: `Write the print page: every front in a grid, a page break, then every back.
Print it from the browser with margins set to none and scale 100%.

Examples:
  tarjetitas-cli print -o imprimir.html
  tarjetitas-cli print --open`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		open, _ := cmd.Flags().GetBool("open")

		if output == "" {
			if !open {
				return printview.Render(cmd.OutOrStdout(), GetRuntime().Store.Snapshot(), printview.Options{Title: "Las Tarjetitas"})
			}
			output = filepath.Join(os.TempDir(), "tarjetitas-imprimir.html")
		}

		if err := writePrintPage(output); err != nil {
			return err
		}
		if open {
			return browser.NewOpener().Open(output)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), output)
		return nil
	},
}

func writePrintPage(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := printview.Render(f, GetRuntime().Store.Snapshot(), printview.Options{Title: "Las Tarjetitas", Tips: true}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func init() {
	printCmd.Flags().StringP("output", "o", "", "write the page to a file")
	printCmd.Flags().Bool("open", false, "open the page in the browser")
	rootCmd.AddCommand(printCmd)
}
