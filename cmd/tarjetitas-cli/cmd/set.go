package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tarjetitas/internal/application/commands"
)

var setCmd = &cobra.Command{
	Use:   "set <id> <front|back> [text]",
	Short: "Write one side of a card",
	Long: `Write one side of a card. The text may be HTML or Markdown. Without a text
argument the content is read from --file, or from stdin when --file is "-".
An empty text clears the side.

Examples:
  tarjetitas-cli set 0 front "perro"
  tarjetitas-cli set 0 back "<b>dog</b>"
  tarjetitas-cli set 3 front --file pregunta.md`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCardID(args[0])
		if err != nil {
			return err
		}

		text, err := sideText(cmd, args)
		if err != nil {
			return err
		}

		rt := GetRuntime()
		result, err := commands.NewSetSideCommand(rt.Store, rt.Notifier, id, args[1], text).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func sideText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 3 {
		return args[2], nil
	}
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return "", fmt.Errorf("text or --file is required")
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readInput reads path, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func parseCardID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid card ID %q", s)
	}
	return id, nil
}

func init() {
	setCmd.Flags().StringP("file", "f", "", `read the text from a file ("-" for stdin)`)
	rootCmd.AddCommand(setCmd)
}
