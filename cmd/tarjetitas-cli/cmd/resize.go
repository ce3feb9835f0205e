package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tarjetitas/internal/application/commands"
)

var resizeCmd = &cobra.Command{
	Use:   "resize",
	Short: "Change the grid dimensions",
	Long: `Change the number of rows and/or columns. Cards are kept; tiles past the end
of the card list are shown empty.

Examples:
  tarjetitas-cli resize --rows 4 --cols 3
  tarjetitas-cli resize --cols 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, _ := cmd.Flags().GetInt("rows")
		cols, _ := cmd.Flags().GetInt("cols")

		rt := GetRuntime()
		result, err := commands.NewResizeCommand(rt.Store, rt.Config.Grid.Limits(), rows, cols).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase every card (Limpiar todo)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("%s: re-run with --yes to confirm", commands.ResetPrompt)
		}

		result, err := commands.NewResetCommand(GetRuntime().Store).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	resizeCmd.Flags().IntP("rows", "r", 0, "number of rows")
	resizeCmd.Flags().IntP("cols", "k", 0, "number of columns")
	resetCmd.Flags().BoolP("yes", "y", false, "confirm erasing every card")
	rootCmd.AddCommand(resizeCmd)
	rootCmd.AddCommand(resetCmd)
}
