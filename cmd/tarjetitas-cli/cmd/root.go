package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tarjetitas/internal/bootstrap"
	"tarjetitas/internal/config"
)

// skipRuntime marks commands that run without opening the deck
const skipRuntime = "skip-runtime"

var (
	configFile string
	envFile    string
	rt         *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "tarjetitas-cli",
	Short: "CLI for editing a printable flashcard deck",
	Long: `tarjetitas-cli edits the same deck as the tarjetitas terminal UI.

The deck is a grid of two-sided cards. Cards can be listed, written, imported and
exported as JSON, printed as an HTML page (fronts, then backs) and served over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations[skipRuntime] != "" {
			return nil
		}

		cfg, err := config.Load(config.Options{
			File:    configFile,
			EnvFile: envFile,
			Flags:   cmd.Flags(),
		})
		if err != nil {
			return err
		}

		logger := cfg.NewLogger(os.Stderr)
		rt, err = bootstrap.Open(cmd.Context(), cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default "+config.DefaultFile()+")")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded when present")
	flags.String("driver", config.DriverJSON, "storage driver: json or sqlite")
	flags.String("data-dir", config.DefaultDataDir, "directory holding the deck")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("notify", false, "show desktop notifications")
}

// GetRuntime returns the initialized runtime
func GetRuntime() *bootstrap.Runtime {
	return rt
}
