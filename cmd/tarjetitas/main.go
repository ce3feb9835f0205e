package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"tarjetitas/internal/adapters/browser"
	"tarjetitas/internal/adapters/editor"
	"tarjetitas/internal/adapters/tui"
	"tarjetitas/internal/bootstrap"
	"tarjetitas/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("tarjetitas", pflag.ContinueOnError)
	configFile := flags.StringP("config", "c", "", "config file (default "+config.DefaultFile()+")")
	envFile := flags.String("env-file", ".env", "dotenv file loaded when present")
	flags.String("driver", config.DriverJSON, "storage driver: json or sqlite")
	flags.String("data-dir", config.DefaultDataDir, "directory holding the deck")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "log file (default <data-dir>/"+config.DefaultLogFile+")")
	flags.Bool("notify", false, "show desktop notifications")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(config.Options{File: *configFile, EnvFile: *envFile, Flags: flags})
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to a file
	logFile, err := cfg.OpenLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := tui.NewApp(tui.Deps{
		Store:    rt.Store,
		Limits:   cfg.Grid.Limits(),
		Notifier: rt.Notifier,
		Editor:   editor.NewOpener(),
		Browser:  browser.NewOpener(),
		Encoder:  rt.Encoder(),
		PrintDir: cfg.Storage.DataDir(),
		Logger:   logger.With(slog.String("component", "tui")),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	detach := app.Attach(p)
	defer detach()

	go func() {
		if err := rt.Watch(ctx); err != nil && !errors.Is(err, bootstrap.ErrWatchUnsupported) {
			logger.Warn("storage watch stopped", slog.String("error", err.Error()))
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
