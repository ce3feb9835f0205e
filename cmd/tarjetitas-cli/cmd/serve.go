package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tarjetitas/internal/adapters/web"
	"tarjetitas/internal/bootstrap"
	"tarjetitas/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the print view and a JSON API over HTTP",
	Long: `Serve the deck over HTTP:

  GET    /                  print view
  GET    /export            download tarjetitas.json
  POST   /import            replace the deck
  GET    /api/deck          dimensions and cards
  PATCH  /api/deck          resize
  POST   /api/deck/reset    erase every card
  GET    /api/cards/{id}    one card
  PUT    /api/cards/{id}    write one side

With the json storage driver the server also reloads the deck when another
process (the TUI or this CLI) changes it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt := GetRuntime()
		logger := rt.Logger.With(slog.String("component", "web"))

		handler := web.NewHandler(rt.Store, rt.Config.Grid.Limits(), rt.Notifier, logger)
		router := web.NewRouter(handler, logger)

		watch := func(ctx context.Context) error {
			err := rt.Watch(ctx)
			if errors.Is(err, bootstrap.ErrWatchUnsupported) {
				logger.Info("storage watch disabled", slog.String("driver", rt.Config.Storage.Driver))
				return nil
			}
			return err
		}

		return web.Serve(ctx, rt.Config.Serve.Addr, router, logger, watch)
	},
}

func init() {
	serveCmd.Flags().String("addr", config.DefaultServeAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}
