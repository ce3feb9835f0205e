package main

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	mcpadapter "tarjetitas/internal/adapters/mcp"
	"tarjetitas/internal/bootstrap"
	"tarjetitas/internal/config"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "config file")
	envFile := pflag.String("env-file", ".env", "dotenv file loaded when present")
	pflag.String("driver", config.DriverJSON, "storage driver: json or sqlite")
	pflag.String("data-dir", config.DefaultDataDir, "directory holding the deck")
	pflag.String("log-level", "info", "log level")
	pflag.Parse()

	cfg, err := config.Load(config.Options{File: *configFile, EnvFile: *envFile, Flags: pflag.CommandLine})
	if err != nil {
		log.Fatalf("tarjetitas-mcp: %v", err)
	}

	// stdout carries the protocol
	logger := cfg.NewLogger(os.Stderr)

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("tarjetitas-mcp: %v", err)
	}
	defer rt.Close()

	mcpServer := server.NewMCPServer(
		"tarjetitas-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, rt.Store)
	mcpadapter.RegisterWriteTools(mcpServer, rt.Store, cfg.Grid.Limits(), rt.Notifier)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("tarjetitas-mcp: %v", err)
	}
}
