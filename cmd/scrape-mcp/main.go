// CLAUDE:SUMMARY MCP stdio host for the scrape bridge: documents and element handles addressed by id.
// Command scrape-mcp serves the scrape tools over MCP on stdin/stdout.
//
// Usage:
//
//	scrape-mcp                          # run with defaults
//	scrape-mcp -config scrape.yaml      # run with config file
//	scrape-mcp -log-level debug         # log every tool call to stderr
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/scrape/bridge"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to scrape.yaml config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath); err != nil {
		logger.Error("scrape-mcp: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath string) error {
	cfg := &bridge.Config{}
	if configPath != "" {
		loaded, err := bridge.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg = loaded
	}
	cfg.Logger = logger

	reg, err := bridge.New(*cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer reg.Close()

	srv := mcp.NewServer(&mcp.Implementation{Name: "scrape", Version: version}, nil)
	reg.RegisterMCP(srv)

	logger.Info("scrape-mcp: serving on stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	logger.Info("scrape-mcp: shutting down")
	return nil
}
