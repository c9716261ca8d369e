package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/salesdash-mcp/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create MCP server with all builtin tools. The chat backend client is
	// built from the environment:
	// - SALESDASH_API_ENDPOINT: chat endpoint (default http://localhost:8000/chat)
	// - SALESDASH_ACCOUNT: account questions are asked against
	// - LOG_LEVEL, LOG_FILE: logging
	// - METRICS_ADDR: serve Prometheus metrics when set
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(nil)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	// Run the server with stdio transport
	slog.Info("starting salesdash MCP server on stdio",
		slog.String("endpoint", server.Deps().Client.Endpoint()),
		slog.String("account", server.Deps().Config.Account))
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
