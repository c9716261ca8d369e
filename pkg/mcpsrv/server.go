package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/cache"
	"github.com/usestring/salesdash-mcp/internal/config"
	"github.com/usestring/salesdash-mcp/internal/conversation"
	"github.com/usestring/salesdash-mcp/internal/dashboard"
	"github.com/usestring/salesdash-mcp/internal/logging"
	"github.com/usestring/salesdash-mcp/internal/mcp"
	"github.com/usestring/salesdash-mcp/internal/mcp/tools"
	"github.com/usestring/salesdash-mcp/internal/metrics"
	"github.com/usestring/salesdash-mcp/internal/query"
	"github.com/usestring/salesdash-mcp/pkg/client"
)

const metricsShutdownTimeout = 5 * time.Second

// Server is the salesdash MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal    *mcp.Server
	deps        *Deps
	metricsAddr string
	logCleanup  func() error
}

// NewServer creates a new MCP server with builtin salesdash tools.
//
// The client talks to the chat backend. When nil, one is built from the
// configured endpoint and timeout. Use functional options to configure
// logging, add custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.account != "" {
		cfg.config.Account = cfg.account
	}
	if cfg.metricsAddr != "" {
		cfg.config.MetricsAddr = cfg.metricsAddr
	}

	// Setup logging
	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	if c == nil {
		httpClient := cfg.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.config.HTTPClientTimeout}
		}
		c = client.New(client.WithEndpoint(cfg.config.APIEndpoint), client.WithHTTPClient(httpClient))
	}

	// Create infrastructure
	payloads, err := cache.NewPayloadStore(cfg.config.PayloadStoreMaxItems)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create payload store: %w", err)
	}

	toolDeps := &tools.Deps{
		Client:        c,
		Config:        cfg.config,
		Responses:     cache.NewResponseCache(cfg.config.CacheMaxItems, cfg.config.CacheTTL),
		Payloads:      payloads,
		Conversations: conversation.NewStore(),
		Query:         query.NewEngine(0),
		Metrics:       metrics.New(),
	}
	toolDeps.Dashboard = dashboard.NewFetcher(c, toolDeps.StoreTab, dashboard.Config{
		MaxTabs:    cfg.config.DashboardMaxTabs,
		Workers:    cfg.config.DashboardWorkers,
		ParseDepth: cfg.config.ParseMaxDepth,
	})

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Client:        toolDeps.Client,
		Config:        toolDeps.Config,
		Responses:     toolDeps.Responses,
		Payloads:      toolDeps.Payloads,
		Conversations: toolDeps.Conversations,
		Query:         toolDeps.Query,
		Dashboard:     toolDeps.Dashboard,
		Metrics:       toolDeps.Metrics,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	// Create internal server
	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:    internal,
		deps:        deps,
		metricsAddr: cfg.config.MetricsAddr,
		logCleanup:  logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// When a metrics address is configured, /metrics is served alongside.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.metricsAddr != "" {
		ms := metrics.NewServer(s.metricsAddr, s.deps.Metrics.Registry())
		go func() {
			slog.Info("serving metrics", slog.String("addr", s.metricsAddr))
			if err := ms.ListenAndServe(); err != nil {
				slog.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := ms.Shutdown(shutdownCtx); err != nil {
				slog.Warn("metrics server shutdown", slog.String("error", err.Error()))
			}
		}()
	}
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
