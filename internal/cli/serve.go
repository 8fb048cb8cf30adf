package cli

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/aretw0/abacus/internal/config"
	httpadapter "github.com/aretw0/abacus/pkg/adapters/http"
	mcpadapter "github.com/aretw0/abacus/pkg/adapters/mcp"
	"github.com/aretw0/abacus/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Serve runs the HTTP API until SIGINT or SIGTERM.
func Serve(opts ServeOptions) error {
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Port != "" {
		cfg.HTTP.Port = opts.Port
	}
	logger := createLogger(cfg, os.Stderr)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	metrics := observability.NewMetrics()
	metrics.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	calc, closeCache, err := createCalculator(sigCtx, cfg, logger, metrics.Hooks())
	if err != nil {
		return fmt.Errorf("error initializing calculator: %w", err)
	}
	defer closeCache()

	if _, err := httpadapter.LoadSpec(sigCtx); err != nil {
		return err
	}

	handler := httpadapter.NewHandler(calc,
		httpadapter.WithMetricsHandler(metrics.Handler()),
		httpadapter.WithLogger(logger),
		httpadapter.WithMaxInputSize(cfg.Input.MaxSize),
	)

	addr := net.JoinHostPort("", cfg.HTTP.Port)
	printSystemMessage(os.Stderr, "abacus HTTP API on %s", addr)
	return httpadapter.ListenAndServe(sigCtx, addr, handler, logger)
}

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(opts MCPOptions) error {
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Transport != "" {
		cfg.MCP.Transport = opts.Transport
	}
	if opts.Port != 0 {
		cfg.MCP.Port = opts.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Stdout carries the protocol in stdio mode, so logs must stay on stderr.
	logger := createLogger(cfg, os.Stderr)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	calc, closeCache, err := createCalculator(sigCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error initializing calculator: %w", err)
	}
	defer closeCache()

	server := mcpadapter.NewServer(calc, logger, mcpadapter.WithMaxInputSize(cfg.Input.MaxSize))
	if cfg.MCP.Transport == config.TransportSSE {
		return server.ServeSSE(sigCtx, cfg.MCP.Port)
	}
	return server.ServeStdio()
}
