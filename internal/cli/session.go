package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/internal/presentation/tui"
	"github.com/aretw0/abacus/pkg/runner"
)

// RunSession executes one interactive (or piped) calculator session on stdin/stdout.
func RunSession(opts RunOptions) error {
	cfg, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	logger := createLogger(cfg, os.Stderr)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	calc, closeCache, err := createCalculator(sigCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error initializing calculator: %w", err)
	}
	defer closeCache()

	interactive := !opts.JSON && !opts.Headless && tui.IsTerminal(os.Stdout)
	if interactive {
		tui.PrintBanner(os.Stdout, abacus.Version)
	}

	r := runner.NewRunner(calc, createRunnerOptions(logger, opts, cfg.Input.MaxSize, interactive)...)
	runErr := r.Run(sigCtx)

	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	logCompletion(os.Stdout, interactive, runErr, opts.JSON || opts.Headless, sigCtx.Signal())

	return handleExecutionError(runErr)
}
