package cli

import (
	"log/slog"
	"os"

	"github.com/aretw0/abacus/internal/presentation/tui"
	"github.com/aretw0/abacus/pkg/runner"
)

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(logger *slog.Logger, opts RunOptions, maxInput int, interactive bool) []runner.Option {
	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
	}

	if opts.JSON {
		handler := runner.NewJSONHandler(os.Stdin, os.Stdout)
		handler.MaxInputSize = maxInput
		return append(runnerOpts,
			runner.WithInputHandler(handler),
			runner.WithCommands(false),
		)
	}

	handlerOpts := []runner.TextHandlerOption{runner.WithTextHandlerMaxInputSize(maxInput)}
	if interactive {
		answer, failure := tui.Styles(os.Stdout)
		handlerOpts = append(handlerOpts,
			runner.WithTextHandlerRenderer(tui.NewRenderer()),
			runner.WithTextHandlerStyles(answer, failure),
		)
	}
	return append(runnerOpts, runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout, handlerOpts...)))
}
