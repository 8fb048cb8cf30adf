package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/abacus/pkg/domain"
)

// Calculator is the part of abacus.Calculator the runner depends on.
type Calculator interface {
	Calculate(ctx context.Context, input string) (domain.Result, error)
}

// Runner handles the read-calculate-print loop using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	Calculator Calculator

	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Commands enables the "q"/"Q" quit and "help"/"?" commands.
	// JSON mode disables them so every line is treated as data.
	Commands bool
}

// NewRunner creates a new Runner for calc.
func NewRunner(calc Calculator, opts ...Option) *Runner {
	r := &Runner{
		Calculator: calc,
		Commands:   true,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes input lines until the user quits, input ends (io.EOF) or ctx is done.
// Quitting and end of input return nil; cancellation returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	handler := r.resolveHandler()
	processed := 0

	for {
		line, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed", "processed", processed)
				return nil
			}
			return err
		}

		if r.Commands {
			switch line {
			case "q", "Q":
				r.Logger.Debug("quit requested", "processed", processed)
				return nil
			case "help", "?":
				if err := handler.Help(ctx); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
				continue
			}
		}

		res, calcErr := r.Calculator.Calculate(ctx, line)
		processed++
		if calcErr != nil {
			r.Logger.Debug("input rejected", "input", line, "reason", domain.Reason(calcErr))
		}

		if err := handler.Output(ctx, Outcome{Input: line, Result: res, Err: calcErr}); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		// Memoize to prevent creating new pumps on subsequent Run() calls
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}
