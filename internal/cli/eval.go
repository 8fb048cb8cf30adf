package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/pkg/runner"
)

// Eval calculates a single expression and prints the answer to w.
// A rejected expression is printed like in a session and returned as an error.
func Eval(opts Options, expression string, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := createLogger(cfg, os.Stderr)

	ctx := context.Background()
	calc, closeCache, err := createCalculator(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error initializing calculator: %w", err)
	}
	defer closeCache()

	input, err := runner.SanitizeInputLimit(expression, cfg.Input.MaxSize)
	if err != nil {
		return err
	}

	res, calcErr := calc.Calculate(ctx, input)
	handler := runner.NewTextHandler(nil, w)
	if err := handler.Output(ctx, runner.Outcome{Input: input, Result: res, Err: calcErr}); err != nil {
		return err
	}
	return calcErr
}

// SelfTest runs the built-in checks and reports the outcome to w.
func SelfTest(opts Options, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := createLogger(cfg, os.Stderr)

	calc, closeCache, err := createCalculator(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("error initializing calculator: %w", err)
	}
	defer closeCache()

	if err := calc.SelfTest(); err != nil {
		fmt.Fprintf(w, "Self test FAILED:\n%v\n", err)
		return errors.New("self test failed")
	}
	fmt.Fprintf(w, "Self test passed (%d checks).\n", abacus.SelfTestCount())
	return nil
}
