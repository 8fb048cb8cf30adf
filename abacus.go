package abacus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/abacus/pkg/domain"
	"github.com/aretw0/abacus/pkg/evaluator"
	"github.com/aretw0/abacus/pkg/ports"
	"github.com/aretw0/abacus/pkg/tokenizer"
)

// Calculator is the high-level entry point for the abacus library.
// It chains the tokenizer and the evaluator, turns non-finite results into
// domain.ErrDivisionByZero and optionally memoizes results in a cache.
// A Calculator is safe for concurrent use.
type Calculator struct {
	cache  ports.ResultCache
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Calculator.
type Option func(*Calculator)

// WithCache memoizes successful calculations in cache.
func WithCache(cache ports.ResultCache) Option {
	return func(c *Calculator) {
		c.cache = cache
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Calculator) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the calculator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Tokenize parses input without evaluating it.
func (c *Calculator) Tokenize(input string) (domain.Expression, error) {
	return tokenizer.Tokenize(input)
}

// Evaluate applies expr's operator. Unlike evaluator.Evaluate it rejects an
// invalid operator with domain.ErrUnknownOperator and reports a non-finite
// value as domain.ErrDivisionByZero.
func (c *Calculator) Evaluate(expr domain.Expression) (float64, error) {
	if !expr.Operator.Valid() {
		return 0, fmt.Errorf("%w: %d", domain.ErrUnknownOperator, expr.Operator)
	}
	value := evaluator.Evaluate(expr)
	if !evaluator.IsFinite(value) {
		return value, domain.ErrDivisionByZero
	}
	return value, nil
}

// Calculate tokenizes and evaluates a line of input.
func (c *Calculator) Calculate(ctx context.Context, input string) (domain.Result, error) {
	start := time.Now()
	event := &domain.CalculationEvent{
		Timestamp: start,
		Input:     input,
	}

	result, err := c.calculate(ctx, input, event)
	event.Duration = time.Since(start)
	if err != nil {
		event.Err = err
		c.logger.Debug("calculation failed", "input", input, "reason", domain.Reason(err), "err", err)
		if c.hooks.OnFailed != nil {
			c.hooks.OnFailed(ctx, event)
		}
		return domain.Result{}, err
	}

	event.Value = result.Value
	c.logger.Debug("calculation done", "input", input, "answer", result.Answer, "cache", event.Cache)
	if c.hooks.OnCalculated != nil {
		c.hooks.OnCalculated(ctx, event)
	}
	return result, nil
}

func (c *Calculator) calculate(ctx context.Context, input string, event *domain.CalculationEvent) (domain.Result, error) {
	key := tokenizer.Strip(input)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			event.Cache = domain.CacheHit
			event.Expression = &cached.Expression
			cached.Input = input
			return cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			event.Cache = domain.CacheMiss
		default:
			// Cache failures degrade to a miss.
			event.Cache = domain.CacheMiss
			c.logger.Warn("result cache lookup failed", "key", key, "err", err)
		}
	}

	expr, err := tokenizer.Tokenize(input)
	if err != nil {
		return domain.Result{}, err
	}
	event.Expression = &expr

	value, err := c.Evaluate(expr)
	if err != nil {
		return domain.Result{}, err
	}

	result := domain.NewResult(input, expr, value)
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, result); err != nil {
			c.logger.Warn("result cache store failed", "key", key, "err", err)
		}
	}
	return result, nil
}
