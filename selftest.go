package abacus

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/abacus/pkg/domain"
)

// SelfTestTolerance is the absolute difference accepted when comparing values.
const SelfTestTolerance = 1e-3

type tokenizeCheck struct {
	input string
	want  domain.Expression
}

type evaluateCheck struct {
	expr domain.Expression
	want float64
}

var tokenizeChecks = []tokenizeCheck{
	{"6*9", domain.Expression{Left: 6, Right: 9, Operator: domain.OpMultiply}},
	{"6 * 9", domain.Expression{Left: 6, Right: 9, Operator: domain.OpMultiply}},
	{"25 * 4", domain.Expression{Left: 25, Right: 4, Operator: domain.OpMultiply}},
	{"3 + pi", domain.Expression{Left: 3, Right: domain.Pi, Operator: domain.OpAdd}},
}

var evaluateChecks = []evaluateCheck{
	{domain.Expression{Left: 10, Right: 4, Operator: domain.OpMultiply}, 40},
	{domain.Expression{Left: 25.3, Right: 18.6, Operator: domain.OpAdd}, 43.9},
	{domain.Expression{Left: 3, Right: 5.6, Operator: domain.OpSubtract}, -2.6},
	{domain.Expression{Left: 6, Right: 2, Operator: domain.OpDivide}, 3},
}

// SelfTest runs the built-in smoke checks against c and returns every
// mismatch joined into one error, or nil when all checks pass.
func (c *Calculator) SelfTest() error {
	var errs []error

	for _, chk := range tokenizeChecks {
		got, err := c.Tokenize(chk.input)
		if err != nil {
			errs = append(errs, fmt.Errorf("tokenize %q: %w", chk.input, err))
			continue
		}
		if got.Operator != chk.want.Operator || !near(got.Left, chk.want.Left) || !near(got.Right, chk.want.Right) {
			errs = append(errs, fmt.Errorf("tokenize %q: got %v, want %v", chk.input, got, chk.want))
		}
	}

	for _, chk := range evaluateChecks {
		got, err := c.Evaluate(chk.expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("evaluate %v: %w", chk.expr, err))
			continue
		}
		if !near(got, chk.want) {
			errs = append(errs, fmt.Errorf("evaluate %v: got %s, want %s", chk.expr, domain.FormatValue(got), domain.FormatValue(chk.want)))
		}
	}

	if _, err := c.Evaluate(domain.Expression{Left: 5, Right: 0, Operator: domain.OpDivide}); !errors.Is(err, domain.ErrDivisionByZero) {
		errs = append(errs, fmt.Errorf("evaluate 5 / 0: got %v, want %v", err, domain.ErrDivisionByZero))
	}

	return errors.Join(errs...)
}

// SelfTestCount is the number of checks SelfTest performs.
func SelfTestCount() int {
	return len(tokenizeChecks) + len(evaluateChecks) + 1
}

func near(value, expected float64) bool {
	return math.Abs(value-expected) <= SelfTestTolerance
}
