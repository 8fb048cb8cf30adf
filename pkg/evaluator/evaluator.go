// Package evaluator applies an Expression's operator to its operands.
package evaluator

import (
	"fmt"
	"math"

	"github.com/aretw0/abacus/pkg/domain"
)

// Evaluate computes the value of expr.
// Division follows IEEE 754: a zero divisor yields ±Inf, or NaN for 0/0.
// Callers detect that case with IsFinite.
func Evaluate(expr domain.Expression) float64 {
	switch expr.Operator {
	case domain.OpAdd:
		return expr.Left + expr.Right
	case domain.OpSubtract:
		return expr.Left - expr.Right
	case domain.OpMultiply:
		return expr.Left * expr.Right
	case domain.OpDivide:
		return expr.Left / expr.Right
	}
	panic(fmt.Sprintf("evaluator: unreachable operator %d in expression", expr.Operator))
}

// IsFinite reports whether v is neither infinite nor NaN.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
