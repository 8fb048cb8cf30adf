// Package tokenizer turns a line of free-form text into a domain.Expression.
//
// Operators are located with a fixed priority scan (+, then -, then *, then /)
// rather than by their position in the line, so an input holding more than one
// operator character always splits on the highest-priority one present.
package tokenizer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/abacus/pkg/domain"
)

// priority is scanned top to bottom both to pick the operator and to find the split point.
var priority = []struct {
	symbol   string
	operator domain.Operator
}{
	{"+", domain.OpAdd},
	{"-", domain.OpSubtract},
	{"*", domain.OpMultiply},
	{"/", domain.OpDivide},
}

// Tokenize parses input into an Expression.
// Failures are returned as *domain.ParseError wrapping ErrNoOperator,
// ErrInvalidLeftOperand or ErrInvalidRightOperand.
func Tokenize(input string) (domain.Expression, error) {
	expr := Strip(input)

	op, pos, ok := findOperator(expr)
	if !ok {
		return domain.Expression{}, &domain.ParseError{Input: expr, Err: domain.ErrNoOperator}
	}

	lhs := expr[:pos]
	left, ok := parseOperand(lhs)
	if !ok {
		return domain.Expression{}, &domain.ParseError{Input: expr, Operand: lhs, Err: domain.ErrInvalidLeftOperand}
	}

	rhs := expr[pos+1:]
	right, ok := parseOperand(rhs)
	if !ok {
		return domain.Expression{}, &domain.ParseError{Input: expr, Operand: rhs, Err: domain.ErrInvalidRightOperand}
	}

	return domain.Expression{
		Left:     left,
		Right:    right,
		Operator: op,
	}, nil
}

// Strip removes every Unicode whitespace character from s, including those inside operands.
func Strip(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// findOperator returns the highest-priority operator present in s and the
// index of its first occurrence.
func findOperator(s string) (domain.Operator, int, bool) {
	for _, p := range priority {
		if pos := strings.Index(s, p.symbol); pos >= 0 {
			return p.operator, pos, true
		}
	}
	return 0, 0, false
}

func parseOperand(s string) (float64, bool) {
	if s == "pi" {
		return domain.Pi, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
