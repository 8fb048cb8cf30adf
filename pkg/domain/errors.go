package domain

import (
	"errors"
	"fmt"
)

// ErrNoOperator is returned when none of + - * / appears in the input.
var ErrNoOperator = errors.New("no operator found")

// ErrInvalidLeftOperand is returned when the text before the operator is not a number or "pi".
var ErrInvalidLeftOperand = errors.New("invalid left operand")

// ErrInvalidRightOperand is returned when the text after the operator is not a number or "pi".
var ErrInvalidRightOperand = errors.New("invalid right operand")

// ErrDivisionByZero is reported when a division produces a non-finite value.
var ErrDivisionByZero = errors.New("cannot divide by 0")

// ErrUnknownOperator is returned when decoding an operator name that is not recognized.
var ErrUnknownOperator = errors.New("unknown operator")

// ErrCacheMiss is returned by result caches when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// ParseError describes why an input line could not be tokenized.
type ParseError struct {
	// Input is the line after whitespace removal.
	Input string
	// Operand is the text that failed to parse, empty for ErrNoOperator.
	Operand string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Operand == "" {
		return fmt.Sprintf("%v in %q", e.Err, e.Input)
	}
	return fmt.Sprintf("%v %q in %q", e.Err, e.Operand, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reason values exposed by the JSON, HTTP and MCP surfaces.
const (
	ReasonNoOperator          = "no_operator"
	ReasonInvalidLeftOperand  = "invalid_left_operand"
	ReasonInvalidRightOperand = "invalid_right_operand"
	ReasonDivisionByZero      = "division_by_zero"
	ReasonUnknownOperator     = "unknown_operator"
	ReasonInvalidInput        = "invalid_input"
)

// Reason maps an error from the calculation pipeline to its wire reason.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNoOperator):
		return ReasonNoOperator
	case errors.Is(err, ErrInvalidLeftOperand):
		return ReasonInvalidLeftOperand
	case errors.Is(err, ErrInvalidRightOperand):
		return ReasonInvalidRightOperand
	case errors.Is(err, ErrDivisionByZero):
		return ReasonDivisionByZero
	case errors.Is(err, ErrUnknownOperator):
		return ReasonUnknownOperator
	}
	return ReasonInvalidInput
}

// IsParseError reports whether err came from tokenization.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
