package domain

import "fmt"

// Operator is the arithmetic operation requested by an expression.
// The zero value means no operator was recognized and is never carried by
// an Expression produced by the tokenizer.
type Operator uint8

const (
	OpAdd Operator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

// Valid reports whether o is one of the four known operators.
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// Symbol returns the character that denotes o in an input line.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	}
	return "?"
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "unknown"
}

// MarshalText encodes the operator by name ("add", "multiply", ...).
func (o Operator) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText accepts either the operator name or its symbol.
func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// ParseOperator resolves an operator from its name or symbol.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "add", "+":
		return OpAdd, nil
	case "subtract", "-":
		return OpSubtract, nil
	case "multiply", "*":
		return OpMultiply, nil
	case "divide", "/":
		return OpDivide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}
