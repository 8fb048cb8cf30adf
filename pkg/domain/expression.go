package domain

import (
	"fmt"
	"strconv"
)

// Pi is the value substituted for the literal operand "pi".
const Pi = 3.141

// Expression is a parsed, ready-to-evaluate calculation: two operands and
// the operator joining them.
type Expression struct {
	Left     float64  `json:"left"`
	Right    float64  `json:"right"`
	Operator Operator `json:"operator"`
}

func (e Expression) String() string {
	return fmt.Sprintf("%s %s %s", FormatOperand(e.Left), e.Operator.Symbol(), FormatOperand(e.Right))
}

// Result is the outcome of a successful calculation.
type Result struct {
	Input      string     `json:"input"`
	Expression Expression `json:"expression"`
	Value      float64    `json:"value"`
	Answer     string     `json:"answer"`
}

// NewResult builds a Result, rendering the value in fixed notation.
func NewResult(input string, expr Expression, value float64) Result {
	return Result{
		Input:      input,
		Expression: expr,
		Value:      value,
		Answer:     FormatValue(value),
	}
}

// FormatValue renders a value with exactly five fractional digits.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}

// FormatOperand renders an operand in its shortest exact form.
func FormatOperand(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
