package abacus_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/pkg/domain"
)

func ExampleCalculator_Calculate() {
	calc := abacus.New()
	ctx := context.Background()

	for _, input := range []string{"25 * 4", "3 + pi", "5 / 0", "abc"} {
		res, err := calc.Calculate(ctx, input)
		switch {
		case errors.Is(err, domain.ErrDivisionByZero):
			fmt.Println("Cannot divide by 0")
		case err != nil:
			fmt.Println("error:", domain.Reason(err))
		default:
			fmt.Println("Answer:", res.Answer)
		}
	}
	// Output:
	// Answer: 100.00000
	// Answer: 6.14100
	// Cannot divide by 0
	// error: no_operator
}

func ExampleCalculator_Tokenize() {
	expr, err := abacus.New().Tokenize("6 * 9")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(expr.Operator, expr.Left, expr.Right)
	// Output: multiply 6 9
}
