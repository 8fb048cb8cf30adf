/*
Package abacus is a single-operator arithmetic calculator.

A line of text holding two operands and one of the operators + - * / is
tokenized into a domain.Expression and then evaluated. The operand "pi" stands
for 3.141. There is no precedence, no parenthesisation and no multi-term input.

# Operator resolution

Operators are found with a fixed priority scan (+, -, *, /), not by position.
"6*-9" therefore splits on "-" and fails with an invalid left operand, while
"5--3" evaluates to 8. The same rule decides both the operator and the split
point, so the two never disagree.

# Usage

	calc := abacus.New()
	res, err := calc.Calculate(ctx, "25 * 4")
	switch {
	case errors.Is(err, domain.ErrDivisionByZero):
		fmt.Println("Cannot divide by 0")
	case err != nil:
		fmt.Println("There was an error in the input string, please try again...")
	default:
		fmt.Println("Answer:", res.Answer)
	}

The lower-level tokenizer and evaluator packages expose the two pure stages
on their own. The runner, http and mcp packages put the calculator behind an
interactive prompt, a JSON API and an MCP tool respectively.
*/
package abacus
