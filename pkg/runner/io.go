package runner

import (
	"context"

	"github.com/aretw0/abacus/pkg/domain"
)

// Messages shown by the interactive prompt.
const (
	PromptMessage       = "Please enter a calculation (Type Q to quit)"
	AnswerPrefix        = "Answer: "
	DivideByZeroMessage = "Cannot divide by 0"
	InputErrorMessage   = "There was an error in the input string, please try again..."
)

// HelpMarkdown documents the accepted input for the help command.
const HelpMarkdown = `# abacus

Enter **one** calculation per line: two operands joined by one operator.

| Operator | Meaning  |
|----------|----------|
| ` + "`+`" + `      | add      |
| ` + "`-`" + `      | subtract |
| ` + "`*`" + `      | multiply |
| ` + "`/`" + `      | divide   |

Operands are decimal numbers or ` + "`pi`" + ` (3.141). Spaces are ignored.

Type ` + "`q`" + ` to quit.
`

// Outcome is the result of processing one input line.
type Outcome struct {
	Input  string
	Result domain.Result
	Err    error
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next line. io.EOF ends the session.
	Input(ctx context.Context) (string, error)

	// Output presents the outcome of one calculation.
	Output(ctx context.Context, outcome Outcome) error

	// Help presents usage information.
	Help(ctx context.Context) error
}
