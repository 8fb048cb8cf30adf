/*
Package runner implements the interactive read-calculate-print loop.

It acts as the bridge between the calculator and the outside world. Each
line read through an IOHandler is calculated and the outcome written back
through the same handler.

# Key Components

  - Runner: The loop itself; stops on "q"/"Q", end of input or cancellation.
  - IOHandler: Decouples how lines are read and outcomes presented.
  - TextHandler: Prompted terminal interaction with the classic messages.
  - JSONHandler: One NDJSON record per input line, for scripting.

# Usage

	r := runner.NewRunner(abacus.New(),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
