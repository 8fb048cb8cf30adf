package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/abacus"
)

func runText(t *testing.T, input string) string {
	t.Helper()
	out := &bytes.Buffer{}
	r := NewRunner(abacus.New(), WithInputHandler(NewTextHandler(strings.NewReader(input), out)))
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestRunner_Run_Session(t *testing.T) {
	output := runText(t, "6 * 9\n3 + pi\n5 / 0\nabc\nq\n1+1\n")

	expected := []string{
		PromptMessage,
		"Answer: 54.00000",
		PromptMessage,
		"Answer: 6.14100",
		PromptMessage,
		"Cannot divide by 0",
		PromptMessage,
		"There was an error in the input string, please try again...",
		PromptMessage,
	}
	got := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(got) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(got), output)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
	if strings.Contains(output, "2.00000") {
		t.Error("Input after quit must not be processed")
	}
}

func TestRunner_Run_UppercaseQuit(t *testing.T) {
	output := runText(t, "Q\n6*9\n")
	if strings.Contains(output, "Answer") {
		t.Errorf("Expected no answers after Q, got %q", output)
	}
}

func TestRunner_Run_EOFEndsSession(t *testing.T) {
	// Last line has no trailing newline.
	output := runText(t, "25 * 4")
	if !strings.Contains(output, "Answer: 100.00000") {
		t.Errorf("Expected answer before EOF, got %q", output)
	}
}

func TestRunner_Run_EmptyLineIsAnInputError(t *testing.T) {
	output := runText(t, "\nq\n")
	if !strings.Contains(output, InputErrorMessage) {
		t.Errorf("Expected input error for empty line, got %q", output)
	}
}

func TestRunner_Run_Help(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("help\nq\n"), out,
		WithTextHandlerRenderer(func(s string) (string, error) { return "RENDERED", nil }),
	)
	r := NewRunner(abacus.New(), WithInputHandler(handler))
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "RENDERED") {
		t.Errorf("Expected rendered help, got %q", out.String())
	}
}

func TestRunner_Run_CommandsDisabled(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRunner(abacus.New(),
		WithInputHandler(NewJSONHandler(strings.NewReader("q\n6*9\n"), out)),
		WithCommands(false),
	)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 records, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"reason":"no_operator"`) {
		t.Errorf("Expected q to be calculated as data, got %s", lines[0])
	}
}

func TestRunner_Run_Cancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewRunner(abacus.New(), WithInputHandler(NewTextHandler(pr, io.Discard)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Runner did not stop after cancellation")
	}
}

type failingHandler struct{ TextHandler }

func (f *failingHandler) Input(ctx context.Context) (string, error) { return "1+1", nil }
func (f *failingHandler) Output(ctx context.Context, o Outcome) error {
	return errors.New("broken pipe")
}

func TestRunner_Run_OutputError(t *testing.T) {
	r := NewRunner(abacus.New(), WithInputHandler(&failingHandler{}))
	err := r.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("Expected output error, got %v", err)
	}
}
