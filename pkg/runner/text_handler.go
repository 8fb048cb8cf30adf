package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/abacus/pkg/domain"
)

// ContentRenderer is a function that transforms content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the runner.
type ContentRenderer func(string) (string, error)

// Style decorates a line of output, e.g. with terminal colors.
type Style func(string) string

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader       *bufio.Reader
	Writer       io.Writer
	Renderer     ContentRenderer
	AnswerStyle  Style
	FailureStyle Style
	MaxInputSize int

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the help renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerStyles configures the styles for answers and failure messages.
func WithTextHandlerStyles(answer, failure Style) TextHandlerOption {
	return func(h *TextHandler) {
		h.AnswerStyle = answer
		h.FailureStyle = failure
	}
}

// WithTextHandlerMaxInputSize overrides the sanitizer size limit.
func WithTextHandlerMaxInputSize(limit int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxInputSize = limit
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honour context cancellation.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				close(h.inputChan)
				return
			}
			// Send non-EOF errors
			h.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// Input prints the prompt and reads the next line.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	// Ensure the pump is running
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprintln(h.Writer, PromptMessage)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			text := strings.TrimRight(res.text, "\r\n")

			clean, err := SanitizeInputLimit(text, h.MaxInputSize)
			if err != nil {
				fmt.Fprintln(h.Writer, h.failure(fmt.Sprintf("Error: %v. Please try again.", err)))
				continue
			}
			return clean, nil
		}
	}
}

// Output prints the answer or the matching failure message.
func (h *TextHandler) Output(ctx context.Context, outcome Outcome) error {
	var err error
	switch {
	case outcome.Err == nil:
		_, err = fmt.Fprintln(h.Writer, h.answer(AnswerPrefix+outcome.Result.Answer))
	case errors.Is(outcome.Err, domain.ErrDivisionByZero):
		_, err = fmt.Fprintln(h.Writer, h.failure(DivideByZeroMessage))
	default:
		_, err = fmt.Fprintln(h.Writer, h.failure(InputErrorMessage))
	}
	return err
}

// Help prints the usage text, rendered when a renderer is configured.
func (h *TextHandler) Help(ctx context.Context) error {
	output := HelpMarkdown
	if h.Renderer != nil {
		if rendered, err := h.Renderer(HelpMarkdown); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	return err
}

func (h *TextHandler) answer(s string) string {
	if h.AnswerStyle != nil {
		return h.AnswerStyle(s)
	}
	return s
}

func (h *TextHandler) failure(s string) string {
	if h.FailureStyle != nil {
		return h.FailureStyle(s)
	}
	return s
}
