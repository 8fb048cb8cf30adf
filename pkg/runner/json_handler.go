package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/aretw0/abacus/pkg/domain"
)

// Record is one NDJSON line emitted by JSONHandler.
type Record struct {
	Input      string             `json:"input"`
	Expression *domain.Expression `json:"expression,omitempty"`
	Value      *float64           `json:"value,omitempty"`
	Answer     string             `json:"answer,omitempty"`
	Error      string             `json:"error,omitempty"`
	Reason     string             `json:"reason,omitempty"`
}

// NewRecord converts an Outcome to its wire form.
func NewRecord(outcome Outcome) Record {
	rec := Record{Input: outcome.Input}
	if outcome.Err != nil {
		rec.Reason = domain.Reason(outcome.Err)
		rec.Error = InputErrorMessage
		if errors.Is(outcome.Err, domain.ErrDivisionByZero) {
			rec.Error = DivideByZeroMessage
		}
		return rec
	}
	expr := outcome.Result.Expression
	value := outcome.Result.Value
	rec.Expression = &expr
	rec.Value = &value
	rec.Answer = outcome.Result.Answer
	return rec
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader       *bufio.Reader
	Writer       io.Writer
	Encoder      *json.Encoder
	MaxInputSize int
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

// Input reads the next non-blank line. A line holding a JSON string is unquoted;
// anything else is taken verbatim.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := h.Reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			if err != nil {
				return "", err
			}
			continue
		}

		var val string
		if jsonErr := json.Unmarshal([]byte(text), &val); jsonErr == nil {
			text = val
		}

		clean, sanitizeErr := SanitizeInputLimit(text, h.MaxInputSize)
		if sanitizeErr != nil {
			if encErr := h.Encoder.Encode(Record{Error: sanitizeErr.Error(), Reason: domain.ReasonInvalidInput}); encErr != nil {
				return "", encErr
			}
			continue
		}
		return clean, nil
	}
}

// Output emits the outcome as a single JSON line.
func (h *JSONHandler) Output(ctx context.Context, outcome Outcome) error {
	return h.Encoder.Encode(NewRecord(outcome))
}

// Help emits the usage text as a JSON line.
func (h *JSONHandler) Help(ctx context.Context) error {
	return h.Encoder.Encode(map[string]string{"help": HelpMarkdown})
}
