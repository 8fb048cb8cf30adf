package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// DefaultMaxInputSize bounds a calculation line in bytes.
// EnvMaxInputSize overrides it for callers that pass no explicit limit.
const (
	DefaultMaxInputSize = 4096
	EnvMaxInputSize     = "ABACUS_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// MaxInputSize returns the limit from EnvMaxInputSize, or DefaultMaxInputSize
// when the variable is unset or not a positive integer.
func MaxInputSize() int {
	if size, err := strconv.Atoi(os.Getenv(EnvMaxInputSize)); err == nil && size > 0 {
		return size
	}
	return DefaultMaxInputSize
}

// SanitizeInput is SanitizeInputLimit with the MaxInputSize limit.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputLimit(input, MaxInputSize())
}

// SanitizeInputLimit prepares a line for the tokenizer. Lines longer than
// limit bytes or holding invalid UTF-8 are rejected; a non-positive limit
// means MaxInputSize. Terminal escape sequences are removed whole, so
// "6\x1b[31m*9" reads as "6*9", and any other control character except
// tab, newline and carriage return is dropped.
func SanitizeInputLimit(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = MaxInputSize()
	}
	if len(input) > limit {
		// Never truncated: a shortened operand would still parse.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, unsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(input)), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}
