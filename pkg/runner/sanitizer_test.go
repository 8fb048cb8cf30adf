package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/abacus"
)

func TestSanitizeInputLimit_Size(t *testing.T) {
	if _, err := SanitizeInputLimit("6 * 9", 5); err != nil {
		t.Errorf("Expected a line exactly at the limit to pass, got %v", err)
	}

	_, err := SanitizeInputLimit("6 * 99", 5)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("Expected ErrInputTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "size=6 limit=5") {
		t.Errorf("Expected size details in %q", err.Error())
	}
}

func TestSanitizeInputLimit_DefaultsWhenUnset(t *testing.T) {
	line := strings.Repeat("1", DefaultMaxInputSize) + "+1"
	if _, err := SanitizeInputLimit(line, 0); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("Expected the default limit to apply, got %v", err)
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")

	if MaxInputSize() != 8 {
		t.Fatalf("Expected MaxInputSize 8, got %d", MaxInputSize())
	}
	if _, err := SanitizeInput("1234+5678"); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("Expected env limit to reject 9 bytes, got %v", err)
	}

	t.Setenv(EnvMaxInputSize, "lots")
	if MaxInputSize() != DefaultMaxInputSize {
		t.Errorf("Expected fallback to default for a bad value, got %d", MaxInputSize())
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	if _, err := SanitizeInput("6*\xff9"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

func TestSanitizeInput_InjectedSequencesStillCalculate(t *testing.T) {
	calc := abacus.New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "6*9", "54.00000"},
		{"Color Around Operator", "6\x1b[31m*9", "54.00000"},
		{"Color Reset", "\x1b[1m6\x1b[0m * 9", "54.00000"},
		{"Null Byte", "6\x00*9", "54.00000"},
		{"Bell", "pi+3\x07", "6.14100"},
		{"Tab Kept For Tokenizer", "3\t-\t5.6", "-2.60000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := SanitizeInput(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			res, err := calc.Calculate(context.Background(), clean)
			if err != nil {
				t.Fatalf("Calculate(%q) failed: %v", clean, err)
			}
			if res.Answer != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, res.Answer)
			}
		})
	}
}

func TestSanitizeInput_CleanLineUnchanged(t *testing.T) {
	in := "  12.5 / pi \r\n"
	got, err := SanitizeInput(in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != in {
		t.Errorf("Expected %q untouched, got %q", in, got)
	}
}
