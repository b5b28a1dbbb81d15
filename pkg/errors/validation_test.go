package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateWordText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "kibana", false},
		{"valid with space", "right angled", false},
		{"valid unicode", "größe", false},
		{"valid emoji", "go🚀", false},
		{"max length", strings.Repeat("a", maxWordLength), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", maxWordLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWordText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWordText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateWordText(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -3, false},
		{"large", 1e300, false},
		{"nan", math.NaN(), true},
		{"+inf", math.Inf(1), true},
		{"-inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight("w", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"positive", 800, 600, false},
		{"fractional", 0.5, 0.5, false},
		{"zero width", 0, 600, true},
		{"zero height", 800, 0, true},
		{"negative", -1, 600, true},
		{"nan", math.NaN(), 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewport(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewport(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidViewport {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidViewport)
			}
		})
	}
}
