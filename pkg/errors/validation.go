package errors

import (
	"math"
	"unicode"
)

// maxWordLength bounds the raw text of a single word.
const maxWordLength = 256

// ValidateWordText checks a word's raw text before it enters a layout pass.
//
// The rules are intentionally conservative:
//   - No empty text
//   - No control characters (newlines break single-line glyph boxes)
//   - Maximum length of 256 bytes
func ValidateWordText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "word text cannot be empty")
	}
	if len(text) > maxWordLength {
		return New(ErrCodeInvalidInput, "word text too long (max %d bytes)", maxWordLength)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "word %q contains control characters", text)
		}
	}
	return nil
}

// ValidateWeight rejects weights the size scales cannot map.
func ValidateWeight(text string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "word %q has non-finite value %v", text, v)
	}
	return nil
}

// ValidateViewport reports whether a viewport has a positive area.
func ValidateViewport(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return New(ErrCodeInvalidViewport, "viewport %vx%v has no area", width, height)
	}
	return nil
}
