package errors

import (
	"strings"
	"unicode"
)

// MaxInputLength bounds the size of a single conversion request.
const MaxInputLength = 64 * 1024

// ValidateInput validates raw conversion input before it reaches the encoder.
// Grammar checks are left to the encoder, which reports the offending token;
// empty input is an empty token and fails there.
//
// The validation rules:
//   - Maximum length of MaxInputLength bytes
//   - No control characters (tabs and newlines included)
func ValidateInput(text string) error {
	if err := ValidateLength(len(text)); err != nil {
		return err
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "input contains control character %q", r)
		}
	}

	return nil
}

// ValidateLength rejects input of more than MaxInputLength bytes. Check raw
// input before NormalizeInput, which can shrink it below the limit.
func ValidateLength(n int) error {
	if n > MaxInputLength {
		return New(ErrCodeInvalidInput, "input too long (max %d bytes)", MaxInputLength)
	}
	return nil
}

// NormalizeInput collapses runs of whitespace (including newlines from
// files or stdin) into the single spaces the encoder expects.
func NormalizeInput(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ValidateFormat checks an output format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
