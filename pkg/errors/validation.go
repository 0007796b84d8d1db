package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxSpan bounds the column span a single cell may request. Larger values are
// legal for the engine (they clamp to the column count) but almost always a
// typo in a board file.
const MaxSpan = 64

// MaxWidth bounds viewport and cell widths in pixels. Column counts, and with
// them the cost of a layout pass, grow with the width.
const MaxWidth = 1 << 16

// idRegex matches cell and board identifiers.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateID validates a cell or board identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Letters, digits and . _ : - only, starting with a letter or digit
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "identifier too long (max 128 characters)")
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid identifier: %q", id)
	}
	return nil
}

// ValidateSpan validates a requested column span.
func ValidateSpan(span int) error {
	if span < 1 {
		return New(ErrCodeInvalidInput, "span must be at least 1, got %d", span)
	}
	if span > MaxSpan {
		return New(ErrCodeInvalidInput, "span too large (max %d), got %d", MaxSpan, span)
	}
	return nil
}

// ValidateLength validates a pixel length such as a width or a height.
// Zero is allowed; negative, NaN and infinite values are not.
func ValidateLength(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative, got %g", name, v)
	}
	return nil
}

// ValidateWidth is [ValidateLength] with an upper bound of [MaxWidth].
func ValidateWidth(name string, v float64) error {
	if err := ValidateLength(name, v); err != nil {
		return err
	}
	if v > MaxWidth {
		return New(ErrCodeInvalidInput, "%s too large (max %d), got %g", name, MaxWidth, v)
	}
	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
