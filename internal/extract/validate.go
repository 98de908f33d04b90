package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Minimum trimmed lengths per format, counted in characters. Below
// these an extraction is rejected rather than silently handed
// downstream.
const (
	minTextLength = 10
	minDocxLength = 30
	minPDFLength  = 10

	// A PDF page's text layer is considered sufficient above this
	// trimmed length; below it the page becomes an OCR candidate.
	pageTextThreshold = 30
)

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the result. Applied to every extraction before it is handed
// downstream so prompt token cost and citation matching behave the same
// regardless of the original format.
func NormalizeWhitespace(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// validate is the single chokepoint applied at the end of every
// format-specific extractor. It normalizes whitespace and enforces the
// format's minimum length in runes, so multi-byte scripts are measured
// by characters rather than encoded size.
func validate(text string, minLength int, cause string) (string, error) {
	normalized := NormalizeWhitespace(text)
	if utf8.RuneCountInString(strings.TrimSpace(normalized)) < minLength {
		return "", tooShortErr(cause)
	}
	return normalized, nil
}
