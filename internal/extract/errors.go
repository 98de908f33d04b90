package extract

import (
	"errors"
	"fmt"
)

// Sentinel errors for the extraction taxonomy. Callers branch with
// errors.Is; user-facing messages come from the wrapping error.
var (
	// ErrTooShort means the extracted text is below the minimum usable
	// length for its format. Recoverable by uploading a cleaner file.
	ErrTooShort = errors.New("ExtractionTooShort")

	// ErrFailed means a decoder-level failure: corrupt container,
	// unsupported encoding, unreadable structure.
	ErrFailed = errors.New("ExtractionFailed")

	// ErrOCR is page-local. It never aborts extraction of sibling pages;
	// it is logged and the page contributes empty text.
	ErrOCR = errors.New("OcrFailure")
)

// tooShortErr builds an ErrTooShort with a human-readable cause.
func tooShortErr(cause string) error {
	return fmt.Errorf("%w: %s", ErrTooShort, cause)
}

// failedErr wraps a decoder failure under ErrFailed.
func failedErr(cause string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFailed, cause, err)
	}
	return fmt.Errorf("%w: %s", ErrFailed, cause)
}
