// Package error defines domain-specific errors for the Kakeibo Scan application.
package error

import "errors"

// Entry domain errors.
var (
	// ErrEntryNotFound is returned when an entry is not found in the store.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrNegativeAmount is returned when an entry amount is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrEmptyLabel is returned when an entry label is empty.
	ErrEmptyLabel = errors.New("label must not be empty")

	// ErrInvalidDate is returned when an entry date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// EntryErrorCode defines error codes for entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeAmount     EntryErrorCode = "ENT-010001"
	ErrCodeEmptyLabel         EntryErrorCode = "ENT-010002"
	ErrCodeInvalidDate        EntryErrorCode = "ENT-010003"
	ErrCodeMissingEntryFields EntryErrorCode = "ENT-010004"

	// Lookup errors (02XXXX)
	ErrCodeEntryNotFound EntryErrorCode = "ENT-020001"
)

// EntryError represents an entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
