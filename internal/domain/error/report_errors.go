// Package error defines domain-specific errors for the Kakeibo Scan application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidMonth is returned when a month is outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidYear is returned when a year is outside the supported range.
	ErrInvalidYear = errors.New("year out of range")

	// ErrInvalidMonthsBack is returned when a trend window is not positive.
	ErrInvalidMonthsBack = errors.New("months back must be positive")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonth      ReportErrorCode = "RPT-010001"
	ErrCodeInvalidYear       ReportErrorCode = "RPT-010002"
	ErrCodeInvalidMonthsBack ReportErrorCode = "RPT-010003"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
