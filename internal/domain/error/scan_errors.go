// Package error defines domain-specific errors for the Kakeibo Scan application.
package error

import "errors"

// Scan (page ingestion) domain errors.
var (
	// ErrInvalidImage is returned when the uploaded image cannot be decoded.
	ErrInvalidImage = errors.New("invalid image payload")

	// ErrImageTooLarge is returned when the uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds size limit")

	// ErrScanInProgress is returned when a scan is already running for the client.
	ErrScanInProgress = errors.New("a scan is already in progress")

	// ErrEmptyScanResult is returned when analysis succeeds but finds no line items.
	// Distinct from a transport or parse failure: the page simply held nothing.
	ErrEmptyScanResult = errors.New("no entries found on page")

	// ErrVisionUnavailable is returned when the vision service is not configured.
	ErrVisionUnavailable = errors.New("vision service is not configured")
)

// ScanErrorCode defines error codes for scan errors.
// Format: SCN-XXYYYY where XX is category and YYYY is specific error.
type ScanErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidImage  ScanErrorCode = "SCN-010001"
	ErrCodeImageTooLarge ScanErrorCode = "SCN-010002"

	// Flow errors (02XXXX)
	ErrCodeScanInProgress    ScanErrorCode = "SCN-020001"
	ErrCodeEmptyScanResult   ScanErrorCode = "SCN-020002"
	ErrCodeVisionUnavailable ScanErrorCode = "SCN-020003"
	ErrCodeScanRateLimited   ScanErrorCode = "SCN-020004"

	// Vision call errors (03XXXX)
	ErrCodeVisionTimeout     ScanErrorCode = "SCN-030001"
	ErrCodeVisionRateLimited ScanErrorCode = "SCN-030002"
	ErrCodeVisionAuth        ScanErrorCode = "SCN-030003"
	ErrCodeVisionTransport   ScanErrorCode = "SCN-030004"
	ErrCodeVisionParse       ScanErrorCode = "SCN-030005"
	ErrCodeVisionUnknown     ScanErrorCode = "SCN-030006"
)

// ScanError represents a scan error with code and message.
type ScanError struct {
	Code    ScanErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewScanError creates a new ScanError with the given code and message.
func NewScanError(code ScanErrorCode, message string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
