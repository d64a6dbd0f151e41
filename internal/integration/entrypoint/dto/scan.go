// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/kakeibo-scan/backend/internal/application/usecase/scan"
)

// ScanPageRequest represents the request body for scanning a ledger page.
type ScanPageRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type,omitempty"`
}

// ScanPageResponse represents the result of a page scan.
type ScanPageResponse struct {
	Entries      []EntryResponse `json:"entries"`
	CreatedCount int             `json:"created_count"`
	SkippedCount int             `json:"skipped_count"`
	FailedCount  int             `json:"failed_count"`
	Confidence   float64         `json:"confidence"`
}

// ScanStatusResponse represents the scan status for a client.
type ScanStatusResponse struct {
	IsScanning   bool       `json:"is_scanning"`
	LastScanAt   *time.Time `json:"last_scan_at,omitempty"`
	ErrorCode    string     `json:"error_code,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// ToScanPageResponse converts a scan use case output to a ScanPageResponse.
func ToScanPageResponse(output *scan.AnalyzePageOutput) ScanPageResponse {
	entries := make([]EntryResponse, 0, len(output.Entries))
	for _, entry := range output.Entries {
		entries = append(entries, ToEntryResponse(entry))
	}
	return ScanPageResponse{
		Entries:      entries,
		CreatedCount: output.CreatedCount,
		SkippedCount: output.SkippedCount,
		FailedCount:  output.FailedCount,
		Confidence:   output.Confidence,
	}
}

// ToScanStatusResponse converts a status use case output to a ScanStatusResponse.
func ToScanStatusResponse(output *scan.GetStatusOutput) ScanStatusResponse {
	return ScanStatusResponse{
		IsScanning:   output.IsScanning,
		LastScanAt:   output.LastScanAt,
		ErrorCode:    output.ErrorCode,
		ErrorMessage: output.ErrorMessage,
	}
}
