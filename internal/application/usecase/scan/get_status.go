// Package scan contains page ingestion use cases.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
)

// GetStatusInput represents the input for getting scan status.
type GetStatusInput struct {
	ClientID string
}

// GetStatusOutput represents the scan status for a client.
type GetStatusOutput struct {
	IsScanning   bool       `json:"is_scanning"`
	LastScanAt   *time.Time `json:"last_scan_at,omitempty"`
	ErrorCode    string     `json:"error_code,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// GetStatusUseCase reports whether a scan is in flight and how the last one
// ended.
type GetStatusUseCase struct {
	tracker adapter.ScanTracker
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(tracker adapter.ScanTracker) *GetStatusUseCase {
	return &GetStatusUseCase{
		tracker: tracker,
	}
}

// Execute retrieves the scan status for a client.
func (uc *GetStatusUseCase) Execute(ctx context.Context, input GetStatusInput) (*GetStatusOutput, error) {
	scanning, err := uc.tracker.IsScanning(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan state: %w", err)
	}

	code, message, err := uc.tracker.LastError(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to read last scan error: %w", err)
	}

	output := &GetStatusOutput{
		IsScanning:   scanning,
		ErrorCode:    code,
		ErrorMessage: message,
	}

	lastScanAt, err := uc.tracker.LastScanAt(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to read last scan time: %w", err)
	}
	if !lastScanAt.IsZero() {
		output.LastScanAt = &lastScanAt
	}

	return output, nil
}
