// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// ScanTracker tracks in-flight scans and the outcome of the most recent one.
// Ledger mutations from ingestion are serialized through it: a second scan
// for the same client is rejected while the first is running. Implemented
// in-memory or on Redis.
type ScanTracker interface {
	// TryBegin marks a scan as running for the client. Returns false when a
	// scan is already in flight.
	TryBegin(ctx context.Context, clientID string) (bool, error)

	// End clears the in-flight marker for the client.
	End(ctx context.Context, clientID string) error

	// IsScanning reports whether a scan is in flight for the client.
	IsScanning(ctx context.Context, clientID string) (bool, error)

	// SetLastError records the most recent scan failure for the client.
	SetLastError(ctx context.Context, clientID string, code string, message string) error

	// LastError returns the most recent scan failure, or empty strings when
	// the last scan succeeded.
	LastError(ctx context.Context, clientID string) (code string, message string, err error)

	// ClearLastError clears the recorded failure for the client.
	ClearLastError(ctx context.Context, clientID string) error

	// SetLastScanAt records the completion time of the last successful scan.
	SetLastScanAt(ctx context.Context, clientID string, at time.Time) error

	// LastScanAt returns the completion time of the last successful scan, or
	// the zero time when no scan has succeeded.
	LastScanAt(ctx context.Context, clientID string) (time.Time, error)

	// ClearLastScanAt clears the recorded completion time.
	ClearLastScanAt(ctx context.Context, clientID string) error
}
