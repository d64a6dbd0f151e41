// Package tracker provides ScanTracker implementations for in-memory and
// Redis-backed scan bookkeeping.
package tracker

import (
	"context"
	"sync"
	"time"
)

// clientState holds the tracked state for one client.
type clientState struct {
	scanning     bool
	errorCode    string
	errorMessage string
	lastScanAt   time.Time
}

// MemoryTracker is the default single-process ScanTracker.
type MemoryTracker struct {
	mu      sync.Mutex
	clients map[string]*clientState
}

// NewMemoryTracker creates a new in-memory scan tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		clients: make(map[string]*clientState),
	}
}

func (t *MemoryTracker) state(clientID string) *clientState {
	st, ok := t.clients[clientID]
	if !ok {
		st = &clientState{}
		t.clients[clientID] = st
	}
	return st
}

// TryBegin marks a scan as running. Returns false when one is in flight.
func (t *MemoryTracker) TryBegin(_ context.Context, clientID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(clientID)
	if st.scanning {
		return false, nil
	}
	st.scanning = true
	return true, nil
}

// End clears the in-flight marker.
func (t *MemoryTracker) End(_ context.Context, clientID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state(clientID).scanning = false
	return nil
}

// IsScanning reports whether a scan is in flight.
func (t *MemoryTracker) IsScanning(_ context.Context, clientID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state(clientID).scanning, nil
}

// SetLastError records the most recent scan failure.
func (t *MemoryTracker) SetLastError(_ context.Context, clientID string, code string, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(clientID)
	st.errorCode = code
	st.errorMessage = message
	return nil
}

// LastError returns the most recent scan failure.
func (t *MemoryTracker) LastError(_ context.Context, clientID string) (string, string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(clientID)
	return st.errorCode, st.errorMessage, nil
}

// ClearLastError clears the recorded failure.
func (t *MemoryTracker) ClearLastError(_ context.Context, clientID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(clientID)
	st.errorCode = ""
	st.errorMessage = ""
	return nil
}

// SetLastScanAt records the completion time of the last successful scan.
func (t *MemoryTracker) SetLastScanAt(_ context.Context, clientID string, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state(clientID).lastScanAt = at
	return nil
}

// LastScanAt returns the completion time of the last successful scan.
func (t *MemoryTracker) LastScanAt(_ context.Context, clientID string) (time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state(clientID).lastScanAt, nil
}

// ClearLastScanAt clears the recorded completion time.
func (t *MemoryTracker) ClearLastScanAt(_ context.Context, clientID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state(clientID).lastScanAt = time.Time{}
	return nil
}
