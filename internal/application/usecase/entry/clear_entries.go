// Package entry contains ledger entry-related use cases.
package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
)

// ClearEntriesUseCase removes every ledger entry. The last-scan marker is
// cleared with them so a fresh install and a cleared ledger look the same.
type ClearEntriesUseCase struct {
	entryRepo adapter.EntryRepository
	tracker   adapter.ScanTracker
}

// NewClearEntriesUseCase creates a new ClearEntriesUseCase instance.
func NewClearEntriesUseCase(entryRepo adapter.EntryRepository, tracker adapter.ScanTracker) *ClearEntriesUseCase {
	return &ClearEntriesUseCase{
		entryRepo: entryRepo,
		tracker:   tracker,
	}
}

// Execute removes all entries and the scan bookkeeping for the client.
func (uc *ClearEntriesUseCase) Execute(ctx context.Context, clientID string) error {
	if err := uc.entryRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	if err := uc.tracker.ClearLastScanAt(ctx, clientID); err != nil {
		// Bookkeeping only; the ledger itself is already cleared.
		slog.Warn("Failed to clear last-scan marker", "error", err)
	}
	if err := uc.tracker.ClearLastError(ctx, clientID); err != nil {
		slog.Warn("Failed to clear last scan error", "error", err)
	}

	return nil
}
