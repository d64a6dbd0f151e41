// Package entry contains ledger entry-related use cases.
package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
)

// DeleteEntryInput represents the input for entry deletion.
type DeleteEntryInput struct {
	ID uuid.UUID
}

// DeleteEntryUseCase handles entry deletion logic.
type DeleteEntryUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(entryRepo adapter.EntryRepository) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		entryRepo: entryRepo,
	}
}

// Execute performs the entry deletion. A missing id surfaces as not-found.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	if _, err := uc.entryRepo.FindByID(ctx, input.ID); err != nil {
		return err
	}

	if err := uc.entryRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}
