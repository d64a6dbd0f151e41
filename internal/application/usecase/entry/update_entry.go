// Package entry contains ledger entry-related use cases.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

// UpdateEntryInput represents the input for entry update. Nil fields are
// left unchanged.
type UpdateEntryInput struct {
	ID         uuid.UUID
	Date       *time.Time
	Label      *string
	Amount     *decimal.Decimal
	CategoryID *uuid.UUID
	Note       *string
}

// UpdateEntryOutput represents the output of entry update.
type UpdateEntryOutput struct {
	Entry *entity.Entry
}

// UpdateEntryUseCase handles entry update logic.
type UpdateEntryUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(entryRepo adapter.EntryRepository, categoryRepo adapter.CategoryRepository) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the entry update. UpdatedAt is bumped only here: creation
// leaves it equal to CreatedAt.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	entry, err := uc.entryRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		if *input.Label == "" {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeEmptyLabel,
				"entry label must not be empty",
				domainerror.ErrEmptyLabel,
			)
		}
		entry.Label = *input.Label
	}

	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeNegativeAmount,
				"entry amount must not be negative",
				domainerror.ErrNegativeAmount,
			)
		}
		entry.Amount = *input.Amount
	}

	if input.Date != nil {
		entry.Date = entity.TruncateToDay(*input.Date)
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		entry.CategoryID = *input.CategoryID
	}

	if input.Note != nil {
		entry.Note = *input.Note
	}

	entry.UpdatedAt = time.Now().UTC()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return &UpdateEntryOutput{Entry: entry}, nil
}
