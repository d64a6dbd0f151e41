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

// CreateEntryInput represents the input for manual entry creation.
type CreateEntryInput struct {
	Date       time.Time
	Label      string
	Amount     decimal.Decimal
	CategoryID uuid.UUID
	Note       string
}

// CreateEntryOutput represents the output of entry creation.
type CreateEntryOutput struct {
	Entry *entity.Entry
}

// CreateEntryUseCase handles manual entry creation logic.
type CreateEntryUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(entryRepo adapter.EntryRepository, categoryRepo adapter.CategoryRepository) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the entry creation.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	if input.Label == "" {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeEmptyLabel,
			"entry label is required",
			domainerror.ErrEmptyLabel,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeNegativeAmount,
			"entry amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidDate,
			"entry date is required",
			domainerror.ErrInvalidDate,
		)
	}

	// Entries always reference a real category id; names are resolved by
	// join, never stored in the reference field.
	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	entry := entity.NewEntry(input.Date, input.Label, input.Amount, input.CategoryID, input.Note, "")
	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &CreateEntryOutput{Entry: entry}, nil
}
