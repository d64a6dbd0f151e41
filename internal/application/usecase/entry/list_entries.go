// Package entry contains ledger entry-related use cases.
package entry

import (
	"context"
	"fmt"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

// ListEntriesInput represents the input for listing entries. When Year and
// Month are both set the result is scoped to that calendar month.
type ListEntriesInput struct {
	Year  *int
	Month *int
}

// ListEntriesOutput represents the output of listing entries.
type ListEntriesOutput struct {
	Entries []*entity.Entry
}

// ListEntriesUseCase handles entry listing logic.
type ListEntriesUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(entryRepo adapter.EntryRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		entryRepo: entryRepo,
	}
}

// Execute retrieves entries, date descending, optionally scoped to a month.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	if input.Year != nil && input.Month != nil {
		if *input.Month < 1 || *input.Month > 12 {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeInvalidMonth,
				"month must be between 1 and 12",
				domainerror.ErrInvalidMonth,
			)
		}

		entries, err := uc.entryRepo.FindByMonth(ctx, *input.Year, *input.Month)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries by month: %w", err)
		}
		return &ListEntriesOutput{Entries: entries}, nil
	}

	entries, err := uc.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return &ListEntriesOutput{Entries: entries}, nil
}
