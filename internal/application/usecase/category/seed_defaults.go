// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// SeedDefaultCategoriesUseCase creates the fixed bootstrap category set.
// Run once at process start rather than lazily inside a read accessor; the
// count guard makes it idempotent.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds the default categories when the store is empty. Returns the
// number of categories created.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context) (int, error) {
	count, err := uc.categoryRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, cat := range entity.DefaultCategories() {
		if err := uc.categoryRepo.Create(ctx, cat); err != nil {
			return created, fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
		created++
	}

	slog.Info("Seeded default categories", "count", created)
	return created, nil
}
