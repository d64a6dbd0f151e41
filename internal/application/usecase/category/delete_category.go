// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	ID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category deletion. The catch-all category cannot be
// deleted: ingestion needs somewhere to put unrecognized guesses.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := uc.categoryRepo.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}

	if category.Name == entity.CategoryNameFallback {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeFallbackCategoryImmutable,
			"the fallback category cannot be deleted",
			domainerror.ErrFallbackCategoryImmutable,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
