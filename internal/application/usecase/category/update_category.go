// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Nil fields
// are left unchanged.
type UpdateCategoryInput struct {
	ID    uuid.UUID
	Name  *string
	Color *string
	Icon  *string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		// The catch-all keeps its name: ingestion and CSV export rely on it.
		if category.Name == entity.CategoryNameFallback {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeFallbackCategoryImmutable,
				"the fallback category cannot be renamed",
				domainerror.ErrFallbackCategoryImmutable,
			)
		}

		if *input.Name == "" || len(*input.Name) > MaxCategoryNameLength {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameTooLong,
				fmt.Sprintf("category name must be 1 to %d characters", MaxCategoryNameLength),
				domainerror.ErrCategoryNameTooLong,
			)
		}

		existing, err := uc.categoryRepo.FindByName(ctx, *input.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name existence: %w", err)
		}
		if existing != nil && existing.ID != category.ID {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"a category with this name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
		category.Name = *input.Name
	}

	if input.Color != nil {
		if !hexColorRegex.MatchString(*input.Color) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidColorFormat,
				"color must be a valid hex format (#XXXXXX)",
				domainerror.ErrInvalidColorFormat,
			)
		}
		category.Color = *input.Color
	}

	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
