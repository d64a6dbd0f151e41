// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
)

// CategoryOutput represents a category in use case outputs.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase handles category listing logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute retrieves all categories, name ascending.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	outputs := make([]*CategoryOutput, 0, len(categories))
	for _, cat := range categories {
		outputs = append(outputs, &CategoryOutput{
			ID:        cat.ID,
			Name:      cat.Name,
			Color:     cat.Color,
			Icon:      cat.Icon,
			CreatedAt: cat.CreatedAt,
			UpdatedAt: cat.UpdatedAt,
		})
	}

	return &ListCategoriesOutput{Categories: outputs}, nil
}
