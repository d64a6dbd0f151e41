// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/kakeibo-scan/backend/internal/application/usecase/category"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list use case output to a CategoryListResponse.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	responses := make([]CategoryResponse, 0, len(output.Categories))
	for _, cat := range output.Categories {
		responses = append(responses, CategoryResponse{
			ID:        cat.ID.String(),
			Name:      cat.Name,
			Color:     cat.Color,
			Icon:      cat.Icon,
			CreatedAt: cat.CreatedAt,
			UpdatedAt: cat.UpdatedAt,
		})
	}
	return CategoryListResponse{Categories: responses}
}
