// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the store.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by its exact name, or nil when absent.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// FindAll retrieves all categories, name ascending.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Update updates an existing category in the store.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the store.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of categories in the store.
	Count(ctx context.Context) (int64, error)
}
