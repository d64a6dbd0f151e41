// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a named, colored spending bucket in the Kakeibo Scan system.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(name, color, icon string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
