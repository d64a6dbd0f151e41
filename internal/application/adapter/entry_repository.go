// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// EntryRepository defines the interface for ledger entry persistence operations.
// Storage is per record: every entry is its own row, so concurrent writers
// never clobber each other's entries.
type EntryRepository interface {
	// Create creates a new entry in the store.
	Create(ctx context.Context, entry *entity.Entry) error

	// FindByID retrieves an entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)

	// FindAll retrieves all entries, date descending (ties: ID descending).
	FindAll(ctx context.Context) ([]*entity.Entry, error)

	// FindByMonth retrieves entries whose date falls in the given calendar
	// year and 1-based month, date descending.
	FindByMonth(ctx context.Context, year int, month int) ([]*entity.Entry, error)

	// Update updates an existing entry in the store.
	Update(ctx context.Context, entry *entity.Entry) error

	// Delete removes an entry from the store.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every entry from the store.
	DeleteAll(ctx context.Context) error
}
