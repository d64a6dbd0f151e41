// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
	"github.com/kakeibo-scan/backend/internal/integration/persistence/model"
)

// entryRepository implements the adapter.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository instance.
func NewEntryRepository(db *gorm.DB) adapter.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// Create creates a new entry in the database.
func (r *entryRepository) Create(ctx context.Context, entry *entity.Entry) error {
	entryModel := model.EntryFromEntity(entry)
	result := r.db.WithContext(ctx).Create(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an entry by its ID.
func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	var entryModel model.EntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindAll retrieves all entries, date descending with id descending as the
// tie-break.
func (r *entryRepository) FindAll(ctx context.Context) ([]*entity.Entry, error) {
	var entryModels []model.EntryModel
	result := r.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(entryModels), nil
}

// FindByMonth retrieves entries within the given calendar month.
func (r *entryRepository) FindByMonth(ctx context.Context, year int, month int) ([]*entity.Entry, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var entryModels []model.EntryModel
	result := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date DESC, id DESC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(entryModels), nil
}

// Update updates an existing entry in the database.
func (r *entryRepository) Update(ctx context.Context, entry *entity.Entry) error {
	entryModel := model.EntryFromEntity(entry)
	result := r.db.WithContext(ctx).Save(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an entry from the database.
func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.EntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteAll removes every entry from the database.
func (r *entryRepository) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.EntryModel{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func toEntities(entryModels []model.EntryModel) []*entity.Entry {
	entries := make([]*entity.Entry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries
}
