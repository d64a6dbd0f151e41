// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// EntryModel represents the entries table in the database. One row per
// ledger entry: updates and deletes touch single records, never a whole
// serialized collection.
type EntryModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Label       string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,0);not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Note        string          `gorm:"type:text"`
	SourceImage string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Relationship (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the EntryModel.
func (EntryModel) TableName() string {
	return "entries"
}

// ToEntity converts an EntryModel to a domain Entry entity.
func (m *EntryModel) ToEntity() *entity.Entry {
	return &entity.Entry{
		ID:          m.ID,
		Date:        m.Date,
		Label:       m.Label,
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		Note:        m.Note,
		SourceImage: m.SourceImage,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// EntryFromEntity creates an EntryModel from a domain Entry entity.
func EntryFromEntity(entry *entity.Entry) *EntryModel {
	return &EntryModel{
		ID:          entry.ID,
		Date:        entry.Date,
		Label:       entry.Label,
		Amount:      entry.Amount,
		CategoryID:  entry.CategoryID,
		Note:        entry.Note,
		SourceImage: entry.SourceImage,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}
