// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry represents one recorded expense line from a household ledger page.
// Amounts are whole yen and never negative.
type Entry struct {
	ID          uuid.UUID
	Date        time.Time // Calendar date, truncated to midnight UTC
	Label       string
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Note        string
	SourceImage string // Optional reference to the scanned page image
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEntry creates a new Entry entity. The date is truncated to its calendar
// day so entries carry no time-of-day component.
func NewEntry(date time.Time, label string, amount decimal.Decimal, categoryID uuid.UUID, note, sourceImage string) *Entry {
	now := time.Now().UTC()

	return &Entry{
		ID:          uuid.New(),
		Date:        TruncateToDay(date),
		Label:       label,
		Amount:      amount,
		CategoryID:  categoryID,
		Note:        note,
		SourceImage: sourceImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TruncateToDay strips the time-of-day component from a timestamp, keeping
// the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
