// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// CreateEntryRequest represents the request body for manual entry creation.
type CreateEntryRequest struct {
	Date       string `json:"date" binding:"required"`
	Label      string `json:"label" binding:"required,min=1,max=255"`
	Amount     int64  `json:"amount" binding:"min=0"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Note       string `json:"note,omitempty"`
}

// UpdateEntryRequest represents the request body for entry update.
type UpdateEntryRequest struct {
	Date       *string `json:"date,omitempty"`
	Label      *string `json:"label,omitempty" binding:"omitempty,min=1,max=255"`
	Amount     *int64  `json:"amount,omitempty" binding:"omitempty,min=0"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Note       *string `json:"note,omitempty"`
}

// EntryResponse represents a single entry in API responses.
type EntryResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Label       string    `json:"label"`
	Amount      int64     `json:"amount"`
	CategoryID  string    `json:"category_id"`
	Note        string    `json:"note,omitempty"`
	SourceImage string    `json:"source_image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryListResponse represents the response for listing entries.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// ToEntryResponse converts a domain Entry entity to an EntryResponse DTO.
func ToEntryResponse(entry *entity.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		Date:        entry.Date.Format("2006-01-02"),
		Label:       entry.Label,
		Amount:      entry.Amount.IntPart(),
		CategoryID:  entry.CategoryID.String(),
		Note:        entry.Note,
		SourceImage: entry.SourceImage,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

// ToEntryListResponse converts entries to an EntryListResponse.
func ToEntryListResponse(entries []*entity.Entry) EntryListResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToEntryResponse(entry))
	}
	return EntryListResponse{Entries: responses, Total: len(responses)}
}
