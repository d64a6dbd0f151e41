// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// VisionService defines the interface for the external vision-language model
// that extracts ledger line items from a page photograph. The service is a
// black box: it may fail, return unparseable text, or return zero items.
type VisionService interface {
	// AnalyzePage sends one page image to the model and returns the
	// extracted line items with an overall confidence score.
	AnalyzePage(ctx context.Context, image []byte, mimeType string) (*entity.PageAnalysis, error)

	// IsAvailable reports whether the service is configured.
	IsAvailable() bool
}
