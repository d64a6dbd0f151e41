// Package scan contains page ingestion use cases.
package scan

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

// entryDateFormats are accepted line item date layouts, tried in order.
var entryDateFormats = []string{"2006-01-02", "2006/01/02"}

// AnalyzePageInput represents the input for analyzing one ledger page image.
type AnalyzePageInput struct {
	ClientID    string
	ImageBase64 string
	MimeType    string // Optional, defaults to image/jpeg
}

// AnalyzePageOutput represents the result of a page scan. A partial failure
// (some items written, some skipped or failed) is possible and not rolled
// back; every entry write is an independent commit.
type AnalyzePageOutput struct {
	Entries      []*entity.Entry `json:"-"`
	CreatedCount int             `json:"created_count"`
	SkippedCount int             `json:"skipped_count"`
	FailedCount  int             `json:"failed_count"`
	Confidence   float64         `json:"confidence"`
}

// AnalyzePageUseCase orchestrates the ingestion flow: image validation,
// vision analysis, category normalization and per-item entry writes.
type AnalyzePageUseCase struct {
	entryRepo     adapter.EntryRepository
	categoryRepo  adapter.CategoryRepository
	visionService adapter.VisionService
	tracker       adapter.ScanTracker
	maxImageBytes int
	visionTimeout time.Duration
}

// NewAnalyzePageUseCase creates a new AnalyzePageUseCase instance.
func NewAnalyzePageUseCase(
	entryRepo adapter.EntryRepository,
	categoryRepo adapter.CategoryRepository,
	visionService adapter.VisionService,
	tracker adapter.ScanTracker,
	maxImageBytes int,
	visionTimeout time.Duration,
) *AnalyzePageUseCase {
	return &AnalyzePageUseCase{
		entryRepo:     entryRepo,
		categoryRepo:  categoryRepo,
		visionService: visionService,
		tracker:       tracker,
		maxImageBytes: maxImageBytes,
		visionTimeout: visionTimeout,
	}
}

// Execute performs the page scan.
func (uc *AnalyzePageUseCase) Execute(ctx context.Context, input AnalyzePageInput) (*AnalyzePageOutput, error) {
	image, err := decodeImage(input.ImageBase64)
	if err != nil {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeInvalidImage,
			"image must be valid base64",
			domainerror.ErrInvalidImage,
		)
	}

	if uc.maxImageBytes > 0 && len(image) > uc.maxImageBytes {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeImageTooLarge,
			fmt.Sprintf("image must not exceed %d bytes", uc.maxImageBytes),
			domainerror.ErrImageTooLarge,
		)
	}

	if !uc.visionService.IsAvailable() {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeVisionUnavailable,
			"vision service is not configured",
			domainerror.ErrVisionUnavailable,
		)
	}

	// One scan per client at a time; ledger mutations from ingestion are
	// serialized through the tracker.
	ok, err := uc.tracker.TryBegin(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check scan state: %w", err)
	}
	if !ok {
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeScanInProgress,
			"a scan is already in progress",
			domainerror.ErrScanInProgress,
		)
	}
	defer func() {
		if err := uc.tracker.End(context.WithoutCancel(ctx), input.ClientID); err != nil {
			slog.Warn("Failed to clear scan state", "error", err)
		}
	}()

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	visionCtx, cancel := context.WithTimeout(ctx, uc.visionTimeout)
	defer cancel()

	analysis, err := uc.visionService.AnalyzePage(visionCtx, image, mimeType)
	if err != nil {
		failure := classifyVisionError(err)
		uc.recordFailure(ctx, input.ClientID, string(failure.Code), failure.Message)
		return nil, domainerror.NewScanError(failure.Code, failure.Message, err)
	}

	if len(analysis.Items) == 0 {
		// Valid response with nothing on the page. Reported distinctly from
		// a hard failure; nothing is written.
		uc.recordFailure(ctx, input.ClientID, string(domainerror.ErrCodeEmptyScanResult), "no entries found on page")
		return nil, domainerror.NewScanError(
			domainerror.ErrCodeEmptyScanResult,
			"no entries found on page",
			domainerror.ErrEmptyScanResult,
		)
	}

	categoryIDByName, fallbackID, err := uc.loadCategoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	sourceImage := imageReference(input.ClientID)
	output := &AnalyzePageOutput{Confidence: analysis.Confidence}

	for _, item := range analysis.Items {
		if item.ItemName == "" || item.Amount < 0 {
			output.SkippedCount++
			continue
		}

		canonical := entity.NormalizeCategoryName(item.SuggestedCategory)
		categoryID, ok := categoryIDByName[canonical]
		if !ok {
			categoryID = fallbackID
		}

		entry := entity.NewEntry(
			parseItemDate(item.Date),
			item.ItemName,
			decimal.NewFromInt(item.Amount),
			categoryID,
			"",
			sourceImage,
		)

		if err := uc.entryRepo.Create(ctx, entry); err != nil {
			// Independent commits: keep going, the written entries stay.
			slog.Error("Failed to persist scanned entry", "label", item.ItemName, "error", err)
			output.FailedCount++
			continue
		}

		output.Entries = append(output.Entries, entry)
		output.CreatedCount++
	}

	now := time.Now().UTC()
	if err := uc.tracker.SetLastScanAt(ctx, input.ClientID, now); err != nil {
		slog.Warn("Failed to record last scan time", "error", err)
	}
	if err := uc.tracker.ClearLastError(ctx, input.ClientID); err != nil {
		slog.Warn("Failed to clear last scan error", "error", err)
	}

	slog.Info("Page scan completed",
		"created", output.CreatedCount,
		"skipped", output.SkippedCount,
		"failed", output.FailedCount,
		"confidence", output.Confidence,
	)

	return output, nil
}

// loadCategoryIndex builds the canonical name to id index plus the catch-all
// id used for unrecognized guesses.
func (uc *AnalyzePageUseCase) loadCategoryIndex(ctx context.Context) (map[string]uuid.UUID, uuid.UUID, error) {
	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to load categories: %w", err)
	}

	idByName := make(map[string]uuid.UUID, len(categories))
	fallbackID := uuid.Nil
	for _, c := range categories {
		idByName[c.Name] = c.ID
		if c.Name == entity.CategoryNameFallback {
			fallbackID = c.ID
		}
	}

	if fallbackID == uuid.Nil {
		return nil, uuid.Nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"fallback category is missing",
			domainerror.ErrCategoryNotFound,
		)
	}

	return idByName, fallbackID, nil
}

func (uc *AnalyzePageUseCase) recordFailure(ctx context.Context, clientID, code, message string) {
	if err := uc.tracker.SetLastError(context.WithoutCancel(ctx), clientID, code, message); err != nil {
		slog.Warn("Failed to record scan error", "error", err)
	}
}

// decodeImage accepts raw base64 with or without a data URI prefix.
func decodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("empty image payload")
	}

	if idx := strings.Index(encoded, ";base64,"); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+len(";base64,"):]
	}

	return base64.StdEncoding.DecodeString(encoded)
}

// parseItemDate parses a line item date string, falling back to today for
// anything the model got wrong.
func parseItemDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range entryDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// imageReference names the scanned page for the entries it produced.
func imageReference(clientID string) string {
	return fmt.Sprintf("scan/%s/%s", clientID, time.Now().UTC().Format("20060102T150405Z"))
}
