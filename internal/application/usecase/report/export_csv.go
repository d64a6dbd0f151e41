// Package report contains reporting use cases: monthly summaries, trend
// series and CSV export.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
)

// CSVHeader is the fixed five-column header row of the export.
const CSVHeader = "日付,品目,金額,カテゴリ,メモ"

// ExportCSVOutput represents the output of a CSV export.
type ExportCSVOutput struct {
	Content  string
	RowCount int
}

// ExportCSVUseCase serializes all entries to delimited text with category
// names resolved.
type ExportCSVUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
}

// NewExportCSVUseCase creates a new ExportCSVUseCase instance.
func NewExportCSVUseCase(entryRepo adapter.EntryRepository, categoryRepo adapter.CategoryRepository) *ExportCSVUseCase {
	return &ExportCSVUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute builds the CSV document. Header-only output means there is nothing
// to export.
func (uc *ExportCSVUseCase) Execute(ctx context.Context) (*ExportCSVOutput, error) {
	entries, err := uc.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	content := BuildCSV(entries, categories)
	return &ExportCSVOutput{Content: content, RowCount: len(entries)}, nil
}

// BuildCSV renders entries as UTF-8 CSV text, date descending with entry id
// descending as the tie-break. Unresolved category ids fall back to the
// catch-all label. Pure function, exported for direct testing.
func BuildCSV(entries []*entity.Entry, categories []*entity.Category) string {
	nameByID := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}

	sorted := make([]*entity.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID.String() > sorted[j].ID.String()
	})

	var sb strings.Builder
	sb.WriteString(CSVHeader)
	sb.WriteString("\n")

	for _, e := range sorted {
		name, ok := nameByID[e.CategoryID]
		if !ok {
			name = entity.CategoryNameFallback
		}

		sb.WriteString(e.Date.Format("2006-01-02"))
		sb.WriteString(",")
		sb.WriteString(quoteCSVField(e.Label))
		sb.WriteString(",")
		sb.WriteString(e.Amount.String())
		sb.WriteString(",")
		sb.WriteString(quoteCSVField(name))
		sb.WriteString(",")
		sb.WriteString(quoteCSVField(e.Note))
		sb.WriteString("\n")
	}

	return sb.String()
}

// quoteCSVField wraps a text field in double quotes with embedded quotes
// doubled. Every text field is quoted unconditionally so labels typed by
// users or extracted by the vision model cannot break the column layout.
func quoteCSVField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
