// Package report contains reporting use cases: monthly summaries, trend
// series and CSV export.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

const (
	// MinReportYear and MaxReportYear bound the accepted reporting range.
	MinReportYear = 2000
	MaxReportYear = 2100
)

// GetMonthlySummaryInput represents the input for the monthly summary.
type GetMonthlySummaryInput struct {
	Year  int
	Month int
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryID    uuid.UUID       `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    float64         `json:"percentage"`
}

// GetMonthlySummaryOutput is the derived monthly report. It is recomputed on
// every call and never cached.
type GetMonthlySummaryOutput struct {
	Year          int                     `json:"year"`
	Month         int                     `json:"month"`
	Total         decimal.Decimal         `json:"total"`
	Breakdown     []CategoryBreakdownItem `json:"breakdown"`
	EntryCount    int                     `json:"entry_count"`
	AveragePerDay decimal.Decimal         `json:"average_per_day"`
}

// GetMonthlySummaryUseCase computes total and per-category spend for one
// calendar month.
type GetMonthlySummaryUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(entryRepo adapter.EntryRepository, categoryRepo adapter.CategoryRepository) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute computes the monthly summary for the given year and month.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.FindByMonth(ctx, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month entries: %w", err)
	}

	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	summary := Summarize(entries, categories, input.Year, input.Month)
	return summary, nil
}

// Summarize computes the monthly summary over entries already scoped to the
// target month. Pure function, exported for direct testing.
func Summarize(entries []*entity.Entry, categories []*entity.Category, year, month int) *GetMonthlySummaryOutput {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}

	// Zero-initialized accumulator per known category. Entries whose
	// category id matches no known category still count toward the total
	// and entry count but are dropped from the breakdown.
	byCategory := make(map[uuid.UUID]decimal.Decimal, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = decimal.Zero
	}
	for _, e := range entries {
		if acc, ok := byCategory[e.CategoryID]; ok {
			byCategory[e.CategoryID] = acc.Add(e.Amount)
		}
	}

	breakdown := make([]CategoryBreakdownItem, 0, len(categories))
	for _, c := range categories {
		amount := byCategory[c.ID]
		if !amount.IsPositive() {
			continue
		}

		var percentage float64
		if !total.IsZero() {
			pct := amount.Mul(decimal.NewFromInt(100)).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}

		breakdown = append(breakdown, CategoryBreakdownItem{
			CategoryID:    c.ID,
			CategoryName:  c.Name,
			CategoryColor: c.Color,
			Amount:        amount,
			Percentage:    percentage,
		})
	}

	// Descending by amount; category id ascending keeps ties deterministic.
	sort.SliceStable(breakdown, func(i, j int) bool {
		cmp := breakdown[i].Amount.Cmp(breakdown[j].Amount)
		if cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].CategoryID.String() < breakdown[j].CategoryID.String()
	})

	days := DaysInMonth(year, month)
	averagePerDay := decimal.Zero
	if days > 0 {
		// Full-month denominator, also for the current incomplete month.
		averagePerDay = total.Div(decimal.NewFromInt(int64(days))).Round(2)
	}

	return &GetMonthlySummaryOutput{
		Year:          year,
		Month:         month,
		Total:         total,
		Breakdown:     breakdown,
		EntryCount:    len(entries),
		AveragePerDay: averagePerDay,
	}
}

// ValidateYearMonth checks that the year and month form a valid reporting
// target.
func ValidateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	if year < MinReportYear || year > MaxReportYear {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("year must be between %d and %d", MinReportYear, MaxReportYear),
			domainerror.ErrInvalidYear,
		)
	}
	return nil
}

// DaysInMonth returns the number of calendar days in the given month, or 0
// for an invalid year/month pair.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 || year < MinReportYear || year > MaxReportYear {
		return 0
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}
