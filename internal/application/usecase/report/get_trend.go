// Package report contains reporting use cases: monthly summaries, trend
// series and CSV export.
package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kakeibo-scan/backend/internal/application/adapter"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
)

const (
	// DefaultTrendMonths is the trailing window used when none is given.
	DefaultTrendMonths = 6
	// MaxTrendMonths caps the trailing window.
	MaxTrendMonths = 24
)

// GetTrendInput represents the input for the trend series. Year and Month
// anchor the window; MonthsBack counts months including the anchor.
type GetTrendInput struct {
	Year       int
	Month      int
	MonthsBack int
}

// TrendPoint is one month in the trend series.
type TrendPoint struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// GetTrendOutput is the trend series, oldest month first. An all-zero series
// is returned as-is; the caller decides whether to render it.
type GetTrendOutput struct {
	Points []TrendPoint `json:"points"`
}

// GetTrendUseCase computes total spend for each of the trailing N months
// ending at the anchor month.
type GetTrendUseCase struct {
	entryRepo adapter.EntryRepository
}

// NewGetTrendUseCase creates a new GetTrendUseCase instance.
func NewGetTrendUseCase(entryRepo adapter.EntryRepository) *GetTrendUseCase {
	return &GetTrendUseCase{
		entryRepo: entryRepo,
	}
}

// Execute computes the trend series.
func (uc *GetTrendUseCase) Execute(ctx context.Context, input GetTrendInput) (*GetTrendOutput, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}

	monthsBack := input.MonthsBack
	if monthsBack == 0 {
		monthsBack = DefaultTrendMonths
	}
	if monthsBack < 1 || monthsBack > MaxTrendMonths {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidMonthsBack,
			fmt.Sprintf("months back must be between 1 and %d", MaxTrendMonths),
			domainerror.ErrInvalidMonthsBack,
		)
	}

	points := make([]TrendPoint, 0, monthsBack)
	for offset := monthsBack - 1; offset >= 0; offset-- {
		year, month := ShiftMonth(input.Year, input.Month, -offset)

		entries, err := uc.entryRepo.FindByMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to load entries for %d-%02d: %w", year, month, err)
		}

		total := decimal.Zero
		for _, e := range entries {
			total = total.Add(e.Amount)
		}

		points = append(points, TrendPoint{
			Year:   year,
			Month:  month,
			Label:  strconv.Itoa(month),
			Amount: total,
		})
	}

	return &GetTrendOutput{Points: points}, nil
}

// ShiftMonth moves a (year, 1-based month) pair by delta months, rolling
// over year boundaries in both directions.
func ShiftMonth(year, month, delta int) (int, int) {
	idx := year*12 + (month - 1) + delta
	return idx / 12, idx%12 + 1
}
