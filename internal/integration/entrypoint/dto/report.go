// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/kakeibo-scan/backend/internal/application/usecase/report"
)

// CategoryBreakdownItemResponse represents one category in the monthly breakdown.
type CategoryBreakdownItemResponse struct {
	CategoryID    string  `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	CategoryColor string  `json:"category_color"`
	Amount        int64   `json:"amount"`
	Percentage    float64 `json:"percentage"`
}

// MonthlySummaryResponse represents the monthly report.
type MonthlySummaryResponse struct {
	Year          int                             `json:"year"`
	Month         int                             `json:"month"`
	Total         int64                           `json:"total"`
	Breakdown     []CategoryBreakdownItemResponse `json:"breakdown"`
	EntryCount    int                             `json:"entry_count"`
	AveragePerDay string                          `json:"average_per_day"`
}

// TrendPointResponse represents one month of the trend series.
type TrendPointResponse struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// TrendResponse represents the trend series, oldest month first.
type TrendResponse struct {
	Points []TrendPointResponse `json:"points"`
}

// ToMonthlySummaryResponse converts a summary use case output to a MonthlySummaryResponse.
func ToMonthlySummaryResponse(output *report.GetMonthlySummaryOutput) MonthlySummaryResponse {
	breakdown := make([]CategoryBreakdownItemResponse, 0, len(output.Breakdown))
	for _, item := range output.Breakdown {
		breakdown = append(breakdown, CategoryBreakdownItemResponse{
			CategoryID:    item.CategoryID.String(),
			CategoryName:  item.CategoryName,
			CategoryColor: item.CategoryColor,
			Amount:        item.Amount.IntPart(),
			Percentage:    item.Percentage,
		})
	}
	return MonthlySummaryResponse{
		Year:          output.Year,
		Month:         output.Month,
		Total:         output.Total.IntPart(),
		Breakdown:     breakdown,
		EntryCount:    output.EntryCount,
		AveragePerDay: output.AveragePerDay.String(),
	}
}

// ToTrendResponse converts a trend use case output to a TrendResponse.
func ToTrendResponse(output *report.GetTrendOutput) TrendResponse {
	points := make([]TrendPointResponse, 0, len(output.Points))
	for _, point := range output.Points {
		points = append(points, TrendPointResponse{
			Year:   point.Year,
			Month:  point.Month,
			Label:  point.Label,
			Amount: point.Amount.IntPart(),
		})
	}
	return TrendResponse{Points: points}
}
