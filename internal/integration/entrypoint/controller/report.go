// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kakeibo-scan/backend/internal/application/usecase/report"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/dto"
)

// ReportController handles summary, trend and export endpoints.
type ReportController struct {
	summaryUseCase *report.GetMonthlySummaryUseCase
	trendUseCase   *report.GetTrendUseCase
	exportUseCase  *report.ExportCSVUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	summaryUseCase *report.GetMonthlySummaryUseCase,
	trendUseCase *report.GetTrendUseCase,
	exportUseCase *report.ExportCSVUseCase,
) *ReportController {
	return &ReportController{
		summaryUseCase: summaryUseCase,
		trendUseCase:   trendUseCase,
		exportUseCase:  exportUseCase,
	}
}

// MonthlySummary handles GET /reports/monthly/:year/:month requests.
func (c *ReportController) MonthlySummary(ctx *gin.Context) {
	year, month, ok := parseYearMonth(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.GetMonthlySummaryInput{
		Year:  year,
		Month: month,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output))
}

// Trend handles GET /reports/trend/:year/:month requests. The optional
// months query parameter controls how many trailing months are returned.
func (c *ReportController) Trend(ctx *gin.Context) {
	year, month, ok := parseYearMonth(ctx)
	if !ok {
		return
	}

	monthsBack := report.DefaultTrendMonths
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid months parameter",
				Code:  string(domainerror.ErrCodeInvalidMonthsBack),
			})
			return
		}
		monthsBack = parsed
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), report.GetTrendInput{
		Year:       year,
		Month:      month,
		MonthsBack: monthsBack,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendResponse(output))
}

// ExportCSV handles GET /export/csv requests, streaming all entries as a
// downloadable UTF-8 CSV file.
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	filename := fmt.Sprintf("kakeibo-%s.csv", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(output.Content))
}

// parseYearMonth reads the year and month path parameters. On failure it
// writes the error response and returns ok=false.
func parseYearMonth(ctx *gin.Context) (year, month int, ok bool) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid year parameter",
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return 0, 0, false
	}

	month, err = strconv.Atoi(ctx.Param("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month parameter",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return 0, 0, false
	}

	return year, month, true
}
