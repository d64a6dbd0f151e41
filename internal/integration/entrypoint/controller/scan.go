// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kakeibo-scan/backend/internal/application/usecase/scan"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/dto"
)

// defaultClientID identifies requests that carry no X-Client-ID header.
// The app is single-user by default, so everything folds into one bucket.
const defaultClientID = "local"

// clientID extracts the caller identity used for scan tracking.
func clientID(ctx *gin.Context) string {
	if id := ctx.GetHeader("X-Client-ID"); id != "" {
		return id
	}
	return defaultClientID
}

// ScanController handles ledger page scan endpoints.
type ScanController struct {
	analyzeUseCase *scan.AnalyzePageUseCase
	statusUseCase  *scan.GetStatusUseCase
}

// NewScanController creates a new scan controller instance.
func NewScanController(
	analyzeUseCase *scan.AnalyzePageUseCase,
	statusUseCase *scan.GetStatusUseCase,
) *ScanController {
	return &ScanController{
		analyzeUseCase: analyzeUseCase,
		statusUseCase:  statusUseCase,
	}
}

// Analyze handles POST /scan requests. The request body carries the page
// image as base64; the response reports what was written.
func (c *ScanController) Analyze(ctx *gin.Context) {
	var req dto.ScanPageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidImage),
		})
		return
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), scan.AnalyzePageInput{
		ClientID:    clientID(ctx),
		ImageBase64: req.Image,
		MimeType:    req.MimeType,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScanPageResponse(output))
}

// Status handles GET /scan/status requests.
func (c *ScanController) Status(ctx *gin.Context) {
	output, err := c.statusUseCase.Execute(ctx.Request.Context(), scan.GetStatusInput{
		ClientID: clientID(ctx),
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScanStatusResponse(output))
}
