// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/dto"
)

// respondWithError maps domain errors to HTTP responses. Unknown errors
// surface as opaque 500s; details stay in the server log.
func respondWithError(ctx *gin.Context, err error) {
	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		ctx.JSON(categoryStatus(categoryErr), dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
		})
		return
	}

	var entryErr *domainerror.EntryError
	if errors.As(err, &entryErr) {
		status := http.StatusBadRequest
		if entryErr.Code == domainerror.ErrCodeEntryNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
		return
	}

	var scanErr *domainerror.ScanError
	if errors.As(err, &scanErr) {
		ctx.JSON(scanStatus(scanErr), dto.ErrorResponse{
			Error: scanErr.Message,
			Code:  string(scanErr.Code),
		})
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Category not found",
			Code:  string(domainerror.ErrCodeCategoryNotFound),
		})
		return
	}

	if errors.Is(err, domainerror.ErrEntryNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Entry not found",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	})
}

func categoryStatus(err *domainerror.CategoryError) int {
	switch err.Code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeFallbackCategoryImmutable:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func scanStatus(err *domainerror.ScanError) int {
	switch err.Code {
	case domainerror.ErrCodeInvalidImage:
		return http.StatusBadRequest
	case domainerror.ErrCodeImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeScanInProgress:
		return http.StatusConflict
	case domainerror.ErrCodeEmptyScanResult:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeVisionUnavailable, domainerror.ErrCodeVisionAuth:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeVisionRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeVisionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
