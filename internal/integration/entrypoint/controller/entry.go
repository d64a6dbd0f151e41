// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-scan/backend/internal/application/usecase/entry"
	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/dto"
)

// entryDateLayout is the wire format for entry dates.
const entryDateLayout = "2006-01-02"

// EntryController handles entry endpoints.
type EntryController struct {
	listUseCase   *entry.ListEntriesUseCase
	createUseCase *entry.CreateEntryUseCase
	updateUseCase *entry.UpdateEntryUseCase
	deleteUseCase *entry.DeleteEntryUseCase
	clearUseCase  *entry.ClearEntriesUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	listUseCase *entry.ListEntriesUseCase,
	createUseCase *entry.CreateEntryUseCase,
	updateUseCase *entry.UpdateEntryUseCase,
	deleteUseCase *entry.DeleteEntryUseCase,
	clearUseCase *entry.ClearEntriesUseCase,
) *EntryController {
	return &EntryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		clearUseCase:  clearUseCase,
	}
}

// List handles GET /entries requests. Optional year and month query
// parameters scope the listing to a single month.
func (c *EntryController) List(ctx *gin.Context) {
	input := entry.ListEntriesInput{}

	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year parameter",
				Code:  string(domainerror.ErrCodeInvalidYear),
			})
			return
		}
		input.Year = &year
	}

	if monthStr := ctx.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month parameter",
				Code:  string(domainerror.ErrCodeInvalidMonth),
			})
			return
		}
		input.Month = &month
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(output.Entries))
}

// Create handles POST /entries requests.
func (c *EntryController) Create(ctx *gin.Context) {
	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingEntryFields),
		})
		return
	}

	date, err := time.Parse(entryDateLayout, req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category id",
			Code:  string(domainerror.ErrCodeCategoryNotFound),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), entry.CreateEntryInput{
		Date:       date,
		Label:      req.Label,
		Amount:     decimal.NewFromInt(req.Amount),
		CategoryID: categoryID,
		Note:       req.Note,
	})
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEntryResponse(output.Entry))
}

// Update handles PATCH /entries/:id requests.
func (c *EntryController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry id",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	var req dto.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingEntryFields),
		})
		return
	}

	input := entry.UpdateEntryInput{
		ID:    id,
		Label: req.Label,
		Note:  req.Note,
	}

	if req.Date != nil {
		date, err := time.Parse(entryDateLayout, *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDate),
			})
			return
		}
		input.Date = &date
	}

	if req.Amount != nil {
		amount := decimal.NewFromInt(*req.Amount)
		input.Amount = &amount
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category id",
				Code:  string(domainerror.ErrCodeCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry))
}

// Delete handles DELETE /entries/:id requests.
func (c *EntryController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry id",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), entry.DeleteEntryInput{ID: id}); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Clear handles DELETE /entries requests, wiping the whole collection and
// the client's scan markers.
func (c *EntryController) Clear(ctx *gin.Context) {
	if err := c.clearUseCase.Execute(ctx.Request.Context(), clientID(ctx)); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
