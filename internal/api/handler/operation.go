// internal/api/handler/operation.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"exptr-api/internal/api/types"
	"exptr-api/internal/domain"
	"exptr-api/internal/service"
	"exptr-api/internal/util"
)

// OperationHandler handles HTTP requests for operations.
type OperationHandler struct {
	service  service.OperationService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(svc service.OperationService, logger *slog.Logger) *OperationHandler {
	return &OperationHandler{
		service:  svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// OperationRequest represents the request body for creating an operation.
// Amount is in minor currency units.
type OperationRequest struct {
	UserID     int64   `json:"user_id" validate:"required"`
	CategoryID int64   `json:"category_id" validate:"required"`
	Amount     int64   `json:"amount" validate:"required"`
	Currency   string  `json:"currency" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Comment    *string `json:"comment"`
	Type       string  `json:"type" validate:"required,oneof=income expense"`
}

// Create handles the create operation request.
// POST /operations/
func (h *OperationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
		return
	}

	operation := domain.NewOperation(req.UserID, req.CategoryID, req.Amount, req.Currency, req.Name, req.Comment, domain.OperationType(req.Type))
	created, err := h.service.CreateOperation(r.Context(), operation)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, created)
}

// UpdateOperationRequest represents the request body for updating an operation.
type UpdateOperationRequest struct {
	ID         int64   `json:"id" validate:"required"`
	UserID     int64   `json:"user_id" validate:"required"`
	CategoryID int64   `json:"category_id" validate:"required"`
	Amount     int64   `json:"amount" validate:"required"`
	Currency   string  `json:"currency" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Comment    *string `json:"comment"`
	Type       string  `json:"type" validate:"required,oneof=income expense"`
}

// Update handles the update operation request.
// PUT /operations/
func (h *OperationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
		return
	}

	operation := &domain.Operation{
		ID:         req.ID,
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Name:       req.Name,
		Comment:    req.Comment,
		Type:       domain.OperationType(req.Type),
	}
	updated, err := h.service.UpdateOperation(r.Context(), operation)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, updated)
}

// Get serves both lookups of the operations collection: a single operation
// by ?id= or a user's operations by ?user_id=.
// GET /operations/
func (h *OperationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			respondWithError(h.logger, w, util.ErrInvalidInput)
			return
		}
		operation, err := h.service.GetOperationByID(r.Context(), id)
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		respondWithJSON(h.logger, w, http.StatusOK, operation)
		return
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	operations, err := h.service.GetOperationsByUserID(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.ListResponse[domain.Operation]{
		Data:       operations,
		TotalCount: len(operations),
	})
}

// Delete handles the delete operation request.
// DELETE /operations/?id=
func (h *OperationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteOperation(r.Context(), id); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Operation deleted"})
}

// Summary returns per-category totals in major currency units.
// GET /operations/summary?user_id=
func (h *OperationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	summaries, err := h.service.GetSummary(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.ListResponse[service.CategorySummary]{
		Data:       summaries,
		TotalCount: len(summaries),
	})
}
