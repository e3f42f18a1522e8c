// internal/api/handler/category.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"exptr-api/internal/api/middleware"
	"exptr-api/internal/api/types"
	"exptr-api/internal/domain"
	"exptr-api/internal/service"
	"exptr-api/internal/util"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  service.CategoryService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// CategoryRequest represents the request body for creating a category.
// A nil user_id creates a global category.
type CategoryRequest struct {
	UserID *int64 `json:"user_id"`
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=income expense"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

// Create handles the create category request.
// POST /categories/
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
		return
	}

	category := domain.NewCategory(req.UserID, req.Name, domain.CategoryType(req.Type), req.Color, req.Icon)
	created, err := h.service.CreateCategory(r.Context(), category)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, created)
}

// UpdateCategoryRequest represents the request body for updating a category.
type UpdateCategoryRequest struct {
	ID     int64  `json:"id" validate:"required"`
	UserID *int64 `json:"user_id"`
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=income expense"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

// Update handles the update category request.
// PUT /categories/
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
		return
	}

	category := &domain.Category{
		ID:     req.ID,
		UserID: req.UserID,
		Name:   req.Name,
		Type:   domain.CategoryType(req.Type),
		Color:  req.Color,
		Icon:   req.Icon,
	}
	updated, err := h.service.UpdateCategory(r.Context(), category)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, updated)
}

// List returns the caller's categories plus global ones. An empty list is a
// valid 200 response.
// GET /categories/
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	categories, err := h.service.GetCategories(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.ListResponse[domain.Category]{
		Data:       categories,
		TotalCount: len(categories),
	})
}

// Delete handles the delete category request.
// DELETE /categories/?category_id=
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
