package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"notes-backend/application/commands"
	"notes-backend/application/commands/bus"
	"notes-backend/application/queries"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CategoryRequest is the body for creating or updating a category
type CategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListCategoriesQuery{UserID: userID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	categories, ok := result.([]*entities.Category)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success":    true,
		"count":      len(categories),
		"categories": categories,
	}, h.logger)
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateCategoryCommand{
		UserID: userID,
		Name:   deref(req.Name),
		Color:  deref(req.Color),
		Icon:   deref(req.Icon),
	})
	h.respondCategory(w, r, http.StatusCreated, result, err, "Category created successfully")
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateCategoryCommand{
		UserID:     userID,
		CategoryID: chi.URLParam(r, "id"),
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
	})
	h.respondCategory(w, r, http.StatusOK, result, err, "Category updated successfully")
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteCategoryCommand{UserID: userID, CategoryID: chi.URLParam(r, "id")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"success": true, "message": "Category deleted successfully"}, h.logger)
}

func (h *CategoryHandler) respondCategory(w http.ResponseWriter, r *http.Request, status int, result interface{}, err error, message string) {
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	category, ok := result.(*entities.Category)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respondJSON(w, status, envelope{
		"success":  true,
		"message":  message,
		"category": category,
	}, h.logger)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
