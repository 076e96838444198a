package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"notes-backend/application/commands"
	"notes-backend/application/commands/bus"
	"notes-backend/application/queries"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/application/services"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *NoteHandler {
	return &NoteHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateNoteRequest represents the request body for creating a note
type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest is a partial update; absent fields are left unchanged
type UpdateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Category   *string   `json:"category"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"isFavorite"`
	IsArchived *bool     `json:"isArchived"`
}

// ListNotes handles GET /api/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	params := r.URL.Query()
	filter := queries.ParseFilterSpec(
		params.Get("search"),
		params.Get("category"),
		params.Get("isFavorite"),
		params.Get("isArchived"),
		params.Get("sortBy"),
	)

	result, err := h.queryBus.Ask(r.Context(), queries.ListNotesQuery{UserID: userID, Filter: filter})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	notes, ok := result.([]*entities.Note)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(notes),
		"notes":   notes,
	}, h.logger)
}

// GetNote handles GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetNoteQuery{UserID: userID, NoteID: chi.URLParam(r, "id")})
	h.respondNote(w, r, http.StatusOK, result, err, "")
}

// GetStats handles GET /api/notes/stats
func (h *NoteHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetStatsQuery{UserID: userID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	stats, ok := result.(*queries.StatsSnapshot)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respondJSON(w, http.StatusOK, envelope{"success": true, "stats": stats}, h.logger)
}

// CreateNote handles POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateNoteCommand{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	h.respondNote(w, r, http.StatusCreated, result, err, "Note created successfully")
}

// UpdateNote handles PUT /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req UpdateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateNoteCommand{
		UserID:     userID,
		NoteID:     chi.URLParam(r, "id"),
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
		IsArchived: req.IsArchived,
	})
	h.respondNote(w, r, http.StatusOK, result, err, "Note updated successfully")
}

// DeleteNote handles DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteNoteCommand{UserID: userID, NoteID: chi.URLParam(r, "id")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{"success": true, "message": "Note deleted successfully"}, h.logger)
}

// ToggleFavorite handles PUT /api/notes/{id}/favorite
func (h *NoteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ToggleFavoriteCommand{UserID: userID, NoteID: chi.URLParam(r, "id")})
	h.respondToggle(w, r, result, err)
}

// ToggleArchive handles PUT /api/notes/{id}/archive
func (h *NoteHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ToggleArchiveCommand{UserID: userID, NoteID: chi.URLParam(r, "id")})
	h.respondToggle(w, r, result, err)
}

func (h *NoteHandler) respondNote(w http.ResponseWriter, r *http.Request, status int, result interface{}, err error, message string) {
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	note, ok := result.(*entities.Note)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	body := envelope{"success": true, "note": note}
	if message != "" {
		body["message"] = message
	}
	respondJSON(w, status, body, h.logger)
}

func (h *NoteHandler) respondToggle(w http.ResponseWriter, r *http.Request, result interface{}, err error) {
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	toggled, ok := result.(*services.ToggleResult)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": toggled.Message,
		"note":    toggled.Note,
	}, h.logger)
}

func unexpectedResult(result interface{}) error {
	return pkgerrors.NewInternalError(fmt.Sprintf("unexpected handler result %T", result))
}
