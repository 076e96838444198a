package commands

import (
	"notes-backend/domain/core/entities"
	"notes-backend/domain/core/valueobjects"
	"notes-backend/pkg/utils"
)

// CreateNoteCommand represents the command to create a new note
type CreateNoteCommand struct {
	UserID   string   `json:"userId" validate:"required"`
	Title    string   `json:"title" validate:"required,max=100"`
	Content  string   `json:"content" validate:"required,max=5000"`
	Category string   `json:"category" validate:"max=50"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
}

// Validate validates the CreateNoteCommand
func (c CreateNoteCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// Draft returns the entity-level draft
func (c CreateNoteCommand) Draft() entities.NoteDraft {
	return entities.NoteDraft{
		Title:    c.Title,
		Content:  c.Content,
		Category: c.Category,
		Tags:     c.Tags,
	}
}

// UpdateNoteCommand applies a partial update; nil fields are untouched
type UpdateNoteCommand struct {
	UserID     string
	NoteID     string
	Title      *string
	Content    *string
	Category   *string
	Tags       *[]string
	IsFavorite *bool
	IsArchived *bool
}

// Validate validates the UpdateNoteCommand
func (c UpdateNoteCommand) Validate() error {
	return requireIDs(c.UserID, c.NoteID)
}

// Patch returns the entity-level patch
func (c UpdateNoteCommand) Patch() entities.NotePatch {
	return entities.NotePatch{
		Title:      c.Title,
		Content:    c.Content,
		Category:   c.Category,
		Tags:       c.Tags,
		IsFavorite: c.IsFavorite,
		IsArchived: c.IsArchived,
	}
}

// DeleteNoteCommand permanently removes a note
type DeleteNoteCommand struct {
	UserID string
	NoteID string
}

// Validate validates the DeleteNoteCommand
func (c DeleteNoteCommand) Validate() error {
	return requireIDs(c.UserID, c.NoteID)
}

// ToggleFavoriteCommand flips a note's favorite flag
type ToggleFavoriteCommand struct {
	UserID string
	NoteID string
}

// Validate validates the ToggleFavoriteCommand
func (c ToggleFavoriteCommand) Validate() error {
	return requireIDs(c.UserID, c.NoteID)
}

// ToggleArchiveCommand flips a note's archive flag
type ToggleArchiveCommand struct {
	UserID string
	NoteID string
}

// Validate validates the ToggleArchiveCommand
func (c ToggleArchiveCommand) Validate() error {
	return requireIDs(c.UserID, c.NoteID)
}

func requireIDs(userID, noteID string) error {
	if err := valueobjects.ValidateID("userId", userID); err != nil {
		return err
	}
	return valueobjects.ValidateID("noteId", noteID)
}
