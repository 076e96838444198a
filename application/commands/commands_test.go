package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"notes-backend/domain/core/valueobjects"
)

func TestCreateNoteCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateNoteCommand
		wantErr string
	}{
		{"valid", CreateNoteCommand{UserID: "u", Title: "A", Content: "x"}, ""},
		{"missing user", CreateNoteCommand{Title: "A", Content: "x"}, "userId is required"},
		{"missing title", CreateNoteCommand{UserID: "u", Content: "x"}, "title is required"},
		{"missing content", CreateNoteCommand{UserID: "u", Title: "A"}, "content is required"},
		{"long title", CreateNoteCommand{UserID: "u", Title: strings.Repeat("a", 101), Content: "x"}, "title must be at most 100 characters"},
		{"too many tags", CreateNoteCommand{UserID: "u", Title: "A", Content: "x", Tags: make([]string, 21)}, "tags must have at most 20 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCreateNoteCommand_Draft(t *testing.T) {
	cmd := CreateNoteCommand{UserID: "u", Title: "A", Content: "x", Category: "Work", Tags: []string{"t"}}
	draft := cmd.Draft()

	assert.Equal(t, "A", draft.Title)
	assert.Equal(t, "Work", draft.Category)
	assert.Equal(t, []string{"t"}, draft.Tags)
}

func TestIDCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr string
	}{
		{"delete without user", DeleteNoteCommand{NoteID: "n"}, "userId"},
		{"favorite without note", ToggleFavoriteCommand{UserID: "u"}, "noteId"},
		{"archive with blank note", ToggleArchiveCommand{UserID: "u", NoteID: "  "}, "noteId"},
		{"update without note", UpdateNoteCommand{UserID: "u"}, "noteId"},
		{"delete category without id", DeleteCategoryCommand{UserID: "u"}, "categoryId"},
		{"archive", ToggleArchiveCommand{UserID: "u", NoteID: "n"}, ""},
		{"update category", UpdateCategoryCommand{UserID: "u", CategoryID: "c"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, valueobjects.ErrEmptyID)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateCategoryCommand_Validate(t *testing.T) {
	assert.NoError(t, CreateCategoryCommand{UserID: "u", Name: "Work"}.Validate())
	assert.NoError(t, CreateCategoryCommand{UserID: "u", Name: "Work", Color: "#fff"}.Validate())
	assert.Error(t, CreateCategoryCommand{UserID: "u", Name: "Work", Color: "red"}.Validate())
	assert.Error(t, CreateCategoryCommand{UserID: "u"}.Validate())
}
