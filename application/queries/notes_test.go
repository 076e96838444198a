package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notes-backend/domain/core/valueobjects"
)

func TestQueries_ValidateIDs(t *testing.T) {
	assert.NoError(t, ListNotesQuery{UserID: "u"}.Validate())
	assert.NoError(t, GetNoteQuery{UserID: "u", NoteID: "n"}.Validate())
	assert.NoError(t, GetStatsQuery{UserID: "u"}.Validate())
	assert.NoError(t, ListCategoriesQuery{UserID: "u"}.Validate())

	assert.ErrorIs(t, ListNotesQuery{}.Validate(), valueobjects.ErrEmptyID)
	assert.ErrorIs(t, GetStatsQuery{UserID: " "}.Validate(), valueobjects.ErrEmptyID)
	assert.ErrorIs(t, ListCategoriesQuery{}.Validate(), valueobjects.ErrEmptyID)

	err := GetNoteQuery{UserID: "u"}.Validate()
	assert.ErrorIs(t, err, valueobjects.ErrEmptyID)
	assert.Contains(t, err.Error(), "noteId")
}
