package queries

import "notes-backend/domain/core/valueobjects"

// ListNotesQuery lists a user's notes under a filter
type ListNotesQuery struct {
	UserID string
	Filter FilterSpec
}

// Validate validates the ListNotesQuery
func (q ListNotesQuery) Validate() error {
	return valueobjects.ValidateID("userId", q.UserID)
}

// GetNoteQuery represents a query to get a single note
type GetNoteQuery struct {
	UserID string
	NoteID string
}

// Validate validates the GetNoteQuery
func (q GetNoteQuery) Validate() error {
	if err := valueobjects.ValidateID("userId", q.UserID); err != nil {
		return err
	}
	return valueobjects.ValidateID("noteId", q.NoteID)
}

// GetStatsQuery asks for a user's statistics snapshot
type GetStatsQuery struct {
	UserID string
}

// Validate validates the GetStatsQuery
func (q GetStatsQuery) Validate() error {
	return valueobjects.ValidateID("userId", q.UserID)
}

// ListCategoriesQuery lists a user's categories
type ListCategoriesQuery struct {
	UserID string
}

// Validate validates the ListCategoriesQuery
func (q ListCategoriesQuery) Validate() error {
	return valueobjects.ValidateID("userId", q.UserID)
}
