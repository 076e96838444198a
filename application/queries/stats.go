package queries

import "notes-backend/application/ports"

// StatsSnapshot is a per-user statistics summary computed on demand.
// TotalNotes and FavoriteNotes exclude archived notes, ArchivedNotes counts
// only archived ones and NotesThisWeek ignores archive state.
type StatsSnapshot struct {
	TotalNotes      int64                 `json:"totalNotes"`
	FavoriteNotes   int64                 `json:"favoriteNotes"`
	ArchivedNotes   int64                 `json:"archivedNotes"`
	NotesThisWeek   int64                 `json:"notesThisWeek"`
	NotesByCategory []ports.CategoryCount `json:"notesByCategory"`
}
