package memory

import (
	"context"
	"sync"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// NoteRepository keeps notes in process memory. It backs local development
// and tests; every read returns a copy so callers cannot mutate stored state.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*entities.Note
}

// NewNoteRepository creates an empty in-memory note store
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]*entities.Note)}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

// Create stores a new note
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; exists {
		return pkgerrors.NewConflictError("note already exists")
	}
	r.notes[note.ID] = cloneNote(note)
	return nil
}

// Update replaces a stored note
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; !exists {
		return pkgerrors.NewNotFoundError("Note")
	}
	r.notes[note.ID] = cloneNote(note)
	return nil
}

// GetByID retrieves a note by its ID
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("Note")
	}
	return cloneNote(note), nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return pkgerrors.NewNotFoundError("Note")
	}
	delete(r.notes, id)
	return nil
}

// Find returns matching notes in order
func (r *NoteRepository) Find(ctx context.Context, q ports.CanonicalQuery, order ports.OrderingRule) ([]*entities.Note, error) {
	matched := r.match(q)
	order.Sort(matched)
	return matched, nil
}

// Count returns the number of matching notes
func (r *NoteRepository) Count(ctx context.Context, q ports.CanonicalQuery) (int64, error) {
	return int64(len(r.match(q))), nil
}

// CountByCategory groups matching notes by category
func (r *NoteRepository) CountByCategory(ctx context.Context, q ports.CanonicalQuery) ([]ports.CategoryCount, error) {
	return ports.GroupByCategory(r.match(q)), nil
}

func (r *NoteRepository) match(q ports.CanonicalQuery) []*entities.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Note, 0)
	for _, note := range r.notes {
		if q.Matches(note) {
			out = append(out, cloneNote(note))
		}
	}
	return out
}

func cloneNote(n *entities.Note) *entities.Note {
	return &entities.Note{
		ID:         n.ID,
		UserID:     n.UserID,
		Title:      n.Title,
		Content:    n.Content,
		Category:   n.Category,
		Tags:       append([]string{}, n.Tags...),
		IsFavorite: n.IsFavorite,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
