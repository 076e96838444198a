package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-backend/application/queries"
	"notes-backend/domain/core/entities"
	"notes-backend/domain/core/valueobjects"
	"notes-backend/infrastructure/persistence/memory"
	pkgerrors "notes-backend/pkg/errors"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newNoteService(t *testing.T) (*NoteService, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: now}
	return NewNoteService(memory.NewNoteRepository(), nil, clock, zap.NewNop()), clock
}

func mustCreate(t *testing.T, svc *NoteService, user, title string, draft ...entities.NoteDraft) *entities.Note {
	t.Helper()
	d := entities.NoteDraft{Title: title, Content: "content"}
	if len(draft) > 0 {
		d = draft[0]
		d.Title = title
		if d.Content == "" {
			d.Content = "content"
		}
	}
	note, err := svc.CreateNote(context.Background(), user, d)
	require.NoError(t, err)
	return note
}

func noteIDs(notes []*entities.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestNoteService_CreateNote_DefaultsCategory(t *testing.T) {
	svc, _ := newNoteService(t)

	note, err := svc.CreateNote(context.Background(), "alice", entities.NoteDraft{Title: "A", Content: "x"})

	require.NoError(t, err)
	assert.Equal(t, "Personal", note.Category)
	assert.Empty(t, note.Tags)
	assert.Equal(t, "alice", note.UserID)
	assert.Equal(t, now, note.CreatedAt)
	assert.Equal(t, now, note.UpdatedAt)

	stored, err := svc.GetNote(context.Background(), "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Personal", stored.Category)
}

func TestNoteService_CreateNote_Validation(t *testing.T) {
	svc, _ := newNoteService(t)

	_, err := svc.CreateNote(context.Background(), "alice", entities.NoteDraft{Title: "", Content: "x"})
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = svc.CreateNote(context.Background(), "alice", entities.NoteDraft{Title: "A", Content: ""})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestNoteService_ListNotes_HidesArchivedUnlessAsked(t *testing.T) {
	ctx := context.Background()
	svc, clock := newNoteService(t)

	plain := mustCreate(t, svc, "alice", "plain")
	clock.Advance(time.Second)
	fav := mustCreate(t, svc, "alice", "fav", entities.NoteDraft{Category: "Work"})
	clock.Advance(time.Second)
	archivedFav := mustCreate(t, svc, "alice", "archived fav", entities.NoteDraft{Category: "Work"})
	clock.Advance(time.Second)

	_, err := svc.ToggleFavorite(ctx, "alice", fav.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, "alice", archivedFav.ID)
	require.NoError(t, err)
	_, err = svc.ToggleArchive(ctx, "alice", archivedFav.ID)
	require.NoError(t, err)

	specs := map[string]queries.FilterSpec{
		"no filters":     queries.ParseFilterSpec("", "", "", "", ""),
		"favorites":      queries.ParseFilterSpec("", "", "true", "", ""),
		"category":       queries.ParseFilterSpec("", "Work", "", "", ""),
		"search":         queries.ParseFilterSpec("fav", "", "", "", ""),
		"malformed flag": queries.ParseFilterSpec("", "", "", "sometimes", "title"),
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			notes, err := svc.ListNotes(ctx, "alice", spec)
			require.NoError(t, err)
			assert.NotEmpty(t, notes)
			for _, n := range notes {
				assert.False(t, n.IsArchived, "archived note %s leaked into %s", n.Title, name)
			}
		})
	}

	archived, err := svc.ListNotes(ctx, "alice", queries.ParseFilterSpec("", "", "", "true", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{archivedFav.ID}, noteIDs(archived))

	favorites, err := svc.ListNotes(ctx, "alice", queries.ParseFilterSpec("", "", "true", "", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{fav.ID}, noteIDs(favorites))

	all, err := svc.ListNotes(ctx, "alice", queries.ParseFilterSpec("", "", "", "", "oldest"))
	require.NoError(t, err)
	assert.Equal(t, []string{plain.ID, fav.ID}, noteIDs(all))
}

func TestNoteService_ListNotes_EmptyCategory(t *testing.T) {
	svc, _ := newNoteService(t)
	mustCreate(t, svc, "alice", "A")

	notes, err := svc.ListNotes(context.Background(), "alice", queries.FilterSpec{Category: "Work"})

	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteService_ListNotes_NeverCrossUser(t *testing.T) {
	svc, _ := newNoteService(t)
	mustCreate(t, svc, "alice", "A")
	mustCreate(t, svc, "bob", "B")

	notes, err := svc.ListNotes(context.Background(), "bob", queries.FilterSpec{})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "bob", notes[0].UserID)
}

func TestNoteService_ListNotes_DeterministicTieBreak(t *testing.T) {
	svc, _ := newNoteService(t)
	// Same clock reading: identical createdAt for all three.
	for _, title := range []string{"one", "two", "three"} {
		mustCreate(t, svc, "alice", title)
	}

	first, err := svc.ListNotes(context.Background(), "alice", queries.FilterSpec{})
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID)
	}

	for i := 0; i < 5; i++ {
		again, err := svc.ListNotes(context.Background(), "alice", queries.FilterSpec{SortBy: valueobjects.SortNewest})
		require.NoError(t, err)
		assert.Equal(t, noteIDs(first), noteIDs(again))
	}
}

func TestNoteService_OwnershipGate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteService(t)
	note := mustCreate(t, svc, "alice", "private")

	operations := map[string]func(callerID, noteID string) error{
		"get": func(c, id string) error { _, err := svc.GetNote(ctx, c, id); return err },
		"update": func(c, id string) error {
			_, err := svc.UpdateNote(ctx, c, id, entities.NotePatch{Title: strPtr("hijack")})
			return err
		},
		"delete":   func(c, id string) error { return svc.DeleteNote(ctx, c, id) },
		"favorite": func(c, id string) error { _, err := svc.ToggleFavorite(ctx, c, id); return err },
		"archive":  func(c, id string) error { _, err := svc.ToggleArchive(ctx, c, id); return err },
	}

	for name, op := range operations {
		t.Run(name+" by other user is FORBIDDEN", func(t *testing.T) {
			err := op("bob", note.ID)
			assert.True(t, pkgerrors.IsForbidden(err), "got %v", err)
		})
		t.Run(name+" on missing note is NOT_FOUND", func(t *testing.T) {
			err := op("bob", "does-not-exist")
			assert.True(t, pkgerrors.IsNotFound(err), "got %v", err)
			assert.Equal(t, "Note not found", pkgerrors.GetAppError(err).Message)
		})
	}

	stored, err := svc.GetNote(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", stored.Title)
	assert.False(t, stored.IsFavorite)
	assert.False(t, stored.IsArchived)
	assert.Equal(t, note.UpdatedAt, stored.UpdatedAt)
}

func TestNoteService_MutationsAdvanceUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteService(t)
	note := mustCreate(t, svc, "alice", "A")

	// The clock never moves during this test.
	last := note.UpdatedAt
	steps := []func() (*entities.Note, error){
		func() (*entities.Note, error) {
			return svc.UpdateNote(ctx, "alice", note.ID, entities.NotePatch{Content: strPtr("y")})
		},
		func() (*entities.Note, error) {
			r, err := svc.ToggleFavorite(ctx, "alice", note.ID)
			if err != nil {
				return nil, err
			}
			return r.Note, nil
		},
		func() (*entities.Note, error) {
			r, err := svc.ToggleArchive(ctx, "alice", note.ID)
			if err != nil {
				return nil, err
			}
			return r.Note, nil
		},
	}

	for _, step := range steps {
		updated, err := step()
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(last))
		assert.Equal(t, note.CreatedAt, updated.CreatedAt)
		last = updated.UpdatedAt
	}
}

func TestNoteService_ToggleArchive_Message(t *testing.T) {
	svc, _ := newNoteService(t)
	note := mustCreate(t, svc, "alice", "A")

	result, err := svc.ToggleArchive(context.Background(), "alice", note.ID)

	require.NoError(t, err)
	assert.True(t, result.Note.IsArchived)
	assert.Equal(t, "Note archived", result.Message)

	result, err = svc.ToggleArchive(context.Background(), "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Note unarchived", result.Message)
}

func TestNoteService_ToggleFavorite_Message(t *testing.T) {
	svc, _ := newNoteService(t)
	note := mustCreate(t, svc, "alice", "A")

	result, err := svc.ToggleFavorite(context.Background(), "alice", note.ID)
	require.NoError(t, err)
	assert.True(t, result.Note.IsFavorite)
	assert.Equal(t, "Note added to favorites", result.Message)

	result, err = svc.ToggleFavorite(context.Background(), "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Note removed from favorites", result.Message)
}

func TestNoteService_UpdateNote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteService(t)
	note := mustCreate(t, svc, "alice", "A")

	updated, err := svc.UpdateNote(ctx, "alice", note.ID, entities.NotePatch{Title: strPtr("B")})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Title)
	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, "alice", updated.UserID)

	_, err = svc.UpdateNote(ctx, "alice", note.ID, entities.NotePatch{Title: strPtr("  ")})
	assert.True(t, pkgerrors.IsValidation(err))

	stored, err := svc.GetNote(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", stored.Title)
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteService(t)
	note := mustCreate(t, svc, "alice", "A")

	require.NoError(t, svc.DeleteNote(ctx, "alice", note.ID))

	_, err := svc.GetNote(ctx, "alice", note.ID)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestNoteService_StorageFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNoteRepository)
	svc := NewNoteService(repo, nil, &fixedClock{now: now}, zap.NewNop())

	repo.On("Find", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	repo.On("GetByID", ctx, "n1").Return(nil, pkgerrors.NewDatabaseError("get", errors.New("timeout")))

	_, err := svc.ListNotes(ctx, "alice", queries.FilterSpec{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInternal(err))
	assert.Equal(t, "Error fetching notes", pkgerrors.GetAppError(err).Message)

	_, err = svc.GetNote(ctx, "alice", "n1")
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeInternal))
	assert.False(t, pkgerrors.GetAppError(err).Exposable())

	repo.AssertExpectations(t)
}

func TestNoteService_UpdateFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNoteRepository)
	svc := NewNoteService(repo, nil, &fixedClock{now: now}, zap.NewNop())
	existing := &entities.Note{ID: "n1", UserID: "alice", Title: "A", Content: "x", Category: "Personal", CreatedAt: now, UpdatedAt: now}

	repo.On("GetByID", ctx, "n1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*entities.Note")).Return(errors.New("disk full"))

	_, err := svc.ToggleFavorite(ctx, "alice", "n1")

	assert.True(t, pkgerrors.IsInternal(err))
	repo.AssertExpectations(t)
}

func TestNoteService_PublishesEventsBestEffort(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	svc := NewNoteService(memory.NewNoteRepository(), publisher, &fixedClock{now: now}, zap.NewNop())

	publisher.On("PublishBatch", ctx, mock.AnythingOfType("[]events.DomainEvent")).Return(errors.New("bus down"))

	note, err := svc.CreateNote(ctx, "alice", entities.NoteDraft{Title: "A", Content: "x"})
	require.NoError(t, err)
	assert.Empty(t, note.GetUncommittedEvents())

	require.NoError(t, svc.DeleteNote(ctx, "alice", note.ID))
	publisher.AssertNumberOfCalls(t, "PublishBatch", 2)
}
