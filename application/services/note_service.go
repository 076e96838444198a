package services

import (
	"context"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/application/queries"
	"notes-backend/domain/authz"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// ToggleResult is a toggled note plus the transition message shown to the user
type ToggleResult struct {
	Note    *entities.Note
	Message string
}

// NoteService implements note retrieval and mutation for a single caller.
// Every single-note operation goes through the ownership gate: a missing
// note is NOT_FOUND, a note owned by someone else is FORBIDDEN.
type NoteService struct {
	notes     ports.NoteRepository
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(notes ports.NoteRepository, publisher ports.EventPublisher, clock ports.Clock, logger *zap.Logger) *NoteService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &NoteService{
		notes:     notes,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// ListNotes returns the caller's notes matching spec, in the requested order
func (s *NoteService) ListNotes(ctx context.Context, callerID string, spec queries.FilterSpec) ([]*entities.Note, error) {
	q := queries.BuildQuery(spec, callerID)
	order := queries.ResolveSort(spec.SortBy)

	notes, err := s.notes.Find(ctx, q, order)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "Error fetching notes")
	}
	if notes == nil {
		notes = []*entities.Note{}
	}
	return notes, nil
}

// GetNote fetches a single note owned by the caller
func (s *NoteService) GetNote(ctx context.Context, callerID, noteID string) (*entities.Note, error) {
	return s.loadOwned(ctx, callerID, noteID)
}

// CreateNote validates and stores a new note for the caller
func (s *NoteService) CreateNote(ctx context.Context, callerID string, draft entities.NoteDraft) (*entities.Note, error) {
	note, err := entities.NewNote(callerID, draft, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, pkgerrors.Wrap(err, "Error creating note")
	}

	s.logger.Debug("Note created", zap.String("note_id", note.ID), zap.String("user_id", callerID))
	publishEvents(ctx, s.publisher, s.logger, note)
	return note, nil
}

// UpdateNote applies a partial update to one of the caller's notes
func (s *NoteService) UpdateNote(ctx context.Context, callerID, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	note, err := s.loadOwned(ctx, callerID, noteID)
	if err != nil {
		return nil, err
	}

	if err := note.ApplyPatch(patch, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.save(ctx, note, "Error updating note")
}

// DeleteNote permanently removes one of the caller's notes
func (s *NoteService) DeleteNote(ctx context.Context, callerID, noteID string) error {
	note, err := s.loadOwned(ctx, callerID, noteID)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return pkgerrors.Wrap(err, "Error deleting note")
	}

	note.MarkDeleted(s.clock.Now())
	publishEvents(ctx, s.publisher, s.logger, note)
	return nil
}

// ToggleFavorite flips the favorite flag of one of the caller's notes
func (s *NoteService) ToggleFavorite(ctx context.Context, callerID, noteID string) (*ToggleResult, error) {
	note, err := s.loadOwned(ctx, callerID, noteID)
	if err != nil {
		return nil, err
	}

	message := note.ToggleFavorite(s.clock.Now())
	if _, err := s.save(ctx, note, "Error updating note"); err != nil {
		return nil, err
	}
	return &ToggleResult{Note: note, Message: message}, nil
}

// ToggleArchive flips the archive flag of one of the caller's notes
func (s *NoteService) ToggleArchive(ctx context.Context, callerID, noteID string) (*ToggleResult, error) {
	note, err := s.loadOwned(ctx, callerID, noteID)
	if err != nil {
		return nil, err
	}

	message := note.ToggleArchive(s.clock.Now())
	if _, err := s.save(ctx, note, "Error updating note"); err != nil {
		return nil, err
	}
	return &ToggleResult{Note: note, Message: message}, nil
}

func (s *NoteService) save(ctx context.Context, note *entities.Note, failure string) (*entities.Note, error) {
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, pkgerrors.Wrap(err, failure)
	}
	publishEvents(ctx, s.publisher, s.logger, note)
	return note, nil
}

// loadOwned checks existence before ownership
func (s *NoteService) loadOwned(ctx context.Context, callerID, noteID string) (*entities.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("Note")
		}
		return nil, pkgerrors.Wrap(err, "Error fetching note")
	}

	if err := authz.Require(note, callerID, "note"); err != nil {
		s.logger.Warn("Ownership check failed",
			zap.String("note_id", noteID),
			zap.String("caller_id", callerID))
		return nil, err
	}
	return note, nil
}
