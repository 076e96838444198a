package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/application/queries"
	pkgerrors "notes-backend/pkg/errors"
)

// StatsWindow is how far back notesThisWeek looks
const StatsWindow = 7 * 24 * time.Hour

// StatsService computes per-user note statistics
type StatsService struct {
	notes  ports.NoteRepository
	clock  ports.Clock
	logger *zap.Logger
}

// NewStatsService creates a new statistics service
func NewStatsService(notes ports.NoteRepository, clock ports.Clock, logger *zap.Logger) *StatsService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StatsService{notes: notes, clock: clock, logger: logger}
}

// GetStats computes the caller's snapshot. The counters deliberately use
// different archive predicates; see StatsSnapshot.
func (s *StatsService) GetStats(ctx context.Context, callerID string) (*queries.StatsSnapshot, error) {
	yes, no := true, false
	weekAgo := s.clock.Now().Add(-StatsWindow)

	total, err := s.notes.Count(ctx, ports.CanonicalQuery{UserID: callerID, IsArchived: &no})
	if err != nil {
		return nil, s.fail(err)
	}
	favorites, err := s.notes.Count(ctx, ports.CanonicalQuery{UserID: callerID, IsFavorite: &yes, IsArchived: &no})
	if err != nil {
		return nil, s.fail(err)
	}
	archived, err := s.notes.Count(ctx, ports.CanonicalQuery{UserID: callerID, IsArchived: &yes})
	if err != nil {
		return nil, s.fail(err)
	}
	thisWeek, err := s.notes.Count(ctx, ports.CanonicalQuery{UserID: callerID, CreatedSince: &weekAgo})
	if err != nil {
		return nil, s.fail(err)
	}
	byCategory, err := s.notes.CountByCategory(ctx, ports.CanonicalQuery{UserID: callerID, IsArchived: &no})
	if err != nil {
		return nil, s.fail(err)
	}
	if byCategory == nil {
		byCategory = []ports.CategoryCount{}
	}

	return &queries.StatsSnapshot{
		TotalNotes:      total,
		FavoriteNotes:   favorites,
		ArchivedNotes:   archived,
		NotesThisWeek:   thisWeek,
		NotesByCategory: byCategory,
	}, nil
}

func (s *StatsService) fail(err error) error {
	return pkgerrors.Wrap(err, "Error fetching statistics")
}
