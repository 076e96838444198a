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

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	"notes-backend/infrastructure/persistence/memory"
	pkgerrors "notes-backend/pkg/errors"
)

func seedNote(t *testing.T, repo ports.NoteRepository, id, user, category string, created time.Time, favorite, archived bool) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entities.Note{
		ID: id, UserID: user, Title: id, Content: "x", Category: category, Tags: []string{},
		IsFavorite: favorite, IsArchived: archived, CreatedAt: created, UpdatedAt: created,
	}))
}

func TestStatsService_ThreeNoteScenario(t *testing.T) {
	repo := memory.NewNoteRepository()
	seedNote(t, repo, "n1", "alice", "Personal", now, false, false)
	seedNote(t, repo, "n2", "alice", "Personal", now, true, false)
	seedNote(t, repo, "n3", "alice", "Personal", now, false, true)
	svc := NewStatsService(repo, &fixedClock{now: now}, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.ArchivedNotes)
	assert.Equal(t, int64(1), stats.FavoriteNotes)
}

func TestStatsService_Definitions(t *testing.T) {
	repo := memory.NewNoteRepository()
	old := now.Add(-10 * 24 * time.Hour)
	seedNote(t, repo, "w1", "alice", "Work", old, false, false)
	seedNote(t, repo, "w2", "alice", "Work", now.Add(-time.Hour), true, false)
	seedNote(t, repo, "w3", "alice", "Work", now, false, false)
	seedNote(t, repo, "h1", "alice", "Home", old, false, false)
	seedNote(t, repo, "i1", "alice", "Ideas", now, true, true) // archived favorite, created this week
	seedNote(t, repo, "b1", "bob", "Work", now, true, false)
	svc := NewStatsService(repo, &fixedClock{now: now}, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.FavoriteNotes, "archived favorites are excluded")
	assert.Equal(t, int64(1), stats.ArchivedNotes)
	assert.Equal(t, int64(3), stats.NotesThisWeek, "archived notes still count toward this week")
	assert.Equal(t, []ports.CategoryCount{
		{Category: "Work", Count: 3},
		{Category: "Home", Count: 1},
	}, stats.NotesByCategory, "Ideas only has archived notes and is omitted")
}

func TestStatsService_WindowBoundaryInclusive(t *testing.T) {
	repo := memory.NewNoteRepository()
	seedNote(t, repo, "edge", "alice", "Personal", now.Add(-StatsWindow), false, false)
	seedNote(t, repo, "outside", "alice", "Personal", now.Add(-StatsWindow-time.Millisecond), false, false)
	svc := NewStatsService(repo, &fixedClock{now: now}, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.NotesThisWeek)
}

func TestStatsService_EmptyUser(t *testing.T) {
	svc := NewStatsService(memory.NewNoteRepository(), &fixedClock{now: now}, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Zero(t, stats.TotalNotes)
	assert.NotNil(t, stats.NotesByCategory)
	assert.Empty(t, stats.NotesByCategory)
}

func TestStatsService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNoteRepository)
	repo.On("Count", ctx, mock.Anything).Return(int64(0), errors.New("boom"))
	svc := NewStatsService(repo, &fixedClock{now: now}, zap.NewNop())

	_, err := svc.GetStats(ctx, "alice")

	assert.True(t, pkgerrors.IsInternal(err))
	assert.Equal(t, "Error fetching statistics", pkgerrors.GetAppError(err).Message)
}
