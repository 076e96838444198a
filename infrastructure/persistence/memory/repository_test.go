package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	"notes-backend/infrastructure/persistence/repotest"
	pkgerrors "notes-backend/pkg/errors"
)

func TestNoteRepository_Contract(t *testing.T) {
	repotest.RunNoteRepositoryContract(t, func(t *testing.T) ports.NoteRepository {
		return NewNoteRepository()
	})
}

func TestCategoryRepository_Contract(t *testing.T) {
	repotest.RunCategoryRepositoryContract(t, func(t *testing.T) ports.CategoryRepository {
		return NewCategoryRepository()
	})
}

func TestNoteRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()
	note := repotest.NoteFixture("n1", "alice", "Title", repotest.Base)
	require.NoError(t, repo.Create(ctx, note))

	note.Title = "mutated after create"
	got, err := repo.GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "Title", got.Title)

	got.Title = "mutated after read"
	again, err := repo.GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "Title", again.Title)
}

func TestNoteRepository_UpdateMissing(t *testing.T) {
	repo := NewNoteRepository()
	err := repo.Update(context.Background(), repotest.NoteFixture("nope", "alice", "x", repotest.Base))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	work := &entities.Category{ID: "c1", UserID: "alice", Name: "Work"}
	require.NoError(t, repo.Create(ctx, work))

	err := repo.Create(ctx, &entities.Category{ID: "c2", UserID: "alice", Name: "Work"})
	assert.True(t, pkgerrors.IsConflict(err))

	assert.NoError(t, repo.Create(ctx, &entities.Category{ID: "c3", UserID: "bob", Name: "Work"}))
}
