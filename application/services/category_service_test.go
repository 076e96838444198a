package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-backend/application/queries"
	"notes-backend/domain/core/entities"
	"notes-backend/infrastructure/persistence/memory"
	pkgerrors "notes-backend/pkg/errors"
)

func newCategoryService() *CategoryService {
	return NewCategoryService(memory.NewCategoryRepository(), nil, &fixedClock{now: now}, zap.NewNop())
}

func TestCategoryService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()

	work, err := svc.CreateCategory(ctx, "alice", " Work ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, "#667eea", work.Color)
	assert.Equal(t, "📁", work.Icon)

	_, err = svc.CreateCategory(ctx, "alice", "Home", "#00ff00", "🏠")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "bob", "Work", "", "")
	require.NoError(t, err, "names are unique per user only")

	list, err := svc.ListCategories(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Home", list[0].Name)
	assert.Equal(t, "Work", list[1].Name)
}

func TestCategoryService_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()
	_, err := svc.CreateCategory(ctx, "alice", "Work", "", "")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "alice", "Work  ", "", "")

	assert.True(t, pkgerrors.IsConflict(err))
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()
	work, err := svc.CreateCategory(ctx, "alice", "Work", "", "")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "alice", "Home", "", "")
	require.NoError(t, err)

	name := "Home"
	_, err = svc.UpdateCategory(ctx, "alice", work.ID, entities.CategoryPatch{Name: &name})
	assert.True(t, pkgerrors.IsConflict(err))

	same := "Work"
	color := "#123456"
	updated, err := svc.UpdateCategory(ctx, "alice", work.ID, entities.CategoryPatch{Name: &same, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "#123456", updated.Color)

	_, err = svc.UpdateCategory(ctx, "bob", work.ID, entities.CategoryPatch{Color: &color})
	assert.True(t, pkgerrors.IsForbidden(err))

	_, err = svc.UpdateCategory(ctx, "alice", "missing", entities.CategoryPatch{Color: &color})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCategoryService_DeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	categories := newCategoryService()
	notes := NewNoteService(memory.NewNoteRepository(), nil, &fixedClock{now: now}, zap.NewNop())

	work, err := categories.CreateCategory(ctx, "alice", "Work", "", "")
	require.NoError(t, err)
	note, err := notes.CreateNote(ctx, "alice", entities.NoteDraft{Title: "A", Content: "x", Category: "Work"})
	require.NoError(t, err)

	assert.True(t, pkgerrors.IsForbidden(categories.DeleteCategory(ctx, "bob", work.ID)))
	require.NoError(t, categories.DeleteCategory(ctx, "alice", work.ID))

	list, err := categories.ListCategories(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	remaining, err := notes.ListNotes(ctx, "alice", queries.FilterSpec{Category: "Work"})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, note.ID, remaining[0].ID)
}
