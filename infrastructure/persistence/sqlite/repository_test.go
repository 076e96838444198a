package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	"notes-backend/infrastructure/persistence/repotest"
	pkgerrors "notes-backend/pkg/errors"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "notes.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNoteRepository_Contract(t *testing.T) {
	repotest.RunNoteRepositoryContract(t, func(t *testing.T) ports.NoteRepository {
		return NewNoteRepository(openTestDB(t))
	})
}

func TestCategoryRepository_Contract(t *testing.T) {
	repotest.RunCategoryRepositoryContract(t, func(t *testing.T) ports.CategoryRepository {
		return NewCategoryRepository(openTestDB(t))
	})
}

func TestCategoryRepository_UniqueConstraintIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(openTestDB(t))
	mk := func(id, user string) *entities.Category {
		return &entities.Category{ID: id, UserID: user, Name: "Work", Color: "#667eea", Icon: "📁", CreatedAt: repotest.Base, UpdatedAt: repotest.Base}
	}

	require.NoError(t, repo.Create(ctx, mk("c1", "alice")))
	assert.True(t, pkgerrors.IsConflict(repo.Create(ctx, mk("c2", "alice"))))
	assert.NoError(t, repo.Create(ctx, mk("c3", "bob")))
}

func TestBuildWhere(t *testing.T) {
	search, category := "milk", "Work"
	archived := false
	where, args := buildWhere(ports.CanonicalQuery{UserID: "u", Search: &search, Category: &category, IsArchived: &archived})

	assert.Equal(t, "user_id = ? AND (instr(lower(title), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0) AND category = ? AND is_archived = ?", where)
	assert.Equal(t, []interface{}{"u", "milk", "milk", "Work", 0}, args)
}

func TestBuildOrderBy(t *testing.T) {
	assert.Equal(t, "created_at DESC, id ASC", buildOrderBy(ports.OrderingRule{Field: ports.SortByCreatedAt, Descending: true}))
	assert.Equal(t, "title COLLATE BINARY ASC, id ASC", buildOrderBy(ports.OrderingRule{Field: ports.SortByTitle}))
	assert.Equal(t, "updated_at DESC, id ASC", buildOrderBy(ports.OrderingRule{Field: ports.SortByUpdatedAt, Descending: true}))
}
