// Package repotest holds behavioural checks shared by every repository
// implementation, so all stores are held to the same contract.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// Base is the reference time used by fixtures
var Base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// NoteFixture builds a stored-form note
func NoteFixture(id, userID, title string, created time.Time, opts ...func(*entities.Note)) *entities.Note {
	n := &entities.Note{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		Category:  "Personal",
		Tags:      []string{},
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func Favorite(n *entities.Note) { n.IsFavorite = true }
func Archived(n *entities.Note) { n.IsArchived = true }
func InCategory(c string) func(*entities.Note) {
	return func(n *entities.Note) { n.Category = c }
}
func WithContent(c string) func(*entities.Note) {
	return func(n *entities.Note) { n.Content = c }
}

func ptr[T any](v T) *T { return &v }

func ids(notes []*entities.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

// RunNoteRepositoryContract exercises a NoteRepository built by newRepo.
// newRepo must return an empty store on every call.
func RunNoteRepositoryContract(t *testing.T, newRepo func(t *testing.T) ports.NoteRepository) {
	ctx := context.Background()

	seed := func(t *testing.T) ports.NoteRepository {
		repo := newRepo(t)
		fixtures := []*entities.Note{
			NoteFixture("n1", "alice", "Groceries", Base, WithContent("buy milk")),
			NoteFixture("n2", "alice", "Work plan", Base.Add(time.Hour), InCategory("Work"), Favorite),
			NoteFixture("n3", "alice", "Old idea", Base.Add(-30*24*time.Hour), InCategory("Ideas"), Archived),
			NoteFixture("n4", "alice", "Same time", Base.Add(time.Hour), InCategory("Work")),
			NoteFixture("n5", "bob", "Bob's milk", Base, WithContent("milk")),
		}
		for _, n := range fixtures {
			require.NoError(t, repo.Create(ctx, n))
		}
		return repo
	}

	t.Run("GetByID round trip", func(t *testing.T) {
		repo := seed(t)
		got, err := repo.GetByID(ctx, "n2")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.UserID)
		assert.Equal(t, "Work plan", got.Title)
		assert.Equal(t, "Work", got.Category)
		assert.True(t, got.IsFavorite)
		assert.False(t, got.IsArchived)
		assert.True(t, got.CreatedAt.Equal(Base.Add(time.Hour)))
		assert.NotNil(t, got.Tags)
	})

	t.Run("GetByID miss is NOT_FOUND", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, "missing")
		assert.True(t, pkgerrors.IsNotFound(err), "got %v", err)
	})

	t.Run("Update replaces fields", func(t *testing.T) {
		repo := seed(t)
		n, err := repo.GetByID(ctx, "n1")
		require.NoError(t, err)
		n.Title = "Groceries v2"
		n.Tags = []string{"home", "weekly"}
		n.IsArchived = true
		n.UpdatedAt = Base.Add(2 * time.Hour)
		require.NoError(t, repo.Update(ctx, n))

		got, err := repo.GetByID(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, "Groceries v2", got.Title)
		assert.Equal(t, []string{"home", "weekly"}, got.Tags)
		assert.True(t, got.IsArchived)
		assert.True(t, got.UpdatedAt.Equal(Base.Add(2*time.Hour)))
	})

	t.Run("Delete", func(t *testing.T) {
		repo := seed(t)
		require.NoError(t, repo.Delete(ctx, "n1"))
		_, err := repo.GetByID(ctx, "n1")
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, "n1")))
	})

	t.Run("Find scopes to user and sorts newest first with id tie-break", func(t *testing.T) {
		repo := seed(t)
		got, err := repo.Find(ctx, ports.CanonicalQuery{UserID: "alice", IsArchived: ptr(false)},
			ports.OrderingRule{Field: ports.SortByCreatedAt, Descending: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"n2", "n4", "n1"}, ids(got))
	})

	t.Run("Find orderings", func(t *testing.T) {
		repo := seed(t)
		q := ports.CanonicalQuery{UserID: "alice"}

		oldest, err := repo.Find(ctx, q, ports.OrderingRule{Field: ports.SortByCreatedAt})
		require.NoError(t, err)
		assert.Equal(t, []string{"n3", "n1", "n2", "n4"}, ids(oldest))

		byTitle, err := repo.Find(ctx, q, ports.OrderingRule{Field: ports.SortByTitle})
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n3", "n4", "n2"}, ids(byTitle))

		updated, err := repo.Find(ctx, q, ports.OrderingRule{Field: ports.SortByUpdatedAt, Descending: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"n2", "n4", "n1", "n3"}, ids(updated))
	})

	t.Run("Find predicates are conjunctive", func(t *testing.T) {
		repo := seed(t)
		order := ports.OrderingRule{Field: ports.SortByCreatedAt, Descending: true}

		got, err := repo.Find(ctx, ports.CanonicalQuery{UserID: "alice", Category: ptr("Work"), IsFavorite: ptr(true), IsArchived: ptr(false)}, order)
		require.NoError(t, err)
		assert.Equal(t, []string{"n2"}, ids(got))

		got, err = repo.Find(ctx, ports.CanonicalQuery{UserID: "alice", Search: ptr("milk"), IsArchived: ptr(false)}, order)
		require.NoError(t, err)
		assert.Equal(t, []string{"n1"}, ids(got))

		got, err = repo.Find(ctx, ports.CanonicalQuery{UserID: "alice", IsArchived: ptr(true)}, order)
		require.NoError(t, err)
		assert.Equal(t, []string{"n3"}, ids(got))

		got, err = repo.Find(ctx, ports.CanonicalQuery{UserID: "alice", Category: ptr("Nope"), IsArchived: ptr(false)}, order)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Count", func(t *testing.T) {
		repo := seed(t)
		total, err := repo.Count(ctx, ports.CanonicalQuery{UserID: "alice", IsArchived: ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		recent, err := repo.Count(ctx, ports.CanonicalQuery{UserID: "alice", CreatedSince: ptr(Base.Add(-7 * 24 * time.Hour))})
		require.NoError(t, err)
		assert.Equal(t, int64(3), recent)
	})

	t.Run("CountByCategory", func(t *testing.T) {
		repo := seed(t)
		got, err := repo.CountByCategory(ctx, ports.CanonicalQuery{UserID: "alice", IsArchived: ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, []ports.CategoryCount{
			{Category: "Work", Count: 2},
			{Category: "Personal", Count: 1},
		}, got)
	})
}

// RunCategoryRepositoryContract exercises a CategoryRepository
func RunCategoryRepositoryContract(t *testing.T, newRepo func(t *testing.T) ports.CategoryRepository) {
	ctx := context.Background()
	mk := func(id, user, name string) *entities.Category {
		return &entities.Category{ID: id, UserID: user, Name: name, Color: "#667eea", Icon: "📁", CreatedAt: Base, UpdatedAt: Base}
	}

	t.Run("create, list sorted, find by name", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, mk("c1", "alice", "Work")))
		require.NoError(t, repo.Create(ctx, mk("c2", "alice", "Home")))
		require.NoError(t, repo.Create(ctx, mk("c3", "bob", "Work")))

		list, err := repo.ListByUser(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Home", list[0].Name)
		assert.Equal(t, "Work", list[1].Name)

		found, err := repo.FindByName(ctx, "bob", "Work")
		require.NoError(t, err)
		assert.Equal(t, "c3", found.ID)

		_, err = repo.FindByName(ctx, "bob", "Home")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("update and delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, mk("c1", "alice", "Work")))

		c, err := repo.GetByID(ctx, "c1")
		require.NoError(t, err)
		c.Name = "Office"
		c.Color = "#000000"
		require.NoError(t, repo.Update(ctx, c))

		got, err := repo.GetByID(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "Office", got.Name)
		assert.Equal(t, "#000000", got.Color)

		require.NoError(t, repo.Delete(ctx, "c1"))
		_, err = repo.GetByID(ctx, "c1")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
