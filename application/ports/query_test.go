package ports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notes-backend/domain/core/entities"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func note(id, title string, created time.Time) *entities.Note {
	return &entities.Note{ID: id, UserID: "u", Title: title, Content: "body", Category: "Personal", CreatedAt: created, UpdatedAt: created}
}

func ptr[T any](v T) *T { return &v }

func ids(notes []*entities.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestCanonicalQuery_Matches(t *testing.T) {
	n := &entities.Note{ID: "1", UserID: "u", Title: "Groceries", Content: "Buy MILK", Category: "Home", IsFavorite: true, CreatedAt: t0}

	tests := []struct {
		name  string
		query CanonicalQuery
		want  bool
	}{
		{"owner only", CanonicalQuery{UserID: "u"}, true},
		{"other user", CanonicalQuery{UserID: "v"}, false},
		{"search title ci", CanonicalQuery{UserID: "u", Search: ptr("grocer")}, true},
		{"search content ci", CanonicalQuery{UserID: "u", Search: ptr("milk")}, true},
		{"search miss", CanonicalQuery{UserID: "u", Search: ptr("bread")}, false},
		{"empty search ignored", CanonicalQuery{UserID: "u", Search: ptr("")}, true},
		{"category match", CanonicalQuery{UserID: "u", Category: ptr("Home")}, true},
		{"category miss", CanonicalQuery{UserID: "u", Category: ptr("Work")}, false},
		{"favorite", CanonicalQuery{UserID: "u", IsFavorite: ptr(true)}, true},
		{"not favorite", CanonicalQuery{UserID: "u", IsFavorite: ptr(false)}, false},
		{"archived false", CanonicalQuery{UserID: "u", IsArchived: ptr(false)}, true},
		{"archived true", CanonicalQuery{UserID: "u", IsArchived: ptr(true)}, false},
		{"created since inclusive", CanonicalQuery{UserID: "u", CreatedSince: ptr(t0)}, true},
		{"created before window", CanonicalQuery{UserID: "u", CreatedSince: ptr(t0.Add(time.Second))}, false},
		{"search and category conjunctive", CanonicalQuery{UserID: "u", Search: ptr("milk"), Category: ptr("Work")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(n))
		})
	}
}

func TestOrderingRule_Sort(t *testing.T) {
	a := note("a", "beta", t0)
	b := note("b", "Alpha", t0.Add(time.Hour))
	c := note("c", "alpha", t0.Add(time.Hour))
	c.UpdatedAt = t0.Add(3 * time.Hour)

	tests := []struct {
		name string
		rule OrderingRule
		want []string
	}{
		{"newest with id tie-break", OrderingRule{Field: SortByCreatedAt, Descending: true}, []string{"b", "c", "a"}},
		{"oldest", OrderingRule{Field: SortByCreatedAt}, []string{"a", "b", "c"}},
		{"updated", OrderingRule{Field: SortByUpdatedAt, Descending: true}, []string{"c", "b", "a"}},
		{"title case-sensitive", OrderingRule{Field: SortByTitle}, []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := []*entities.Note{c, a, b}
			tt.rule.Sort(notes)
			assert.Equal(t, tt.want, ids(notes))
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	mk := func(cat string) *entities.Note { return &entities.Note{Category: cat} }
	notes := []*entities.Note{mk("Work"), mk("Home"), mk("Work"), mk("Ideas"), mk("Home"), mk("Work")}

	got := GroupByCategory(notes)

	assert.Equal(t, []CategoryCount{
		{Category: "Work", Count: 3},
		{Category: "Home", Count: 2},
		{Category: "Ideas", Count: 1},
	}, got)
	assert.Empty(t, GroupByCategory(nil))
}
