package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/application/ports"
	"notes-backend/domain/core/valueobjects"
)

func TestBuildQuery_ScopesToCaller(t *testing.T) {
	q := BuildQuery(FilterSpec{}, "user-1")

	assert.Equal(t, "user-1", q.UserID)
	assert.Nil(t, q.Search)
	assert.Nil(t, q.Category)
	assert.Nil(t, q.IsFavorite)
	assert.Nil(t, q.CreatedSince)
}

func TestBuildQuery_ArchiveDefault(t *testing.T) {
	tests := []struct {
		name     string
		spec     FilterSpec
		expected bool
	}{
		{"absent defaults to false", FilterSpec{}, false},
		{"absent with favorites filter", FilterSpec{IsFavorite: valueobjects.Some(true)}, false},
		{"absent with search and category", FilterSpec{Search: "x", Category: "Work"}, false},
		{"explicit true", FilterSpec{IsArchived: valueobjects.Some(true)}, true},
		{"explicit false", FilterSpec{IsArchived: valueobjects.Some(false)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery(tt.spec, "u")
			require.NotNil(t, q.IsArchived)
			assert.Equal(t, tt.expected, *q.IsArchived)
		})
	}
}

func TestBuildQuery_Predicates(t *testing.T) {
	spec := ParseFilterSpec("  milk ", "Work", "false", "", "title")
	q := BuildQuery(spec, "u")

	require.NotNil(t, q.Search)
	assert.Equal(t, "milk", *q.Search)
	require.NotNil(t, q.Category)
	assert.Equal(t, "Work", *q.Category)
	require.NotNil(t, q.IsFavorite)
	assert.False(t, *q.IsFavorite)
}

func TestBuildQuery_CategoryAllIsNoFilter(t *testing.T) {
	assert.Nil(t, BuildQuery(ParseFilterSpec("", "all", "", "", ""), "u").Category)
	assert.Nil(t, BuildQuery(ParseFilterSpec("", "", "", "", ""), "u").Category)
}

func TestParseFilterSpec_MalformedTokensIgnored(t *testing.T) {
	spec := ParseFilterSpec("", "", "maybe", "nope", "sideways")

	assert.False(t, spec.IsFavorite.IsSet())
	assert.False(t, spec.IsArchived.IsSet())
	assert.Equal(t, valueobjects.SortNewest, spec.SortBy)

	q := BuildQuery(spec, "u")
	assert.Nil(t, q.IsFavorite)
	assert.False(t, *q.IsArchived)
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		key      valueobjects.SortKey
		expected ports.OrderingRule
	}{
		{valueobjects.SortOldest, ports.OrderingRule{Field: ports.SortByCreatedAt}},
		{valueobjects.SortUpdated, ports.OrderingRule{Field: ports.SortByUpdatedAt, Descending: true}},
		{valueobjects.SortTitle, ports.OrderingRule{Field: ports.SortByTitle}},
		{valueobjects.SortNewest, ports.OrderingRule{Field: ports.SortByCreatedAt, Descending: true}},
		{valueobjects.SortKey("bogus"), ports.OrderingRule{Field: ports.SortByCreatedAt, Descending: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveSort(tt.key))
		})
	}
}

func TestQueryValidation(t *testing.T) {
	assert.Error(t, ListNotesQuery{}.Validate())
	assert.NoError(t, ListNotesQuery{UserID: "u"}.Validate())
	assert.Error(t, GetNoteQuery{UserID: "u"}.Validate())
	assert.NoError(t, GetNoteQuery{UserID: "u", NoteID: "n"}.Validate())
	assert.Error(t, GetStatsQuery{}.Validate())
	assert.Error(t, ListCategoriesQuery{}.Validate())
}
