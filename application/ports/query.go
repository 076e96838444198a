package ports

import (
	"sort"
	"strings"
	"time"

	"notes-backend/domain/core/entities"
)

// CanonicalQuery is the storage-agnostic predicate set for a note lookup.
// Every populated field is ANDed; a nil pointer means "no predicate".
// UserID is always required: queries never span users.
type CanonicalQuery struct {
	UserID       string
	Search       *string
	Category     *string
	IsFavorite   *bool
	IsArchived   *bool
	CreatedSince *time.Time
}

// SortField names the note attribute an OrderingRule sorts on
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
)

// OrderingRule is a primary sort key plus direction. Ties are always
// broken by note ID ascending.
type OrderingRule struct {
	Field      SortField
	Descending bool
}

// CategoryCount is one row of a group-by-category count
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Matches evaluates the query against a single note. Stores that cannot
// push a predicate down to the engine filter with it in process.
// Search is a case-insensitive substring match over title and content.
func (q CanonicalQuery) Matches(n *entities.Note) bool {
	if n.UserID != q.UserID {
		return false
	}
	if q.Search != nil && *q.Search != "" {
		needle := strings.ToLower(*q.Search)
		if !strings.Contains(strings.ToLower(n.Title), needle) &&
			!strings.Contains(strings.ToLower(n.Content), needle) {
			return false
		}
	}
	if q.Category != nil && n.Category != *q.Category {
		return false
	}
	if q.IsFavorite != nil && n.IsFavorite != *q.IsFavorite {
		return false
	}
	if q.IsArchived != nil && n.IsArchived != *q.IsArchived {
		return false
	}
	if q.CreatedSince != nil && n.CreatedAt.Before(*q.CreatedSince) {
		return false
	}
	return true
}

// Less reports whether a sorts before b under the rule
func (r OrderingRule) Less(a, b *entities.Note) bool {
	var cmp int
	switch r.Field {
	case SortByUpdatedAt:
		cmp = a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByTitle:
		cmp = strings.Compare(a.Title, b.Title)
	default:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}
	if r.Descending {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp < 0
	}
	return a.ID < b.ID
}

// Sort orders notes in place
func (r OrderingRule) Sort(notes []*entities.Note) {
	sort.SliceStable(notes, func(i, j int) bool { return r.Less(notes[i], notes[j]) })
}

// SortCategoryCounts orders by count descending, then category name ascending
func SortCategoryCounts(counts []CategoryCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
}

// GroupByCategory counts notes per category, omitting empty groups
func GroupByCategory(notes []*entities.Note) []CategoryCount {
	index := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, n := range notes {
		i, ok := index[n.Category]
		if !ok {
			i = len(counts)
			index[n.Category] = i
			counts = append(counts, CategoryCount{Category: n.Category})
		}
		counts[i].Count++
	}
	SortCategoryCounts(counts)
	return counts
}
