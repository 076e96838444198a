package queries

import (
	"strings"

	"notes-backend/application/ports"
	"notes-backend/domain/core/valueobjects"
)

// FilterSpec describes which of a caller's notes to list. It is built per
// request and never stored.
type FilterSpec struct {
	Search     string
	Category   string
	IsFavorite valueobjects.OptionalBool
	IsArchived valueobjects.OptionalBool
	SortBy     valueobjects.SortKey
}

// ParseFilterSpec builds a FilterSpec from raw request parameters.
// Malformed values degrade to "absent" instead of failing the request.
func ParseFilterSpec(search, category, isFavorite, isArchived, sortBy string) FilterSpec {
	return FilterSpec{
		Search:     strings.TrimSpace(search),
		Category:   strings.TrimSpace(category),
		IsFavorite: valueobjects.ParseOptionalBool(isFavorite),
		IsArchived: valueobjects.ParseOptionalBool(isArchived),
		SortBy:     valueobjects.ParseSortKey(sortBy),
	}
}

// BuildQuery translates a filter into a CanonicalQuery scoped to callerID.
// Archived notes are excluded unless the filter names an archive state.
func BuildQuery(spec FilterSpec, callerID string) ports.CanonicalQuery {
	q := ports.CanonicalQuery{UserID: callerID}

	if spec.Search != "" {
		search := spec.Search
		q.Search = &search
	}
	if spec.Category != "" && spec.Category != valueobjects.CategoryAll {
		category := spec.Category
		q.Category = &category
	}
	q.IsFavorite = spec.IsFavorite.Ptr()

	archived := spec.IsArchived.OrElse(false)
	q.IsArchived = &archived

	return q
}

// ResolveSort maps a sort key to its ordering rule; unknown keys sort newest first
func ResolveSort(key valueobjects.SortKey) ports.OrderingRule {
	switch key {
	case valueobjects.SortOldest:
		return ports.OrderingRule{Field: ports.SortByCreatedAt}
	case valueobjects.SortUpdated:
		return ports.OrderingRule{Field: ports.SortByUpdatedAt, Descending: true}
	case valueobjects.SortTitle:
		return ports.OrderingRule{Field: ports.SortByTitle}
	default:
		return ports.OrderingRule{Field: ports.SortByCreatedAt, Descending: true}
	}
}
