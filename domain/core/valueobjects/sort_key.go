package valueobjects

// SortKey selects the ordering of a note listing
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortUpdated SortKey = "updated"
	SortTitle   SortKey = "title"
)

// ParseSortKey maps a raw token to a SortKey. Unknown and empty tokens
// fall back to SortNewest.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortOldest, SortUpdated, SortTitle:
		return SortKey(raw)
	default:
		return SortNewest
	}
}

// String returns the token form
func (k SortKey) String() string { return string(k) }
