package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptionalBool(t *testing.T) {
	tests := []struct {
		raw      string
		expected OptionalBool
	}{
		{"true", Some(true)},
		{"TRUE", Some(true)},
		{"false", Some(false)},
		{" false ", Some(false)},
		{"", Unset()},
		{"yes", Unset()},
		{"1", Unset()},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOptionalBool(tt.raw))
		})
	}
}

func TestOptionalBool_UnsetIsDistinctFromFalse(t *testing.T) {
	unset := Unset()
	falseVal := Some(false)

	assert.False(t, unset.IsSet())
	assert.True(t, falseVal.IsSet())
	assert.NotEqual(t, unset, falseVal)
	assert.Nil(t, unset.Ptr())
	if assert.NotNil(t, falseVal.Ptr()) {
		assert.False(t, *falseVal.Ptr())
	}
	assert.True(t, unset.OrElse(true))
	assert.False(t, falseVal.OrElse(true))
	assert.Equal(t, "unset", unset.String())
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortOldest, ParseSortKey("oldest"))
	assert.Equal(t, SortUpdated, ParseSortKey("updated"))
	assert.Equal(t, SortTitle, ParseSortKey("title"))
	assert.Equal(t, SortNewest, ParseSortKey("newest"))
	assert.Equal(t, SortNewest, ParseSortKey(""))
	assert.Equal(t, SortNewest, ParseSortKey("Title"))
	assert.Equal(t, SortNewest, ParseSortKey("random"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("noteId", NewID()))
	assert.NoError(t, ValidateID("noteId", "64b7f0c2a1"))

	err := ValidateID("noteId", "  ")
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.Equal(t, "identifier is required: noteId", err.Error())
}
