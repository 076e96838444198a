package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "notes-backend/pkg/errors"
)

type ownedStub string

func (o ownedStub) OwnerID() string { return string(o) }

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		caller   string
		expected Decision
	}{
		{"owner", "user-a", "user-a", Allowed},
		{"other user", "user-a", "user-b", Denied},
		{"anonymous caller", "user-a", "", Denied},
		{"both empty", "", "", Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Authorize(tt.owner, tt.caller))
		})
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(ownedStub("user-a"), "user-a", "note"))

	err := Require(ownedStub("user-a"), "user-b", "note")
	assert.True(t, pkgerrors.IsForbidden(err))
	assert.False(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, "OWNERSHIP_VIOLATION", pkgerrors.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "this note")
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "ALLOWED", Allowed.String())
	assert.Equal(t, "DENIED", Denied.String())
}
