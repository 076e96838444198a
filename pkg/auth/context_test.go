package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext_RoundTrip(t *testing.T) {
	ctx := SetUserInContext(context.Background(), &UserContext{UserID: "u1", Email: "a@b.c"})

	user, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
}

func TestUserContext_Missing(t *testing.T) {
	_, err := GetUserFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoUserInContext)

	ctx := SetUserInContext(context.Background(), &UserContext{})
	_, err = GetUserFromContext(ctx)
	assert.ErrorIs(t, err, ErrNoUserInContext)
}

func TestCallerHolder_FilledByDownstreamContext(t *testing.T) {
	holder := &UserContext{}
	outer := WithCallerHolder(context.Background(), holder)

	SetUserInContext(outer, &UserContext{UserID: "u1", Name: "Ann"})

	assert.Equal(t, "u1", holder.UserID)
	assert.Equal(t, "Ann", holder.Name)
}
