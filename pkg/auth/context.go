package auth

import (
	"context"
	"errors"
)

// UserContext represents the authenticated caller
type UserContext struct {
	UserID string
	Email  string
	Name   string
}

type contextKey string

const (
	userContextKey  contextKey = "user"
	callerHolderKey contextKey = "caller-holder"
)

// ErrNoUserInContext is returned when a request reached a handler without
// passing the authentication middleware.
var ErrNoUserInContext = errors.New("user not found in context")

// WithCallerHolder installs a holder that SetUserInContext fills in, so
// middleware wrapping authentication can see who the caller was.
func WithCallerHolder(ctx context.Context, holder *UserContext) context.Context {
	return context.WithValue(ctx, callerHolderKey, holder)
}

// SetUserInContext adds the caller to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	if holder, ok := ctx.Value(callerHolderKey).(*UserContext); ok && holder != nil && user != nil {
		*holder = *user
	}
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the caller from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
