// Package authz decides whether a caller may act on a user-owned resource.
package authz

import (
	"fmt"

	pkgerrors "notes-backend/pkg/errors"
)

// Decision is the outcome of an authorization check
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "ALLOWED"
	}
	return "DENIED"
}

// Owned is implemented by every resource that belongs to a single user
type Owned interface {
	OwnerID() string
}

// Authorize compares the resource owner with the caller.
// An empty caller identity is never allowed.
func Authorize(resourceOwnerID, callerID string) Decision {
	if callerID == "" || resourceOwnerID != callerID {
		return Denied
	}
	return Allowed
}

// Require returns a FORBIDDEN error unless callerID owns resource.
// It is only called after the resource has been found, so a missing
// resource always surfaces as NOT_FOUND first.
func Require(resource Owned, callerID, resourceName string) error {
	if Authorize(resource.OwnerID(), callerID) == Allowed {
		return nil
	}
	return pkgerrors.NewForbiddenError(fmt.Sprintf("Not authorized to access this %s", resourceName)).
		WithCode(pkgerrors.CodeOwnershipViolation)
}
