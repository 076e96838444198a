package valueobjects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyID is returned when an identifier is blank
var ErrEmptyID = errors.New("identifier is required")

// NewID generates a new random entity identifier
func NewID() string {
	return uuid.New().String()
}

// ValidateID checks an identifier taken from a token or request path.
// Identifiers are opaque, so only blank values are rejected.
func ValidateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyID, field)
	}
	return nil
}
