package valueobjects

import "strings"

const (
	// CategoryAll is the filter sentinel meaning "every category"
	CategoryAll = "all"

	// DefaultCategory is assigned to notes created without a category
	DefaultCategory = "Personal"
)

// OptionalBool is a three-state boolean: unset, true or false.
// The zero value is unset.
type OptionalBool struct {
	set   bool
	value bool
}

// Unset returns an OptionalBool carrying no value
func Unset() OptionalBool {
	return OptionalBool{}
}

// Some returns an OptionalBool holding v
func Some(v bool) OptionalBool {
	return OptionalBool{set: true, value: v}
}

// ParseOptionalBool reads a query parameter. Only "true" and "false"
// (case-insensitive) produce a value; anything else, including the empty
// string, is treated as absent.
func ParseOptionalBool(raw string) OptionalBool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return Some(true)
	case "false":
		return Some(false)
	default:
		return Unset()
	}
}

// IsSet reports whether a value was provided
func (o OptionalBool) IsSet() bool { return o.set }

// Value returns the held value; false when unset
func (o OptionalBool) Value() bool { return o.value }

// OrElse returns the held value, or def when unset
func (o OptionalBool) OrElse(def bool) bool {
	if !o.set {
		return def
	}
	return o.value
}

// Ptr returns a pointer to the value, or nil when unset
func (o OptionalBool) Ptr() *bool {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// String renders the value for logs
func (o OptionalBool) String() string {
	if !o.set {
		return "unset"
	}
	if o.value {
		return "true"
	}
	return "false"
}
