package entities

import (
	"strings"
	"time"

	"notes-backend/domain/core/valueobjects"
	"notes-backend/domain/events"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"
)

const (
	DefaultCategoryColor = "#667eea"
	DefaultCategoryIcon  = "📁"
)

// Category groups notes by name. Names are unique per user.
type Category struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name" validate:"max=50"`
	Color     string    `json:"color" validate:"hexcolor"`
	Icon      string    `json:"icon" validate:"max=16"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	events []events.DomainEvent
}

// CategoryPatch is a partial category update
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

// NewCategory creates a category with the default color and icon applied
func NewCategory(userID, name, color, icon string, now time.Time) (*Category, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	c := &Category{
		ID:        valueobjects.NewID(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Color:     orDefault(color, DefaultCategoryColor),
		Icon:      orDefault(icon, DefaultCategoryIcon),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.events = append(c.events, events.NewCategoryCreated(c.ID, userID, c.Name, now))
	return c, nil
}

// Validate checks the category fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return pkgerrors.NewValidationError("name is required")
	}
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// OwnerID returns the identity of the owning user
func (c *Category) OwnerID() string { return c.UserID }

// ApplyPatch updates the present fields, leaving the category untouched on error
func (c *Category) ApplyPatch(patch CategoryPatch, now time.Time) error {
	next := *c
	next.events = nil
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		next.Color = orDefault(*patch.Color, DefaultCategoryColor)
	}
	if patch.Icon != nil {
		next.Icon = orDefault(*patch.Icon, DefaultCategoryIcon)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	c.Name, c.Color, c.Icon = next.Name, next.Color, next.Icon
	if !now.After(c.UpdatedAt) {
		now = c.UpdatedAt.Add(time.Millisecond)
	}
	c.UpdatedAt = now
	c.events = append(c.events, events.NewCategoryUpdated(c.ID, c.UserID, c.Name, now))
	return nil
}

// MarkDeleted records the deletion event
func (c *Category) MarkDeleted(now time.Time) {
	c.events = append(c.events, events.NewCategoryDeleted(c.ID, c.UserID, now))
}

// GetUncommittedEvents returns events raised since the last commit
func (c *Category) GetUncommittedEvents() []events.DomainEvent {
	return c.events
}

// MarkEventsAsCommitted clears the pending events
func (c *Category) MarkEventsAsCommitted() {
	c.events = nil
}

func orDefault(value, def string) string {
	if value = strings.TrimSpace(value); value == "" {
		return def
	}
	return value
}
