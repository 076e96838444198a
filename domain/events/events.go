package events

import "time"

// DomainEvent is the base interface for all domain events.
// Events describe something that has already happened.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetUserID() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	UserID      string    `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetUserID() string       { return e.UserID }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

const (
	TypeNoteCreated         = "note.created"
	TypeNoteUpdated         = "note.updated"
	TypeNoteDeleted         = "note.deleted"
	TypeNoteFavoriteToggled = "note.favorite_toggled"
	TypeNoteArchiveToggled  = "note.archive_toggled"
	TypeCategoryCreated     = "category.created"
	TypeCategoryUpdated     = "category.updated"
	TypeCategoryDeleted     = "category.deleted"
)

func newBase(eventType, aggregateID, userID string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		UserID:      userID,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Note Events

// NoteCreated is raised when a new note is created
type NoteCreated struct {
	BaseEvent
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// NewNoteCreated creates a NoteCreated event
func NewNoteCreated(noteID, userID, title, category string, tags []string, timestamp time.Time) NoteCreated {
	return NoteCreated{
		BaseEvent: newBase(TypeNoteCreated, noteID, userID, timestamp),
		Title:     title,
		Category:  category,
		Tags:      tags,
	}
}

// NoteUpdated is raised when a patch is applied to a note
type NoteUpdated struct {
	BaseEvent
	ChangedFields []string `json:"changed_fields"`
}

// NewNoteUpdated creates a NoteUpdated event
func NewNoteUpdated(noteID, userID string, changed []string, timestamp time.Time) NoteUpdated {
	return NoteUpdated{
		BaseEvent:     newBase(TypeNoteUpdated, noteID, userID, timestamp),
		ChangedFields: changed,
	}
}

// NoteDeleted is raised when a note is permanently removed
type NoteDeleted struct {
	BaseEvent
}

// NewNoteDeleted creates a NoteDeleted event
func NewNoteDeleted(noteID, userID string, timestamp time.Time) NoteDeleted {
	return NoteDeleted{BaseEvent: newBase(TypeNoteDeleted, noteID, userID, timestamp)}
}

// NoteFavoriteToggled is raised when a note's favorite flag flips
type NoteFavoriteToggled struct {
	BaseEvent
	IsFavorite bool `json:"is_favorite"`
}

// NewNoteFavoriteToggled creates a NoteFavoriteToggled event
func NewNoteFavoriteToggled(noteID, userID string, isFavorite bool, timestamp time.Time) NoteFavoriteToggled {
	return NoteFavoriteToggled{
		BaseEvent:  newBase(TypeNoteFavoriteToggled, noteID, userID, timestamp),
		IsFavorite: isFavorite,
	}
}

// NoteArchiveToggled is raised when a note's archive flag flips
type NoteArchiveToggled struct {
	BaseEvent
	IsArchived bool `json:"is_archived"`
}

// NewNoteArchiveToggled creates a NoteArchiveToggled event
func NewNoteArchiveToggled(noteID, userID string, isArchived bool, timestamp time.Time) NoteArchiveToggled {
	return NoteArchiveToggled{
		BaseEvent:  newBase(TypeNoteArchiveToggled, noteID, userID, timestamp),
		IsArchived: isArchived,
	}
}

// Category Events

// CategoryCreated is raised when a category is created
type CategoryCreated struct {
	BaseEvent
	Name string `json:"name"`
}

// NewCategoryCreated creates a CategoryCreated event
func NewCategoryCreated(categoryID, userID, name string, timestamp time.Time) CategoryCreated {
	return CategoryCreated{
		BaseEvent: newBase(TypeCategoryCreated, categoryID, userID, timestamp),
		Name:      name,
	}
}

// CategoryUpdated is raised when a category changes
type CategoryUpdated struct {
	BaseEvent
	Name string `json:"name"`
}

// NewCategoryUpdated creates a CategoryUpdated event
func NewCategoryUpdated(categoryID, userID, name string, timestamp time.Time) CategoryUpdated {
	return CategoryUpdated{
		BaseEvent: newBase(TypeCategoryUpdated, categoryID, userID, timestamp),
		Name:      name,
	}
}

// CategoryDeleted is raised when a category is removed
type CategoryDeleted struct {
	BaseEvent
}

// NewCategoryDeleted creates a CategoryDeleted event
func NewCategoryDeleted(categoryID, userID string, timestamp time.Time) CategoryDeleted {
	return CategoryDeleted{BaseEvent: newBase(TypeCategoryDeleted, categoryID, userID, timestamp)}
}
