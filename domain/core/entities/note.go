package entities

import (
	"strings"
	"time"

	"notes-backend/domain/core/valueobjects"
	"notes-backend/domain/events"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"
)

// Note is a user-owned piece of text with a category, tags and two flags.
// UserID and CreatedAt never change after creation.
type Note struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title" validate:"max=100"`
	Content    string    `json:"content" validate:"max=5000"`
	Category   string    `json:"category" validate:"max=50"`
	Tags       []string  `json:"tags" validate:"max=20,dive,max=50"`
	IsFavorite bool      `json:"isFavorite"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	events []events.DomainEvent
}

// NoteDraft carries the caller-supplied fields of a new note
type NoteDraft struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// NotePatch is a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title      *string
	Content    *string
	Category   *string
	Tags       *[]string
	IsFavorite *bool
	IsArchived *bool
}

// NewNote creates a note for userID, applying the category and tag defaults
func NewNote(userID string, draft NoteDraft, now time.Time) (*Note, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	note := &Note{
		ID:         valueobjects.NewID(),
		UserID:     userID,
		Title:      strings.TrimSpace(draft.Title),
		Content:    draft.Content,
		Category:   normalizeCategory(draft.Category),
		Tags:       normalizeTags(draft.Tags),
		IsFavorite: false,
		IsArchived: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	note.addEvent(events.NewNoteCreated(note.ID, userID, note.Title, note.Category, note.Tags, now))
	return note, nil
}

// Validate enforces the field rules shared by create and update
func (n *Note) Validate() error {
	if n.Title == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(n.Content) == "" {
		return pkgerrors.NewValidationError("content is required")
	}
	if err := utils.ValidateStruct(n); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// OwnerID returns the identity of the owning user
func (n *Note) OwnerID() string { return n.UserID }

// ApplyPatch applies whichever fields are present. The note is left
// unchanged when the patched result would be invalid.
func (n *Note) ApplyPatch(patch NotePatch, now time.Time) error {
	next := *n
	next.events = nil
	var changed []string

	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
		changed = append(changed, "title")
	}
	if patch.Content != nil {
		next.Content = *patch.Content
		changed = append(changed, "content")
	}
	if patch.Category != nil {
		next.Category = normalizeCategory(*patch.Category)
		changed = append(changed, "category")
	}
	if patch.Tags != nil {
		next.Tags = normalizeTags(*patch.Tags)
		changed = append(changed, "tags")
	}
	if patch.IsFavorite != nil {
		next.IsFavorite = *patch.IsFavorite
		changed = append(changed, "isFavorite")
	}
	if patch.IsArchived != nil {
		next.IsArchived = *patch.IsArchived
		changed = append(changed, "isArchived")
	}

	if err := next.Validate(); err != nil {
		return err
	}

	n.Title = next.Title
	n.Content = next.Content
	n.Category = next.Category
	n.Tags = next.Tags
	n.IsFavorite = next.IsFavorite
	n.IsArchived = next.IsArchived
	n.touch(now)

	n.addEvent(events.NewNoteUpdated(n.ID, n.UserID, changed, n.UpdatedAt))
	return nil
}

// ToggleFavorite flips the favorite flag and returns the transition message
func (n *Note) ToggleFavorite(now time.Time) string {
	n.IsFavorite = !n.IsFavorite
	n.touch(now)
	n.addEvent(events.NewNoteFavoriteToggled(n.ID, n.UserID, n.IsFavorite, n.UpdatedAt))

	if n.IsFavorite {
		return "Note added to favorites"
	}
	return "Note removed from favorites"
}

// ToggleArchive flips the archive flag and returns the transition message
func (n *Note) ToggleArchive(now time.Time) string {
	n.IsArchived = !n.IsArchived
	n.touch(now)
	n.addEvent(events.NewNoteArchiveToggled(n.ID, n.UserID, n.IsArchived, n.UpdatedAt))

	if n.IsArchived {
		return "Note archived"
	}
	return "Note unarchived"
}

// MarkDeleted records the deletion event; removal itself is the store's job
func (n *Note) MarkDeleted(now time.Time) {
	n.addEvent(events.NewNoteDeleted(n.ID, n.UserID, now))
}

// touch moves UpdatedAt strictly forward, even when the clock has not
// advanced past the previous value.
func (n *Note) touch(now time.Time) {
	if !now.After(n.UpdatedAt) {
		now = n.UpdatedAt.Add(time.Millisecond)
	}
	n.UpdatedAt = now
}

// GetUncommittedEvents returns events raised since the last commit
func (n *Note) GetUncommittedEvents() []events.DomainEvent {
	return n.events
}

// MarkEventsAsCommitted clears the pending events
func (n *Note) MarkEventsAsCommitted() {
	n.events = nil
}

func (n *Note) addEvent(event events.DomainEvent) {
	n.events = append(n.events, event)
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return valueobjects.DefaultCategory
	}
	return category
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
