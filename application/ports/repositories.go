package ports

import (
	"context"
	"time"

	"notes-backend/domain/core/entities"
	"notes-backend/domain/events"
)

// NoteRepository defines the interface for note persistence.
// Lookup misses are reported as NOT_FOUND errors, driver failures as
// DATABASE errors.
type NoteRepository interface {
	// Create persists a new note
	Create(ctx context.Context, note *entities.Note) error

	// Update replaces a stored note by ID; last write wins
	Update(ctx context.Context, note *entities.Note) error

	// GetByID retrieves a note by its ID regardless of owner
	GetByID(ctx context.Context, id string) (*entities.Note, error)

	// Delete permanently removes a note
	Delete(ctx context.Context, id string) error

	// Find returns every note matching q in the given order
	Find(ctx context.Context, q CanonicalQuery, order OrderingRule) ([]*entities.Note, error)

	// Count returns the number of notes matching q
	Count(ctx context.Context, q CanonicalQuery) (int64, error)

	// CountByCategory groups the notes matching q by category
	CountByCategory(ctx context.Context, q CanonicalQuery) ([]CategoryCount, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	Update(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id string) (*entities.Category, error)
	Delete(ctx context.Context, id string) error

	// ListByUser returns a user's categories ordered by name
	ListByUser(ctx context.Context, userID string) ([]*entities.Category, error)

	// FindByName looks up a user's category by exact name; NOT_FOUND on miss
	FindByName(ctx context.Context, userID, name string) (*entities.Category, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Clock supplies the current time; tests substitute a fixed one
type Clock interface {
	Now() time.Time
}
