package resilience

import (
	"context"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
)

// NoteRepository decorates a ports.NoteRepository with a circuit breaker
type NoteRepository struct {
	next    ports.NoteRepository
	breaker *Breaker
}

// NewNoteRepository wraps next with breaker
func NewNoteRepository(next ports.NoteRepository, breaker *Breaker) *NoteRepository {
	return &NoteRepository{next: next, breaker: breaker}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	return exec(r.breaker, "create", func() error { return r.next.Create(ctx, note) })
}

func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return exec(r.breaker, "update", func() error { return r.next.Update(ctx, note) })
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	return call(r.breaker, "get", func() (*entities.Note, error) { return r.next.GetByID(ctx, id) })
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	return exec(r.breaker, "delete", func() error { return r.next.Delete(ctx, id) })
}

func (r *NoteRepository) Find(ctx context.Context, q ports.CanonicalQuery, order ports.OrderingRule) ([]*entities.Note, error) {
	return call(r.breaker, "find", func() ([]*entities.Note, error) { return r.next.Find(ctx, q, order) })
}

func (r *NoteRepository) Count(ctx context.Context, q ports.CanonicalQuery) (int64, error) {
	return call(r.breaker, "count", func() (int64, error) { return r.next.Count(ctx, q) })
}

func (r *NoteRepository) CountByCategory(ctx context.Context, q ports.CanonicalQuery) ([]ports.CategoryCount, error) {
	return call(r.breaker, "count_by_category", func() ([]ports.CategoryCount, error) {
		return r.next.CountByCategory(ctx, q)
	})
}

// CategoryRepository decorates a ports.CategoryRepository with a circuit breaker
type CategoryRepository struct {
	next    ports.CategoryRepository
	breaker *Breaker
}

// NewCategoryRepository wraps next with breaker
func NewCategoryRepository(next ports.CategoryRepository, breaker *Breaker) *CategoryRepository {
	return &CategoryRepository{next: next, breaker: breaker}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, c *entities.Category) error {
	return exec(r.breaker, "create", func() error { return r.next.Create(ctx, c) })
}

func (r *CategoryRepository) Update(ctx context.Context, c *entities.Category) error {
	return exec(r.breaker, "update", func() error { return r.next.Update(ctx, c) })
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	return call(r.breaker, "get", func() (*entities.Category, error) { return r.next.GetByID(ctx, id) })
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return exec(r.breaker, "delete", func() error { return r.next.Delete(ctx, id) })
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	return call(r.breaker, "list", func() ([]*entities.Category, error) { return r.next.ListByUser(ctx, userID) })
}

func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*entities.Category, error) {
	return call(r.breaker, "find_by_name", func() (*entities.Category, error) {
		return r.next.FindByName(ctx, userID, name)
	})
}
