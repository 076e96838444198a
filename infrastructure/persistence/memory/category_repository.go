package memory

import (
	"context"
	"sort"
	"sync"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// CategoryRepository keeps categories in process memory
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*entities.Category
}

// NewCategoryRepository creates an empty in-memory category store
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]*entities.Category)}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// Create stores a new category, enforcing per-user name uniqueness
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return pkgerrors.NewDuplicateCategoryError()
		}
	}
	r.categories[category.ID] = cloneCategory(category)
	return nil
}

// Update replaces a stored category
func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.ID]; !exists {
		return pkgerrors.NewNotFoundError("Category")
	}
	for id, c := range r.categories {
		if id != category.ID && c.UserID == category.UserID && c.Name == category.Name {
			return pkgerrors.NewDuplicateCategoryError()
		}
	}
	r.categories[category.ID] = cloneCategory(category)
	return nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.categories[id]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("Category")
	}
	return cloneCategory(c), nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[id]; !exists {
		return pkgerrors.NewNotFoundError("Category")
	}
	delete(r.categories, id)
	return nil
}

// ListByUser returns a user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Category, 0)
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, cloneCategory(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FindByName looks up a user's category by exact name
func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return cloneCategory(c), nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("Category")
}

func cloneCategory(c *entities.Category) *entities.Category {
	return &entities.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
