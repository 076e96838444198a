package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/authz"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// CategoryService manages a user's categories. Names are unique per user.
type CategoryService struct {
	categories ports.CategoryRepository
	publisher  ports.EventPublisher
	clock      ports.Clock
	logger     *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categories ports.CategoryRepository, publisher ports.EventPublisher, clock ports.Clock, logger *zap.Logger) *CategoryService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CategoryService{
		categories: categories,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// ListCategories returns the caller's categories sorted by name
func (s *CategoryService) ListCategories(ctx context.Context, callerID string) ([]*entities.Category, error) {
	categories, err := s.categories.ListByUser(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "Error fetching categories")
	}
	if categories == nil {
		categories = []*entities.Category{}
	}
	return categories, nil
}

// CreateCategory creates a category, rejecting duplicate names
func (s *CategoryService) CreateCategory(ctx context.Context, callerID, name, color, icon string) (*entities.Category, error) {
	category, err := entities.NewCategory(callerID, name, color, icon, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, callerID, category.Name, ""); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(err, "Error creating category")
	}
	publishEvents(ctx, s.publisher, s.logger, category)
	return category, nil
}

// UpdateCategory applies a partial update to one of the caller's categories
func (s *CategoryService) UpdateCategory(ctx context.Context, callerID, categoryID string, patch entities.CategoryPatch) (*entities.Category, error) {
	category, err := s.loadOwned(ctx, callerID, categoryID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != category.Name {
		if err := s.ensureNameFree(ctx, callerID, strings.TrimSpace(*patch.Name), category.ID); err != nil {
			return nil, err
		}
	}

	if err := category.ApplyPatch(patch, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(err, "Error updating category")
	}
	publishEvents(ctx, s.publisher, s.logger, category)
	return category, nil
}

// DeleteCategory removes one of the caller's categories. Notes filed under
// it keep their category name.
func (s *CategoryService) DeleteCategory(ctx context.Context, callerID, categoryID string) error {
	category, err := s.loadOwned(ctx, callerID, categoryID)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return pkgerrors.Wrap(err, "Error deleting category")
	}
	category.MarkDeleted(s.clock.Now())
	publishEvents(ctx, s.publisher, s.logger, category)
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, userID, name, selfID string) error {
	existing, err := s.categories.FindByName(ctx, userID, name)
	switch {
	case err == nil && existing.ID != selfID:
		return pkgerrors.NewDuplicateCategoryError()
	case err == nil, pkgerrors.IsNotFound(err):
		return nil
	default:
		return pkgerrors.Wrap(err, "Error checking category")
	}
}

func (s *CategoryService) loadOwned(ctx context.Context, callerID, categoryID string) (*entities.Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("Category")
		}
		return nil, pkgerrors.Wrap(err, "Error fetching category")
	}
	if err := authz.Require(category, callerID, "category"); err != nil {
		return nil, err
	}
	return category, nil
}
