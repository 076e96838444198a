package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

const categoryColumns = "id, user_id, name, color, icon, created_at, updated_at"

// CategoryRepository stores categories in SQLite; the (user_id, name)
// unique constraint backs per-user name uniqueness.
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a SQLite-backed category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, c *entities.Category) error {
	_, err := r.db.db.ExecContext(ctx,
		"INSERT INTO categories ("+categoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.UserID, c.Name, c.Color, c.Icon, toMillis(c.CreatedAt), toMillis(c.UpdatedAt))
	if isUniqueViolation(err) {
		return pkgerrors.NewDuplicateCategoryError()
	}
	if err != nil {
		return dbError("insert category", err)
	}
	return nil
}

// Update overwrites a category's mutable columns
func (r *CategoryRepository) Update(ctx context.Context, c *entities.Category) error {
	res, err := r.db.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, color = ?, icon = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Color, c.Icon, toMillis(c.UpdatedAt), c.ID)
	if isUniqueViolation(err) {
		return pkgerrors.NewDuplicateCategoryError()
	}
	if err != nil {
		return dbError("update category", err)
	}
	return requireAffected(res, "Category")
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	return r.getOne(ctx, "get category", "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
}

// FindByName looks up a user's category by exact name
func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*entities.Category, error) {
	return r.getOne(ctx, "find category", "SELECT "+categoryColumns+" FROM categories WHERE user_id = ? AND name = ?", userID, name)
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return dbError("delete category", err)
	}
	return requireAffected(res, "Category")
}

// ListByUser returns a user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	rows, err := r.db.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = ? ORDER BY name ASC, id ASC", userID)
	if err != nil {
		return nil, dbError("list categories", err)
	}
	defer rows.Close()

	out := make([]*entities.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, dbError("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list categories", err)
	}
	return out, nil
}

func (r *CategoryRepository) getOne(ctx context.Context, operation, query string, args ...interface{}) (*entities.Category, error) {
	c, err := scanCategory(r.db.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewNotFoundError("Category")
	}
	if err != nil {
		return nil, dbError(operation, err)
	}
	return c, nil
}

func scanCategory(s scanner) (*entities.Category, error) {
	var (
		c                    entities.Category
		createdAt, updatedAt int64
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return &c, nil
}
