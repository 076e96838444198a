package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

const noteColumns = "id, user_id, title, content, category, tags, is_favorite, is_archived, created_at, updated_at"

// NoteRepository stores notes in SQLite. Search is a case-insensitive
// substring match over title and content; SQLite's lower() folds ASCII only.
type NoteRepository struct {
	db *DB
}

// NewNoteRepository creates a SQLite-backed note repository
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

// Create inserts a note
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	tags, err := json.Marshal(nonNilTags(note.Tags))
	if err != nil {
		return dbError("encode tags", err)
	}

	_, err = r.db.db.ExecContext(ctx,
		"INSERT INTO notes ("+noteColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		note.ID, note.UserID, note.Title, note.Content, note.Category, string(tags),
		boolToInt(note.IsFavorite), boolToInt(note.IsArchived),
		toMillis(note.CreatedAt), toMillis(note.UpdatedAt),
	)
	if err != nil {
		return dbError("insert note", err)
	}
	return nil
}

// Update overwrites the mutable columns of a note
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	tags, err := json.Marshal(nonNilTags(note.Tags))
	if err != nil {
		return dbError("encode tags", err)
	}

	res, err := r.db.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, category = ?, tags = ?,
		 is_favorite = ?, is_archived = ?, updated_at = ? WHERE id = ?`,
		note.Title, note.Content, note.Category, string(tags),
		boolToInt(note.IsFavorite), boolToInt(note.IsArchived), toMillis(note.UpdatedAt),
		note.ID,
	)
	if err != nil {
		return dbError("update note", err)
	}
	return requireAffected(res, "Note")
}

// GetByID retrieves a note by its ID
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	row := r.db.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewNotFoundError("Note")
	}
	if err != nil {
		return nil, dbError("get note", err)
	}
	return note, nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return dbError("delete note", err)
	}
	return requireAffected(res, "Note")
}

// Find returns matching notes in order
func (r *NoteRepository) Find(ctx context.Context, q ports.CanonicalQuery, order ports.OrderingRule) ([]*entities.Note, error) {
	where, args := buildWhere(q)
	query := "SELECT " + noteColumns + " FROM notes WHERE " + where + " ORDER BY " + buildOrderBy(order)

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("find notes", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, dbError("scan note", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("find notes", err)
	}
	return notes, nil
}

// Count returns the number of matching notes
func (r *NoteRepository) Count(ctx context.Context, q ports.CanonicalQuery) (int64, error) {
	where, args := buildWhere(q)
	var count int64
	if err := r.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes WHERE "+where, args...).Scan(&count); err != nil {
		return 0, dbError("count notes", err)
	}
	return count, nil
}

// CountByCategory groups matching notes by category
func (r *NoteRepository) CountByCategory(ctx context.Context, q ports.CanonicalQuery) ([]ports.CategoryCount, error) {
	where, args := buildWhere(q)
	rows, err := r.db.db.QueryContext(ctx,
		"SELECT category, COUNT(*) AS n FROM notes WHERE "+where+" GROUP BY category ORDER BY n DESC, category ASC",
		args...)
	if err != nil {
		return nil, dbError("count by category", err)
	}
	defer rows.Close()

	counts := make([]ports.CategoryCount, 0)
	for rows.Next() {
		var c ports.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, dbError("scan category count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("count by category", err)
	}
	return counts, nil
}

// buildWhere translates a CanonicalQuery into a parameterized predicate
func buildWhere(q ports.CanonicalQuery) (string, []interface{}) {
	clauses := []string{"user_id = ?"}
	args := []interface{}{q.UserID}

	if q.Search != nil && *q.Search != "" {
		clauses = append(clauses, "(instr(lower(title), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0)")
		args = append(args, *q.Search, *q.Search)
	}
	if q.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *q.Category)
	}
	if q.IsFavorite != nil {
		clauses = append(clauses, "is_favorite = ?")
		args = append(args, boolToInt(*q.IsFavorite))
	}
	if q.IsArchived != nil {
		clauses = append(clauses, "is_archived = ?")
		args = append(args, boolToInt(*q.IsArchived))
	}
	if q.CreatedSince != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, toMillis(*q.CreatedSince))
	}

	return strings.Join(clauses, " AND "), args
}

func buildOrderBy(order ports.OrderingRule) string {
	column := "created_at"
	switch order.Field {
	case ports.SortByUpdatedAt:
		column = "updated_at"
	case ports.SortByTitle:
		column = "title COLLATE BINARY"
	}
	direction := "ASC"
	if order.Descending {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC"
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(s scanner) (*entities.Note, error) {
	var (
		n                    entities.Note
		tags                 string
		favorite, archived   int
		createdAt, updatedAt int64
	)
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &tags,
		&favorite, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, err
	}
	n.Tags = nonNilTags(n.Tags)
	n.IsFavorite = favorite != 0
	n.IsArchived = archived != 0
	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updatedAt)
	return &n, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbError("rows affected", err)
	}
	if n == 0 {
		return pkgerrors.NewNotFoundError(resource)
	}
	return nil
}
