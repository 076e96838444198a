package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// NoteRepository stores notes in MongoDB. Search uses the collection's
// text index over title and content.
type NoteRepository struct {
	store *Store
}

// NewNoteRepository creates a MongoDB-backed note repository
func NewNoteRepository(store *Store) *NoteRepository {
	return &NoteRepository{store: store}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

// Create inserts a note
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	if _, err := r.store.notes().InsertOne(ctx, toNoteDocument(note)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pkgerrors.NewConflictError("note already exists")
		}
		return dbError("insert note", err)
	}
	return nil
}

// Update replaces a note document by ID
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	res, err := r.store.notes().ReplaceOne(ctx, bson.M{"_id": note.ID}, toNoteDocument(note))
	if err != nil {
		return dbError("update note", err)
	}
	if res.MatchedCount == 0 {
		return pkgerrors.NewNotFoundError("Note")
	}
	return nil
}

// GetByID retrieves a note by its ID
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	var doc noteDocument
	err := r.store.notes().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.NewNotFoundError("Note")
	}
	if err != nil {
		return nil, dbError("get note", err)
	}
	return doc.toEntity(), nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.notes().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError("delete note", err)
	}
	if res.DeletedCount == 0 {
		return pkgerrors.NewNotFoundError("Note")
	}
	return nil
}

// Find returns matching notes in order
func (r *NoteRepository) Find(ctx context.Context, q ports.CanonicalQuery, order ports.OrderingRule) ([]*entities.Note, error) {
	cursor, err := r.store.notes().Find(ctx, buildFilter(q), options.Find().SetSort(buildSort(order)))
	if err != nil {
		return nil, dbError("find notes", err)
	}

	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError("decode notes", err)
	}

	notes := make([]*entities.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, doc.toEntity())
	}
	return notes, nil
}

// Count returns the number of matching notes
func (r *NoteRepository) Count(ctx context.Context, q ports.CanonicalQuery) (int64, error) {
	n, err := r.store.notes().CountDocuments(ctx, buildFilter(q))
	if err != nil {
		return 0, dbError("count notes", err)
	}
	return n, nil
}

// CountByCategory groups matching notes by category with an aggregation
func (r *NoteRepository) CountByCategory(ctx context.Context, q ports.CanonicalQuery) ([]ports.CategoryCount, error) {
	cursor, err := r.store.notes().Aggregate(ctx, buildCategoryPipeline(q))
	if err != nil {
		return nil, dbError("count by category", err)
	}

	var docs []categoryCountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError("decode category counts", err)
	}

	counts := make([]ports.CategoryCount, 0, len(docs))
	for _, d := range docs {
		counts = append(counts, ports.CategoryCount{Category: d.Category, Count: d.Count})
	}
	return counts, nil
}

// buildFilter translates a CanonicalQuery into a MongoDB filter document
func buildFilter(q ports.CanonicalQuery) bson.M {
	filter := bson.M{"user_id": q.UserID}

	if q.Search != nil && *q.Search != "" {
		filter["$text"] = bson.M{"$search": *q.Search}
	}
	if q.Category != nil {
		filter["category"] = *q.Category
	}
	if q.IsFavorite != nil {
		filter["is_favorite"] = *q.IsFavorite
	}
	if q.IsArchived != nil {
		filter["is_archived"] = *q.IsArchived
	}
	if q.CreatedSince != nil {
		filter["created_at"] = bson.M{"$gte": q.CreatedSince.UTC()}
	}
	return filter
}

func buildSort(order ports.OrderingRule) bson.D {
	field := "created_at"
	switch order.Field {
	case ports.SortByUpdatedAt:
		field = "updated_at"
	case ports.SortByTitle:
		field = "title"
	}
	direction := 1
	if order.Descending {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}, {Key: "_id", Value: 1}}
}

func buildCategoryPipeline(q ports.CanonicalQuery) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(q)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}
