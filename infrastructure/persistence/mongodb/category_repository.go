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

// CategoryRepository stores categories in MongoDB; a unique
// (user_id, name) index backs name uniqueness.
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a MongoDB-backed category repository
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, c *entities.Category) error {
	if _, err := r.store.categories().InsertOne(ctx, toCategoryDocument(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pkgerrors.NewDuplicateCategoryError()
		}
		return dbError("insert category", err)
	}
	return nil
}

// Update replaces a category document
func (r *CategoryRepository) Update(ctx context.Context, c *entities.Category) error {
	res, err := r.store.categories().ReplaceOne(ctx, bson.M{"_id": c.ID}, toCategoryDocument(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pkgerrors.NewDuplicateCategoryError()
		}
		return dbError("update category", err)
	}
	if res.MatchedCount == 0 {
		return pkgerrors.NewNotFoundError("Category")
	}
	return nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByName looks up a user's category by exact name
func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*entities.Category, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "name": name})
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.categories().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError("delete category", err)
	}
	if res.DeletedCount == 0 {
		return pkgerrors.NewNotFoundError("Category")
	}
	return nil
}

// ListByUser returns a user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.store.categories().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, dbError("list categories", err)
	}

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError("decode categories", err)
	}

	out := make([]*entities.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (*entities.Category, error) {
	var doc categoryDocument
	err := r.store.categories().FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.NewNotFoundError("Category")
	}
	if err != nil {
		return nil, dbError("find category", err)
	}
	return doc.toEntity(), nil
}
