package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	pkgerrors "notes-backend/pkg/errors"
)

const (
	notesCollection      = "notes"
	categoriesCollection = "categories"
)

// Store holds the MongoDB client and the notes database
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect dials MongoDB, verifies connectivity and ensures indexes
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(database), logger: logger}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("MongoDB connected", zap.String("database", database))
	return s, nil
}

// Disconnect closes the client
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks connectivity for the readiness endpoint
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) notes() *mongo.Collection      { return s.db.Collection(notesCollection) }
func (s *Store) categories() *mongo.Collection { return s.db.Collection(categoriesCollection) }

// ensureIndexes creates the text index used by search plus the indexes
// behind the per-user list, stats and uniqueness queries.
func (s *Store) ensureIndexes(ctx context.Context) error {
	collections := map[string][]mongo.IndexModel{
		notesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_archived", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
			{
				Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}},
				Options: options.Index().SetName("notes_text"),
			},
		},
		categoriesCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for name, indexes := range collections {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func dbError(operation string, err error) error {
	return pkgerrors.NewDatabaseError(operation, err)
}
