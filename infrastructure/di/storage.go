package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/infrastructure/config"
	"notes-backend/infrastructure/persistence/dynamodb"
	"notes-backend/infrastructure/persistence/memory"
	"notes-backend/infrastructure/persistence/mongodb"
	"notes-backend/infrastructure/persistence/sqlite"
)

// Storage is the repository pair for the configured driver plus a
// connectivity check for the readiness endpoint.
type Storage struct {
	Driver     string
	Notes      ports.NoteRepository
	Categories ports.CategoryRepository
	Ping       func(ctx context.Context) error
}

// ProvideStorage opens the store selected by STORAGE_DRIVER
func ProvideStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, func(), error) {
	logger.Info("Opening storage", zap.String("driver", cfg.StorageDriver))

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return &Storage{
			Driver:     cfg.StorageDriver,
			Notes:      memory.NewNoteRepository(),
			Categories: memory.NewCategoryRepository(),
			Ping:       func(context.Context) error { return nil },
		}, func() {}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Warn("Failed to close SQLite database", zap.Error(err))
			}
		}
		return &Storage{
			Driver:     cfg.StorageDriver,
			Notes:      sqlite.NewNoteRepository(db),
			Categories: sqlite.NewCategoryRepository(db),
			Ping:       func(context.Context) error { return db.Ping() },
		}, cleanup, nil

	case config.StorageMongoDB:
		store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := store.Disconnect(context.Background()); err != nil {
				logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
			}
		}
		return &Storage{
			Driver:     cfg.StorageDriver,
			Notes:      mongodb.NewNoteRepository(store),
			Categories: mongodb.NewCategoryRepository(store),
			Ping:       store.Ping,
		}, cleanup, nil

	case config.StorageDynamoDB:
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS config: %w", err)
		}
		client := awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})
		table := dynamodb.Table{Name: cfg.DynamoDBTable, IndexName: cfg.NoteIndexName}
		return &Storage{
			Driver:     cfg.StorageDriver,
			Notes:      dynamodb.NewNoteRepository(client, table, logger),
			Categories: dynamodb.NewCategoryRepository(client, table, logger),
			Ping: func(ctx context.Context) error {
				_, err := client.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{TableName: aws.String(table.Name)})
				return err
			},
		}, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
