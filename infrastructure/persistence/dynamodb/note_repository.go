package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// NoteRepository stores notes in a single DynamoDB table partitioned by user.
// Equality and range filters run server side; text search runs in process
// because DynamoDB's contains() is case-sensitive.
type NoteRepository struct {
	client API
	table  Table
	logger *zap.Logger
}

// NewNoteRepository creates a DynamoDB-backed note repository
func NewNoteRepository(client API, table Table, logger *zap.Logger) *NoteRepository {
	return &NoteRepository{client: client, table: table, logger: logger}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

// Create puts a note, failing if the key already exists
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	return r.put(ctx, note, expression.Name("PK").AttributeNotExists(), func() error {
		return pkgerrors.NewConflictError("note already exists")
	})
}

// Update overwrites an existing note
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return r.put(ctx, note, expression.Name("PK").AttributeExists(), func() error {
		return pkgerrors.NewNotFoundError("Note")
	})
}

func (r *NoteRepository) put(ctx context.Context, note *entities.Note, cond expression.ConditionBuilder, onCondFail func() error) error {
	av, err := attributevalue.MarshalMap(newNoteItem(note))
	if err != nil {
		return dbError("marshal note", err)
	}

	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return dbError("build expression", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.table.Name),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return onCondFail()
		}
		r.logger.Error("Failed to put note", zap.Error(err), zap.String("noteID", note.ID))
		return dbError("put note", err)
	}
	return nil
}

// GetByID resolves a note through the ID index, independent of owner
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	keyExpr := expression.Key("GSI1PK").Equal(expression.Value(noteSK(id)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, dbError("build expression", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		IndexName:                 aws.String(r.table.IndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, dbError("get note", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("Note")
	}

	var item noteItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, dbError("unmarshal note", err)
	}
	return item.toEntity(), nil
}

// Delete removes a note by ID
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	note, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeExists()).Build()
	if err != nil {
		return dbError("build expression", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(r.table.Name),
		Key:                       itemKey(userPK(note.UserID), noteSK(id)),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return pkgerrors.NewNotFoundError("Note")
		}
		return dbError("delete note", err)
	}
	return nil
}

// Find returns matching notes in order
func (r *NoteRepository) Find(ctx context.Context, q ports.CanonicalQuery, order ports.OrderingRule) ([]*entities.Note, error) {
	notes, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	order.Sort(notes)
	return notes, nil
}

// Count returns the number of matching notes
func (r *NoteRepository) Count(ctx context.Context, q ports.CanonicalQuery) (int64, error) {
	notes, err := r.query(ctx, q)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}

// CountByCategory groups matching notes by category
func (r *NoteRepository) CountByCategory(ctx context.Context, q ports.CanonicalQuery) ([]ports.CategoryCount, error) {
	notes, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return ports.GroupByCategory(notes), nil
}

// query pages through the user's partition and applies the in-process
// part of the predicate.
func (r *NoteRepository) query(ctx context.Context, q ports.CanonicalQuery) ([]*entities.Note, error) {
	input, err := buildNoteQuery(r.table.Name, q)
	if err != nil {
		return nil, dbError("build expression", err)
	}

	notes := make([]*entities.Note, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, dbError("query notes", err)
		}
		for _, av := range page.Items {
			var item noteItem
			if err := attributevalue.UnmarshalMap(av, &item); err != nil {
				return nil, dbError("unmarshal note", err)
			}
			note := item.toEntity()
			if q.Matches(note) {
				notes = append(notes, note)
			}
		}
	}
	return notes, nil
}

// buildNoteQuery translates everything except search into key and filter
// expressions.
func buildNoteQuery(tableName string, q ports.CanonicalQuery) (*dynamodb.QueryInput, error) {
	keyExpr := expression.Key("PK").Equal(expression.Value(userPK(q.UserID))).
		And(expression.Key("SK").BeginsWith(entityNote + "#"))
	builder := expression.NewBuilder().WithKeyCondition(keyExpr)

	var conds []expression.ConditionBuilder
	if q.Category != nil {
		conds = append(conds, expression.Name("Category").Equal(expression.Value(*q.Category)))
	}
	if q.IsFavorite != nil {
		conds = append(conds, expression.Name("IsFavorite").Equal(expression.Value(*q.IsFavorite)))
	}
	if q.IsArchived != nil {
		conds = append(conds, expression.Name("IsArchived").Equal(expression.Value(*q.IsArchived)))
	}
	if q.CreatedSince != nil {
		conds = append(conds, expression.Name("CreatedAt").GreaterThanEqual(expression.Value(q.CreatedSince.UnixMilli())))
	}

	switch len(conds) {
	case 0:
	case 1:
		builder = builder.WithFilter(conds[0])
	default:
		builder = builder.WithFilter(expression.And(conds[0], conds[1], conds[2:]...))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	return &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, nil
}
