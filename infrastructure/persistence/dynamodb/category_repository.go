package dynamodb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/core/entities"
	pkgerrors "notes-backend/pkg/errors"
)

// CategoryRepository stores categories next to the owner's notes. Each
// category has a companion CATNAME# item so name uniqueness is enforced by
// a conditional transactional write.
type CategoryRepository struct {
	client API
	table  Table
	logger *zap.Logger
}

// NewCategoryRepository creates a DynamoDB-backed category repository
func NewCategoryRepository(client API, table Table, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{client: client, table: table, logger: logger}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// Create writes the category and reserves its name atomically
func (r *CategoryRepository) Create(ctx context.Context, c *entities.Category) error {
	put, err := r.putCategory(c, expression.Name("PK").AttributeNotExists())
	if err != nil {
		return err
	}
	reserve, err := r.reserveName(c)
	if err != nil {
		return err
	}
	return r.transact(ctx, "create category", put, reserve)
}

// Update overwrites a category, moving the name reservation on rename
func (r *CategoryRepository) Update(ctx context.Context, c *entities.Category) error {
	current, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}

	put, err := r.putCategory(c, expression.Name("PK").AttributeExists())
	if err != nil {
		return err
	}
	if current.Name == c.Name {
		return r.transact(ctx, "update category", put)
	}

	reserve, err := r.reserveName(c)
	if err != nil {
		return err
	}
	release := r.releaseName(current)
	return r.transact(ctx, "update category", put, reserve, release)
}

// GetByID resolves a category through the ID index
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	keyExpr := expression.Key("GSI1PK").Equal(expression.Value(categorySK(id)))
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
		return nil, dbError("get category", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("Category")
	}

	var item categoryItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, dbError("unmarshal category", err)
	}
	return item.toEntity(), nil
}

// FindByName follows the user's name reservation to the category
func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*entities.Category, error) {
	keyExpr := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").Equal(expression.Value(categoryNameSK(name))))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, dbError("build expression", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, dbError("find category", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("Category")
	}

	var marker categoryNameItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &marker); err != nil {
		return nil, dbError("unmarshal category name", err)
	}
	return r.GetByID(ctx, marker.CategoryID)
}

// Delete removes the category and frees its name
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	del := types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(r.table.Name),
			Key:       itemKey(userPK(current.UserID), categorySK(id)),
		},
	}
	return r.transact(ctx, "delete category", del, r.releaseName(current))
}

// ListByUser returns a user's categories ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	keyExpr := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith(entityCategory + "#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, dbError("build expression", err)
	}

	categories := make([]*entities.Category, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, dbError("list categories", err)
		}
		for _, av := range page.Items {
			var item categoryItem
			if err := attributevalue.UnmarshalMap(av, &item); err != nil {
				return nil, dbError("unmarshal category", err)
			}
			categories = append(categories, item.toEntity())
		}
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (r *CategoryRepository) putCategory(c *entities.Category, cond expression.ConditionBuilder) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(newCategoryItem(c))
	if err != nil {
		return types.TransactWriteItem{}, dbError("marshal category", err)
	}
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return types.TransactWriteItem{}, dbError("build expression", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:                 aws.String(r.table.Name),
			Item:                      av,
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		},
	}, nil
}

func (r *CategoryRepository) reserveName(c *entities.Category) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(categoryNameItem{
		PK:         userPK(c.UserID),
		SK:         categoryNameSK(c.Name),
		CategoryID: c.ID,
	})
	if err != nil {
		return types.TransactWriteItem{}, dbError("marshal category name", err)
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists()).Build()
	if err != nil {
		return types.TransactWriteItem{}, dbError("build expression", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:                 aws.String(r.table.Name),
			Item:                      av,
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		},
	}, nil
}

func (r *CategoryRepository) releaseName(c *entities.Category) types.TransactWriteItem {
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(r.table.Name),
			Key:       itemKey(userPK(c.UserID), categoryNameSK(c.Name)),
		},
	}
}

func (r *CategoryRepository) transact(ctx context.Context, op string, items ...types.TransactWriteItem) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	if isTransactionConflict(err) {
		return pkgerrors.NewDuplicateCategoryError()
	}
	r.logger.Error("Category transaction failed", zap.String("operation", op), zap.Error(err))
	return dbError(op, err)
}

func itemKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}
