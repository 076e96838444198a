package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	pkgerrors "notes-backend/pkg/errors"
)

// API is the subset of the DynamoDB client used by the repositories
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// Table names the single table and its ID lookup index
type Table struct {
	Name      string
	IndexName string
}

const (
	entityNote     = "NOTE"
	entityCategory = "CATEGORY"
	gsiSortKey     = "METADATA"
)

func userPK(userID string) string       { return fmt.Sprintf("USER#%s", userID) }
func noteSK(id string) string           { return fmt.Sprintf("NOTE#%s", id) }
func categorySK(id string) string       { return fmt.Sprintf("CATEGORY#%s", id) }
func categoryNameSK(name string) string { return fmt.Sprintf("CATNAME#%s", name) }

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func isTransactionConflict(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func dbError(operation string, err error) error {
	return pkgerrors.NewDatabaseError(operation, err)
}
