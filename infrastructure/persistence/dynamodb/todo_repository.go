package dynamodb

import (
	"context"

	"todoshare-backend/application/ports"
	"todoshare-backend/domain/todo"
	apperrors "todoshare-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TodoRepository implements the TodoRepository interface using DynamoDB
type TodoRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.TodoRepository {
	return &TodoRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// todoItem represents the DynamoDB item structure for a to-do entry
type todoItem struct {
	TodoID        string   `dynamodbav:"todoId"`
	CreatedAt     string   `dynamodbav:"createdAt"`
	Title         string   `dynamodbav:"title"`
	DueDate       string   `dynamodbav:"dueDate"`
	Done          bool     `dynamodbav:"done"`
	Owners        []string `dynamodbav:"owners"`
	AttachmentURL string   `dynamodbav:"attachmentUrl,omitempty"`
}

// GetByID retrieves an item by its identifier. The table is keyed by
// todoId + createdAt, so lookups without the timestamp query the todoId
// partition; more than one row for an id means the store is corrupt.
func (r *TodoRepository) GetByID(ctx context.Context, todoID string) (*todo.Item, error) {
	keyCond := expression.Key("todoId").Equal(expression.Value(todoID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build todo query", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("Failed to query todo item",
			zap.Error(err),
			zap.String("todoId", todoID),
		)
		return nil, apperrors.NewDatabaseError("query todo", err)
	}

	if len(result.Items) == 0 {
		return nil, apperrors.NewNotFoundError("todo item")
	}
	if len(result.Items) > 1 {
		r.logger.Error("Todo id is not unique",
			zap.String("todoId", todoID),
			zap.Int("count", len(result.Items)),
		)
		return nil, apperrors.NewInconsistencyError("todo id is not unique")
	}

	var item todoItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal todo", err)
	}

	return &todo.Item{
		TodoID:        item.TodoID,
		CreatedAt:     item.CreatedAt,
		Title:         item.Title,
		DueDate:       item.DueDate,
		Done:          item.Done,
		Owners:        item.Owners,
		AttachmentURL: item.AttachmentURL,
	}, nil
}

// Create persists a new item
func (r *TodoRepository) Create(ctx context.Context, item *todo.Item) error {
	av, err := attributevalue.MarshalMap(todoItem{
		TodoID:        item.TodoID,
		CreatedAt:     item.CreatedAt,
		Title:         item.Title,
		DueDate:       item.DueDate,
		Done:          item.Done,
		Owners:        item.Owners,
		AttachmentURL: item.AttachmentURL,
	})
	if err != nil {
		return apperrors.NewDatabaseError("marshal todo", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save todo item",
			zap.Error(err),
			zap.String("todoId", item.TodoID),
		)
		return apperrors.NewDatabaseError("put todo", err)
	}

	r.logger.Info("Saved todo item",
		zap.String("todoId", item.TodoID),
		zap.Strings("owners", item.Owners),
	)
	return nil
}

// UpdateFields overwrites title, dueDate and done in place
func (r *TodoRepository) UpdateFields(ctx context.Context, todoID, createdAt string, upd todo.Update) error {
	update := expression.
		Set(expression.Name("title"), expression.Value(upd.Title)).
		Set(expression.Name("dueDate"), expression.Value(upd.DueDate)).
		Set(expression.Name("done"), expression.Value(upd.Done))

	return r.update(ctx, todoID, createdAt, update, "update todo fields")
}

// SetOwners replaces the item's owner set
func (r *TodoRepository) SetOwners(ctx context.Context, todoID, createdAt string, owners []string) error {
	update := expression.Set(expression.Name("owners"), expression.Value(owners))
	return r.update(ctx, todoID, createdAt, update, "update todo owners")
}

// SetAttachmentURL records the permanent attachment location
func (r *TodoRepository) SetAttachmentURL(ctx context.Context, todoID, createdAt, url string) error {
	update := expression.Set(expression.Name("attachmentUrl"), expression.Value(url))
	return r.update(ctx, todoID, createdAt, update, "update todo attachment")
}

// update runs a built update expression against the composite key
func (r *TodoRepository) update(ctx context.Context, todoID, createdAt string, update expression.UpdateBuilder, operation string) error {
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return apperrors.NewDatabaseError(operation, err)
	}

	if _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       todoKey(todoID, createdAt),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		r.logger.Error("Failed to update todo item",
			zap.Error(err),
			zap.String("todoId", todoID),
			zap.String("operation", operation),
		)
		return apperrors.NewDatabaseError(operation, err)
	}

	r.logger.Debug("Updated todo item",
		zap.String("todoId", todoID),
		zap.String("operation", operation),
	)
	return nil
}

// Delete removes the item record
func (r *TodoRepository) Delete(ctx context.Context, todoID, createdAt string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       todoKey(todoID, createdAt),
	}); err != nil {
		r.logger.Error("Failed to delete todo item",
			zap.Error(err),
			zap.String("todoId", todoID),
		)
		return apperrors.NewDatabaseError("delete todo", err)
	}

	r.logger.Info("Deleted todo item", zap.String("todoId", todoID))
	return nil
}

func todoKey(todoID, createdAt string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"todoId":    &types.AttributeValueMemberS{Value: todoID},
		"createdAt": &types.AttributeValueMemberS{Value: createdAt},
	}
}
