package dynamodb

import (
	"context"

	"todoshare-backend/application/ports"
	"todoshare-backend/domain/todo"
	apperrors "todoshare-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// registryKey is the partition key of the single row holding every known
// user id. The registry table only ever contains this one item.
const registryKey = "USERKEY"

// UserDirectoryRepository implements the per-user directory on DynamoDB
type UserDirectoryRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserDirectoryRepository creates a new UserDirectoryRepository
func NewUserDirectoryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserDirectoryRepository {
	return &UserDirectoryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// directoryItem represents the DynamoDB item structure for a directory entry
type directoryItem struct {
	UserID  string   `dynamodbav:"userId"`
	TodoIDs []string `dynamodbav:"todoIds"`
}

// Get returns a user's directory entry; a missing entry is a NotFound error
func (r *UserDirectoryRepository) Get(ctx context.Context, userID string) (*todo.DirectoryEntry, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		r.logger.Error("Failed to get directory entry",
			zap.Error(err),
			zap.String("userId", userID),
		)
		return nil, apperrors.NewDatabaseError("get directory entry", err)
	}

	if len(result.Item) == 0 {
		return nil, apperrors.NewNotFoundError("directory entry")
	}

	var item directoryItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal directory entry", err)
	}

	return &todo.DirectoryEntry{
		UserID:  item.UserID,
		TodoIDs: item.TodoIDs,
	}, nil
}

// Put writes the whole entry back
func (r *UserDirectoryRepository) Put(ctx context.Context, entry *todo.DirectoryEntry) error {
	av, err := attributevalue.MarshalMap(directoryItem{
		UserID:  entry.UserID,
		TodoIDs: entry.TodoIDs,
	})
	if err != nil {
		return apperrors.NewDatabaseError("marshal directory entry", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to put directory entry",
			zap.Error(err),
			zap.String("userId", entry.UserID),
		)
		return apperrors.NewDatabaseError("put directory entry", err)
	}

	r.logger.Debug("Saved directory entry",
		zap.String("userId", entry.UserID),
		zap.Int("todoCount", len(entry.TodoIDs)),
	)
	return nil
}

// UserRegistryRepository implements the global user registry on DynamoDB.
// All user ids live in one singleton item so membership listing is a
// single read.
type UserRegistryRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRegistryRepository creates a new UserRegistryRepository
func NewUserRegistryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRegistryRepository {
	return &UserRegistryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// registryItem represents the singleton DynamoDB item holding all user ids
type registryItem struct {
	Key   string   `dynamodbav:"key"`
	Users []string `dynamodbav:"users"`
}

// List returns all known user ids; an uninitialized registry is empty
func (r *UserRegistryRepository) List(ctx context.Context) ([]string, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: registryKey},
		},
	})
	if err != nil {
		r.logger.Error("Failed to get user registry", zap.Error(err))
		return nil, apperrors.NewDatabaseError("get user registry", err)
	}

	if len(result.Item) == 0 {
		return []string{}, nil
	}

	var item registryItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal user registry", err)
	}

	if item.Users == nil {
		return []string{}, nil
	}
	return item.Users, nil
}

// Add records a user id; adding a known user is a no-op. Read-modify-write
// without a condition, matching the relaxed consistency of the rest of the
// store.
func (r *UserRegistryRepository) Add(ctx context.Context, userID string) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, id := range users {
		if id == userID {
			return nil
		}
	}

	av, err := attributevalue.MarshalMap(registryItem{
		Key:   registryKey,
		Users: append(users, userID),
	})
	if err != nil {
		return apperrors.NewDatabaseError("marshal user registry", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to put user registry",
			zap.Error(err),
			zap.String("userId", userID),
		)
		return apperrors.NewDatabaseError("put user registry", err)
	}

	r.logger.Info("Registered user", zap.String("userId", userID))
	return nil
}
