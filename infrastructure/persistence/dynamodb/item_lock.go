package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoshare-backend/application/ports"
	apperrors "todoshare-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// errLockHeld signals contention, as opposed to a store failure
var errLockHeld = errors.New("lock already held")

// ItemLockManager provides per-item mutual exclusion using DynamoDB
// conditional writes. Locks expire on their own via the table's TTL
// attribute, so a crashed holder cannot wedge an item forever.
type ItemLockManager struct {
	client         *dynamodb.Client
	tableName      string
	lockDuration   time.Duration
	acquireTimeout time.Duration
	logger         *zap.Logger
}

// NewItemLockManager creates a new ItemLockManager
func NewItemLockManager(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ItemLocker {
	return &ItemLockManager{
		client:         client,
		tableName:      tableName,
		lockDuration:   30 * time.Second,
		acquireTimeout: 5 * time.Second,
		logger:         logger,
	}
}

// AcquireItemLock acquires the lock for a to-do item, retrying with
// backoff until the acquire timeout elapses. Contention and store
// failures both surface as Unavailable so callers retry the whole
// operation.
func (m *ItemLockManager) AcquireItemLock(ctx context.Context, todoID, ownerID string) (ports.ItemLock, error) {
	deadline := time.Now().Add(m.acquireTimeout)
	retryInterval := 100 * time.Millisecond

	for {
		lock, err := m.tryAcquire(ctx, todoID, ownerID)
		if err == nil {
			return lock, nil
		}
		if !errors.Is(err, errLockHeld) {
			return nil, apperrors.NewDatabaseError("acquire item lock", err)
		}
		if time.Now().After(deadline) {
			m.logger.Warn("Timed out acquiring item lock",
				zap.String("todoId", todoID),
				zap.String("owner", ownerID),
			)
			return nil, apperrors.NewUnavailableError("item lock")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
			if retryInterval < time.Second {
				retryInterval = time.Duration(float64(retryInterval) * 1.5)
			}
		}
	}
}

func (m *ItemLockManager) tryAcquire(ctx context.Context, todoID, ownerID string) (*itemLock, error) {
	lockID := fmt.Sprintf("%s_%d", ownerID, time.Now().UnixNano())
	now := time.Now()
	expiresAt := now.Add(m.lockDuration)

	item := map[string]types.AttributeValue{
		"PK":         &types.AttributeValueMemberS{Value: lockKey(todoID)},
		"SK":         &types.AttributeValueMemberS{Value: "LOCK"},
		"LockID":     &types.AttributeValueMemberS{Value: lockID},
		"Owner":      &types.AttributeValueMemberS{Value: ownerID},
		"AcquiredAt": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		"ExpiresAt":  &types.AttributeValueMemberS{Value: expiresAt.Format(time.RFC3339)},
		"TTL":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt.Unix())},
	}

	_, err := m.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(m.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR ExpiresAt < :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionalCheckFailed) {
			m.logger.Debug("Item lock already held",
				zap.String("todoId", todoID),
				zap.String("owner", ownerID),
			)
			return nil, errLockHeld
		}
		return nil, err
	}

	m.logger.Debug("Item lock acquired",
		zap.String("todoId", todoID),
		zap.String("lockId", lockID),
		zap.String("owner", ownerID),
	)

	return &itemLock{
		manager: m,
		todoID:  todoID,
		lockID:  lockID,
		ownerID: ownerID,
	}, nil
}

// itemLock is a held per-item lock
type itemLock struct {
	manager *ItemLockManager
	todoID  string
	lockID  string
	ownerID string
}

// Release deletes the lock record. A lock that has already expired and
// been taken over is left alone.
func (l *itemLock) Release(ctx context.Context) error {
	_, err := l.manager.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(l.manager.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: lockKey(l.todoID)},
			"SK": &types.AttributeValueMemberS{Value: "LOCK"},
		},
		ConditionExpression: aws.String("LockID = :lockId AND #owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#owner": "Owner",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":lockId": &types.AttributeValueMemberS{Value: l.lockID},
			":owner":  &types.AttributeValueMemberS{Value: l.ownerID},
		},
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionalCheckFailed) {
			l.manager.logger.Warn("Item lock already released or taken over",
				zap.String("todoId", l.todoID),
				zap.String("lockId", l.lockID),
			)
			return nil
		}
		return apperrors.NewDatabaseError("release item lock", err)
	}

	l.manager.logger.Debug("Item lock released",
		zap.String("todoId", l.todoID),
		zap.String("lockId", l.lockID),
	)
	return nil
}

func lockKey(todoID string) string {
	return fmt.Sprintf("LOCK#TODO#%s", todoID)
}
