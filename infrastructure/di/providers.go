package di

import (
	"context"
	"fmt"

	"todoshare-backend/application/ports"
	"todoshare-backend/application/services"
	"todoshare-backend/infrastructure/config"
	"todoshare-backend/infrastructure/persistence/dynamodb"
	s3store "todoshare-backend/infrastructure/storage/s3"
	"todoshare-backend/interfaces/http/rest"
	"todoshare-backend/pkg/auth"
	"todoshare-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration. When tracing is enabled
// every AWS SDK call is captured as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTodoRepository creates the item store
func ProvideTodoRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TodoRepository {
	return dynamodb.NewTodoRepository(client, cfg.TodosTable, logger)
}

// ProvideUserDirectoryRepository creates the per-user directory
func ProvideUserDirectoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserDirectoryRepository {
	return dynamodb.NewUserDirectoryRepository(client, cfg.UsersTable, logger)
}

// ProvideUserRegistryRepository creates the global user registry
func ProvideUserRegistryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRegistryRepository {
	return dynamodb.NewUserRegistryRepository(client, cfg.UsersListTable, logger)
}

// ProvideAttachmentStore creates the S3-backed attachment store
func ProvideAttachmentStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.AttachmentStore {
	return s3store.NewAttachmentStore(client, cfg.AttachmentsBucket, cfg.SignedURLExpiration, logger)
}

// ProvideItemLocker creates the per-item lock manager, or nil when
// locking is disabled
func ProvideItemLocker(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ItemLocker {
	if !cfg.EnableItemLocking {
		return nil
	}
	return dynamodb.NewItemLockManager(client, cfg.LocksTable, logger)
}

// ProvideMetrics creates metrics instance, or nil when metrics are
// disabled (a nil *Metrics drops every datum)
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("TodoShare/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTodoService creates the ownership coordinator
func ProvideTodoService(
	todos ports.TodoRepository,
	directory ports.UserDirectoryRepository,
	registry ports.UserRegistryRepository,
	attachments ports.AttachmentStore,
	locker ports.ItemLocker,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.TodoService {
	return services.NewTodoService(todos, directory, registry, attachments, locker, metrics, logger)
}

// ProvideJWTValidator creates the JWT validator, or nil when no secret
// is configured (requests must then arrive pre-authorized)
func ProvideJWTValidator(cfg *config.Config, logger *zap.Logger) *auth.JWTValidator {
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, only pre-authorized requests will be accepted")
		return nil
	}

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	})
	if err != nil {
		logger.Error("Failed to create JWT validator", zap.Error(err))
		return nil
	}
	return validator
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	service *services.TodoService,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(service, validator, cfg, logger)
}
