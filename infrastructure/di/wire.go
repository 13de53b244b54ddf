//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"todoshare-backend/application/ports"
	"todoshare-backend/application/services"
	"todoshare-backend/infrastructure/config"
	"todoshare-backend/interfaces/http/rest"
	"todoshare-backend/pkg/auth"
	"todoshare-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	TodoRepo      ports.TodoRepository
	DirectoryRepo ports.UserDirectoryRepository
	RegistryRepo  ports.UserRegistryRepository
	Attachments   ports.AttachmentStore
	ItemLocker    ports.ItemLocker
	Metrics       *observability.Metrics
	JWTValidator  *auth.JWTValidator
	TodoService   *services.TodoService
	Router        *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideS3Client,
	ProvideCloudWatchClient,
	ProvideTodoRepository,
	ProvideUserDirectoryRepository,
	ProvideUserRegistryRepository,
	ProvideAttachmentStore,
	ProvideItemLocker,
	ProvideMetrics,
	ProvideTodoService,
	ProvideJWTValidator,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
