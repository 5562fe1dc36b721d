//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"textgraph/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideGraphClient,
	ProvideS3Client,
	ProvideBlobStore,
	ProvideNotifier,
	ProvideExpressionRepository,
	ProvideManifestationRepository,
	ProvideAnnotationRepository,
	ProvideSegmentRepository,
	ProvideCategoryRepository,
	ProvidePersonRepository,
	ProvideAPIKeyRepository,
	ProvideSegmentStore,
	ProvideExpressionHandler,
	ProvideEditionHandler,
	ProvideAnnotationHandler,
	ProvideCategoryHandler,
	ProvidePersonHandler,
	ProvideAPIKeyHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
