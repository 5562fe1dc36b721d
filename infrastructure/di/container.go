package di

import (
	"context"

	"go.uber.org/zap"

	"textgraph/infrastructure/config"
	"textgraph/infrastructure/indexer"
	"textgraph/infrastructure/persistence/graph"
	"textgraph/interfaces/http/rest"
	"textgraph/interfaces/http/rest/handlers"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	GraphClient *graph.Client
	Notifier    *indexer.Notifier
	Router      *rest.Router
}

// ProvideRouter assembles the HTTP router from the handlers
func ProvideRouter(
	cfg *config.Config,
	expressions *handlers.ExpressionHandler,
	editions *handlers.EditionHandler,
	annotations *handlers.AnnotationHandler,
	categories *handlers.CategoryHandler,
	persons *handlers.PersonHandler,
	apiKeys *handlers.APIKeyHandler,
	auth *graph.APIKeyRepository,
	client *graph.Client,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(expressions, editions, annotations, categories, persons, apiKeys, auth, client, cfg.EnableCORS, logger)
}

// Close releases held resources. The notifier drains first so in-flight
// index calls are not cut off by the driver shutdown.
func (c *Container) Close(ctx context.Context) error {
	c.Notifier.Close()
	err := c.GraphClient.Close(ctx)
	_ = c.Logger.Sync()
	return err
}
