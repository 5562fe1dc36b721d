package di

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/infrastructure/config"
	"textgraph/infrastructure/indexer"
	"textgraph/infrastructure/persistence/blob"
	"textgraph/infrastructure/persistence/graph"
	"textgraph/interfaces/http/rest/handlers"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideGraphClient connects to the graph database
func ProvideGraphClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*graph.Client, error) {
	return graph.NewClient(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, logger)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

// ProvideBlobStore creates the base-text blob store
func ProvideBlobStore(client *s3.Client, cfg *config.Config, logger *zap.Logger) *blob.Store {
	return blob.NewStore(client, cfg.BaseTextBucket, logger)
}

// ProvideNotifier creates the background index notifier
func ProvideNotifier(cfg *config.Config, logger *zap.Logger) *indexer.Notifier {
	return indexer.NewNotifier(cfg.IndexerURL, logger)
}

// ProvideExpressionRepository creates the expression repository
func ProvideExpressionRepository(client *graph.Client, logger *zap.Logger) *graph.ExpressionRepository {
	return graph.NewExpressionRepository(client, logger)
}

// ProvideManifestationRepository creates the manifestation repository
func ProvideManifestationRepository(client *graph.Client, texts *blob.Store, logger *zap.Logger) *graph.ManifestationRepository {
	return graph.NewManifestationRepository(client, texts, logger)
}

// ProvideAnnotationRepository creates the annotation repository
func ProvideAnnotationRepository(client *graph.Client, logger *zap.Logger) *graph.AnnotationRepository {
	return graph.NewAnnotationRepository(client, logger)
}

// ProvideSegmentRepository creates the segment traversal repository
func ProvideSegmentRepository(client *graph.Client, logger *zap.Logger) *graph.SegmentRepository {
	return graph.NewSegmentRepository(client, logger)
}

// ProvideCategoryRepository creates the category repository
func ProvideCategoryRepository(client *graph.Client, logger *zap.Logger) *graph.CategoryRepository {
	return graph.NewCategoryRepository(client, logger)
}

// ProvidePersonRepository creates the person repository
func ProvidePersonRepository(client *graph.Client, logger *zap.Logger) *graph.PersonRepository {
	return graph.NewPersonRepository(client, logger)
}

// ProvideAPIKeyRepository creates the API key repository
func ProvideAPIKeyRepository(client *graph.Client, logger *zap.Logger) *graph.APIKeyRepository {
	return graph.NewAPIKeyRepository(client, logger)
}

// segmentStoreAdapter maps the handler-boundary query onto the repository's
type segmentStoreAdapter struct {
	repo *graph.SegmentRepository
}

func (a segmentStoreAdapter) Related(ctx context.Context, query handlers.RelatedSegmentQuery) ([]entities.RelatedSegment, error) {
	return a.repo.Related(ctx, graph.RelatedQuery{
		ManifestationID: query.ManifestationID,
		SegmentID:       query.SegmentID,
		Start:           query.Start,
		End:             query.End,
		HasSpan:         query.HasSpan,
		Transfer:        query.Transfer,
	})
}

// ProvideSegmentStore adapts the segment repository to the handler boundary
func ProvideSegmentStore(repo *graph.SegmentRepository) handlers.RelatedSegmentStore {
	return segmentStoreAdapter{repo: repo}
}

// ProvideExpressionHandler creates the expression handler
func ProvideExpressionHandler(expressions *graph.ExpressionRepository, logger *zap.Logger) *handlers.ExpressionHandler {
	return handlers.NewExpressionHandler(expressions, logger)
}

// ProvideEditionHandler creates the edition handler
func ProvideEditionHandler(
	editions *graph.ManifestationRepository,
	expressions *graph.ExpressionRepository,
	segments handlers.RelatedSegmentStore,
	notifier *indexer.Notifier,
	logger *zap.Logger,
) *handlers.EditionHandler {
	return handlers.NewEditionHandler(editions, expressions, segments, notifier, logger)
}

// ProvideAnnotationHandler creates the annotation handler
func ProvideAnnotationHandler(annotations *graph.AnnotationRepository, notifier *indexer.Notifier, logger *zap.Logger) *handlers.AnnotationHandler {
	return handlers.NewAnnotationHandler(annotations, notifier, logger)
}

// ProvideCategoryHandler creates the category handler
func ProvideCategoryHandler(categories *graph.CategoryRepository, logger *zap.Logger) *handlers.CategoryHandler {
	return handlers.NewCategoryHandler(categories, logger)
}

// ProvidePersonHandler creates the person handler
func ProvidePersonHandler(persons *graph.PersonRepository, logger *zap.Logger) *handlers.PersonHandler {
	return handlers.NewPersonHandler(persons, logger)
}

// ProvideAPIKeyHandler creates the API key handler
func ProvideAPIKeyHandler(keys *graph.APIKeyRepository, logger *zap.Logger) *handlers.APIKeyHandler {
	return handlers.NewAPIKeyHandler(keys, logger)
}
