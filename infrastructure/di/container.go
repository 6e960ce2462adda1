package di

import (
	"context"

	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/application/services"
	"conceptcraft-backend/infrastructure/config"
	"conceptcraft-backend/pkg/auth"
	"conceptcraft-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	FrameworkRepo ports.FrameworkRepository
	ConceptRepo   ports.ConceptRepository
	Publisher     ports.EventPublisher
	Gateway       ports.TextGateway
	Generator     *services.ConceptGenerationService
	Popular       *services.PopularConceptsService
	Relationships *services.RelationshipService
	Content       *services.ContentService
	Cache         ports.Cache
	Metrics       *observability.Metrics
	Tracer        *observability.Tracer
	JWTValidator  *auth.JWTValidator
	RateLimiter   auth.RateLimiter
}

// NewContainer wires the full dependency graph by hand. It mirrors the
// wire provider set; keep the two in sync when adding providers.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := ProvideDynamoDBClient(awsCfg)
	eventBridgeClient := ProvideEventBridgeClient(awsCfg)
	cloudWatchClient := ProvideCloudWatchClient(awsCfg)

	frameworkRepo := ProvideFrameworkRepository(dynamoClient, cfg, logger)
	conceptRepo := ProvideConceptRepository(dynamoClient, cfg, logger)
	publisher := ProvideEventPublisher(eventBridgeClient, cfg, logger)

	metrics := ProvideMetrics(cloudWatchClient, cfg, logger)
	tracer := ProvideTracer(cfg)
	cache := ProvideInMemoryCache()

	gateway := ProvideTextGateway(cfg, tracer, metrics, logger)
	generator := ProvideGenerationService(gateway, publisher, logger)
	popular := ProvidePopularService(gateway, logger)
	relationships := ProvideRelationshipService(frameworkRepo, conceptRepo, publisher, logger)
	contentService := ProvideContentService(frameworkRepo, conceptRepo, generator, relationships, publisher, cache, logger)

	jwtValidator, err := ProvideJWTValidator(cfg)
	if err != nil {
		return nil, err
	}

	rateLimiter := ProvideRateLimiter(dynamoClient, cfg)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		FrameworkRepo: frameworkRepo,
		ConceptRepo:   conceptRepo,
		Publisher:     publisher,
		Gateway:       gateway,
		Generator:     generator,
		Popular:       popular,
		Relationships: relationships,
		Content:       contentService,
		Cache:         cache,
		Metrics:       metrics,
		Tracer:        tracer,
		JWTValidator:  jwtValidator,
		RateLimiter:   rateLimiter,
	}, nil
}
