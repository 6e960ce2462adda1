package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/application/services"
	"conceptcraft-backend/infrastructure/config"
	"conceptcraft-backend/infrastructure/llm"
	"conceptcraft-backend/infrastructure/messaging/eventbridge"
	"conceptcraft-backend/infrastructure/persistence/dynamodb"
	"conceptcraft-backend/pkg/auth"
	"conceptcraft-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideFrameworkRepository creates a framework repository
func ProvideFrameworkRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.FrameworkRepository {
	return dynamodb.NewFrameworkRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideConceptRepository creates a concept repository
func ProvideConceptRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ConceptRepository {
	return dynamodb.NewConceptRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the EventBridge-backed event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics publisher. Metrics are
// disabled outside production unless explicitly enabled.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(nil, "ConceptCraft", logger)
	}
	return observability.NewMetrics(client, "ConceptCraft", logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("conceptcraft-backend")
}

// ProvideTextGateway builds the two model providers from explicit
// configuration and wraps them in the failover gateway. Missing API keys
// are passed through: that provider then fails immediately and the
// gateway moves on.
func ProvideTextGateway(cfg *config.Config, tracer *observability.Tracer, metrics *observability.Metrics, logger *zap.Logger) ports.TextGateway {
	primary := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: cfg.OpenAITemperature,
		Timeout:     cfg.OpenAITimeout,
	})
	fallback := llm.NewGeminiProvider(llm.GeminiConfig{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})

	var t *observability.Tracer
	if cfg.EnableTracing {
		t = tracer
	}

	return llm.NewGateway(primary, fallback, t, metrics, logger)
}

// ProvideGenerationService creates the concept generation service
func ProvideGenerationService(gateway ports.TextGateway, publisher ports.EventPublisher, logger *zap.Logger) *services.ConceptGenerationService {
	return services.NewConceptGenerationService(gateway, publisher, logger)
}

// ProvidePopularService creates the popular-concepts service
func ProvidePopularService(gateway ports.TextGateway, logger *zap.Logger) *services.PopularConceptsService {
	return services.NewPopularConceptsService(gateway, logger)
}

// ProvideRelationshipService creates the relationship service
func ProvideRelationshipService(
	frameworkRepo ports.FrameworkRepository,
	conceptRepo ports.ConceptRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.RelationshipService {
	return services.NewRelationshipService(frameworkRepo, conceptRepo, publisher, logger)
}

// ProvideContentService creates the content curation service
func ProvideContentService(
	frameworkRepo ports.FrameworkRepository,
	conceptRepo ports.ConceptRepository,
	generator *services.ConceptGenerationService,
	relationships *services.RelationshipService,
	publisher ports.EventPublisher,
	cache ports.Cache,
	logger *zap.Logger,
) *services.ContentService {
	return services.NewContentService(frameworkRepo, conceptRepo, generator, relationships, publisher, cache, logger)
}

// ProvideJWTValidator creates the bearer-token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{cfg.JWTAudience},
	})
}

// ProvideRateLimiter creates the rate limiter for admin endpoints. On
// Lambda the limiter state lives in DynamoDB so concurrent invocations
// share counters; the long-running server keeps counters in process.
func ProvideRateLimiter(client *awsdynamodb.Client, cfg *config.Config) auth.RateLimiter {
	if cfg.IsLambda {
		return auth.NewDistributedRateLimiter(client, cfg.DynamoDBTable, cfg.AdminRateLimit, cfg.RateLimitWindow, "admin")
	}
	return auth.NewSlidingWindowLimiter(cfg.AdminRateLimit, cfg.RateLimitWindow)
}

// ProvideInMemoryCache creates the catalog cache
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}
