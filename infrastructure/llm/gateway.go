package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "conceptcraft-backend/pkg/errors"
	"conceptcraft-backend/pkg/observability"
)

// Gateway issues one completion request to the primary provider and, on
// any failure, exactly one request to the fallback provider with the same
// prompt. When both fail it returns a GenerationUnavailable error with no
// further retries, no backoff, and no result caching. The gateway keeps
// no state between calls.
type Gateway struct {
	primary  Provider
	fallback Provider
	tracer   *observability.Tracer
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewGateway creates a gateway over a primary and a fallback provider
func NewGateway(
	primary Provider,
	fallback Provider,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
	}
}

// GenerateText implements ports.TextGateway
func (g *Gateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, primaryErr := g.callProvider(ctx, g.primary, prompt)
	if primaryErr == nil {
		return text, nil
	}

	g.logger.Warn("primary provider failed, trying fallback",
		zap.String("primary", g.primary.Name()),
		zap.String("fallback", g.fallback.Name()),
		zap.Error(primaryErr))

	text, fallbackErr := g.callProvider(ctx, g.fallback, prompt)
	if fallbackErr == nil {
		return text, nil
	}

	g.logger.Error("all providers failed",
		zap.NamedError("primaryError", primaryErr),
		zap.NamedError("fallbackError", fallbackErr))

	return "", apperrors.NewGenerationUnavailableError(fallbackErr)
}

// callProvider runs a single provider request with tracing and metrics
func (g *Gateway) callProvider(ctx context.Context, p Provider, prompt string) (string, error) {
	start := time.Now()
	var text string

	call := func(ctx context.Context) error {
		var err error
		text, err = p.Complete(ctx, prompt)
		return err
	}

	var err error
	if g.tracer != nil {
		err = g.tracer.TraceProviderCall(ctx, p.Name(), "", call)
	} else {
		err = call(ctx)
	}

	if g.metrics != nil {
		g.metrics.RecordProviderCall(ctx, p.Name(), err == nil, time.Since(start))
	}

	return text, err
}
