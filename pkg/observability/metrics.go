package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes operational metrics to CloudWatch. Publishing is
// best-effort: failures are logged and never surfaced to callers. With no
// CloudWatch client configured (local development) all calls are no-ops.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a new metrics publisher
func NewMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// IncrementCounter records a count metric with optional dimensions
func (m *Metrics) IncrementCounter(ctx context.Context, name string, dimensions map[string]string) {
	m.putMetric(ctx, name, 1, cwtypes.StandardUnitCount, dimensions)
}

// RecordDuration records a latency metric in milliseconds
func (m *Metrics) RecordDuration(ctx context.Context, name string, d time.Duration, dimensions map[string]string) {
	m.putMetric(ctx, name, float64(d.Milliseconds()), cwtypes.StandardUnitMilliseconds, dimensions)
}

// RecordProviderCall records the outcome of a model-provider request as a
// count metric dimensioned by provider and outcome.
func (m *Metrics) RecordProviderCall(ctx context.Context, provider string, success bool, d time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	dims := map[string]string{
		"Provider": provider,
		"Outcome":  outcome,
	}
	m.putMetric(ctx, "ProviderCalls", 1, cwtypes.StandardUnitCount, dims)
	m.putMetric(ctx, "ProviderLatency", float64(d.Milliseconds()), cwtypes.StandardUnitMilliseconds, map[string]string{"Provider": provider})
}

func (m *Metrics) putMetric(ctx context.Context, name string, value float64, unit cwtypes.StandardUnit, dimensions map[string]string) {
	if m.client == nil {
		return
	}

	var dims []cwtypes.Dimension
	for k, v := range dimensions {
		dims = append(dims, cwtypes.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dims,
			},
		},
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("failed to publish metric",
			zap.String("metric", name),
			zap.Error(err))
	}
}
