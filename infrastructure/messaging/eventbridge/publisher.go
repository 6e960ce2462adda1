package eventbridge

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/domain/events"
	apperrors "conceptcraft-backend/pkg/errors"
)

const eventSource = "conceptcraft.content"

// Publisher sends domain events to an EventBridge bus for audit trails
// and downstream consumers. Services treat publishing as best-effort; a
// failed publish never fails the originating operation.
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates an EventBridge publisher
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish implements ports.EventPublisher
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch implements ports.EventPublisher. EventBridge accepts at
// most 10 entries per PutEvents call.
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if p.client == nil || len(batch) == 0 {
		return nil
	}

	for start := 0; start < len(batch); start += 10 {
		end := start + 10
		if end > len(batch) {
			end = len(batch)
		}

		entries := make([]types.PutEventsRequestEntry, 0, end-start)
		for _, event := range batch[start:end] {
			detail, err := json.Marshal(event)
			if err != nil {
				return apperrors.Wrap(err, "failed to marshal event detail")
			}
			entries = append(entries, types.PutEventsRequestEntry{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.GetEventType()),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(event.GetTimestamp()),
			})
		}

		result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
			Entries: entries,
		})
		if err != nil {
			return apperrors.NewExternalError("eventbridge", err)
		}

		if result.FailedEntryCount > 0 {
			for _, entry := range result.Entries {
				if entry.ErrorCode != nil {
					p.logger.Warn("event entry rejected",
						zap.String("errorCode", aws.ToString(entry.ErrorCode)),
						zap.String("errorMessage", aws.ToString(entry.ErrorMessage)))
				}
			}
		}
	}

	return nil
}
