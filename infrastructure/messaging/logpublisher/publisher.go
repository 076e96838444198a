// Package logpublisher provides an EventPublisher that writes events to the
// structured log instead of a broker; used when no event bus is configured.
package logpublisher

import (
	"context"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/events"
)

type Publisher struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

var _ ports.EventPublisher = (*Publisher)(nil)

func (p *Publisher) Publish(_ context.Context, event events.DomainEvent) error {
	p.logger.Debug("Domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.String("userID", event.GetUserID()),
		zap.Time("timestamp", event.GetTimestamp()),
	)
	return nil
}

func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		_ = p.Publish(ctx, event)
	}
	return nil
}
