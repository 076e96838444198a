package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/events"
	"notes-backend/pkg/utils"
)

// SystemClock reads the wall clock at millisecond precision
type SystemClock struct{}

// Now implements ports.Clock
func (SystemClock) Now() time.Time { return utils.NowMillis() }

// eventSource is any aggregate that buffers domain events
type eventSource interface {
	GetUncommittedEvents() []events.DomainEvent
	MarkEventsAsCommitted()
}

// publishEvents sends an aggregate's pending events. Delivery is best
// effort: a failure is logged and never fails the operation that raised them.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, source eventSource) {
	pending := source.GetUncommittedEvents()
	source.MarkEventsAsCommitted()
	if publisher == nil || len(pending) == 0 {
		return
	}
	if err := publisher.PublishBatch(ctx, pending); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.Int("count", len(pending)),
			zap.String("event_type", pending[0].GetEventType()),
			zap.Error(err))
	}
}
