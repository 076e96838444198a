package bus

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"
)

// LoggingMiddleware logs command execution
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			cmdType := CommandName(cmd)
			logger.Debug("Executing command", zap.String("type", cmdType))

			result, err := next.Handle(ctx, cmd)
			if err != nil {
				logFailure(logger, "Command", cmdType, err)
			} else {
				logger.Debug("Command succeeded", zap.String("type", cmdType))
			}
			return result, err
		})
	}
}

// MetricsMiddleware records command counts and latency
func MetricsMiddleware(collector *observability.Collector) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			start := time.Now()
			result, err := next.Handle(ctx, cmd)
			collector.ObserveBus("command", CommandName(cmd), err, time.Since(start))
			return result, err
		})
	}
}

// TracingMiddleware wraps each command in a span
func TracingMiddleware(tracer trace.Tracer) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			return observability.TraceMessage(ctx, tracer, "command", CommandName(cmd), func(ctx context.Context) (interface{}, error) {
				return next.Handle(ctx, cmd)
			})
		})
	}
}

// logFailure keeps expected rejections (bad input, missing or foreign
// resources, duplicates) at debug; the HTTP layer already reports them.
func logFailure(logger *zap.Logger, kind, msgType string, err error) {
	switch {
	case pkgerrors.IsValidation(err), pkgerrors.IsNotFound(err),
		pkgerrors.IsForbidden(err), pkgerrors.IsConflict(err):
		logger.Debug(kind+" rejected", zap.String("type", msgType), zap.Error(err))
	default:
		logger.Warn(kind+" failed", zap.String("type", msgType), zap.Error(err))
	}
}
