package bus

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"
)

// LoggingMiddleware logs query execution
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next QueryHandler) QueryHandler {
		return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
			result, err := next.Handle(ctx, query)
			if err != nil {
				logFailure(logger, "Query", QueryName(query), err)
			}
			return result, err
		})
	}
}

// MetricsMiddleware records query counts and latency
func MetricsMiddleware(collector *observability.Collector) Middleware {
	return func(next QueryHandler) QueryHandler {
		return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
			start := time.Now()
			result, err := next.Handle(ctx, query)
			collector.ObserveBus("query", QueryName(query), err, time.Since(start))
			return result, err
		})
	}
}

// TracingMiddleware wraps each query in a span
func TracingMiddleware(tracer trace.Tracer) Middleware {
	return func(next QueryHandler) QueryHandler {
		return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
			return observability.TraceMessage(ctx, tracer, "query", QueryName(query), func(ctx context.Context) (interface{}, error) {
				return next.Handle(ctx, query)
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
