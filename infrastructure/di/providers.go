package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"notes-backend/application/commands/bus"
	"notes-backend/application/ports"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/application/services"
	"notes-backend/infrastructure/config"
	"notes-backend/infrastructure/messaging/eventbridge"
	"notes-backend/infrastructure/messaging/logpublisher"
	"notes-backend/infrastructure/persistence/resilience"
	"notes-backend/interfaces/http/rest"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"
)

// developmentSecret signs tokens when no JWT_SECRET is configured outside
// production.
const developmentSecret = "development-secret-change-in-production"

// ProvideLogLevel parses the configured level into an adjustable level
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, func(), error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	logger = logger.With(zap.String("environment", cfg.Environment))
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("notes")
}

// ProvideTracerProvider initializes tracing; disabled tracing yields a no-op tracer
func ProvideTracerProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*observability.TracerProvider, func(), error) {
	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.EnableTracing,
		ServiceName: "notes-backend",
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// ProvideTracer exposes the service tracer
func ProvideTracer(tp *observability.TracerProvider) trace.Tracer {
	return tp.Tracer()
}

// ProvideAWSConfig loads the default AWS configuration for the configured region
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
}

// ProvideNoteRepository returns the selected note store, behind a circuit
// breaker when enabled.
func ProvideNoteRepository(storage *Storage, cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) ports.NoteRepository {
	if !cfg.BreakerEnabled {
		return storage.Notes
	}
	breaker := resilience.NewBreaker(resilience.DefaultBreakerConfig("notes-store"), metrics, logger)
	return resilience.NewNoteRepository(storage.Notes, breaker)
}

// ProvideCategoryRepository returns the selected category store, behind a
// circuit breaker when enabled.
func ProvideCategoryRepository(storage *Storage, cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) ports.CategoryRepository {
	if !cfg.BreakerEnabled {
		return storage.Categories
	}
	breaker := resilience.NewBreaker(resilience.DefaultBreakerConfig("categories-store"), metrics, logger)
	return resilience.NewCategoryRepository(storage.Categories, breaker)
}

// ProvideEventPublisher publishes to EventBridge when events are enabled and
// to the log otherwise.
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.EventPublisher, error) {
	if !cfg.EnableEvents {
		return logpublisher.New(logger), nil
	}
	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return eventbridge.NewPublisher(awseventbridge.NewFromConfig(awsCfg), cfg.EventBusName, logger), nil
}

// ProvideClock returns the wall clock truncated to storage precision
func ProvideClock() ports.Clock {
	return services.SystemClock{}
}

// ProvideJWTValidator creates the token validator used by the auth middleware
func ProvideJWTValidator(cfg *config.Config, logger *zap.Logger) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("JWT_SECRET not set, using development secret")
		secret = developmentSecret
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		Expiry:    cfg.JWTExpiry,
	})
}

// ProvideErrorHandler creates the HTTP error renderer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideRouter builds the HTTP handler
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator *auth.JWTValidator,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Collector,
	storage *Storage,
	logger *zap.Logger,
) http.Handler {
	deps := rest.Dependencies{
		CommandBus:  commandBus,
		QueryBus:    queryBus,
		Validator:   validator,
		Errors:      errorHandler,
		Ready:       storage.Ping,
		EnableCORS:  cfg.EnableCORS,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	}
	if cfg.EnableMetrics {
		deps.Metrics = metrics
	}
	return rest.NewRouter(deps).Setup()
}
