//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"notes-backend/application/services"
	"notes-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideMetrics,
	ProvideTracerProvider,
	ProvideTracer,
	ProvideStorage,
	ProvideNoteRepository,
	ProvideCategoryRepository,
	ProvideEventPublisher,
	ProvideClock,
	services.NewNoteService,
	services.NewStatsService,
	services.NewCategoryService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideJWTValidator,
	ProvideErrorHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
