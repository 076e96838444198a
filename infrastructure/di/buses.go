package di

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"notes-backend/application/commands"
	"notes-backend/application/commands/bus"
	"notes-backend/application/queries"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/application/services"
	"notes-backend/domain/core/entities"
	"notes-backend/pkg/observability"
)

// commandHandler adapts a typed handler function to bus.CommandHandler
func commandHandler[C bus.Command](fn func(context.Context, C) (interface{}, error)) bus.CommandHandler {
	return bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
		typed, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("invalid command type %T", cmd)
		}
		return fn(ctx, typed)
	})
}

// queryHandler adapts a typed handler function to querybus.QueryHandler
func queryHandler[Q querybus.Query](fn func(context.Context, Q) (interface{}, error)) querybus.QueryHandler {
	return querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		typed, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("invalid query type %T", query)
		}
		return fn(ctx, typed)
	})
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	notes *services.NoteService,
	categories *services.CategoryService,
	metrics *observability.Collector,
	tracer trace.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.TracingMiddleware(tracer),
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)

	handlers := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateNoteCommand{}, commandHandler(func(ctx context.Context, c commands.CreateNoteCommand) (interface{}, error) {
			note, err := notes.CreateNote(ctx, c.UserID, c.Draft())
			if err != nil {
				return nil, err
			}
			metrics.NotesCreated.Inc()
			return note, nil
		})},
		{commands.UpdateNoteCommand{}, commandHandler(func(ctx context.Context, c commands.UpdateNoteCommand) (interface{}, error) {
			return notes.UpdateNote(ctx, c.UserID, c.NoteID, c.Patch())
		})},
		{commands.DeleteNoteCommand{}, commandHandler(func(ctx context.Context, c commands.DeleteNoteCommand) (interface{}, error) {
			if err := notes.DeleteNote(ctx, c.UserID, c.NoteID); err != nil {
				return nil, err
			}
			metrics.NotesDeleted.Inc()
			return nil, nil
		})},
		{commands.ToggleFavoriteCommand{}, commandHandler(func(ctx context.Context, c commands.ToggleFavoriteCommand) (interface{}, error) {
			return notes.ToggleFavorite(ctx, c.UserID, c.NoteID)
		})},
		{commands.ToggleArchiveCommand{}, commandHandler(func(ctx context.Context, c commands.ToggleArchiveCommand) (interface{}, error) {
			return notes.ToggleArchive(ctx, c.UserID, c.NoteID)
		})},
		{commands.CreateCategoryCommand{}, commandHandler(func(ctx context.Context, c commands.CreateCategoryCommand) (interface{}, error) {
			return categories.CreateCategory(ctx, c.UserID, c.Name, c.Color, c.Icon)
		})},
		{commands.UpdateCategoryCommand{}, commandHandler(func(ctx context.Context, c commands.UpdateCategoryCommand) (interface{}, error) {
			return categories.UpdateCategory(ctx, c.UserID, c.CategoryID, entities.CategoryPatch{
				Name:  c.Name,
				Color: c.Color,
				Icon:  c.Icon,
			})
		})},
		{commands.DeleteCategoryCommand{}, commandHandler(func(ctx context.Context, c commands.DeleteCategoryCommand) (interface{}, error) {
			return nil, categories.DeleteCategory(ctx, c.UserID, c.CategoryID)
		})},
	}

	for _, h := range handlers {
		if err := commandBus.Register(h.cmd, h.handler); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	notes *services.NoteService,
	stats *services.StatsService,
	categories *services.CategoryService,
	metrics *observability.Collector,
	tracer trace.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.TracingMiddleware(tracer),
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
	)

	handlers := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.ListNotesQuery{}, queryHandler(func(ctx context.Context, q queries.ListNotesQuery) (interface{}, error) {
			return notes.ListNotes(ctx, q.UserID, q.Filter)
		})},
		{queries.GetNoteQuery{}, queryHandler(func(ctx context.Context, q queries.GetNoteQuery) (interface{}, error) {
			return notes.GetNote(ctx, q.UserID, q.NoteID)
		})},
		{queries.GetStatsQuery{}, queryHandler(func(ctx context.Context, q queries.GetStatsQuery) (interface{}, error) {
			return stats.GetStats(ctx, q.UserID)
		})},
		{queries.ListCategoriesQuery{}, queryHandler(func(ctx context.Context, q queries.ListCategoriesQuery) (interface{}, error) {
			return categories.ListCategories(ctx, q.UserID)
		})},
	}

	for _, h := range handlers {
		if err := queryBus.Register(h.query, h.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}
