package di

import (
	"net/http"

	"go.uber.org/zap"

	"notes-backend/application/commands/bus"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/infrastructure/config"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	LogLevel     zap.AtomicLevel
	Metrics      *observability.Collector
	Tracing      *observability.TracerProvider
	Storage      *Storage
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	JWTValidator *auth.JWTValidator
	Router       http.Handler
}

// ApplyConfig applies the runtime-adjustable settings of a reloaded config
func (c *Container) ApplyConfig(next *config.Config) {
	level, err := zap.ParseAtomicLevel(next.LogLevel)
	if err != nil {
		c.Logger.Warn("Ignoring invalid log level", zap.String("level", next.LogLevel))
		return
	}
	c.LogLevel.SetLevel(level.Level())
}
