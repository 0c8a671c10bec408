package fx

import (
	"database/sql"

	"matchday-tracker/internal/api"
	"matchday-tracker/internal/config"
	"matchday-tracker/internal/database"
	"matchday-tracker/internal/db"
	"matchday-tracker/internal/events"
	"matchday-tracker/internal/logger"
	"matchday-tracker/internal/repository"
	"matchday-tracker/internal/server"
	"matchday-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// outbound
	fx.Provide(api.NewCatalogClient),
	events.Module,
	// svc
	fx.Provide(service.NewSnapshotLoader),
	fx.Provide(service.NewCatalogService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewMatchmakingService),
	fx.Provide(service.NewStatsService),
	// server
	fx.Provide(server.NewTrackerServer),
)
