package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"matchday-tracker/internal/db"
	"matchday-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(rows))
	for i, p := range rows {
		result[i] = domain.Player{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
	}
	return result, nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	p, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Player{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}, nil
}

func (r *PlayerRepository) Create(ctx context.Context, name string) (*domain.Player, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	player := &domain.Player{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	err = r.queries.InsertPlayer(ctx, db.InsertPlayerParams{
		ID:        player.ID,
		Name:      player.Name,
		CreatedAt: player.CreatedAt,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to insert player")
		return nil, fmt.Errorf("failed to insert player %q: %w", name, err)
	}

	r.logger.Debug().Str("player_id", id).Str("name", name).Msg("player created")
	return player, nil
}
