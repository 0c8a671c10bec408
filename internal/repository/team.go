package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"matchday-tracker/internal/constants"
	"matchday-tracker/internal/db"
	"matchday-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainTeam(t db.Team) domain.Team {
	return domain.Team{
		ID:       t.ID,
		Name:     t.Name,
		League:   t.League,
		Stars:    t.Stars,
		Overall:  int(t.Overall),
		Attack:   int(t.Attack),
		Midfield: int(t.Midfield),
		Defend:   int(t.Defend),
	}
}

func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Team, len(rows))
	for i, row := range rows {
		result[i] = toDomainTeam(row)
	}
	return result, nil
}

func (r *TeamRepository) Get(ctx context.Context, id string) (*domain.Team, error) {
	row, err := r.queries.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	team := toDomainTeam(row)
	return &team, nil
}

func (r *TeamRepository) UpsertBatch(ctx context.Context, teams []domain.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	for i := 0; i < len(teams); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(teams))

		for _, team := range teams[i:end] {
			err := qtx.UpsertTeam(ctx, db.UpsertTeamParams{
				ID:        team.ID,
				Name:      team.Name,
				League:    team.League,
				Stars:     team.Stars,
				Overall:   int64(team.Overall),
				Attack:    int64(team.Attack),
				Midfield:  int64(team.Midfield),
				Defend:    int64(team.Defend),
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
			}
		}
	}

	r.logger.Debug().Int("count", len(teams)).Msg("teams upserted")
	return tx.Commit()
}
