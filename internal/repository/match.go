package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"matchday-tracker/internal/db"
	"matchday-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrMatchNotFound = errors.New("match not found")

var playedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ParsePlayedAt accepts the layouts rows were written with over time. An
// unparseable value yields the zero time.
func ParsePlayedAt(raw string) (time.Time, bool) {
	for _, layout := range playedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullSide(s domain.Side) sql.NullInt64 {
	if !s.Valid() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(s), Valid: true}
}

func (r *MatchRepository) toDomain(row db.Match) domain.Match {
	playedAt, ok := ParsePlayedAt(row.PlayedAt)
	if !ok {
		r.logger.Warn().
			Str("match_id", row.ID).
			Str("played_at", row.PlayedAt).
			Msg("unparseable played_at, treating as unknown")
	}

	m := domain.Match{
		ID:       row.ID,
		TeamAID:  row.TeamAID,
		TeamBID:  row.TeamBID,
		ScoreA:   intPtr(row.ScoreA),
		ScoreB:   intPtr(row.ScoreB),
		PlayedAt: playedAt,
		Version:  row.Version,
	}
	if row.PenaltiesWinner.Valid {
		m.PenaltiesWinner = domain.Side(row.PenaltiesWinner.Int64)
	}
	return m
}

func attachRoster(m *domain.Match, mp db.MatchPlayer) {
	switch domain.Side(mp.Side) {
	case domain.SideA:
		m.PlayersA = append(m.PlayersA, mp.PlayerID)
	case domain.SideB:
		m.PlayersB = append(m.PlayersB, mp.PlayerID)
	}
}

// List returns every match with its rosters, oldest first.
func (r *MatchRepository) List(ctx context.Context) ([]domain.Match, error) {
	rows, err := r.queries.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	rosters, err := r.queries.ListMatchPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list match players: %w", err)
	}

	result := make([]domain.Match, len(rows))
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		result[i] = r.toDomain(row)
		index[row.ID] = i
	}
	for _, mp := range rosters {
		if i, ok := index[mp.MatchID]; ok {
			attachRoster(&result[i], mp)
		}
	}

	// played_at text mixes layouts and fraction widths, so order on the parsed time.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PlayedAt.Before(result[j].PlayedAt)
	})
	return result, nil
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}

	roster, err := r.queries.GetMatchPlayersByMatchID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match players %s: %w", id, err)
	}

	m := r.toDomain(row)
	for _, mp := range roster {
		attachRoster(&m, mp)
	}
	return &m, nil
}

// Create stores the match and both rosters in one transaction. An empty ID
// is replaced with a fresh nanoid; the stored match is returned.
func (r *MatchRepository) Create(ctx context.Context, match domain.Match) (*domain.Match, error) {
	if match.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		match.ID = id
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	err = qtx.InsertMatch(ctx, db.InsertMatchParams{
		ID:              match.ID,
		TeamAID:         match.TeamAID,
		TeamBID:         match.TeamBID,
		ScoreA:          nullInt(match.ScoreA),
		ScoreB:          nullInt(match.ScoreB),
		PenaltiesWinner: nullSide(match.PenaltiesWinner),
		PlayedAt:        match.PlayedAt.UTC().Format(time.RFC3339Nano),
		Version:         match.Version,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}

	for _, p := range match.Participations() {
		for _, playerID := range p.PlayerIDs {
			err := qtx.InsertMatchPlayer(ctx, db.InsertMatchPlayerParams{
				MatchID:  match.ID,
				Side:     int64(p.Side),
				PlayerID: playerID,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to insert match player %s/%s: %w", match.ID, playerID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match %s: %w", match.ID, err)
	}

	r.logger.Debug().Str("match_id", match.ID).Msg("match stored")
	return &match, nil
}

func (r *MatchRepository) UpdateScore(ctx context.Context, id string, scoreA, scoreB *int, penaltiesWinner domain.Side) error {
	affected, err := r.queries.UpdateMatchScore(ctx, db.UpdateMatchScoreParams{
		ScoreA:          nullInt(scoreA),
		ScoreB:          nullInt(scoreB),
		PenaltiesWinner: nullSide(penaltiesWinner),
		UpdatedAt:       time.Now(),
		ID:              id,
	})
	if err != nil {
		return fmt.Errorf("failed to update score of %s: %w", id, err)
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	if err := qtx.DeleteMatchPlayers(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match players %s: %w", id, err)
	}
	affected, err := qtx.DeleteMatch(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return tx.Commit()
}
