package service

import (
	"context"
	"fmt"
	"time"

	"matchday-tracker/internal/constants"
	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Scope selects the subset of history a derived view is computed over.
type Scope struct {
	Kind    string
	Version string
}

type SnapshotLoader struct {
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	matchRepo  *repository.MatchRepository
	logger     zerolog.Logger
}

func NewSnapshotLoader(teamRepo *repository.TeamRepository, playerRepo *repository.PlayerRepository, matchRepo *repository.MatchRepository, logger zerolog.Logger) *SnapshotLoader {
	return &SnapshotLoader{teamRepo: teamRepo, playerRepo: playerRepo, matchRepo: matchRepo, logger: logger}
}

// Load reads the catalogs and the full history concurrently.
func (l *SnapshotLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var teams []domain.Team
	var players []domain.Player
	var matches []domain.Match

	g.Go(func() error {
		var err error
		teams, err = l.teamRepo.List(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		players, err = l.playerRepo.List(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		matches, err = l.matchRepo.List(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Error().Err(err).Msg("failed to load snapshot")
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	l.logger.Debug().
		Int("teams", len(teams)).
		Int("players", len(players)).
		Int("matches", len(matches)).
		Msg("snapshot loaded")

	return domain.NewSnapshot(teams, players, matches), nil
}

// Apply narrows snap to the matches in scope. now decides what "today" is.
func (s Scope) Apply(snap *domain.Snapshot, now time.Time) (*domain.Snapshot, error) {
	switch s.Kind {
	case "", constants.ScopeAll:
		return snap, nil
	case constants.ScopeToday:
		return snap.WithMatches(snap.PlayedOn(now)), nil
	case constants.ScopeVersion:
		if s.Version == "" {
			return nil, fmt.Errorf("%w: version scope needs a version", ErrInvalidInput)
		}
		return snap.WithMatches(snap.ForVersion(s.Version)), nil
	}
	return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, s.Kind)
}
