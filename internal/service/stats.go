package service

import (
	"context"
	"time"

	"matchday-tracker/internal/config"
	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/stats"

	"github.com/rs/zerolog"
)

// StatsService computes the derived views from a fresh snapshot on every
// call; nothing is cached between requests.
type StatsService struct {
	loader   *SnapshotLoader
	location *time.Location
	now      func() time.Time
	logger   zerolog.Logger
}

func NewStatsService(loader *SnapshotLoader, cfg *config.Config, logger zerolog.Logger) *StatsService {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	return &StatsService{loader: loader, location: location, now: time.Now, logger: logger}
}

func (s *StatsService) scoped(ctx context.Context, scope Scope) (*domain.Snapshot, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return scope.Apply(snap, s.now().In(s.location))
}

func (s *StatsService) Standings(ctx context.Context, scope Scope) ([]stats.Standing, error) {
	snap, err := s.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}
	return stats.Standings(snap), nil
}

func (s *StatsService) TeamStats(ctx context.Context, scope Scope) ([]stats.TeamStanding, error) {
	snap, err := s.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}
	return stats.TeamStats(snap), nil
}

// PairMatrix returns the pair records flattened, best win percentage first.
func (s *StatsService) PairMatrix(ctx context.Context, scope Scope) ([]stats.PairRecord, error) {
	snap, err := s.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}
	return stats.SortedPairs(stats.PairWinMatrix(snap)), nil
}

func (s *StatsService) Achievements(ctx context.Context, scope Scope) ([]stats.PlayerAchievements, error) {
	snap, err := s.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}
	result := stats.Achievements(snap)
	s.logger.Debug().Str("scope", scope.Kind).Int("players", len(result)).Msg("achievements computed")
	return result, nil
}
