package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"matchday-tracker/internal/config"
	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/matchmaking"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// PoolFilter narrows the team catalog to the eligible pool. Nil fields fall
// back to the configured defaults.
type PoolFilter struct {
	MinOverall     *int
	MaxOverall     *int
	MinStars       *float64
	ExcludeLeagues []string
	// MaxRatingGap below zero removes the limit.
	MaxRatingGap *int
}

type MatchupResult struct {
	Matchup  matchmaking.Matchup
	Found    bool
	PoolSize int
	Message  string
}

// lockedRand lets concurrent requests share one source.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

type MatchmakingService struct {
	loader *SnapshotLoader
	cfg    *config.Config
	rng    matchmaking.Rand
	now    func() time.Time
	logger zerolog.Logger
}

func NewMatchmakingService(loader *SnapshotLoader, cfg *config.Config, logger zerolog.Logger) *MatchmakingService {
	seed := cfg.Matchmaking.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &MatchmakingService{
		loader: loader,
		cfg:    cfg,
		rng:    &lockedRand{r: rand.New(rand.NewPCG(seed, seed>>1|1))},
		now:    time.Now,
		logger: logger,
	}
}

func (s *MatchmakingService) today() time.Time {
	if s.cfg.Location == nil {
		return s.now().UTC()
	}
	return s.now().In(s.cfg.Location)
}

func (s *MatchmakingService) maxGap(filter PoolFilter) *int {
	gap := s.cfg.Matchmaking.MaxRatingGap
	if filter.MaxRatingGap != nil {
		gap = *filter.MaxRatingGap
	}
	if gap < 0 {
		return nil
	}
	return &gap
}

// playedToday collects the teams used in any match played today.
func (s *MatchmakingService) playedToday(snap *domain.Snapshot) map[string]bool {
	played := make(map[string]bool)
	for _, m := range snap.PlayedOn(s.today()) {
		played[m.TeamAID] = true
		played[m.TeamBID] = true
	}
	return played
}

// EligiblePool applies the rating window, star floor and league exclusions
// and drops teams already played today.
func (s *MatchmakingService) EligiblePool(snap *domain.Snapshot, filter PoolFilter) []domain.Team {
	minOverall := lo.FromPtrOr(filter.MinOverall, s.cfg.Matchmaking.MinOverall)
	maxOverall := lo.FromPtrOr(filter.MaxOverall, s.cfg.Matchmaking.MaxOverall)
	minStars := lo.FromPtrOr(filter.MinStars, s.cfg.Matchmaking.MinStars)
	played := s.playedToday(snap)

	return lo.Filter(snap.Teams, func(t domain.Team, _ int) bool {
		return t.Overall >= minOverall &&
			t.Overall <= maxOverall &&
			t.Stars >= minStars &&
			!lo.Contains(filter.ExcludeLeagues, t.League) &&
			!played[t.ID]
	})
}

func (s *MatchmakingService) engine(snap *domain.Snapshot) *matchmaking.Engine {
	return matchmaking.NewEngine(matchmaking.BuildStats(snap.Matches), matchmaking.Options{
		NationCategory: s.cfg.Matchmaking.NationCategory,
		Now:            s.now(),
		Rand:           s.rng,
	})
}

func (s *MatchmakingService) Generate(ctx context.Context, filter PoolFilter) (*MatchupResult, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	pool := s.EligiblePool(snap, filter)
	result := &MatchupResult{PoolSize: len(pool)}

	if len(pool) < 2 {
		result.Message = fmt.Sprintf("only %d teams remain in this filter", len(pool))
		s.logger.Info().Int("pool_size", len(pool)).Msg("pool too small for a matchup")
		return result, nil
	}

	matchup, ok := s.engine(snap).SelectMatchup(pool, s.maxGap(filter))
	if !ok {
		result.Message = fmt.Sprintf("no compatible pairing among the %d teams in this filter", len(pool))
		s.logger.Info().Int("pool_size", len(pool)).Msg("no compatible opponent found")
		return result, nil
	}

	result.Matchup = matchup
	result.Found = true
	s.logger.Info().
		Str("side_a", matchup.SideA.ID).
		Str("side_b", matchup.SideB.ID).
		Int("pool_size", len(pool)).
		Msg("matchup generated")
	return result, nil
}

// ReplaceSide puts replacementID on one side of the pairing teamAID vs
// teamBID and keeps or redraws the other side.
func (s *MatchmakingService) ReplaceSide(ctx context.Context, filter PoolFilter, teamAID, teamBID string, side domain.Side, replacementID string) (*MatchupResult, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: side must be 1 or 2", ErrInvalidInput)
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	replacement, ok := snap.Team(replacementID)
	if !ok {
		return nil, fmt.Errorf("%w: team %s", ErrNotFound, replacementID)
	}

	current := matchmaking.Matchup{
		SideA: snap.TeamOrPlaceholder(teamAID),
		SideB: snap.TeamOrPlaceholder(teamBID),
	}
	pool := s.EligiblePool(snap, filter)
	result := &MatchupResult{PoolSize: len(pool)}

	matchup, ok := s.engine(snap).ReplaceSide(current, side, replacement, pool, s.playedToday(snap), s.maxGap(filter))
	if !ok {
		result.Message = fmt.Sprintf("no opponent for %s among the %d teams in this filter", replacement.Name, len(pool))
		s.logger.Info().Str("replacement", replacementID).Int("pool_size", len(pool)).Msg("no opponent for replacement")
		return result, nil
	}

	result.Matchup = matchup
	result.Found = true
	return result, nil
}
