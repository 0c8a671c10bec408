package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"matchday-tracker/internal/config"
	"matchday-tracker/internal/constants"
	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/events"
	"matchday-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type RecordMatchInput struct {
	TeamAID         string
	TeamBID         string
	PlayersA        []string
	PlayersB        []string
	ScoreA          *int
	ScoreB          *int
	PenaltiesWinner domain.Side
	PlayedAt        time.Time
	Version         string
}

type MatchService struct {
	matchRepo *repository.MatchRepository
	loader    *SnapshotLoader
	publisher events.Publisher
	now       func() time.Time
	location  *time.Location
	logger    zerolog.Logger
}

func NewMatchService(matchRepo *repository.MatchRepository, loader *SnapshotLoader, publisher events.Publisher, cfg *config.Config, logger zerolog.Logger) *MatchService {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	return &MatchService{
		matchRepo: matchRepo,
		loader:    loader,
		publisher: publisher,
		now:       time.Now,
		location:  location,
		logger:    logger,
	}
}

// ValidateScore enforces that scores come in pairs, are non-negative, and
// that a shootout winner only exists for level scores.
func ValidateScore(scoreA, scoreB *int, penaltiesWinner domain.Side) error {
	if (scoreA == nil) != (scoreB == nil) {
		return fmt.Errorf("%w: both scores or neither must be set", ErrInvalidInput)
	}
	if scoreA != nil && (*scoreA < 0 || *scoreB < 0) {
		return fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}
	if penaltiesWinner == domain.SideNone {
		return nil
	}
	if !penaltiesWinner.Valid() {
		return fmt.Errorf("%w: penalties winner must be 1 or 2", ErrInvalidInput)
	}
	if scoreA == nil || *scoreA != *scoreB {
		return fmt.Errorf("%w: penalties winner needs level scores", ErrInvalidInput)
	}
	return nil
}

func cleanRoster(ids []string) []string {
	trimmed := lo.Map(ids, func(id string, _ int) string { return strings.TrimSpace(id) })
	return lo.Uniq(lo.Compact(trimmed))
}

func (s *MatchService) Record(ctx context.Context, in RecordMatchInput) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if in.TeamAID == "" || in.TeamBID == "" {
		return nil, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}
	if in.TeamAID == in.TeamBID {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if err := ValidateScore(in.ScoreA, in.ScoreB, in.PenaltiesWinner); err != nil {
		return nil, err
	}

	playersA := cleanRoster(in.PlayersA)
	playersB := cleanRoster(in.PlayersB)
	if both := lo.Intersect(playersA, playersB); len(both) > 0 {
		return nil, fmt.Errorf("%w: player %s is on both sides", ErrInvalidInput, both[0])
	}

	playedAt := in.PlayedAt
	if playedAt.IsZero() {
		playedAt = s.now()
	}

	stored, err := s.matchRepo.Create(ctx, domain.Match{
		TeamAID:         in.TeamAID,
		TeamBID:         in.TeamBID,
		ScoreA:          in.ScoreA,
		ScoreB:          in.ScoreB,
		PenaltiesWinner: in.PenaltiesWinner,
		PlayedAt:        playedAt,
		Version:         strings.TrimSpace(in.Version),
		PlayersA:        playersA,
		PlayersB:        playersB,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("team_a", in.TeamAID).Str("team_b", in.TeamBID).Msg("failed to record match")
		return nil, err
	}

	s.logger.Info().
		Str("match_id", stored.ID).
		Str("team_a", stored.TeamAID).
		Str("team_b", stored.TeamBID).
		Bool("scored", stored.Scored()).
		Msg("match recorded")

	s.publish(ctx, events.MatchRecorded, stored.ID)
	return stored, nil
}

func (s *MatchService) SetScore(ctx context.Context, id string, scoreA, scoreB *int, penaltiesWinner domain.Side) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := ValidateScore(scoreA, scoreB, penaltiesWinner); err != nil {
		return nil, err
	}

	if err := s.matchRepo.UpdateScore(ctx, id, scoreA, scoreB, penaltiesWinner); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return nil, fmt.Errorf("%w: match %s", ErrNotFound, id)
		}
		s.logger.Error().Err(err).Str("match_id", id).Msg("failed to update score")
		return nil, err
	}

	s.logger.Info().Str("match_id", id).Msg("match score updated")
	s.publish(ctx, events.MatchScored, id)

	match, err := s.matchRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match %s: %w", id, err)
	}
	return match, nil
}

func (s *MatchService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return fmt.Errorf("%w: match %s", ErrNotFound, id)
		}
		s.logger.Error().Err(err).Str("match_id", id).Msg("failed to delete match")
		return err
	}

	s.logger.Info().Str("match_id", id).Msg("match deleted")
	s.publish(ctx, events.MatchDeleted, id)
	return nil
}

// List returns the matches in scope, newest first.
func (s *MatchService) List(ctx context.Context, scope Scope) ([]domain.Match, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	scoped, err := scope.Apply(snap, s.now().In(s.location))
	if err != nil {
		return nil, err
	}
	return lo.Reverse(append([]domain.Match(nil), scoped.Matches...)), nil
}

// publish never fails the write it follows; listeners can always fall back
// to a full reload.
func (s *MatchService) publish(ctx context.Context, kind events.Kind, matchID string) {
	ctx, cancel := context.WithTimeout(ctx, constants.PublishTimeout)
	defer cancel()

	err := s.publisher.Publish(ctx, events.Event{Kind: kind, MatchID: matchID, At: s.now().UTC()})
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", string(kind)).Str("match_id", matchID).Msg("failed to publish match event")
	}
}
