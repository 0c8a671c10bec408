package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"matchday-tracker/internal/api"
	"matchday-tracker/internal/constants"
	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/events"
	"matchday-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

var ErrCatalogUnavailable = errors.New("team catalog unavailable")

type CatalogService struct {
	client    *api.CatalogClient
	teamRepo  *repository.TeamRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewCatalogService(client *api.CatalogClient, teamRepo *repository.TeamRepository, publisher events.Publisher, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		client:    client,
		teamRepo:  teamRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.teamRepo.List(ctx)
}

// ValidateTeam checks the ratings a catalog entry must carry.
func ValidateTeam(t domain.Team) error {
	if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: team needs an id and a name", ErrInvalidInput)
	}
	if t.Stars < 0 || t.Stars > constants.MaxStars {
		return fmt.Errorf("%w: team %s stars %.1f out of range", ErrInvalidInput, t.ID, t.Stars)
	}
	for _, r := range []int{t.Overall, t.Attack, t.Midfield, t.Defend} {
		if r < 0 || r > constants.MaxOverall {
			return fmt.Errorf("%w: team %s rating %d out of range", ErrInvalidInput, t.ID, r)
		}
	}
	return nil
}

// SyncTeams pulls the remote catalog and upserts every valid entry. Invalid
// entries are skipped and logged. It returns the number of teams stored.
func (s *CatalogService) SyncTeams(ctx context.Context) (int, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, constants.CatalogTimeout)
	defer cancel()

	resp, err := s.client.GetTeams(fetchCtx)
	if err != nil {
		if !errors.Is(err, api.ErrCatalogDisabled) {
			s.logger.Error().Err(err).Msg("failed to fetch team catalog")
		}
		return 0, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	teams := make([]domain.Team, 0, len(resp.Data))
	for _, ct := range resp.Data {
		team := domain.Team{
			ID:       strings.TrimSpace(ct.ID),
			Name:     strings.TrimSpace(ct.Name),
			League:   strings.TrimSpace(ct.League),
			Stars:    ct.Stars,
			Overall:  ct.Overall,
			Attack:   ct.Attack,
			Midfield: ct.Midfield,
			Defend:   ct.Defend,
		}
		if err := ValidateTeam(team); err != nil {
			s.logger.Warn().Err(err).Str("team_id", ct.ID).Msg("skipping catalog entry")
			continue
		}
		teams = append(teams, team)
	}
	teams = lo.UniqBy(teams, func(t domain.Team) string { return t.ID })

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()
	if err := s.teamRepo.UpsertBatch(dbCtx, teams); err != nil {
		s.logger.Error().Err(err).Msg("failed to store team catalog")
		return 0, err
	}

	s.logger.Info().Int("received", len(resp.Data)).Int("stored", len(teams)).Msg("team catalog synced")

	pubCtx, pubCancel := context.WithTimeout(ctx, constants.PublishTimeout)
	defer pubCancel()
	if err := s.publisher.Publish(pubCtx, events.Event{Kind: events.TeamsSynced, At: time.Now().UTC()}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish teams synced event")
	}

	return len(teams), nil
}
