package service

import (
	"context"
	"fmt"
	"strings"

	"matchday-tracker/internal/constants"
	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type PlayerService struct {
	playerRepo *repository.PlayerRepository
	logger     zerolog.Logger
}

func NewPlayerService(playerRepo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{playerRepo: playerRepo, logger: logger}
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.playerRepo.List(ctx)
}

func (s *PlayerService) Create(ctx context.Context, name string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	existing, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if lo.ContainsBy(existing, func(p domain.Player) bool { return strings.EqualFold(p.Name, name) }) {
		return nil, fmt.Errorf("%w: player %q already exists", ErrInvalidInput, name)
	}

	player, err := s.playerRepo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("player_id", player.ID).Str("name", player.Name).Msg("player created")
	return player, nil
}
