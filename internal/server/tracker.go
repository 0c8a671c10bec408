package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/middleware"
	"matchday-tracker/internal/repository"
	"matchday-tracker/internal/service"
	"matchday-tracker/internal/stats"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const MatchdayTrackerPath = "/matchday.v1.MatchdayTracker/"

const (
	ListTeamsProcedure       = MatchdayTrackerPath + "ListTeams"
	SyncTeamsProcedure       = MatchdayTrackerPath + "SyncTeams"
	ListPlayersProcedure     = MatchdayTrackerPath + "ListPlayers"
	CreatePlayerProcedure    = MatchdayTrackerPath + "CreatePlayer"
	ListMatchesProcedure     = MatchdayTrackerPath + "ListMatches"
	RecordMatchProcedure     = MatchdayTrackerPath + "RecordMatch"
	SetScoreProcedure        = MatchdayTrackerPath + "SetScore"
	DeleteMatchProcedure     = MatchdayTrackerPath + "DeleteMatch"
	GenerateMatchupProcedure = MatchdayTrackerPath + "GenerateMatchup"
	ReplaceSideProcedure     = MatchdayTrackerPath + "ReplaceSide"
	GetStandingsProcedure    = MatchdayTrackerPath + "GetStandings"
	GetTeamStatsProcedure    = MatchdayTrackerPath + "GetTeamStats"
	GetPairMatrixProcedure   = MatchdayTrackerPath + "GetPairMatrix"
	GetAchievementsProcedure = MatchdayTrackerPath + "GetAchievements"
)

type TrackerServer struct {
	catalogSvc     *service.CatalogService
	playerSvc      *service.PlayerService
	matchSvc       *service.MatchService
	matchmakingSvc *service.MatchmakingService
	statsSvc       *service.StatsService
}

func NewTrackerServer(
	catalogSvc *service.CatalogService,
	playerSvc *service.PlayerService,
	matchSvc *service.MatchService,
	matchmakingSvc *service.MatchmakingService,
	statsSvc *service.StatsService,
) *TrackerServer {
	return &TrackerServer{
		catalogSvc:     catalogSvc,
		playerSvc:      playerSvc,
		matchSvc:       matchSvc,
		matchmakingSvc: matchmakingSvc,
		statsSvc:       statsSvc,
	}
}

// Handler mounts every procedure under MatchdayTrackerPath.
func (s *TrackerServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(SyncTeamsProcedure, connect.NewUnaryHandler(SyncTeamsProcedure, s.SyncTeams, opts...))
	mux.Handle(ListPlayersProcedure, connect.NewUnaryHandler(ListPlayersProcedure, s.ListPlayers, opts...))
	mux.Handle(CreatePlayerProcedure, connect.NewUnaryHandler(CreatePlayerProcedure, s.CreatePlayer, opts...))
	mux.Handle(ListMatchesProcedure, connect.NewUnaryHandler(ListMatchesProcedure, s.ListMatches, opts...))
	mux.Handle(RecordMatchProcedure, connect.NewUnaryHandler(RecordMatchProcedure, s.RecordMatch, opts...))
	mux.Handle(SetScoreProcedure, connect.NewUnaryHandler(SetScoreProcedure, s.SetScore, opts...))
	mux.Handle(DeleteMatchProcedure, connect.NewUnaryHandler(DeleteMatchProcedure, s.DeleteMatch, opts...))
	mux.Handle(GenerateMatchupProcedure, connect.NewUnaryHandler(GenerateMatchupProcedure, s.GenerateMatchup, opts...))
	mux.Handle(ReplaceSideProcedure, connect.NewUnaryHandler(ReplaceSideProcedure, s.ReplaceSide, opts...))
	mux.Handle(GetStandingsProcedure, connect.NewUnaryHandler(GetStandingsProcedure, s.GetStandings, opts...))
	mux.Handle(GetTeamStatsProcedure, connect.NewUnaryHandler(GetTeamStatsProcedure, s.GetTeamStats, opts...))
	mux.Handle(GetPairMatrixProcedure, connect.NewUnaryHandler(GetPairMatrixProcedure, s.GetPairMatrix, opts...))
	mux.Handle(GetAchievementsProcedure, connect.NewUnaryHandler(GetAchievementsProcedure, s.GetAchievements, opts...))
	return MatchdayTrackerPath, mux
}

// toConnectError maps service failures onto Connect codes. Unexpected
// failures are logged with the request's logger and reach the client only
// as a request id.
func toConnectError(ctx context.Context, procedure string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrMatchNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, service.ErrCatalogUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	zerolog.Ctx(ctx).Error().Err(err).Str("procedure", procedure).Msg("request failed")
	return connect.NewError(connect.CodeInternal, fmt.Errorf("internal error, request %s", middleware.GetRequestID(ctx)))
}

func (s *TrackerServer) ListTeams(ctx context.Context, req *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	teams, err := s.catalogSvc.ListTeams(ctx)
	if err != nil {
		return nil, toConnectError(ctx, ListTeamsProcedure, err)
	}
	return connect.NewResponse(&ListTeamsResponse{
		Teams: lo.Map(teams, func(t domain.Team, _ int) Team { return toTeam(t) }),
	}), nil
}

func (s *TrackerServer) SyncTeams(ctx context.Context, req *connect.Request[SyncTeamsRequest]) (*connect.Response[SyncTeamsResponse], error) {
	stored, err := s.catalogSvc.SyncTeams(ctx)
	if err != nil {
		return nil, toConnectError(ctx, SyncTeamsProcedure, err)
	}
	return connect.NewResponse(&SyncTeamsResponse{Stored: stored}), nil
}

func (s *TrackerServer) ListPlayers(ctx context.Context, req *connect.Request[ListPlayersRequest]) (*connect.Response[ListPlayersResponse], error) {
	players, err := s.playerSvc.List(ctx)
	if err != nil {
		return nil, toConnectError(ctx, ListPlayersProcedure, err)
	}
	return connect.NewResponse(&ListPlayersResponse{
		Players: lo.Map(players, func(p domain.Player, _ int) Player { return toPlayer(p) }),
	}), nil
}

func (s *TrackerServer) CreatePlayer(ctx context.Context, req *connect.Request[CreatePlayerRequest]) (*connect.Response[CreatePlayerResponse], error) {
	player, err := s.playerSvc.Create(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(ctx, CreatePlayerProcedure, err)
	}
	return connect.NewResponse(&CreatePlayerResponse{Player: toPlayer(*player)}), nil
}

func (s *TrackerServer) ListMatches(ctx context.Context, req *connect.Request[ListMatchesRequest]) (*connect.Response[ListMatchesResponse], error) {
	matches, err := s.matchSvc.List(ctx, req.Msg.Scope.toService())
	if err != nil {
		return nil, toConnectError(ctx, ListMatchesProcedure, err)
	}
	return connect.NewResponse(&ListMatchesResponse{
		Matches: lo.Map(matches, func(m domain.Match, _ int) Match { return toMatch(m) }),
	}), nil
}

func (s *TrackerServer) RecordMatch(ctx context.Context, req *connect.Request[RecordMatchRequest]) (*connect.Response[RecordMatchResponse], error) {
	var playedAt time.Time
	if req.Msg.PlayedAt != "" {
		var err error
		playedAt, err = time.Parse(time.RFC3339, req.Msg.PlayedAt)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid played_at %q: %w", req.Msg.PlayedAt, err))
		}
	}

	match, err := s.matchSvc.Record(ctx, service.RecordMatchInput{
		TeamAID:         req.Msg.TeamAID,
		TeamBID:         req.Msg.TeamBID,
		PlayersA:        req.Msg.PlayersA,
		PlayersB:        req.Msg.PlayersB,
		ScoreA:          req.Msg.ScoreA,
		ScoreB:          req.Msg.ScoreB,
		PenaltiesWinner: domain.Side(req.Msg.PenaltiesWinner),
		PlayedAt:        playedAt,
		Version:         req.Msg.Version,
	})
	if err != nil {
		return nil, toConnectError(ctx, RecordMatchProcedure, err)
	}
	return connect.NewResponse(&RecordMatchResponse{Match: toMatch(*match)}), nil
}

func (s *TrackerServer) SetScore(ctx context.Context, req *connect.Request[SetScoreRequest]) (*connect.Response[SetScoreResponse], error) {
	match, err := s.matchSvc.SetScore(ctx, req.Msg.MatchID, req.Msg.ScoreA, req.Msg.ScoreB, domain.Side(req.Msg.PenaltiesWinner))
	if err != nil {
		return nil, toConnectError(ctx, SetScoreProcedure, err)
	}
	return connect.NewResponse(&SetScoreResponse{Match: toMatch(*match)}), nil
}

func (s *TrackerServer) DeleteMatch(ctx context.Context, req *connect.Request[DeleteMatchRequest]) (*connect.Response[DeleteMatchResponse], error) {
	if err := s.matchSvc.Delete(ctx, req.Msg.MatchID); err != nil {
		return nil, toConnectError(ctx, DeleteMatchProcedure, err)
	}
	return connect.NewResponse(&DeleteMatchResponse{}), nil
}

func (s *TrackerServer) GenerateMatchup(ctx context.Context, req *connect.Request[GenerateMatchupRequest]) (*connect.Response[MatchupResponse], error) {
	result, err := s.matchmakingSvc.Generate(ctx, req.Msg.Filter.toService())
	if err != nil {
		return nil, toConnectError(ctx, GenerateMatchupProcedure, err)
	}
	return connect.NewResponse(toMatchupResponse(result)), nil
}

func (s *TrackerServer) ReplaceSide(ctx context.Context, req *connect.Request[ReplaceSideRequest]) (*connect.Response[MatchupResponse], error) {
	result, err := s.matchmakingSvc.ReplaceSide(ctx,
		req.Msg.Filter.toService(),
		req.Msg.TeamAID,
		req.Msg.TeamBID,
		domain.Side(req.Msg.Side),
		req.Msg.ReplacementID,
	)
	if err != nil {
		return nil, toConnectError(ctx, ReplaceSideProcedure, err)
	}
	return connect.NewResponse(toMatchupResponse(result)), nil
}

func (s *TrackerServer) GetStandings(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[GetStandingsResponse], error) {
	standings, err := s.statsSvc.Standings(ctx, req.Msg.Scope.toService())
	if err != nil {
		return nil, toConnectError(ctx, GetStandingsProcedure, err)
	}
	return connect.NewResponse(&GetStandingsResponse{
		Standings: lo.Map(standings, func(st stats.Standing, _ int) Standing { return toStanding(st) }),
	}), nil
}

func (s *TrackerServer) GetTeamStats(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[GetTeamStatsResponse], error) {
	teams, err := s.statsSvc.TeamStats(ctx, req.Msg.Scope.toService())
	if err != nil {
		return nil, toConnectError(ctx, GetTeamStatsProcedure, err)
	}
	return connect.NewResponse(&GetTeamStatsResponse{
		Teams: lo.Map(teams, func(t stats.TeamStanding, _ int) TeamStats { return toTeamStats(t) }),
	}), nil
}

func (s *TrackerServer) GetPairMatrix(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[GetPairMatrixResponse], error) {
	pairs, err := s.statsSvc.PairMatrix(ctx, req.Msg.Scope.toService())
	if err != nil {
		return nil, toConnectError(ctx, GetPairMatrixProcedure, err)
	}
	return connect.NewResponse(&GetPairMatrixResponse{
		Pairs: lo.Map(pairs, func(p stats.PairRecord, _ int) Pair { return toPair(p) }),
	}), nil
}

func (s *TrackerServer) GetAchievements(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[GetAchievementsResponse], error) {
	players, err := s.statsSvc.Achievements(ctx, req.Msg.Scope.toService())
	if err != nil {
		return nil, toConnectError(ctx, GetAchievementsProcedure, err)
	}
	return connect.NewResponse(&GetAchievementsResponse{
		Players: lo.Map(players, func(pa stats.PlayerAchievements, _ int) PlayerAchievements { return toPlayerAchievements(pa) }),
		Badges:  lo.Map(stats.Badges(), func(b stats.Badge, _ int) Badge { return toBadge(b) }),
	}), nil
}
