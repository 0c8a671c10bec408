package server

import (
	"time"

	"matchday-tracker/internal/domain"
	"matchday-tracker/internal/service"
	"matchday-tracker/internal/stats"

	"github.com/samber/lo"
)

type Team struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	League   string  `json:"league"`
	Stars    float64 `json:"stars"`
	Overall  int     `json:"overall"`
	Attack   int     `json:"attack"`
	Midfield int     `json:"midfield"`
	Defend   int     `json:"defend"`
}

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type Match struct {
	ID              string   `json:"id"`
	TeamAID         string   `json:"team_a_id"`
	TeamBID         string   `json:"team_b_id"`
	ScoreA          *int     `json:"score_a"`
	ScoreB          *int     `json:"score_b"`
	PenaltiesWinner int      `json:"penalties_winner"`
	Winner          int      `json:"winner"`
	PlayedAt        string   `json:"played_at"`
	Version         string   `json:"version"`
	PlayersA        []string `json:"players_a"`
	PlayersB        []string `json:"players_b"`
}

type Scope struct {
	Kind    string `json:"kind"`
	Version string `json:"version,omitempty"`
}

type PoolFilter struct {
	MinOverall     *int     `json:"min_overall,omitempty"`
	MaxOverall     *int     `json:"max_overall,omitempty"`
	MinStars       *float64 `json:"min_stars,omitempty"`
	ExcludeLeagues []string `json:"exclude_leagues,omitempty"`
	MaxRatingGap   *int     `json:"max_rating_gap,omitempty"`
}

type ListTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams []Team `json:"teams"`
}

type SyncTeamsRequest struct{}

type SyncTeamsResponse struct {
	Stored int `json:"stored"`
}

type ListPlayersRequest struct{}

type ListPlayersResponse struct {
	Players []Player `json:"players"`
}

type CreatePlayerRequest struct {
	Name string `json:"name"`
}

type CreatePlayerResponse struct {
	Player Player `json:"player"`
}

type ListMatchesRequest struct {
	Scope Scope `json:"scope"`
}

type ListMatchesResponse struct {
	Matches []Match `json:"matches"`
}

type RecordMatchRequest struct {
	TeamAID         string   `json:"team_a_id"`
	TeamBID         string   `json:"team_b_id"`
	PlayersA        []string `json:"players_a"`
	PlayersB        []string `json:"players_b"`
	ScoreA          *int     `json:"score_a"`
	ScoreB          *int     `json:"score_b"`
	PenaltiesWinner int      `json:"penalties_winner"`
	// PlayedAt is RFC 3339; empty means now.
	PlayedAt string `json:"played_at"`
	Version  string `json:"version"`
}

type RecordMatchResponse struct {
	Match Match `json:"match"`
}

type SetScoreRequest struct {
	MatchID         string `json:"match_id"`
	ScoreA          *int   `json:"score_a"`
	ScoreB          *int   `json:"score_b"`
	PenaltiesWinner int    `json:"penalties_winner"`
}

type SetScoreResponse struct {
	Match Match `json:"match"`
}

type DeleteMatchRequest struct {
	MatchID string `json:"match_id"`
}

type DeleteMatchResponse struct{}

type GenerateMatchupRequest struct {
	Filter PoolFilter `json:"filter"`
}

type ReplaceSideRequest struct {
	Filter        PoolFilter `json:"filter"`
	TeamAID       string     `json:"team_a_id"`
	TeamBID       string     `json:"team_b_id"`
	Side          int        `json:"side"`
	ReplacementID string     `json:"replacement_id"`
}

type MatchupResponse struct {
	Found    bool   `json:"found"`
	SideA    *Team  `json:"side_a,omitempty"`
	SideB    *Team  `json:"side_b,omitempty"`
	PoolSize int    `json:"pool_size"`
	Message  string `json:"message,omitempty"`
}

type StatsRequest struct {
	Scope Scope `json:"scope"`
}

type Standing struct {
	PlayerID           string  `json:"player_id"`
	PlayerName         string  `json:"player_name"`
	Points             int     `json:"points"`
	GoalsFor           int     `json:"goals_for"`
	GoalsAgainst       int     `json:"goals_against"`
	GoalDifference     int     `json:"goal_difference"`
	Matches            int     `json:"matches"`
	AverageTeamOverall float64 `json:"average_team_overall"`
}

type GetStandingsResponse struct {
	Standings []Standing `json:"standings"`
}

type TeamStats struct {
	TeamID         string  `json:"team_id"`
	TeamName       string  `json:"team_name"`
	Matches        int     `json:"matches"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
	WinPercentage  float64 `json:"win_percentage"`
	LossPercentage float64 `json:"loss_percentage"`
}

type GetTeamStatsResponse struct {
	Teams []TeamStats `json:"teams"`
}

type Pair struct {
	PlayerAID     string  `json:"player_a_id"`
	PlayerBID     string  `json:"player_b_id"`
	PlayerAName   string  `json:"player_a_name"`
	PlayerBName   string  `json:"player_b_name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	TotalMatches  int     `json:"total_matches"`
	WinPercentage float64 `json:"win_percentage"`
}

type GetPairMatrixResponse struct {
	Pairs []Pair `json:"pairs"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

type Achievement struct {
	Badge
	Count    int      `json:"count"`
	MatchIDs []string `json:"match_ids"`
}

type Streak struct {
	CurrentWin  int  `json:"current_win"`
	LongestWin  int  `json:"longest_win"`
	CurrentLoss int  `json:"current_loss"`
	LongestLoss int  `json:"longest_loss"`
	HotStreak   bool `json:"hot_streak"`
}

type PlayerAchievements struct {
	PlayerID     string        `json:"player_id"`
	PlayerName   string        `json:"player_name"`
	TotalMatches int           `json:"total_matches"`
	Wins         int           `json:"wins"`
	Losses       int           `json:"losses"`
	Draws        int           `json:"draws"`
	Streak       Streak        `json:"streak"`
	Achievements []Achievement `json:"achievements"`
}

type GetAchievementsResponse struct {
	Players []PlayerAchievements `json:"players"`
	Badges  []Badge              `json:"badges"`
}

func toTeam(t domain.Team) Team {
	return Team{
		ID:       t.ID,
		Name:     t.Name,
		League:   t.League,
		Stars:    t.Stars,
		Overall:  t.Overall,
		Attack:   t.Attack,
		Midfield: t.Midfield,
		Defend:   t.Defend,
	}
}

func toPlayer(p domain.Player) Player {
	return Player{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339)}
}

func toMatch(m domain.Match) Match {
	playedAt := ""
	if !m.PlayedAt.IsZero() {
		playedAt = m.PlayedAt.UTC().Format(time.RFC3339)
	}
	return Match{
		ID:              m.ID,
		TeamAID:         m.TeamAID,
		TeamBID:         m.TeamBID,
		ScoreA:          m.ScoreA,
		ScoreB:          m.ScoreB,
		PenaltiesWinner: int(m.PenaltiesWinner),
		Winner:          int(m.Winner()),
		PlayedAt:        playedAt,
		Version:         m.Version,
		PlayersA:        lo.Ternary(m.PlayersA == nil, []string{}, m.PlayersA),
		PlayersB:        lo.Ternary(m.PlayersB == nil, []string{}, m.PlayersB),
	}
}

func (s Scope) toService() service.Scope {
	return service.Scope{Kind: s.Kind, Version: s.Version}
}

func (f PoolFilter) toService() service.PoolFilter {
	return service.PoolFilter{
		MinOverall:     f.MinOverall,
		MaxOverall:     f.MaxOverall,
		MinStars:       f.MinStars,
		ExcludeLeagues: f.ExcludeLeagues,
		MaxRatingGap:   f.MaxRatingGap,
	}
}

func toMatchupResponse(r *service.MatchupResult) *MatchupResponse {
	resp := &MatchupResponse{Found: r.Found, PoolSize: r.PoolSize, Message: r.Message}
	if r.Found {
		resp.SideA = lo.ToPtr(toTeam(r.Matchup.Team(domain.SideA)))
		resp.SideB = lo.ToPtr(toTeam(r.Matchup.Team(domain.SideB)))
	}
	return resp
}

func toStanding(s stats.Standing) Standing {
	return Standing{
		PlayerID:           s.PlayerID,
		PlayerName:         s.PlayerName,
		Points:             s.Points,
		GoalsFor:           s.GoalsFor,
		GoalsAgainst:       s.GoalsAgainst,
		GoalDifference:     s.GoalDifference,
		Matches:            s.Matches,
		AverageTeamOverall: s.AverageTeamOverall(),
	}
}

func toTeamStats(t stats.TeamStanding) TeamStats {
	return TeamStats{
		TeamID:         t.TeamID,
		TeamName:       t.TeamName,
		Matches:        t.Matches,
		Wins:           t.Wins,
		Losses:         t.Losses,
		Draws:          t.Draws,
		WinPercentage:  t.WinPercentage,
		LossPercentage: t.LossPercentage,
	}
}

func toPair(p stats.PairRecord) Pair {
	return Pair{
		PlayerAID:     p.Key.Lo,
		PlayerBID:     p.Key.Hi,
		PlayerAName:   p.PlayerAName,
		PlayerBName:   p.PlayerBName,
		Wins:          p.Wins,
		Losses:        p.Losses,
		TotalMatches:  p.TotalMatches,
		WinPercentage: p.WinPercentage,
	}
}

func toBadge(b stats.Badge) Badge {
	return Badge{ID: string(b.ID), Name: b.Name, Emoji: b.Emoji, Description: b.Description}
}

func toPlayerAchievements(pa stats.PlayerAchievements) PlayerAchievements {
	return PlayerAchievements{
		PlayerID:     pa.PlayerID,
		PlayerName:   pa.PlayerName,
		TotalMatches: pa.TotalMatches,
		Wins:         pa.Wins,
		Losses:       pa.Losses,
		Draws:        pa.Draws,
		Streak: Streak{
			CurrentWin:  pa.Streak.CurrentWin,
			LongestWin:  pa.Streak.LongestWin,
			CurrentLoss: pa.Streak.CurrentLoss,
			LongestLoss: pa.Streak.LongestLoss,
			HotStreak:   pa.Streak.HotStreak,
		},
		Achievements: lo.Map(pa.Achievements, func(a stats.Achievement, _ int) Achievement {
			return Achievement{Badge: toBadge(a.Badge), Count: a.Count, MatchIDs: a.MatchIDs}
		}),
	}
}
