package domain

import (
	"time"

	"github.com/samber/lo"
)

const (
	UnknownTeamName   = "Unknown team"
	UnknownPlayerName = "Unknown player"
)

// Snapshot is an immutable view of the catalogs and match history with
// id-indexed lookups built once per load.
type Snapshot struct {
	Teams   []Team
	Players []Player
	Matches []Match

	teamsByID   map[string]Team
	playersByID map[string]Player
}

func NewSnapshot(teams []Team, players []Player, matches []Match) *Snapshot {
	return &Snapshot{
		Teams:       teams,
		Players:     players,
		Matches:     matches,
		teamsByID:   lo.KeyBy(teams, func(t Team) string { return t.ID }),
		playersByID: lo.KeyBy(players, func(p Player) string { return p.ID }),
	}
}

func (s *Snapshot) Team(id string) (Team, bool) {
	t, ok := s.teamsByID[id]
	return t, ok
}

// TeamOrPlaceholder never fails: unknown ids resolve to a zero-rated team
// carrying a placeholder name.
func (s *Snapshot) TeamOrPlaceholder(id string) Team {
	if t, ok := s.teamsByID[id]; ok {
		return t
	}
	return Team{ID: id, Name: UnknownTeamName}
}

func (s *Snapshot) PlayerName(id string) string {
	if p, ok := s.playersByID[id]; ok {
		return p.Name
	}
	return UnknownPlayerName
}

// WithMatches returns a snapshot sharing the catalogs but holding a
// different match subset.
func (s *Snapshot) WithMatches(matches []Match) *Snapshot {
	return &Snapshot{
		Teams:       s.Teams,
		Players:     s.Players,
		Matches:     matches,
		teamsByID:   s.teamsByID,
		playersByID: s.playersByID,
	}
}

// PlayedOn returns the matches played on the same calendar day as day, in
// day's location. Matches with unknown play time never qualify.
func (s *Snapshot) PlayedOn(day time.Time) []Match {
	y, m, d := day.Date()
	return lo.Filter(s.Matches, func(match Match, _ int) bool {
		if match.PlayedAt.IsZero() {
			return false
		}
		my, mm, md := match.PlayedAt.In(day.Location()).Date()
		return my == y && mm == m && md == d
	})
}

func (s *Snapshot) ForVersion(version string) []Match {
	return lo.Filter(s.Matches, func(match Match, _ int) bool {
		return match.Version == version
	})
}
