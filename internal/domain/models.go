package domain

import (
	"time"
)

type Team struct {
	ID       string
	Name     string
	League   string
	Stars    float64 // 0.0 - 5.0
	Overall  int     // 0 - 99
	Attack   int
	Midfield int
	Defend   int
}

type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Side is the position of a team in a match record. Zero means no side.
type Side int

const (
	SideNone Side = 0
	SideA    Side = 1
	SideB    Side = 2
)

func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

func (s Side) Opposite() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	}
	return SideNone
}

type Match struct {
	ID              string
	TeamAID         string
	TeamBID         string
	ScoreA          *int
	ScoreB          *int
	PenaltiesWinner Side
	PlayedAt        time.Time // zero when the stored value could not be parsed
	Version         string
	PlayersA        []string
	PlayersB        []string
}

// MatchParticipation is the roster of one side of a match.
type MatchParticipation struct {
	MatchID   string
	Side      Side
	PlayerIDs []string
}

func (m Match) Scored() bool {
	return m.ScoreA != nil && m.ScoreB != nil
}

// Winner returns the side that won the match. Unscored matches and draws
// return SideNone.
func (m Match) Winner() Side {
	if !m.Scored() {
		return SideNone
	}
	switch {
	case *m.ScoreA > *m.ScoreB:
		return SideA
	case *m.ScoreB > *m.ScoreA:
		return SideB
	case m.PenaltiesWinner.Valid():
		return m.PenaltiesWinner
	}
	return SideNone
}

func (m Match) DecidedOnPenalties() bool {
	return m.Scored() && *m.ScoreA == *m.ScoreB && m.PenaltiesWinner.Valid()
}

func (m Match) TeamID(side Side) string {
	if side == SideB {
		return m.TeamBID
	}
	return m.TeamAID
}

func (m Match) Roster(side Side) []string {
	if side == SideB {
		return m.PlayersB
	}
	return m.PlayersA
}

// Goals returns the goals scored and conceded by the given side. Both are
// zero for unscored matches.
func (m Match) Goals(side Side) (scored, conceded int) {
	if !m.Scored() {
		return 0, 0
	}
	if side == SideB {
		return *m.ScoreB, *m.ScoreA
	}
	return *m.ScoreA, *m.ScoreB
}

func (m Match) Participations() []MatchParticipation {
	return []MatchParticipation{
		{MatchID: m.ID, Side: SideA, PlayerIDs: m.PlayersA},
		{MatchID: m.ID, Side: SideB, PlayerIDs: m.PlayersB},
	}
}

// PairKey identifies an unordered pair of teams or players. Lo is always
// the smaller identifier.
type PairKey struct {
	Lo string
	Hi string
}

func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

func (k PairKey) String() string {
	return k.Lo + "|" + k.Hi
}
