package stats

import (
	"sort"

	"matchday-tracker/internal/domain"
)

type Outcome int

const (
	Draw Outcome = iota
	Win
	Loss
)

// MatchContext is one scored match seen from one player's side.
type MatchContext struct {
	Match         domain.Match
	Side          domain.Side
	Outcome       Outcome
	Team          domain.Team
	Opponent      domain.Team
	TeamKnown     bool
	OpponentKnown bool
	GoalsFor      int
	GoalsAgainst  int
	// LossStreakBefore is the player's running loss streak before this match.
	LossStreakBefore int
}

func (c *MatchContext) Won() bool { return c.Outcome == Win }

func (c *MatchContext) cleanSheet() bool {
	return c.GoalsAgainst == 0 && c.GoalsFor >= 1
}

func (c *MatchContext) penaltyWin() bool {
	return c.Won() && c.Match.DecidedOnPenalties()
}

func (c *MatchContext) ratingsKnown() bool {
	return c.TeamKnown && c.OpponentKnown
}

type PlayerStreak struct {
	CurrentWin  int
	LongestWin  int
	CurrentLoss int
	LongestLoss int
	HotStreak   bool
}

type Achievement struct {
	Badge
	Count    int
	MatchIDs []string
}

type PlayerAchievements struct {
	PlayerID     string
	PlayerName   string
	TotalMatches int
	Wins         int
	Losses       int
	Draws        int
	Streak       PlayerStreak
	Achievements []Achievement
}

type replay struct {
	contexts      []MatchContext
	streak        PlayerStreak
	longestWinRun []string
}

func (r *replay) matchIDs(pred func(*MatchContext) bool) []string {
	var ids []string
	for i := range r.contexts {
		if pred(&r.contexts[i]) {
			ids = append(ids, r.contexts[i].Match.ID)
		}
	}
	return ids
}

// Replay walks a player's matches in the given order and tracks streaks. A
// draw ends both the win and the loss run. Unscored matches are skipped.
func Replay(snap *domain.Snapshot, playerID string, matches []domain.Match) (PlayerStreak, []MatchContext) {
	r := replayMatches(snap, playerID, matches)
	return r.streak, r.contexts
}

func replayMatches(snap *domain.Snapshot, playerID string, matches []domain.Match) *replay {
	r := &replay{}
	var run []string

	for _, m := range matches {
		if !m.Scored() {
			continue
		}
		side := sideOf(m, playerID)
		if side == domain.SideNone {
			continue
		}

		team, teamKnown := snap.Team(m.TeamID(side))
		opponent, opponentKnown := snap.Team(m.TeamID(side.Opposite()))
		goalsFor, goalsAgainst := m.Goals(side)

		ctx := MatchContext{
			Match:            m,
			Side:             side,
			Team:             team,
			Opponent:         opponent,
			TeamKnown:        teamKnown,
			OpponentKnown:    opponentKnown,
			GoalsFor:         goalsFor,
			GoalsAgainst:     goalsAgainst,
			LossStreakBefore: r.streak.CurrentLoss,
		}
		if !teamKnown {
			ctx.Team = domain.Team{ID: m.TeamID(side), Name: domain.UnknownTeamName}
		}
		if !opponentKnown {
			ctx.Opponent = domain.Team{ID: m.TeamID(side.Opposite()), Name: domain.UnknownTeamName}
		}

		switch m.Winner() {
		case domain.SideNone:
			ctx.Outcome = Draw
			r.streak.CurrentWin = 0
			r.streak.CurrentLoss = 0
			run = nil
		case side:
			ctx.Outcome = Win
			r.streak.CurrentWin++
			r.streak.CurrentLoss = 0
			run = append(run, m.ID)
			if r.streak.CurrentWin > r.streak.LongestWin {
				r.streak.LongestWin = r.streak.CurrentWin
				r.longestWinRun = append([]string(nil), run...)
			}
		default:
			ctx.Outcome = Loss
			r.streak.CurrentLoss++
			r.streak.CurrentWin = 0
			run = nil
			r.streak.LongestLoss = max(r.streak.LongestLoss, r.streak.CurrentLoss)
		}

		r.contexts = append(r.contexts, ctx)
	}

	r.streak.HotStreak = r.streak.CurrentWin >= 3
	return r
}

func sideOf(m domain.Match, playerID string) domain.Side {
	for _, side := range []domain.Side{domain.SideA, domain.SideB} {
		for _, id := range m.Roster(side) {
			if id == playerID {
				return side
			}
		}
	}
	return domain.SideNone
}

func evaluate(r *replay) []Achievement {
	var earned []Achievement
	for _, rl := range rules {
		var count int
		var ids []string
		if rl.aggregate != nil {
			count, ids = rl.aggregate(r)
		} else {
			ids = r.matchIDs(rl.match)
			count = len(ids)
		}
		if count > 0 {
			earned = append(earned, Achievement{Badge: rl.badge, Count: count, MatchIDs: ids})
		}
	}
	return earned
}

// Achievements replays every player's scored matches in play order and
// returns streaks and badges. Players without a scored match are omitted.
// Output is ordered by longest win streak, current win streak and matches
// played.
func Achievements(snap *domain.Snapshot) []PlayerAchievements {
	chronological := make([]domain.Match, 0, len(snap.Matches))
	for _, m := range snap.Matches {
		if m.Scored() {
			chronological = append(chronological, m)
		}
	}
	sort.SliceStable(chronological, func(i, j int) bool {
		return chronological[i].PlayedAt.Before(chronological[j].PlayedAt)
	})

	byPlayer := make(map[string][]domain.Match)
	var order []string
	for _, m := range chronological {
		seen := make(map[string]bool)
		for _, side := range []domain.Side{domain.SideA, domain.SideB} {
			for _, id := range m.Roster(side) {
				if seen[id] {
					continue
				}
				seen[id] = true
				if _, ok := byPlayer[id]; !ok {
					order = append(order, id)
				}
				byPlayer[id] = append(byPlayer[id], m)
			}
		}
	}

	out := make([]PlayerAchievements, 0, len(order))
	for _, id := range order {
		r := replayMatches(snap, id, byPlayer[id])
		if len(r.contexts) == 0 {
			continue
		}
		pa := PlayerAchievements{
			PlayerID:     id,
			PlayerName:   snap.PlayerName(id),
			TotalMatches: len(r.contexts),
			Streak:       r.streak,
			Achievements: evaluate(r),
		}
		for _, c := range r.contexts {
			switch c.Outcome {
			case Win:
				pa.Wins++
			case Loss:
				pa.Losses++
			default:
				pa.Draws++
			}
		}
		out = append(out, pa)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Streak, out[j].Streak
		if a.LongestWin != b.LongestWin {
			return a.LongestWin > b.LongestWin
		}
		if a.CurrentWin != b.CurrentWin {
			return a.CurrentWin > b.CurrentWin
		}
		return out[i].TotalMatches > out[j].TotalMatches
	})
	return out
}
