package matchmaking

import (
	"math"
	"math/rand/v2"
	"time"

	"matchday-tracker/internal/constants"
	"matchday-tracker/internal/domain"

	"github.com/samber/lo"
)

type Matchup struct {
	SideA domain.Team
	SideB domain.Team
}

func (m Matchup) Team(side domain.Side) domain.Team {
	if side == domain.SideB {
		return m.SideB
	}
	return m.SideA
}

func (m Matchup) with(side domain.Side, team domain.Team) Matchup {
	if side == domain.SideB {
		m.SideB = team
	} else {
		m.SideA = team
	}
	return m
}

type Options struct {
	// NationCategory is the league label whose teams only meet each other.
	// Empty disables the category rule.
	NationCategory string
	Now            time.Time
	// Rand defaults to a clock-seeded source.
	Rand Rand
}

// Engine picks pairings weighted towards teams and pairs that were played
// less often and less recently. It holds no state beyond its inputs.
type Engine struct {
	stats          *Stats
	rng            Rand
	now            time.Time
	nationCategory string
}

func NewEngine(stats *Stats, opts Options) *Engine {
	if stats == nil {
		stats = BuildStats(nil)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Engine{
		stats:          stats,
		rng:            rng,
		now:            now,
		nationCategory: opts.NationCategory,
	}
}

func (e *Engine) daysSince(last time.Time, ok bool) int {
	if !ok || last.IsZero() {
		return constants.RecencyWindowDays
	}
	days := int(math.Floor(e.now.Sub(last).Hours() / 24))
	return max(days, 0)
}

func (e *Engine) recencyWeight(last time.Time, ok bool) float64 {
	return float64(min(constants.RecencyWindowDays, e.daysSince(last, ok)) + 1)
}

// TeamWeight favours teams with fewer plays than the busiest team and teams
// that have not been played for a while.
func (e *Engine) TeamWeight(t domain.Team) float64 {
	usage := float64(max(1, e.stats.MaxTeamCount-e.stats.TeamCount[t.ID]+1))
	last, ok := e.stats.TeamLastPlayed[t.ID]
	return usage * e.recencyWeight(last, ok)
}

// PairWeight favours pairings that are rarely and not recently repeated.
func (e *Engine) PairWeight(a, b string) float64 {
	key := domain.NewPairKey(a, b)
	last, ok := e.stats.PairLastPlayed[key]
	return e.recencyWeight(last, ok) * (1 / (1 + float64(e.stats.PairCount[key])))
}

// CategoryCompatible reports whether two teams may meet: nation-category
// teams only face each other and never club teams.
func (e *Engine) CategoryCompatible(ref, candidate domain.Team) bool {
	if e.nationCategory == "" {
		return true
	}
	if ref.League == e.nationCategory {
		return candidate.League == e.nationCategory
	}
	return candidate.League != e.nationCategory
}

func withinGap(ref, candidate domain.Team, maxGap *int) bool {
	if maxGap == nil {
		return true
	}
	return absInt(candidate.Overall-ref.Overall) <= *maxGap
}

// Candidates returns the opponents in pool that ref may face.
func (e *Engine) Candidates(ref domain.Team, pool []domain.Team, maxGap *int) []domain.Team {
	return lo.Filter(pool, func(t domain.Team, _ int) bool {
		return t.ID != ref.ID && e.CategoryCompatible(ref, t) && withinGap(ref, t, maxGap)
	})
}

func (e *Engine) opponentWeight(ref, candidate domain.Team, maxGap *int) float64 {
	closeness := 1.0
	if maxGap != nil {
		closeness = float64(max(1, *maxGap-absInt(candidate.Overall-ref.Overall)+1))
	}
	return e.TeamWeight(candidate) * e.PairWeight(ref.ID, candidate.ID) * closeness
}

func (e *Engine) SelectPrimary(pool []domain.Team) (domain.Team, bool) {
	return WeightedPick(e.rng, pool, e.TeamWeight)
}

// SelectOpponent returns false when no team in pool is compatible with ref.
func (e *Engine) SelectOpponent(ref domain.Team, pool []domain.Team, maxGap *int) (domain.Team, bool) {
	candidates := e.Candidates(ref, pool, maxGap)
	return WeightedPick(e.rng, candidates, func(t domain.Team) float64 {
		return e.opponentWeight(ref, t, maxGap)
	})
}

// SelectMatchup draws a primary team and then an opponent for it.
func (e *Engine) SelectMatchup(pool []domain.Team, maxGap *int) (Matchup, bool) {
	if len(pool) < 2 {
		return Matchup{}, false
	}
	primary, ok := e.SelectPrimary(pool)
	if !ok {
		return Matchup{}, false
	}
	opponent, ok := e.SelectOpponent(primary, pool, maxGap)
	if !ok {
		return Matchup{}, false
	}
	return Matchup{SideA: primary, SideB: opponent}, true
}

// ReplaceSide swaps the team on one side of an existing pairing. The other
// side survives when it is still eligible against the replacement; otherwise
// a new opponent is drawn from the pool minus the replaced team and any
// played team.
func (e *Engine) ReplaceSide(current Matchup, side domain.Side, replacement domain.Team, pool []domain.Team, played map[string]bool, maxGap *int) (Matchup, bool) {
	if !side.Valid() {
		return Matchup{}, false
	}
	replaced := current.Team(side)
	opposite := current.Team(side.Opposite())

	inPool := lo.ContainsBy(pool, func(t domain.Team) bool { return t.ID == opposite.ID })
	if opposite.ID != "" &&
		opposite.ID != replacement.ID &&
		inPool &&
		!played[opposite.ID] &&
		e.CategoryCompatible(replacement, opposite) &&
		withinGap(replacement, opposite, maxGap) {
		return current.with(side, replacement), true
	}

	remaining := lo.Filter(pool, func(t domain.Team, _ int) bool {
		return t.ID != replaced.ID && !played[t.ID]
	})
	opponent, ok := e.SelectOpponent(replacement, remaining, maxGap)
	if !ok {
		return Matchup{}, false
	}
	return current.with(side, replacement).with(side.Opposite(), opponent), true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
