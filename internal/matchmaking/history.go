package matchmaking

import (
	"time"

	"matchday-tracker/internal/domain"
)

// Stats summarises how often and how recently teams and team pairs were
// played. It is rebuilt from the full history on every request.
type Stats struct {
	TeamCount      map[string]int
	TeamLastPlayed map[string]time.Time
	PairCount      map[domain.PairKey]int
	PairLastPlayed map[domain.PairKey]time.Time
	MaxTeamCount   int
}

// BuildStats scans the history once. Every match counts as usage whether or
// not it was scored; matches without a valid play time still count but do
// not move the last-played instants.
func BuildStats(matches []domain.Match) *Stats {
	s := &Stats{
		TeamCount:      make(map[string]int),
		TeamLastPlayed: make(map[string]time.Time),
		PairCount:      make(map[domain.PairKey]int),
		PairLastPlayed: make(map[domain.PairKey]time.Time),
	}

	for _, m := range matches {
		for _, id := range []string{m.TeamAID, m.TeamBID} {
			s.TeamCount[id]++
			if s.TeamCount[id] > s.MaxTeamCount {
				s.MaxTeamCount = s.TeamCount[id]
			}
			touch(s.TeamLastPlayed, id, m.PlayedAt)
		}

		key := domain.NewPairKey(m.TeamAID, m.TeamBID)
		s.PairCount[key]++
		touch(s.PairLastPlayed, key, m.PlayedAt)
	}

	return s
}

func touch[K comparable](last map[K]time.Time, key K, at time.Time) {
	if at.IsZero() {
		return
	}
	if prev, ok := last[key]; !ok || at.After(prev) {
		last[key] = at
	}
}
