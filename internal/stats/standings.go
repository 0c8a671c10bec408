package stats

import (
	"sort"

	"matchday-tracker/internal/domain"
)

type Standing struct {
	PlayerID       string
	PlayerName     string
	Points         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Matches        int
	// TeamOverallSum adds up the overall rating of every team the player
	// fielded, draws included.
	TeamOverallSum int
}

func (s Standing) AverageTeamOverall() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TeamOverallSum) / float64(s.Matches)
}

// Standings folds the scored matches of snap into a ranked player table.
// Players without a scored match are left out.
func Standings(snap *domain.Snapshot) []Standing {
	byPlayer := make(map[string]*Standing)
	var order []string

	entry := func(id string) *Standing {
		s, ok := byPlayer[id]
		if !ok {
			s = &Standing{PlayerID: id, PlayerName: snap.PlayerName(id)}
			byPlayer[id] = s
			order = append(order, id)
		}
		return s
	}

	for _, m := range snap.Matches {
		if !m.Scored() {
			continue
		}
		winner := m.Winner()

		for _, side := range []domain.Side{domain.SideA, domain.SideB} {
			scored, conceded := m.Goals(side)
			overall := snap.TeamOrPlaceholder(m.TeamID(side)).Overall

			for _, playerID := range m.Roster(side) {
				s := entry(playerID)
				s.GoalsFor += scored
				s.GoalsAgainst += conceded
				s.Matches++
				s.TeamOverallSum += overall
				if winner == side {
					s.Points++
				}
			}
		}
	}

	table := make([]Standing, 0, len(order))
	for _, id := range order {
		s := byPlayer[id]
		s.GoalDifference = s.GoalsFor - s.GoalsAgainst
		table = append(table, *s)
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})

	return table
}
