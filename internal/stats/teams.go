package stats

import (
	"sort"

	"matchday-tracker/internal/domain"
)

type TeamStanding struct {
	TeamID         string
	TeamName       string
	Matches        int
	Wins           int
	Losses         int
	Draws          int
	WinPercentage  float64
	LossPercentage float64
}

// TeamStats aggregates wins and losses per team over scored matches. The
// result is ordered by win percentage, then by matches played.
func TeamStats(snap *domain.Snapshot) []TeamStanding {
	byTeam := make(map[string]*TeamStanding)
	var order []string

	entry := func(id string) *TeamStanding {
		t, ok := byTeam[id]
		if !ok {
			t = &TeamStanding{TeamID: id, TeamName: snap.TeamOrPlaceholder(id).Name}
			byTeam[id] = t
			order = append(order, id)
		}
		return t
	}

	for _, m := range snap.Matches {
		if !m.Scored() {
			continue
		}
		winner := m.Winner()
		for _, side := range []domain.Side{domain.SideA, domain.SideB} {
			t := entry(m.TeamID(side))
			t.Matches++
			switch winner {
			case domain.SideNone:
				t.Draws++
			case side:
				t.Wins++
			default:
				t.Losses++
			}
		}
	}

	out := make([]TeamStanding, 0, len(order))
	for _, id := range order {
		t := byTeam[id]
		t.WinPercentage = percentage(t.Wins, t.Matches)
		t.LossPercentage = percentage(t.Losses, t.Matches)
		out = append(out, *t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WinPercentage != out[j].WinPercentage {
			return out[i].WinPercentage > out[j].WinPercentage
		}
		return out[i].Matches > out[j].Matches
	})
	return out
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
