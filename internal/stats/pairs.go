package stats

import (
	"math"
	"sort"

	"matchday-tracker/internal/domain"

	"github.com/samber/lo"
)

type PairRecord struct {
	Key           domain.PairKey
	PlayerAName   string
	PlayerBName   string
	Wins          int
	Losses        int
	TotalMatches  int
	WinPercentage float64 // one decimal
}

// PairWinMatrix records how every pair of teammates fared in decided
// matches. Draws and unscored matches are ignored.
func PairWinMatrix(snap *domain.Snapshot) map[domain.PairKey]PairRecord {
	matrix := make(map[domain.PairKey]PairRecord)

	for _, m := range snap.Matches {
		winner := m.Winner()
		if winner == domain.SideNone {
			continue
		}
		for _, side := range []domain.Side{domain.SideA, domain.SideB} {
			roster := lo.Uniq(m.Roster(side))
			for i := 0; i < len(roster); i++ {
				for j := i + 1; j < len(roster); j++ {
					key := domain.NewPairKey(roster[i], roster[j])
					rec, ok := matrix[key]
					if !ok {
						rec = PairRecord{
							Key:         key,
							PlayerAName: snap.PlayerName(key.Lo),
							PlayerBName: snap.PlayerName(key.Hi),
						}
					}
					if winner == side {
						rec.Wins++
					} else {
						rec.Losses++
					}
					rec.TotalMatches = rec.Wins + rec.Losses
					rec.WinPercentage = roundOne(percentage(rec.Wins, rec.TotalMatches))
					matrix[key] = rec
				}
			}
		}
	}

	return matrix
}

// SortedPairs flattens the matrix, best win percentage first.
func SortedPairs(matrix map[domain.PairKey]PairRecord) []PairRecord {
	out := lo.Values(matrix)
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinPercentage != out[j].WinPercentage {
			return out[i].WinPercentage > out[j].WinPercentage
		}
		if out[i].TotalMatches != out[j].TotalMatches {
			return out[i].TotalMatches > out[j].TotalMatches
		}
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
