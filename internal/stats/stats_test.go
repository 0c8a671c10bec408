package stats

import (
	"fmt"
	"testing"
	"time"

	"matchday-tracker/internal/domain"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

func catalog() ([]domain.Team, []domain.Player) {
	teams := []domain.Team{
		{ID: "rma", Name: "Real Madrid", League: "La Liga", Overall: 86},
		{ID: "mci", Name: "Manchester City", League: "Premier League", Overall: 87},
		{ID: "bvb", Name: "Dortmund", League: "Bundesliga", Overall: 80},
		{ID: "lee", Name: "Leeds", League: "Championship", Overall: 68},
		{ID: "all", Name: "All Stars", League: "Legends", Overall: 92},
	}
	players := []domain.Player{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Ben"},
		{ID: "p3", Name: "Cem"},
		{ID: "p4", Name: "Dora"},
		{ID: "p5", Name: "Eli"},
	}
	return teams, players
}

type matchOpt func(*domain.Match)

func pens(side domain.Side) matchOpt {
	return func(m *domain.Match) { m.PenaltiesWinner = side }
}

func match(id, teamA, teamB string, scoreA, scoreB int, playersA, playersB []string, at time.Time, opts ...matchOpt) domain.Match {
	m := domain.Match{
		ID:       id,
		TeamAID:  teamA,
		TeamBID:  teamB,
		ScoreA:   lo.ToPtr(scoreA),
		ScoreB:   lo.ToPtr(scoreB),
		PlayedAt: at,
		PlayersA: playersA,
		PlayersB: playersB,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

func unscored(id, teamA, teamB string, playersA, playersB []string) domain.Match {
	return domain.Match{ID: id, TeamAID: teamA, TeamBID: teamB, PlayersA: playersA, PlayersB: playersB, PlayedAt: day0}
}

func snapshot(matches ...domain.Match) *domain.Snapshot {
	teams, players := catalog()
	return domain.NewSnapshot(teams, players, matches)
}

func standingFor(table []Standing, id string) (Standing, bool) {
	return lo.Find(table, func(s Standing) bool { return s.PlayerID == id })
}

func TestStandingsDecidedOnScore(t *testing.T) {
	snap := snapshot(match("m1", "rma", "bvb", 3, 1, []string{"p1"}, []string{"p2"}, day0))

	table := Standings(snap)
	require.Len(t, table, 2)

	winner, _ := standingFor(table, "p1")
	assert.Equal(t, Standing{
		PlayerID: "p1", PlayerName: "Ana", Points: 1, GoalsFor: 3, GoalsAgainst: 1,
		GoalDifference: 2, Matches: 1, TeamOverallSum: 86,
	}, winner)

	loser, _ := standingFor(table, "p2")
	assert.Equal(t, 0, loser.Points)
	assert.Equal(t, 1, loser.GoalsFor)
	assert.Equal(t, 3, loser.GoalsAgainst)
	assert.Equal(t, "p1", table[0].PlayerID)
}

func TestStandingsPenaltyWinner(t *testing.T) {
	snap := snapshot(match("m1", "rma", "mci", 2, 2, []string{"p1", "p3"}, []string{"p2", "p4"}, day0, pens(domain.SideA)))

	table := Standings(snap)
	for _, id := range []string{"p1", "p3"} {
		s, ok := standingFor(table, id)
		require.True(t, ok)
		assert.Equal(t, 1, s.Points, id)
	}
	for _, id := range []string{"p2", "p4"} {
		s, ok := standingFor(table, id)
		require.True(t, ok)
		assert.Equal(t, 0, s.Points, id)
	}
}

func TestStandingsDrawsAndUnscored(t *testing.T) {
	snap := snapshot(
		match("m1", "rma", "mci", 1, 1, []string{"p1"}, []string{"p2"}, day0),
		unscored("m2", "rma", "mci", []string{"p1"}, []string{"p3"}),
	)

	table := Standings(snap)
	require.Len(t, table, 2, "p3 only has an unscored match")

	p1, _ := standingFor(table, "p1")
	assert.Equal(t, 0, p1.Points)
	assert.Equal(t, 1, p1.Matches)
	assert.Equal(t, 86, p1.TeamOverallSum, "draws still count towards team strength")
	assert.InDelta(t, 86.0, p1.AverageTeamOverall(), 1e-9)

	_, ok := standingFor(table, "p5")
	assert.False(t, ok, "players without scored matches are omitted")
}

func TestStandingsOrderAndIdempotence(t *testing.T) {
	snap := snapshot(
		match("m1", "rma", "bvb", 1, 0, []string{"p1"}, []string{"p2"}, day0),
		match("m2", "rma", "bvb", 5, 0, []string{"p3"}, []string{"p4"}, day0),
		match("m3", "mci", "bvb", 2, 1, []string{"p5"}, []string{"p2"}, day0),
		match("m4", "mci", "lee", 4, 0, []string{"p2"}, []string{"p4"}, day0),
	)

	first := Standings(snap)
	second := Standings(snap)
	assert.Equal(t, first, second)

	ids := lo.Map(first, func(s Standing, _ int) string { return s.PlayerID })
	// everyone but p4 has one point; goal difference and goals for decide
	assert.Equal(t, []string{"p3", "p2", "p5", "p1", "p4"}, ids)

	for _, s := range first {
		assert.Equal(t, s.GoalsFor-s.GoalsAgainst, s.GoalDifference)
	}
}

func TestStandingsMissingReferences(t *testing.T) {
	snap := snapshot(match("m1", "ghost", "rma", 2, 0, []string{"nobody"}, []string{"p1"}, day0))

	table := Standings(snap)
	ghost, ok := standingFor(table, "nobody")
	require.True(t, ok)
	assert.Equal(t, domain.UnknownPlayerName, ghost.PlayerName)
	assert.Equal(t, 0, ghost.TeamOverallSum)
	assert.Equal(t, 1, ghost.Points)
}

func TestTeamStats(t *testing.T) {
	snap := snapshot(
		match("m1", "rma", "bvb", 2, 0, nil, nil, day0),
		match("m2", "rma", "bvb", 1, 1, nil, nil, day0),
		match("m3", "bvb", "rma", 0, 0, nil, nil, day0, pens(domain.SideA)),
		unscored("m4", "rma", "lee", nil, nil),
	)

	got := TeamStats(snap)
	byID := lo.KeyBy(got, func(s TeamStanding) string { return s.TeamID })

	rma := byID["rma"]
	assert.Equal(t, 3, rma.Matches)
	assert.Equal(t, 1, rma.Wins)
	assert.Equal(t, 1, rma.Losses)
	assert.Equal(t, 1, rma.Draws)
	assert.InDelta(t, 100.0/3, rma.WinPercentage, 1e-9)

	_, ok := byID["lee"]
	assert.False(t, ok, "unscored matches are ignored")

	for _, s := range got {
		assert.GreaterOrEqual(t, s.WinPercentage, 0.0)
		assert.LessOrEqual(t, s.WinPercentage, 100.0)
		assert.LessOrEqual(t, s.WinPercentage+s.LossPercentage, 100.0+1e-9)
	}

	assert.Equal(t, 0.0, percentage(0, 0))
}

func TestPairWinMatrix(t *testing.T) {
	duo := []string{"p2", "p1"}
	snap := snapshot(
		match("m1", "rma", "bvb", 2, 0, duo, []string{"p3"}, day0),
		match("m2", "rma", "bvb", 0, 1, duo, []string{"p3"}, day0),
		match("m3", "bvb", "rma", 3, 3, []string{"p3"}, duo, day0, pens(domain.SideB)),
		match("m4", "rma", "bvb", 1, 1, duo, []string{"p3"}, day0),
		unscored("m5", "rma", "bvb", duo, []string{"p3"}),
	)

	matrix := PairWinMatrix(snap)
	require.Len(t, matrix, 1)

	rec := matrix[domain.NewPairKey("p1", "p2")]
	assert.Equal(t, "p1", rec.Key.Lo)
	assert.Equal(t, "Ana", rec.PlayerAName)
	assert.Equal(t, 2, rec.Wins)
	assert.Equal(t, 1, rec.Losses)
	assert.Equal(t, 3, rec.TotalMatches)
	assert.Equal(t, 66.7, rec.WinPercentage)

	assert.Len(t, SortedPairs(matrix), 1)
}

func results(playerID string, outcomes string) []domain.Match {
	var out []domain.Match
	for i, o := range outcomes {
		at := day0.Add(time.Duration(i) * time.Hour)
		id := fmt.Sprintf("%s-%d", playerID, i)
		switch o {
		case 'W':
			out = append(out, match(id, "rma", "bvb", 2, 1, []string{playerID}, []string{"p5"}, at))
		case 'L':
			out = append(out, match(id, "rma", "bvb", 1, 2, []string{playerID}, []string{"p5"}, at))
		case 'D':
			out = append(out, match(id, "rma", "bvb", 1, 1, []string{playerID}, []string{"p5"}, at))
		}
	}
	return out
}

func TestReplayStreaks(t *testing.T) {
	matches := results("p1", "WWLWWW")
	streak, contexts := Replay(snapshot(), "p1", matches)

	assert.Len(t, contexts, 6)
	assert.Equal(t, 3, streak.LongestWin)
	assert.Equal(t, 3, streak.CurrentWin)
	assert.Equal(t, 0, streak.CurrentLoss)
	assert.Equal(t, 1, streak.LongestLoss)
	assert.True(t, streak.HotStreak)

	streak, _ = Replay(snapshot(), "p1", results("p1", "WWDLL"))
	assert.Equal(t, 2, streak.LongestWin)
	assert.Equal(t, 0, streak.CurrentWin)
	assert.Equal(t, 2, streak.CurrentLoss)
	assert.False(t, streak.HotStreak)
}

func achievementFor(t *testing.T, all []PlayerAchievements, playerID string, badge BadgeID) (Achievement, bool) {
	t.Helper()
	pa, ok := lo.Find(all, func(p PlayerAchievements) bool { return p.PlayerID == playerID })
	require.True(t, ok, playerID)
	return lo.Find(pa.Achievements, func(a Achievement) bool { return a.ID == badge })
}

func TestAchievementsHotStreakMatches(t *testing.T) {
	// shuffled input must be replayed chronologically
	matches := results("p1", "WWLWWW")
	shuffled := []domain.Match{matches[5], matches[0], matches[3], matches[1], matches[4], matches[2]}

	all := Achievements(snapshot(shuffled...))

	hot, ok := achievementFor(t, all, "p1", BadgeHotStreak)
	require.True(t, ok)
	assert.Equal(t, 1, hot.Count)
	assert.Equal(t, []string{"p1-3", "p1-4", "p1-5"}, hot.MatchIDs)

	_, ok = achievementFor(t, all, "p1", BadgeUnbeatable)
	assert.False(t, ok)
}

func TestAchievementsPerMatchBadges(t *testing.T) {
	snap := snapshot(
		match("giant", "bvb", "mci", 1, 0, []string{"p1"}, []string{"p2"}, day0),
		match("demolition", "rma", "lee", 5, 1, []string{"p1"}, []string{"p2"}, day0.Add(time.Hour)),
		match("lightning", "bvb", "rma", 6, 7, []string{"p1"}, []string{"p2"}, day0.Add(2*time.Hour)),
		match("shootout", "lee", "rma", 2, 2, []string{"p1"}, []string{"p2"}, day0.Add(3*time.Hour), pens(domain.SideA)),
		match("diamond", "all", "rma", 2, 1, []string{"p1"}, []string{"p2"}, day0.Add(4*time.Hour)),
	)

	all := Achievements(snap)

	cases := map[BadgeID][]string{
		BadgeGiantKiller:       {"giant", "shootout"},
		BadgeCleanSheetKing:    {"giant"},
		BadgeDemolition:        {"demolition"},
		BadgeLightningStrike:   {"lightning"},
		BadgePenaltySpecialist: {"shootout"},
		BadgeUnderdogHero:      {"shootout"},
		BadgeDiamondLeague:     {"diamond"},
	}
	for badge, want := range cases {
		got, ok := achievementFor(t, all, "p1", badge)
		if assert.True(t, ok, badge) {
			assert.Equal(t, want, got.MatchIDs, badge)
			assert.Equal(t, len(want), got.Count, badge)
		}
	}

	_, ok := achievementFor(t, all, "p2", BadgeGiantKiller)
	assert.False(t, ok)
}

func TestAchievementsAggregateBadges(t *testing.T) {
	t.Run("comeback kid", func(t *testing.T) {
		all := Achievements(snapshot(results("p1", "LLLW")...))
		got, ok := achievementFor(t, all, "p1", BadgeComebackKid)
		require.True(t, ok)
		assert.Equal(t, []string{"p1-3"}, got.MatchIDs)
	})

	t.Run("consistency king and perfectionist", func(t *testing.T) {
		all := Achievements(snapshot(results("p1", "WWWWWWWWLD")...))

		king, ok := achievementFor(t, all, "p1", BadgeConsistencyKing)
		require.True(t, ok)
		assert.Equal(t, 1, king.Count)
		assert.Len(t, king.MatchIDs, 8)

		perfect, ok := achievementFor(t, all, "p1", BadgePerfectionist)
		require.True(t, ok)
		assert.Len(t, perfect.MatchIDs, 8)

		unbeatable, ok := achievementFor(t, all, "p1", BadgeUnbeatable)
		require.True(t, ok)
		assert.Len(t, unbeatable.MatchIDs, 8)

		_, ok = achievementFor(t, all, "p1", BadgeVersatile)
		assert.False(t, ok)
	})

	t.Run("fortress and lucky charm", func(t *testing.T) {
		var matches []domain.Match
		for i := 0; i < 5; i++ {
			matches = append(matches, match(fmt.Sprintf("cs%d", i), "rma", "bvb", 1, 0, []string{"p1"}, []string{"p2"}, day0.Add(time.Duration(i)*time.Hour)))
		}
		for i := 0; i < 3; i++ {
			matches = append(matches, match(fmt.Sprintf("pk%d", i), "rma", "bvb", 1, 1, []string{"p1"}, []string{"p2"}, day0.Add(time.Duration(10+i)*time.Hour), pens(domain.SideA)))
		}
		all := Achievements(snapshot(matches...))

		fortress, ok := achievementFor(t, all, "p1", BadgeFortress)
		require.True(t, ok)
		assert.Equal(t, 1, fortress.Count)
		assert.Len(t, fortress.MatchIDs, 5)

		lucky, ok := achievementFor(t, all, "p1", BadgeLuckyCharm)
		require.True(t, ok)
		assert.Equal(t, []string{"pk0", "pk1", "pk2"}, lucky.MatchIDs)
	})

	t.Run("versatile", func(t *testing.T) {
		teams := []string{"rma", "mci", "bvb", "lee", "all"}
		var matches []domain.Match
		for i, team := range teams {
			matches = append(matches, match(team, team, "ghost", 1, 0, []string{"p1"}, nil, day0.Add(time.Duration(i)*time.Hour)))
		}
		all := Achievements(snapshot(matches...))
		got, ok := achievementFor(t, all, "p1", BadgeVersatile)
		require.True(t, ok)
		assert.Equal(t, teams, got.MatchIDs)
	})
}

func TestAchievementsOrderingAndExclusion(t *testing.T) {
	var matches []domain.Match
	matches = append(matches, results("p1", "WW")...)
	matches = append(matches, results("p2", "WWWL")...)
	matches = append(matches, results("p3", "LWW")...)
	matches = append(matches, unscored("u1", "rma", "bvb", []string{"p4"}, nil))

	all := Achievements(snapshot(matches...))

	ids := lo.Map(all, func(p PlayerAchievements, _ int) string { return p.PlayerID })
	assert.Equal(t, []string{"p2", "p3", "p1", "p5"}, ids)
	assert.NotContains(t, ids, "p4")
}

func TestBadgesCatalog(t *testing.T) {
	badges := Badges()
	assert.Len(t, badges, 15)
	assert.Len(t, lo.UniqBy(badges, func(b Badge) BadgeID { return b.ID }), 15)
}
