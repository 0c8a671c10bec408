package stats

import (
	"github.com/samber/lo"
)

type BadgeID string

const (
	BadgeGiantKiller       BadgeID = "giant_killer"
	BadgeCleanSheetKing    BadgeID = "clean_sheet_king"
	BadgeFortress          BadgeID = "fortress"
	BadgeDemolition        BadgeID = "demolition"
	BadgeLightningStrike   BadgeID = "lightning_strike"
	BadgePenaltySpecialist BadgeID = "penalty_specialist"
	BadgeLuckyCharm        BadgeID = "lucky_charm"
	BadgeHotStreak         BadgeID = "hot_streak"
	BadgeUnbeatable        BadgeID = "unbeatable"
	BadgeConsistencyKing   BadgeID = "consistency_king"
	BadgeVersatile         BadgeID = "versatile"
	BadgeDiamondLeague     BadgeID = "diamond_league"
	BadgeUnderdogHero      BadgeID = "underdog_hero"
	BadgeComebackKid       BadgeID = "comeback_kid"
	BadgePerfectionist     BadgeID = "perfectionist"
)

type Badge struct {
	ID          BadgeID
	Name        string
	Emoji       string
	Description string
}

// rule awards a badge either per qualifying match or once from the whole
// replayed history.
type rule struct {
	badge     Badge
	match     func(c *MatchContext) bool
	aggregate func(r *replay) (count int, matchIDs []string)
}

var rules = []rule{
	{
		badge: Badge{BadgeGiantKiller, "Giant Killer", "🗡️", "Beat a team rated at least 5 overall higher"},
		match: func(c *MatchContext) bool {
			return c.Won() && c.ratingsKnown() && c.Opponent.Overall-c.Team.Overall >= 5
		},
	},
	{
		badge: Badge{BadgeCleanSheetKing, "Clean Sheet King", "🧤", "Scored without conceding"},
		match: (*MatchContext).cleanSheet,
	},
	{
		badge: Badge{BadgeFortress, "Fortress", "🏰", "Kept 5 clean sheets"},
		aggregate: func(r *replay) (int, []string) {
			return onceAtLeast(r.matchIDs((*MatchContext).cleanSheet), 5)
		},
	},
	{
		badge: Badge{BadgeDemolition, "Demolition", "💥", "Won by 4 or more goals"},
		match: func(c *MatchContext) bool {
			return c.Won() && c.GoalsFor-c.GoalsAgainst >= 4
		},
	},
	{
		badge: Badge{BadgeLightningStrike, "Lightning Strike", "⚡", "Scored 6 or more goals in a match"},
		match: func(c *MatchContext) bool {
			return c.GoalsFor >= 6
		},
	},
	{
		badge: Badge{BadgePenaltySpecialist, "Penalty Specialist", "🎯", "Won a penalty shootout"},
		match: (*MatchContext).penaltyWin,
	},
	{
		badge: Badge{BadgeLuckyCharm, "Lucky Charm", "🍀", "Won 3 penalty shootouts"},
		aggregate: func(r *replay) (int, []string) {
			return onceAtLeast(r.matchIDs((*MatchContext).penaltyWin), 3)
		},
	},
	{
		badge: Badge{BadgeHotStreak, "Hot Streak", "🔥", "Won 3 matches in a row"},
		aggregate: func(r *replay) (int, []string) {
			if r.streak.LongestWin < 3 {
				return 0, nil
			}
			return 1, r.longestWinRun
		},
	},
	{
		badge: Badge{BadgeUnbeatable, "Unbeatable", "👑", "Won 5 matches in a row"},
		aggregate: func(r *replay) (int, []string) {
			if r.streak.LongestWin < 5 {
				return 0, nil
			}
			return 1, r.longestWinRun
		},
	},
	{
		badge: Badge{BadgeConsistencyKing, "Consistency King", "🎖️", "Won 3 matches with the same team"},
		aggregate: func(r *replay) (int, []string) {
			wins := lo.Filter(r.contexts, func(c MatchContext, _ int) bool { return c.Won() })
			byTeam := lo.GroupBy(wins, func(c MatchContext) string { return c.Team.ID })
			count := 0
			var ids []string
			for _, c := range wins {
				if len(byTeam[c.Team.ID]) >= 3 {
					ids = append(ids, c.Match.ID)
				}
			}
			for _, group := range byTeam {
				if len(group) >= 3 {
					count++
				}
			}
			return count, ids
		},
	},
	{
		badge: Badge{BadgeVersatile, "Versatile", "🎭", "Won with 5 different teams"},
		aggregate: func(r *replay) (int, []string) {
			wins := lo.Filter(r.contexts, func(c MatchContext, _ int) bool { return c.Won() })
			teams := lo.UniqBy(wins, func(c MatchContext) string { return c.Team.ID })
			if len(teams) < 5 {
				return 0, nil
			}
			return 1, lo.Map(wins, func(c MatchContext, _ int) string { return c.Match.ID })
		},
	},
	{
		badge: Badge{BadgeDiamondLeague, "Diamond League", "💎", "Won with a team rated 90 or higher"},
		match: func(c *MatchContext) bool {
			return c.Won() && c.TeamKnown && c.Team.Overall >= 90
		},
	},
	{
		badge: Badge{BadgeUnderdogHero, "Underdog Hero", "🐕", "Won with a team rated below 70"},
		match: func(c *MatchContext) bool {
			return c.Won() && c.TeamKnown && c.Team.Overall < 70
		},
	},
	{
		badge: Badge{BadgeComebackKid, "Comeback Kid", "🔄", "Won right after losing 3 in a row"},
		match: func(c *MatchContext) bool {
			return c.Won() && c.LossStreakBefore >= 3
		},
	},
	{
		badge: Badge{BadgePerfectionist, "Perfectionist", "✨", "Won at least 75% of 10 or more matches"},
		aggregate: func(r *replay) (int, []string) {
			total := len(r.contexts)
			wins := r.matchIDs((*MatchContext).Won)
			if total < 10 || float64(len(wins))/float64(total) < 0.75 {
				return 0, nil
			}
			return 1, wins
		},
	},
}

// Badges lists the catalog in evaluation order.
func Badges() []Badge {
	return lo.Map(rules, func(r rule, _ int) Badge { return r.badge })
}

func onceAtLeast(ids []string, threshold int) (int, []string) {
	if len(ids) < threshold {
		return 0, nil
	}
	return 1, ids
}
