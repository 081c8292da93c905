// internal/app/analytics/quickstats.go
package analytics

import (
	"math"
	"strconv"

	"github.com/samber/lo"
)

// QuickStats are the scalar summary numbers shown above the charts.
//
// Every ratio uses a zero policy: when the denominator is 0 the ratio is 0
// (percentages render as "0%").
type QuickStats struct {
	TotalConversations        int     `json:"totalConversations"`
	ConversationsWithMessages int     `json:"conversationsWithMessages"`
	AvgMessagesWithMessages   float64 `json:"avgMessagesWithMessages"`
	AvgMessages               float64 `json:"avgMessages"`
	GroupCount                int     `json:"groupCount"`
	PercentDriversInGroup     string  `json:"percentDriversInGroup"`
	PercentRidersInGroup      string  `json:"percentRidersInGroup"`
	AverageRidersPerGroup     float64 `json:"averageRidersPerGroup"`
}

// ComputeQuickStats reduces the full, unfiltered collections to QuickStats.
func ComputeQuickStats(conversations []Conversation, groups []Group, users []User) QuickStats {
	withMessages := lo.Filter(conversations, func(c Conversation, _ int) bool {
		return c.MessageCount > 1
	})
	sumMessages := func(cs []Conversation) int {
		return lo.SumBy(cs, func(c Conversation) int { return c.MessageCount })
	}

	groupCount := lo.CountBy(groups, func(g Group) bool { return g.UserCount > 1 })

	active := lo.Filter(users, func(u User, _ int) bool { return u.Active() })
	totalDrivers := lo.CountBy(active, func(u User) bool { return u.Role == RoleDriver })
	// Everyone active who is not a driver is counted on the rider side.
	totalRiders := len(active) - totalDrivers
	driversInGroup := lo.CountBy(active, func(u User) bool { return u.Role == RoleDriver && u.InGroup() })
	ridersInGroup := lo.CountBy(active, func(u User) bool { return u.Role == RoleRider && u.InGroup() })

	return QuickStats{
		TotalConversations:        len(conversations),
		ConversationsWithMessages: len(withMessages),
		AvgMessagesWithMessages:   safeRatio(sumMessages(withMessages), len(withMessages)),
		AvgMessages:               safeRatio(sumMessages(conversations), len(conversations)),
		GroupCount:                groupCount,
		PercentDriversInGroup:     Percent(driversInGroup, totalDrivers),
		PercentRidersInGroup:      Percent(ridersInGroup, totalRiders),
		AverageRidersPerGroup:     RoundTo(safeRatio(ridersInGroup, groupCount), 1),
	}
}

// Percent renders part/whole as a percentage with at most one decimal
// digit, e.g. "12.5%" or "50%". A zero whole yields "0%".
func Percent(part, whole int) string {
	v := math.Round(safeRatio(part, whole)*1000) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// RoundTo rounds v half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func safeRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// RoleCounts is one column of the onboarding/status cross-tab.
type RoleCounts struct {
	Total  int `json:"total"`
	Driver int `json:"driver"`
	Rider  int `json:"rider"`
	Viewer int `json:"viewer"`
}

// UserCounts is the 4-cell onboarding × status cross-tab.
type UserCounts struct {
	ActiveOnboarded      RoleCounts `json:"activeOnboarded"`
	ActiveNotOnboarded   RoleCounts `json:"activeNotOnboarded"`
	InactiveOnboarded    RoleCounts `json:"inactiveOnboarded"`
	InactiveNotOnboarded RoleCounts `json:"inactiveNotOnboarded"`
}

// Cells returns the four columns in export order.
func (c UserCounts) Cells() [4]RoleCounts {
	return [4]RoleCounts{c.ActiveOnboarded, c.ActiveNotOnboarded, c.InactiveOnboarded, c.InactiveNotOnboarded}
}

// CountUsers builds the cross-tab. Viewer is the residual of each cell,
// so Driver+Rider+Viewer always equals Total.
func CountUsers(users []User) UserCounts {
	cell := func(active, onboarded bool) RoleCounts {
		in := lo.Filter(users, func(u User, _ int) bool {
			return u.Active() == active && u.IsOnboarded == onboarded
		})
		rc := RoleCounts{
			Total:  len(in),
			Driver: lo.CountBy(in, func(u User) bool { return u.Role == RoleDriver }),
			Rider:  lo.CountBy(in, func(u User) bool { return u.Role == RoleRider }),
		}
		rc.Viewer = rc.Total - rc.Driver - rc.Rider
		return rc
	}

	return UserCounts{
		ActiveOnboarded:      cell(true, true),
		ActiveNotOnboarded:   cell(true, false),
		InactiveOnboarded:    cell(false, true),
		InactiveNotOnboarded: cell(false, false),
	}
}
