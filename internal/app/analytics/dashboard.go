// internal/app/analytics/dashboard.go
package analytics

import (
	"time"

	"github.com/samber/lo"
)

// DaysFrequencyData is the weekday availability histogram of active users.
type DaysFrequencyData struct {
	Days    [7]string `json:"days"`
	Riders  [7]int    `json:"riderDayCount"`
	Drivers [7]int    `json:"driverDayCount"`
}

// Bounds describes the full selectable slider range and the applied one.
type Bounds struct {
	Min   time.Time `json:"min"`
	Max   time.Time `json:"max"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Dashboard is everything the admin data page shows or exports.
type Dashboard struct {
	QuickStats    QuickStats        `json:"quickStats"`
	UserCounts    UserCounts        `json:"userCounts"`
	DaysFrequency DaysFrequencyData `json:"daysFrequency"`
	LineChart     LineChart         `json:"lineChart"`
	Bounds        Bounds            `json:"bounds"`
}

// BuildDashboard recomputes the whole dashboard from a snapshot. A nil
// rng selects the full history. Quick stats, the cross-tab and the
// weekday histogram ignore the range; only the line chart is windowed.
func BuildDashboard(s Snapshot, rng *Range) Dashboard {
	full := DefaultRange(s.Users, s.Groups, s.Requests)
	applied := full
	if rng != nil {
		applied = *rng
	}

	active := lo.Filter(s.Users, func(u User, _ int) bool { return u.Active() })
	drivers := lo.Filter(active, func(u User, _ int) bool { return u.Role == RoleDriver })
	riders := lo.Filter(active, func(u User, _ int) bool { return u.Role == RoleRider })
	riderDays, driverDays := DaysFrequency(riders, drivers)

	return Dashboard{
		QuickStats: ComputeQuickStats(s.Conversations, s.Groups, s.Users),
		UserCounts: CountUsers(s.Users),
		DaysFrequency: DaysFrequencyData{
			Days:    DayLabels,
			Riders:  riderDays,
			Drivers: driverDays,
		},
		LineChart: BuildLineChart(s.Users, s.Groups, s.Requests, applied),
		Bounds: Bounds{
			Min:   full.Start,
			Max:   full.End,
			Start: applied.Start,
			End:   applied.End,
		},
	}
}
