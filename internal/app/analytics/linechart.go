// internal/app/analytics/linechart.go
package analytics

import (
	"time"

	"github.com/samber/lo"
)

// LineChart holds the six cumulative series plotted over time, all the
// same length as Labels.
type LineChart struct {
	Labels         []time.Time `json:"labels"`
	ActiveUsers    Series      `json:"activeUserCount"`
	InactiveUsers  Series      `json:"inactiveUserCount"`
	Groups         Series      `json:"groupCounts"`
	Requests       Series      `json:"requestCount"`
	DriverRequests Series      `json:"driverRequestCount"`
	RiderRequests  Series      `json:"riderRequestCount"`
}

// BuildLineChart filters users, groups and requests to rng and builds the
// cumulative series. Labels always span the full, unfiltered history so
// the time axis does not jump as the slider moves.
func BuildLineChart(users []User, groups []Group, requests []Request, rng Range) LineChart {
	activeUsers, inactiveUsers := lo.FilterReject(users, func(u User, _ int) bool {
		return u.Active()
	})
	driverRequests := lo.Filter(requests, func(r Request, _ int) bool { return r.FromUserRole == RoleDriver })
	riderRequests := lo.Filter(requests, func(r Request, _ int) bool { return r.FromUserRole == RoleRider })

	labels := GenerateWeekLabels(allDates(users, groups, requests))

	return LineChart{
		Labels:         labels,
		ActiveUsers:    CountCumulativePerWeek(FilterByWeek(activeUsers, rng), labels),
		InactiveUsers:  CountCumulativePerWeek(FilterByWeek(inactiveUsers, rng), labels),
		Groups:         CountCumulativePerWeek(FilterByWeek(groups, rng), labels),
		Requests:       CountCumulativePerWeek(FilterByWeek(requests, rng), labels),
		DriverRequests: CountCumulativePerWeek(FilterByWeek(driverRequests, rng), labels),
		RiderRequests:  CountCumulativePerWeek(FilterByWeek(riderRequests, rng), labels),
	}
}

// MinMaxDates returns the earliest and latest creation time across users,
// groups and requests. ok is false when all three are empty.
func MinMaxDates(users []User, groups []Group, requests []Request) (minDate, maxDate time.Time, ok bool) {
	dates := allDates(users, groups, requests)
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate = lo.MinBy(dates, func(a, b time.Time) bool { return a.Before(b) })
	maxDate = lo.MaxBy(dates, func(a, b time.Time) bool { return a.After(b) })
	return minDate, maxDate, true
}

// DefaultRange is the full-history slider range: the week of the first
// record through the week of the last. It is the zero Range when there
// is no data.
func DefaultRange(users []User, groups []Group, requests []Request) Range {
	minDate, maxDate, ok := MinMaxDates(users, groups, requests)
	if !ok {
		return Range{}
	}
	return Range{Start: WeekStart(minDate), End: WeekStart(maxDate)}
}

func allDates(users []User, groups []Group, requests []Request) []time.Time {
	dates := make([]time.Time, 0, len(users)+len(groups)+len(requests))
	dates = append(dates, lo.Map(users, func(u User, _ int) time.Time { return u.DateCreated })...)
	dates = append(dates, lo.Map(groups, func(g Group, _ int) time.Time { return g.DateCreated })...)
	dates = append(dates, lo.Map(requests, func(r Request, _ int) time.Time { return r.DateCreated })...)
	return dates
}
