// internal/app/analytics/filter.go
package analytics

import (
	"time"

	"github.com/samber/lo"
)

// Range is the closed slider window [Start, End]. Both ends are expected
// to be week starts.
type Range struct {
	Start time.Time
	End   time.Time
}

// RangeFromMillis builds a Range from epoch milliseconds, snapping both
// ends to their week start in loc.
func RangeFromMillis(start, end int64, loc *time.Location) Range {
	if loc == nil {
		loc = time.UTC
	}
	return Range{
		Start: WeekStart(time.UnixMilli(start).In(loc)),
		End:   WeekStart(time.UnixMilli(end).In(loc)),
	}
}

// Contains reports whether the week of t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	ws := WeekStart(t)
	return !ws.Before(r.Start) && !ws.After(r.End)
}

// IsZero reports whether neither end has been set.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// FilterByWeek returns the items whose week start lies inside rng,
// inclusive on both ends.
func FilterByWeek[T Dated](items []T, rng Range) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		return rng.Contains(item.Created())
	})
}
