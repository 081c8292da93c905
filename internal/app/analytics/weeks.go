// internal/app/analytics/weeks.go
package analytics

import (
	"time"

	"github.com/samber/lo"
)

// FirstDayOfWeek is the week-start convention used for every label,
// filter and export in this package.
const FirstDayOfWeek = time.Sunday

// Week is the length of one bucket.
const Week = 7 * 24 * time.Hour

// WeekStart returns midnight of the first day of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(FirstDayOfWeek) + 7) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// WeeksBetween returns the number of whole weeks from b to a.
// Calendar days are counted so DST shifts do not lose a week.
func WeeksBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ad.Sub(bd).Hours() / 24)
	return days / 7
}

// GenerateWeekLabels returns one week-start per week from the week of the
// earliest date to the week of the latest, inclusive and without gaps.
func GenerateWeekLabels(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return []time.Time{}
	}

	minDate := lo.MinBy(dates, func(a, b time.Time) bool { return a.Before(b) })
	maxDate := lo.MaxBy(dates, func(a, b time.Time) bool { return a.After(b) })

	first := WeekStart(minDate)
	last := WeekStart(maxDate)

	n := WeeksBetween(last, first) + 1
	labels := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		labels = append(labels, first.AddDate(0, 0, 7*i))
	}
	return labels
}
