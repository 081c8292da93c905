// internal/app/analytics/cumulative.go
package analytics

import (
	"slices"
	"time"
)

// Series is a cumulative per-week series aligned with a label sequence.
// A nil entry means the running total did not change that week and the
// point should not be plotted.
type Series []*int

// Last returns the final non-nil value, or 0 when there is none.
func (s Series) Last() int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != nil {
			return *s[i]
		}
	}
	return 0
}

// Ints returns the series with nil entries replaced by fill.
func (s Series) Ints(fill int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		if v == nil {
			out[i] = fill
			continue
		}
		out[i] = *v
	}
	return out
}

// CountCumulativePerWeek walks the items in creation order once and, for
// each week label, records the running total of items created before the
// end of that week. Repeated totals after the first label become nil.
func CountCumulativePerWeek[T Dated](items []T, labels []time.Time) Series {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return a.Created().Compare(b.Created())
	})

	counts := make(Series, 0, len(labels))
	cumulative, prev, cursor := 0, 0, 0
	for i, weekStart := range labels {
		weekEnd := weekStart.AddDate(0, 0, 7)
		for cursor < len(sorted) && sorted[cursor].Created().Before(weekEnd) {
			cumulative++
			cursor++
		}

		if i == 0 || cumulative > prev {
			v := cumulative
			counts = append(counts, &v)
		} else {
			counts = append(counts, nil)
		}
		prev = cumulative
	}
	return counts
}
