package analytics_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
)

func users(dates ...time.Time) []analytics.User {
	out := make([]analytics.User, len(dates))
	for i, d := range dates {
		out[i] = analytics.User{Role: analytics.RoleRider, Status: analytics.StatusActive, DateCreated: d}
	}
	return out
}

func ptrs(vals ...int) analytics.Series {
	out := make(analytics.Series, len(vals))
	for i, v := range vals {
		if v < 0 {
			continue
		}
		n := v
		out[i] = &n
	}
	return out
}

func assertSeries(t *testing.T, got, want analytics.Series) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		switch {
		case want[i] == nil && got[i] != nil:
			t.Errorf("[%d]: got %d, want nil", i, *got[i])
		case want[i] != nil && got[i] == nil:
			t.Errorf("[%d]: got nil, want %d", i, *want[i])
		case want[i] != nil && *got[i] != *want[i]:
			t.Errorf("[%d]: got %d, want %d", i, *got[i], *want[i])
		}
	}
}

func TestCountCumulativePerWeek(t *testing.T) {
	labels := []time.Time{date(2024, 1, 7), date(2024, 1, 14), date(2024, 1, 21), date(2024, 1, 28)}

	tests := []struct {
		name  string
		items []analytics.User
		want  analytics.Series
	}{
		{"empty", nil, ptrs(0, -1, -1, -1)},
		{"one per week", users(date(2024, 1, 8), date(2024, 1, 15), date(2024, 1, 22), date(2024, 1, 29)), ptrs(1, 2, 3, 4)},
		{"gap week is nil", users(date(2024, 1, 8), date(2024, 1, 9), date(2024, 1, 23)), ptrs(2, -1, 3, -1)},
		{"unsorted input", users(date(2024, 1, 23), date(2024, 1, 8), date(2024, 1, 16)), ptrs(1, 2, 3, -1)},
		{"before first label counted in first", users(date(2023, 12, 1), date(2024, 1, 8)), ptrs(2, -1, -1, -1)},
		{"after last label ignored", users(date(2024, 1, 8), date(2024, 3, 1)), ptrs(1, -1, -1, -1)},
		{"exact week end goes to next week", users(date(2024, 1, 14)), ptrs(0, 1, -1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSeries(t, analytics.CountCumulativePerWeek(tt.items, labels), tt.want)
		})
	}
}

func TestCountCumulativePerWeek_NoLabels(t *testing.T) {
	got := analytics.CountCumulativePerWeek(users(date(2024, 1, 8)), nil)
	if len(got) != 0 {
		t.Errorf("expected empty series, got %d entries", len(got))
	}
}

func TestCountCumulativePerWeek_DoesNotReorderInput(t *testing.T) {
	in := users(date(2024, 1, 23), date(2024, 1, 8))
	analytics.CountCumulativePerWeek(in, []time.Time{date(2024, 1, 7)})
	if !in[0].DateCreated.Equal(date(2024, 1, 23)) {
		t.Error("input slice was reordered")
	}
}

// Non-nil values never decrease, the last one matches the number of items
// created before the end of the last week, and nil appears exactly where
// the running total did not move.
func TestCountCumulativePerWeek_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := date(2024, 1, 7)

	for run := 0; run < 50; run++ {
		n := rng.Intn(40)
		dates := make([]time.Time, n)
		for i := range dates {
			dates[i] = start.Add(time.Duration(rng.Intn(70*24)) * time.Hour)
		}
		items := users(dates...)
		labels := analytics.GenerateWeekLabels(append([]time.Time{start}, dates...))

		got := analytics.CountCumulativePerWeek(items, labels)
		if len(got) != len(labels) {
			t.Fatalf("run %d: len %d, want %d", run, len(got), len(labels))
		}

		end := labels[len(labels)-1].AddDate(0, 0, 7)
		wantLast := 0
		for _, d := range dates {
			if d.Before(end) {
				wantLast++
			}
		}
		if got.Last() != wantLast {
			t.Errorf("run %d: last %d, want %d", run, got.Last(), wantLast)
		}

		totals := make([]int, len(labels))
		for i, l := range labels {
			weekEnd := l.AddDate(0, 0, 7)
			for _, d := range dates {
				if d.Before(weekEnd) {
					totals[i]++
				}
			}
		}
		prev := -1
		for i, v := range got {
			if i > 0 && (v == nil) != (totals[i] == totals[i-1]) {
				t.Errorf("run %d: nil at %d is %v, totals %d -> %d", run, i, v == nil, totals[i-1], totals[i])
			}
			if v == nil {
				continue
			}
			if *v < prev {
				t.Errorf("run %d: value decreased at %d: %d < %d", run, i, *v, prev)
			}
			if *v != totals[i] {
				t.Errorf("run %d: value at %d: got %d, want %d", run, i, *v, totals[i])
			}
			prev = *v
		}
	}
}

func TestSeries_Ints(t *testing.T) {
	got := ptrs(1, -1, 3).Ints(-1)
	want := []int{1, -1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}
