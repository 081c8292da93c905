package analytics_test

import (
	"testing"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
)

func TestFilterByWeek(t *testing.T) {
	items := []analytics.Group{
		{ID: "before", DateCreated: date(2024, 1, 6)},
		{ID: "start-week", DateCreated: time.Date(2024, 1, 13, 23, 0, 0, 0, time.UTC)},
		{ID: "middle", DateCreated: date(2024, 1, 17)},
		{ID: "end-week", DateCreated: date(2024, 1, 27)},
		{ID: "after", DateCreated: date(2024, 1, 28)},
	}
	rng := analytics.Range{Start: date(2024, 1, 7), End: date(2024, 1, 21)}

	got := analytics.FilterByWeek(items, rng)

	want := []string{"start-week", "middle", "end-week"}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("[%d]: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestFilterByWeek_Idempotent(t *testing.T) {
	items := []analytics.Request{
		{ID: "a", DateCreated: date(2024, 1, 2)},
		{ID: "b", DateCreated: date(2024, 1, 10)},
		{ID: "c", DateCreated: date(2024, 2, 10)},
	}
	rng := analytics.Range{Start: date(2024, 1, 7), End: date(2024, 2, 4)}

	once := analytics.FilterByWeek(items, rng)
	twice := analytics.FilterByWeek(once, rng)

	if len(once) != len(twice) {
		t.Fatalf("len: once %d, twice %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("[%d]: once %q, twice %q", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestFilterByWeek_ZeroRangeKeepsNothingRecent(t *testing.T) {
	items := []analytics.Request{{ID: "a", DateCreated: date(2024, 1, 2)}}
	if got := analytics.FilterByWeek(items, analytics.Range{}); len(got) != 0 {
		t.Errorf("expected no items, got %d", len(got))
	}
}

func TestRangeFromMillis_SnapsToWeekStart(t *testing.T) {
	start := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

	rng := analytics.RangeFromMillis(start, end, time.UTC)

	if !rng.Start.Equal(date(2024, 1, 7)) {
		t.Errorf("start: got %v, want 2024-01-07", rng.Start)
	}
	if !rng.End.Equal(date(2024, 1, 28)) {
		t.Errorf("end: got %v, want 2024-01-28", rng.End)
	}
}
