// internal/app/messaging/days.go
package messaging

import "time"

// DayGroup is a run of consecutive messages sent on the same calendar day.
type DayGroup struct {
	Date     time.Time `json:"date"`
	Messages []Message `json:"messages"`
}

// GroupByDay splits messages into runs of the same calendar day in loc,
// preserving order. A day that appears again after a different day starts
// a new group. Date is midnight of the group's day.
func GroupByDay(messages []Message, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}
	var groups []DayGroup
	for _, m := range messages {
		day := midnight(m.DateCreated.In(loc))
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Messages = append(groups[n-1].Messages, m)
			continue
		}
		groups = append(groups, DayGroup{Date: day, Messages: []Message{m}})
	}
	return groups
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
