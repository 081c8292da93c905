// internal/app/analytics/export/export.go
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
)

// DateLayout is how week labels are written in the line chart export.
const DateLayout = "Jan 02 2006"

var (
	LineChartHeader = []string{
		"Date",
		"ActiveUserCount",
		"InactiveUserCount",
		"GroupCounts",
		"RequestCount",
		"DriverRequestCount",
		"RiderRequestCount",
	}
	UserCountsHeader = []string{
		"Type",
		"Active Onboarded",
		"Active Not Onboarded",
		"Inactive Onboarded",
		"Inactive Not Onboarded",
	}
	DaysFrequencyHeader = []string{"Day", "RiderCount", "DriverCount"}
	QuickStatsHeader    = []string{
		"Total Conversations",
		"Total Conversations With > 1 Message",
		"Avg Messages Per Conversation with > 1 Message",
		"Avg Messages",
		"Total Groups",
		"PercentDriversInGroup",
		"PercentRidersInGroup",
		"AverageRidersPerGroup",
	}
)

// WriteLineChart writes one row per week label. A nil series entry is
// written as an empty field.
func WriteLineChart(w io.Writer, c analytics.LineChart) error {
	rows := make([][]string, 0, len(c.Labels)+1)
	rows = append(rows, LineChartHeader)
	for i, label := range c.Labels {
		rows = append(rows, []string{
			label.Format(DateLayout),
			cell(c.ActiveUsers, i),
			cell(c.InactiveUsers, i),
			cell(c.Groups, i),
			cell(c.Requests, i),
			cell(c.DriverRequests, i),
			cell(c.RiderRequests, i),
		})
	}
	return writeAll(w, rows)
}

// WriteUserCounts writes the onboarding/status cross-tab with one row per role.
func WriteUserCounts(w io.Writer, uc analytics.UserCounts) error {
	cells := uc.Cells()
	row := func(name string, pick func(analytics.RoleCounts) int) []string {
		out := []string{name}
		for _, c := range cells {
			out = append(out, strconv.Itoa(pick(c)))
		}
		return out
	}
	return writeAll(w, [][]string{
		UserCountsHeader,
		row("Total", func(c analytics.RoleCounts) int { return c.Total }),
		row("Driver", func(c analytics.RoleCounts) int { return c.Driver }),
		row("Rider", func(c analytics.RoleCounts) int { return c.Rider }),
		row("Viewer", func(c analytics.RoleCounts) int { return c.Viewer }),
	})
}

// WriteDaysFrequency writes one row per weekday, Sunday first.
func WriteDaysFrequency(w io.Writer, df analytics.DaysFrequencyData) error {
	rows := [][]string{DaysFrequencyHeader}
	for i, day := range analytics.DayLabels {
		rows = append(rows, []string{day, strconv.Itoa(df.Riders[i]), strconv.Itoa(df.Drivers[i])})
	}
	return writeAll(w, rows)
}

// WriteQuickStats writes the header and a single row of values.
func WriteQuickStats(w io.Writer, qs analytics.QuickStats) error {
	return writeAll(w, [][]string{
		QuickStatsHeader,
		{
			strconv.Itoa(qs.TotalConversations),
			strconv.Itoa(qs.ConversationsWithMessages),
			formatFloat(qs.AvgMessagesWithMessages),
			formatFloat(qs.AvgMessages),
			strconv.Itoa(qs.GroupCount),
			qs.PercentDriversInGroup,
			qs.PercentRidersInGroup,
			formatFloat(qs.AverageRidersPerGroup),
		},
	})
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	return cw.WriteAll(rows)
}

func cell(s analytics.Series, i int) string {
	if i >= len(s) || s[i] == nil {
		return ""
	}
	return strconv.Itoa(*s[i])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
