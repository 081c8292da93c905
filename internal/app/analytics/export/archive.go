// internal/app/analytics/export/archive.go
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
)

// FileDate is the unpadded month_day_year suffix used in exported file
// names, e.g. 1_16_2026. It cannot be a time layout: "_2" is the
// space-padded day directive.
func FileDate(date time.Time) string {
	return fmt.Sprintf("%d_%d_%d", int(date.Month()), date.Day(), date.Year())
}

// ArchiveName is the download name of the bundle produced by WriteArchive.
func ArchiveName(date time.Time) string {
	return "all_data_" + FileDate(date) + ".zip"
}

// FileNames returns the names of the four CSV files inside the archive,
// in the order they are written.
func FileNames(date time.Time) []string {
	d := FileDate(date)
	return []string{
		"line_chart_" + d + ".csv",
		"user_counts_" + d + ".csv",
		"days_frequency_" + d + ".csv",
		"quick_stats_" + d + ".csv",
	}
}

// WriteArchive writes all four reports of the dashboard into a zip archive.
func WriteArchive(w io.Writer, d analytics.Dashboard, date time.Time) error {
	names := FileNames(date)
	writers := []func(io.Writer) error{
		func(w io.Writer) error { return WriteLineChart(w, d.LineChart) },
		func(w io.Writer) error { return WriteUserCounts(w, d.UserCounts) },
		func(w io.Writer) error { return WriteDaysFrequency(w, d.DaysFrequency) },
		func(w io.Writer) error { return WriteQuickStats(w, d.QuickStats) },
	}

	zw := zip.NewWriter(w)
	for i, write := range writers {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     names[i],
			Method:   zip.Deflate,
			Modified: date,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", names[i], err)
		}
		if err := write(f); err != nil {
			return fmt.Errorf("write %s: %w", names[i], err)
		}
	}
	return zw.Close()
}
