// internal/app/features/admindata/export.go
package admindata

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
	"github.com/dalemusser/carpoolhub/internal/app/analytics/export"
	"go.uber.org/zap"
)

// report is one downloadable CSV of the dashboard.
type report struct {
	index int // position in export.FileNames
	write func(io.Writer, analytics.Dashboard) error
}

var (
	lineChartReport = report{0, func(w io.Writer, d analytics.Dashboard) error {
		return export.WriteLineChart(w, d.LineChart)
	}}
	userCountsReport = report{1, func(w io.Writer, d analytics.Dashboard) error {
		return export.WriteUserCounts(w, d.UserCounts)
	}}
	daysFrequencyReport = report{2, func(w io.Writer, d analytics.Dashboard) error {
		return export.WriteDaysFrequency(w, d.DaysFrequency)
	}}
	quickStatsReport = report{3, func(w io.Writer, d analytics.Dashboard) error {
		return export.WriteQuickStats(w, d.QuickStats)
	}}
)

// ServeLineChartCSV handles GET /admin/data/line_chart.csv.
func (h *Handler) ServeLineChartCSV(w http.ResponseWriter, r *http.Request) {
	h.serveCSV(w, r, lineChartReport)
}

// ServeUserCountsCSV handles GET /admin/data/user_counts.csv.
func (h *Handler) ServeUserCountsCSV(w http.ResponseWriter, r *http.Request) {
	h.serveCSV(w, r, userCountsReport)
}

// ServeDaysFrequencyCSV handles GET /admin/data/days_frequency.csv.
func (h *Handler) ServeDaysFrequencyCSV(w http.ResponseWriter, r *http.Request) {
	h.serveCSV(w, r, daysFrequencyReport)
}

// ServeQuickStatsCSV handles GET /admin/data/quick_stats.csv.
func (h *Handler) ServeQuickStatsCSV(w http.ResponseWriter, r *http.Request) {
	h.serveCSV(w, r, quickStatsReport)
}

func (h *Handler) serveCSV(w http.ResponseWriter, r *http.Request, rep report) {
	filename := export.FileNames(h.today())[rep.index]
	d, ok := h.dashboard(w, r, "admin data export "+filename)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.Log.Error("CSV write failed (BOM)", zap.Error(err))
		return
	}
	if err := rep.write(w, d); err != nil {
		h.Log.Error("CSV write failed", zap.String("file", filename), zap.Error(err))
	}
}

// ServeArchive handles GET /admin/data/all.zip: the four CSVs bundled.
func (h *Handler) ServeArchive(w http.ResponseWriter, r *http.Request) {
	date := h.today()
	d, ok := h.dashboard(w, r, "admin data archive")
	if !ok {
		return
	}

	filename := export.ArchiveName(date)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := export.WriteArchive(w, d, date); err != nil {
		h.Log.Error("archive write failed", zap.String("file", filename), zap.Error(err))
	}
}
