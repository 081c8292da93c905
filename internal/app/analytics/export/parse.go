// internal/app/analytics/export/parse.go
package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
)

// ErrBadHeader is returned when a file does not start with the expected header.
var ErrBadHeader = errors.New("export: unexpected CSV header")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseLineChartCSV reads a file written by WriteLineChart back into a
// LineChart. Dates are interpreted in loc (UTC when nil). A leading UTF-8
// byte order mark is skipped.
func ParseLineChartCSV(r io.Reader, loc *time.Location) (analytics.LineChart, error) {
	if loc == nil {
		loc = time.UTC
	}
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = len(LineChartHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return analytics.LineChart{}, fmt.Errorf("read line chart csv: %w", err)
	}
	if len(records) == 0 || !slices.Equal(records[0], LineChartHeader) {
		return analytics.LineChart{}, ErrBadHeader
	}

	rows := records[1:]
	chart := analytics.LineChart{
		Labels:         make([]time.Time, len(rows)),
		ActiveUsers:    make(analytics.Series, len(rows)),
		InactiveUsers:  make(analytics.Series, len(rows)),
		Groups:         make(analytics.Series, len(rows)),
		Requests:       make(analytics.Series, len(rows)),
		DriverRequests: make(analytics.Series, len(rows)),
		RiderRequests:  make(analytics.Series, len(rows)),
	}
	series := []analytics.Series{
		chart.ActiveUsers,
		chart.InactiveUsers,
		chart.Groups,
		chart.Requests,
		chart.DriverRequests,
		chart.RiderRequests,
	}

	for i, row := range rows {
		label, err := time.ParseInLocation(DateLayout, row[0], loc)
		if err != nil {
			return analytics.LineChart{}, fmt.Errorf("row %d: date %q: %w", i+2, row[0], err)
		}
		chart.Labels[i] = label
		for j, s := range series {
			field := row[j+1]
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return analytics.LineChart{}, fmt.Errorf("row %d: %s: %w", i+2, LineChartHeader[j+1], err)
			}
			s[i] = &n
		}
	}
	return chart, nil
}
