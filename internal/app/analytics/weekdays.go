// internal/app/analytics/weekdays.go
package analytics

import "strings"

// DayLabels are the short weekday names used by the histogram, Sunday first.
var DayLabels = [7]string{"Su", "M", "Tu", "W", "Th", "F", "S"}

// DaysFrequency counts, per weekday, how many riders and how many drivers
// have that day set in their availability mask. Tokens other than "1"
// and positions past Saturday are ignored.
func DaysFrequency(riders, drivers []User) (riderDays, driverDays [7]int) {
	for _, u := range riders {
		addDays(&riderDays, u.DaysWorking)
	}
	for _, u := range drivers {
		addDays(&driverDays, u.DaysWorking)
	}
	return riderDays, driverDays
}

func addDays(counts *[7]int, mask string) {
	if mask == "" {
		return
	}
	for i, day := range strings.Split(mask, ",") {
		if i >= len(counts) {
			return
		}
		if day == "1" {
			counts[i]++
		}
	}
}
