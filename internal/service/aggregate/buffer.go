package aggregate

import (
	"strings"
	"time"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

// NullTime is how the tracker renders "no time recorded". It is not midnight.
const NullTime = "0:00:00"

// clockLayouts accept zero-padded minutes and seconds first, then single digits.
var clockLayouts = []string{"15:04:05", "15:4:5"}

// ParseClock reads an H:MM:SS time of day and returns its minute of day. Seconds are dropped.
func ParseClock(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	for _, l := range clockLayouts {
		parsed, err := time.Parse(l, value)
		if err != nil {
			continue
		}
		return parsed.Hour()*60 + parsed.Minute(), true
	}
	return 0, false
}

// ApplyBuffer moves minuteOfDay by bufferMinutes and wraps it into a single day.
// dayShift is the number of calendar days crossed: +1 past midnight, -1 before it.
func ApplyBuffer(minuteOfDay, bufferMinutes int) (shifted int, dayShift int) {
	total := minuteOfDay + bufferMinutes
	dayShift = total / domain.MinutesPerDay
	shifted = total % domain.MinutesPerDay
	if shifted < 0 {
		shifted += domain.MinutesPerDay
		dayShift--
	}
	return shifted, dayShift
}
