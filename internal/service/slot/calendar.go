package slot

import (
	"fmt"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

var labels = buildLabels()

func buildLabels() []string {
	out := make([]string, domain.SlotsPerDay)
	for i := range out {
		start := i * domain.SlotMinutes
		end := (start + domain.SlotMinutes) % domain.MinutesPerDay
		out[i] = clock(start) + "-" + clock(end)
	}
	return out
}

func clock(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// Labels returns the 48 half-hour labels, "00:00-00:30" through "23:30-00:00".
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Index maps a minute of day to its slot. ok is false when the result falls outside
// [0, SlotsPerDay); the caller must drop the contribution rather than clamp it.
func Index(minuteOfDay int) (index int, ok bool) {
	if minuteOfDay < 0 {
		// floor division for negative inputs
		index = (minuteOfDay - domain.SlotMinutes + 1) / domain.SlotMinutes
	} else {
		index = minuteOfDay / domain.SlotMinutes
	}
	return index, index >= 0 && index < domain.SlotsPerDay
}
