package diagrecorder

import (
	"sort"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

const (
	outcomeIncrement = "increment"
	outcomeDiscard   = "discard"
)

// diagnosticRow is one count of one run: increments per direction, or discards per
// direction and reason.
type diagnosticRow struct {
	Direction string
	Outcome   string
	Reason    string
	Count     int
}

// diagnosticRows flattens a report into rows ordered by direction, outcome and reason.
// Zero counts are skipped.
func diagnosticRows(report *domain.RunReport) []diagnosticRow {
	var rows []diagnosticRow

	for _, direction := range domain.Directions() {
		if n := report.Diagnostics.Increments[direction]; n > 0 {
			rows = append(rows, diagnosticRow{
				Direction: direction.String(),
				Outcome:   outcomeIncrement,
				Count:     n,
			})
		}

		reasons := report.Diagnostics.Discards[direction]
		keys := make([]string, 0, len(reasons))
		for reason := range reasons {
			keys = append(keys, reason.String())
		}
		sort.Strings(keys)

		for _, reason := range keys {
			n := reasons[domain.DiscardReason(reason)]
			if n == 0 {
				continue
			}
			rows = append(rows, diagnosticRow{
				Direction: direction.String(),
				Outcome:   outcomeDiscard,
				Reason:    reason,
				Count:     n,
			})
		}
	}

	return rows
}
