package domain

import "time"

// DiscardReason names why a record direction contributed nothing.
type DiscardReason string

const (
	DiscardMissingField      DiscardReason = "missing_field"
	DiscardNullTime          DiscardReason = "null_time"
	DiscardUnparseableTime   DiscardReason = "unparseable_time"
	DiscardUnparseableDate   DiscardReason = "unparseable_date"
	DiscardUnknownAirport    DiscardReason = "unknown_airport"
	DiscardAmbiguousAirport  DiscardReason = "ambiguous_airport"
	DiscardDateOutsideWindow DiscardReason = "date_outside_window"
	DiscardSlotOutOfRange    DiscardReason = "slot_out_of_range"
)

func (r DiscardReason) String() string {
	return string(r)
}

// Diagnostics counts what happened to the records of one run.
type Diagnostics struct {
	RecordsRead int                                 `json:"records_read"`
	Increments  map[Direction]int                   `json:"increments"`
	Discards    map[Direction]map[DiscardReason]int `json:"discards"`
}

func NewDiagnostics() Diagnostics {
	return Diagnostics{
		Increments: make(map[Direction]int),
		Discards:   make(map[Direction]map[DiscardReason]int),
	}
}

func (d *Diagnostics) Increment(direction Direction) {
	d.Increments[direction]++
}

func (d *Diagnostics) Discard(direction Direction, reason DiscardReason) {
	if d.Discards[direction] == nil {
		d.Discards[direction] = make(map[DiscardReason]int)
	}
	d.Discards[direction][reason]++
}

func (d Diagnostics) DiscardCount(direction Direction, reason DiscardReason) int {
	return d.Discards[direction][reason]
}

func (d Diagnostics) TotalDiscards() int {
	total := 0
	for _, reasons := range d.Discards {
		for _, n := range reasons {
			total += n
		}
	}
	return total
}

func (d Diagnostics) TotalIncrements() int {
	total := 0
	for _, n := range d.Increments {
		total += n
	}
	return total
}

type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunReport summarises one full refresh.
type RunReport struct {
	RunID            string      `json:"run_id"`
	Status           RunStatus   `json:"status"`
	Error            string      `json:"error,omitempty"`
	StartedAt        time.Time   `json:"started_at"`
	FinishedAt       time.Time   `json:"finished_at"`
	TrackerTabs      []string    `json:"tracker_tabs"`
	DestinationTabs  []string    `json:"destination_tabs"`
	TabsWritten      int         `json:"tabs_written"`
	HighlightedCells int         `json:"highlighted_cells"`
	Diagnostics      Diagnostics `json:"diagnostics"`
}

func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
