package aggregate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/service/datekey"
	"github.com/shuttleops/demand-scheduler/internal/service/slot"
	"github.com/shuttleops/demand-scheduler/internal/service/tabs"
)

// Aggregator accumulates tracker records into one zero-initialised matrix per registered
// destination tab. It is single-use: create one per run.
type Aggregator struct {
	layout      domain.Layout
	registry    *tabs.Registry
	normalizer  *datekey.Normalizer
	matrices    map[string]*domain.DemandMatrix
	order       []*domain.DemandMatrix
	diagnostics domain.Diagnostics
}

func NewAggregator(layout domain.Layout, registry *tabs.Registry, normalizer *datekey.Normalizer) *Aggregator {
	a := &Aggregator{
		layout:      layout,
		registry:    registry,
		normalizer:  normalizer,
		matrices:    make(map[string]*domain.DemandMatrix),
		diagnostics: domain.NewDiagnostics(),
	}

	for _, tab := range registry.All() {
		m := domain.NewDemandMatrix(tab, layout.For(tab.Direction).Dates)
		a.matrices[tab.Title] = m
		a.order = append(a.order, m)
	}

	return a
}

// Add folds one record into the matrices. Each direction is handled on its own; a
// direction that fails validation is counted and dropped without affecting the other.
func (a *Aggregator) Add(ctx context.Context, record domain.TrackerRecord) {
	a.diagnostics.RecordsRead++

	for _, direction := range domain.Directions() {
		if reason, ok := a.addLeg(ctx, record.Leg(direction)); !ok {
			a.diagnostics.Discard(direction, reason)
			continue
		}
		a.diagnostics.Increment(direction)
	}
}

func (a *Aggregator) addLeg(ctx context.Context, leg domain.Leg) (domain.DiscardReason, bool) {
	layout := a.layout.For(leg.Direction)

	airport := strings.TrimSpace(leg.Airport)
	clock := strings.TrimSpace(leg.Time)
	if airport == "" || clock == "" {
		return domain.DiscardMissingField, false
	}
	if clock == NullTime {
		return domain.DiscardNullTime, false
	}

	minute, ok := ParseClock(clock)
	if !ok {
		return domain.DiscardUnparseableTime, false
	}

	shifted, dayShift := ApplyBuffer(minute, layout.BufferMinutes)

	key, ok := a.normalizer.Normalize(leg.Date, dayShift)
	if !ok {
		return domain.DiscardUnparseableDate, false
	}

	tab, matches, ok := a.registry.Resolve(leg.Direction, airport)
	if !ok {
		if matches > 1 {
			slog.WarnContext(ctx, "airport code matches several destination tabs",
				slog.String("direction", leg.Direction.String()),
				slog.String("airport", airport),
				slog.Int("matches", matches),
			)
			return domain.DiscardAmbiguousAirport, false
		}
		return domain.DiscardUnknownAirport, false
	}

	rowIndex, ok := layout.RowIndex(key)
	if !ok {
		return domain.DiscardDateOutsideWindow, false
	}

	slotIndex, ok := slot.Index(shifted)
	if !ok {
		slog.ErrorContext(ctx, "slot index out of range",
			slog.String("direction", leg.Direction.String()),
			slog.Int("minute_of_day", shifted),
		)
		return domain.DiscardSlotOutOfRange, false
	}

	if !a.matrices[tab.Title].Increment(rowIndex, slotIndex) {
		return domain.DiscardSlotOutOfRange, false
	}

	return "", true
}

// Matrices returns the matrices in registry order: arrival tabs, then departure tabs.
func (a *Aggregator) Matrices() []*domain.DemandMatrix {
	return a.order
}

// Matrix returns the matrix of a destination tab by title.
func (a *Aggregator) Matrix(title string) (*domain.DemandMatrix, bool) {
	m, ok := a.matrices[title]
	return m, ok
}

func (a *Aggregator) Diagnostics() domain.Diagnostics {
	return a.diagnostics
}
