package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/sheetrange"
)

type layoutFile struct {
	TrackerKeyword  string        `toml:"tracker_keyword"`
	TrackerRange    string        `toml:"tracker_range"`
	FirstSlotColumn int           `toml:"first_slot_column"`
	ReferenceYear   int           `toml:"reference_year"`
	Highlight       domain.Color  `toml:"highlight"`
	Arrivals        directionFile `toml:"arrivals"`
	Departures      directionFile `toml:"departures"`
}

type directionFile struct {
	TabPrefix     string           `toml:"tab_prefix"`
	BufferMinutes int              `toml:"buffer_minutes"`
	Dates         []domain.DateRow `toml:"dates"`
}

func toLayoutFile(l domain.Layout) layoutFile {
	return layoutFile{
		TrackerKeyword:  l.TrackerKeyword,
		TrackerRange:    l.TrackerRange,
		FirstSlotColumn: l.FirstSlotColumn,
		ReferenceYear:   l.ReferenceYear,
		Highlight:       l.Highlight,
		Arrivals: directionFile{
			TabPrefix:     l.Arrivals.TabPrefix,
			BufferMinutes: l.Arrivals.BufferMinutes,
			Dates:         l.Arrivals.Dates,
		},
		Departures: directionFile{
			TabPrefix:     l.Departures.TabPrefix,
			BufferMinutes: l.Departures.BufferMinutes,
			Dates:         l.Departures.Dates,
		},
	}
}

func (f layoutFile) layout() domain.Layout {
	return domain.Layout{
		Arrivals: domain.DirectionLayout{
			Direction:     domain.DirectionArrival,
			TabPrefix:     f.Arrivals.TabPrefix,
			BufferMinutes: f.Arrivals.BufferMinutes,
			Dates:         f.Arrivals.Dates,
		},
		Departures: domain.DirectionLayout{
			Direction:     domain.DirectionDeparture,
			TabPrefix:     f.Departures.TabPrefix,
			BufferMinutes: f.Departures.BufferMinutes,
			Dates:         f.Departures.Dates,
		},
		TrackerKeyword:  strings.ToLower(f.TrackerKeyword),
		TrackerRange:    f.TrackerRange,
		FirstSlotColumn: f.FirstSlotColumn,
		Highlight:       f.Highlight,
		ReferenceYear:   f.ReferenceYear,
	}
}

// LoadLayout returns the reference layout overlaid with the TOML file at path.
// An empty path returns the reference layout unchanged.
func LoadLayout(path string) (domain.Layout, error) {
	if path == "" {
		return domain.DefaultLayout(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	return ParseLayout(data)
}

// ParseLayout decodes a TOML layout document on top of the reference layout. Keys that are
// present replace the default entirely, so a dates array replaces every date row of that direction.
func ParseLayout(data []byte) (domain.Layout, error) {
	defaults := toLayoutFile(domain.DefaultLayout())
	file := defaults
	file.Arrivals.Dates = nil
	file.Departures.Dates = nil

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return domain.Layout{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	if file.Arrivals.Dates == nil {
		file.Arrivals.Dates = defaults.Arrivals.Dates
	}
	if file.Departures.Dates == nil {
		file.Departures.Dates = defaults.Departures.Dates
	}

	layout := file.layout()
	if err := ValidateLayout(layout); err != nil {
		return domain.Layout{}, err
	}

	return layout, nil
}

func ValidateLayout(layout domain.Layout) error {
	var errs []error

	if layout.TrackerKeyword == "" {
		errs = append(errs, errors.New("tracker_keyword must not be empty"))
	}
	if _, err := sheetrange.ParseCells(layout.TrackerRange); err != nil {
		errs = append(errs, fmt.Errorf("tracker_range: %w", err))
	}
	if layout.FirstSlotColumn < 1 {
		errs = append(errs, errors.New("first_slot_column must be at least 1"))
	}

	for _, c := range []float64{layout.Highlight.Red, layout.Highlight.Green, layout.Highlight.Blue} {
		if c < 0 || c > 1 {
			errs = append(errs, errors.New("highlight components must be within [0, 1]"))
			break
		}
	}

	for _, d := range []domain.DirectionLayout{layout.Arrivals, layout.Departures} {
		if err := validateDirection(d); err != nil {
			errs = append(errs, err)
		}
	}

	if prefixesOverlap(layout.Arrivals.TabPrefix, layout.Departures.TabPrefix) {
		errs = append(errs, errors.New("arrival and departure tab prefixes must not be prefixes of each other"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, errors.Join(errs...))
	}

	return nil
}

// prefixesOverlap reports whether one title prefix would also match the other's tabs.
func prefixesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

func validateDirection(d domain.DirectionLayout) error {
	var errs []error

	if d.TabPrefix == "" {
		errs = append(errs, fmt.Errorf("%s tab_prefix must not be empty", d.Direction))
	}
	if d.BufferMinutes <= -domain.MinutesPerDay || d.BufferMinutes >= domain.MinutesPerDay {
		errs = append(errs, fmt.Errorf("%s buffer_minutes must be within one day", d.Direction))
	}
	if len(d.Dates) == 0 {
		errs = append(errs, fmt.Errorf("%s dates must not be empty", d.Direction))
	}

	keys := make(map[string]struct{}, len(d.Dates))
	rows := make(map[int]struct{}, len(d.Dates))
	for _, date := range d.Dates {
		if date.Key == "" || date.Key != strings.ToLower(date.Key) {
			errs = append(errs, fmt.Errorf("%s date key %q must be lowercase and non-empty", d.Direction, date.Key))
		}
		if date.Row < 1 {
			errs = append(errs, fmt.Errorf("%s date %q has invalid row %d", d.Direction, date.Key, date.Row))
		}
		if _, dup := keys[date.Key]; dup {
			errs = append(errs, fmt.Errorf("%s date %q is listed twice", d.Direction, date.Key))
		}
		if _, dup := rows[date.Row]; dup {
			errs = append(errs, fmt.Errorf("%s row %d is used twice", d.Direction, date.Row))
		}
		keys[date.Key] = struct{}{}
		rows[date.Row] = struct{}{}
	}

	return errors.Join(errs...)
}
