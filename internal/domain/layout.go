package domain

const (
	MinutesPerDay = 24 * 60
	SlotMinutes   = 30
	SlotsPerDay   = MinutesPerDay / SlotMinutes
)

// DateRow binds a canonical date key ("august 4") to a 1-based destination row number.
type DateRow struct {
	Key string `toml:"key" json:"key"`
	Row int    `toml:"row" json:"row"`
}

// DirectionLayout describes the destination grid of one direction. Dates is ordered:
// the position of a key in the slice is its matrix row index.
type DirectionLayout struct {
	Direction     Direction
	TabPrefix     string
	BufferMinutes int
	Dates         []DateRow
}

func (l DirectionLayout) RowIndex(key string) (int, bool) {
	for i, d := range l.Dates {
		if d.Key == key {
			return i, true
		}
	}
	return -1, false
}

// Color is an RGB colour with components in [0, 1].
type Color struct {
	Red   float64 `toml:"red" json:"red"`
	Green float64 `toml:"green" json:"green"`
	Blue  float64 `toml:"blue" json:"blue"`
}

// Layout is the static shape of source and destination spreadsheets.
type Layout struct {
	Arrivals   DirectionLayout
	Departures DirectionLayout

	TrackerKeyword string
	TrackerRange   string

	// FirstSlotColumn is the 1-based column of slot 0 (column B).
	FirstSlotColumn int
	Highlight       Color

	// ReferenceYear is used for date strings without a year. Zero means the current year.
	ReferenceYear int
}

func (l Layout) For(direction Direction) DirectionLayout {
	if direction.IsDeparture() {
		return l.Departures
	}
	return l.Arrivals
}

// DefaultLayout is the reference deployment: eleven arrival dates and eight departure dates,
// five rows apart starting at row 3.
func DefaultLayout() Layout {
	return Layout{
		Arrivals: DirectionLayout{
			Direction:     DirectionArrival,
			TabPrefix:     "Arrivals ",
			BufferMinutes: 70,
			Dates: []DateRow{
				{Key: "july 29", Row: 3},
				{Key: "july 30", Row: 8},
				{Key: "july 31", Row: 13},
				{Key: "august 1", Row: 18},
				{Key: "august 2", Row: 23},
				{Key: "august 3", Row: 28},
				{Key: "august 4", Row: 33},
				{Key: "august 5", Row: 38},
				{Key: "august 6", Row: 43},
				{Key: "august 7", Row: 48},
				{Key: "august 8", Row: 53},
			},
		},
		Departures: DirectionLayout{
			Direction:     DirectionDeparture,
			TabPrefix:     "Departures ",
			BufferMinutes: -180,
			Dates: []DateRow{
				{Key: "august 5", Row: 3},
				{Key: "august 6", Row: 8},
				{Key: "august 7", Row: 13},
				{Key: "august 8", Row: 18},
				{Key: "august 9", Row: 23},
				{Key: "august 10", Row: 28},
				{Key: "august 11", Row: 33},
				{Key: "august 12", Row: 38},
			},
		},
		TrackerKeyword:  "tracker",
		TrackerRange:    "A1:S1000",
		FirstSlotColumn: 2,
		Highlight:       Color{Red: 0.8, Green: 1, Blue: 0.8},
	}
}
