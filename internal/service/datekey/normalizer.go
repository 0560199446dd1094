package datekey

import (
	"strconv"
	"strings"
	"time"
)

type layout struct {
	value   string
	hasYear bool
}

// layouts are tried in order and the first successful parse wins. "29 July" must be
// read as day-month before any other interpretation is attempted. Each strict form is
// followed by its lenient variant: abbreviated month names, single-digit day and month.
var layouts = []layout{
	{value: "2 January", hasYear: false},
	{value: "2 Jan", hasYear: false},
	{value: "02.01.2006", hasYear: true},
	{value: "2.1.2006", hasYear: true},
	{value: "January 2", hasYear: false},
	{value: "Jan 2", hasYear: false},
}

// Normalizer turns sheet date strings into canonical keys such as "august 4".
type Normalizer struct {
	referenceYear int
}

// NewNormalizer creates a Normalizer. Dates without a year are placed in referenceYear;
// zero selects the current year.
func NewNormalizer(referenceYear int) *Normalizer {
	if referenceYear <= 0 {
		referenceYear = time.Now().Year()
	}
	return &Normalizer{referenceYear: referenceYear}
}

// Parse returns the calendar date of raw using the first matching layout.
func (n *Normalizer) Parse(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, l := range layouts {
		parsed, err := time.Parse(l.value, value)
		if err != nil {
			continue
		}
		if l.hasYear {
			return parsed, true
		}

		dated := time.Date(n.referenceYear, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		if dated.Month() != parsed.Month() {
			// 29 February outside a leap reference year
			return time.Time{}, false
		}
		return dated, true
	}

	return time.Time{}, false
}

// Normalize parses raw, moves it by dayShift days and renders the canonical key.
func (n *Normalizer) Normalize(raw string, dayShift int) (string, bool) {
	date, ok := n.Parse(raw)
	if !ok {
		return "", false
	}
	return Key(date.AddDate(0, 0, dayShift)), true
}

// Key renders a date as lowercase full month name, a space and the unpadded day.
func Key(date time.Time) string {
	return strings.ToLower(date.Month().String()) + " " + strconv.Itoa(date.Day())
}
