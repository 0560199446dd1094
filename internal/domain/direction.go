package domain

// Direction tells which half of a tracker record a count came from.
type Direction string

const (
	DirectionArrival   Direction = "arrival"
	DirectionDeparture Direction = "departure"
)

func (d Direction) String() string {
	return string(d)
}

func (d Direction) IsArrival() bool {
	return d == DirectionArrival
}

func (d Direction) IsDeparture() bool {
	return d == DirectionDeparture
}

// Directions lists both directions in the order the destination is processed.
func Directions() []Direction {
	return []Direction{DirectionArrival, DirectionDeparture}
}
