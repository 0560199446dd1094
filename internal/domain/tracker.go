package domain

// TrackerRecord is one data row of a source tracker tab. Absent cells are empty strings.
type TrackerRecord struct {
	ArrivalDate      string
	ArrivalTime      string
	ArrivalAirport   string
	DepartureDate    string
	DepartureTime    string
	DepartureAirport string
}

// Leg is the direction-specific view of a tracker record.
type Leg struct {
	Direction Direction
	Date      string
	Time      string
	Airport   string
}

func (r TrackerRecord) Leg(direction Direction) Leg {
	if direction.IsDeparture() {
		return Leg{
			Direction: direction,
			Date:      r.DepartureDate,
			Time:      r.DepartureTime,
			Airport:   r.DepartureAirport,
		}
	}

	return Leg{
		Direction: direction,
		Date:      r.ArrivalDate,
		Time:      r.ArrivalTime,
		Airport:   r.ArrivalAirport,
	}
}

// Source column keys after header normalization.
const (
	ColumnArrivalDate      = "arrivaldate"
	ColumnArrivalTime      = "arrivaltime"
	ColumnArrivalAirport   = "arrivalairport"
	ColumnDepartureDate    = "departuredate"
	ColumnDepartureTime    = "departuretime"
	ColumnDepartureAirport = "departureairport"
)

// RequiredColumns are the normalized header keys a tracker tab must carry.
func RequiredColumns() []string {
	return []string{
		ColumnArrivalDate,
		ColumnArrivalTime,
		ColumnArrivalAirport,
		ColumnDepartureDate,
		ColumnDepartureTime,
		ColumnDepartureAirport,
	}
}
