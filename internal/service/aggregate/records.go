package aggregate

import (
	"strings"
	"unicode"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

// NormalizeHeader lowercases a header cell and strips everything but ASCII letters and digits.
func NormalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RecordsFromRows turns a tracker range (header row first) into records. missing lists the
// required columns the header lacks; their fields stay empty on every record.
func RecordsFromRows(rows [][]string) (records []domain.TrackerRecord, missing []string) {
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == "" {
			continue
		}
		columns[NormalizeHeader(header)] = i
	}

	for _, required := range domain.RequiredColumns() {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}

	cell := func(row []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records = make([]domain.TrackerRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.TrackerRecord{
			ArrivalDate:      cell(row, domain.ColumnArrivalDate),
			ArrivalTime:      cell(row, domain.ColumnArrivalTime),
			ArrivalAirport:   cell(row, domain.ColumnArrivalAirport),
			DepartureDate:    cell(row, domain.ColumnDepartureDate),
			DepartureTime:    cell(row, domain.ColumnDepartureTime),
			DepartureAirport: cell(row, domain.ColumnDepartureAirport),
		})
	}

	return records, missing
}
