package domain

// TabRef identifies a destination tab.
type TabRef struct {
	Title     string
	SheetID   int64
	Direction Direction
}

// DemandMatrix holds the per-run counts of one destination tab: one row per configured
// date, one column per slot.
type DemandMatrix struct {
	Tab    TabRef
	Dates  []DateRow
	Counts [][]int
}

func NewDemandMatrix(tab TabRef, dates []DateRow) *DemandMatrix {
	counts := make([][]int, len(dates))
	for i := range counts {
		counts[i] = make([]int, SlotsPerDay)
	}

	return &DemandMatrix{
		Tab:    tab,
		Dates:  dates,
		Counts: counts,
	}
}

// Increment adds one to a cell. Out-of-range coordinates are rejected, never clamped.
func (m *DemandMatrix) Increment(rowIndex, slotIndex int) bool {
	if rowIndex < 0 || rowIndex >= len(m.Counts) {
		return false
	}
	if slotIndex < 0 || slotIndex >= SlotsPerDay {
		return false
	}
	m.Counts[rowIndex][slotIndex]++
	return true
}

func (m *DemandMatrix) Total() int {
	total := 0
	for _, row := range m.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Cell addresses one non-zero count inside a matrix.
type Cell struct {
	RowIndex  int
	SlotIndex int
	Count     int
}

func (m *DemandMatrix) NonZeroCells() []Cell {
	var cells []Cell
	for r, row := range m.Counts {
		for s, v := range row {
			if v != 0 {
				cells = append(cells, Cell{RowIndex: r, SlotIndex: s, Count: v})
			}
		}
	}
	return cells
}
