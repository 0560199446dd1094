package refresh

import (
	"strings"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

// Settings is everything one run needs to know about its spreadsheets.
type Settings struct {
	SourceSheetID string
	DestSheetID   string
	Layout        domain.Layout
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.SourceSheetID) == "" {
		return domain.ErrSourceSheetMissing
	}
	if strings.TrimSpace(s.DestSheetID) == "" {
		return domain.ErrDestinationSheetMissing
	}
	return nil
}

// IsTrackerTab reports whether a source tab holds tracker records.
func (s Settings) IsTrackerTab(title string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(s.Layout.TrackerKeyword))
}
