package config

import (
	"errors"
	"fmt"
)

// ValidateForRun checks everything a refresh run needs before any external call is made.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.Sheets.SourceSheetID == "" {
		errs = append(errs, ErrSourceSheetIDMissing)
	}
	if cfg.Sheets.DestSheetID == "" {
		errs = append(errs, ErrDestSheetIDMissing)
	}
	switch cfg.Sheets.Backend {
	case BackendGoogle, BackendWorkbook:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Sheets.Backend))
	}

	if err := ValidateLayout(cfg.Layout); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
