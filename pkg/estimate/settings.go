package estimate

import (
	"errors"
	"fmt"

	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/packing"
	"github.com/philipparndt/powdercalc/pkg/pricing"
	"github.com/philipparndt/powdercalc/pkg/printer"
)

// Settings are the user-controlled inputs of an estimate. They are passed
// explicitly into every call; nothing is read from package state.
type Settings struct {
	Currency     pricing.Currency
	Pricing      pricing.Table
	IncludeGlaze bool
	Packing      packing.Params
	// Orientation overrides the default flat layout when set.
	Orientation orientation.Type
	Profiles    []printer.Profile
}

// DefaultSettings returns USD prices with glaze, default clearances, flat
// layout and both built-in printers
func DefaultSettings() Settings {
	return Settings{
		Currency:     pricing.USD,
		Pricing:      pricing.DefaultTable(),
		IncludeGlaze: true,
		Packing:      packing.DefaultParams(),
		Orientation:  orientation.Flat,
		Profiles:     printer.All(),
	}
}

// Validate checks that the settings can drive an estimate
func (s Settings) Validate() error {
	var errs []error
	if _, err := s.Pricing.Lookup(s.Currency); err != nil {
		errs = append(errs, err)
	}
	if err := s.Packing.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Orientation != "" {
		if _, err := orientation.ParseType(string(s.Orientation)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.Profiles) == 0 {
		errs = append(errs, errors.New("no printer profiles"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
