package model

import (
	"errors"
	"fmt"
)

// CarrierImport is the synthetic fuel assigned to backup import generators.
const CarrierImport = "import"

// FuelCost is the per-year marginal cost override for a fuel.
type FuelCost struct {
	Fuel       string
	CostPerMWh float64
	Year       int
}

func (f FuelCost) Validate() error {
	if f.Fuel == "" {
		return errors.New("fuel cost: fuel is required")
	}
	if f.CostPerMWh < 0 {
		return fmt.Errorf("fuel cost for %q: CostPerMWh must be >= 0", f.Fuel)
	}
	return nil
}

// FuelConstraint bounds when and how hard plants of a fuel may run:
// plants are available during [HourMin, HourMax] (inclusive, hour of day)
// and their output is bounded by the capacity factors while available.
// Outside the window output is forced to zero.
type FuelConstraint struct {
	Fuel              string
	HourMin           int
	HourMax           int
	MaxCapacityFactor float64
	MinCapacityFactor float64
}

func (f FuelConstraint) Validate() error {
	if f.Fuel == "" {
		return errors.New("fuel constraint: fuel is required")
	}
	if f.HourMin < 0 || f.HourMin > 23 || f.HourMax < 0 || f.HourMax > 23 {
		return fmt.Errorf("fuel constraint for %q: hours must be in 0..23", f.Fuel)
	}
	if f.MaxCapacityFactor < 0 || f.MaxCapacityFactor > 1 {
		return fmt.Errorf("fuel constraint for %q: MaxCapacityFactor must be in [0,1]", f.Fuel)
	}
	if f.MinCapacityFactor < 0 || f.MinCapacityFactor > f.MaxCapacityFactor {
		return fmt.Errorf("fuel constraint for %q: MinCapacityFactor must be in [0,MaxCapacityFactor]", f.Fuel)
	}
	return nil
}

// AvailableAt reports whether the fuel may run at the given hour of day.
// If HourMin <= HourMax the window is a normal same-day range (inclusive).
// If HourMin > HourMax it wraps across midnight.
func (f FuelConstraint) AvailableAt(hour int) bool {
	if f.HourMin <= f.HourMax {
		return hour >= f.HourMin && hour <= f.HourMax
	}
	// wrap
	return hour >= f.HourMin || hour <= f.HourMax
}

// Unconstrained is the profile used when a fuel has no constraint row:
// available around the clock at full capacity.
func Unconstrained(fuel string) FuelConstraint {
	return FuelConstraint{
		Fuel:              fuel,
		HourMin:           0,
		HourMax:           23,
		MaxCapacityFactor: 1,
		MinCapacityFactor: 0,
	}
}
