package model

import (
	"errors"
	"fmt"
)

// Bus is a named node of the electrical network. Generation, demand and
// transmission lines attach to buses by name.
type Bus struct {
	Name string
	// VNomKV is the nominal voltage in kV (informational; the DC dispatch
	// works in per-unit reactances and MW).
	VNomKV float64
}

func (b Bus) Validate() error {
	if b.Name == "" {
		return errors.New("bus name is required")
	}
	return nil
}

// Line is one transmission line between two buses.
// Units:
// - CapacityMW: thermal limit (s_nom), MW
// - LengthKM: km (informational)
// - Reactance, Resistance: per unit
type Line struct {
	Name       string
	Bus0       string
	Bus1       string
	CapacityMW float64
	LengthKM   float64
	Reactance  float64
	Resistance float64
}

func (l Line) Validate() error {
	if l.Name == "" {
		return errors.New("line name is required")
	}
	if l.Bus0 == "" || l.Bus1 == "" {
		return fmt.Errorf("line %q: both endpoint buses are required", l.Name)
	}
	if l.Bus0 == l.Bus1 {
		return fmt.Errorf("line %q: endpoints must be distinct buses", l.Name)
	}
	if l.CapacityMW <= 0 {
		return fmt.Errorf("line %q: CapacityMW must be > 0", l.Name)
	}
	if l.Reactance <= 0 {
		return fmt.Errorf("line %q: Reactance must be > 0", l.Name)
	}
	if l.Resistance < 0 {
		return fmt.Errorf("line %q: Resistance must be >= 0", l.Name)
	}
	return nil
}

// PowerPlant is one generator row for one simulation year. The same plant
// name appears once per year it is in service.
type PowerPlant struct {
	Name       string
	Bus        string
	Fuel       string
	CapacityMW float64
	// CostPerMWh is the plant's own marginal cost. A matching FuelCost row
	// for (Fuel, Year) overrides it.
	CostPerMWh float64
	Year       int
}

func (p PowerPlant) Validate() error {
	if p.Name == "" {
		return errors.New("plant name is required")
	}
	if p.Bus == "" {
		return fmt.Errorf("plant %q: bus is required", p.Name)
	}
	if p.Fuel == "" {
		return fmt.Errorf("plant %q: fuel is required", p.Name)
	}
	if p.CapacityMW <= 0 {
		return fmt.Errorf("plant %q: CapacityMW must be > 0", p.Name)
	}
	if p.CostPerMWh < 0 {
		return fmt.Errorf("plant %q: CostPerMWh must be >= 0", p.Name)
	}
	return nil
}
