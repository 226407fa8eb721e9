// Package opf models a small bus network and dispatches it with a
// cost-minimizing DC optimal power flow, one linear program per snapshot.
// The LP solving itself is delegated to a backend (gonum simplex or HiGHS);
// this package owns the network bookkeeping and the LP assembly.
package opf

import (
	"fmt"
	"time"
)

// Network is the component container the simulation builds from CSV inputs.
// Components are added by bus name; snapshots must be set before any
// component that carries a per-snapshot series.
type Network struct {
	snapshots []time.Time

	buses    []Bus
	busIndex map[string]int

	lines []Line
	gens  []Generator
	loads []Load
}

type Bus struct {
	Name   string
	VNomKV float64
}

// Line references its endpoint buses by index into Network.buses.
type Line struct {
	Name       string
	Bus0       int
	Bus1       int
	Reactance  float64
	CapacityMW float64
}

// Generator carries per-snapshot availability bounds as per-unit factors of
// PNomMW (p_min_pu/p_max_pu).
type Generator struct {
	Name         string
	Bus          int
	Carrier      string
	PNomMW       float64
	MarginalCost float64
	PMinPU       []float64
	PMaxPU       []float64
}

type Load struct {
	Name   string
	Bus    int
	PSetMW []float64
}

func NewNetwork() *Network {
	return &Network{busIndex: make(map[string]int)}
}

// SetSnapshots fixes the time axis. It must be called before adding
// generators or loads.
func (n *Network) SetSnapshots(ts []time.Time) error {
	if len(ts) == 0 {
		return fmt.Errorf("snapshots must not be empty")
	}
	if len(n.gens) > 0 || len(n.loads) > 0 {
		return fmt.Errorf("snapshots must be set before generators and loads")
	}
	n.snapshots = ts
	return nil
}

func (n *Network) Snapshots() []time.Time { return n.snapshots }

func (n *Network) AddBus(name string, vNomKV float64) error {
	if name == "" {
		return fmt.Errorf("bus name is required")
	}
	if _, ok := n.busIndex[name]; ok {
		return fmt.Errorf("duplicate bus %q", name)
	}
	n.busIndex[name] = len(n.buses)
	n.buses = append(n.buses, Bus{Name: name, VNomKV: vNomKV})
	return nil
}

func (n *Network) AddLine(name, bus0, bus1 string, reactance, capacityMW float64) error {
	i0, ok := n.busIndex[bus0]
	if !ok {
		return fmt.Errorf("line %q: unknown bus %q", name, bus0)
	}
	i1, ok := n.busIndex[bus1]
	if !ok {
		return fmt.Errorf("line %q: unknown bus %q", name, bus1)
	}
	if i0 == i1 {
		return fmt.Errorf("line %q: endpoints must differ", name)
	}
	if reactance <= 0 {
		return fmt.Errorf("line %q: reactance must be > 0", name)
	}
	if capacityMW <= 0 {
		return fmt.Errorf("line %q: capacity must be > 0", name)
	}
	n.lines = append(n.lines, Line{
		Name:       name,
		Bus0:       i0,
		Bus1:       i1,
		Reactance:  reactance,
		CapacityMW: capacityMW,
	})
	return nil
}

// AddGenerator attaches a generator. pMinPU/pMaxPU must have one entry per
// snapshot; nil means 0 / 1 everywhere.
func (n *Network) AddGenerator(name, bus, carrier string, pNomMW, marginalCost float64, pMinPU, pMaxPU []float64) error {
	bi, ok := n.busIndex[bus]
	if !ok {
		return fmt.Errorf("generator %q: unknown bus %q", name, bus)
	}
	if pNomMW <= 0 {
		return fmt.Errorf("generator %q: p_nom must be > 0", name)
	}
	T := len(n.snapshots)
	if T == 0 {
		return fmt.Errorf("generator %q: snapshots are not set", name)
	}
	if pMinPU == nil {
		pMinPU = make([]float64, T)
	}
	if pMaxPU == nil {
		pMaxPU = make([]float64, T)
		for t := range pMaxPU {
			pMaxPU[t] = 1
		}
	}
	if len(pMinPU) != T || len(pMaxPU) != T {
		return fmt.Errorf("generator %q: availability profiles must have %d entries", name, T)
	}
	for t := 0; t < T; t++ {
		if pMinPU[t] > pMaxPU[t] {
			return fmt.Errorf("generator %q: p_min_pu > p_max_pu at snapshot %d", name, t)
		}
	}
	n.gens = append(n.gens, Generator{
		Name:         name,
		Bus:          bi,
		Carrier:      carrier,
		PNomMW:       pNomMW,
		MarginalCost: marginalCost,
		PMinPU:       pMinPU,
		PMaxPU:       pMaxPU,
	})
	return nil
}

func (n *Network) AddLoad(name, bus string, pSetMW []float64) error {
	bi, ok := n.busIndex[bus]
	if !ok {
		return fmt.Errorf("load %q: unknown bus %q", name, bus)
	}
	if len(pSetMW) != len(n.snapshots) {
		return fmt.Errorf("load %q: series must have %d entries", name, len(n.snapshots))
	}
	n.loads = append(n.loads, Load{Name: name, Bus: bi, PSetMW: pSetMW})
	return nil
}

func (n *Network) Buses() []Bus            { return n.buses }
func (n *Network) Lines() []Line           { return n.lines }
func (n *Network) Generators() []Generator { return n.gens }
func (n *Network) Loads() []Load           { return n.loads }

// loadAt returns the total demand at a bus for one snapshot.
func (n *Network) loadAt(bus, t int) float64 {
	total := 0.0
	for _, l := range n.loads {
		if l.Bus == bus {
			total += l.PSetMW[t]
		}
	}
	return total
}
