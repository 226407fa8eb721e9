package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"grid-dispatch/internal/config"
	"grid-dispatch/internal/data"
	"grid-dispatch/internal/model"
	"grid-dispatch/internal/opf"
)

// Engine runs dispatch simulations: one network build + solve per year
// (or per date window), results aggregated by fuel.
type Engine struct {
	cfg    *config.Config
	solver opf.Solver

	// OnYear, when set, is called after each year finishes (progress bars).
	OnYear func(YearResult)
}

func New(cfg *config.Config, solver opf.Solver) *Engine {
	return &Engine{cfg: cfg, solver: solver}
}

// RunYears simulates each year in order. Infeasible or empty years are
// recorded and the run continues, matching the year-by-year study loop.
func (e *Engine) RunYears(inputs *data.Inputs, years []int) (*Result, error) {
	if len(years) == 0 {
		return nil, errors.New("no years to simulate")
	}
	res := &Result{Scenario: e.cfg.Scenario.Name, Years: make([]YearResult, 0, len(years))}
	for _, year := range years {
		yr := e.runYear(inputs, year)
		res.Years = append(res.Years, yr)
		if e.OnYear != nil {
			e.OnYear(yr)
		}
	}
	return res, nil
}

// RunWindow simulates [start, end] inclusive, using the start year's plant
// fleet and fuel costs. The window is capped by config (default 10 days).
func (e *Engine) RunWindow(inputs *data.Inputs, start, end time.Time) (*Result, error) {
	if end.Before(start) {
		return nil, errors.New("window end is before start")
	}
	maxDays := e.cfg.WindowMaxDays
	if end.Sub(start) > time.Duration(maxDays)*24*time.Hour {
		return nil, fmt.Errorf("maximum allowed period is %d days", maxDays)
	}

	demand := inputs.Demand.FilterRange(start, end)
	if demand.Len() == 0 {
		return nil, fmt.Errorf("no demand data between %s and %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	yr := e.solve(inputs, start.Year(), demand)
	return &Result{Scenario: e.cfg.Scenario.Name, Years: []YearResult{yr}}, nil
}

func (e *Engine) runYear(inputs *data.Inputs, year int) YearResult {
	demand := inputs.Demand.FilterYear(year)
	if demand.Len() == 0 {
		log.Warn().Int("year", year).Msg("no demand data for year")
		return InfeasibleYear(year, "no demand data for year")
	}
	return e.solve(inputs, year, demand)
}

func (e *Engine) solve(inputs *data.Inputs, year int, demand model.DemandSeries) YearResult {
	network, err := e.buildNetwork(inputs, year, demand)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("network build failed")
		return InfeasibleYear(year, err.Error())
	}

	log.Info().
		Int("year", year).
		Int("snapshots", demand.Len()).
		Int("generators", len(network.Generators())).
		Str("solver", e.solver.Name()).
		Msg("optimizing dispatch")

	started := time.Now()
	dispatch, err := e.solver.Solve(network)
	solveDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		if errors.Is(err, opf.ErrInfeasible) {
			log.Warn().Int("year", year).Msg("no feasible dispatch")
			infeasibleYears.Inc()
			return InfeasibleYear(year, "no feasible dispatch")
		}
		log.Error().Err(err).Int("year", year).Msg("solver failed")
		return InfeasibleYear(year, err.Error())
	}
	yearsSolved.Inc()
	snapshotsSolved.Add(float64(demand.Len()))

	yr := YearResult{
		Year:         year,
		Snapshots:    demand.Timestamps,
		GenByFuel:    aggregateByFuel(network, dispatch),
		Demand:       make([]float64, demand.Len()),
		CostMillions: dispatch.Objective / 1e6,
		Feasible:     true,
	}
	for i := range yr.Demand {
		yr.Demand[i] = demand.TotalAt(i)
	}

	log.Info().
		Int("year", year).
		Float64("cost_millions", yr.CostMillions).
		Float64("peak_demand_mw", yr.PeakDemandMW()).
		Msg("year optimized")
	return yr
}

// buildNetwork assembles the opf network for one year: scenario buses,
// lines, the year's plant fleet with fuel availability profiles, demand
// loads and (unless disabled) backup import generators at every bus.
func (e *Engine) buildNetwork(inputs *data.Inputs, year int, demand model.DemandSeries) (*opf.Network, error) {
	cfg := e.cfg
	n := opf.NewNetwork()
	if err := n.SetSnapshots(demand.Timestamps); err != nil {
		return nil, err
	}

	for _, bus := range cfg.Scenario.Buses {
		if err := n.AddBus(bus, cfg.Network.VNomKV); err != nil {
			return nil, err
		}
	}
	for _, line := range inputs.Lines {
		if err := n.AddLine(line.Name, line.Bus0, line.Bus1, line.Reactance, line.CapacityMW); err != nil {
			return nil, err
		}
	}

	for _, plant := range inputs.Plants {
		if plant.Year != year {
			continue
		}
		cost := inputs.FuelCostFor(plant.Fuel, year, plant.CostPerMWh)
		constraint := inputs.ConstraintFor(plant.Fuel)
		pMin, pMax := availabilityProfiles(constraint, demand.Timestamps)
		if err := n.AddGenerator(plant.Name, plant.Bus, plant.Fuel, plant.CapacityMW, cost, pMin, pMax); err != nil {
			return nil, err
		}
	}

	for _, bus := range cfg.Scenario.Buses {
		series, ok := demand.ByBus[bus]
		if !ok {
			return nil, fmt.Errorf("demand file has no column for bus %q", bus)
		}
		if err := n.AddLoad(bus+"_load", bus, series); err != nil {
			return nil, err
		}
	}

	if !cfg.Network.DisableImports {
		for _, bus := range cfg.Scenario.Buses {
			err := n.AddGenerator(bus+"_import", bus, model.CarrierImport,
				cfg.Network.ImportCapacityMW, cfg.Network.ImportCostPerMWh, nil, nil)
			if err != nil {
				return nil, err
			}
		}
	}

	return n, nil
}

// availabilityProfiles expands a fuel constraint into per-snapshot
// p_min_pu/p_max_pu series: the capacity factors inside the hour window,
// zero outside it.
func availabilityProfiles(c model.FuelConstraint, snapshots []time.Time) (pMin, pMax []float64) {
	pMin = make([]float64, len(snapshots))
	pMax = make([]float64, len(snapshots))
	for i, ts := range snapshots {
		if c.AvailableAt(ts.Hour()) {
			pMin[i] = c.MinCapacityFactor
			pMax[i] = c.MaxCapacityFactor
		}
	}
	return pMin, pMax
}

// aggregateByFuel sums generator outputs per carrier for every snapshot.
func aggregateByFuel(n *opf.Network, d *opf.Dispatch) map[string][]float64 {
	T := len(d.GenP)
	out := map[string][]float64{}
	for g, gen := range n.Generators() {
		series, ok := out[gen.Carrier]
		if !ok {
			series = make([]float64, T)
			out[gen.Carrier] = series
		}
		for t := 0; t < T; t++ {
			series[t] += d.GenP[t][g]
		}
	}
	return out
}
