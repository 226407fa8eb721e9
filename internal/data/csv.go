package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"grid-dispatch/internal/config"
	"grid-dispatch/internal/model"
)

// Inputs bundles everything the simulation consumes.
type Inputs struct {
	Demand          model.DemandSeries
	Plants          []model.PowerPlant
	Lines           []model.Line
	FuelCosts       []model.FuelCost
	FuelConstraints []model.FuelConstraint
}

// LoadInputs reads all input files named by the config. FuelCosts and
// FuelConstraints are optional (missing path means empty).
func LoadInputs(cfg *config.Config) (*Inputs, error) {
	demand, err := LoadDemandCSV(cfg.Paths.Demand)
	if err != nil {
		return nil, fmt.Errorf("load demand: %w", err)
	}
	plants, err := LoadPlantsCSV(cfg.Paths.Plants)
	if err != nil {
		return nil, fmt.Errorf("load plants: %w", err)
	}
	lines, err := LoadLinesCSV(cfg.Paths.Lines)
	if err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}
	in := &Inputs{Demand: demand, Plants: plants, Lines: lines}
	if cfg.Paths.FuelCosts != "" {
		in.FuelCosts, err = LoadFuelCostsCSV(cfg.Paths.FuelCosts)
		if err != nil {
			return nil, fmt.Errorf("load fuel costs: %w", err)
		}
	}
	if cfg.Paths.FuelConstraints != "" {
		in.FuelConstraints, err = LoadFuelConstraintsCSV(cfg.Paths.FuelConstraints)
		if err != nil {
			return nil, fmt.Errorf("load fuel constraints: %w", err)
		}
	}
	return in, nil
}

// FuelCostFor returns the (fuel, year) cost override, or fallback when no
// row matches.
func (in *Inputs) FuelCostFor(fuel string, year int, fallback float64) float64 {
	for _, fc := range in.FuelCosts {
		if fc.Fuel == fuel && fc.Year == year {
			return fc.CostPerMWh
		}
	}
	return fallback
}

// ConstraintFor returns the constraint row for a fuel, or the unconstrained
// profile when none exists.
func (in *Inputs) ConstraintFor(fuel string) model.FuelConstraint {
	for _, fc := range in.FuelConstraints {
		if fc.Fuel == fuel {
			return fc
		}
	}
	return model.Unconstrained(fuel)
}

// timestampLayouts covers the formats the demand file shows up in: pandas'
// default to_csv output, with seconds-less and RFC3339 fallbacks.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// LoadDemandCSV reads the hourly demand file. Columns are discovered from
// the header: one "timestamp" column plus one column per bus, in any order.
func LoadDemandCSV(path string) (model.DemandSeries, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return model.DemandSeries{}, err
	}

	tsCol := -1
	busCols := map[string]int{}
	for i, name := range header {
		if strings.EqualFold(name, "timestamp") {
			tsCol = i
			continue
		}
		busCols[name] = i
	}
	if tsCol < 0 {
		return model.DemandSeries{}, fmt.Errorf("%s: missing timestamp column", path)
	}
	if len(busCols) == 0 {
		return model.DemandSeries{}, fmt.Errorf("%s: no bus columns", path)
	}

	out := model.DemandSeries{
		Timestamps: make([]time.Time, 0, len(rows)),
		ByBus:      make(map[string][]float64, len(busCols)),
	}
	for bus := range busCols {
		out.ByBus[bus] = make([]float64, 0, len(rows))
	}

	for n, row := range rows {
		ts, err := parseTimestamp(row[tsCol])
		if err != nil {
			return model.DemandSeries{}, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		out.Timestamps = append(out.Timestamps, ts)
		for bus, col := range busCols {
			v, err := parseFloat(row[col])
			if err != nil {
				return model.DemandSeries{}, fmt.Errorf("%s row %d, column %s: %w", path, n+2, bus, err)
			}
			out.ByBus[bus] = append(out.ByBus[bus], v)
		}
	}

	if err := out.Validate(); err != nil {
		return model.DemandSeries{}, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// LoadPlantsCSV reads the power plant file. Duplicate (name, year) rows are
// dropped, first row wins.
func LoadPlantsCSV(path string) ([]model.PowerPlant, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := columnIndex(header, "name", "bus", "fuel", "capacity", "cost", "year")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	type key struct {
		name string
		year int
	}
	seen := map[key]bool{}
	out := make([]model.PowerPlant, 0, len(rows))
	for n, row := range rows {
		p := model.PowerPlant{
			Name: row[col["name"]],
			Bus:  row[col["bus"]],
			Fuel: row[col["fuel"]],
		}
		if p.CapacityMW, err = parseFloat(row[col["capacity"]]); err != nil {
			return nil, fmt.Errorf("%s row %d capacity: %w", path, n+2, err)
		}
		if p.CostPerMWh, err = parseFloat(row[col["cost"]]); err != nil {
			return nil, fmt.Errorf("%s row %d cost: %w", path, n+2, err)
		}
		if p.Year, err = parseInt(row[col["year"]]); err != nil {
			return nil, fmt.Errorf("%s row %d year: %w", path, n+2, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		k := key{p.Name, p.Year}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out, nil
}

// LoadLinesCSV reads the transmission line file.
func LoadLinesCSV(path string) ([]model.Line, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := columnIndex(header, "name", "bus0", "bus1", "capacity", "length", "reactance", "resistance")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]model.Line, 0, len(rows))
	for n, row := range rows {
		l := model.Line{
			Name: row[col["name"]],
			Bus0: row[col["bus0"]],
			Bus1: row[col["bus1"]],
		}
		if l.CapacityMW, err = parseFloat(row[col["capacity"]]); err != nil {
			return nil, fmt.Errorf("%s row %d capacity: %w", path, n+2, err)
		}
		if l.LengthKM, err = parseFloat(row[col["length"]]); err != nil {
			return nil, fmt.Errorf("%s row %d length: %w", path, n+2, err)
		}
		if l.Reactance, err = parseFloat(row[col["reactance"]]); err != nil {
			return nil, fmt.Errorf("%s row %d reactance: %w", path, n+2, err)
		}
		if l.Resistance, err = parseFloat(row[col["resistance"]]); err != nil {
			return nil, fmt.Errorf("%s row %d resistance: %w", path, n+2, err)
		}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// LoadFuelCostsCSV reads per-year fuel cost overrides. Duplicate
// (fuel, year) rows are dropped, first row wins.
func LoadFuelCostsCSV(path string) ([]model.FuelCost, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := columnIndex(header, "fuel", "cost", "year")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	type key struct {
		fuel string
		year int
	}
	seen := map[key]bool{}
	out := make([]model.FuelCost, 0, len(rows))
	for n, row := range rows {
		fc := model.FuelCost{Fuel: row[col["fuel"]]}
		if fc.CostPerMWh, err = parseFloat(row[col["cost"]]); err != nil {
			return nil, fmt.Errorf("%s row %d cost: %w", path, n+2, err)
		}
		if fc.Year, err = parseInt(row[col["year"]]); err != nil {
			return nil, fmt.Errorf("%s row %d year: %w", path, n+2, err)
		}
		if err := fc.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		k := key{fc.Fuel, fc.Year}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, fc)
	}
	return out, nil
}

// LoadFuelConstraintsCSV reads the fuel constraint table.
func LoadFuelConstraintsCSV(path string) ([]model.FuelConstraint, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := columnIndex(header, "fuel", "hour_min", "hour_max", "max_capacity_factor", "min_capacity_factor")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]model.FuelConstraint, 0, len(rows))
	for n, row := range rows {
		fc := model.FuelConstraint{Fuel: row[col["fuel"]]}
		if fc.HourMin, err = parseInt(row[col["hour_min"]]); err != nil {
			return nil, fmt.Errorf("%s row %d hour_min: %w", path, n+2, err)
		}
		if fc.HourMax, err = parseInt(row[col["hour_max"]]); err != nil {
			return nil, fmt.Errorf("%s row %d hour_max: %w", path, n+2, err)
		}
		if fc.MaxCapacityFactor, err = parseFloat(row[col["max_capacity_factor"]]); err != nil {
			return nil, fmt.Errorf("%s row %d max_capacity_factor: %w", path, n+2, err)
		}
		if fc.MinCapacityFactor, err = parseFloat(row[col["min_capacity_factor"]]); err != nil {
			return nil, fmt.Errorf("%s row %d min_capacity_factor: %w", path, n+2, err)
		}
		if err := fc.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		out = append(out, fc)
	}
	return out, nil
}

// readCSV returns data rows and the header, trimming whitespace.
func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}
	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return records[1:], header, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(name)] = i
	}
	out := map[string]int{}
	for _, name := range required {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		out[name] = i
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	// Tolerate "2025.0" style integer columns.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
