package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// SynthOptions controls the synthetic example dataset.
type SynthOptions struct {
	Years []int
	Seed  int64
}

type synthPlant struct {
	name      string
	bus       string
	fuel      string
	capacity  float64
	cost      float64
	buildYear int
	lifetime  int
}

var synthBuses = []string{"bus_1", "bus_2", "bus_3"}

var synthBaseDemand = map[string]float64{
	"bus_1": 1350,
	"bus_2": 1040,
	"bus_3": 1260,
}

var synthPlants = []synthPlant{
	{"Plant_A", "bus_1", "gas", 2500, 50, 2020, 30},
	{"Plant_B", "bus_2", "coal", 1200, 30, 2023, 40},
	{"Plant_C", "bus_3", "solar", 800, 2, 2028, 25},
	{"Plant_D", "bus_1", "wind", 600, 4, 2022, 25},
	{"Plant_E", "bus_2", "hydro", 400, 10, 2007, 20},
}

// WriteSyntheticDataset writes the five example CSV inputs into dir.
// Demand follows a daily sinusoid with a per-year phase shift, compounded
// 7% annual growth, weekend reduction and bounded uniform noise.
func WriteSyntheticDataset(dir string, opts SynthOptions) error {
	if len(opts.Years) == 0 {
		return fmt.Errorf("synthetic dataset: at least one year is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	if err := writeSynthDemand(filepath.Join(dir, "demand_data.csv"), opts.Years, rng); err != nil {
		return err
	}
	if err := writeSynthPlants(filepath.Join(dir, "power_plants.csv"), opts.Years); err != nil {
		return err
	}
	if err := writeSynthLines(filepath.Join(dir, "transmission_data.csv")); err != nil {
		return err
	}
	if err := writeSynthFuelCosts(filepath.Join(dir, "fuel_costs.csv"), opts.Years); err != nil {
		return err
	}
	return writeSynthFuelConstraints(filepath.Join(dir, "fuel_constraints.csv"))
}

func writeSynthDemand(path string, years []int, rng *rand.Rand) error {
	const annualGrowth = 0.07

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"timestamp"}, synthBuses...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, year := range years {
		growth := math.Pow(1+annualGrowth, float64(i))
		// Shift the daily peak a little each year.
		phase := rng.Float64()*2 - 1
		weekendReduction := 0.3 + (rng.Float64()*0.14 - 0.07)

		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, 12, 31, 23, 0, 0, 0, time.UTC)
		for ts := start; !ts.After(end); ts = ts.Add(time.Hour) {
			daily := 0.6 + 0.4*math.Sin(2*math.Pi*(float64(ts.Hour())-12+phase)/24)
			weekly := 1.0
			if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
				weekly = 1.0 - weekendReduction
			}

			row := make([]string, 0, len(synthBuses)+1)
			row = append(row, ts.Format("2006-01-02 15:04:05"))
			for _, bus := range synthBuses {
				noise := 0.95 + rng.Float64()*0.10
				v := synthBaseDemand[bus] * growth * daily * weekly * noise
				row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func writeSynthPlants(path string, years []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"name", "bus", "fuel", "capacity", "cost", "year"}); err != nil {
		return err
	}
	for _, year := range years {
		for _, p := range synthPlants {
			// Plants exist from their build year until end of lifetime.
			if year < p.buildYear || year >= p.buildYear+p.lifetime {
				continue
			}
			row := []string{
				p.name,
				p.bus,
				p.fuel,
				strconv.FormatFloat(p.capacity, 'f', -1, 64),
				strconv.FormatFloat(p.cost, 'f', -1, 64),
				strconv.Itoa(year),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func writeSynthLines(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows := [][]string{
		{"name", "bus0", "bus1", "capacity", "length", "reactance", "resistance"},
		{"line_1", "bus_1", "bus_2", "2000", "150", "0.1", "0.01"},
		{"line_2", "bus_2", "bus_3", "2500", "200", "0.12", "0.012"},
		{"line_3", "bus_3", "bus_1", "1800", "120", "0.08", "0.008"},
		{"line_4", "bus_1", "bus_3", "2000", "180", "0.09", "0.009"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeSynthFuelCosts(path string, years []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	costs := []struct {
		fuel string
		cost float64
	}{
		{"gas", 30},
		{"coal", 20},
		{"solar", 3},
		{"wind", 3},
		{"hydro", 10},
	}

	if err := w.Write([]string{"fuel", "cost", "year"}); err != nil {
		return err
	}
	for _, year := range years {
		for _, c := range costs {
			row := []string{c.fuel, strconv.FormatFloat(c.cost, 'f', -1, 64), strconv.Itoa(year)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

func writeSynthFuelConstraints(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows := [][]string{
		{"fuel", "hour_min", "hour_max", "max_capacity_factor", "min_capacity_factor"},
		// Solar only produces 6-18.
		{"solar", "6", "18", "1.0", "0.0"},
		{"wind", "0", "23", "0.9", "0.0"},
		{"hydro", "0", "23", "0.9", "0.0"},
		{"coal", "0", "23", "1.0", "0.0"},
		{"gas", "0", "23", "1.0", "0.0"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
