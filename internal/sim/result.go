package sim

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
)

// YearResult is one simulated year (or date window). Infeasible years carry
// NaN cost and empty generation; the run as a whole still succeeds.
type YearResult struct {
	Year      int
	Snapshots []time.Time

	// GenByFuel maps carrier to MW per snapshot. Backup imports appear
	// under the "import" carrier.
	GenByFuel map[string][]float64

	// Demand is total system MW per snapshot.
	Demand []float64

	// CostMillions is the dispatch objective in millions; NaN when
	// infeasible.
	CostMillions float64

	Feasible bool
	// Message explains why a year has no solution ("no feasible dispatch",
	// "no demand data for year").
	Message string
}

// Result is a full multi-year run.
type Result struct {
	Scenario string
	Years    []YearResult
}

// InfeasibleYear builds the placeholder result for a year without a
// solution.
func InfeasibleYear(year int, message string) YearResult {
	return YearResult{
		Year:         year,
		GenByFuel:    map[string][]float64{},
		CostMillions: math.NaN(),
		Feasible:     false,
		Message:      message,
	}
}

// Fuels returns the carriers present, sorted for stable output.
func (y YearResult) Fuels() []string {
	fuels := lo.Keys(y.GenByFuel)
	sort.Strings(fuels)
	return fuels
}

// TotalGenerationMWh sums a fuel's output over the year. Snapshots are
// hourly, so MW sum over snapshots is MWh.
func (y YearResult) TotalGenerationMWh(fuel string) float64 {
	return lo.Sum(y.GenByFuel[fuel])
}

// TotalDemandMWh sums system demand over the year.
func (y YearResult) TotalDemandMWh() float64 {
	return lo.Sum(y.Demand)
}

// PeakDemandMW returns the maximum system demand of the year.
func (y YearResult) PeakDemandMW() float64 {
	if len(y.Demand) == 0 {
		return 0
	}
	return lo.Max(y.Demand)
}

// TotalGenerationAt returns system generation at snapshot i.
func (y YearResult) TotalGenerationAt(i int) float64 {
	total := 0.0
	for _, series := range y.GenByFuel {
		total += series[i]
	}
	return total
}

// HourOfDayAverages returns, per fuel, the average MW for each hour 0..23.
func (y YearResult) HourOfDayAverages() map[string][24]float64 {
	counts := [24]int{}
	sums := map[string][24]float64{}
	for fuel := range y.GenByFuel {
		sums[fuel] = [24]float64{}
	}
	for i, ts := range y.Snapshots {
		h := ts.Hour()
		counts[h]++
		for fuel, series := range y.GenByFuel {
			s := sums[fuel]
			s[h] += series[i]
			sums[fuel] = s
		}
	}
	for fuel, s := range sums {
		for h := 0; h < 24; h++ {
			if counts[h] > 0 {
				s[h] /= float64(counts[h])
			}
		}
		sums[fuel] = s
	}
	return sums
}

// AllFuels returns the union of carriers across all years, sorted.
func (r *Result) AllFuels() []string {
	var fuels []string
	for _, y := range r.Years {
		fuels = append(fuels, y.Fuels()...)
	}
	fuels = lo.Uniq(fuels)
	sort.Strings(fuels)
	return fuels
}
