package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"grid-dispatch/internal/model"
)

// YearAdequacy is a year-level supply/demand summary you can use for
// ranking. It does not require a solved dispatch; it is computed straight
// from the inputs.
type YearAdequacy struct {
	Year int

	// Demand statistics over the year's hourly system demand (MW).
	PeakDemandMW float64
	MeanDemandMW float64
	P05DemandMW  float64
	P95DemandMW  float64

	TotalDemandMWh float64

	CapacityByFuel      map[string]float64
	InstalledCapacityMW float64

	// CapacityMarginAtPeak is (installed - peak) / peak. Negative means the
	// fleet cannot cover the peak even at full availability.
	CapacityMarginAtPeak float64
}

// ComputeAdequacy summarizes one year from demand and the year's plant
// fleet. Plants from other years are ignored.
func ComputeAdequacy(year int, demand model.DemandSeries, plants []model.PowerPlant) YearAdequacy {
	a := YearAdequacy{Year: year, CapacityByFuel: map[string]float64{}}

	yearDemand := demand.FilterYear(year)
	totals := make([]float64, yearDemand.Len())
	for i := range totals {
		totals[i] = yearDemand.TotalAt(i)
	}

	if len(totals) > 0 {
		sorted := append([]float64(nil), totals...)
		sort.Float64s(sorted)

		a.PeakDemandMW = sorted[len(sorted)-1]
		a.MeanDemandMW = stat.Mean(totals, nil)
		a.P05DemandMW = stat.Quantile(0.05, stat.Empirical, sorted, nil)
		a.P95DemandMW = stat.Quantile(0.95, stat.Empirical, sorted, nil)
		for _, v := range totals {
			a.TotalDemandMWh += v
		}
	}

	for _, p := range plants {
		if p.Year != year {
			continue
		}
		a.CapacityByFuel[p.Fuel] += p.CapacityMW
		a.InstalledCapacityMW += p.CapacityMW
	}

	if a.PeakDemandMW > 0 {
		a.CapacityMarginAtPeak = (a.InstalledCapacityMW - a.PeakDemandMW) / a.PeakDemandMW
	}
	return a
}
