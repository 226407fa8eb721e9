package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-dispatch/internal/model"
)

func demandForYears(values map[int][]float64) model.DemandSeries {
	d := model.DemandSeries{ByBus: map[string][]float64{"bus_1": {}}}
	// iterate years in order so timestamps stay strictly increasing
	for y := 2020; y < 2100; y++ {
		vals, ok := values[y]
		if !ok {
			continue
		}
		start := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, v := range vals {
			d.Timestamps = append(d.Timestamps, start.Add(time.Duration(i)*time.Hour))
			d.ByBus["bus_1"] = append(d.ByBus["bus_1"], v)
		}
	}
	return d
}

func TestComputeAdequacy(t *testing.T) {
	demand := demandForYears(map[int][]float64{
		2025: {100, 200, 300, 400},
	})
	plants := []model.PowerPlant{
		{Name: "A", Bus: "bus_1", Fuel: "gas", CapacityMW: 300, CostPerMWh: 30, Year: 2025},
		{Name: "B", Bus: "bus_1", Fuel: "coal", CapacityMW: 200, CostPerMWh: 20, Year: 2025},
		{Name: "C", Bus: "bus_1", Fuel: "gas", CapacityMW: 999, CostPerMWh: 30, Year: 2026},
	}

	a := ComputeAdequacy(2025, demand, plants)

	assert.Equal(t, 2025, a.Year)
	assert.Equal(t, 400.0, a.PeakDemandMW)
	assert.InDelta(t, 250.0, a.MeanDemandMW, 1e-9)
	assert.InDelta(t, 1000.0, a.TotalDemandMWh, 1e-9)

	// Only the 2025 fleet counts.
	assert.Equal(t, 500.0, a.InstalledCapacityMW)
	assert.Equal(t, map[string]float64{"gas": 300, "coal": 200}, a.CapacityByFuel)

	// (500 - 400) / 400
	assert.InDelta(t, 0.25, a.CapacityMarginAtPeak, 1e-9)
}

func TestComputeAdequacyEmptyYear(t *testing.T) {
	demand := demandForYears(map[int][]float64{2025: {100}})
	a := ComputeAdequacy(2030, demand, nil)
	assert.Equal(t, 0.0, a.PeakDemandMW)
	assert.Equal(t, 0.0, a.CapacityMarginAtPeak)
}

func TestRankByScarcity(t *testing.T) {
	demand := demandForYears(map[int][]float64{
		2025: {100, 150},
		2026: {400, 500},
	})
	plants := []model.PowerPlant{
		{Name: "A", Bus: "bus_1", Fuel: "gas", CapacityMW: 300, CostPerMWh: 30, Year: 2025},
		{Name: "A", Bus: "bus_1", Fuel: "gas", CapacityMW: 300, CostPerMWh: 30, Year: 2026},
	}

	ranked := RankByScarcity([]int{2025, 2026}, demand, plants)
	require.Len(t, ranked, 2)

	// 2026 is tighter: 300 MW of plant against a 500 MW peak.
	assert.Equal(t, 2026, ranked[0].Year)
	assert.Less(t, ranked[0].CapacityMarginAtPeak, 0.0)
	assert.Equal(t, 2025, ranked[1].Year)
}
