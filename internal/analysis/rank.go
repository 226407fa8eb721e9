package analysis

import (
	"sort"

	"grid-dispatch/internal/model"
)

type RankedYear struct {
	YearAdequacy
}

// RankByScarcity computes adequacy per year and sorts ascending by capacity
// margin, so the tightest years come first.
func RankByScarcity(years []int, demand model.DemandSeries, plants []model.PowerPlant) []RankedYear {
	out := make([]RankedYear, 0, len(years))
	for _, year := range years {
		out = append(out, RankedYear{YearAdequacy: ComputeAdequacy(year, demand, plants)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CapacityMarginAtPeak < out[j].CapacityMarginAtPeak
	})
	return out
}
