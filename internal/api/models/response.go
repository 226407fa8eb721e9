package models

import (
	"math"

	"grid-dispatch/internal/sim"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RunResponse summarizes a stored simulation run.
type RunResponse struct {
	RunID    string        `json:"run_id"`
	Scenario string        `json:"scenario,omitempty"`
	Years    []YearSummary `json:"years"`
}

// YearSummary is the JSON shape of one simulated year. CostMillions is null
// for infeasible years (NaN does not survive JSON).
type YearSummary struct {
	Year            int                `json:"year"`
	Feasible        bool               `json:"feasible"`
	Message         string             `json:"message,omitempty"`
	CostMillions    *float64           `json:"cost_millions"`
	PeakDemandMW    float64            `json:"peak_demand_mw"`
	TotalDemandGWh  float64            `json:"total_demand_gwh"`
	GenerationByGWh map[string]float64 `json:"generation_gwh_by_fuel"`
}

// NewRunResponse converts an engine result for the wire.
func NewRunResponse(runID string, res *sim.Result) RunResponse {
	out := RunResponse{RunID: runID, Scenario: res.Scenario, Years: make([]YearSummary, 0, len(res.Years))}
	for _, yr := range res.Years {
		s := YearSummary{
			Year:            yr.Year,
			Feasible:        yr.Feasible,
			Message:         yr.Message,
			PeakDemandMW:    yr.PeakDemandMW(),
			TotalDemandGWh:  yr.TotalDemandMWh() / 1e3,
			GenerationByGWh: map[string]float64{},
		}
		if yr.Feasible && !math.IsNaN(yr.CostMillions) {
			cost := yr.CostMillions
			s.CostMillions = &cost
		}
		for _, fuel := range yr.Fuels() {
			s.GenerationByGWh[fuel] = yr.TotalGenerationMWh(fuel) / 1e3
		}
		out.Years = append(out.Years, s)
	}
	return out
}

// DatasetInfo describes one configured input file.
type DatasetInfo struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// DispatchRow is one snapshot of a solved year.
type DispatchRow struct {
	Timestamp         string             `json:"timestamp"`
	GenerationMW      map[string]float64 `json:"generation_mw"`
	TotalGenerationMW float64            `json:"total_generation_mw"`
	TotalDemandMW     float64            `json:"total_demand_mw"`
}

// RankEntry is one row of the adequacy ranking.
type RankEntry struct {
	Rank                 int     `json:"rank"`
	Year                 int     `json:"year"`
	PeakDemandMW         float64 `json:"peak_demand_mw"`
	InstalledCapacityMW  float64 `json:"installed_capacity_mw"`
	CapacityMarginAtPeak float64 `json:"capacity_margin_at_peak"`
	TotalDemandGWh       float64 `json:"total_demand_gwh"`
}
