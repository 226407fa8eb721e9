package report

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"grid-dispatch/internal/analysis"
	"grid-dispatch/internal/sim"
)

func tableConfig() tablewriter.Option {
	return tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
	})
}

// PrintSummary writes the per-year cost table, the horizon generation mix
// and an hour-of-day demand profile to w.
func PrintSummary(w io.Writer, res *sim.Result) {
	if res.Scenario != "" {
		fmt.Fprintf(w, "Scenario: %s\n\n", res.Scenario)
	}

	fmt.Fprintln(w, "System costs by year:")
	table := tablewriter.NewTable(w, tableConfig())
	table.Header([]string{"Year", "Cost (M)", "Peak Demand (MW)", "Generation (GWh)", "Status"})
	for _, yr := range res.Years {
		row := []string{fmt.Sprintf("%d", yr.Year)}
		if yr.Feasible {
			totalGWh := 0.0
			for _, fuel := range yr.Fuels() {
				totalGWh += yr.TotalGenerationMWh(fuel) / 1e3
			}
			row = append(row,
				fmt.Sprintf("%.2f", yr.CostMillions),
				fmt.Sprintf("%.0f", yr.PeakDemandMW()),
				fmt.Sprintf("%.1f", totalGWh),
				"ok",
			)
		} else {
			row = append(row, "-", "-", "-", yr.Message)
		}
		table.Append(row)
	}
	table.Render()

	printMix(w, res)
	printDemandProfile(w, res)
}

// printMix renders the total generation mix across all feasible years.
func printMix(w io.Writer, res *sim.Result) {
	totals := map[string]float64{}
	grand := 0.0
	for _, yr := range res.Years {
		if !yr.Feasible {
			continue
		}
		for _, fuel := range yr.Fuels() {
			mwh := yr.TotalGenerationMWh(fuel)
			totals[fuel] += mwh
			grand += mwh
		}
	}
	if grand == 0 {
		fmt.Fprintln(w, "\nNo feasible dispatch in any simulated year.")
		return
	}

	fmt.Fprintln(w, "\nGeneration mix:")
	table := tablewriter.NewTable(w, tableConfig())
	table.Header([]string{"Fuel", "GWh", "Share"})
	for _, fuel := range res.AllFuels() {
		mwh, ok := totals[fuel]
		if !ok {
			continue
		}
		table.Append([]string{
			fuel,
			fmt.Sprintf("%.1f", mwh/1e3),
			fmt.Sprintf("%.1f%%", 100*mwh/grand),
		})
	}
	table.Render()
}

// printDemandProfile draws the hour-of-day average system demand for the
// first feasible year.
func printDemandProfile(w io.Writer, res *sim.Result) {
	for _, yr := range res.Years {
		if !yr.Feasible || len(yr.Snapshots) == 0 {
			continue
		}
		var sums [24]float64
		var counts [24]int
		for i, ts := range yr.Snapshots {
			sums[ts.Hour()] += yr.Demand[i]
			counts[ts.Hour()]++
		}
		avg := make([]float64, 24)
		for h := 0; h < 24; h++ {
			if counts[h] > 0 {
				avg[h] = sums[h] / float64(counts[h])
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, asciigraph.Plot(avg,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Precision(0),
			asciigraph.Caption(fmt.Sprintf("Average hour-of-day demand (MW) - %d", yr.Year)),
		))
		return
	}
}

// PrintRanking writes the adequacy ranking table (tightest years first).
func PrintRanking(w io.Writer, ranked []analysis.RankedYear) {
	table := tablewriter.NewTable(w, tableConfig())
	table.Header([]string{"Rank", "Year", "Peak (MW)", "Installed (MW)", "Margin", "Demand (GWh)"})
	for i, r := range ranked {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Year),
			fmt.Sprintf("%.0f", r.PeakDemandMW),
			fmt.Sprintf("%.0f", r.InstalledCapacityMW),
			fmt.Sprintf("%+.1f%%", 100*r.CapacityMarginAtPeak),
			fmt.Sprintf("%.1f", r.TotalDemandMWh/1e3),
		})
	}
	table.Render()
}
