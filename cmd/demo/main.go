package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"grid-dispatch/internal/opf"
)

// Demo:
// - Build a two-bus network in code: cheap solar on bus north, gas on bus south
// - Solve a single day hour by hour
// - Print the dispatch so the pieces are easy to follow without any CSV files
func main() {
	solverName := flag.String("solver", "simplex", "LP solver (simplex or highs)")
	flag.Parse()

	const hours = 24
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	snapshots := make([]time.Time, hours)
	for h := range snapshots {
		snapshots[h] = day.Add(time.Duration(h) * time.Hour)
	}

	n := opf.NewNetwork()
	if err := n.SetSnapshots(snapshots); err != nil {
		panic(err)
	}
	for _, bus := range []string{"north", "south"} {
		if err := n.AddBus(bus, 380); err != nil {
			panic(err)
		}
	}
	if err := n.AddLine("tie", "north", "south", 0.1, 400); err != nil {
		panic(err)
	}

	// Solar only produces between 06:00 and 18:00, ramping with the sun.
	solarPU := make([]float64, hours)
	for h := range solarPU {
		if h >= 6 && h <= 18 {
			solarPU[h] = math.Sin(math.Pi * float64(h-6) / 12)
		}
	}
	if err := n.AddGenerator("Solar_North", "north", "solar", 600, 3, nil, solarPU); err != nil {
		panic(err)
	}
	if err := n.AddGenerator("Gas_South", "south", "gas", 900, 30, nil, nil); err != nil {
		panic(err)
	}

	// Evening-peaking demand on both buses.
	north := make([]float64, hours)
	south := make([]float64, hours)
	for h := range north {
		shape := 1 + 0.3*math.Sin(2*math.Pi*(float64(h)-6)/24)
		north[h] = 350 * shape
		south[h] = 500 * shape
	}
	if err := n.AddLoad("north_load", "north", north); err != nil {
		panic(err)
	}
	if err := n.AddLoad("south_load", "south", south); err != nil {
		panic(err)
	}

	solver, err := opf.ForName(*solverName, 1e-7)
	if err != nil {
		panic(err)
	}
	dispatch, err := solver.Solve(n)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Solved %d hours with %s, total cost %.2f\n\n", hours, solver.Name(), dispatch.Objective)
	fmt.Printf("%-6s %-10s %-10s %-10s %-10s\n", "hour", "solar MW", "gas MW", "demand MW", "tie MW")
	for t := 0; t < hours; t++ {
		demand := north[t] + south[t]
		fmt.Printf("%-6s %-10.1f %-10.1f %-10.1f %-10.1f\n",
			snapshots[t].Format("15:04"),
			dispatch.GenP[t][0],
			dispatch.GenP[t][1],
			demand,
			dispatch.LineFlow[t][0],
		)
	}
}
