package main

import (
	"flag"
	"fmt"
	"log"

	"grid-dispatch/internal/data"
)

func main() {
	var (
		outDir    = flag.String("out", "example/data", "Output directory for the generated CSV files")
		startYear = flag.Int("start-year", 2025, "First year of the planning horizon")
		endYear   = flag.Int("end-year", 2032, "Last year of the planning horizon (inclusive)")
		seed      = flag.Int64("seed", 42, "Random seed for reproducible demand noise")
	)
	flag.Parse()

	if *endYear < *startYear {
		log.Fatalf("end-year %d is before start-year %d", *endYear, *startYear)
	}

	years := make([]int, 0, *endYear-*startYear+1)
	for y := *startYear; y <= *endYear; y++ {
		years = append(years, y)
	}

	fmt.Printf("Generating synthetic grid dataset for %d-%d in %s\n", *startYear, *endYear, *outDir)

	if err := data.WriteSyntheticDataset(*outDir, data.SynthOptions{Years: years, Seed: *seed}); err != nil {
		log.Fatalf("Failed to generate dataset: %v", err)
	}

	fmt.Println("Wrote demand_data.csv, power_plants.csv, transmission_data.csv, fuel_costs.csv, fuel_constraints.csv")
}
