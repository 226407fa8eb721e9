package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	pb "gopkg.in/cheggaaa/pb.v1"

	"grid-dispatch/internal/analysis"
	"grid-dispatch/internal/config"
	"grid-dispatch/internal/data"
	"grid-dispatch/internal/opf"
	"grid-dispatch/internal/report"
	"grid-dispatch/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config example/config.yaml")
	fmt.Println("  cli simulate --config example/config.yaml --years 2025,2026")
	fmt.Println("  cli simulate --config example/config.yaml --start 2025-01-01 --end 2025-01-05")
	fmt.Println("  cli rank --config example/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes per-year dispatch CSVs and PNG charts into the results dir")
	fmt.Println("  - date-window runs are capped at window_max_days (default 10)")
	fmt.Println("  - rank orders scenario years by capacity margin at peak demand")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	yearsArg := fs.String("years", "", "Optional: comma-separated years (default: all scenario years)")
	startArg := fs.String("start", "", "Optional: window start (2006-01-02 or '2006-01-02 15:04')")
	endArg := fs.String("end", "", "Optional: window end")
	charts := fs.Bool("charts", true, "Write PNG charts into the results dir")
	outDir := fs.String("out-dir", "", "Override the configured results directory")
	noProgress := fs.Bool("no-progress", false, "Disable the progress bar")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	if (*startArg == "") != (*endArg == "") {
		fmt.Println("--start and --end must be given together")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	if *outDir != "" {
		cfg.Paths.ResultsDir = *outDir
	}
	inputs, err := data.LoadInputs(cfg)
	if err != nil {
		panic(err)
	}
	solver, err := opf.ForName(cfg.Solver.Name, cfg.Solver.Tolerance)
	if err != nil {
		panic(err)
	}

	engine := sim.New(cfg, solver)

	var res *sim.Result
	if *startArg != "" {
		start := mustParseTime(*startArg)
		end := mustParseTime(*endArg)
		res, err = engine.RunWindow(inputs, start, end)
		if err != nil {
			panic(err)
		}
	} else {
		years := cfg.Scenario.Years
		if *yearsArg != "" {
			years = splitYears(*yearsArg)
		}

		var bar *pb.ProgressBar
		if !*noProgress {
			bar = pb.StartNew(len(years))
			engine.OnYear = func(sim.YearResult) { bar.Increment() }
		}
		res, err = engine.RunYears(inputs, years)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			panic(err)
		}
	}

	if err := writeLedgers(os.Stdout, cfg.Paths.ResultsDir, res.Years); err != nil {
		panic(err)
	}

	report.PrintSummary(os.Stdout, res)

	if *charts {
		paths, err := report.WriteCharts(cfg, res)
		if err != nil {
			panic(err)
		}
		for _, p := range paths {
			fmt.Printf("Wrote chart %s\n", p)
		}
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	inputs, err := data.LoadInputs(cfg)
	if err != nil {
		panic(err)
	}

	ranked := analysis.RankByScarcity(cfg.Scenario.Years, inputs.Demand, inputs.Plants)
	report.PrintRanking(os.Stdout, ranked)
}

// writeLedgers writes one dispatch CSV per feasible year into dir.
func writeLedgers(w io.Writer, dir string, years []sim.YearResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, yr := range years {
		if !yr.Feasible {
			continue
		}
		out := filepath.Join(dir, fmt.Sprintf("dispatch_%d.csv", yr.Year))
		if err := sim.WriteDispatchCSV(out, yr); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %d rows to %s\n", len(yr.Snapshots), out)
	}
	return nil
}

func mustParseTime(s string) time.Time {
	layouts := []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	panic(fmt.Errorf("unrecognized time %q (want 2006-01-02)", s))
}

func splitYears(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		y, err := strconv.Atoi(p)
		if err != nil {
			panic(fmt.Errorf("invalid year %q", p))
		}
		out = append(out, y)
	}
	return out
}
