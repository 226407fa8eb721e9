package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	yearsSolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_years_solved_total",
		Help: "Simulated years with a feasible dispatch.",
	})
	infeasibleYears = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_years_infeasible_total",
		Help: "Simulated years the solver reported infeasible.",
	})
	snapshotsSolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_snapshots_solved_total",
		Help: "Hourly snapshots solved across all runs.",
	})
	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_solve_duration_seconds",
		Help:    "Wall time of one year (or window) solve.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})
)
