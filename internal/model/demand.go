package model

import (
	"fmt"
	"time"
)

// DemandSeries holds the hourly demand for every bus over the full horizon.
// All per-bus slices have the same length as Timestamps.
type DemandSeries struct {
	Timestamps []time.Time
	// ByBus maps bus name to MW per timestamp.
	ByBus map[string][]float64
}

func (d DemandSeries) Validate() error {
	if len(d.Timestamps) == 0 {
		return fmt.Errorf("demand series is empty")
	}
	for i := 1; i < len(d.Timestamps); i++ {
		if !d.Timestamps[i].After(d.Timestamps[i-1]) {
			return fmt.Errorf("demand timestamps must be strictly increasing (row %d)", i)
		}
	}
	for bus, vals := range d.ByBus {
		if len(vals) != len(d.Timestamps) {
			return fmt.Errorf("demand for bus %q has %d rows, expected %d", bus, len(vals), len(d.Timestamps))
		}
		for i, v := range vals {
			if v < 0 {
				return fmt.Errorf("demand for bus %q is negative at row %d", bus, i)
			}
		}
	}
	return nil
}

// Len returns the number of snapshots.
func (d DemandSeries) Len() int { return len(d.Timestamps) }

// FilterYear returns the subset of the series whose timestamps fall in year.
func (d DemandSeries) FilterYear(year int) DemandSeries {
	return d.filter(func(t time.Time) bool { return t.Year() == year })
}

// FilterRange returns the subset in [start, end] inclusive.
func (d DemandSeries) FilterRange(start, end time.Time) DemandSeries {
	return d.filter(func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	})
}

func (d DemandSeries) filter(keep func(time.Time) bool) DemandSeries {
	out := DemandSeries{ByBus: make(map[string][]float64, len(d.ByBus))}
	idx := make([]int, 0, len(d.Timestamps))
	for i, ts := range d.Timestamps {
		if keep(ts) {
			out.Timestamps = append(out.Timestamps, ts)
			idx = append(idx, i)
		}
	}
	for bus, vals := range d.ByBus {
		sub := make([]float64, len(idx))
		for j, i := range idx {
			sub[j] = vals[i]
		}
		out.ByBus[bus] = sub
	}
	return out
}

// TotalAt returns the system demand (sum over buses) at snapshot i.
func (d DemandSeries) TotalAt(i int) float64 {
	total := 0.0
	for _, vals := range d.ByBus {
		total += vals[i]
	}
	return total
}
