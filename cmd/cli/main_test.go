package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-dispatch/internal/sim"
)

func TestWriteLedgers(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feasible := sim.YearResult{
		Year:      2025,
		GenByFuel: map[string][]float64{"gas": {100, 120, 90}},
		Demand:    []float64{100, 120, 90},
		Feasible:  true,
	}
	for h := 0; h < 3; h++ {
		feasible.Snapshots = append(feasible.Snapshots, start.Add(time.Duration(h)*time.Hour))
	}
	years := []sim.YearResult{
		feasible,
		sim.InfeasibleYear(2026, "no feasible dispatch"),
	}

	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, writeLedgers(&buf, dir, years))

	// The row count is printed as a number, one line per feasible year.
	assert.Equal(t, fmt.Sprintf("Wrote 3 rows to %s\n", filepath.Join(dir, "dispatch_2025.csv")), buf.String())

	_, err := os.Stat(filepath.Join(dir, "dispatch_2025.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "dispatch_2026.csv"))
	assert.True(t, os.IsNotExist(err), "infeasible year must not produce a ledger")
}

func TestSplitYears(t *testing.T) {
	assert.Equal(t, []int{2025, 2026}, splitYears("2025, 2026"))
	assert.Empty(t, splitYears(""))
	assert.Panics(t, func() { splitYears("not-a-year") })
}
