package opf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshots(n int) []time.Time {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return out
}

// Two buses, one line, one cheap generator capped below demand and one
// expensive generator that covers the rest. Merit order is unambiguous, so
// the optimum is known exactly.
func twoBusNetwork(t *testing.T, cheapCapMW, lineCapMW float64) *Network {
	t.Helper()
	n := NewNetwork()
	require.NoError(t, n.SetSnapshots(snapshots(1)))
	require.NoError(t, n.AddBus("a", 380))
	require.NoError(t, n.AddBus("b", 380))
	require.NoError(t, n.AddLine("ab", "a", "b", 0.1, lineCapMW))
	require.NoError(t, n.AddGenerator("cheap", "a", "wind", cheapCapMW, 5, nil, nil))
	require.NoError(t, n.AddGenerator("dear", "b", "gas", 1000, 50, nil, nil))
	require.NoError(t, n.AddLoad("load_b", "b", []float64{300}))
	return n
}

func TestSimplexMeritOrder(t *testing.T) {
	n := twoBusNetwork(t, 200, 500)

	d, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
	require.NoError(t, err)

	// Cheap runs flat out, expensive covers the remainder.
	assert.InDelta(t, 200, d.GenP[0][0], 1e-6)
	assert.InDelta(t, 100, d.GenP[0][1], 1e-6)
	assert.InDelta(t, 200*5+100*50, d.Objective, 1e-4)

	// All cheap output flows a -> b.
	assert.InDelta(t, 200, d.LineFlow[0][0], 1e-6)
}

func TestSimplexGenerationMatchesDemand(t *testing.T) {
	n := NewNetwork()
	require.NoError(t, n.SetSnapshots(snapshots(3)))
	require.NoError(t, n.AddBus("a", 380))
	require.NoError(t, n.AddBus("b", 380))
	require.NoError(t, n.AddLine("ab", "a", "b", 0.1, 1000))
	require.NoError(t, n.AddGenerator("g1", "a", "gas", 800, 30, nil, nil))
	require.NoError(t, n.AddGenerator("g2", "b", "coal", 800, 20, nil, nil))
	loadA := []float64{100, 250, 400}
	loadB := []float64{300, 150, 50}
	require.NoError(t, n.AddLoad("la", "a", loadA))
	require.NoError(t, n.AddLoad("lb", "b", loadB))

	d, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
	require.NoError(t, err)

	for ti := range d.GenP {
		total := 0.0
		for _, p := range d.GenP[ti] {
			assert.GreaterOrEqual(t, p, -1e-6)
			total += p
		}
		assert.InDelta(t, loadA[ti]+loadB[ti], total, 1e-6, "snapshot %d", ti)
	}
}

func TestSimplexLineLimitBinds(t *testing.T) {
	// Line too small to carry all the cheap power; the expensive local
	// generator has to make up the difference.
	n := twoBusNetwork(t, 1000, 120)

	d, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
	require.NoError(t, err)

	assert.InDelta(t, 120, d.GenP[0][0], 1e-6)
	assert.InDelta(t, 180, d.GenP[0][1], 1e-6)
	assert.InDelta(t, 120, d.LineFlow[0][0], 1e-6)
}

func TestSimplexAvailabilityProfile(t *testing.T) {
	n := NewNetwork()
	require.NoError(t, n.SetSnapshots(snapshots(2)))
	require.NoError(t, n.AddBus("a", 380))
	// Solar off in hour 0, at 50% in hour 1.
	require.NoError(t, n.AddGenerator("sun", "a", "solar", 400, 3, nil, []float64{0, 0.5}))
	require.NoError(t, n.AddGenerator("gas", "a", "gas", 400, 30, nil, nil))
	require.NoError(t, n.AddLoad("l", "a", []float64{100, 100}))

	d, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
	require.NoError(t, err)

	assert.InDelta(t, 0, d.GenP[0][0], 1e-6)
	assert.InDelta(t, 100, d.GenP[0][1], 1e-6)
	assert.InDelta(t, 100, d.GenP[1][0], 1e-6)
	assert.InDelta(t, 0, d.GenP[1][1], 1e-6)
}

func TestSimplexInfeasible(t *testing.T) {
	n := NewNetwork()
	require.NoError(t, n.SetSnapshots(snapshots(1)))
	require.NoError(t, n.AddBus("a", 380))
	require.NoError(t, n.AddGenerator("small", "a", "gas", 50, 30, nil, nil))
	require.NoError(t, n.AddLoad("big", "a", []float64{500}))

	_, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSimplexEqualitiesOnly(t *testing.T) {
	// No lines and a fully pinned generator: the snapshot LP has no
	// inequality rows at all, only equalities.
	n := NewNetwork()
	require.NoError(t, n.SetSnapshots(snapshots(1)))
	require.NoError(t, n.AddBus("a", 380))
	require.NoError(t, n.AddGenerator("base", "a", "hydro", 100, 10, []float64{1}, []float64{1}))
	require.NoError(t, n.AddLoad("l", "a", []float64{100}))

	d, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
	require.NoError(t, err)
	assert.InDelta(t, 100, d.GenP[0][0], 1e-6)
	assert.InDelta(t, 100*10, d.Objective, 1e-4)
}

func TestForName(t *testing.T) {
	s, err := ForName("simplex", 1e-7)
	require.NoError(t, err)
	assert.Equal(t, "simplex", s.Name())

	h, err := ForName("highs", 1e-7)
	require.NoError(t, err)
	assert.Equal(t, "highs", h.Name())

	_, err = ForName("glpk", 1e-7)
	assert.Error(t, err)
}

func TestNetworkValidation(t *testing.T) {
	t.Run("loads require snapshots first", func(t *testing.T) {
		n := NewNetwork()
		require.NoError(t, n.AddBus("a", 380))
		assert.Error(t, n.AddLoad("l", "a", []float64{1}))
	})

	t.Run("line endpoints must exist", func(t *testing.T) {
		n := NewNetwork()
		require.NoError(t, n.SetSnapshots(snapshots(1)))
		require.NoError(t, n.AddBus("a", 380))
		assert.Error(t, n.AddLine("ab", "a", "ghost", 0.1, 100))
	})

	t.Run("solve without generators fails cleanly", func(t *testing.T) {
		n := NewNetwork()
		require.NoError(t, n.SetSnapshots(snapshots(1)))
		require.NoError(t, n.AddBus("a", 380))
		require.NoError(t, n.AddLoad("l", "a", []float64{10}))
		_, err := (&SimplexSolver{Tolerance: 1e-9}).Solve(n)
		assert.Error(t, err)
	})
}
