package opf

import (
	"errors"
	"fmt"
)

// ErrInfeasible is returned when the solver reports that no dispatch can
// meet demand under the configured constraints.
var ErrInfeasible = errors.New("no feasible dispatch")

// Dispatch is the solved result over all snapshots.
type Dispatch struct {
	// Objective is the total dispatch cost over all snapshots (currency
	// units, not millions).
	Objective float64
	// GenP[t][g] is generator g's output in MW at snapshot t.
	GenP [][]float64
	// LineFlow[t][l] is line l's MW flow (bus0 -> bus1 positive).
	LineFlow [][]float64
}

// Solver solves every snapshot of a network.
type Solver interface {
	Name() string
	Solve(n *Network) (*Dispatch, error)
}

// ForName constructs the configured solver backend.
func ForName(name string, tolerance float64) (Solver, error) {
	switch name {
	case "simplex":
		return &SimplexSolver{Tolerance: tolerance}, nil
	case "highs":
		return &HighsSolver{}, nil
	default:
		return nil, fmt.Errorf("unsupported solver: %q", name)
	}
}

// solveFunc solves one snapshot LP, returning the full variable vector.
type solveFunc func(p *lpProblem) ([]float64, error)

// solveNetwork runs the per-snapshot loop shared by all backends.
func solveNetwork(n *Network, solve solveFunc) (*Dispatch, error) {
	T := len(n.snapshots)
	if T == 0 {
		return nil, fmt.Errorf("network has no snapshots")
	}

	d := &Dispatch{
		GenP:     make([][]float64, T),
		LineFlow: make([][]float64, T),
	}
	for t := 0; t < T; t++ {
		p, err := buildSnapshotProblem(n, t)
		if err != nil {
			return nil, err
		}
		x, err := solve(p)
		if err != nil {
			if errors.Is(err, ErrInfeasible) {
				return nil, fmt.Errorf("snapshot %s: %w", n.snapshots[t].Format("2006-01-02 15:04"), ErrInfeasible)
			}
			return nil, fmt.Errorf("snapshot %s: %w", n.snapshots[t].Format("2006-01-02 15:04"), err)
		}

		genP := make([]float64, p.nGen)
		copy(genP, x[:p.nGen])
		d.GenP[t] = genP
		d.LineFlow[t] = flowsFromAngles(n, x)
		for g, gen := range n.gens {
			d.Objective += gen.MarginalCost * genP[g]
		}
	}
	return d, nil
}
