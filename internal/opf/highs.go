package opf

import (
	"github.com/bartolsthoorn/gohighs/highs"
)

// HighsSolver solves snapshot LPs through the HiGHS bindings. It needs the
// HiGHS C library installed; select it with solver.name: highs.
type HighsSolver struct{}

func (s *HighsSolver) Name() string { return "highs" }

func (s *HighsSolver) Solve(n *Network) (*Dispatch, error) {
	return solveNetwork(n, solveHighs)
}

func solveHighs(p *lpProblem) ([]float64, error) {
	model := highs.Model{
		ColCosts: p.costs,
		ColLower: p.colLo,
		ColUpper: p.colUp,
	}
	for i, coefs := range p.rows {
		model.AddDenseRow(p.rowLo[i], coefs, p.rowUp[i])
	}

	solution, err := model.Solve(highs.WithOutput(false))
	if err != nil {
		return nil, err
	}
	if !solution.IsOptimal() {
		return nil, ErrInfeasible
	}

	x := make([]float64, p.nVars())
	copy(x, solution.ColValues)
	return x, nil
}
