package opf

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexSolver solves snapshot LPs with gonum's pure-Go simplex
// implementation. It is the default backend: no cgo, no system solver.
type SimplexSolver struct {
	Tolerance float64
}

func (s *SimplexSolver) Name() string { return "simplex" }

func (s *SimplexSolver) Solve(n *Network) (*Dispatch, error) {
	tol := s.Tolerance
	if tol <= 0 {
		tol = 1e-7
	}
	return solveNetwork(n, func(p *lpProblem) ([]float64, error) {
		return solveSimplex(p, tol)
	})
}

// solveSimplex converts the range-form problem into gonum's general form
// (G·x <= h, A·x = b with free x) and runs the simplex method on the
// standard form produced by lp.Convert.
func solveSimplex(p *lpProblem, tol float64) ([]float64, error) {
	nv := p.nVars()

	var gRows [][]float64
	var h []float64
	var aRows [][]float64
	var b []float64

	addIneq := func(coefs []float64, bound float64) {
		gRows = append(gRows, coefs)
		h = append(h, bound)
	}
	negate := func(coefs []float64) []float64 {
		out := make([]float64, len(coefs))
		for i, v := range coefs {
			out[i] = -v
		}
		return out
	}

	for i, coefs := range p.rows {
		lo, up := p.rowLo[i], p.rowUp[i]
		if lo == up {
			aRows = append(aRows, coefs)
			b = append(b, lo)
			continue
		}
		if !math.IsInf(up, 1) {
			addIneq(coefs, up)
		}
		if !math.IsInf(lo, -1) {
			addIneq(negate(coefs), -lo)
		}
	}

	unit := func(i int) []float64 {
		out := make([]float64, nv)
		out[i] = 1
		return out
	}
	for i := 0; i < nv; i++ {
		lo, up := p.colLo[i], p.colUp[i]
		if lo == up {
			aRows = append(aRows, unit(i))
			b = append(b, lo)
			continue
		}
		if !math.IsInf(up, 1) {
			addIneq(unit(i), up)
		}
		if !math.IsInf(lo, -1) {
			addIneq(negate(unit(i)), -lo)
		}
	}

	// mat.NewDense panics on zero rows; a problem with only equalities
	// (no lines, fully pinned generators) has no inequality rows at all.
	var g mat.Matrix
	if len(gRows) > 0 {
		gd := mat.NewDense(len(gRows), nv, nil)
		for i, row := range gRows {
			gd.SetRow(i, row)
		}
		g = gd
	}
	var a mat.Matrix
	if len(aRows) > 0 {
		ad := mat.NewDense(len(aRows), nv, nil)
		for i, row := range aRows {
			ad.SetRow(i, row)
		}
		a = ad
	}

	cStd, aStd, bStd := lp.Convert(p.costs, g, h, a, b)
	_, xStd, err := lp.Simplex(cStd, aStd, bStd, tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return nil, ErrInfeasible
		}
		return nil, err
	}

	// Convert splits each free variable into a positive and negative part:
	// x_i = xStd[i] - xStd[nv+i].
	x := make([]float64, nv)
	for i := 0; i < nv; i++ {
		x[i] = xStd[i] - xStd[nv+i]
	}
	return x, nil
}
