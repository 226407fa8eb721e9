package opf

import (
	"fmt"
	"math"
)

// lpProblem is one snapshot's linear program in range form:
//
//	minimize costs·x
//	subject to rowLo <= rows·x <= rowUp
//	           colLo <= x      <= colUp
//
// Variable layout: the first nGen entries are generator outputs in MW, the
// remaining nBus entries are bus voltage angles (free except the slack).
type lpProblem struct {
	nGen int
	nBus int

	costs []float64
	colLo []float64
	colUp []float64

	rows  [][]float64
	rowLo []float64
	rowUp []float64
}

func (p *lpProblem) nVars() int { return p.nGen + p.nBus }

func (p *lpProblem) addRow(coefs []float64, lo, up float64) {
	p.rows = append(p.rows, coefs)
	p.rowLo = append(p.rowLo, lo)
	p.rowUp = append(p.rowUp, up)
}

// buildSnapshotProblem assembles the DC-OPF LP for snapshot t.
//
// Equality rows: one nodal balance per bus, with line flows linearized as
// (θi-θj)/x. Range rows: ±thermal limit per line. Column bounds: generator
// availability bounds, free angles, slack angle pinned to zero (first bus).
func buildSnapshotProblem(n *Network, t int) (*lpProblem, error) {
	nGen := len(n.gens)
	nBus := len(n.buses)
	if nBus == 0 {
		return nil, fmt.Errorf("network has no buses")
	}
	if nGen == 0 {
		return nil, fmt.Errorf("network has no generators")
	}

	p := &lpProblem{
		nGen:  nGen,
		nBus:  nBus,
		costs: make([]float64, nGen+nBus),
		colLo: make([]float64, nGen+nBus),
		colUp: make([]float64, nGen+nBus),
	}

	for g, gen := range n.gens {
		p.costs[g] = gen.MarginalCost
		p.colLo[g] = gen.PMinPU[t] * gen.PNomMW
		p.colUp[g] = gen.PMaxPU[t] * gen.PNomMW
	}
	for b := 0; b < nBus; b++ {
		p.colLo[nGen+b] = math.Inf(-1)
		p.colUp[nGen+b] = math.Inf(1)
	}
	// Slack bus: pin the first bus's angle.
	p.colLo[nGen] = 0
	p.colUp[nGen] = 0

	// Nodal balance per bus: generation minus net flow out equals demand.
	balance := make([][]float64, nBus)
	for b := range balance {
		balance[b] = make([]float64, p.nVars())
	}
	for g, gen := range n.gens {
		balance[gen.Bus][g] = 1
	}
	for _, line := range n.lines {
		susceptance := 1 / line.Reactance
		// Flow bus0 -> bus1 is susceptance*(θ0-θ1). It leaves bus0 and
		// enters bus1.
		balance[line.Bus0][nGen+line.Bus0] -= susceptance
		balance[line.Bus0][nGen+line.Bus1] += susceptance
		balance[line.Bus1][nGen+line.Bus0] += susceptance
		balance[line.Bus1][nGen+line.Bus1] -= susceptance
	}
	for b := 0; b < nBus; b++ {
		load := n.loadAt(b, t)
		p.addRow(balance[b], load, load)
	}

	// Thermal limits per line.
	for _, line := range n.lines {
		coefs := make([]float64, p.nVars())
		susceptance := 1 / line.Reactance
		coefs[nGen+line.Bus0] = susceptance
		coefs[nGen+line.Bus1] = -susceptance
		p.addRow(coefs, -line.CapacityMW, line.CapacityMW)
	}

	return p, nil
}

// flowsFromAngles recovers per-line MW flows from the solved variable vector.
func flowsFromAngles(n *Network, x []float64) []float64 {
	nGen := len(n.gens)
	flows := make([]float64, len(n.lines))
	for i, line := range n.lines {
		flows[i] = (x[nGen+line.Bus0] - x[nGen+line.Bus1]) / line.Reactance
	}
	return flows
}
