// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"github.com/raulhuatuco/pfnet/mat"
	"github.com/raulhuatuco/pfnet/net"
)

// DcFlowLim builds branch flow limits under the DC approximation as linear
// inequality constraints. Per in-service branch and period, one row
//
//	-ratingA <= -b w_k + b w_m + b phi <= ratingA     (p.u.)
//
// with the terms of fixed quantities folded into both sides of the box.
// Branches without a rating get the BranchInfFlow sentinel.
type DcFlowLim struct{}

// register constraint type
func init() {
	callocators["DC_FLOW_LIM"] = func() Kernel { return new(DcFlowLim) }
}

// Init allocates type data
func (o *DcFlowLim) Init(c *Constr) {
}

// Clear resets counters
func (o *DcFlowLim) Clear(c *Constr) {
	c.GNnz = 0
	c.GRow = 0
}

// CountStep advances the G counters for one (branch, period) pair
func (o *DcFlowLim) CountStep(c *Constr, br *net.Branch, t int) {

	// check outage
	if br.IsOnOutage() {
		return
	}

	busK := br.BusK()
	busM := br.BusM()

	if busK.HasFlags(net.FlagVars, net.BusVarVAng) { // wk var
		c.GNnz++
	}
	if busM.HasFlags(net.FlagVars, net.BusVarVAng) { // wm var
		c.GNnz++
	}
	if br.HasFlags(net.FlagVars, net.BranchVarPhase) { // phi var
		c.GNnz++
	}
	c.GRow++
}

// Allocate builds the matrices from the counted dimensions
func (o *DcFlowLim) Allocate(c *Constr) {

	numVars := c.Network().NumVars()

	// J f
	c.J = mat.New(0, numVars, 0)
	c.Jbar = mat.New(0, 0, 0)
	c.F = make([]float64, 0)

	// A b
	c.A = mat.New(0, numVars, 0)
	c.B = make([]float64, 0)

	// G l u
	c.G = mat.New(c.GRow, numVars, c.GNnz)
	c.Gbar = mat.New(c.GRow, 0, 0)
	c.L = make([]float64, c.GRow)
	c.U = make([]float64, c.GRow)
}

// AnalyzeStep writes the G pattern, coefficients and box sides for one
// (branch, period) pair
func (o *DcFlowLim) AnalyzeStep(c *Constr, br *net.Branch, t int) {

	// check outage
	if br.IsOnOutage() {
		return
	}

	busK := br.BusK()
	busM := br.BusM()
	b := br.B()
	row := c.GRow

	rating := br.RatingA()
	if rating <= 0 {
		rating = net.BranchInfFlow
	}
	c.L[row] = -rating // p.u.
	c.U[row] = rating  // p.u.

	if busK.HasFlags(net.FlagVars, net.BusVarVAng) { // wk var
		c.G.SetI(c.GNnz, row)
		c.G.SetJ(c.GNnz, busK.IndexVAng(t))
		c.G.SetD(c.GNnz, -b)
		c.GNnz++
	} else {
		c.L[row] += b * busK.VAng(t)
		c.U[row] += b * busK.VAng(t)
	}

	if busM.HasFlags(net.FlagVars, net.BusVarVAng) { // wm var
		c.G.SetI(c.GNnz, row)
		c.G.SetJ(c.GNnz, busM.IndexVAng(t))
		c.G.SetD(c.GNnz, b)
		c.GNnz++
	} else {
		c.L[row] -= b * busM.VAng(t)
		c.U[row] -= b * busM.VAng(t)
	}

	if br.HasFlags(net.FlagVars, net.BranchVarPhase) { // phi var
		c.G.SetI(c.GNnz, row)
		c.G.SetJ(c.GNnz, br.IndexPhase(t))
		c.G.SetD(c.GNnz, b)
		c.GNnz++
	} else {
		c.L[row] -= b * br.Phase(t)
		c.U[row] -= b * br.Phase(t)
	}

	c.GRow++
}

// EvalStep has nothing to do for a linear constraint
func (o *DcFlowLim) EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) {
}

// StoreSensStep distributes the flow bound multipliers to the branch
func (o *DcFlowLim) StoreSensStep(c *Constr, br *net.Branch, t int, sA, sf, sGu, sGl []float64) {

	// check outage
	if br.IsOnOutage() {
		return
	}

	row := c.GRow
	br.SetSensPUBound(sGu[row], t)
	br.SetSensPLBound(sGl[row], t)
	c.GRow++
}

// Free has nothing to release
func (o *DcFlowLim) Free(c *Constr) {
}
