// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"github.com/raulhuatuco/pfnet/mat"
	"github.com/raulhuatuco/pfnet/net"
)

// Linpf builds the linearized (DC) power balance as linear equality
// constraints: one row per (bus, period), indexed bus.Index()*T + t,
//
//	sum gen P - sum load P - sum bat (Pc - Pd) + sum vargen P
//	  - sum outgoing DC flows = b[row]
//
// with each branch flow -b (w_k - w_m - phi) expanded over the registered
// variables among {w_k, w_m, phi} and the fixed terms folded into b.
// Injection terms of fixed quantities are folded the same way. Branch
// incidence terms are emitted per branch and period; injections are guarded
// by the per-(bus, period) bitmap.
type Linpf struct{}

// register constraint type
func init() {
	callocators["LINPF"] = func() Kernel { return new(Linpf) }
}

// Init allocates type data
func (o *Linpf) Init(c *Constr) {
}

// Clear resets counters and guard bits
func (o *Linpf) Clear(c *Constr) {
	c.ANnz = 0
	c.ARow = 0
	c.ClearBusCounted()
}

// CountStep advances the A counters for one (branch, period) pair
func (o *Linpf) CountStep(c *Constr, br *net.Branch, t int) {

	// number of periods
	T := br.NumPeriods()

	// check outage
	if br.IsOnOutage() {
		return
	}

	// incidence terms: each registered angle/phase variable appears in the
	// balance rows of both endpoints
	if br.BusK().HasFlags(net.FlagVars, net.BusVarVAng) { // wk var
		c.ANnz += 2
	}
	if br.BusM().HasFlags(net.FlagVars, net.BusVarVAng) { // wm var
		c.ANnz += 2
	}
	if br.HasFlags(net.FlagVars, net.BranchVarPhase) { // phi var
		c.ANnz += 2
	}

	// injections
	buses := [2]*net.Bus{br.BusK(), br.BusM()}
	for _, bus := range buses {

		if !c.BusCounted[bus.Index()*T+t] {

			for _, gen := range bus.Gens() {
				if gen.HasFlags(net.FlagVars, net.GenVarP) {
					c.ANnz++ // P
				}
			}
			for _, load := range bus.Loads() {
				if load.HasFlags(net.FlagVars, net.LoadVarP) {
					c.ANnz++ // P
				}
			}
			for _, bat := range bus.Bats() {
				if bat.HasFlags(net.FlagVars, net.BatVarP) {
					c.ANnz += 2 // Pc, Pd
				}
			}
			for _, vg := range bus.VarGens() {
				if vg.HasFlags(net.FlagVars, net.VarGenVarP) {
					c.ANnz++ // P
				}
			}
			c.ARow++
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// Allocate builds the matrices from the counted dimensions. Rows are
// allocated for every (bus, period) regardless of connectivity so that the
// row index mapping stays bus.Index()*T + t.
func (o *Linpf) Allocate(c *Constr) {

	nt := c.Network()
	numVars := nt.NumVars()
	numConstr := nt.NumBuses() * nt.NumPeriods()

	// J f
	c.J = mat.New(0, numVars, 0)
	c.Jbar = mat.New(0, 0, 0)
	c.F = make([]float64, 0)

	// A b
	c.A = mat.New(numConstr, numVars, c.ANnz)
	c.B = make([]float64, numConstr)

	// G l u
	c.G = mat.New(0, numVars, 0)
	c.Gbar = mat.New(0, 0, 0)
	c.L = make([]float64, 0)
	c.U = make([]float64, 0)
}

// AnalyzeStep writes the A pattern, coefficients and right-hand side for
// one (branch, period) pair
func (o *Linpf) AnalyzeStep(c *Constr, br *net.Branch, t int) {

	// number of periods
	T := br.NumPeriods()

	// check outage
	if br.IsOnOutage() {
		return
	}

	busK := br.BusK()
	busM := br.BusM()
	b := br.B()
	rowK := busK.Index()*T + t
	rowM := busM.Index()*T + t

	// the flow from k to m is f = -b wk + b wm + b phi; the balance at k
	// subtracts it and the balance at m adds it
	if busK.HasFlags(net.FlagVars, net.BusVarVAng) { // wk var
		c.A.SetI(c.ANnz, rowK)
		c.A.SetJ(c.ANnz, busK.IndexVAng(t))
		c.A.SetD(c.ANnz, b)
		c.ANnz++
		c.A.SetI(c.ANnz, rowM)
		c.A.SetJ(c.ANnz, busK.IndexVAng(t))
		c.A.SetD(c.ANnz, -b)
		c.ANnz++
	} else {
		c.B[rowK] -= b * busK.VAng(t)
		c.B[rowM] += b * busK.VAng(t)
	}
	if busM.HasFlags(net.FlagVars, net.BusVarVAng) { // wm var
		c.A.SetI(c.ANnz, rowK)
		c.A.SetJ(c.ANnz, busM.IndexVAng(t))
		c.A.SetD(c.ANnz, -b)
		c.ANnz++
		c.A.SetI(c.ANnz, rowM)
		c.A.SetJ(c.ANnz, busM.IndexVAng(t))
		c.A.SetD(c.ANnz, b)
		c.ANnz++
	} else {
		c.B[rowK] += b * busM.VAng(t)
		c.B[rowM] -= b * busM.VAng(t)
	}
	if br.HasFlags(net.FlagVars, net.BranchVarPhase) { // phi var
		c.A.SetI(c.ANnz, rowK)
		c.A.SetJ(c.ANnz, br.IndexPhase(t))
		c.A.SetD(c.ANnz, -b)
		c.ANnz++
		c.A.SetI(c.ANnz, rowM)
		c.A.SetJ(c.ANnz, br.IndexPhase(t))
		c.A.SetD(c.ANnz, b)
		c.ANnz++
	} else {
		c.B[rowK] += b * br.Phase(t)
		c.B[rowM] -= b * br.Phase(t)
	}

	// injections
	buses := [2]*net.Bus{busK, busM}
	for _, bus := range buses {

		if !c.BusCounted[bus.Index()*T+t] {

			row := bus.Index()*T + t

			for _, gen := range bus.Gens() {
				if gen.HasFlags(net.FlagVars, net.GenVarP) {
					c.A.SetI(c.ANnz, row)
					c.A.SetJ(c.ANnz, gen.IndexP(t))
					c.A.SetD(c.ANnz, 1)
					c.ANnz++
				} else {
					c.B[row] -= gen.P(t)
				}
			}
			for _, load := range bus.Loads() {
				if load.HasFlags(net.FlagVars, net.LoadVarP) {
					c.A.SetI(c.ANnz, row)
					c.A.SetJ(c.ANnz, load.IndexP(t))
					c.A.SetD(c.ANnz, -1)
					c.ANnz++
				} else {
					c.B[row] += load.P(t)
				}
			}
			for _, bat := range bus.Bats() {
				if bat.HasFlags(net.FlagVars, net.BatVarP) {
					c.A.SetI(c.ANnz, row)
					c.A.SetJ(c.ANnz, bat.IndexPc(t))
					c.A.SetD(c.ANnz, -1)
					c.ANnz++
					c.A.SetI(c.ANnz, row)
					c.A.SetJ(c.ANnz, bat.IndexPd(t))
					c.A.SetD(c.ANnz, 1)
					c.ANnz++
				} else {
					c.B[row] += bat.P(t)
				}
			}
			for _, vg := range bus.VarGens() {
				if vg.HasFlags(net.FlagVars, net.VarGenVarP) {
					c.A.SetI(c.ANnz, row)
					c.A.SetJ(c.ANnz, vg.IndexP(t))
					c.A.SetD(c.ANnz, 1)
					c.ANnz++
				} else {
					c.B[row] -= vg.P(t)
				}
			}
			c.ARow++
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// EvalStep has nothing to do for a linear constraint
func (o *Linpf) EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) {
}

// StoreSensStep distributes the balance multipliers to the buses
func (o *Linpf) StoreSensStep(c *Constr, br *net.Branch, t int, sA, sf, sGu, sGl []float64) {

	// number of periods
	T := br.NumPeriods()

	// check outage
	if br.IsOnOutage() {
		return
	}

	buses := [2]*net.Bus{br.BusK(), br.BusM()}
	for _, bus := range buses {
		if !c.BusCounted[bus.Index()*T+t] {
			bus.SetSensPBalance(sA[bus.Index()*T+t], t)
		}
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// Free has nothing to release
func (o *Linpf) Free(c *Constr) {
}
