// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"github.com/raulhuatuco/pfnet/mat"
	"github.com/raulhuatuco/pfnet/net"
)

// Lbound builds variable bounds as linear inequality constraints: one row
// per registered variable index, holding a single unit entry in that
// variable's column, with the owning entity's limits in l and u. Rows are
// indexed by the variable index itself, so G is identity-patterned over the
// registered variables. Bus-owned quantities are guarded by the
// per-(bus, period) bitmap; branch quantities are emitted per branch and
// period.
type Lbound struct{}

// register constraint type
func init() {
	callocators["LBOUND"] = func() Kernel { return new(Lbound) }
}

// Init allocates type data
func (o *Lbound) Init(c *Constr) {
}

// Clear resets counters and guard bits
func (o *Lbound) Clear(c *Constr) {
	c.GNnz = 0
	c.ClearBusCounted()
}

// CountStep advances the G counter for one (branch, period) pair
func (o *Lbound) CountStep(c *Constr, br *net.Branch, t int) {

	// number of periods
	T := br.NumPeriods()

	// check outage
	if br.IsOnOutage() {
		return
	}

	// branch quantities
	if br.HasFlags(net.FlagVars, net.BranchVarRatio) {
		c.GNnz++ // a
	}
	if br.HasFlags(net.FlagVars, net.BranchVarPhase) {
		c.GNnz++ // phi
	}
	if br.HasFlags(net.FlagVars, net.BranchVarRatioDev) {
		c.GNnz += 2 // y, z
	}

	// buses
	buses := [2]*net.Bus{br.BusK(), br.BusM()}
	for _, bus := range buses {

		if !c.BusCounted[bus.Index()*T+t] {

			// bus quantities
			if bus.HasFlags(net.FlagVars, net.BusVarVMag) {
				c.GNnz++ // v
			}
			if bus.HasFlags(net.FlagVars, net.BusVarVAng) {
				c.GNnz++ // w
			}
			if bus.HasFlags(net.FlagVars, net.BusVarVDev) {
				c.GNnz += 2 // y, z
			}
			if bus.HasFlags(net.FlagVars, net.BusVarVVio) {
				c.GNnz += 2 // vl, vh
			}

			// generators
			for _, gen := range bus.Gens() {
				if gen.HasFlags(net.FlagVars, net.GenVarP) {
					c.GNnz++ // P
				}
				if gen.HasFlags(net.FlagVars, net.GenVarQ) {
					c.GNnz++ // Q
				}
			}

			// loads
			for _, load := range bus.Loads() {
				if load.HasFlags(net.FlagVars, net.LoadVarP) {
					c.GNnz++ // P
				}
				if load.HasFlags(net.FlagVars, net.LoadVarQ) {
					c.GNnz++ // Q
				}
			}

			// shunts
			for _, shunt := range bus.Shunts() {
				if shunt.HasFlags(net.FlagVars, net.ShuntVarSusc) {
					c.GNnz++ // b
				}
			}

			// batteries
			for _, bat := range bus.Bats() {
				if bat.HasFlags(net.FlagVars, net.BatVarP) {
					c.GNnz += 2 // Pc, Pd
				}
				if bat.HasFlags(net.FlagVars, net.BatVarE) {
					c.GNnz++ // E
				}
			}

			// variable generators
			for _, vg := range bus.VarGens() {
				if vg.HasFlags(net.FlagVars, net.VarGenVarP) {
					c.GNnz++ // P
				}
				if vg.HasFlags(net.FlagVars, net.VarGenVarQ) {
					c.GNnz++ // Q
				}
			}
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// Allocate builds the matrices from the counted dimensions
func (o *Lbound) Allocate(c *Constr) {

	numVars := c.Network().NumVars()

	// J f
	c.J = mat.New(0, numVars, 0)
	c.Jbar = mat.New(0, 0, 0)
	c.F = make([]float64, 0)

	// A b
	c.A = mat.New(0, numVars, 0)
	c.B = make([]float64, 0)

	// G l u
	c.G = mat.New(numVars, numVars, c.GNnz)
	c.Gbar = mat.New(numVars, 0, 0)
	c.L = make([]float64, numVars)
	c.U = make([]float64, numVars)
}

// bound writes the unit entry and the box sides of one variable index
func (o *Lbound) bound(c *Constr, index int, lo, hi float64) {
	c.G.SetI(c.GNnz, index)
	c.G.SetJ(c.GNnz, index)
	c.G.SetD(c.GNnz, 1)
	c.L[index] = lo
	c.U[index] = hi
	c.GNnz++
}

// AnalyzeStep writes the identity pattern and limits for one
// (branch, period) pair
func (o *Lbound) AnalyzeStep(c *Constr, br *net.Branch, t int) {

	// number of periods
	T := br.NumPeriods()

	// check outage
	if br.IsOnOutage() {
		return
	}

	// branch quantities
	if br.HasFlags(net.FlagVars, net.BranchVarRatio) {
		o.bound(c, br.IndexRatio(t), br.RatioMin(), br.RatioMax())
	}
	if br.HasFlags(net.FlagVars, net.BranchVarPhase) {
		o.bound(c, br.IndexPhase(t), br.PhaseMin(), br.PhaseMax())
	}
	if br.HasFlags(net.FlagVars, net.BranchVarRatioDev) {
		o.bound(c, br.IndexRatioY(t), 0, net.BranchInfRatio)
		o.bound(c, br.IndexRatioZ(t), 0, net.BranchInfRatio)
	}

	// buses
	buses := [2]*net.Bus{br.BusK(), br.BusM()}
	for _, bus := range buses {

		if !c.BusCounted[bus.Index()*T+t] {

			// bus quantities
			if bus.HasFlags(net.FlagVars, net.BusVarVMag) {
				o.bound(c, bus.IndexVMag(t), bus.VMin(), bus.VMax())
			}
			if bus.HasFlags(net.FlagVars, net.BusVarVAng) {
				o.bound(c, bus.IndexVAng(t), -net.BranchInfFlow, net.BranchInfFlow)
			}
			if bus.HasFlags(net.FlagVars, net.BusVarVDev) {
				o.bound(c, bus.IndexY(t), 0, net.BranchInfFlow)
				o.bound(c, bus.IndexZ(t), 0, net.BranchInfFlow)
			}
			if bus.HasFlags(net.FlagVars, net.BusVarVVio) {
				o.bound(c, bus.IndexVL(t), 0, net.BranchInfFlow)
				o.bound(c, bus.IndexVH(t), 0, net.BranchInfFlow)
			}

			// generators
			for _, gen := range bus.Gens() {
				if gen.HasFlags(net.FlagVars, net.GenVarP) {
					o.bound(c, gen.IndexP(t), gen.PMin(), gen.PMax())
				}
				if gen.HasFlags(net.FlagVars, net.GenVarQ) {
					o.bound(c, gen.IndexQ(t), gen.QMin(), gen.QMax())
				}
			}

			// loads
			for _, load := range bus.Loads() {
				if load.HasFlags(net.FlagVars, net.LoadVarP) {
					o.bound(c, load.IndexP(t), load.PMin(t), load.PMax(t))
				}
				if load.HasFlags(net.FlagVars, net.LoadVarQ) {
					o.bound(c, load.IndexQ(t), -net.LoadInfQ, net.LoadInfQ)
				}
			}

			// shunts
			for _, shunt := range bus.Shunts() {
				if shunt.HasFlags(net.FlagVars, net.ShuntVarSusc) {
					o.bound(c, shunt.IndexB(t), shunt.BMin(), shunt.BMax())
				}
			}

			// batteries
			for _, bat := range bus.Bats() {
				if bat.HasFlags(net.FlagVars, net.BatVarP) {
					o.bound(c, bat.IndexPc(t), 0, bat.PMax())
					o.bound(c, bat.IndexPd(t), 0, -bat.PMin())
				}
				if bat.HasFlags(net.FlagVars, net.BatVarE) {
					o.bound(c, bat.IndexE(t), 0, bat.EMax())
				}
			}

			// variable generators
			for _, vg := range bus.VarGens() {
				if vg.HasFlags(net.FlagVars, net.VarGenVarP) {
					o.bound(c, vg.IndexP(t), vg.PMin(), vg.PMax())
				}
				if vg.HasFlags(net.FlagVars, net.VarGenVarQ) {
					o.bound(c, vg.IndexQ(t), vg.QMin(), vg.QMax())
				}
			}
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// EvalStep has nothing to do for a linear constraint
func (o *Lbound) EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) {
}

// StoreSensStep distributes the bound multipliers to the owning entities
func (o *Lbound) StoreSensStep(c *Constr, br *net.Branch, t int, sA, sf, sGu, sGl []float64) {

	// number of periods
	T := br.NumPeriods()

	// check outage
	if br.IsOnOutage() {
		return
	}

	// buses
	buses := [2]*net.Bus{br.BusK(), br.BusM()}
	for _, bus := range buses {

		if !c.BusCounted[bus.Index()*T+t] {

			if bus.HasFlags(net.FlagVars, net.BusVarVMag) {
				bus.SetSensVMagUBound(sGu[bus.IndexVMag(t)], t)
				bus.SetSensVMagLBound(sGl[bus.IndexVMag(t)], t)
			}
			for _, gen := range bus.Gens() {
				if gen.HasFlags(net.FlagVars, net.GenVarP) {
					gen.SetSensPUBound(sGu[gen.IndexP(t)], t)
					gen.SetSensPLBound(sGl[gen.IndexP(t)], t)
				}
				if gen.HasFlags(net.FlagVars, net.GenVarQ) {
					gen.SetSensQUBound(sGu[gen.IndexQ(t)], t)
					gen.SetSensQLBound(sGl[gen.IndexQ(t)], t)
				}
			}
			for _, load := range bus.Loads() {
				if load.HasFlags(net.FlagVars, net.LoadVarP) {
					load.SetSensPUBound(sGu[load.IndexP(t)], t)
					load.SetSensPLBound(sGl[load.IndexP(t)], t)
				}
			}
			for _, shunt := range bus.Shunts() {
				if shunt.HasFlags(net.FlagVars, net.ShuntVarSusc) {
					shunt.SetSensBUBound(sGu[shunt.IndexB(t)], t)
					shunt.SetSensBLBound(sGl[shunt.IndexB(t)], t)
				}
			}
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// Free has nothing to release
func (o *Lbound) Free(c *Constr) {
}
