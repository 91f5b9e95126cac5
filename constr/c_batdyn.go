// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"github.com/raulhuatuco/pfnet/mat"
	"github.com/raulhuatuco/pfnet/net"
)

// BatDyn builds the battery energy dynamics as linear equality constraints.
// Per battery with both E and P registered as variables:
//
//	E_0 = E_init
//	E_{t+1} - E_t - eta_c Pc_t + (1/eta_d) Pd_t = 0      (t < T-1)
//	        - E_{T-1} - eta_c Pc_{T-1} + (1/eta_d) Pd_{T-1} = -E_final
//
// Batteries are owned by buses, so contributions are guarded by the
// per-(bus, period) bitmap.
type BatDyn struct{}

// register constraint type
func init() {
	callocators["BAT_DYN"] = func() Kernel { return new(BatDyn) }
}

// Init allocates type data
func (o *BatDyn) Init(c *Constr) {
}

// Clear resets counters and guard bits
func (o *BatDyn) Clear(c *Constr) {
	c.ANnz = 0
	c.ARow = 0
	c.ClearBusCounted()
}

// CountStep advances the A counters for one (branch, period) pair
func (o *BatDyn) CountStep(c *Constr, br *net.Branch, t int) {

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

			// batteries
			for _, bat := range bus.Bats() {

				// variables
				if bat.HasFlags(net.FlagVars, net.BatVarE) && bat.HasFlags(net.FlagVars, net.BatVarP) {

					// initial condition (E_0 = E_init)
					if t == 0 {
						c.ANnz++ // E_0
						c.ARow++
					}

					// update equation (E_{t+1} - E_t - eta_c Pc_t + (1/eta_d) Pd_t = 0)
					c.ANnz++ // E_t
					c.ANnz++ // Pc_t
					c.ANnz++ // Pd_t
					if t < T-1 { // t = T-1 is the last period
						c.ANnz++ // E_{t+1}
					}
					c.ARow++
				}
			}
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// Allocate builds the matrices from the counted dimensions
func (o *BatDyn) Allocate(c *Constr) {

	numVars := c.Network().NumVars()

	// J f
	c.J = mat.New(0, numVars, 0)
	c.Jbar = mat.New(0, 0, 0)
	c.F = make([]float64, 0)

	// A b
	c.A = mat.New(c.ARow, numVars, c.ANnz)
	c.B = make([]float64, c.ARow)

	// G l u
	c.G = mat.New(0, numVars, 0)
	c.Gbar = mat.New(0, 0, 0)
	c.L = make([]float64, 0)
	c.U = make([]float64, 0)
}

// AnalyzeStep writes the A pattern, coefficients and right-hand side for
// one (branch, period) pair
func (o *BatDyn) AnalyzeStep(c *Constr, br *net.Branch, t int) {

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

			// batteries
			for _, bat := range bus.Bats() {

				// variables
				if bat.HasFlags(net.FlagVars, net.BatVarE) && bat.HasFlags(net.FlagVars, net.BatVarP) {

					// initial condition (E_0 = E_init)
					if t == 0 {
						c.B[c.ARow] = bat.EInit()
						c.A.SetI(c.ANnz, c.ARow)
						c.A.SetJ(c.ANnz, bat.IndexE(t))
						c.A.SetD(c.ANnz, 1)
						c.ANnz++ // E_0
						c.ARow++
					}

					// update equation (E_{t+1} - E_t - eta_c Pc_t + (1/eta_d) Pd_t = 0)
					c.A.SetI(c.ANnz, c.ARow)
					c.A.SetJ(c.ANnz, bat.IndexE(t))
					c.A.SetD(c.ANnz, -1)
					c.ANnz++ // E_t

					c.A.SetI(c.ANnz, c.ARow)
					c.A.SetJ(c.ANnz, bat.IndexPc(t))
					c.A.SetD(c.ANnz, -bat.EtaC())
					c.ANnz++ // Pc_t

					c.A.SetI(c.ANnz, c.ARow)
					c.A.SetJ(c.ANnz, bat.IndexPd(t))
					c.A.SetD(c.ANnz, 1/bat.EtaD())
					c.ANnz++ // Pd_t

					if t < T-1 {
						c.B[c.ARow] = 0
						c.A.SetI(c.ANnz, c.ARow)
						c.A.SetJ(c.ANnz, bat.IndexE(t+1))
						c.A.SetD(c.ANnz, 1)
						c.ANnz++ // E_{t+1}
					} else {
						c.B[c.ARow] = -bat.EFinal()
					}
					c.ARow++
				}
			}
		}

		// update counted flag
		c.BusCounted[bus.Index()*T+t] = true
	}
}

// EvalStep has nothing to do for a linear constraint
func (o *BatDyn) EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) {
}

// StoreSensStep has nothing to store for now
func (o *BatDyn) StoreSensStep(c *Constr, br *net.Branch, t int, sA, sf, sGu, sGl []float64) {
}

// Free has nothing to release
func (o *BatDyn) Free(c *Constr) {
}
