// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

import "math"

// Load holds a load attached to a bus
type Load struct {

	// properties
	index int

	// bus
	bus *Bus

	// power (p.u. system base MVA)
	p    []float64 // active power consumptions [T]
	q    []float64 // reactive power consumptions [T]
	pMax []float64 // active power upper limits [T]
	pMin []float64 // active power lower limits [T]

	// target power factor for constant-factor adjustment
	targetPowerFactor float64

	// utility coefficients for P (in $/hr for P in p.u.)
	utilCoeffQ0 float64
	utilCoeffQ1 float64
	utilCoeffQ2 float64

	// flags
	vars    uint8
	fixed   uint8
	bounded uint8
	sparse  uint8

	// indices
	indexP []int // active power indices [T]
	indexQ []int // reactive power indices [T]

	// sensitivities
	sensPUBound []float64 // [T]
	sensPLBound []float64 // [T]
}

// initLoad initializes a load for the given number of time periods
func (o *Load) initLoad(index, numPeriods int) {
	o.index = index
	o.p = make([]float64, numPeriods)
	o.q = make([]float64, numPeriods)
	o.pMax = make([]float64, numPeriods)
	o.pMin = make([]float64, numPeriods)
	o.targetPowerFactor = 1
	o.indexP = make([]int, numPeriods)
	o.indexQ = make([]int, numPeriods)
	o.sensPUBound = make([]float64, numPeriods)
	o.sensPLBound = make([]float64, numPeriods)
}

// basic accessors

func (o *Load) Index() int          { return o.index }
func (o *Load) NumPeriods() int     { return len(o.p) }
func (o *Load) Bus() *Bus           { return o.bus }
func (o *Load) P(t int) float64     { return o.p[t] }
func (o *Load) Q(t int) float64     { return o.q[t] }
func (o *Load) PMax(t int) float64  { return o.pMax[t] }
func (o *Load) PMin(t int) float64  { return o.pMin[t] }

func (o *Load) SetBus(bus *Bus)          { o.bus = bus }
func (o *Load) SetP(v float64, t int)    { o.p[t] = v }
func (o *Load) SetQ(v float64, t int)    { o.q[t] = v }
func (o *Load) SetPMax(v float64, t int) { o.pMax[t] = v }
func (o *Load) SetPMin(v float64, t int) { o.pMin[t] = v }

// PowerFactor returns the power factor of the present consumption at time t
func (o *Load) PowerFactor(t int) float64 {
	s := math.Sqrt(o.p[t]*o.p[t] + o.q[t]*o.q[t])
	if s == 0 {
		return 1
	}
	return math.Abs(o.p[t]) / s
}

// TargetPowerFactor returns the target power factor
func (o *Load) TargetPowerFactor() float64 { return o.targetPowerFactor }

// SetTargetPowerFactor sets the target power factor, clipped to (0, 1]
func (o *Load) SetTargetPowerFactor(pf float64) {
	if pf > 1 {
		pf = 1
	}
	if pf <= 0 {
		pf = 1e-4
	}
	o.targetPowerFactor = pf
}

// IsPAdjustable tells whether the consumption has room to move
func (o *Load) IsPAdjustable(t int) bool {
	return o.pMin[t] < o.pMax[t]
}

// utility accessors

func (o *Load) UtilCoeffQ0() float64 { return o.utilCoeffQ0 }
func (o *Load) UtilCoeffQ1() float64 { return o.utilCoeffQ1 }
func (o *Load) UtilCoeffQ2() float64 { return o.utilCoeffQ2 }

func (o *Load) SetUtilCoeffQ0(v float64) { o.utilCoeffQ0 = v }
func (o *Load) SetUtilCoeffQ1(v float64) { o.utilCoeffQ1 = v }
func (o *Load) SetUtilCoeffQ2(v float64) { o.utilCoeffQ2 = v }

// PUtil returns the utility of the present consumption at time t
func (o *Load) PUtil(t int) float64 {
	return o.PUtilFor(o.p[t])
}

// PUtilFor returns the utility for a given consumption
func (o *Load) PUtilFor(P float64) float64 {
	return o.utilCoeffQ0 + o.utilCoeffQ1*P + o.utilCoeffQ2*P*P
}

// index accessors

func (o *Load) IndexP(t int) int { return o.indexP[t] }
func (o *Load) IndexQ(t int) int { return o.indexQ[t] }

// sensitivity accessors

func (o *Load) SensPUBound(t int) float64 { return o.sensPUBound[t] }
func (o *Load) SensPLBound(t int) float64 { return o.sensPLBound[t] }

func (o *Load) SetSensPUBound(v float64, t int) { o.sensPUBound[t] = v }
func (o *Load) SetSensPLBound(v float64, t int) { o.sensPLBound[t] = v }

// ClearSensitivities zeroes all sensitivity information
func (o *Load) ClearSensitivities() {
	for t := 0; t < o.NumPeriods(); t++ {
		o.sensPUBound[t] = 0
		o.sensPLBound[t] = 0
	}
}

// HasFlags tells whether all quantities in mask have the given flag set
func (o *Load) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *Load) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns one
// sequential index per enabled quantity and time period starting at index.
// Returns the next free index.
func (o *Load) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&LoadVarP == 0 && mask&LoadVarP != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexP[t] = index
				index++
			}
		}
		*f |= LoadVarP
	}
	if (*f)&LoadVarQ == 0 && mask&LoadVarQ != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexQ[t] = index
				index++
			}
		}
		*f |= LoadVarQ
	}
	return index
}

// GetVarValues fills values at this load's variable indices according to code
func (o *Load) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&LoadVarP != 0 {
			switch code {
			case UpperLimits:
				values[o.indexP[t]] = o.pMax[t]
			case LowerLimits:
				values[o.indexP[t]] = o.pMin[t]
			default:
				values[o.indexP[t]] = o.p[t]
			}
		}
		if o.vars&LoadVarQ != 0 {
			switch code {
			case UpperLimits:
				values[o.indexQ[t]] = LoadInfQ
			case LowerLimits:
				values[o.indexQ[t]] = -LoadInfQ
			default:
				values[o.indexQ[t]] = o.q[t]
			}
		}
	}
}

// SetVarValues updates this load from the variable values vector
func (o *Load) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&LoadVarP != 0 {
			o.p[t] = values[o.indexP[t]]
		}
		if o.vars&LoadVarQ != 0 {
			o.q[t] = values[o.indexQ[t]]
		}
	}
}

// PropagateDataInTime copies the first-period data into all later periods
func (o *Load) PropagateDataInTime() {
	for t := 1; t < o.NumPeriods(); t++ {
		o.p[t] = o.p[0]
		o.q[t] = o.q[0]
		o.pMax[t] = o.pMax[0]
		o.pMin[t] = o.pMin[0]
	}
}
