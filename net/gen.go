// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

// Gen holds a generator attached to a bus
type Gen struct {

	// properties
	index  int
	outage bool

	// buses
	bus    *Bus // bus where this generator is connected
	regBus *Bus // bus regulated by this generator

	// power (p.u. system base MVA)
	p    []float64 // active powers [T]
	q    []float64 // reactive powers [T]
	pMax float64
	pMin float64
	qMax float64
	qMin float64

	// cost coefficients for P (in $/hr for P in p.u.)
	costCoeffQ0 float64
	costCoeffQ1 float64
	costCoeffQ2 float64

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
	sensQUBound []float64 // [T]
	sensQLBound []float64 // [T]
}

// initGen initializes a generator for the given number of time periods
func (o *Gen) initGen(index, numPeriods int) {
	o.index = index
	o.p = make([]float64, numPeriods)
	o.q = make([]float64, numPeriods)
	o.indexP = make([]int, numPeriods)
	o.indexQ = make([]int, numPeriods)
	o.sensPUBound = make([]float64, numPeriods)
	o.sensPLBound = make([]float64, numPeriods)
	o.sensQUBound = make([]float64, numPeriods)
	o.sensQLBound = make([]float64, numPeriods)
}

// basic accessors

func (o *Gen) Index() int        { return o.index }
func (o *Gen) NumPeriods() int   { return len(o.p) }
func (o *Gen) Bus() *Bus         { return o.bus }
func (o *Gen) RegBus() *Bus      { return o.regBus }
func (o *Gen) P(t int) float64   { return o.p[t] }
func (o *Gen) Q(t int) float64   { return o.q[t] }
func (o *Gen) PMax() float64     { return o.pMax }
func (o *Gen) PMin() float64     { return o.pMin }
func (o *Gen) QMax() float64     { return o.qMax }
func (o *Gen) QMin() float64     { return o.qMin }
func (o *Gen) IsOnOutage() bool  { return o.outage }
func (o *Gen) IsRegulator() bool { return o.regBus != nil }

func (o *Gen) SetBus(bus *Bus)        { o.bus = bus }
func (o *Gen) SetRegBus(bus *Bus)     { o.regBus = bus }
func (o *Gen) SetP(v float64, t int)  { o.p[t] = v }
func (o *Gen) SetQ(v float64, t int)  { o.q[t] = v }
func (o *Gen) SetPMax(v float64)      { o.pMax = v }
func (o *Gen) SetPMin(v float64)      { o.pMin = v }
func (o *Gen) SetQMax(v float64)      { o.qMax = v }
func (o *Gen) SetQMin(v float64)      { o.qMin = v }
func (o *Gen) SetOutage(flag bool)    { o.outage = flag }

// cost accessors

func (o *Gen) CostCoeffQ0() float64 { return o.costCoeffQ0 }
func (o *Gen) CostCoeffQ1() float64 { return o.costCoeffQ1 }
func (o *Gen) CostCoeffQ2() float64 { return o.costCoeffQ2 }

func (o *Gen) SetCostCoeffQ0(v float64) { o.costCoeffQ0 = v }
func (o *Gen) SetCostCoeffQ1(v float64) { o.costCoeffQ1 = v }
func (o *Gen) SetCostCoeffQ2(v float64) { o.costCoeffQ2 = v }

// PCost returns the cost of the present active power at time t
func (o *Gen) PCost(t int) float64 {
	return o.PCostFor(o.p[t])
}

// PCostFor returns the cost for a given active power
func (o *Gen) PCostFor(P float64) float64 {
	return o.costCoeffQ0 + o.costCoeffQ1*P + o.costCoeffQ2*P*P
}

// index accessors

func (o *Gen) IndexP(t int) int { return o.indexP[t] }
func (o *Gen) IndexQ(t int) int { return o.indexQ[t] }

// sensitivity accessors

func (o *Gen) SensPUBound(t int) float64 { return o.sensPUBound[t] }
func (o *Gen) SensPLBound(t int) float64 { return o.sensPLBound[t] }
func (o *Gen) SensQUBound(t int) float64 { return o.sensQUBound[t] }
func (o *Gen) SensQLBound(t int) float64 { return o.sensQLBound[t] }

func (o *Gen) SetSensPUBound(v float64, t int) { o.sensPUBound[t] = v }
func (o *Gen) SetSensPLBound(v float64, t int) { o.sensPLBound[t] = v }
func (o *Gen) SetSensQUBound(v float64, t int) { o.sensQUBound[t] = v }
func (o *Gen) SetSensQLBound(v float64, t int) { o.sensQLBound[t] = v }

// ClearSensitivities zeroes all sensitivity information
func (o *Gen) ClearSensitivities() {
	for t := 0; t < o.NumPeriods(); t++ {
		o.sensPUBound[t] = 0
		o.sensPLBound[t] = 0
		o.sensQUBound[t] = 0
		o.sensQLBound[t] = 0
	}
}

// HasFlags tells whether all quantities in mask have the given flag set
func (o *Gen) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *Gen) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns one
// sequential index per enabled quantity and time period starting at index.
// Returns the next free index.
func (o *Gen) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&GenVarP == 0 && mask&GenVarP != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexP[t] = index
				index++
			}
		}
		*f |= GenVarP
	}
	if (*f)&GenVarQ == 0 && mask&GenVarQ != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexQ[t] = index
				index++
			}
		}
		*f |= GenVarQ
	}
	return index
}

// GetVarValues fills values at this generator's variable indices according to code
func (o *Gen) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&GenVarP != 0 {
			switch code {
			case UpperLimits:
				values[o.indexP[t]] = o.pMax
			case LowerLimits:
				values[o.indexP[t]] = o.pMin
			default:
				values[o.indexP[t]] = o.p[t]
			}
		}
		if o.vars&GenVarQ != 0 {
			switch code {
			case UpperLimits:
				values[o.indexQ[t]] = o.qMax
			case LowerLimits:
				values[o.indexQ[t]] = o.qMin
			default:
				values[o.indexQ[t]] = o.q[t]
			}
		}
	}
}

// SetVarValues updates this generator from the variable values vector
func (o *Gen) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&GenVarP != 0 {
			o.p[t] = values[o.indexP[t]]
		}
		if o.vars&GenVarQ != 0 {
			o.q[t] = values[o.indexQ[t]]
		}
	}
}
