// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

// VarGen holds a variable (renewable) generator attached to a bus
type VarGen struct {

	// properties
	index int
	name  string

	// bus
	bus *Bus

	// power (p.u. system base MVA)
	p    []float64 // available active powers [T]
	pStd []float64 // active power standard deviations [T]
	pMax float64
	pMin float64
	q    []float64 // reactive powers [T]
	qMax float64
	qMin float64

	// flags
	vars    uint8
	fixed   uint8
	bounded uint8
	sparse  uint8

	// indices
	indexP []int // active power indices [T]
	indexQ []int // reactive power indices [T]
}

// initVarGen initializes a variable generator for the given number of time periods
func (o *VarGen) initVarGen(index, numPeriods int) {
	o.index = index
	o.p = make([]float64, numPeriods)
	o.pStd = make([]float64, numPeriods)
	o.q = make([]float64, numPeriods)
	o.indexP = make([]int, numPeriods)
	o.indexQ = make([]int, numPeriods)
}

// basic accessors

func (o *VarGen) Index() int         { return o.index }
func (o *VarGen) Name() string       { return o.name }
func (o *VarGen) NumPeriods() int    { return len(o.p) }
func (o *VarGen) Bus() *Bus          { return o.bus }
func (o *VarGen) P(t int) float64    { return o.p[t] }
func (o *VarGen) PStd(t int) float64 { return o.pStd[t] }
func (o *VarGen) PMax() float64      { return o.pMax }
func (o *VarGen) PMin() float64      { return o.pMin }
func (o *VarGen) Q(t int) float64    { return o.q[t] }
func (o *VarGen) QMax() float64      { return o.qMax }
func (o *VarGen) QMin() float64      { return o.qMin }

func (o *VarGen) SetName(name string)      { o.name = name }
func (o *VarGen) SetBus(bus *Bus)          { o.bus = bus }
func (o *VarGen) SetP(v float64, t int)    { o.p[t] = v }
func (o *VarGen) SetPStd(v float64, t int) { o.pStd[t] = v }
func (o *VarGen) SetPMax(v float64)        { o.pMax = v }
func (o *VarGen) SetPMin(v float64)        { o.pMin = v }
func (o *VarGen) SetQ(v float64, t int)    { o.q[t] = v }
func (o *VarGen) SetQMax(v float64)        { o.qMax = v }
func (o *VarGen) SetQMin(v float64)        { o.qMin = v }

// index accessors

func (o *VarGen) IndexP(t int) int { return o.indexP[t] }
func (o *VarGen) IndexQ(t int) int { return o.indexQ[t] }

// HasFlags tells whether all quantities in mask have the given flag set
func (o *VarGen) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *VarGen) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns one
// sequential index per enabled quantity and time period starting at index.
// Returns the next free index.
func (o *VarGen) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&VarGenVarP == 0 && mask&VarGenVarP != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexP[t] = index
				index++
			}
		}
		*f |= VarGenVarP
	}
	if (*f)&VarGenVarQ == 0 && mask&VarGenVarQ != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexQ[t] = index
				index++
			}
		}
		*f |= VarGenVarQ
	}
	return index
}

// GetVarValues fills values at this generator's variable indices according to code
func (o *VarGen) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&VarGenVarP != 0 {
			switch code {
			case UpperLimits:
				values[o.indexP[t]] = o.pMax
			case LowerLimits:
				values[o.indexP[t]] = o.pMin
			default:
				values[o.indexP[t]] = o.p[t]
			}
		}
		if o.vars&VarGenVarQ != 0 {
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
func (o *VarGen) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&VarGenVarP != 0 {
			o.p[t] = values[o.indexP[t]]
		}
		if o.vars&VarGenVarQ != 0 {
			o.q[t] = values[o.indexQ[t]]
		}
	}
}
