// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

// Shunt holds a shunt device attached to a bus
type Shunt struct {

	// properties
	index int

	// buses
	bus    *Bus // bus where this shunt is connected
	regBus *Bus // bus regulated by this switched shunt

	// admittance (p.u.)
	g    float64   // conductance
	b    []float64 // susceptances [T]
	bMax float64   // maximum susceptance
	bMin float64   // minimum susceptance

	// flags
	vars    uint8
	fixed   uint8
	bounded uint8
	sparse  uint8

	// indices
	indexB []int // susceptance indices [T]

	// sensitivities
	sensBUBound []float64 // [T]
	sensBLBound []float64 // [T]
}

// initShunt initializes a shunt for the given number of time periods
func (o *Shunt) initShunt(index, numPeriods int) {
	o.index = index
	o.b = make([]float64, numPeriods)
	o.indexB = make([]int, numPeriods)
	o.sensBUBound = make([]float64, numPeriods)
	o.sensBLBound = make([]float64, numPeriods)
}

// basic accessors

func (o *Shunt) Index() int       { return o.index }
func (o *Shunt) NumPeriods() int  { return len(o.b) }
func (o *Shunt) Bus() *Bus        { return o.bus }
func (o *Shunt) RegBus() *Bus     { return o.regBus }
func (o *Shunt) G() float64       { return o.g }
func (o *Shunt) B(t int) float64  { return o.b[t] }
func (o *Shunt) BMax() float64    { return o.bMax }
func (o *Shunt) BMin() float64    { return o.bMin }
func (o *Shunt) IsSwitched() bool { return o.regBus != nil }

func (o *Shunt) SetBus(bus *Bus)       { o.bus = bus }
func (o *Shunt) SetRegBus(bus *Bus)    { o.regBus = bus }
func (o *Shunt) SetG(v float64)        { o.g = v }
func (o *Shunt) SetB(v float64, t int) { o.b[t] = v }
func (o *Shunt) SetBMax(v float64)     { o.bMax = v }
func (o *Shunt) SetBMin(v float64)     { o.bMin = v }

// index accessors

func (o *Shunt) IndexB(t int) int { return o.indexB[t] }

// sensitivity accessors

func (o *Shunt) SensBUBound(t int) float64 { return o.sensBUBound[t] }
func (o *Shunt) SensBLBound(t int) float64 { return o.sensBLBound[t] }

func (o *Shunt) SetSensBUBound(v float64, t int) { o.sensBUBound[t] = v }
func (o *Shunt) SetSensBLBound(v float64, t int) { o.sensBLBound[t] = v }

// HasFlags tells whether all quantities in mask have the given flag set
func (o *Shunt) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *Shunt) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns one
// sequential index per enabled quantity and time period starting at index.
// Returns the next free index.
func (o *Shunt) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&ShuntVarSusc == 0 && mask&ShuntVarSusc != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexB[t] = index
				index++
			}
		}
		*f |= ShuntVarSusc
	}
	return index
}

// GetVarValues fills values at this shunt's variable indices according to code
func (o *Shunt) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&ShuntVarSusc != 0 {
			switch code {
			case UpperLimits:
				values[o.indexB[t]] = o.bMax
			case LowerLimits:
				values[o.indexB[t]] = o.bMin
			default:
				values[o.indexB[t]] = o.b[t]
			}
		}
	}
}

// SetVarValues updates this shunt from the variable values vector
func (o *Shunt) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&ShuntVarSusc != 0 {
			o.b[t] = values[o.indexB[t]]
		}
	}
}
