// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

// Bat holds a battery attached to a bus. The P variable maps to two column
// indices per period, one for the charging power Pc and one for the
// discharging power Pd, both nonnegative.
type Bat struct {

	// properties
	index int

	// bus
	bus *Bus

	// power (p.u. system base MVA)
	p    []float64 // net charging powers Pc - Pd [T]
	pMax float64   // maximum charging power
	pMin float64   // minimum charging power (negative of max discharge)

	// energy (p.u. system base MVA times time unit)
	e      []float64 // energy levels [T]
	eMax   float64   // energy capacity
	eInit  float64   // initial energy level
	eFinal float64   // final energy level

	// efficiencies (unitless, in (0, 1])
	etaC float64 // charging efficiency
	etaD float64 // discharging efficiency

	// flags
	vars    uint8
	fixed   uint8
	bounded uint8
	sparse  uint8

	// indices
	indexPc []int // charging power indices [T]
	indexPd []int // discharging power indices [T]
	indexE  []int // energy level indices [T]
}

// initBat initializes a battery for the given number of time periods
func (o *Bat) initBat(index, numPeriods int) {
	o.index = index
	o.p = make([]float64, numPeriods)
	o.e = make([]float64, numPeriods)
	o.etaC = 1
	o.etaD = 1
	o.indexPc = make([]int, numPeriods)
	o.indexPd = make([]int, numPeriods)
	o.indexE = make([]int, numPeriods)
}

// basic accessors

func (o *Bat) Index() int        { return o.index }
func (o *Bat) NumPeriods() int   { return len(o.p) }
func (o *Bat) Bus() *Bus         { return o.bus }
func (o *Bat) P(t int) float64   { return o.p[t] }
func (o *Bat) PMax() float64     { return o.pMax }
func (o *Bat) PMin() float64     { return o.pMin }
func (o *Bat) E(t int) float64   { return o.e[t] }
func (o *Bat) EMax() float64     { return o.eMax }
func (o *Bat) EInit() float64    { return o.eInit }
func (o *Bat) EFinal() float64   { return o.eFinal }
func (o *Bat) EtaC() float64     { return o.etaC }
func (o *Bat) EtaD() float64     { return o.etaD }

func (o *Bat) SetBus(bus *Bus)       { o.bus = bus }
func (o *Bat) SetP(v float64, t int) { o.p[t] = v }
func (o *Bat) SetPMax(v float64)     { o.pMax = v }
func (o *Bat) SetPMin(v float64)     { o.pMin = v }
func (o *Bat) SetE(v float64, t int) { o.e[t] = v }
func (o *Bat) SetEMax(v float64)     { o.eMax = v }
func (o *Bat) SetEInit(v float64)    { o.eInit = v }
func (o *Bat) SetEFinal(v float64)   { o.eFinal = v }
func (o *Bat) SetEtaC(v float64)     { o.etaC = v }
func (o *Bat) SetEtaD(v float64)     { o.etaD = v }

// index accessors

func (o *Bat) IndexPc(t int) int { return o.indexPc[t] }
func (o *Bat) IndexPd(t int) int { return o.indexPd[t] }
func (o *Bat) IndexE(t int) int  { return o.indexE[t] }

// HasFlags tells whether all quantities in mask have the given flag set
func (o *Bat) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *Bat) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns
// sequential indices per enabled quantity and time period starting at index.
// The P quantity takes two indices per period (Pc and Pd). Returns the next
// free index.
func (o *Bat) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&BatVarP == 0 && mask&BatVarP != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexPc[t] = index
				o.indexPd[t] = index + 1
				index += 2
			}
		}
		*f |= BatVarP
	}
	if (*f)&BatVarE == 0 && mask&BatVarE != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexE[t] = index
				index++
			}
		}
		*f |= BatVarE
	}
	return index
}

// GetVarValues fills values at this battery's variable indices according to code
func (o *Bat) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&BatVarP != 0 {
			switch code {
			case UpperLimits:
				values[o.indexPc[t]] = o.pMax
				values[o.indexPd[t]] = -o.pMin
			case LowerLimits:
				values[o.indexPc[t]] = 0
				values[o.indexPd[t]] = 0
			default:
				if o.p[t] >= 0 {
					values[o.indexPc[t]] = o.p[t]
					values[o.indexPd[t]] = 0
				} else {
					values[o.indexPc[t]] = 0
					values[o.indexPd[t]] = -o.p[t]
				}
			}
		}
		if o.vars&BatVarE != 0 {
			switch code {
			case UpperLimits:
				values[o.indexE[t]] = o.eMax
			case LowerLimits:
				values[o.indexE[t]] = 0
			default:
				values[o.indexE[t]] = o.e[t]
			}
		}
	}
}

// SetVarValues updates this battery from the variable values vector
func (o *Bat) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&BatVarP != 0 {
			o.p[t] = values[o.indexPc[t]] - values[o.indexPd[t]]
		}
		if o.vars&BatVarE != 0 {
			o.e[t] = values[o.indexE[t]]
		}
	}
}
