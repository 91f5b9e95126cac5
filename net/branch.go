// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

import "math"

// Branch types
const (
	BranchTypeLine = iota
	BranchTypeTranFixed
	BranchTypeTranTapV
	BranchTypeTranTapQ
	BranchTypeTranPhase
)

// Branch holds a pi-model transmission line or transformer connecting two
// buses on its "k" and "m" sides.
type Branch struct {

	// properties
	typ   int
	index int

	// buses
	busK   *Bus // bus connected to the "k" side
	busM   *Bus // bus connected to the "m" side
	regBus *Bus // bus regulated by this transformer

	// series and shunt admittances (p.u.)
	g  float64 // series conductance
	gK float64 // shunt conductance on "k" side
	gM float64 // shunt conductance on "m" side
	b  float64 // series susceptance
	bK float64 // shunt susceptance on "k" side
	bM float64 // shunt susceptance on "m" side

	// taps ratio
	ratio    []float64 // taps ratios (p.u.) [T]
	ratioMax float64
	ratioMin float64

	// phase shift
	phase    []float64 // phase shifts (radians) [T]
	phaseMax float64
	phaseMin float64

	// power ratings (p.u. system base MVA)
	ratingA float64
	ratingB float64
	ratingC float64

	// flags
	outage  bool
	vars    uint8
	fixed   uint8
	bounded uint8
	sparse  uint8

	// indices
	indexRatio  []int // taps ratio indices [T]
	indexRatioY []int // taps ratio positive deviation indices [T]
	indexRatioZ []int // taps ratio negative deviation indices [T]
	indexPhase  []int // phase shift indices [T]

	// sensitivities
	sensPUBound []float64 // active power flow upper bound [T]
	sensPLBound []float64 // active power flow lower bound [T]
}

// initBranch initializes a branch for the given number of time periods
func (o *Branch) initBranch(index, numPeriods int) {
	o.typ = BranchTypeLine
	o.index = index
	o.ratio = make([]float64, numPeriods)
	o.phase = make([]float64, numPeriods)
	for t := 0; t < numPeriods; t++ {
		o.ratio[t] = 1
	}
	o.ratioMax = 1
	o.ratioMin = 1
	o.indexRatio = make([]int, numPeriods)
	o.indexRatioY = make([]int, numPeriods)
	o.indexRatioZ = make([]int, numPeriods)
	o.indexPhase = make([]int, numPeriods)
	o.sensPUBound = make([]float64, numPeriods)
	o.sensPLBound = make([]float64, numPeriods)
}

// basic accessors

func (o *Branch) Type() int          { return o.typ }
func (o *Branch) Index() int         { return o.index }
func (o *Branch) NumPeriods() int    { return len(o.ratio) }
func (o *Branch) BusK() *Bus         { return o.busK }
func (o *Branch) BusM() *Bus         { return o.busM }
func (o *Branch) RegBus() *Bus       { return o.regBus }
func (o *Branch) G() float64         { return o.g }
func (o *Branch) GK() float64        { return o.gK }
func (o *Branch) GM() float64        { return o.gM }
func (o *Branch) B() float64         { return o.b }
func (o *Branch) BK() float64        { return o.bK }
func (o *Branch) BM() float64        { return o.bM }
func (o *Branch) Ratio(t int) float64 { return o.ratio[t] }
func (o *Branch) RatioMax() float64  { return o.ratioMax }
func (o *Branch) RatioMin() float64  { return o.ratioMin }
func (o *Branch) Phase(t int) float64 { return o.phase[t] }
func (o *Branch) PhaseMax() float64  { return o.phaseMax }
func (o *Branch) PhaseMin() float64  { return o.phaseMin }
func (o *Branch) RatingA() float64   { return o.ratingA }
func (o *Branch) RatingB() float64   { return o.ratingB }
func (o *Branch) RatingC() float64   { return o.ratingC }
func (o *Branch) IsOnOutage() bool   { return o.outage }

func (o *Branch) SetType(t int)            { o.typ = t }
func (o *Branch) SetBusK(bus *Bus)         { o.busK = bus }
func (o *Branch) SetBusM(bus *Bus)         { o.busM = bus }
func (o *Branch) SetRegBus(bus *Bus)       { o.regBus = bus }
func (o *Branch) SetG(v float64)           { o.g = v }
func (o *Branch) SetGK(v float64)          { o.gK = v }
func (o *Branch) SetGM(v float64)          { o.gM = v }
func (o *Branch) SetB(v float64)           { o.b = v }
func (o *Branch) SetBK(v float64)          { o.bK = v }
func (o *Branch) SetBM(v float64)          { o.bM = v }
func (o *Branch) SetRatio(v float64, t int) { o.ratio[t] = v }
func (o *Branch) SetRatioMax(v float64)    { o.ratioMax = v }
func (o *Branch) SetRatioMin(v float64)    { o.ratioMin = v }
func (o *Branch) SetPhase(v float64, t int) { o.phase[t] = v }
func (o *Branch) SetPhaseMax(v float64)    { o.phaseMax = v }
func (o *Branch) SetPhaseMin(v float64)    { o.phaseMin = v }
func (o *Branch) SetRatingA(v float64)     { o.ratingA = v }
func (o *Branch) SetRatingB(v float64)     { o.ratingB = v }
func (o *Branch) SetRatingC(v float64)     { o.ratingC = v }
func (o *Branch) SetOutage(flag bool)      { o.outage = flag }

// type predicates

func (o *Branch) IsLine() bool         { return o.typ == BranchTypeLine }
func (o *Branch) IsFixedTran() bool    { return o.typ == BranchTypeTranFixed }
func (o *Branch) IsPhaseShifter() bool { return o.typ == BranchTypeTranPhase }
func (o *Branch) IsTapChangerV() bool  { return o.typ == BranchTypeTranTapV }
func (o *Branch) IsTapChangerQ() bool  { return o.typ == BranchTypeTranTapQ }
func (o *Branch) IsTapChanger() bool   { return o.IsTapChangerV() || o.IsTapChangerQ() }

// index accessors

func (o *Branch) IndexRatio(t int) int  { return o.indexRatio[t] }
func (o *Branch) IndexRatioY(t int) int { return o.indexRatioY[t] }
func (o *Branch) IndexRatioZ(t int) int { return o.indexRatioZ[t] }
func (o *Branch) IndexPhase(t int) int  { return o.indexPhase[t] }

// sensitivity accessors

func (o *Branch) SensPUBound(t int) float64 { return o.sensPUBound[t] }
func (o *Branch) SensPLBound(t int) float64 { return o.sensPLBound[t] }

func (o *Branch) SetSensPUBound(v float64, t int) { o.sensPUBound[t] = v }
func (o *Branch) SetSensPLBound(v float64, t int) { o.sensPLBound[t] = v }

// ClearSensitivities zeroes all sensitivity information
func (o *Branch) ClearSensitivities() {
	for t := 0; t < o.NumPeriods(); t++ {
		o.sensPUBound[t] = 0
		o.sensPLBound[t] = 0
	}
}

// HasFlags tells whether all quantities in mask have the given flag set
func (o *Branch) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *Branch) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns one
// sequential index per enabled quantity and time period starting at index.
// The RatioDev quantity takes two indices per period (y and z). Returns the
// next free index.
func (o *Branch) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&BranchVarRatio == 0 && mask&BranchVarRatio != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexRatio[t] = index
				index++
			}
		}
		*f |= BranchVarRatio
	}
	if (*f)&BranchVarPhase == 0 && mask&BranchVarPhase != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexPhase[t] = index
				index++
			}
		}
		*f |= BranchVarPhase
	}
	if (*f)&BranchVarRatioDev == 0 && mask&BranchVarRatioDev != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexRatioY[t] = index
				o.indexRatioZ[t] = index + 1
				index += 2
			}
		}
		*f |= BranchVarRatioDev
	}
	return index
}

// GetVarValues fills values at this branch's variable indices according to code
func (o *Branch) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&BranchVarRatio != 0 {
			switch code {
			case UpperLimits:
				values[o.indexRatio[t]] = o.ratioMax
			case LowerLimits:
				values[o.indexRatio[t]] = o.ratioMin
			default:
				values[o.indexRatio[t]] = o.ratio[t]
			}
		}
		if o.vars&BranchVarPhase != 0 {
			switch code {
			case UpperLimits:
				values[o.indexPhase[t]] = o.phaseMax
			case LowerLimits:
				values[o.indexPhase[t]] = o.phaseMin
			default:
				values[o.indexPhase[t]] = o.phase[t]
			}
		}
		if o.vars&BranchVarRatioDev != 0 {
			switch code {
			case UpperLimits:
				values[o.indexRatioY[t]] = BranchInfRatio
				values[o.indexRatioZ[t]] = BranchInfRatio
			default:
				values[o.indexRatioY[t]] = 0
				values[o.indexRatioZ[t]] = 0
			}
		}
	}
}

// SetVarValues updates this branch from the variable values vector
func (o *Branch) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&BranchVarRatio != 0 {
			o.ratio[t] = values[o.indexRatio[t]]
		}
		if o.vars&BranchVarPhase != 0 {
			o.phase[t] = values[o.indexPhase[t]]
		}
	}
}

// flows ///////////////////////////////////////////////////////////////////

// flowKM returns the complex power components flowing from side k to side m
// of the pi model at time t. The k endpoint sees the taps ratio.
func (o *Branch) flowKM(t int) (P, Q float64) {
	vk := o.busK.VMag(t)
	vm := o.busM.VMag(t)
	a := o.ratio[t]
	theta := o.busK.VAng(t) - o.busM.VAng(t) - o.phase[t]
	P = a*a*(o.gK+o.g)*vk*vk - a*vk*vm*(o.g*math.Cos(theta)+o.b*math.Sin(theta))
	Q = -a*a*(o.bK+o.b)*vk*vk - a*vk*vm*(o.g*math.Sin(theta)-o.b*math.Cos(theta))
	return
}

// flowMK returns the complex power components flowing from side m to side k
// of the pi model at time t.
func (o *Branch) flowMK(t int) (P, Q float64) {
	vk := o.busK.VMag(t)
	vm := o.busM.VMag(t)
	a := o.ratio[t]
	theta := o.busM.VAng(t) - o.busK.VAng(t) + o.phase[t]
	P = (o.gM+o.g)*vm*vm - a*vk*vm*(o.g*math.Cos(theta)+o.b*math.Sin(theta))
	Q = -(o.bM+o.b)*vm*vm - a*vk*vm*(o.g*math.Sin(theta)-o.b*math.Cos(theta))
	return
}

// PKm returns the active power flow entering the branch at the "k" side (p.u.)
func (o *Branch) PKm(t int) float64 {
	P, _ := o.flowKM(t)
	return P
}

// QKm returns the reactive power flow entering the branch at the "k" side (p.u.)
func (o *Branch) QKm(t int) float64 {
	_, Q := o.flowKM(t)
	return Q
}

// PMk returns the active power flow entering the branch at the "m" side (p.u.)
func (o *Branch) PMk(t int) float64 {
	P, _ := o.flowMK(t)
	return P
}

// QMk returns the reactive power flow entering the branch at the "m" side (p.u.)
func (o *Branch) QMk(t int) float64 {
	_, Q := o.flowMK(t)
	return Q
}

// PKShunt returns the active power consumed by the "k" side shunt (p.u.)
func (o *Branch) PKShunt(t int) float64 {
	vk := o.busK.VMag(t)
	a := o.ratio[t]
	return o.gK * a * a * vk * vk
}

// QKShunt returns the reactive power consumed by the "k" side shunt (p.u.)
func (o *Branch) QKShunt(t int) float64 {
	vk := o.busK.VMag(t)
	a := o.ratio[t]
	return -o.bK * a * a * vk * vk
}

// PMShunt returns the active power consumed by the "m" side shunt (p.u.)
func (o *Branch) PMShunt(t int) float64 {
	vm := o.busM.VMag(t)
	return o.gM * vm * vm
}

// QMShunt returns the reactive power consumed by the "m" side shunt (p.u.)
func (o *Branch) QMShunt(t int) float64 {
	vm := o.busM.VMag(t)
	return -o.bM * vm * vm
}

// PKmSeries returns the active power entering the series element from the
// "k" side (p.u.)
func (o *Branch) PKmSeries(t int) float64 {
	return o.PKm(t) - o.PKShunt(t)
}

// QKmSeries returns the reactive power entering the series element from the
// "k" side (p.u.)
func (o *Branch) QKmSeries(t int) float64 {
	return o.QKm(t) - o.QKShunt(t)
}

// PMkSeries returns the active power entering the series element from the
// "m" side (p.u.)
func (o *Branch) PMkSeries(t int) float64 {
	return o.PMk(t) - o.PMShunt(t)
}

// QMkSeries returns the reactive power entering the series element from the
// "m" side (p.u.)
func (o *Branch) QMkSeries(t int) float64 {
	return o.QMk(t) - o.QMShunt(t)
}

// PFlowDC returns the active power flow from "k" to "m" under the DC
// approximation (p.u.)
func (o *Branch) PFlowDC(t int) float64 {
	return -o.b * (o.busK.VAng(t) - o.busM.VAng(t) - o.phase[t])
}
