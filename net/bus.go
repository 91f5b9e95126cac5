// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

// Bus holds one node of the power network. Value and index arrays have one
// entry per time period.
type Bus struct {

	// properties
	index  int    // bus index within the network
	number int    // external bus number
	name   string // bus name
	slack  bool   // slack bus

	// voltage
	vMag []float64 // voltage magnitudes (p.u.) [T]
	vAng []float64 // voltage angles (radians) [T]
	vSet float64   // voltage set point (p.u.)
	vMax float64   // maximum voltage magnitude (p.u.)
	vMin float64   // minimum voltage magnitude (p.u.)

	// flags
	vars    uint8
	fixed   uint8
	bounded uint8
	sparse  uint8

	// indices
	indexVMag []int // voltage magnitude indices [T]
	indexVAng []int // voltage angle indices [T]
	indexY    []int // positive voltage deviation indices [T]
	indexZ    []int // negative voltage deviation indices [T]
	indexVL   []int // low voltage violation indices [T]
	indexVH   []int // high voltage violation indices [T]

	// sensitivities
	sensPBalance   []float64 // active power balance [T]
	sensQBalance   []float64 // reactive power balance [T]
	sensVMagUBound []float64 // voltage magnitude upper bound [T]
	sensVMagLBound []float64 // voltage magnitude lower bound [T]

	// connections
	gens      []*Gen
	regGens   []*Gen
	loads     []*Load
	shunts    []*Shunt
	bats      []*Bat
	vargens   []*VarGen
	branchesK []*Branch // branches connected on the "k" side
	branchesM []*Branch // branches connected on the "m" side
	regTrans  []*Branch // transformers regulating this bus
}

// initBus initializes a bus for the given number of time periods
func (o *Bus) initBus(index, numPeriods int) {
	o.index = index
	o.vMag = make([]float64, numPeriods)
	o.vAng = make([]float64, numPeriods)
	o.vSet = 1
	o.vMax = 1.1
	o.vMin = 0.9
	for t := 0; t < numPeriods; t++ {
		o.vMag[t] = 1
	}
	o.indexVMag = make([]int, numPeriods)
	o.indexVAng = make([]int, numPeriods)
	o.indexY = make([]int, numPeriods)
	o.indexZ = make([]int, numPeriods)
	o.indexVL = make([]int, numPeriods)
	o.indexVH = make([]int, numPeriods)
	o.sensPBalance = make([]float64, numPeriods)
	o.sensQBalance = make([]float64, numPeriods)
	o.sensVMagUBound = make([]float64, numPeriods)
	o.sensVMagLBound = make([]float64, numPeriods)
}

// basic accessors

func (o *Bus) Index() int          { return o.index }
func (o *Bus) Number() int         { return o.number }
func (o *Bus) Name() string        { return o.name }
func (o *Bus) NumPeriods() int     { return len(o.vMag) }
func (o *Bus) IsSlack() bool       { return o.slack }
func (o *Bus) VMag(t int) float64  { return o.vMag[t] }
func (o *Bus) VAng(t int) float64  { return o.vAng[t] }
func (o *Bus) VSet() float64       { return o.vSet }
func (o *Bus) VMax() float64       { return o.vMax }
func (o *Bus) VMin() float64       { return o.vMin }

func (o *Bus) SetNumber(n int)         { o.number = n }
func (o *Bus) SetName(name string)     { o.name = name }
func (o *Bus) SetSlack(flag bool)      { o.slack = flag }
func (o *Bus) SetVMag(v float64, t int) { o.vMag[t] = v }
func (o *Bus) SetVAng(w float64, t int) { o.vAng[t] = w }
func (o *Bus) SetVSet(v float64)       { o.vSet = v }
func (o *Bus) SetVMax(v float64)       { o.vMax = v }
func (o *Bus) SetVMin(v float64)       { o.vMin = v }

// index accessors

func (o *Bus) IndexVMag(t int) int { return o.indexVMag[t] }
func (o *Bus) IndexVAng(t int) int { return o.indexVAng[t] }
func (o *Bus) IndexY(t int) int    { return o.indexY[t] }
func (o *Bus) IndexZ(t int) int    { return o.indexZ[t] }
func (o *Bus) IndexVL(t int) int   { return o.indexVL[t] }
func (o *Bus) IndexVH(t int) int   { return o.indexVH[t] }

// sensitivity accessors

func (o *Bus) SensPBalance(t int) float64   { return o.sensPBalance[t] }
func (o *Bus) SensQBalance(t int) float64   { return o.sensQBalance[t] }
func (o *Bus) SensVMagUBound(t int) float64 { return o.sensVMagUBound[t] }
func (o *Bus) SensVMagLBound(t int) float64 { return o.sensVMagLBound[t] }

func (o *Bus) SetSensPBalance(v float64, t int)   { o.sensPBalance[t] = v }
func (o *Bus) SetSensQBalance(v float64, t int)   { o.sensQBalance[t] = v }
func (o *Bus) SetSensVMagUBound(v float64, t int) { o.sensVMagUBound[t] = v }
func (o *Bus) SetSensVMagLBound(v float64, t int) { o.sensVMagLBound[t] = v }

// ClearSensitivities zeroes all sensitivity information
func (o *Bus) ClearSensitivities() {
	for t := 0; t < o.NumPeriods(); t++ {
		o.sensPBalance[t] = 0
		o.sensQBalance[t] = 0
		o.sensVMagUBound[t] = 0
		o.sensVMagLBound[t] = 0
	}
}

// connections

func (o *Bus) Gens() []*Gen          { return o.gens }
func (o *Bus) RegGens() []*Gen       { return o.regGens }
func (o *Bus) Loads() []*Load        { return o.loads }
func (o *Bus) Shunts() []*Shunt      { return o.shunts }
func (o *Bus) Bats() []*Bat          { return o.bats }
func (o *Bus) VarGens() []*VarGen    { return o.vargens }
func (o *Bus) BranchesK() []*Branch  { return o.branchesK }
func (o *Bus) BranchesM() []*Branch  { return o.branchesM }
func (o *Bus) RegTrans() []*Branch   { return o.regTrans }

func (o *Bus) AddGen(g *Gen)        { o.gens = append(o.gens, g) }
func (o *Bus) AddRegGen(g *Gen)     { o.regGens = append(o.regGens, g) }
func (o *Bus) AddLoad(l *Load)      { o.loads = append(o.loads, l) }
func (o *Bus) AddShunt(s *Shunt)    { o.shunts = append(o.shunts, s) }
func (o *Bus) AddBat(b *Bat)        { o.bats = append(o.bats, b) }
func (o *Bus) AddVarGen(vg *VarGen) { o.vargens = append(o.vargens, vg) }
func (o *Bus) AddBranchK(b *Branch) { o.branchesK = append(o.branchesK, b) }
func (o *Bus) AddBranchM(b *Branch) { o.branchesM = append(o.branchesM, b) }
func (o *Bus) AddRegTran(b *Branch) { o.regTrans = append(o.regTrans, b) }

func (o *Bus) DelGen(g *Gen)        { o.gens = delGen(o.gens, g) }
func (o *Bus) DelRegGen(g *Gen)     { o.regGens = delGen(o.regGens, g) }
func (o *Bus) DelBranchK(b *Branch) { o.branchesK = delBranch(o.branchesK, b) }
func (o *Bus) DelBranchM(b *Branch) { o.branchesM = delBranch(o.branchesM, b) }
func (o *Bus) DelRegTran(b *Branch) { o.regTrans = delBranch(o.regTrans, b) }

func delGen(list []*Gen, g *Gen) []*Gen {
	for i, x := range list {
		if x == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func delBranch(list []*Branch, b *Branch) []*Branch {
	for i, x := range list {
		if x == b {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// HasFlags tells whether all quantities in mask have the given flag set
func (o *Bus) HasFlags(ft FlagType, mask uint8) bool {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return false
	}
	return (*f)&mask == mask
}

// ClearFlags clears the flags of the given type
func (o *Bus) ClearFlags(ft FlagType) {
	if f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse); f != nil {
		*f = 0
	}
}

// SetFlags records the flag bits in mask and, for FlagVars, assigns one
// sequential index per enabled quantity and time period starting at index.
// VDev and VVio take two indices per period (y, z and vl, vh); VSlack takes
// none. Returns the next free index. Re-setting an already-set bit is a no-op.
func (o *Bus) SetFlags(ft FlagType, mask uint8, index int) int {
	f := flagsPtr(ft, &o.vars, &o.fixed, &o.bounded, &o.sparse)
	if f == nil {
		return index
	}
	T := o.NumPeriods()
	if (*f)&BusVarVMag == 0 && mask&BusVarVMag != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexVMag[t] = index
				index++
			}
		}
		*f |= BusVarVMag
	}
	if (*f)&BusVarVAng == 0 && mask&BusVarVAng != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexVAng[t] = index
				index++
			}
		}
		*f |= BusVarVAng
	}
	if (*f)&BusVarVSlack == 0 && mask&BusVarVSlack != 0 {
		*f |= BusVarVSlack // recorded only; no index allocation
	}
	if (*f)&BusVarVDev == 0 && mask&BusVarVDev != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexY[t] = index
				o.indexZ[t] = index + 1
				index += 2
			}
		}
		*f |= BusVarVDev
	}
	if (*f)&BusVarVVio == 0 && mask&BusVarVVio != 0 {
		if ft == FlagVars {
			for t := 0; t < T; t++ {
				o.indexVL[t] = index
				o.indexVH[t] = index + 1
				index += 2
			}
		}
		*f |= BusVarVVio
	}
	return index
}

// GetVarValues fills values at this bus' variable indices according to code
func (o *Bus) GetVarValues(values []float64, code int) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&BusVarVMag != 0 {
			switch code {
			case UpperLimits:
				values[o.indexVMag[t]] = o.vMax
			case LowerLimits:
				values[o.indexVMag[t]] = o.vMin
			default:
				values[o.indexVMag[t]] = o.vMag[t]
			}
		}
		if o.vars&BusVarVAng != 0 {
			switch code {
			case UpperLimits:
				values[o.indexVAng[t]] = BranchInfFlow
			case LowerLimits:
				values[o.indexVAng[t]] = -BranchInfFlow
			default:
				values[o.indexVAng[t]] = o.vAng[t]
			}
		}
		if o.vars&BusVarVDev != 0 {
			switch code {
			case UpperLimits:
				values[o.indexY[t]] = BranchInfFlow
				values[o.indexZ[t]] = BranchInfFlow
			default:
				values[o.indexY[t]] = 0
				values[o.indexZ[t]] = 0
			}
		}
		if o.vars&BusVarVVio != 0 {
			switch code {
			case UpperLimits:
				values[o.indexVL[t]] = BranchInfFlow
				values[o.indexVH[t]] = BranchInfFlow
			default:
				values[o.indexVL[t]] = 0
				values[o.indexVH[t]] = 0
			}
		}
	}
}

// SetVarValues updates this bus from the variable values vector
func (o *Bus) SetVarValues(values []float64) {
	T := o.NumPeriods()
	for t := 0; t < T; t++ {
		if o.vars&BusVarVMag != 0 {
			o.vMag[t] = values[o.indexVMag[t]]
		}
		if o.vars&BusVarVAng != 0 {
			o.vAng[t] = values[o.indexVAng[t]]
		}
	}
}
