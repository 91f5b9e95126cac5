// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Net owns the arrays of all network entities, the time horizon, and the
// total count of registered variables. Entities refer to each other by
// pointer into these arrays; the arrays are the single place where entities
// are allocated.
type Net struct {

	// horizon and normalization
	numPeriods int
	basePower  []float64 // system base (MVA), one per period

	// entities
	buses    []Bus
	branches []Branch
	gens     []Gen
	loads    []Load
	shunts   []Shunt
	bats     []Bat
	vargens  []VarGen

	// registry
	numVars int // total number of registered variables
}

// New returns a new empty network with the given number of time periods
func New(numPeriods int) *Net {
	if numPeriods < 1 {
		numPeriods = 1
	}
	o := new(Net)
	o.numPeriods = numPeriods
	o.basePower = make([]float64, numPeriods)
	for t := 0; t < numPeriods; t++ {
		o.basePower[t] = DefaultBasePower
	}
	return o
}

// dimensions

func (o *Net) NumPeriods() int  { return o.numPeriods }
func (o *Net) NumBuses() int    { return len(o.buses) }
func (o *Net) NumBranches() int { return len(o.branches) }
func (o *Net) NumGens() int     { return len(o.gens) }
func (o *Net) NumLoads() int    { return len(o.loads) }
func (o *Net) NumShunts() int   { return len(o.shunts) }
func (o *Net) NumBats() int     { return len(o.bats) }
func (o *Net) NumVarGens() int  { return len(o.vargens) }
func (o *Net) NumVars() int     { return o.numVars }

// BasePower returns the system base at time t (MVA)
func (o *Net) BasePower(t int) float64 { return o.basePower[t] }

// SetBasePower sets the system base for all periods (MVA)
func (o *Net) SetBasePower(base float64) {
	for t := range o.basePower {
		o.basePower[t] = base
	}
}

// allocation //////////////////////////////////////////////////////////////

// AllocBuses allocates the bus array
func (o *Net) AllocBuses(num int) {
	o.buses = make([]Bus, num)
	for i := range o.buses {
		o.buses[i].initBus(i, o.numPeriods)
	}
}

// AllocBranches allocates the branch array
func (o *Net) AllocBranches(num int) {
	o.branches = make([]Branch, num)
	for i := range o.branches {
		o.branches[i].initBranch(i, o.numPeriods)
	}
}

// AllocGens allocates the generator array
func (o *Net) AllocGens(num int) {
	o.gens = make([]Gen, num)
	for i := range o.gens {
		o.gens[i].initGen(i, o.numPeriods)
	}
}

// AllocLoads allocates the load array
func (o *Net) AllocLoads(num int) {
	o.loads = make([]Load, num)
	for i := range o.loads {
		o.loads[i].initLoad(i, o.numPeriods)
	}
}

// AllocShunts allocates the shunt array
func (o *Net) AllocShunts(num int) {
	o.shunts = make([]Shunt, num)
	for i := range o.shunts {
		o.shunts[i].initShunt(i, o.numPeriods)
	}
}

// AllocBats allocates the battery array
func (o *Net) AllocBats(num int) {
	o.bats = make([]Bat, num)
	for i := range o.bats {
		o.bats[i].initBat(i, o.numPeriods)
	}
}

// AllocVarGens allocates the variable generator array
func (o *Net) AllocVarGens(num int) {
	o.vargens = make([]VarGen, num)
	for i := range o.vargens {
		o.vargens[i].initVarGen(i, o.numPeriods)
	}
}

// entity access ///////////////////////////////////////////////////////////

func (o *Net) Bus(i int) *Bus       { return &o.buses[i] }
func (o *Net) Branch(i int) *Branch { return &o.branches[i] }
func (o *Net) Gen(i int) *Gen       { return &o.gens[i] }
func (o *Net) Load(i int) *Load     { return &o.loads[i] }
func (o *Net) Shunt(i int) *Shunt   { return &o.shunts[i] }
func (o *Net) Bat(i int) *Bat       { return &o.bats[i] }
func (o *Net) VarGen(i int) *VarGen { return &o.vargens[i] }

// BusByNumber finds a bus by its external number. Returns nil if not found.
func (o *Net) BusByNumber(number int) *Bus {
	for i := range o.buses {
		if o.buses[i].number == number {
			return &o.buses[i]
		}
	}
	return nil
}

// connectivity ////////////////////////////////////////////////////////////

// ConnectBranch wires branch i between buses k and m
func (o *Net) ConnectBranch(i, k, m int) {
	br := &o.branches[i]
	br.SetBusK(&o.buses[k])
	br.SetBusM(&o.buses[m])
	o.buses[k].AddBranchK(br)
	o.buses[m].AddBranchM(br)
}

// ConnectGen wires generator i to bus b
func (o *Net) ConnectGen(i, b int) {
	g := &o.gens[i]
	g.SetBus(&o.buses[b])
	o.buses[b].AddGen(g)
}

// ConnectLoad wires load i to bus b
func (o *Net) ConnectLoad(i, b int) {
	l := &o.loads[i]
	l.SetBus(&o.buses[b])
	o.buses[b].AddLoad(l)
}

// ConnectShunt wires shunt i to bus b
func (o *Net) ConnectShunt(i, b int) {
	s := &o.shunts[i]
	s.SetBus(&o.buses[b])
	o.buses[b].AddShunt(s)
}

// ConnectBat wires battery i to bus b
func (o *Net) ConnectBat(i, b int) {
	bt := &o.bats[i]
	bt.SetBus(&o.buses[b])
	o.buses[b].AddBat(bt)
}

// ConnectVarGen wires variable generator i to bus b
func (o *Net) ConnectVarGen(i, b int) {
	vg := &o.vargens[i]
	vg.SetBus(&o.buses[b])
	o.buses[b].AddVarGen(vg)
}

// variable registry ///////////////////////////////////////////////////////

// SetFlags runs one registration pass over all entities of the given type.
// For FlagVars, column indices are assigned sequentially starting at the
// present variable count; the count is advanced accordingly. A quantity
// whose bit is already set keeps its indices.
func (o *Net) SetFlags(obj ObjType, ft FlagType, mask uint8) {
	index := o.numVars
	switch obj {
	case ObjBus:
		for i := range o.buses {
			index = o.buses[i].SetFlags(ft, mask, index)
		}
	case ObjBranch:
		for i := range o.branches {
			index = o.branches[i].SetFlags(ft, mask, index)
		}
	case ObjGen:
		for i := range o.gens {
			index = o.gens[i].SetFlags(ft, mask, index)
		}
	case ObjLoad:
		for i := range o.loads {
			index = o.loads[i].SetFlags(ft, mask, index)
		}
	case ObjShunt:
		for i := range o.shunts {
			index = o.shunts[i].SetFlags(ft, mask, index)
		}
	case ObjBat:
		for i := range o.bats {
			index = o.bats[i].SetFlags(ft, mask, index)
		}
	case ObjVarGen:
		for i := range o.vargens {
			index = o.vargens[i].SetFlags(ft, mask, index)
		}
	default:
		chk.Panic("unknown object type %d", obj)
	}
	if ft == FlagVars {
		o.numVars = index
	}
}

// SetFlagsOfBus runs the registration pass over a single bus
func (o *Net) SetFlagsOfBus(i int, ft FlagType, mask uint8) {
	index := o.buses[i].SetFlags(ft, mask, o.numVars)
	if ft == FlagVars {
		o.numVars = index
	}
}

// SetFlagsOfBranch runs the registration pass over a single branch
func (o *Net) SetFlagsOfBranch(i int, ft FlagType, mask uint8) {
	index := o.branches[i].SetFlags(ft, mask, o.numVars)
	if ft == FlagVars {
		o.numVars = index
	}
}

// SetFlagsOfGen runs the registration pass over a single generator
func (o *Net) SetFlagsOfGen(i int, ft FlagType, mask uint8) {
	index := o.gens[i].SetFlags(ft, mask, o.numVars)
	if ft == FlagVars {
		o.numVars = index
	}
}

// SetFlagsOfLoad runs the registration pass over a single load
func (o *Net) SetFlagsOfLoad(i int, ft FlagType, mask uint8) {
	index := o.loads[i].SetFlags(ft, mask, o.numVars)
	if ft == FlagVars {
		o.numVars = index
	}
}

// SetFlagsOfBat runs the registration pass over a single battery
func (o *Net) SetFlagsOfBat(i int, ft FlagType, mask uint8) {
	index := o.bats[i].SetFlags(ft, mask, o.numVars)
	if ft == FlagVars {
		o.numVars = index
	}
}

// ClearFlags clears all flags of all entities and resets the variable count
func (o *Net) ClearFlags() {
	for _, ft := range []FlagType{FlagVars, FlagFixed, FlagBounded, FlagSparse} {
		for i := range o.buses {
			o.buses[i].ClearFlags(ft)
		}
		for i := range o.branches {
			o.branches[i].ClearFlags(ft)
		}
		for i := range o.gens {
			o.gens[i].ClearFlags(ft)
		}
		for i := range o.loads {
			o.loads[i].ClearFlags(ft)
		}
		for i := range o.shunts {
			o.shunts[i].ClearFlags(ft)
		}
		for i := range o.bats {
			o.bats[i].ClearFlags(ft)
		}
		for i := range o.vargens {
			o.vargens[i].ClearFlags(ft)
		}
	}
	o.numVars = 0
}

// VarValues returns a dense vector with entity values at the registered
// variable indices. code selects present values or limits.
func (o *Net) VarValues(code int) []float64 {
	values := make([]float64, o.numVars)
	for i := range o.buses {
		o.buses[i].GetVarValues(values, code)
	}
	for i := range o.branches {
		o.branches[i].GetVarValues(values, code)
	}
	for i := range o.gens {
		o.gens[i].GetVarValues(values, code)
	}
	for i := range o.loads {
		o.loads[i].GetVarValues(values, code)
	}
	for i := range o.shunts {
		o.shunts[i].GetVarValues(values, code)
	}
	for i := range o.bats {
		o.bats[i].GetVarValues(values, code)
	}
	for i := range o.vargens {
		o.vargens[i].GetVarValues(values, code)
	}
	return values
}

// SetVarValues writes solver values back into the entities
func (o *Net) SetVarValues(values []float64) {
	if len(values) != o.numVars {
		chk.Panic("invalid vector size: %d != %d", len(values), o.numVars)
	}
	for i := range o.buses {
		o.buses[i].SetVarValues(values)
	}
	for i := range o.branches {
		o.branches[i].SetVarValues(values)
	}
	for i := range o.gens {
		o.gens[i].SetVarValues(values)
	}
	for i := range o.loads {
		o.loads[i].SetVarValues(values)
	}
	for i := range o.shunts {
		o.shunts[i].SetVarValues(values)
	}
	for i := range o.bats {
		o.bats[i].SetVarValues(values)
	}
	for i := range o.vargens {
		o.vargens[i].SetVarValues(values)
	}
}

// ClearSensitivities zeroes all sensitivity information in the network
func (o *Net) ClearSensitivities() {
	for i := range o.buses {
		o.buses[i].ClearSensitivities()
	}
	for i := range o.branches {
		o.branches[i].ClearSensitivities()
	}
	for i := range o.gens {
		o.gens[i].ClearSensitivities()
	}
	for i := range o.loads {
		o.loads[i].ClearSensitivities()
	}
	for i := range o.shunts {
		for t := 0; t < o.shunts[i].NumPeriods(); t++ {
			o.shunts[i].SetSensBUBound(0, t)
			o.shunts[i].SetSensBLBound(0, t)
		}
	}
}

// String returns a one-line summary of the network
func (o *Net) String() string {
	return io.Sf("net: T=%d nbus=%d nbranch=%d ngen=%d nload=%d nshunt=%d nbat=%d nvargen=%d nvars=%d",
		o.numPeriods, len(o.buses), len(o.branches), len(o.gens), len(o.loads),
		len(o.shunts), len(o.bats), len(o.vargens), o.numVars)
}
