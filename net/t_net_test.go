// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// two_bus_net builds a two-bus network with one branch for registry tests
func two_bus_net(T int) *Net {
	nt := New(T)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)
	return nt
}

func Test_registry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry01. monotonic index assignment")

	nt := two_bus_net(2)
	chk.IntAssert(nt.NumVars(), 0)

	// voltage magnitudes and angles of both buses over two periods
	nt.SetFlags(ObjBus, FlagVars, BusVarVMag|BusVarVAng)
	chk.IntAssert(nt.NumVars(), 8)

	bus0 := nt.Bus(0)
	bus1 := nt.Bus(1)
	chk.Ints(tst, "bus0 vmag", []int{bus0.IndexVMag(0), bus0.IndexVMag(1)}, []int{0, 1})
	chk.Ints(tst, "bus0 vang", []int{bus0.IndexVAng(0), bus0.IndexVAng(1)}, []int{2, 3})
	chk.Ints(tst, "bus1 vmag", []int{bus1.IndexVMag(0), bus1.IndexVMag(1)}, []int{4, 5})
	chk.Ints(tst, "bus1 vang", []int{bus1.IndexVAng(0), bus1.IndexVAng(1)}, []int{6, 7})

	// re-setting an already-set bit is a no-op on indices
	nt.SetFlags(ObjBus, FlagVars, BusVarVMag)
	chk.IntAssert(nt.NumVars(), 8)
	chk.IntAssert(bus0.IndexVMag(0), 0)

	// other flag types do not allocate indices
	nt.SetFlags(ObjBus, FlagBounded, BusVarVMag)
	chk.IntAssert(nt.NumVars(), 8)
	if !bus0.HasFlags(FlagBounded, BusVarVMag) {
		tst.Errorf("bounded flag not recorded")
		return
	}
	if bus0.HasFlags(FlagBounded, BusVarVAng) {
		tst.Errorf("bounded flag leaked to vang")
		return
	}

	// branch quantities come after bus quantities
	nt.SetFlags(ObjBranch, FlagVars, BranchVarRatio|BranchVarPhase)
	chk.IntAssert(nt.NumVars(), 12)
	br := nt.Branch(0)
	chk.Ints(tst, "branch ratio", []int{br.IndexRatio(0), br.IndexRatio(1)}, []int{8, 9})
	chk.Ints(tst, "branch phase", []int{br.IndexPhase(0), br.IndexPhase(1)}, []int{10, 11})
}

func Test_registry02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry02. battery and paired indices")

	nt := two_bus_net(3)
	nt.AllocBats(1)
	nt.ConnectBat(0, 0)

	nt.SetFlags(ObjBat, FlagVars, BatVarP|BatVarE)
	chk.IntAssert(nt.NumVars(), 9) // 2 per period for P plus 1 per period for E

	bat := nt.Bat(0)
	chk.Ints(tst, "bat Pc", []int{bat.IndexPc(0), bat.IndexPc(1), bat.IndexPc(2)}, []int{0, 2, 4})
	chk.Ints(tst, "bat Pd", []int{bat.IndexPd(0), bat.IndexPd(1), bat.IndexPd(2)}, []int{1, 3, 5})
	chk.Ints(tst, "bat E", []int{bat.IndexE(0), bat.IndexE(1), bat.IndexE(2)}, []int{6, 7, 8})
}

func Test_varvalues01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("varvalues01. current values and limits")

	nt := two_bus_net(1)
	nt.AllocGens(1)
	nt.ConnectGen(0, 0)

	bus0 := nt.Bus(0)
	bus0.SetVMag(1.05, 0)
	bus0.SetVMax(1.1)
	bus0.SetVMin(0.9)

	gen := nt.Gen(0)
	gen.SetP(0.8, 0)
	gen.SetPMax(2)
	gen.SetPMin(0.1)

	nt.SetFlagsOfBus(0, FlagVars, BusVarVMag)
	nt.SetFlagsOfGen(0, FlagVars, GenVarP)
	chk.IntAssert(nt.NumVars(), 2)

	chk.Vector(tst, "current", 1e-15, nt.VarValues(CurrentValues), []float64{1.05, 0.8})
	chk.Vector(tst, "upper", 1e-15, nt.VarValues(UpperLimits), []float64{1.1, 2})
	chk.Vector(tst, "lower", 1e-15, nt.VarValues(LowerLimits), []float64{0.9, 0.1})

	// write back
	nt.SetVarValues([]float64{1.01, 0.5})
	chk.Scalar(tst, "vmag updated", 1e-15, bus0.VMag(0), 1.01)
	chk.Scalar(tst, "gen P updated", 1e-15, gen.P(0), 0.5)
}

func Test_flows01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flows01. branch flow accessors")

	nt := two_bus_net(1)
	br := nt.Branch(0)
	br.SetG(1)
	br.SetB(-5)
	br.SetGK(0.01)
	br.SetGM(0.02)
	br.SetBK(0.1)
	br.SetBM(0.2)

	nt.Bus(0).SetVMag(1.0, 0)
	nt.Bus(1).SetVMag(1.0, 0)
	nt.Bus(0).SetVAng(0.0, 0)
	nt.Bus(1).SetVAng(0.0, 0)

	// flat voltage profile: only the shunt elements carry power
	chk.Scalar(tst, "Pkm", 1e-15, br.PKm(0), 0.01)
	chk.Scalar(tst, "Pmk", 1e-15, br.PMk(0), 0.02)
	chk.Scalar(tst, "Qkm", 1e-15, br.QKm(0), -0.1)
	chk.Scalar(tst, "Qmk", 1e-15, br.QMk(0), -0.2)
	chk.Scalar(tst, "Pkm series", 1e-15, br.PKmSeries(0), 0)
	chk.Scalar(tst, "Pmk series", 1e-15, br.PMkSeries(0), 0)
	chk.Scalar(tst, "DC flow", 1e-15, br.PFlowDC(0), 0)

	// angle difference drives the DC flow
	nt.Bus(0).SetVAng(0.1, 0)
	chk.Scalar(tst, "DC flow 2", 1e-15, br.PFlowDC(0), 0.5)
}
