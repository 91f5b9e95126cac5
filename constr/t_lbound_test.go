// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"testing"

	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
)

func Test_lbound01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lbound01. one variable bus, one fixed bus, two periods")

	nt := net.New(2)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)
	nt.Bus(0).SetVMax(1.1)
	nt.Bus(0).SetVMin(0.9)

	// v of bus 0 is a variable; v of bus 1 stays fixed
	nt.SetFlagsOfBus(0, net.FlagVars, net.BusVarVMag)
	nt.SetFlagsOfBus(1, net.FlagFixed, net.BusVarVMag)
	chk.IntAssert(nt.NumVars(), 2)

	c, err := New("LBOUND", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	chk.IntAssert(c.GNnz, 2)

	c.Allocate()
	chk.IntAssert(c.G.Rows(), 2) // one row per variable index
	chk.IntAssert(c.G.Cols(), 2)

	c.Analyze()
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(c.GNnz, 2)

	// identity structure over the two period indices
	bus := nt.Bus(0)
	chk.Ints(tst, "G rows", c.G.RowArray(), []int{bus.IndexVMag(0), bus.IndexVMag(1)})
	chk.Ints(tst, "G cols", c.G.ColArray(), []int{bus.IndexVMag(0), bus.IndexVMag(1)})
	chk.Vector(tst, "G data", 1e-15, c.G.DataArray(), []float64{1, 1})
	chk.Vector(tst, "l", 1e-15, c.L, []float64{0.9, 0.9})
	chk.Vector(tst, "u", 1e-15, c.U, []float64{1.1, 1.1})
}

func Test_lbound02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lbound02. bounds of mixed entity quantities")

	nt := net.New(1)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)
	nt.AllocGens(1)
	nt.ConnectGen(0, 0)
	nt.AllocLoads(1)
	nt.ConnectLoad(0, 1)
	nt.AllocBats(1)
	nt.ConnectBat(0, 1)

	br := nt.Branch(0)
	br.SetRatioMax(1.2)
	br.SetRatioMin(0.8)
	gen := nt.Gen(0)
	gen.SetPMax(3)
	gen.SetPMin(0.5)
	load := nt.Load(0)
	load.SetPMax(1.5, 0)
	load.SetPMin(0.2, 0)
	bat := nt.Bat(0)
	bat.SetPMax(2)
	bat.SetPMin(-1.5)
	bat.SetEMax(8)

	nt.SetFlags(net.ObjBranch, net.FlagVars, net.BranchVarRatio)
	nt.SetFlags(net.ObjGen, net.FlagVars, net.GenVarP)
	nt.SetFlags(net.ObjLoad, net.FlagVars, net.LoadVarP)
	nt.SetFlags(net.ObjBat, net.FlagVars, net.BatVarP|net.BatVarE)
	chk.IntAssert(nt.NumVars(), 6)

	c, err := New("LBOUND", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	chk.IntAssert(c.GNnz, 6)
	c.Allocate()
	c.Analyze()
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(c.GNnz, 6)

	get := func(idx int) (lo, hi float64) { return c.L[idx], c.U[idx] }

	lo, hi := get(br.IndexRatio(0))
	chk.Scalar(tst, "ratio lo", 1e-15, lo, 0.8)
	chk.Scalar(tst, "ratio hi", 1e-15, hi, 1.2)

	lo, hi = get(gen.IndexP(0))
	chk.Scalar(tst, "gen P lo", 1e-15, lo, 0.5)
	chk.Scalar(tst, "gen P hi", 1e-15, hi, 3)

	lo, hi = get(load.IndexP(0))
	chk.Scalar(tst, "load P lo", 1e-15, lo, 0.2)
	chk.Scalar(tst, "load P hi", 1e-15, hi, 1.5)

	lo, hi = get(bat.IndexPc(0))
	chk.Scalar(tst, "bat Pc lo", 1e-15, lo, 0)
	chk.Scalar(tst, "bat Pc hi", 1e-15, hi, 2)

	lo, hi = get(bat.IndexPd(0))
	chk.Scalar(tst, "bat Pd lo", 1e-15, lo, 0)
	chk.Scalar(tst, "bat Pd hi", 1e-15, hi, 1.5)

	lo, hi = get(bat.IndexE(0))
	chk.Scalar(tst, "bat E lo", 1e-15, lo, 0)
	chk.Scalar(tst, "bat E hi", 1e-15, hi, 8)
}

func Test_lbound03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lbound03. sensitivity distribution")

	nt := net.New(1)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)
	nt.AllocGens(1)
	nt.ConnectGen(0, 0)

	nt.SetFlagsOfBus(0, net.FlagVars, net.BusVarVMag)
	nt.SetFlags(net.ObjGen, net.FlagVars, net.GenVarP)
	chk.IntAssert(nt.NumVars(), 2)

	c, err := New("LBOUND", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	c.Allocate()
	c.Analyze()

	sGu := []float64{0.1, 0.2}
	sGl := []float64{-0.4, -0.8}
	c.StoreSens([]float64{}, []float64{}, sGu, sGl)
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}

	bus := nt.Bus(0)
	gen := nt.Gen(0)
	chk.Scalar(tst, "bus vmag u", 1e-15, bus.SensVMagUBound(0), sGu[bus.IndexVMag(0)])
	chk.Scalar(tst, "bus vmag l", 1e-15, bus.SensVMagLBound(0), sGl[bus.IndexVMag(0)])
	chk.Scalar(tst, "gen P u", 1e-15, gen.SensPUBound(0), sGu[gen.IndexP(0)])
	chk.Scalar(tst, "gen P l", 1e-15, gen.SensPLBound(0), sGl[gen.IndexP(0)])
}
