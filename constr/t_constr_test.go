// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"testing"

	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
)

func Test_constr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constr01. registry of constraint types")

	nt := net.New(1)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)

	for _, name := range []string{"AC_FLOW_LIM", "AC_FLOW_LIM_2", "DC_FLOW_LIM", "LBOUND", "LINPF", "BAT_DYN"} {
		c, err := New(name, nt)
		if err != nil {
			tst.Errorf("New(%q) failed:\n%v", name, err)
			return
		}
		chk.StrAssert(c.Name, name)
	}

	_, err := New("NO_SUCH_TYPE", nt)
	if err == nil {
		tst.Errorf("expected error for unknown constraint type")
		return
	}
}

func Test_constr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constr02. phase guards and sticky errors")

	nt := net.New(2)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)
	nt.AllocBats(1)
	nt.ConnectBat(0, 0)
	nt.SetFlags(net.ObjBat, net.FlagVars, net.BatVarP|net.BatVarE)

	c, err := New("BAT_DYN", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// stale guard bitmap rejects counting and leaves counters untouched
	c.BusCounted = c.BusCounted[:1]
	c.Count()
	if !c.HasError() {
		tst.Errorf("expected count guard failure")
		return
	}
	chk.StrAssert(c.ErrorString(), "constraint is not safe to count")
	chk.IntAssert(c.ARow, 0)
	chk.IntAssert(c.ANnz, 0)

	// the error is sticky until cleared
	if !c.HasError() {
		tst.Errorf("error must stay raised")
		return
	}
	c.ClearError()
	if c.HasError() {
		tst.Errorf("error must be cleared")
		return
	}

	// a fresh bitmap makes the instance safe again
	c.UpdateNetwork()
	c.Count()
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(c.ARow, 3) // initial row plus one update row per period

	// analyzing before allocating is rejected
	c.Analyze()
	if !c.HasError() {
		tst.Errorf("expected analyze guard failure")
		return
	}
	chk.StrAssert(c.ErrorString(), "constraint is not safe to analyze")
	c.ClearError()

	// allocate, then analyze passes
	c.Count()
	c.Allocate()
	c.Analyze()
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}

	// eval with a wrong-size vector is rejected
	c.Eval(make([]float64, nt.NumVars()+3), nil)
	if !c.HasError() {
		tst.Errorf("expected eval guard failure")
		return
	}
	chk.StrAssert(c.ErrorString(), "constraint is not safe to eval")
	c.ClearError()

	// store_sens with wrong-size vectors is rejected
	c.StoreSens(make([]float64, 1), []float64{}, []float64{}, []float64{})
	if !c.HasError() {
		tst.Errorf("expected store_sens size failure")
		return
	}
	chk.StrAssert(c.ErrorString(), "invalid vector size")
}

func Test_constr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constr03. contingency toggle reproduces counts")

	nt := net.New(1)
	nt.AllocBuses(2)
	nt.AllocBranches(2)
	nt.ConnectBranch(0, 0, 1)
	nt.ConnectBranch(1, 0, 1)
	nt.Branch(0).SetB(10)
	nt.Branch(1).SetB(4)
	nt.Branch(0).SetRatingA(5)
	nt.Branch(1).SetRatingA(3)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVAng)

	c, err := New("DC_FLOW_LIM", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// baseline count
	c.Count()
	row0, nnz0 := c.GRow, c.GNnz
	chk.IntAssert(row0, 2)
	chk.IntAssert(nnz0, 4)

	// apply the contingency: one branch drops out
	cont := net.NewCont()
	cont.AddBranchOutage(nt.Branch(1))
	cont.Apply()
	c.Count()
	chk.IntAssert(c.GRow, 1)
	chk.IntAssert(c.GNnz, 2)

	// clearing the contingency restores the baseline exactly
	cont.Clear()
	c.Count()
	chk.IntAssert(c.GRow, row0)
	chk.IntAssert(c.GNnz, nnz0)
}
