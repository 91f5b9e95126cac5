// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"testing"

	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
)

// bat_net builds a T-period two-bus network with one branch and one battery
func bat_net(T int, nbranches int) *net.Net {
	nt := net.New(T)
	nt.AllocBuses(2)
	nt.AllocBranches(nbranches)
	for i := 0; i < nbranches; i++ {
		nt.ConnectBranch(i, 0, 1)
	}
	nt.AllocBats(1)
	nt.ConnectBat(0, 0)
	bat := nt.Bat(0)
	bat.SetEtaC(0.9)
	bat.SetEtaD(0.8)
	bat.SetEInit(5)
	bat.SetEFinal(5)
	bat.SetEMax(10)
	bat.SetPMax(2)
	bat.SetPMin(-2)
	nt.SetFlags(net.ObjBat, net.FlagVars, net.BatVarP|net.BatVarE)
	return nt
}

func Test_batdyn01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batdyn01. three-period energy dynamics")

	nt := bat_net(3, 1)
	chk.IntAssert(nt.NumVars(), 9)

	c, err := New("BAT_DYN", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// count: initial row plus one update row per period
	c.Count()
	chk.IntAssert(c.ARow, 4)
	chk.IntAssert(c.ANnz, 12)

	// analyze recovers the counters
	c.Allocate()
	c.Analyze()
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(c.ARow, 4)
	chk.IntAssert(c.ANnz, 12)

	// right-hand side
	chk.Vector(tst, "b", 1e-15, c.B, []float64{5, 0, 0, -5})

	// coefficients; Pc/Pd pairs come first, then the energies
	bat := nt.Bat(0)
	A := c.A.ToDense()
	chk.Scalar(tst, "A[0] E0", 1e-15, A[0][bat.IndexE(0)], 1)
	for t := 0; t < 3; t++ {
		row := 1 + t
		chk.Scalar(tst, "A Et", 1e-15, A[row][bat.IndexE(t)], -1)
		chk.Scalar(tst, "A Pc", 1e-15, A[row][bat.IndexPc(t)], -0.9)
		chk.Scalar(tst, "A Pd", 1e-15, A[row][bat.IndexPd(t)], 1.25)
		if t < 2 {
			chk.Scalar(tst, "A Et+1", 1e-15, A[row][bat.IndexE(t+1)], 1)
		}
	}

	// linear module: eval leaves everything untouched
	c.Eval(nt.VarValues(net.CurrentValues), nil)
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(len(c.F), 0)
	chk.IntAssert(c.J.Nnz(), 0)
	chk.IntAssert(len(c.Harray), 0)
}

func Test_batdyn02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("batdyn02. bus idempotency across parallel branches")

	// the battery bus is touched by three parallel branches; the guarded
	// block must run exactly once per (bus, period)
	single := bat_net(3, 1)
	multi := bat_net(3, 3)

	c1, err := New("BAT_DYN", single)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c3, err := New("BAT_DYN", multi)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	c1.Count()
	c3.Count()
	chk.IntAssert(c3.ARow, c1.ARow)
	chk.IntAssert(c3.ANnz, c1.ANnz)

	c1.Allocate()
	c1.Analyze()
	c3.Allocate()
	c3.Analyze()
	chk.Vector(tst, "b equal", 1e-15, c3.B, c1.B)

	d1 := c1.A.ToDense()
	d3 := c3.A.ToDense()
	for i := range d1 {
		chk.Vector(tst, "A row equal", 1e-15, d3[i], d1[i])
	}
}
