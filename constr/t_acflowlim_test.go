// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"math"
	"testing"

	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// ac_two_bus builds a two-bus AC test network with one rated branch
func ac_two_bus(g, b, gsh, bsh, ratingA float64) *net.Net {
	nt := net.New(1)
	nt.AllocBuses(2)
	nt.AllocBranches(1)
	nt.ConnectBranch(0, 0, 1)
	br := nt.Branch(0)
	br.SetG(g)
	br.SetB(b)
	br.SetGK(gsh)
	br.SetGM(gsh)
	br.SetBK(bsh)
	br.SetBM(bsh)
	br.SetRatingA(ratingA)
	return nt
}

func Test_acflowlim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("acflowlim01. flat start produces the epsilon floor")

	// two-bus line: g=0, b=10, no shunts, a=1, phi=0, v=1, w=0, ratingA=2
	nt := ac_two_bus(0, 10, 0, 0, 2)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)
	chk.IntAssert(nt.NumVars(), 4)

	c, err := New("AC_FLOW_LIM", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	c.Allocate()
	c.Analyze()
	c.Eval(nt.VarValues(net.CurrentValues), nil)
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}

	// two direction rows, each with R = I = 0
	chk.IntAssert(c.JRow, 2)
	chk.IntAssert(c.NumExtraVars, 2)
	chk.IntAssert(c.JNnz, 8)
	sqrtEps := math.Sqrt(1e-8)
	chk.Vector(tst, "f", 1e-17, c.F, []float64{sqrtEps, sqrtEps})

	// box on the auxiliary magnitude variables
	chk.Vector(tst, "l", 1e-17, c.L, []float64{0, 0})
	chk.Vector(tst, "u", 1e-17, c.U, []float64{2, 2})

	// Jbar = -I and Gbar = +I on the extra variables
	chk.Ints(tst, "Jbar rows", c.Jbar.RowArray(), []int{0, 1})
	chk.Ints(tst, "Jbar cols", c.Jbar.ColArray(), []int{0, 1})
	chk.Vector(tst, "Jbar data", 1e-17, c.Jbar.DataArray(), []float64{-1, -1})
	chk.Vector(tst, "Gbar data", 1e-17, c.Gbar.DataArray(), []float64{1, 1})
}

func Test_acflowlim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("acflowlim02. count/analyze counter consistency")

	nt := ac_two_bus(0.3, -6, 0.02, 0.25, 3)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)
	nt.SetFlags(net.ObjBranch, net.FlagVars, net.BranchVarRatio|net.BranchVarPhase)
	chk.IntAssert(nt.NumVars(), 6)

	c, err := New("AC_FLOW_LIM", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// count
	c.Count()
	JNnzCount := c.JNnz
	JRowCount := c.JRow
	HNnzCount := make([]int, len(c.HNnz))
	copy(HNnzCount, c.HNnz)

	// six variables per row: 6 in J, 21 Hessian pairs
	chk.IntAssert(JRowCount, 2)
	chk.IntAssert(JNnzCount, 12)
	chk.IntAssert(HNnzCount[0], 21)
	chk.IntAssert(HNnzCount[1], 21)

	// analyze must recover the same counters
	c.Allocate()
	c.Analyze()
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(c.JNnz, JNnzCount)
	chk.IntAssert(c.JRow, JRowCount)
	chk.Ints(tst, "H nnz", c.HNnz, HNnzCount)

	// and so must eval
	c.Eval(nt.VarValues(net.CurrentValues), nil)
	chk.IntAssert(c.JNnz, JNnzCount)
	chk.IntAssert(c.JRow, JRowCount)
	chk.Ints(tst, "H nnz after eval", c.HNnz, HNnzCount)

	// pattern containment
	for _, M := range []struct {
		name string
		rows []int
		cols []int
		m, n int
	}{
		{"J", c.J.RowArray(), c.J.ColArray(), c.J.Rows(), c.J.Cols()},
		{"Jbar", c.Jbar.RowArray(), c.Jbar.ColArray(), c.Jbar.Rows(), c.Jbar.Cols()},
		{"Gbar", c.Gbar.RowArray(), c.Gbar.ColArray(), c.Gbar.Rows(), c.Gbar.Cols()},
	} {
		for k := range M.rows {
			if M.rows[k] < 0 || M.rows[k] >= M.m || M.cols[k] < 0 || M.cols[k] >= M.n {
				tst.Errorf("%s entry %d out of range: (%d,%d) not in %dx%d", M.name, k, M.rows[k], M.cols[k], M.m, M.n)
				return
			}
		}
	}

	// Hessians are lower triangular after analyze
	for r, H := range c.Harray {
		Hi := H.RowArray()
		Hj := H.ColArray()
		for k := range Hi {
			if Hi[k] < Hj[k] {
				tst.Errorf("H[%d] entry %d above diagonal: (%d,%d)", r, k, Hi[k], Hj[k])
				return
			}
		}
	}

	// combined Hessian replicates the concatenated pattern
	chk.IntAssert(c.Hcomb.Nnz(), HNnzCount[0]+HNnzCount[1])
}

func Test_acflowlim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("acflowlim03. derivatives against numerical values")

	nt := ac_two_bus(0.3, -6, 0.02, 0.25, 3)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)
	nt.SetFlags(net.ObjBranch, net.FlagVars, net.BranchVarRatio|net.BranchVarPhase)

	// off-nominal operating point
	nt.Bus(0).SetVMag(1.04, 0)
	nt.Bus(1).SetVMag(0.97, 0)
	nt.Bus(0).SetVAng(0.05, 0)
	nt.Bus(1).SetVAng(-0.10, 0)
	nt.Branch(0).SetRatio(1.05, 0)
	nt.Branch(0).SetPhase(0.15, 0)

	c, err := New("AC_FLOW_LIM", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	c.Allocate()
	c.Analyze()

	values := nt.VarValues(net.CurrentValues)
	vtmp := make([]float64, len(values))

	// fvals evaluates the constraint vector at x
	fvals := func(x []float64) []float64 {
		c.Eval(x, nil)
		f := make([]float64, len(c.F))
		copy(f, c.F)
		return f
	}

	// jdense evaluates the Jacobian at x
	jdense := func(x []float64) [][]float64 {
		c.Eval(x, nil)
		return c.J.ToDense()
	}

	c.Eval(values, nil)
	J := c.J.ToDense()
	nrows := len(c.F)
	nvars := nt.NumVars()

	// Hessians as dense lower triangles
	Hs := make([][][]float64, nrows)
	for r := 0; r < nrows; r++ {
		Hs[r] = c.Harray[r].ToDense()
	}

	// first derivatives
	for r := 0; r < nrows; r++ {
		for j := 0; j < nvars; j++ {
			dfdx, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
				copy(vtmp, values)
				vtmp[j] = x
				return fvals(vtmp)[r]
			}, values[j], 1e-3)
			chk.PrintAnaNum(io.Sf("df%d/dx%d", r, j), 1e-5, J[r][j], dfdx, chk.Verbose)
			if math.Abs(J[r][j]-dfdx) > 1e-5 {
				tst.Errorf("df%d/dx%d failed: %g != %g", r, j, J[r][j], dfdx)
				return
			}
		}
	}

	// second derivatives
	for r := 0; r < nrows; r++ {
		for p := 0; p < nvars; p++ {
			for q := 0; q <= p; q++ {
				d2fdpq, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
					copy(vtmp, values)
					vtmp[q] = x
					return jdense(vtmp)[r][p]
				}, values[q], 1e-3)
				if math.Abs(Hs[r][p][q]-d2fdpq) > 1e-4 {
					tst.Errorf("d2f%d/dx%ddx%d failed: %g != %g", r, p, q, Hs[r][p][q], d2fdpq)
					return
				}
			}
		}
	}
}

func Test_acflowlim04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("acflowlim04. outage and zero rating skip")

	// zero rating
	nt := ac_two_bus(0, 10, 0, 0, 0)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)
	c, err := New("AC_FLOW_LIM", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	chk.IntAssert(c.JRow, 0)
	chk.IntAssert(c.JNnz, 0)
	c.Allocate()
	c.Analyze()
	c.Eval(nt.VarValues(net.CurrentValues), nil)
	if c.HasError() {
		tst.Errorf("constraint error: %v", c.ErrorString())
		return
	}
	chk.IntAssert(len(c.F), 0)
	chk.IntAssert(c.J.Nnz(), 0)
	chk.IntAssert(len(c.Harray), 0)

	// outage
	nt2 := ac_two_bus(0, 10, 0, 0, 2)
	nt2.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)
	nt2.Branch(0).SetOutage(true)
	c2, err := New("AC_FLOW_LIM", nt2)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c2.Count()
	chk.IntAssert(c2.JRow, 0)
	c2.Allocate()
	c2.Analyze()
	c2.Eval(nt2.VarValues(net.CurrentValues), nil)
	if c2.HasError() {
		tst.Errorf("constraint error: %v", c2.ErrorString())
		return
	}
	chk.IntAssert(len(c2.F), 0)
}

func Test_acflowlim05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("acflowlim05. Hessian combination and the psd stub")

	nt := ac_two_bus(0.3, -6, 0.02, 0.25, 3)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)

	c, err := New("AC_FLOW_LIM", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	c.Allocate()
	c.Analyze()
	c.Eval(nt.VarValues(net.CurrentValues), nil)

	// wrong coefficient size raises the sticky error
	c.CombineH([]float64{1}, false)
	if !c.HasError() {
		tst.Errorf("expected dimension error")
		return
	}
	chk.StrAssert(c.ErrorString(), "invalid dimensions")
	c.ClearError()

	// plain combination concatenates ci * Hi in row order
	coeff := []float64{2, -3}
	c.CombineH(coeff, false)
	want := make([]float64, 0, c.Hcomb.Nnz())
	for k, H := range c.Harray {
		for _, v := range H.DataArray() {
			want = append(want, coeff[k]*v)
		}
	}
	chk.Vector(tst, "H combined", 1e-15, c.Hcomb.DataArray(), want)

	// the psd stub zeroes every coefficient
	c.CombineH(coeff, true)
	for _, v := range c.Hcomb.DataArray() {
		if v != 0 {
			tst.Errorf("psd stub left nonzero entry %g", v)
			return
		}
	}
}

func Test_acflowlim06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("acflowlim06. variant consuming the extra variables")

	nt := ac_two_bus(0.3, -6, 0.02, 0.25, 3)
	nt.SetFlags(net.ObjBus, net.FlagVars, net.BusVarVMag|net.BusVarVAng)

	c, err := New("AC_FLOW_LIM_2", nt)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	c.Count()
	c.Allocate()
	c.Analyze()

	values := nt.VarValues(net.CurrentValues)

	// without extra values the rows hold f(x)
	c.Eval(values, nil)
	base := make([]float64, len(c.F))
	copy(base, c.F)

	// with extra values the rows hold f(x) - y
	ve := []float64{0.5, 0.25}
	c.Eval(values, ve)
	chk.Vector(tst, "f - y", 1e-15, c.F, []float64{base[0] - 0.5, base[1] - 0.25})
}
