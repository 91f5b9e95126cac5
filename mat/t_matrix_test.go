// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01. triplet construction and access")

	m := New(2, 3, 4)
	chk.IntAssert(m.Rows(), 2)
	chk.IntAssert(m.Cols(), 3)
	chk.IntAssert(m.Nnz(), 4)

	// pattern pass
	m.SetI(0, 0)
	m.SetJ(0, 0)
	m.SetI(1, 0)
	m.SetJ(1, 2)
	m.SetI(2, 1)
	m.SetJ(2, 1)
	m.SetI(3, 1)
	m.SetJ(3, 1) // duplicate entry accumulates

	// value pass
	m.SetD(0, 1)
	m.SetD(1, -2)
	m.SetD(2, 3)
	m.SetD(3, 0.5)

	chk.Ints(tst, "row array", m.RowArray(), []int{0, 0, 1, 1})
	chk.Ints(tst, "col array", m.ColArray(), []int{0, 2, 1, 1})
	chk.Vector(tst, "data array", 1e-17, m.DataArray(), []float64{1, -2, 3, 0.5})

	d := m.ToDense()
	chk.Vector(tst, "dense row 0", 1e-17, d[0], []float64{1, 0, -2})
	chk.Vector(tst, "dense row 1", 1e-17, d[1], []float64{0, 3.5, 0})

	// values can be rewritten in place without touching the pattern
	m.SetZeroD()
	chk.Vector(tst, "zeroed data", 1e-17, m.DataArray(), []float64{0, 0, 0, 0})
	chk.Ints(tst, "row array kept", m.RowArray(), []int{0, 0, 1, 1})
}

func Test_mat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat02. gosl bridge and sparse product")

	m := New(2, 2, 3)
	m.SetI(0, 0)
	m.SetJ(0, 0)
	m.SetD(0, 2)
	m.SetI(1, 0)
	m.SetJ(1, 1)
	m.SetD(1, -1)
	m.SetI(2, 1)
	m.SetJ(2, 1)
	m.SetD(2, 4)

	cc := m.ToTriplet().ToMatrix(nil)
	x := []float64{1, 2}
	y := make([]float64, 2)
	la.SpMatVecMulAdd(y, 1, cc, x) // y += 1 * m * x
	chk.Vector(tst, "m*x", 1e-15, y, []float64{0, 8})
}

func Test_mat03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat03. nil receivers")

	var m *Mat
	chk.IntAssert(m.Rows(), 0)
	chk.IntAssert(m.Cols(), 0)
	chk.IntAssert(m.Nnz(), 0)
	if m.RowArray() != nil || m.ColArray() != nil || m.DataArray() != nil {
		tst.Errorf("nil matrix arrays must be nil")
		return
	}
	m.SetZeroD() // no-op

	a := []*Mat{New(1, 1, 1), nil}
	a[0].SetD(0, 7)
	ArraySetZeroD(a)
	chk.Vector(tst, "array zeroed", 1e-17, a[0].DataArray(), []float64{0})
}
