// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mat implements the sparse coordinate (triplet) matrix primitive
// used by the constraint assembly engine. A Mat has a fixed number of
// entries decided up front by a counting pass; the analyze pass writes the
// (i,j) pattern and the eval pass overwrites the data in place, so entries
// are addressed by position rather than appended.
package mat

import (
	"github.com/cpmech/gosl/la"
)

// Mat holds a sparse matrix in triplet format with fixed capacity
type Mat struct {
	m, n int       // dimensions
	i    []int     // row index of each entry
	j    []int     // column index of each entry
	x    []float64 // value of each entry
}

// New returns a new (rows x cols) matrix with room for nnz entries, all zeroed
func New(rows, cols, nnz int) *Mat {
	return &Mat{
		m: rows,
		n: cols,
		i: make([]int, nnz),
		j: make([]int, nnz),
		x: make([]float64, nnz),
	}
}

// Rows returns the number of rows. Safe on nil receivers.
func (o *Mat) Rows() int {
	if o == nil {
		return 0
	}
	return o.m
}

// Cols returns the number of columns. Safe on nil receivers.
func (o *Mat) Cols() int {
	if o == nil {
		return 0
	}
	return o.n
}

// Nnz returns the number of entries. Safe on nil receivers.
func (o *Mat) Nnz() int {
	if o == nil {
		return 0
	}
	return len(o.x)
}

// SetI sets the row index of the entry at position pos
func (o *Mat) SetI(pos, i int) { o.i[pos] = i }

// SetJ sets the column index of the entry at position pos
func (o *Mat) SetJ(pos, j int) { o.j[pos] = j }

// SetD sets the value of the entry at position pos
func (o *Mat) SetD(pos int, v float64) { o.x[pos] = v }

// RowArray returns the row indices. Safe on nil receivers.
func (o *Mat) RowArray() []int {
	if o == nil {
		return nil
	}
	return o.i
}

// ColArray returns the column indices. Safe on nil receivers.
func (o *Mat) ColArray() []int {
	if o == nil {
		return nil
	}
	return o.j
}

// DataArray returns the values. Safe on nil receivers.
func (o *Mat) DataArray() []float64 {
	if o == nil {
		return nil
	}
	return o.x
}

// SetZeroD zeroes all values, keeping the (i,j) pattern
func (o *Mat) SetZeroD() {
	if o == nil {
		return
	}
	for k := range o.x {
		o.x[k] = 0
	}
}

// ToTriplet copies this matrix into a gosl triplet so that compressed-column
// conversion and sparse products become available
func (o *Mat) ToTriplet() *la.Triplet {
	t := new(la.Triplet)
	if o == nil {
		t.Init(0, 0, 0)
		return t
	}
	t.Init(o.m, o.n, len(o.x))
	for k := range o.x {
		t.Put(o.i[k], o.j[k], o.x[k])
	}
	return t
}

// ToDense returns a dense copy, accumulating duplicate entries
func (o *Mat) ToDense() [][]float64 {
	if o == nil {
		return nil
	}
	d := la.MatAlloc(o.m, o.n)
	for k := range o.x {
		d[o.i[k]][o.j[k]] += o.x[k]
	}
	return d
}

// ArraySetZeroD zeroes the values of all matrices in the array
func ArraySetZeroD(a []*Mat) {
	for _, m := range a {
		m.SetZeroD()
	}
}
