// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package constr implements the constraint assembly engine. A constraint
// instance drives a plug-in kernel over every (time period, branch) pair of
// a network, first to count the exact number of sparse entries and rows,
// then to allocate, then to write the (i,j) pattern, and finally to write
// numeric values. The walk order is deterministic and identical across the
// count, analyze and eval phases; that is the invariant that makes the
// count-then-fill construction safe.
//
// The matrices assembled per instance are
//
//	A x = b                      (linear equality)
//	l <= G x + Gbar y <= u       (linear inequality, extra variables y)
//	f(x) + Jbar y = 0            (nonlinear equality, Jacobian J)
//
// plus one Hessian per nonlinear row and their linear combination.
package constr

import (
	"github.com/raulhuatuco/pfnet/mat"
	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
)

// Kernel defines what constraint types must compute. The engine calls the
// step hooks once per (branch, time period) in a fixed order; kernels that
// own per-bus work consult the BusCounted bitmap so that bus contributions
// are made exactly once per (bus, period).
type Kernel interface {
	Init(c *Constr)                                                           // allocate type data
	CountStep(c *Constr, br *net.Branch, t int)                               // advance counters only
	Allocate(c *Constr)                                                       // build matrices from counters
	Clear(c *Constr)                                                          // reset counters, flags and values
	AnalyzeStep(c *Constr, br *net.Branch, t int)                             // write (i,j) patterns and constants
	EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) // write numeric values
	StoreSensStep(c *Constr, br *net.Branch, t int, sA, sf, sGu, sGl []float64)
	Free(c *Constr) // release type data
}

// callocators holds all available constraint types; type name => allocator
var callocators = make(map[string]func() Kernel)

// Types returns the names of all registered constraint types
func Types() (names []string) {
	for name := range callocators {
		names = append(names, name)
	}
	return
}

// Constr holds one constraint instance: the matrices and vectors it owns,
// the counters and row cursors shared with its kernel, and the sticky error
// slot polled between phases.
type Constr struct {

	// identity
	Name string

	// linear equality (A x = b)
	A *mat.Mat
	B []float64

	// linear inequality (l <= G x + Gbar y <= u)
	G    *mat.Mat
	Gbar *mat.Mat
	L    []float64
	U    []float64

	// nonlinear (f(x) + Jbar y = 0)
	F      []float64
	J      *mat.Mat
	Jbar   *mat.Mat
	Harray []*mat.Mat // one Hessian per nonlinear constraint row
	Hcomb  *mat.Mat   // linear combination of the Hessians

	// extra variables
	NumExtraVars int

	// counters and cursors
	ANnz    int
	GNnz    int
	GbarNnz int
	JNnz    int
	JbarNnz int
	HNnz    []int
	ARow    int
	GRow    int
	JRow    int

	// per-(bus, period) guard; sized numBuses*numPeriods
	BusCounted []bool

	// network
	network *net.Net

	// kernel
	kern Kernel

	// error state
	errFlag bool
	errMsg  string
}

// New returns a new constraint instance of the given type bound to the
// given network
func New(name string, nt *net.Net) (c *Constr, err error) {
	alloc, ok := callocators[name]
	if !ok {
		err = chk.Err("cannot find constraint type named %q", name)
		return
	}
	c = &Constr{Name: name, network: nt, kern: alloc()}
	c.UpdateNetwork()
	c.kern.Init(c)
	return
}

// Network returns the network this instance is bound to
func (o *Constr) Network() *net.Net { return o.network }

// Kern returns the kernel implementing this constraint type
func (o *Constr) Kern() Kernel { return o.kern }

// error state /////////////////////////////////////////////////////////////

// HasError tells whether a phase has failed since the last ClearError
func (o *Constr) HasError() bool { return o.errFlag }

// ErrorString returns the pending error message
func (o *Constr) ErrorString() string { return o.errMsg }

// ClearError resets the error state
func (o *Constr) ClearError() {
	o.errFlag = false
	o.errMsg = ""
}

// SetError raises the sticky error flag with a message
func (o *Constr) SetError(msg string) {
	o.errFlag = true
	o.errMsg = msg
}

// guards //////////////////////////////////////////////////////////////////

// SafeToCount tells whether the bus guard bitmap matches the network. On
// failure the sticky error is raised.
func (o *Constr) SafeToCount() bool {
	if len(o.BusCounted) == o.network.NumBuses()*o.network.NumPeriods() {
		return true
	}
	o.SetError("constraint is not safe to count")
	return false
}

// SafeToAnalyze additionally requires the allocated column counts to match
// the registered variable counts
func (o *Constr) SafeToAnalyze() bool {
	if len(o.BusCounted) == o.network.NumBuses()*o.network.NumPeriods() &&
		o.A.Cols() == o.network.NumVars() &&
		o.J.Cols() == o.network.NumVars() &&
		o.Jbar.Cols() == o.NumExtraVars {
		return true
	}
	o.SetError("constraint is not safe to analyze")
	return false
}

// SafeToEval additionally requires a variable vector of the right size
func (o *Constr) SafeToEval(values []float64) bool {
	if len(o.BusCounted) == o.network.NumBuses()*o.network.NumPeriods() &&
		o.A.Cols() == o.network.NumVars() &&
		o.J.Cols() == o.network.NumVars() &&
		o.Jbar.Cols() == o.NumExtraVars &&
		len(values) == o.network.NumVars() {
		return true
	}
	o.SetError("constraint is not safe to eval")
	return false
}

// lifecycle ///////////////////////////////////////////////////////////////

// UpdateNetwork resizes the bus guard bitmap to the present network
// dimensions and releases the matrices, which no longer match
func (o *Constr) UpdateNetwork() {
	o.BusCounted = make([]bool, o.network.NumBuses()*o.network.NumPeriods())
	o.DelMatVec()
}

// DelMatVec releases all matrices and vectors owned by this instance
func (o *Constr) DelMatVec() {
	o.A = nil
	o.B = nil
	o.G = nil
	o.Gbar = nil
	o.L = nil
	o.U = nil
	o.F = nil
	o.J = nil
	o.Jbar = nil
	o.Harray = nil
	o.Hcomb = nil
}

// Free releases kernel data and all matrices
func (o *Constr) Free() {
	o.kern.Free(o)
	o.DelMatVec()
	o.BusCounted = nil
}

// ClearHNnz zeroes the per-row Hessian entry counters
func (o *Constr) ClearHNnz() {
	for i := range o.HNnz {
		o.HNnz[i] = 0
	}
}

// ClearBusCounted lowers every (bus, period) guard bit
func (o *Constr) ClearBusCounted() {
	for i := range o.BusCounted {
		o.BusCounted[i] = false
	}
}

// phases //////////////////////////////////////////////////////////////////

// Clear resets counters, guard bits and numeric values for a new pass
func (o *Constr) Clear() {
	o.kern.Clear(o)
}

// Count walks the network once, advancing the entry counters and row
// cursors so that allocation can be a single exact pass
func (o *Constr) Count() {
	o.Clear()
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			o.CountStep(o.network.Branch(i), t)
		}
	}
}

// CountStep performs the counting work of a single (branch, period) pair
func (o *Constr) CountStep(br *net.Branch, t int) {
	if o.SafeToCount() {
		o.kern.CountStep(o, br, t)
	}
}

// Allocate releases the previous matrices and builds new ones sized
// precisely to the counted dimensions
func (o *Constr) Allocate() {
	if o.SafeToCount() {
		o.DelMatVec()
		o.kern.Allocate(o)
	}
}

// Analyze repeats the counting walk, now writing the (i,j) pattern of every
// matrix, the constant values of the linear matrices, and the inequality
// bounds. At exit the counters recover their post-count values.
func (o *Constr) Analyze() {
	o.Clear()
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			o.AnalyzeStep(o.network.Branch(i), t)
		}
	}
}

// AnalyzeStep performs the pattern work of a single (branch, period) pair
func (o *Constr) AnalyzeStep(br *net.Branch, t int) {
	if o.SafeToAnalyze() {
		o.kern.AnalyzeStep(o, br, t)
	}
}

// Eval walks the network computing f and the numeric entries of J and the
// Hessians at the given variable values. valuesExtra carries values for the
// extra variables of kernels that introduce them; it may be nil otherwise.
func (o *Constr) Eval(values, valuesExtra []float64) {
	o.Clear()
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			o.EvalStep(o.network.Branch(i), t, values, valuesExtra)
		}
	}
}

// EvalStep performs the numeric work of a single (branch, period) pair
func (o *Constr) EvalStep(br *net.Branch, t int, values, valuesExtra []float64) {
	if o.SafeToEval(values) {
		o.kern.EvalStep(o, br, t, values, valuesExtra)
	}
}

// StoreSens distributes constraint multipliers from the solver back into
// per-entity sensitivity fields. The vector sizes must match the row counts
// of A, J and G respectively.
func (o *Constr) StoreSens(sA, sf, sGu, sGl []float64) {
	if len(sA) != o.A.Rows() ||
		len(sf) != o.J.Rows() ||
		len(sGu) != o.G.Rows() ||
		len(sGl) != o.G.Rows() {
		o.SetError("invalid vector size")
		return
	}
	o.Clear()
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			o.StoreSensStep(o.network.Branch(i), t, sA, sf, sGu, sGl)
		}
	}
}

// StoreSensStep performs the sensitivity work of a single (branch, period) pair
func (o *Constr) StoreSensStep(br *net.Branch, t int, sA, sf, sGu, sGl []float64) {
	if o.SafeToCount() {
		o.kern.StoreSensStep(o, br, t, sA, sf, sGu, sGl)
	}
}

// CombineH fills Hcomb with the linear combination of the per-row Hessians
// using the given coefficients. With ensurePSD, every coefficient is taken
// as zero; this is a placeholder for a modified-factorization strategy and
// yields a valid all-zero matrix with the combined structure.
func (o *Constr) CombineH(coeff []float64, ensurePSD bool) {
	if len(coeff) != len(o.Harray) {
		o.SetError("invalid dimensions")
		return
	}
	comb := o.Hcomb.DataArray()
	nnzComb := 0
	for k, H := range o.Harray {
		ck := coeff[k]
		if ensurePSD {
			ck = 0
		}
		d := H.DataArray()
		for m := 0; m < H.Nnz(); m++ {
			comb[nnzComb] = ck * d[m]
			nnzComb++
		}
	}
}
