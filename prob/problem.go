// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prob implements the problem aggregator: an ordered list of
// constraint instances over one network, with list-level fan-out of every
// assembly phase inside a single deterministic (period, branch) walk, and
// with slicing of global multiplier and coefficient vectors into the
// contiguous blocks owned by each instance.
package prob

import (
	"github.com/raulhuatuco/pfnet/constr"
	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
)

// Problem holds an ordered list of constraint instances bound to a network
type Problem struct {
	network *net.Net
	constrs []*constr.Constr
}

// New returns a new empty problem over the given network
func New(nt *net.Net) *Problem {
	return &Problem{network: nt}
}

// Network returns the network this problem is bound to
func (o *Problem) Network() *net.Net { return o.network }

// Constrs returns the ordered constraint list
func (o *Problem) Constrs() []*constr.Constr { return o.constrs }

// AddConstr creates a constraint of the given type and appends it
func (o *Problem) AddConstr(name string) (c *constr.Constr, err error) {
	c, err = constr.New(name, o.network)
	if err != nil {
		return
	}
	o.constrs = append(o.constrs, c)
	return
}

// FindConstr returns the first constraint of the given type, or nil
func (o *Problem) FindConstr(name string) *constr.Constr {
	for _, c := range o.constrs {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasError tells whether any constraint has a pending error
func (o *Problem) HasError() bool {
	for _, c := range o.constrs {
		if c.HasError() {
			return true
		}
	}
	return false
}

// ErrorString returns the first pending error message
func (o *Problem) ErrorString() string {
	for _, c := range o.constrs {
		if c.HasError() {
			return c.ErrorString()
		}
	}
	return ""
}

// ClearError resets the error state of every constraint
func (o *Problem) ClearError() {
	for _, c := range o.constrs {
		c.ClearError()
	}
}

// totals //////////////////////////////////////////////////////////////////

// NumExtraVars returns the total number of extra variables
func (o *Problem) NumExtraVars() (n int) {
	for _, c := range o.constrs {
		n += c.NumExtraVars
	}
	return
}

// RowsA returns the total number of linear equality rows
func (o *Problem) RowsA() (n int) {
	for _, c := range o.constrs {
		n += c.A.Rows()
	}
	return
}

// RowsG returns the total number of linear inequality rows
func (o *Problem) RowsG() (n int) {
	for _, c := range o.constrs {
		n += c.G.Rows()
	}
	return
}

// RowsJ returns the total number of nonlinear rows
func (o *Problem) RowsJ() (n int) {
	for _, c := range o.constrs {
		n += c.J.Rows()
	}
	return
}

// phases //////////////////////////////////////////////////////////////////

// Clear resets every constraint for a new pass
func (o *Problem) Clear() {
	for _, c := range o.constrs {
		c.Clear()
	}
}

// Count walks the network once, fanning the counting step out to every
// constraint in order
func (o *Problem) Count() {
	o.Clear()
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			for _, c := range o.constrs {
				c.CountStep(o.network.Branch(i), t)
			}
		}
	}
}

// Allocate builds the matrices of every constraint
func (o *Problem) Allocate() {
	for _, c := range o.constrs {
		c.Allocate()
	}
}

// Analyze walks the network once, fanning the pattern step out to every
// constraint in order
func (o *Problem) Analyze() {
	o.Clear()
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			for _, c := range o.constrs {
				c.AnalyzeStep(o.network.Branch(i), t)
			}
		}
	}
}

// Eval walks the network once, evaluating every constraint at the given
// variable values. valuesExtra holds the concatenated extra variables of
// all constraints in list order; it may be nil when no constraint
// introduces extra variables.
func (o *Problem) Eval(values, valuesExtra []float64) {
	o.Clear()
	offsets := make([]int, len(o.constrs))
	offset := 0
	for k, c := range o.constrs {
		offsets[k] = offset
		offset += c.NumExtraVars
	}
	for t := 0; t < o.network.NumPeriods(); t++ {
		for i := 0; i < o.network.NumBranches(); i++ {
			for k, c := range o.constrs {
				ve := valuesExtra
				if ve != nil {
					ve = ve[offsets[k] : offsets[k]+c.NumExtraVars]
				}
				c.EvalStep(o.network.Branch(i), t, values, ve)
			}
		}
	}
}

// StoreSens distributes the global multiplier vectors back into entity
// sensitivity fields. The inputs hold the concatenated multipliers of all
// constraints in list order: sA by A rows, sf by J rows, sGu and sGl by G
// rows.
func (o *Problem) StoreSens(sA, sf, sGu, sGl []float64) (err error) {

	// check sizes
	if len(sA) != o.RowsA() || len(sf) != o.RowsJ() ||
		len(sGu) != o.RowsG() || len(sGl) != o.RowsG() {
		return chk.Err("invalid vector size")
	}

	// map contiguous blocks to constraints
	offsetA, offsetF, offsetG := 0, 0, 0
	for _, c := range o.constrs {
		nA := c.A.Rows()
		nF := c.J.Rows()
		nG := c.G.Rows()
		c.StoreSens(sA[offsetA:offsetA+nA], sf[offsetF:offsetF+nF],
			sGu[offsetG:offsetG+nG], sGl[offsetG:offsetG+nG])
		offsetA += nA
		offsetF += nF
		offsetG += nG
	}
	return
}

// CombineH fills every constraint's combined Hessian using the matching
// slice of the global coefficient vector, which holds the concatenated
// nonlinear-row coefficients of all constraints in list order
func (o *Problem) CombineH(coeff []float64, ensurePSD bool) {
	offset := 0
	for _, c := range o.constrs {
		n := len(c.F)
		if offset+n <= len(coeff) {
			c.CombineH(coeff[offset:offset+n], ensurePSD)
		} else {
			c.CombineH(nil, ensurePSD)
		}
		offset += n
	}
}
