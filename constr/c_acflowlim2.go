// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"github.com/raulhuatuco/pfnet/net"
)

// AcFlowLim2 is the variant of the AC branch current magnitude limit whose
// eval consumes the extra-variable vector directly: each row of F holds
// f(x) - y, with y read from valuesExtra at the row's own auxiliary index.
// Structure, derivatives and bounds are those of AcFlowLim.
type AcFlowLim2 struct {
	AcFlowLim
}

// register constraint type
func init() {
	callocators["AC_FLOW_LIM_2"] = func() Kernel { return new(AcFlowLim2) }
}

// EvalStep writes f(x) - y and the numeric entries of J and the Hessians
// for one (branch, period) pair. With a nil valuesExtra the rows hold f(x)
// alone.
func (o *AcFlowLim2) EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) {
	rowStart := c.JRow
	o.AcFlowLim.EvalStep(c, br, t, values, valuesExtra)
	if valuesExtra == nil {
		return
	}
	for row := rowStart; row < c.JRow; row++ {
		c.F[row] -= valuesExtra[row]
	}
}
