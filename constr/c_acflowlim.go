// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constr

import (
	"math"

	"github.com/raulhuatuco/pfnet/mat"
	"github.com/raulhuatuco/pfnet/net"
)

// acFlowLimParam is the floor added under the square root so that the
// current magnitude stays differentiable at R = I = 0
const acFlowLimParam = 1e-8

// AcFlowLim builds branch current magnitude limits as nonlinear
// constraints. Per in-service branch with a positive rating A and per
// period, two rows are emitted, one per direction. With
//
//	theta = -w_k + w_m + phi_temp
//	R = a_temp^2 (g_sh + g) v_k - a v_m (g cos(theta) - b sin(theta))
//	I = a_temp^2 (b_sh + b) v_k - a v_m (g sin(theta) + b cos(theta))
//
// the row reads |i_km| = sqrt(R^2 + I^2 + eps) and is split as
// f(x) - y = 0 together with 0 <= y <= ratingA, where y is the row's
// unique extra variable wired through Jbar and Gbar. First and second
// derivatives with respect to every registered variable among
// {w_k, v_k, w_m, v_m, a, phi} are written entry by entry; the per-row
// Hessian enumerates the pairs in the same canonical order across the
// count, analyze and eval phases.
type AcFlowLim struct{}

// register constraint type
func init() {
	callocators["AC_FLOW_LIM"] = func() Kernel { return new(AcFlowLim) }
}

// hessVal evaluates one entry of the Hessian of sqrt(R^2 + I^2 + eps)
func hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3 float64) float64 {
	return -(R*dRdx+I*dIdx)*(R*dRdy+I*dIdy)/sqrterm3 +
		(dRdy*dRdx+dIdy*dIdx+R*d2Rdydx+I*d2Idydx)/sqrterm
}

// Init sizes the per-row Hessian counters to the maximum number of rows
func (o *AcFlowLim) Init(c *Constr) {
	nt := c.Network()
	maxNumConstr := 2 * nt.NumBranches() * nt.NumPeriods()
	c.HNnz = make([]int, maxNumConstr)
}

// Clear resets counters and numeric values
func (o *AcFlowLim) Clear(c *Constr) {

	// f
	for i := range c.F {
		c.F[i] = 0
	}

	// J
	c.J.SetZeroD()

	// H
	mat.ArraySetZeroD(c.Harray)

	// counters
	c.JNnz = 0
	c.JRow = 0
	c.ClearHNnz()
}

// CountStep advances the J and Hessian counters for one (branch, period) pair
func (o *AcFlowLim) CountStep(c *Constr, br *net.Branch, t int) {

	// check outage
	if br.IsOnOutage() {
		return
	}

	// check zero rating
	if br.RatingA() == 0 {
		return
	}

	// bus data
	bus := [2]*net.Bus{br.BusK(), br.BusM()}
	var varV, varW [2]bool
	for k := 0; k < 2; k++ {
		varV[k] = bus[k].HasFlags(net.FlagVars, net.BusVarVMag)
		varW[k] = bus[k].HasFlags(net.FlagVars, net.BusVarVAng)
	}

	// branch data
	varA := br.HasFlags(net.FlagVars, net.BranchVarRatio)
	varPhi := br.HasFlags(net.FlagVars, net.BranchVarPhase)

	for k := 0; k < 2; k++ {

		m := 1 - k

		if varW[k] { // wk var

			// J
			c.JNnz++ // d|ikm|/dwk

			// H
			HNnzVal := c.HNnz[c.JRow]
			HNnzVal++ // wk and wk
			if varV[k] {
				HNnzVal++ // wk and vk
			}
			if varW[m] {
				HNnzVal++ // wk and wm
			}
			if varV[m] {
				HNnzVal++ // wk and vm
			}
			if varA {
				HNnzVal++ // wk and a
			}
			if varPhi {
				HNnzVal++ // wk and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varV[k] { // vk var

			// J
			c.JNnz++ // d|ikm|/dvk

			// H
			HNnzVal := c.HNnz[c.JRow]
			HNnzVal++ // vk and vk
			if varW[m] {
				HNnzVal++ // vk and wm
			}
			if varV[m] {
				HNnzVal++ // vk and vm
			}
			if varA {
				HNnzVal++ // vk and a
			}
			if varPhi {
				HNnzVal++ // vk and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varW[m] { // wm var

			// J
			c.JNnz++ // d|ikm|/dwm

			// H
			HNnzVal := c.HNnz[c.JRow]
			HNnzVal++ // wm and wm
			if varV[m] {
				HNnzVal++ // wm and vm
			}
			if varA {
				HNnzVal++ // wm and a
			}
			if varPhi {
				HNnzVal++ // wm and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varV[m] { // vm var

			// J
			c.JNnz++ // d|ikm|/dvm

			// H
			HNnzVal := c.HNnz[c.JRow]
			HNnzVal++ // vm and vm
			if varA {
				HNnzVal++ // vm and a
			}
			if varPhi {
				HNnzVal++ // vm and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varA { // a var

			// J
			c.JNnz++ // d|ikm|/da

			// H
			HNnzVal := c.HNnz[c.JRow]
			HNnzVal++ // a and a
			if varPhi {
				HNnzVal++ // a and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varPhi { // phi var

			// J
			c.JNnz++ // d|ikm|/dphi

			// H
			HNnzVal := c.HNnz[c.JRow]
			HNnzVal++ // phi and phi
			c.HNnz[c.JRow] = HNnzVal
		}

		// constraint counter
		c.JRow++

		// each row brings its own auxiliary magnitude variable
		c.NumExtraVars = c.JRow
	}
}

// Allocate builds the matrices from the counted dimensions
func (o *AcFlowLim) Allocate(c *Constr) {

	numVars := c.Network().NumVars()
	numExtraVars := c.NumExtraVars
	JRow := c.JRow

	// A b
	c.A = mat.New(0, numVars, 0)
	c.B = make([]float64, 0)

	// G Gbar l u
	c.G = mat.New(JRow, numVars, 0)
	c.Gbar = mat.New(JRow, numExtraVars, JRow)
	c.L = make([]float64, JRow)
	c.U = make([]float64, JRow)

	// f J Jbar
	c.F = make([]float64, JRow)
	c.J = mat.New(JRow, numVars, c.JNnz)
	c.Jbar = mat.New(JRow, numExtraVars, JRow)

	// H
	HcombNnz := 0
	c.Harray = make([]*mat.Mat, JRow)
	for i := 0; i < JRow; i++ {
		c.Harray[i] = mat.New(numVars, numVars, c.HNnz[i])
		HcombNnz += c.HNnz[i]
	}

	// H combined
	c.Hcomb = mat.New(numVars, numVars, HcombNnz)
}

// AnalyzeStep writes the J, Jbar, Gbar and Hessian patterns, the box sides,
// and the constant coefficients for one (branch, period) pair. After the
// last pair, the Hessian entries are swapped below the diagonal and their
// row-major concatenation becomes the combined Hessian structure.
func (o *AcFlowLim) AnalyzeStep(c *Constr, br *net.Branch, t int) {

	// number of periods
	T := br.NumPeriods()

	// check outage and zero rating; the closing pass still runs when the
	// walk ends on a skipped branch
	if br.IsOnOutage() || br.RatingA() == 0 {
		o.finishAnalyze(c, br, t, T)
		return
	}

	// bus data
	bus := [2]*net.Bus{br.BusK(), br.BusM()}
	var varV, varW [2]bool
	var vIndex, wIndex [2]int
	for k := 0; k < 2; k++ {
		varV[k] = bus[k].HasFlags(net.FlagVars, net.BusVarVMag)
		varW[k] = bus[k].HasFlags(net.FlagVars, net.BusVarVAng)
		vIndex[k] = bus[k].IndexVMag(t)
		wIndex[k] = bus[k].IndexVAng(t)
	}

	// branch data
	varA := br.HasFlags(net.FlagVars, net.BranchVarRatio)
	varPhi := br.HasFlags(net.FlagVars, net.BranchVarPhase)
	aIndex := br.IndexRatio(t)
	phiIndex := br.IndexPhase(t)

	for k := 0; k < 2; k++ {

		m := 1 - k

		H := c.Harray[c.JRow]

		if varW[k] { // wk var

			// J
			c.J.SetI(c.JNnz, c.JRow)
			c.J.SetJ(c.JNnz, wIndex[k])
			c.JNnz++ // d|ikm|/dwk

			// H
			HNnzVal := c.HNnz[c.JRow]
			H.SetI(HNnzVal, wIndex[k])
			H.SetJ(HNnzVal, wIndex[k])
			HNnzVal++ // wk and wk
			if varV[k] {
				H.SetI(HNnzVal, wIndex[k])
				H.SetJ(HNnzVal, vIndex[k])
				HNnzVal++ // wk and vk
			}
			if varW[m] {
				H.SetI(HNnzVal, wIndex[k])
				H.SetJ(HNnzVal, wIndex[m])
				HNnzVal++ // wk and wm
			}
			if varV[m] {
				H.SetI(HNnzVal, wIndex[k])
				H.SetJ(HNnzVal, vIndex[m])
				HNnzVal++ // wk and vm
			}
			if varA {
				H.SetI(HNnzVal, wIndex[k])
				H.SetJ(HNnzVal, aIndex)
				HNnzVal++ // wk and a
			}
			if varPhi {
				H.SetI(HNnzVal, wIndex[k])
				H.SetJ(HNnzVal, phiIndex)
				HNnzVal++ // wk and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varV[k] { // vk var

			// J
			c.J.SetI(c.JNnz, c.JRow)
			c.J.SetJ(c.JNnz, vIndex[k])
			c.JNnz++ // d|ikm|/dvk

			// H
			HNnzVal := c.HNnz[c.JRow]
			H.SetI(HNnzVal, vIndex[k])
			H.SetJ(HNnzVal, vIndex[k])
			HNnzVal++ // vk and vk
			if varW[m] {
				H.SetI(HNnzVal, vIndex[k])
				H.SetJ(HNnzVal, wIndex[m])
				HNnzVal++ // vk and wm
			}
			if varV[m] {
				H.SetI(HNnzVal, vIndex[k])
				H.SetJ(HNnzVal, vIndex[m])
				HNnzVal++ // vk and vm
			}
			if varA {
				H.SetI(HNnzVal, vIndex[k])
				H.SetJ(HNnzVal, aIndex)
				HNnzVal++ // vk and a
			}
			if varPhi {
				H.SetI(HNnzVal, vIndex[k])
				H.SetJ(HNnzVal, phiIndex)
				HNnzVal++ // vk and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varW[m] { // wm var

			// J
			c.J.SetI(c.JNnz, c.JRow)
			c.J.SetJ(c.JNnz, wIndex[m])
			c.JNnz++ // d|ikm|/dwm

			// H
			HNnzVal := c.HNnz[c.JRow]
			H.SetI(HNnzVal, wIndex[m])
			H.SetJ(HNnzVal, wIndex[m])
			HNnzVal++ // wm and wm
			if varV[m] {
				H.SetI(HNnzVal, wIndex[m])
				H.SetJ(HNnzVal, vIndex[m])
				HNnzVal++ // wm and vm
			}
			if varA {
				H.SetI(HNnzVal, wIndex[m])
				H.SetJ(HNnzVal, aIndex)
				HNnzVal++ // wm and a
			}
			if varPhi {
				H.SetI(HNnzVal, wIndex[m])
				H.SetJ(HNnzVal, phiIndex)
				HNnzVal++ // wm and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varV[m] { // vm var

			// J
			c.J.SetI(c.JNnz, c.JRow)
			c.J.SetJ(c.JNnz, vIndex[m])
			c.JNnz++ // d|ikm|/dvm

			// H
			HNnzVal := c.HNnz[c.JRow]
			H.SetI(HNnzVal, vIndex[m])
			H.SetJ(HNnzVal, vIndex[m])
			HNnzVal++ // vm and vm
			if varA {
				H.SetI(HNnzVal, vIndex[m])
				H.SetJ(HNnzVal, aIndex)
				HNnzVal++ // vm and a
			}
			if varPhi {
				H.SetI(HNnzVal, vIndex[m])
				H.SetJ(HNnzVal, phiIndex)
				HNnzVal++ // vm and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varA { // a var

			// J
			c.J.SetI(c.JNnz, c.JRow)
			c.J.SetJ(c.JNnz, aIndex)
			c.JNnz++ // d|ikm|/da

			// H
			HNnzVal := c.HNnz[c.JRow]
			H.SetI(HNnzVal, aIndex)
			H.SetJ(HNnzVal, aIndex)
			HNnzVal++ // a and a
			if varPhi {
				H.SetI(HNnzVal, aIndex)
				H.SetJ(HNnzVal, phiIndex)
				HNnzVal++ // a and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varPhi { // phi var

			// J
			c.J.SetI(c.JNnz, c.JRow)
			c.J.SetJ(c.JNnz, phiIndex)
			c.JNnz++ // d|ikm|/dphi

			// H
			HNnzVal := c.HNnz[c.JRow]
			H.SetI(HNnzVal, phiIndex)
			H.SetJ(HNnzVal, phiIndex)
			HNnzVal++ // phi and phi
			c.HNnz[c.JRow] = HNnzVal
		}

		// Jbar
		c.Jbar.SetI(c.JRow, c.JRow)
		c.Jbar.SetJ(c.JRow, c.JRow)
		c.Jbar.SetD(c.JRow, -1)

		// Gbar, l, u
		c.Gbar.SetI(c.JRow, c.JRow)
		c.Gbar.SetJ(c.JRow, c.JRow)
		c.Gbar.SetD(c.JRow, 1)
		c.L[c.JRow] = 0
		c.U[c.JRow] = br.RatingA()

		// constraint counter
		c.JRow++
	}

	o.finishAnalyze(c, br, t, T)
}

// finishAnalyze runs after the last (branch, period) pair: entries above
// the diagonal of every Hessian are swapped below it, and the row-major
// concatenation of all patterns is written into the combined Hessian
func (o *AcFlowLim) finishAnalyze(c *Constr, br *net.Branch, t, T int) {
	if t != T-1 || br.Index() != c.Network().NumBranches()-1 {
		return
	}
	HNnzComb := 0
	HiComb := c.Hcomb.RowArray()
	HjComb := c.Hcomb.ColArray()
	for k := range c.Harray {
		Hi := c.Harray[k].RowArray()
		Hj := c.Harray[k].ColArray()
		for m := 0; m < c.Harray[k].Nnz(); m++ {
			if Hi[m] < Hj[m] {
				Hi[m], Hj[m] = Hj[m], Hi[m]
			}
			HiComb[HNnzComb] = Hi[m]
			HjComb[HNnzComb] = Hj[m]
			HNnzComb++
		}
	}
}

// EvalStep writes f and the numeric entries of J and the Hessians for one
// (branch, period) pair
func (o *AcFlowLim) EvalStep(c *Constr, br *net.Branch, t int, values, valuesExtra []float64) {

	// check outage
	if br.IsOnOutage() {
		return
	}

	// check zero rating
	if br.RatingA() == 0 {
		return
	}

	// bus data
	bus := [2]*net.Bus{br.BusK(), br.BusM()}
	var varV, varW [2]bool
	var w, v [2]float64
	for k := 0; k < 2; k++ {
		varV[k] = bus[k].HasFlags(net.FlagVars, net.BusVarVMag)
		varW[k] = bus[k].HasFlags(net.FlagVars, net.BusVarVAng)
		if varW[k] {
			w[k] = values[bus[k].IndexVAng(t)]
		} else {
			w[k] = bus[k].VAng(t)
		}
		if varV[k] {
			v[k] = values[bus[k].IndexVMag(t)]
		} else {
			v[k] = bus[k].VMag(t)
		}
	}

	// branch data
	varA := br.HasFlags(net.FlagVars, net.BranchVarRatio)
	varPhi := br.HasFlags(net.FlagVars, net.BranchVarPhase)
	var a, phi float64
	if varA {
		a = values[br.IndexRatio(t)]
	} else {
		a = br.Ratio(t)
	}
	if varPhi {
		phi = values[br.IndexPhase(t)]
	} else {
		phi = br.Phase(t)
	}
	b := br.B()
	bSh := [2]float64{br.BK(), br.BM()}
	g := br.G()
	gSh := [2]float64{br.GK(), br.GM()}

	Jd := c.J.DataArray()

	for k := 0; k < 2; k++ {

		var m int
		var aTemp, phiTemp, indA, indPhi float64
		if k == 0 {
			m = 1
			aTemp = a
			phiTemp = phi
			indA = 1
			indPhi = 1
		} else {
			m = 0
			aTemp = 1
			phiTemp = -phi
			indA = 0
			indPhi = -1
		}

		// trigs
		costheta := math.Cos(-w[k] + w[m] + phiTemp)
		sintheta := math.Sin(-w[k] + w[m] + phiTemp)

		// |ikm| = |R + j I|
		R := aTemp*aTemp*(gSh[k]+g)*v[k] - a*v[m]*(g*costheta-b*sintheta)
		I := aTemp*aTemp*(bSh[k]+b)*v[k] - a*v[m]*(g*sintheta+b*costheta)
		sqrterm := math.Sqrt(R*R + I*I + acFlowLimParam)
		sqrterm3 := sqrterm * sqrterm * sqrterm

		Hd := c.Harray[c.JRow].DataArray()

		// f
		c.F[c.JRow] = sqrterm

		var dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx float64

		if varW[k] { // wk var

			dRdx = -a * v[m] * (g*sintheta + b*costheta)  // dRdwk
			dIdx = -a * v[m] * (-g*costheta + b*sintheta) // dIdwk

			// J
			Jd[c.JNnz] = (R*dRdx + I*dIdx) / sqrterm
			c.JNnz++ // d|ikm|/dwk

			// H
			HNnzVal := c.HNnz[c.JRow]

			dRdy = dRdx
			dIdy = dIdx
			d2Rdydx = -a * v[m] * (-g*costheta + b*sintheta)
			d2Idydx = -a * v[m] * (-g*sintheta - b*costheta)
			Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
			HNnzVal++ // wk and wk

			if varV[k] {
				dRdy = aTemp * aTemp * (gSh[k] + g)
				dIdy = aTemp * aTemp * (bSh[k] + b)
				d2Rdydx = 0
				d2Idydx = 0
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wk and vk
			}
			if varW[m] {
				dRdy = -a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = -a * v[m] * (g*costheta - b*sintheta)
				d2Idydx = -a * v[m] * (g*sintheta + b*costheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wk and wm
			}
			if varV[m] {
				dRdy = -a * (g*costheta - b*sintheta)
				dIdy = -a * (g*sintheta + b*costheta)
				d2Rdydx = -a * (g*sintheta + b*costheta)
				d2Idydx = -a * (-g*costheta + b*sintheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wk and vm
			}
			if varA {
				dRdy = indA*2*aTemp*(gSh[k]+g)*v[k] - v[m]*(g*costheta-b*sintheta)
				dIdy = indA*2*aTemp*(bSh[k]+b)*v[k] - v[m]*(g*sintheta+b*costheta)
				d2Rdydx = -v[m] * (g*sintheta + b*costheta)
				d2Idydx = -v[m] * (-g*costheta + b*sintheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wk and a
			}
			if varPhi {
				dRdy = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -indPhi * a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = -indPhi * a * v[m] * (g*costheta - b*sintheta)
				d2Idydx = -indPhi * a * v[m] * (g*sintheta + b*costheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wk and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varV[k] { // vk var

			dRdx = aTemp * aTemp * (gSh[k] + g)
			dIdx = aTemp * aTemp * (bSh[k] + b)

			// J
			Jd[c.JNnz] = (R*dRdx + I*dIdx) / sqrterm
			c.JNnz++ // d|ikm|/dvk

			// H
			HNnzVal := c.HNnz[c.JRow]

			dRdy = dRdx
			dIdy = dIdx
			d2Rdydx = 0
			d2Idydx = 0
			Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
			HNnzVal++ // vk and vk

			if varW[m] {
				dRdy = -a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = 0
				d2Idydx = 0
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // vk and wm
			}
			if varV[m] {
				dRdy = -a * (g*costheta - b*sintheta)
				dIdy = -a * (g*sintheta + b*costheta)
				d2Rdydx = 0
				d2Idydx = 0
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // vk and vm
			}
			if varA {
				dRdy = indA*2*aTemp*(gSh[k]+g)*v[k] - v[m]*(g*costheta-b*sintheta)
				dIdy = indA*2*aTemp*(bSh[k]+b)*v[k] - v[m]*(g*sintheta+b*costheta)
				d2Rdydx = indA * 2 * aTemp * (gSh[k] + g)
				d2Idydx = indA * 2 * aTemp * (bSh[k] + b)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // vk and a
			}
			if varPhi {
				dRdy = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -indPhi * a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = 0
				d2Idydx = 0
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // vk and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varW[m] { // wm var

			dRdx = -a * v[m] * (-g*sintheta - b*costheta)
			dIdx = -a * v[m] * (g*costheta - b*sintheta)

			// J
			Jd[c.JNnz] = (R*dRdx + I*dIdx) / sqrterm
			c.JNnz++ // d|ikm|/dwm

			// H
			HNnzVal := c.HNnz[c.JRow]

			dRdy = dRdx
			dIdy = dIdx
			d2Rdydx = -a * v[m] * (-g*costheta + b*sintheta)
			d2Idydx = -a * v[m] * (-g*sintheta - b*costheta)
			Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
			HNnzVal++ // wm and wm

			if varV[m] {
				dRdy = -a * (g*costheta - b*sintheta)
				dIdy = -a * (g*sintheta + b*costheta)
				d2Rdydx = -a * (-g*sintheta - b*costheta)
				d2Idydx = -a * (g*costheta - b*sintheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wm and vm
			}
			if varA {
				dRdy = indA*2*aTemp*(gSh[k]+g)*v[k] - v[m]*(g*costheta-b*sintheta)
				dIdy = indA*2*aTemp*(bSh[k]+b)*v[k] - v[m]*(g*sintheta+b*costheta)
				d2Rdydx = -v[m] * (-g*sintheta - b*costheta)
				d2Idydx = -v[m] * (g*costheta - b*sintheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wm and a
			}
			if varPhi {
				dRdy = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -indPhi * a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = -indPhi * a * v[m] * (-g*costheta + b*sintheta)
				d2Idydx = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // wm and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varV[m] { // vm var

			dRdx = -a * (g*costheta - b*sintheta)
			dIdx = -a * (g*sintheta + b*costheta)

			// J
			Jd[c.JNnz] = (R*dRdx + I*dIdx) / sqrterm
			c.JNnz++ // d|ikm|/dvm

			// H
			HNnzVal := c.HNnz[c.JRow]

			dRdy = dRdx
			dIdy = dIdx
			d2Rdydx = 0
			d2Idydx = 0
			Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
			HNnzVal++ // vm and vm

			if varA {
				dRdy = indA*2*aTemp*(gSh[k]+g)*v[k] - v[m]*(g*costheta-b*sintheta)
				dIdy = indA*2*aTemp*(bSh[k]+b)*v[k] - v[m]*(g*sintheta+b*costheta)
				d2Rdydx = -(g*costheta - b*sintheta)
				d2Idydx = -(g*sintheta + b*costheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // vm and a
			}
			if varPhi {
				dRdy = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -indPhi * a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = -indPhi * a * (-g*sintheta - b*costheta)
				d2Idydx = -indPhi * a * (g*costheta - b*sintheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // vm and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varA { // a var

			dRdx = indA*2*aTemp*(gSh[k]+g)*v[k] - v[m]*(g*costheta-b*sintheta)
			dIdx = indA*2*aTemp*(bSh[k]+b)*v[k] - v[m]*(g*sintheta+b*costheta)

			// J
			Jd[c.JNnz] = (R*dRdx + I*dIdx) / sqrterm
			c.JNnz++ // d|ikm|/da

			// H
			HNnzVal := c.HNnz[c.JRow]

			dRdy = dRdx
			dIdy = dIdx
			d2Rdydx = indA * 2 * (gSh[k] + g) * v[k]
			d2Idydx = indA * 2 * (bSh[k] + b) * v[k]
			Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
			HNnzVal++ // a and a

			if varPhi {
				dRdy = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
				dIdy = -indPhi * a * v[m] * (g*costheta - b*sintheta)
				d2Rdydx = -indPhi * v[m] * (-g*sintheta - b*costheta)
				d2Idydx = -indPhi * v[m] * (g*costheta - b*sintheta)
				Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
				HNnzVal++ // a and phi
			}
			c.HNnz[c.JRow] = HNnzVal
		}

		if varPhi { // phi var

			dRdx = -indPhi * a * v[m] * (-g*sintheta - b*costheta)
			dIdx = -indPhi * a * v[m] * (g*costheta - b*sintheta)

			// J
			Jd[c.JNnz] = (R*dRdx + I*dIdx) / sqrterm
			c.JNnz++ // d|ikm|/dphi

			// H
			HNnzVal := c.HNnz[c.JRow]

			dRdy = dRdx
			dIdy = dIdx
			d2Rdydx = -a * v[m] * (-g*costheta + b*sintheta)
			d2Idydx = -a * v[m] * (-g*sintheta - b*costheta)
			Hd[HNnzVal] = hessVal(R, I, dRdx, dIdx, dRdy, dIdy, d2Rdydx, d2Idydx, sqrterm, sqrterm3)
			HNnzVal++ // phi and phi
			c.HNnz[c.JRow] = HNnzVal
		}

		// constraint counter
		c.JRow++
	}
}

// StoreSensStep has nothing to store for now
func (o *AcFlowLim) StoreSensStep(c *Constr, br *net.Branch, t int, sA, sf, sGu, sGl []float64) {
}

// Free has nothing to release
func (o *AcFlowLim) Free(c *Constr) {
}
