// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the native (.json) power network case format and
// builds net.Net structures from it. Interchange formats such as MATPOWER
// or PSS/E raw are handled by external tools.
package inp

import (
	"encoding/json"

	"github.com/raulhuatuco/pfnet/net"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Profile selects how a per-period quantity evolves over the horizon.
// Type "cte" repeats the base value; "lin" ramps it by Rate per period.
type Profile struct {
	Type string  `json:"type"` // "cte" or "lin"
	Rate float64 `json:"rate"` // slope for "lin" (fraction of base per period)
}

// Fcn builds the gosl function scaling a base value over periods
func (o *Profile) Fcn() (f fun.Func, err error) {
	switch o.Type {
	case "", "cte":
		f = &fun.Cte{C: 1}
	case "lin":
		f = &fun.Add{A: 1, Fa: &fun.Cte{C: 1}, B: 1, Fb: &fun.Lin{M: o.Rate}}
	default:
		err = chk.Err("unknown profile type %q", o.Type)
	}
	return
}

// BusData holds one bus record
type BusData struct {
	Number int     `json:"number"`
	Name   string  `json:"name"`
	VMag   float64 `json:"vmag"`
	VAng   float64 `json:"vang"`
	VMax   float64 `json:"vmax"`
	VMin   float64 `json:"vmin"`
	Slack  bool    `json:"slack"`
}

// BranchData holds one branch record; buses are referenced by number
type BranchData struct {
	BusK     int     `json:"busk"`
	BusM     int     `json:"busm"`
	G        float64 `json:"g"`
	B        float64 `json:"b"`
	GK       float64 `json:"gk"`
	GM       float64 `json:"gm"`
	BK       float64 `json:"bk"`
	BM       float64 `json:"bm"`
	Ratio    float64 `json:"ratio"`
	RatioMax float64 `json:"ratiomax"`
	RatioMin float64 `json:"ratiomin"`
	Phase    float64 `json:"phase"`
	PhaseMax float64 `json:"phasemax"`
	PhaseMin float64 `json:"phasemin"`
	RatingA  float64 `json:"ratinga"`
	RatingB  float64 `json:"ratingb"`
	RatingC  float64 `json:"ratingc"`
}

// GenData holds one generator record
type GenData struct {
	Bus  int     `json:"bus"`
	P    float64 `json:"p"`
	Q    float64 `json:"q"`
	PMax float64 `json:"pmax"`
	PMin float64 `json:"pmin"`
	QMax float64 `json:"qmax"`
	QMin float64 `json:"qmin"`
	Q0   float64 `json:"q0"` // cost coefficients
	Q1   float64 `json:"q1"`
	Q2   float64 `json:"q2"`
}

// LoadData holds one load record
type LoadData struct {
	Bus     int      `json:"bus"`
	P       float64  `json:"p"`
	Q       float64  `json:"q"`
	PMax    float64  `json:"pmax"`
	PMin    float64  `json:"pmin"`
	Profile *Profile `json:"profile"` // optional per-period scaling of P and Q
}

// ShuntData holds one shunt record
type ShuntData struct {
	Bus  int     `json:"bus"`
	G    float64 `json:"g"`
	B    float64 `json:"b"`
	BMax float64 `json:"bmax"`
	BMin float64 `json:"bmin"`
}

// BatData holds one battery record
type BatData struct {
	Bus    int     `json:"bus"`
	PMax   float64 `json:"pmax"`
	PMin   float64 `json:"pmin"`
	EMax   float64 `json:"emax"`
	EInit  float64 `json:"einit"`
	EFinal float64 `json:"efinal"`
	EtaC   float64 `json:"etac"`
	EtaD   float64 `json:"etad"`
}

// VarGenData holds one variable generator record
type VarGenData struct {
	Bus  int     `json:"bus"`
	Name string  `json:"name"`
	P    float64 `json:"p"`
	PStd float64 `json:"pstd"`
	PMax float64 `json:"pmax"`
	PMin float64 `json:"pmin"`
	QMax float64 `json:"qmax"`
	QMin float64 `json:"qmin"`
}

// Case holds a complete network case
type Case struct {
	Desc       string       `json:"desc"`
	BaseMVA    float64      `json:"basemva"`
	NumPeriods int          `json:"numperiods"`
	Buses      []BusData    `json:"buses"`
	Branches   []BranchData `json:"branches"`
	Gens       []GenData    `json:"gens"`
	Loads      []LoadData   `json:"loads"`
	Shunts     []ShuntData  `json:"shunts"`
	Bats       []BatData    `json:"bats"`
	VarGens    []VarGenData `json:"vargens"`
}

// ReadCase reads a case file
func ReadCase(fname string) (o *Case, err error) {
	o = new(Case)
	b, err := io.ReadFile(fname)
	if err != nil {
		return nil, chk.Err("cannot read case file %q:\n%v", fname, err)
	}
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode case file %q:\n%v", fname, err)
	}
	return
}

// Net builds a network from this case
func (o *Case) Net() (nt *net.Net, err error) {

	// horizon
	T := o.NumPeriods
	if T < 1 {
		T = 1
	}
	nt = net.New(T)
	if o.BaseMVA > 0 {
		nt.SetBasePower(o.BaseMVA)
	}

	// entities
	nt.AllocBuses(len(o.Buses))
	nt.AllocBranches(len(o.Branches))
	nt.AllocGens(len(o.Gens))
	nt.AllocLoads(len(o.Loads))
	nt.AllocShunts(len(o.Shunts))
	nt.AllocBats(len(o.Bats))
	nt.AllocVarGens(len(o.VarGens))

	// buses
	num2idx := make(map[int]int)
	for i, d := range o.Buses {
		if _, ok := num2idx[d.Number]; ok {
			return nil, chk.Err("duplicate bus number %d", d.Number)
		}
		num2idx[d.Number] = i
		bus := nt.Bus(i)
		bus.SetNumber(d.Number)
		bus.SetName(d.Name)
		bus.SetSlack(d.Slack)
		for t := 0; t < T; t++ {
			if d.VMag > 0 {
				bus.SetVMag(d.VMag, t)
			}
			bus.SetVAng(d.VAng, t)
		}
		if d.VMax > 0 {
			bus.SetVMax(d.VMax)
		}
		if d.VMin > 0 {
			bus.SetVMin(d.VMin)
		}
	}

	// findBus maps a bus number to its index
	findBus := func(number int, kind string, i int) (idx int, err error) {
		idx, ok := num2idx[number]
		if !ok {
			err = chk.Err("%s %d refers to unknown bus %d", kind, i, number)
		}
		return
	}

	// branches
	for i, d := range o.Branches {
		k, err := findBus(d.BusK, "branch", i)
		if err != nil {
			return nil, err
		}
		m, err := findBus(d.BusM, "branch", i)
		if err != nil {
			return nil, err
		}
		nt.ConnectBranch(i, k, m)
		br := nt.Branch(i)
		br.SetG(d.G)
		br.SetB(d.B)
		br.SetGK(d.GK)
		br.SetGM(d.GM)
		br.SetBK(d.BK)
		br.SetBM(d.BM)
		for t := 0; t < T; t++ {
			if d.Ratio > 0 {
				br.SetRatio(d.Ratio, t)
			}
			br.SetPhase(d.Phase, t)
		}
		if d.RatioMax > 0 {
			br.SetRatioMax(d.RatioMax)
		}
		if d.RatioMin > 0 {
			br.SetRatioMin(d.RatioMin)
		}
		br.SetPhaseMax(d.PhaseMax)
		br.SetPhaseMin(d.PhaseMin)
		br.SetRatingA(d.RatingA)
		br.SetRatingB(d.RatingB)
		br.SetRatingC(d.RatingC)
	}

	// generators
	for i, d := range o.Gens {
		b, err := findBus(d.Bus, "gen", i)
		if err != nil {
			return nil, err
		}
		nt.ConnectGen(i, b)
		gen := nt.Gen(i)
		for t := 0; t < T; t++ {
			gen.SetP(d.P, t)
			gen.SetQ(d.Q, t)
		}
		gen.SetPMax(d.PMax)
		gen.SetPMin(d.PMin)
		gen.SetQMax(d.QMax)
		gen.SetQMin(d.QMin)
		gen.SetCostCoeffQ0(d.Q0)
		gen.SetCostCoeffQ1(d.Q1)
		gen.SetCostCoeffQ2(d.Q2)
	}

	// loads
	for i, d := range o.Loads {
		b, err := findBus(d.Bus, "load", i)
		if err != nil {
			return nil, err
		}
		nt.ConnectLoad(i, b)
		load := nt.Load(i)
		scale := fun.Func(&fun.Cte{C: 1})
		if d.Profile != nil {
			scale, err = d.Profile.Fcn()
			if err != nil {
				return nil, err
			}
		}
		for t := 0; t < T; t++ {
			s := scale.F(float64(t), nil)
			load.SetP(d.P*s, t)
			load.SetQ(d.Q*s, t)
			load.SetPMax(d.PMax*s, t)
			load.SetPMin(d.PMin*s, t)
		}
	}

	// shunts
	for i, d := range o.Shunts {
		b, err := findBus(d.Bus, "shunt", i)
		if err != nil {
			return nil, err
		}
		nt.ConnectShunt(i, b)
		shunt := nt.Shunt(i)
		shunt.SetG(d.G)
		for t := 0; t < T; t++ {
			shunt.SetB(d.B, t)
		}
		shunt.SetBMax(d.BMax)
		shunt.SetBMin(d.BMin)
	}

	// batteries
	for i, d := range o.Bats {
		b, err := findBus(d.Bus, "bat", i)
		if err != nil {
			return nil, err
		}
		nt.ConnectBat(i, b)
		bat := nt.Bat(i)
		bat.SetPMax(d.PMax)
		bat.SetPMin(d.PMin)
		bat.SetEMax(d.EMax)
		bat.SetEInit(d.EInit)
		bat.SetEFinal(d.EFinal)
		if d.EtaC > 0 {
			bat.SetEtaC(d.EtaC)
		}
		if d.EtaD > 0 {
			bat.SetEtaD(d.EtaD)
		}
	}

	// variable generators
	for i, d := range o.VarGens {
		b, err := findBus(d.Bus, "vargen", i)
		if err != nil {
			return nil, err
		}
		nt.ConnectVarGen(i, b)
		vg := nt.VarGen(i)
		vg.SetName(d.Name)
		for t := 0; t < T; t++ {
			vg.SetP(d.P, t)
			vg.SetPStd(d.PStd, t)
		}
		vg.SetPMax(d.PMax)
		vg.SetPMin(d.PMin)
		vg.SetQMax(d.QMax)
		vg.SetQMin(d.QMin)
	}

	return
}

// ReadNet reads a case file and builds the network in one call
func ReadNet(fname string) (nt *net.Net, err error) {
	c, err := ReadCase(fname)
	if err != nil {
		return
	}
	return c.Net()
}
