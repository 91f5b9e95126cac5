// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

// genOutage records enough state to undo a generator outage
type genOutage struct {
	gen    *Gen
	bus    *Bus
	regBus *Bus
}

// branchOutage records enough state to undo a branch outage
type branchOutage struct {
	br     *Branch
	busK   *Bus
	busM   *Bus
	regBus *Bus
	brType int
}

// Cont holds a contingency: a set of generator and branch outages that can
// be applied to a network and later cleared, restoring connectivity and
// regulation links exactly.
type Cont struct {
	genOutages []genOutage
	brOutages  []branchOutage
	applied    bool
}

// NewCont returns a new empty contingency
func NewCont() *Cont {
	return new(Cont)
}

// NumGenOutages returns the number of generator outages
func (o *Cont) NumGenOutages() int { return len(o.genOutages) }

// NumBranchOutages returns the number of branch outages
func (o *Cont) NumBranchOutages() int { return len(o.brOutages) }

// IsApplied tells whether the contingency is currently applied
func (o *Cont) IsApplied() bool { return o.applied }

// AddGenOutage schedules a generator outage
func (o *Cont) AddGenOutage(g *Gen) {
	o.genOutages = append(o.genOutages, genOutage{
		gen:    g,
		bus:    g.Bus(),
		regBus: g.RegBus(),
	})
}

// AddBranchOutage schedules a branch outage
func (o *Cont) AddBranchOutage(br *Branch) {
	o.brOutages = append(o.brOutages, branchOutage{
		br:     br,
		busK:   br.BusK(),
		busM:   br.BusM(),
		regBus: br.RegBus(),
		brType: br.Type(),
	})
}

// Apply puts the scheduled outages in effect: outage flags are raised and
// connectivity and regulation links are severed
func (o *Cont) Apply() {
	if o.applied {
		return
	}
	for _, og := range o.genOutages {
		og.gen.SetOutage(true)
		og.gen.SetBus(nil)
		if og.bus != nil {
			og.bus.DelGen(og.gen)
		}
		og.gen.SetRegBus(nil)
		if og.regBus != nil {
			og.regBus.DelRegGen(og.gen)
		}
	}
	for _, bo := range o.brOutages {
		bo.br.SetOutage(true)
		bo.br.SetBusK(nil)
		bo.br.SetBusM(nil)
		if bo.busK != nil {
			bo.busK.DelBranchK(bo.br)
		}
		if bo.busM != nil {
			bo.busM.DelBranchM(bo.br)
		}
		bo.br.SetRegBus(nil)
		if bo.regBus != nil {
			bo.regBus.DelRegTran(bo.br)
		}
		if bo.br.Type() != BranchTypeLine {
			bo.br.SetType(BranchTypeTranFixed)
		}
	}
	o.applied = true
}

// Clear undoes Apply, restoring connectivity and regulation links
func (o *Cont) Clear() {
	if !o.applied {
		return
	}
	for _, og := range o.genOutages {
		og.gen.SetOutage(false)
		og.gen.SetBus(og.bus)
		if og.bus != nil {
			og.bus.AddGen(og.gen)
		}
		og.gen.SetRegBus(og.regBus)
		if og.regBus != nil {
			og.regBus.AddRegGen(og.gen)
		}
	}
	for _, bo := range o.brOutages {
		bo.br.SetOutage(false)
		bo.br.SetBusK(bo.busK)
		bo.br.SetBusM(bo.busM)
		if bo.busK != nil {
			bo.busK.AddBranchK(bo.br)
		}
		if bo.busM != nil {
			bo.busM.AddBranchM(bo.br)
		}
		bo.br.SetRegBus(bo.regBus)
		if bo.regBus != nil {
			bo.regBus.AddRegTran(bo.br)
		}
		bo.br.SetType(bo.brType)
	}
	o.applied = false
}
