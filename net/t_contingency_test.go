// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package net

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_cont01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cont01. branch outage apply and clear")

	nt := two_bus_net(1)
	br := nt.Branch(0)
	busK := nt.Bus(0)
	busM := nt.Bus(1)

	cont := NewCont()
	cont.AddBranchOutage(br)
	chk.IntAssert(cont.NumBranchOutages(), 1)

	cont.Apply()
	if !br.IsOnOutage() {
		tst.Errorf("branch not on outage after apply")
		return
	}
	if br.BusK() != nil || br.BusM() != nil {
		tst.Errorf("branch still connected after apply")
		return
	}
	chk.IntAssert(len(busK.BranchesK()), 0)
	chk.IntAssert(len(busM.BranchesM()), 0)

	cont.Clear()
	if br.IsOnOutage() {
		tst.Errorf("branch still on outage after clear")
		return
	}
	if br.BusK() != busK || br.BusM() != busM {
		tst.Errorf("branch connectivity not restored")
		return
	}
	chk.IntAssert(len(busK.BranchesK()), 1)
	chk.IntAssert(len(busM.BranchesM()), 1)
}

func Test_cont02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cont02. generator outage apply and clear")

	nt := two_bus_net(1)
	nt.AllocGens(1)
	nt.ConnectGen(0, 0)
	gen := nt.Gen(0)
	bus := nt.Bus(0)
	gen.SetRegBus(bus)
	bus.AddRegGen(gen)

	cont := NewCont()
	cont.AddGenOutage(gen)

	cont.Apply()
	if !gen.IsOnOutage() || gen.Bus() != nil || gen.RegBus() != nil {
		tst.Errorf("generator outage not applied")
		return
	}
	chk.IntAssert(len(bus.Gens()), 0)
	chk.IntAssert(len(bus.RegGens()), 0)

	cont.Clear()
	if gen.IsOnOutage() || gen.Bus() != bus || gen.RegBus() != bus {
		tst.Errorf("generator outage not cleared")
		return
	}
	chk.IntAssert(len(bus.Gens()), 1)
	chk.IntAssert(len(bus.RegGens()), 1)
}
