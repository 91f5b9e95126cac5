// Copyright 2017 The pfnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package net implements the electric power network data model: buses,
// branches, generators, loads, shunts, batteries and variable generators,
// together with the variable/index registry that assigns, per entity and
// per time period, the column indices used by constraint matrices.
package net

// FlagType selects which flag field of an entity an operation targets
type FlagType int

const (
	FlagVars    FlagType = iota // quantity is an optimization variable
	FlagFixed                   // quantity is fixed to its present value
	FlagBounded                 // quantity is subject to its limits
	FlagSparse                  // control adjustment should be sparse
)

// ObjType identifies a network entity kind
type ObjType int

const (
	ObjBus ObjType = iota
	ObjBranch
	ObjGen
	ObjLoad
	ObjShunt
	ObjBat
	ObjVarGen
)

// Bus quantity masks
const (
	BusVarVMag uint8 = 1 << iota // voltage magnitude
	BusVarVAng                   // voltage angle
	BusVarVSlack                 // slack quantities (no index allocation)
	BusVarVDev                   // voltage magnitude deviations (y, z)
	BusVarVVio                   // voltage band violations (vl, vh)
)

// Branch quantity masks
const (
	BranchVarRatio    uint8 = 1 << iota // taps ratio
	BranchVarPhase                      // phase shift
	BranchVarRatioDev                   // taps ratio deviations (y, z)
)

// Generator quantity masks
const (
	GenVarP uint8 = 1 << iota // active power
	GenVarQ                   // reactive power
)

// Load quantity masks
const (
	LoadVarP uint8 = 1 << iota // active power
	LoadVarQ                   // reactive power
)

// Shunt quantity masks
const (
	ShuntVarSusc uint8 = 1 << iota // switched susceptance
)

// Battery quantity masks
const (
	BatVarP uint8 = 1 << iota // charging/discharging powers (Pc, Pd)
	BatVarE                   // energy level
)

// Variable generator quantity masks
const (
	VarGenVarP uint8 = 1 << iota // active power
	VarGenVarQ                   // reactive power
)

// Codes for retrieving variable values
const (
	CurrentValues = iota // present values
	UpperLimits          // upper limits
	LowerLimits          // lower limits
)

// Sentinels for unbounded quantities
const (
	BranchInfFlow  = 1e8 // flow limit when a branch has no rating (p.u.)
	BranchInfRatio = 1e8 // taps ratio deviation bound (p.u.)
	LoadInfP       = 1e8 // load active power bound (p.u.)
	LoadInfQ       = 1e8 // load reactive power bound (p.u.)
)

// DefaultBasePower is the system base used when a case defines none (MVA)
const DefaultBasePower = 100.0

// flagsPtr maps a flag type to the corresponding bit field
func flagsPtr(ft FlagType, vars, fixed, bounded, sparse *uint8) *uint8 {
	switch ft {
	case FlagVars:
		return vars
	case FlagFixed:
		return fixed
	case FlagBounded:
		return bounded
	case FlagSparse:
		return sparse
	}
	return nil
}
