// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package context

// SetKind identifies the SET-symbol data type (spec §3, "Variable
// symbols").
type SetKind uint8

// The three SET-symbol data types.
const (
	SetA SetKind = iota // arithmetic, int64
	SetB                // binary, bool
	SetC                // character, string
)

// VisibilityKind distinguishes a local SET symbol (LCLx, or an implicitly
// declared local) from a global one (GBLx, shared across scopes).
type VisibilityKind uint8

// Visibilities.
const (
	Local VisibilityKind = iota
	Global
)

// defaultArraySize bounds how far a SET-symbol array can be extended by
// subscript assignment before the per-scope size cap kicks in (spec §4.4.1,
// "SET* with subscript").
const defaultArraySize = 65535

// SetSym is a SETA/SETB/SETC variable symbol, scalar or array-valued (spec
// §3). Values are stored sparse: an array SET symbol often only has a
// handful of indices actually assigned.
type SetSym struct {
	Kind       SetKind
	Visibility VisibilityKind
	Scalar     bool
	values     map[int]any // lazily populated; index 1 is the scalar slot
}

// NewSetSym constructs a variable symbol of the given kind/visibility.
func NewSetSym(kind SetKind, vis VisibilityKind, scalar bool) *SetSym {
	return &SetSym{Kind: kind, Visibility: vis, Scalar: scalar, values: make(map[int]any)}
}

// zeroValue returns this kind's default value (A: 0, B: false, C: "").
func (s *SetSym) zeroValue() any {
	switch s.Kind {
	case SetA:
		return int64(0)
	case SetB:
		return false
	default:
		return ""
	}
}

// Get returns the value at the given 1-based index (index 1 for a scalar
// symbol), defaulting to the kind's zero value if never assigned.
func (s *SetSym) Get(index int) any {
	if v, ok := s.values[index]; ok {
		return v
	}

	return s.zeroValue()
}

// Set assigns the value at the given 1-based index, extending the backing
// array as needed. Returns false if index is out of the permitted range
// [1, defaultArraySize] (spec §4.4.1: "index must be >= 1 and <= the
// per-scope size cap").
func (s *SetSym) Set(index int, value any) bool {
	if index < 1 || index > defaultArraySize {
		return false
	}

	s.values[index] = value

	return true
}

// GetA/GetB/GetC are typed convenience accessors for the scalar slot.
func (s *SetSym) GetA() int64  { return s.Get(1).(int64) }
func (s *SetSym) GetB() bool   { return s.Get(1).(bool) }
func (s *SetSym) GetC() string { return s.Get(1).(string) }

// MacroParamSym is a macro-parameter variable symbol: either positional
// (Position > 0) or keyword (Name set, with Default), whose current binding
// is a ParamData tree (spec §3, "MacroParam").
type MacroParamSym struct {
	Position int
	Name     string
	Default  ParamData
	Bound    ParamData
}
