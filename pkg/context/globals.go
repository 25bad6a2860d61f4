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

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
)

// Globals is the single assembly-wide table backing GBLA/GBLB/GBLC
// variables (spec §3: "a global SET symbol is shared by every scope that
// has declared it"; first GBLx in a scope either creates the global entry
// or binds the scope to the existing one). Unlike OrdTable, redeclaring a
// global with the same name and kind in a different scope is not an error -
// it is exactly how globals are shared.
type Globals struct {
	entries map[id.Id]*SetSym
}

// NewGlobals constructs an empty global-variable table.
func NewGlobals() *Globals {
	return &Globals{entries: make(map[id.Id]*SetSym)}
}

// Declare binds name to the assembly-wide global SET symbol of the given
// kind, creating it on first use. It returns the existing symbol (ignoring
// kind/scalar) if name was already declared as a global with a different
// kind, matching HLASM's permissive re-GBLx behaviour - callers that need
// to diagnose a kind mismatch compare the returned symbol's Kind
// themselves.
func (g *Globals) Declare(name id.Id, kind SetKind, scalar bool) *SetSym {
	if existing, ok := g.entries[name]; ok {
		return existing
	}

	sym := NewSetSym(kind, Global, scalar)
	g.entries[name] = sym

	return sym
}

// Lookup resolves a global variable symbol by name.
func (g *Globals) Lookup(name id.Id) (*SetSym, bool) {
	s, ok := g.entries[name]
	return s, ok
}
