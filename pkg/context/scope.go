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

// VarSymKind discriminates the two shapes a variable symbol can take (spec
// §3, "Variable symbols").
type VarSymKind uint8

// The two variable-symbol shapes.
const (
	VarSet VarSymKind = iota
	VarMacroParam
)

// VarSym is the tagged union `Id -> VarSym` from spec §3: a SET symbol or a
// macro-parameter binding, modelled as an explicit discriminator plus
// payload per spec §9 rather than an interface hierarchy, mirroring the
// style of the teacher's pkg/corset/ast expression nodes.
type VarSym struct {
	Kind  VarSymKind
	Set   *SetSym
	Param *MacroParamSym
}

// Scope is one frame of the scope stack (spec §3): the open-code frame, or
// one frame per active macro invocation. It owns that macro's local
// variables, its sequence symbols, and its branch counter - generalised
// from the teacher's pkg/corset/compiler/scope.go ModuleScope, which plays
// the analogous role of "a namespace frame with parent-relative lookup",
// retargeted here from module-qualified constraint names onto macro-local
// CA variables.
type Scope struct {
	// MacroName is empty for the open-code (root) scope.
	MacroName string
	locals    map[id.Id]*VarSym
	seqSyms   map[id.Id]int // sequence symbol -> statement index within this scope's body
	// BranchCounter implements ACTR's per-scope countdown (spec §4.4.1).
	BranchCounter int
	branchLimit   int
	// StatementIndex positions the macro-replay provider within this scope's
	// stored body (spec §4.2, "Macro-replay provider").
	StatementIndex int
	parent         *Scope
}

// defaultActrLimit is ACTR's default branch-counter limit (spec §4.4.1).
const defaultActrLimit = 1000

// NewRootScope constructs the open-code scope (no enclosing macro).
func NewRootScope() *Scope {
	return &Scope{
		locals:      make(map[id.Id]*VarSym),
		seqSyms:     make(map[id.Id]int),
		branchLimit: defaultActrLimit,
	}
}

// NewMacroScope constructs a fresh scope for entering macro name, chained to
// parent only for diagnostic context - macro-local variables are NOT
// visible across scopes (spec §3: "Variable tables are per code scope").
func NewMacroScope(parent *Scope, macroName string) *Scope {
	return &Scope{
		MacroName:   macroName,
		locals:      make(map[id.Id]*VarSym),
		seqSyms:     make(map[id.Id]int),
		branchLimit: defaultActrLimit,
		parent:      parent,
	}
}

// Parent returns the enclosing scope, or nil for the root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare installs a new local variable symbol, overwriting any previous
// declaration of the same name within this scope (LCLA/LCLB/LCLC re-issued
// for an existing name simply redeclares it, matching HLASM behaviour).
func (s *Scope) Declare(name id.Id, v *VarSym) {
	s.locals[name] = v
}

// Lookup resolves a local variable symbol by name within this scope only
// (globals are resolved separately, via Context.Globals).
func (s *Scope) Lookup(name id.Id) (*VarSym, bool) {
	v, ok := s.locals[name]
	return v, ok
}

// DeclareSeqSym records a sequence symbol (".LOOP" style label) at the
// given statement index within this scope's body.
func (s *Scope) DeclareSeqSym(name id.Id, stmtIndex int) {
	s.seqSyms[name] = stmtIndex
}

// LookupSeqSym resolves a sequence symbol within this scope.
func (s *Scope) LookupSeqSym(name id.Id) (int, bool) {
	idx, ok := s.seqSyms[name]
	return idx, ok
}

// SetActrLimit overrides the branch-counter limit for this scope, as
// MHELP(x) instructs (spec §4.4.1).
func (s *Scope) SetActrLimit(limit int) {
	s.branchLimit = limit
}

// ActrLimit returns the current branch-counter limit.
func (s *Scope) ActrLimit() int {
	return s.branchLimit
}

// Tick advances the branch counter on every AIF/AGO, reporting whether the
// limit has now been exceeded: with a limit of n the first n branches pass
// and the next one is refused (spec §4.4.1, ACTR semantics).
func (s *Scope) Tick() (limitReached bool) {
	s.BranchCounter++
	return s.BranchCounter > s.branchLimit
}
