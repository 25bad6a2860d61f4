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

// Package context implements the analyzer's single mutable program-state
// object (spec §3): the identifier pool, opcode table/overlay, ordinary and
// variable symbol tables, section/location-counter/space bookkeeping, and
// the scope/source/copy/processing stacks a running analysis threads
// through every statement provider and processor. It plays the role the
// teacher's pkg/corset/compiler/scope.go ModuleScope plays for constraint
// compilation, generalised to HLASM's richer, mutable, order-dependent
// assembly-time state.
package context

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
)

// Context is the single piece of mutable state threaded through an entire
// analysis run (spec §3, item 1: "A context holding the current program
// state"). One Context exists per opened/analyzed source file; workspace-
// level caches (macro cache, library resolver) live above it in
// pkg/workspace and pkg/macrocache.
type Context struct {
	Ids     *id.Pool
	Opcodes *opcode.Overlay

	Ord     *OrdTable
	Globals *Globals

	scopes     *Scope
	sections   map[string]*Section
	curSection string

	Source     *SourceStack
	Copy       *CopyStack
	Processing *ProcessingStack

	// Sysndx counts macro invocations for SYSNDX generation (spec §4.4.4).
	Sysndx int
}

// New constructs a fresh Context rooted at the given open-code file URI,
// with a base opcode table populated with the built-in CA/assembler/machine
// mnemonics (spec §4.1, §4.4).
func New(openCodeURI string) *Context {
	base := opcode.NewBuiltinTable()

	c := &Context{
		Ids:        id.NewPool(),
		Opcodes:    opcode.NewOverlay(base),
		Ord:        NewOrdTable(),
		Globals:    NewGlobals(),
		scopes:     NewRootScope(),
		sections:   make(map[string]*Section),
		Source:     NewSourceStack(openCodeURI),
		Copy:       NewCopyStack(),
		Processing: NewProcessingStack(),
	}
	// The unnamed private section is always available, matching an
	// HLASM program that emits code before any CSECT/DSECT (spec §3,
	// "Section / location counter / space").
	c.sections[""] = NewSection("", CSect)
	c.curSection = ""

	return c
}

// Scope returns the innermost active scope (the open-code frame, or the
// frame for whichever macro invocation is currently executing).
func (c *Context) Scope() *Scope {
	return c.scopes
}

// EnterMacro pushes a new scope frame for a macro invocation (spec §4.2,
// "Macro-replay provider").
func (c *Context) EnterMacro(macroName string) {
	c.scopes = NewMacroScope(c.scopes, macroName)
}

// ExitMacro pops the innermost scope frame, returning to its parent. It is
// a no-op at the root scope.
func (c *Context) ExitMacro() {
	if parent := c.scopes.Parent(); parent != nil {
		c.scopes = parent
	}
}

// Section returns (creating if necessary) the named section; an empty name
// denotes the default private section active before any CSECT/DSECT/RSECT.
func (c *Context) Section(name string) *Section {
	if s, ok := c.sections[name]; ok {
		return s
	}

	s := NewSection(name, CSect)
	c.sections[name] = s

	return s
}

// SectionIfExists returns the named section without creating it, for
// callers that must validate its kind before switching (spec §4.4.2,
// "Section switching").
func (c *Context) SectionIfExists(name string) (*Section, bool) {
	s, ok := c.sections[name]
	return s, ok
}

// SwitchSection changes which section subsequent instructions target,
// creating it with the given kind if this is its first mention (spec
// §4.4.2, "Section switching": CSECT/DSECT/RSECT/COM).
func (c *Context) SwitchSection(name string, kind SectionKind) *Section {
	s, ok := c.sections[name]
	if !ok {
		s = NewSection(name, kind)
		c.sections[name] = s
	}

	c.curSection = name

	return s
}

// CurrentSection returns the section instructions are currently assembled
// into.
func (c *Context) CurrentSection() *Section {
	return c.sections[c.curSection]
}

// NextSysndx allocates the next SYSNDX value for a macro invocation (spec
// §4.4.4, "SYSNDX").
func (c *Context) NextSysndx() int {
	c.Sysndx++
	return c.Sysndx
}
