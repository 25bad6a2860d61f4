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

// Package opcode implements the static opcode descriptor table and the
// per-context OPSYN overlay described in spec §4.1. The base table is a
// program-wide constant (spec §9, "Global state"); every Context keeps its
// own Overlay, which is consulted before falling through to the base table.
package opcode

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
)

// Kind classifies an opcode.
type Kind uint8

// The opcode kinds recognised by dispatch (spec §3, "Opcode table").
const (
	Undefined Kind = iota
	Machine
	Mnemonic
	Assembler
	CA
	Macro
)

// Descriptor is the detail attached to a table entry, used by the family
// processors for operand-format checking.
type Descriptor struct {
	Kind Kind
	// Detail is a family-specific payload: machine instruction encoding
	// length, assembler-directive operand arity, and so on. Kept as an
	// opaque value here; each instr/* package knows how to interpret the
	// descriptors it cares about.
	Detail any
}

// Table is the static, immutable base mapping of mnemonic to descriptor,
// initialised once per run (spec §4.1, "initialized once per run from a
// static descriptor list").
type Table struct {
	entries map[string]Descriptor
}

// NewTable constructs a base table from a static descriptor list. The map
// is owned by the caller; Table copies what it needs.
func NewTable(entries map[string]Descriptor) *Table {
	cp := make(map[string]Descriptor, len(entries))
	for k, v := range entries {
		cp[k] = v
	}

	return &Table{entries: cp}
}

// Lookup resolves a base-table entry, ignoring any overlay.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	d, ok := t.entries[name]
	return d, ok
}

// overlayEntry distinguishes an OPSYN rename from an OPSYN deletion
// (tombstone), per spec §4.1: "deletion is recorded as an explicit tombstone
// so that later lookups return undefined rather than the underlying
// definition".
type overlayEntry struct {
	tombstone bool
	target    Descriptor
}

// Overlay is a per-context view of the opcode table, mutated by OPSYN. The
// base table it wraps is never mutated.
type Overlay struct {
	base    *Table
	entries map[id.Id]overlayEntry
}

// NewOverlay constructs an overlay over a shared base table.
func NewOverlay(base *Table) *Overlay {
	return &Overlay{base: base, entries: make(map[id.Id]overlayEntry)}
}

// Lookup resolves name to a descriptor, consulting the overlay before the
// base table. A tombstoned name resolves to (zero, false) even though the
// base table still has an entry for it - this is what makes an OPSYN
// deletion observably different from a name that was never defined.
func (o *Overlay) Lookup(opId id.Id, name string) (Descriptor, bool) {
	if e, ok := o.entries[opId]; ok {
		if e.tombstone {
			return Descriptor{}, false
		}

		return e.target, true
	}

	return o.base.Lookup(name)
}

// Define registers a brand-new overlay entry for opId, independent of any
// base-table mnemonic - this is how a freshly-processed macro definition
// becomes a callable opcode (spec §4.3, "MEND ... recognized as a macro
// call thereafter"), as opposed to Synonym's OPSYN-style aliasing of an
// already-resolvable name.
func (o *Overlay) Define(opId id.Id, d Descriptor) {
	o.entries[opId] = overlayEntry{target: d}
}

// Synonym implements `A OPSYN B`: subsequent lookups of A resolve as
// whatever B currently resolves to (captured at the time of the OPSYN, not
// re-resolved later - matching real HLASM semantics where OPSYN binds the
// definition, not the name).
func (o *Overlay) Synonym(a id.Id, bName string) bool {
	target, ok := o.resolveOverlayAware(bName)
	if !ok {
		return false
	}

	o.entries[a] = overlayEntry{target: target}

	return true
}

// Delete implements `A OPSYN ,`: A becomes undefined, distinguishably from
// "never defined", via a tombstone entry.
func (o *Overlay) Delete(a id.Id) {
	o.entries[a] = overlayEntry{tombstone: true}
}

// resolveOverlayAware looks a name up the same way Lookup would, given only
// its string form (used internally by Synonym, which receives its second
// operand as a bare mnemonic rather than an interned Id from the caller's
// pool).
func (o *Overlay) resolveOverlayAware(name string) (Descriptor, bool) {
	for opId, e := range o.entries {
		if opId.String() == name {
			if e.tombstone {
				return Descriptor{}, false
			}

			return e.target, true
		}
	}

	return o.base.Lookup(name)
}

// Fingerprint returns the set of mnemonics, drawn from names, whose
// resolution in this overlay differs from the base table's - i.e. the
// "relevant OPSYN subset" that actually matters for a given macro body (spec
// §3, "Macro cache entry"; spec §4.7).
func (o *Overlay) Fingerprint(names []string) map[string]Descriptor {
	out := make(map[string]Descriptor)

	for _, n := range names {
		base, baseOk := o.base.Lookup(n)

		cur, curOk := o.resolveOverlayAware(n)
		if curOk != baseOk || (curOk && cur.Kind != base.Kind) {
			out[n] = cur
		}
	}

	return out
}
