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

// Package macrocache implements the macro cache (spec §4.7): once a
// library-resolved macro is parsed, its body, transitively used copy
// members, and opcode-state fingerprint are recorded. A later parse
// request for the same member reuses the cached definition if the current
// context's opcode state, restricted to the fingerprint, matches exactly.
package macrocache

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
)

// MnemonicIndex assigns a stable bit position to every mnemonic a
// fingerprint has ever referenced, so fingerprint membership can be
// compared with a bitset before falling back to the more expensive exact
// state comparison.
type MnemonicIndex struct {
	bits map[id.Id]uint
	next uint
}

// NewMnemonicIndex constructs an empty index.
func NewMnemonicIndex() *MnemonicIndex {
	return &MnemonicIndex{bits: make(map[id.Id]uint)}
}

// BitFor returns the stable bit position for name, assigning a fresh one on
// first use.
func (m *MnemonicIndex) BitFor(name id.Id) uint {
	if b, ok := m.bits[name]; ok {
		return b
	}

	b := m.next
	m.bits[name] = b
	m.next++

	return b
}

// Membership builds the bitset of bit positions for the given mnemonic set.
// Its length is one past the highest bit set, so the same set always yields
// an equal bitset however many mnemonics the index has assigned since.
func (m *MnemonicIndex) Membership(names []id.Id) *bitset.BitSet {
	bs := bitset.New(0)
	for _, n := range names {
		bs.Set(m.BitFor(n))
	}

	return bs
}

// Entry is one cached macro parse (spec §4.7): the parsed body, the
// transitive set of copy members it consumed, and a snapshot of the opcode
// descriptor each fingerprint mnemonic resolved to at parse time.
type Entry struct {
	Body        []string
	CopyMembers []id.Id
	Fingerprint map[id.Id]opcode.Descriptor
	Processing  context.ProcessorKind
	membership  *bitset.BitSet
}

// Cache is the workspace-level macro cache. The key is the triple spec §3
// requires - (macro_id, relevant_opsyn_subset, processing_kind) - so a macro
// parsed under ordinary processing and the same macro parsed while a
// lookahead scan speculatively reparses it never collide, even when their
// opcode fingerprints are identical. Several entries may exist per macro
// name, one per distinct (fingerprint, processing kind) pair observed so
// far.
type Cache struct {
	index   *MnemonicIndex
	entries map[id.Id][]*Entry
}

// NewCache constructs an empty macro cache.
func NewCache() *Cache {
	return &Cache{index: NewMnemonicIndex(), entries: make(map[id.Id][]*Entry)}
}

// Record adds a freshly parsed macro body to the cache (spec §4.7, "record
// the macro body, the set of transitively used copy members, and the
// opcode-state fingerprint"), keyed under the processing kind active while
// the macro was parsed.
func (c *Cache) Record(macro id.Id, body []string, copyMembers []id.Id, fingerprint map[id.Id]opcode.Descriptor, processing context.ProcessorKind) *Entry {
	names := make([]id.Id, 0, len(fingerprint))
	for n := range fingerprint {
		names = append(names, n)
	}

	e := &Entry{
		Body:        body,
		CopyMembers: append([]id.Id(nil), copyMembers...),
		Fingerprint: fingerprint,
		Processing:  processing,
		membership:  c.index.Membership(names),
	}

	c.entries[macro] = append(c.entries[macro], e)

	return e
}

// Lookup searches for a cached entry recorded under the given processing
// kind whose fingerprint exactly matches the current opcode state for the
// mnemonics it cares about (spec §4.7: "If it matches a cached entry
// exactly, adopt the cached macro definition"). current supplies the live
// descriptor for each mnemonic name the caller is prepared to compare
// (normally every mnemonic the workspace has ever seen used in a
// fingerprint).
func (c *Cache) Lookup(macro id.Id, current map[id.Id]opcode.Descriptor, processing context.ProcessorKind) (*Entry, bool) {
	candidates := c.entries[macro]

	for _, e := range candidates {
		if e.Processing == processing && c.matches(e, current) {
			return e, true
		}
	}

	return nil, false
}

func (c *Cache) matches(e *Entry, current map[id.Id]opcode.Descriptor) bool {
	names := make([]id.Id, 0, len(e.Fingerprint))
	for n := range e.Fingerprint {
		names = append(names, n)
	}

	if !e.membership.Equal(c.index.Membership(names)) {
		return false
	}

	for n, wantDesc := range e.Fingerprint {
		gotDesc, ok := current[n]
		if !ok || gotDesc != wantDesc {
			return false
		}
	}

	return true
}

// Invalidate drops every cache entry, across every macro name, whose
// transitive copy-member set includes member (spec §4.7: "When any file in
// the transitive set changes, all cache entries that reference it are
// invalidated").
func (c *Cache) Invalidate(member id.Id) {
	for macro, entries := range c.entries {
		kept := entries[:0]

		for _, e := range entries {
			if !containsMember(e.CopyMembers, member) {
				kept = append(kept, e)
			}
		}

		c.entries[macro] = kept
	}
}

func containsMember(members []id.Id, target id.Id) bool {
	for _, m := range members {
		if m.Equals(target) {
			return true
		}
	}

	return false
}
