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

// SectionKind distinguishes the section-switching instructions (spec
// §4.4.2, "Section switching").
type SectionKind uint8

// Section kinds.
const (
	CSect SectionKind = iota
	DSect
	RSect
	Com
)

// Space is a named, possibly-unresolved delta used when emission size or
// alignment depends on a not-yet-resolved expression (spec §3, "Section /
// location counter / space"). Resolution substitutes a concrete integer for
// the space.
type Space struct {
	id       int
	resolved bool
	value    int64
}

// IsResolved reports whether this space has been given a concrete value.
func (s *Space) IsResolved() bool {
	return s.resolved
}

// Value returns the resolved value; callers must check IsResolved first.
func (s *Space) Value() int64 {
	return s.value
}

// Resolve substitutes a concrete value for this space, as the dependency
// solver does once every symbol the space's defining expression depends on
// becomes resolvable (spec §4.5, "resolve_space").
func (s *Space) Resolve(value int64) {
	s.resolved = true
	s.value = value
}

// RelocatableValue is a section-relative address: a base offset plus a sum
// of as-yet-unresolved spaces (spec §3, "relocatable values carry a sum of
// spaces").
type RelocatableValue struct {
	Section *Section
	Loctr   string
	Offset  int64
	Spaces  []*Space
}

// Resolved reports whether every outstanding space in this value has been
// substituted with a concrete integer.
func (r RelocatableValue) Resolved() bool {
	for _, sp := range r.Spaces {
		if !sp.IsResolved() {
			return false
		}
	}

	return true
}

// Address computes the concrete address once Resolved() is true.
func (r RelocatableValue) Address() int64 {
	addr := r.Offset
	for _, sp := range r.Spaces {
		addr += sp.Value()
	}

	return addr
}

// LocationCounter is a per-section cursor recording the next emission
// offset (spec, glossary: "Location counter"). Its offset only ever
// advances, except via ORG back to a previously-emitted address in the same
// counter (spec §3, invariant 3).
type LocationCounter struct {
	Name       string
	offset     int64
	maxOffset  int64 // highest offset ever reached, for ORG underflow checks
	spaceID    int
}

// NewLocationCounter constructs a location counter starting at offset 0.
func NewLocationCounter(name string) *LocationCounter {
	return &LocationCounter{Name: name}
}

// Offset returns the current offset.
func (l *LocationCounter) Offset() int64 {
	return l.offset
}

// Advance moves the location counter forward by n bytes, aligned first to
// the given alignment (0 or 1 means no alignment). Returns the (aligned)
// offset at which the emission begins.
func (l *LocationCounter) Advance(n int64, alignment int64) int64 {
	if alignment > 1 {
		rem := l.offset % alignment
		if rem != 0 {
			l.offset += alignment - rem
		}
	}

	start := l.offset
	l.offset += n

	if l.offset > l.maxOffset {
		l.maxOffset = l.offset
	}

	return start
}

// Org implements ORG's location-counter reset (spec §4.4.2, "ORG"). It
// fails (returns false) if target underflows below the smallest previously
// emitted address is violated - concretely here, we only forbid negative
// offsets; the "same location counter" and "previously emitted address"
// checks are enforced by the caller (instr/asmdir), which alone knows which
// counter produced `target`.
func (l *LocationCounter) Org(target int64) bool {
	if target < 0 {
		return false
	}

	l.offset = target

	if l.offset > l.maxOffset {
		l.maxOffset = l.offset
	}

	return true
}

// NewSpace allocates a new, as-yet-unresolved space within this location
// counter's numbering scheme.
func (l *LocationCounter) NewSpace() *Space {
	l.spaceID++
	return &Space{id: l.spaceID}
}

// Section owns one or more location counters (spec §3). A section is either
// named or private (unnamed); CSECT/DSECT/RSECT/COM switch between them.
type Section struct {
	Name    string // empty for a private section
	Kind    SectionKind
	loctrs  map[string]*LocationCounter
	current string
}

// NewSection constructs a section with a single default location counter.
func NewSection(name string, kind SectionKind) *Section {
	s := &Section{Name: name, Kind: kind, loctrs: make(map[string]*LocationCounter)}
	s.loctrs[""] = NewLocationCounter("")
	s.current = ""

	return s
}

// Loctr returns (creating if necessary) the named location counter; an
// empty name denotes the section's default counter (spec §4.4.2, "LOCTR").
func (s *Section) Loctr(name string) *LocationCounter {
	if lc, ok := s.loctrs[name]; ok {
		return lc
	}

	lc := NewLocationCounter(name)
	s.loctrs[name] = lc

	return lc
}

// SwitchLoctr changes which location counter new emissions target.
func (s *Section) SwitchLoctr(name string) {
	s.current = name
}

// CurrentLoctr returns the currently active location counter.
func (s *Section) CurrentLoctr() *LocationCounter {
	return s.Loctr(s.current)
}
