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

// Package dependency implements the ordinary-assembly dependency solver
// (spec §4.5): postponed statements and spaces are tracked against the
// symbols/spaces they need, and become eligible for (re-)evaluation the
// moment every dependency resolves. Per spec §9 ("Cyclic graphs (dep
// solver)"), the graph is an arena of nodes addressed by index with no
// owning back-references. A cycle is reported only when a resolution
// cascade comes back to a statement whose Resume is still running;
// Postpone does not check new edges, and statements that wait on each
// other's symbols are never resumed and stay counted by Pending.
package dependency

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
)

// DepKind discriminates what a dependency edge points at (spec §4.5,
// "(resolvable, dependency-id) edges").
type DepKind uint8

// Dependency kinds.
const (
	DepSymbol DepKind = iota
	DepSpace
)

// Dep is one edge of a postponed statement's dependency set.
type Dep struct {
	Kind   DepKind
	Symbol id.Id
	Space  int // index into Solver.spaces
}

// Statement is an arena-indexed postponed statement: an opaque payload
// (Resume is invoked once every dependency resolves) plus the dependency
// edges blocking it (spec §4.5, "postponed_statements").
type Statement struct {
	Resume func()
	deps   []Dep
	done   bool
}

// Solver is the incremental dependency solver described in spec §4.5. It
// owns no reference into the live context; statements register their own
// resume callback, which closes over whatever evaluation-context snapshot
// they need (spec §9, "Deferred statements ... do not retain references
// into the live context that may have moved").
type Solver struct {
	statements []*Statement
	// blockedBySymbol/blockedBySpace record, for each blocking key, the set
	// of statement-arena indices waiting on it - backed by bitset.BitSet so
	// membership tests and unions over large statement counts stay O(1)
	// words rather than O(n) map scans, matching how the teacher's sibling
	// examples use bits-and-blooms/bitset for dense index sets.
	blockedBySymbol map[id.Id]*bitset.BitSet
	blockedBySpace  map[int]*bitset.BitSet

	resolvedSymbols map[id.Id]bool
	resolvedSpaces  map[int]bool

	// inProgress marks statement indices currently being walked by a
	// resolution cascade, for cycle detection (spec §4.5, "if the resulting
	// graph ... has a cycle through already-postponed vertices, emits
	// E033").
	inProgress *bitset.BitSet
}

// NewSolver constructs an empty dependency solver.
func NewSolver() *Solver {
	return &Solver{
		blockedBySymbol: make(map[id.Id]*bitset.BitSet),
		blockedBySpace:  make(map[int]*bitset.BitSet),
		resolvedSymbols: make(map[id.Id]bool),
		resolvedSpaces:  make(map[int]bool),
		inProgress:      bitset.New(0),
	}
}

// Postpone registers a new postponed statement with the given dependency
// edges, returning its arena index (spec §4.5, "add_dependency").
func (s *Solver) Postpone(resume func(), deps []Dep) int {
	idx := len(s.statements)
	s.statements = append(s.statements, &Statement{Resume: resume, deps: deps})

	for _, d := range deps {
		s.block(idx, d)
	}

	return idx
}

func (s *Solver) block(stmtIdx int, d Dep) {
	switch d.Kind {
	case DepSymbol:
		bs, ok := s.blockedBySymbol[d.Symbol]
		if !ok {
			bs = bitset.New(0)
			s.blockedBySymbol[d.Symbol] = bs
		}

		bs.Set(uint(stmtIdx))
	case DepSpace:
		bs, ok := s.blockedBySpace[d.Space]
		if !ok {
			bs = bitset.New(0)
			s.blockedBySpace[d.Space] = bs
		}

		bs.Set(uint(stmtIdx))
	}
}

// ResolveSymbol marks a symbol as resolved and resumes every statement
// whose dependency set is now fully satisfied (spec §4.5, "add_symbol ...
// walks postponed_statements whose dependency set contains id and
// re-evaluates them").
func (s *Solver) ResolveSymbol(name id.Id) (cycle bool) {
	s.resolvedSymbols[name] = true
	return s.cascade(s.blockedBySymbol[name])
}

// ResolveSpace marks a space as resolved and resumes blocked statements
// (spec §4.5, "resolve_space").
func (s *Solver) ResolveSpace(space int) (cycle bool) {
	s.resolvedSpaces[space] = true
	return s.cascade(s.blockedBySpace[space])
}

// cascade resumes every statement in candidates whose full dependency set
// is now resolved. Reaching a candidate that is still marked in inProgress
// (its Resume is running further up the call stack) is reported as a
// cycle.
func (s *Solver) cascade(candidates *bitset.BitSet) (cycle bool) {
	if candidates == nil {
		return false
	}

	for i, ok := candidates.NextSet(0); ok; i, ok = candidates.NextSet(i + 1) {
		idx := int(i)
		stmt := s.statements[idx]

		if s.inProgress.Test(i) {
			cycle = true
			continue
		}

		if stmt.done {
			continue
		}

		if !s.ready(stmt) {
			continue
		}

		s.inProgress.Set(i)
		stmt.done = true
		stmt.Resume()
		s.inProgress.Clear(i)
	}

	return cycle
}

func (s *Solver) ready(stmt *Statement) bool {
	for _, d := range stmt.deps {
		switch d.Kind {
		case DepSymbol:
			if !s.resolvedSymbols[d.Symbol] {
				return false
			}
		case DepSpace:
			if !s.resolvedSpaces[d.Space] {
				return false
			}
		}
	}

	return true
}

// Pending reports how many postponed statements have not yet been resumed -
// a non-zero count after the END fixed-point pass indicates statements
// blocked forever, typically by an undefined symbol.
func (s *Solver) Pending() int {
	n := 0

	for _, stmt := range s.statements {
		if !stmt.done {
			n++
		}
	}

	return n
}

// Flush runs the END-time fixed-point pass (spec §4.5, "a fixed-point pass
// is triggered at END"): repeatedly attempts every still-pending statement
// until a full pass resumes nothing further.
func (s *Solver) Flush() {
	for {
		progressed := false

		for _, stmt := range s.statements {
			if stmt.done || !s.ready(stmt) {
				continue
			}

			stmt.done = true
			stmt.Resume()
			progressed = true
		}

		if !progressed {
			return
		}
	}
}
