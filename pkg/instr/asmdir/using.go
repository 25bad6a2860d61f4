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
package asmdir

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/collection/stack"
)

// BaseAssignment is one active USING entry: register reg is assumed to
// point at base + displacement within the named section.
type BaseAssignment struct {
	Register int
	Base     id.Id
	Offset   int64
}

// UsingSet is the currently active assignment set (spec §4.4.2, "USING /
// DROP / PUSH / POP ... track a base-register assignment stack").
type UsingSet struct {
	assignments map[int]BaseAssignment
}

func newUsingSet() *UsingSet {
	return &UsingSet{assignments: make(map[int]BaseAssignment)}
}

func (u *UsingSet) clone() *UsingSet {
	cp := newUsingSet()
	for k, v := range u.assignments {
		cp.assignments[k] = v
	}

	return cp
}

// UsingStack owns the active assignment set plus the PUSH/POP save stack
// (spec §4.4.2: "PUSH USING and POP USING save/restore the active
// assignment set").
type UsingStack struct {
	active *UsingSet
	saved  stack.Stack[*UsingSet]
}

// NewUsingStack constructs an empty base-register assignment tracker.
func NewUsingStack() *UsingStack {
	return &UsingStack{active: newUsingSet()}
}

// Using implements `USING base,reg[,reg...]`: each reg is assigned to base
// at offset 0 relative to the USING statement's own location.
func (s *UsingStack) Using(base id.Id, offset int64, registers []int) {
	for _, r := range registers {
		s.active.assignments[r] = BaseAssignment{Register: r, Base: base, Offset: offset}
	}
}

// Drop implements `DROP reg[,reg...]`; DROP with no operands drops every
// active assignment.
func (s *UsingStack) Drop(registers []int) {
	if len(registers) == 0 {
		s.active = newUsingSet()
		return
	}

	for _, r := range registers {
		delete(s.active.assignments, r)
	}
}

// Push implements `PUSH USING`: saves a copy of the active assignment set.
func (s *UsingStack) Push() {
	s.saved.Push(s.active.clone())
}

// Pop implements `POP USING`: restores the most recently pushed assignment
// set. A no-op if nothing was pushed.
func (s *UsingStack) Pop() {
	if s.saved.IsEmpty() {
		return
	}

	s.active = s.saved.Pop()
}

// Resolve returns the base assignment for reg, if any register is currently
// USING'd to it - used by the machine-instruction processor to turn a
// symbolic storage reference into a base-displacement pair.
func (s *UsingStack) Resolve(reg int) (BaseAssignment, bool) {
	a, ok := s.active.assignments[reg]
	return a, ok
}

// Active returns how many registers currently have a USING assignment.
func (s *UsingStack) Active() int {
	return len(s.active.assignments)
}
