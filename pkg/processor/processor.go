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

// Package processor implements the processor stack (spec §4.3): exactly one
// processor is active at a time, chosen from Ordinary/MacroDefinition/
// Lookahead/Copy, each exposing the same three hooks
// (GetProcessingStatus/ProcessStatement/EndProcessing). Transitions are
// driven by the active instruction (MACRO/MEND/MEXIT/COPY/attribute
// reference).
package processor

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
)

// Status is returned by GetProcessingStatus: whether the processor accepts
// this statement at all, and if so whether it should still be dispatched to
// the ordinary instruction handlers afterwards.
type Status struct {
	Accept  bool
	Dispatch bool
}

// Processor is the common interface every processor-stack entry
// implements (spec §4.3: "Each processor exposes three hooks").
type Processor interface {
	Kind() context.ProcessorKind
	GetProcessingStatus(instruction string) Status
	ProcessStatement(stmt statement.Statement) bool
	EndProcessing()
}

// Stack drives the processor-stack transitions and dispatches each
// incoming statement to whichever processor is currently on top.
type Stack struct {
	entries []Processor
}

// NewStack constructs a processor stack starting with the given ordinary
// processor as its sole, bottom entry.
func NewStack(ordinary Processor) *Stack {
	return &Stack{entries: []Processor{ordinary}}
}

// Push enters a new processor state (spec §4.3: "MACRO pushes
// macro-definition; ... COPY pushes copy; attribute reference can push
// lookahead").
func (s *Stack) Push(p Processor) {
	s.entries = append(s.entries, p)
}

// Pop leaves the current processor state, calling its EndProcessing hook
// first (spec §4.3: "MEND / MEXIT pops it").
func (s *Stack) Pop() {
	if len(s.entries) <= 1 {
		return
	}

	top := s.entries[len(s.entries)-1]
	top.EndProcessing()
	s.entries = s.entries[:len(s.entries)-1]
}

// Top returns the currently active processor.
func (s *Stack) Top() Processor {
	return s.entries[len(s.entries)-1]
}

// Depth reports the current processor-stack depth, matching
// context.ProcessingStack.Depth for invariant 4 (spec §3: "copy-stack,
// scope-stack and source-stack depths shrink monotonically").
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Dispatch routes one statement through the current processor: first its
// GetProcessingStatus gate, then (if accepted) ProcessStatement. consumed
// is ProcessStatement's result; runOrdinary is the gate's Status.Dispatch,
// or true when the gate does not accept the statement.
func (s *Stack) Dispatch(instruction string, stmt statement.Statement) (consumed bool, runOrdinary bool) {
	top := s.Top()

	status := top.GetProcessingStatus(instruction)
	if !status.Accept {
		return false, true
	}

	handled := top.ProcessStatement(stmt)

	return handled, status.Dispatch
}
