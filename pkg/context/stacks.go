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
	"github.com/open-mainframe/hlasm-language-server/pkg/util/collection/stack"
)

// SourceFrame is one entry of the source stack: open-code's file at the
// bottom, with nested AINSERT buffers pushed above it (spec §3, "Source
// stack"). An AINSERT frame has no real file URI - it owns a synthesized
// line queue instead, consumed front-to-back (or back-to-front for
// AINSERT...FRONT, which the owner of the frame handles by insertion order).
type SourceFrame struct {
	FileURI   string
	IsAinsert bool
	Lines     []string
	Line      int // next line to hand out, 0-based
}

// SourceStack is the chain of files/buffers currently being processed
// (spec §3). It is built on the teacher's generic Stack[T]
// (pkg/util/collection/stack), used here for exactly the LIFO file-nesting
// discipline the teacher's provider/processor stacks already rely on.
type SourceStack struct {
	frames stack.Stack[*SourceFrame]
}

// NewSourceStack constructs a source stack with the open-code file as its
// sole, bottom frame.
func NewSourceStack(openCodeURI string) *SourceStack {
	s := &SourceStack{}
	s.frames.Push(&SourceFrame{FileURI: openCodeURI})

	return s
}

// PushAinsert inserts a synthesized source buffer above the current top
// frame (spec §4.4.2, "AINSERT").
func (s *SourceStack) PushAinsert(lines []string) {
	s.frames.Push(&SourceFrame{IsAinsert: true, Lines: lines})
}

// AppendAinsert implements `AINSERT 'text',BACK`: the line is appended to
// the virtual AINSERT buffer consumed before the main open-code continues,
// creating that buffer's frame on first use (spec §4.4.2).
func (s *SourceStack) AppendAinsert(line string) {
	if top := s.Top(); top != nil && top.IsAinsert {
		top.Lines = append(top.Lines, line)
		return
	}

	s.PushAinsert([]string{line})
}

// PrependAinsert implements `AINSERT 'text',FRONT`: the line is prepended
// to the virtual AINSERT buffer, so it is consumed before any line already
// queued there (spec §4.4.2).
func (s *SourceStack) PrependAinsert(line string) {
	if top := s.Top(); top != nil && top.IsAinsert {
		top.Lines = append([]string{line}, top.Lines...)
		return
	}

	s.PushAinsert([]string{line})
}

// Top returns the currently active source frame.
func (s *SourceStack) Top() *SourceFrame {
	if s.frames.IsEmpty() {
		return nil
	}

	return s.frames.Peek(0)
}

// Pop discards the top frame once it is exhausted (an AINSERT buffer with
// no lines left), falling back through to the frame beneath it.
func (s *SourceStack) Pop() {
	if !s.frames.IsEmpty() {
		s.frames.Pop()
	}
}

// Depth reports the current nesting depth, open-code counting as depth 1.
func (s *SourceStack) Depth() int {
	return int(s.frames.Len())
}

// Frames returns every frame from the top of the stack down to open-code,
// for diagnostic display (e.g. the "debug" CLI subcommand's stack-trace
// view).
func (s *SourceStack) Frames() []*SourceFrame {
	out := make([]*SourceFrame, s.frames.Len())
	for i := range out {
		out[i] = s.frames.Peek(uint(i))
	}

	return out
}

// CopyFrame is one entry of the copy stack: an active COPY invocation
// (spec §3, "Copy stack"; spec §4.4.2, "COPY"). Reentrant marks a frame
// that re-enters a copy member already elsewhere on the stack by way of
// macro expansion rather than direct recursion - still forbidden, but
// diagnosed distinctly from straightforward self-recursion in the pack's
// copy-cycle test fixtures.
type CopyFrame struct {
	Member    id.Id
	StmtIndex int
	Reentrant bool
}

// CopyStack is the chain of active COPY invocations within the current
// source (spec §3).
type CopyStack struct {
	frames stack.Stack[*CopyFrame]
}

// NewCopyStack constructs an empty copy stack.
func NewCopyStack() *CopyStack {
	return &CopyStack{}
}

// Contains reports whether member is already active anywhere on the copy
// stack, which is exactly the E062 recursive-COPY condition (spec §4.4.2).
func (c *CopyStack) Contains(member id.Id) bool {
	for i := uint(0); i < c.frames.Len(); i++ {
		if c.frames.Peek(i).Member.Equals(member) {
			return true
		}
	}

	return false
}

// Push enters a new copy member. Callers must check Contains first to
// diagnose recursive COPY before pushing.
func (c *CopyStack) Push(member id.Id) {
	c.frames.Push(&CopyFrame{Member: member})
}

// Pop leaves the innermost active copy member.
func (c *CopyStack) Pop() {
	if !c.frames.IsEmpty() {
		c.frames.Pop()
	}
}

// Top returns the innermost active copy frame, or nil if the copy stack is
// empty.
func (c *CopyStack) Top() *CopyFrame {
	if c.frames.IsEmpty() {
		return nil
	}

	return c.frames.Peek(0)
}

// Depth reports how many COPY members are currently nested.
func (c *CopyStack) Depth() int {
	return int(c.frames.Len())
}

// Frames returns every frame from the innermost COPY member down to the
// outermost, for diagnostic display.
func (c *CopyStack) Frames() []*CopyFrame {
	out := make([]*CopyFrame, c.frames.Len())
	for i := range out {
		out[i] = c.frames.Peek(uint(i))
	}

	return out
}

// ProcessorKind identifies which of the four processor-stack entries is
// active (spec §3, "Processing stack"; spec §4.3, "Processor stack").
type ProcessorKind uint8

// Processor kinds, in the priority order the statement-provider pipeline
// consults them (spec §4.2-4.3).
const (
	ProcOrdinary ProcessorKind = iota
	ProcMacroDefinition
	ProcLookahead
	ProcCopy
)

// String names a processor kind for diagnostic display.
func (k ProcessorKind) String() string {
	switch k {
	case ProcOrdinary:
		return "ordinary"
	case ProcMacroDefinition:
		return "macro-definition"
	case ProcLookahead:
		return "lookahead"
	case ProcCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// ProcessingEntry records which processor kind is active at a given
// source/copy frame depth (spec §3, "Processing stack").
type ProcessingEntry struct {
	Kind        ProcessorKind
	SourceDepth int
	CopyDepth   int
}

// ProcessingStack is the stack of active processor-kind entries (spec §3).
type ProcessingStack struct {
	frames stack.Stack[ProcessingEntry]
}

// NewProcessingStack constructs a processing stack starting in the
// ordinary (open-code) processor state.
func NewProcessingStack() *ProcessingStack {
	p := &ProcessingStack{}
	p.frames.Push(ProcessingEntry{Kind: ProcOrdinary})

	return p
}

// Push enters a new processor state, e.g. on encountering a macro
// definition header or a lookahead request.
func (p *ProcessingStack) Push(e ProcessingEntry) {
	p.frames.Push(e)
}

// Pop leaves the current processor state, returning to the one beneath it.
func (p *ProcessingStack) Pop() {
	if !p.frames.IsEmpty() {
		p.frames.Pop()
	}
}

// Top returns the currently active processor-stack entry.
func (p *ProcessingStack) Top() ProcessingEntry {
	if p.frames.IsEmpty() {
		return ProcessingEntry{Kind: ProcOrdinary}
	}

	return p.frames.Peek(0)
}

// Depth reports the current processing-stack depth.
func (p *ProcessingStack) Depth() int {
	return int(p.frames.Len())
}

// Frames returns every entry from the top of the stack down to the base
// ordinary-processor entry, for diagnostic display.
func (p *ProcessingStack) Frames() []ProcessingEntry {
	out := make([]ProcessingEntry, p.frames.Len())
	for i := range out {
		out[i] = p.frames.Peek(uint(i))
	}

	return out
}
