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

// Package provider implements the statement-provider priority chain (spec
// §4.2): macro-replay, then copy, then open-code, the engine selecting the
// highest-priority non-exhausted provider at each step. The ANTLR-generated
// lexer/parser itself is an external collaborator (spec §1, "Out of
// scope") - this package consumes raw source lines via the Lines interface
// and only owns the provider-selection and AREAD/AINSERT bookkeeping around
// it.
package provider

// Provider yields the next raw source line this provider is responsible
// for, or reports exhaustion.
type Provider interface {
	// Next returns the next line and true, or ("", false) once exhausted.
	Next() (string, bool)
}

// Lines is an injectable source of raw text lines, standing in for the
// real lexer/parser's line stream in tests and in the open-code provider.
type Lines interface {
	NextLine() (string, bool)
}

// MacroReplay is the highest-priority provider (spec §4.2, item 1): while a
// macro is active, it yields statements from the macro's stored body,
// tracked by an index counter the caller owns.
type MacroReplay struct {
	Body  []string
	Index *int // owned by the caller; pkg/engine passes its own counter
}

// Next returns the next stored statement, advancing *Index.
func (m *MacroReplay) Next() (string, bool) {
	if m.Index == nil || *m.Index >= len(m.Body) {
		return "", false
	}

	line := m.Body[*m.Index]
	*m.Index++

	return line, true
}

// Exhausted reports whether the macro body has been fully replayed.
func (m *MacroReplay) Exhausted() bool {
	return m.Index == nil || *m.Index >= len(m.Body)
}

// Copy is the second-priority provider (spec §4.2, item 2): while the
// current source has an active copy frame, it yields the next statement of
// the copy member.
type Copy struct {
	Member []string
	index  int
}

// Next returns the next line of the copy member.
func (c *Copy) Next() (string, bool) {
	if c.index >= len(c.Member) {
		return "", false
	}

	line := c.Member[c.index]
	c.index++

	return line, true
}

// Exhausted reports whether the copy member has been fully consumed.
func (c *Copy) Exhausted() bool {
	return c.index >= len(c.Member)
}

// AreadSink receives the raw line AREAD ingests into a CA variable (spec
// §4.2, item 3: "handles AREAD (ingesting one raw source line into a
// variable)").
type AreadSink func(line string)

// AinsertSource is satisfied by whatever owns the source stack (context.
// SourceStack), so the open-code provider can grow the virtual AINSERT
// buffer without depending on pkg/context directly (spec §4.2, item 3:
// "AINSERT (pushing a new in-memory source onto the source stack)").
type AinsertSource interface {
	AppendAinsert(line string)
	PrependAinsert(line string)
}

// OpenCode is the lowest-priority, always-present provider (spec §4.2, item
// 3). It advances over Lines, and additionally exposes AREAD/AINSERT entry
// points for the assembler-instruction handlers to call into.
type OpenCode struct {
	Lines Lines
	Sink  AinsertSource
}

// Next advances the open-code line stream.
func (o *OpenCode) Next() (string, bool) {
	return o.Lines.NextLine()
}

// Aread ingests the next raw line for an AREAD target, without advancing
// through the normal statement-provider path (spec §4.4.1, "AREAD").
func (o *OpenCode) Aread() (string, bool) {
	return o.Lines.NextLine()
}

// Ainsert grows the virtual AINSERT buffer, front or back (spec §4.4.2,
// "AINSERT 'text',FRONT|BACK").
func (o *OpenCode) Ainsert(line string, front bool) {
	if front {
		o.Sink.PrependAinsert(line)
		return
	}

	o.Sink.AppendAinsert(line)
}
