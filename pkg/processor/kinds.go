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
package processor

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
)

// Ordinary is the default processor (spec §4.3): it dispatches every
// statement to the family handlers in spec §4.4. Dispatch is injected
// rather than imported directly, so this package does not depend on
// pkg/instr/*; pkg/engine supplies the function.
type Ordinary struct {
	Dispatch func(stmt statement.Statement) bool
}

// Kind identifies this processor.
func (o *Ordinary) Kind() context.ProcessorKind { return context.ProcOrdinary }

// GetProcessingStatus always accepts and always dispatches; the ordinary
// processor has no gating of its own.
func (o *Ordinary) GetProcessingStatus(string) Status { return Status{Accept: true, Dispatch: true} }

// ProcessStatement delegates to the injected family-handler dispatch.
func (o *Ordinary) ProcessStatement(stmt statement.Statement) bool {
	if o.Dispatch == nil {
		return false
	}

	return o.Dispatch(stmt)
}

// EndProcessing is a no-op for the root ordinary processor (it is never
// actually popped - Stack.Pop refuses to drop below depth 1).
func (o *Ordinary) EndProcessing() {}

// MacroDefinition accumulates statements between MACRO and matching MEND
// into a freshly-created macro definition (spec §4.3). Nested MACRO/MEND
// pairs are tracked via nestDepth so the correct MEND ends this definition
// rather than a nested one; COPY statements inside the body are not
// tracked.
type MacroDefinition struct {
	Name       string
	Body       []string
	PrototypeOK bool
	nestDepth  int
}

// Kind identifies this processor.
func (m *MacroDefinition) Kind() context.ProcessorKind { return context.ProcMacroDefinition }

// GetProcessingStatus accumulates every statement verbatim; nested
// MACRO/MEND is tracked but never dispatched to the ordinary handlers.
func (m *MacroDefinition) GetProcessingStatus(instruction string) Status {
	switch instruction {
	case "MACRO":
		m.nestDepth++
	case "MEND":
		if m.nestDepth > 0 {
			m.nestDepth--
		}
	}

	return Status{Accept: true, Dispatch: false}
}

// ProcessStatement appends the statement's instruction mnemonic to Body,
// recording that a statement was seen. The raw source text of the body is
// not kept here; the caller captures it from its own line buffer.
func (m *MacroDefinition) ProcessStatement(stmt statement.Statement) bool {
	m.Body = append(m.Body, stmt.Instruction)
	return true
}

// EndProcessing is a no-op. It does not validate the prototype, and no
// code in the repository sets PrototypeOK, so it stays false.
func (m *MacroDefinition) EndProcessing() {}

// AtOuterMend reports whether the next MEND at nestDepth 0 would end this
// definition, as opposed to a nested MACRO's.
func (m *MacroDefinition) AtOuterMend() bool {
	return m.nestDepth == 0
}

// Lookahead is the temporary side-pass processor (spec §4.3): it scans
// forward collecting only attribute-affecting definitions, without ordinary-
// assembly side effects, until it finds its Target, hits END, or runs out
// of source. Only one Lookahead may be active at a time (enforced by the
// caller refusing to push a second one - nested attribute queries during
// lookahead are answered with default attributes instead).
type Lookahead struct {
	Target   string
	Found    bool
	OnAttrDef func(stmt statement.Statement)
}

// Kind identifies this processor.
func (l *Lookahead) Kind() context.ProcessorKind { return context.ProcLookahead }

// GetProcessingStatus accepts every statement but never dispatches to the
// ordinary handlers - lookahead has no side effects on the program state.
func (l *Lookahead) GetProcessingStatus(instruction string) Status {
	return Status{Accept: true, Dispatch: false}
}

// ProcessStatement passes every statement to OnAttrDef, unfiltered, and
// marks Found once the label matches Target.
func (l *Lookahead) ProcessStatement(stmt statement.Statement) bool {
	if l.OnAttrDef != nil {
		l.OnAttrDef(stmt)
	}

	if stmt.Label == l.Target {
		l.Found = true
	}

	return true
}

// EndProcessing is a no-op; the caller pops Lookahead explicitly once
// Found, on END, or on end-of-source (spec §4.3).
func (l *Lookahead) EndProcessing() {}

// Copy is the transient processor running a COPY member's body (spec
// §4.3). It reuses the ordinary family handlers via Dispatch, but its own
// identity lets the caller charge diagnostics to the copy file.
type Copy struct {
	MemberURI string
	Dispatch  func(stmt statement.Statement) bool
}

// Kind identifies this processor.
func (c *Copy) Kind() context.ProcessorKind { return context.ProcCopy }

// GetProcessingStatus always accepts and dispatches - COPY reuses the
// ordinary instruction handlers (spec §4.3: "it reuses the ordinary
// instruction handlers").
func (c *Copy) GetProcessingStatus(string) Status { return Status{Accept: true, Dispatch: true} }

// ProcessStatement delegates to the injected dispatch, same as Ordinary.
func (c *Copy) ProcessStatement(stmt statement.Statement) bool {
	if c.Dispatch == nil {
		return false
	}

	return c.Dispatch(stmt)
}

// EndProcessing is a no-op; the caller pops the copy-stack frame
// separately (context.CopyStack.Pop) when this processor ends.
func (c *Copy) EndProcessing() {}
