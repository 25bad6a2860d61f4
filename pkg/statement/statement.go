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

// Package statement implements the resolved statement record (spec §3,
// "Statement record (resolved form)"), the shared currency passed between
// statement providers (pkg/provider), the processor stack (pkg/processor),
// and the instruction-family handlers (pkg/instr/...).
package statement

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
)

// Format classifies which instruction-family handler a statement dispatches
// to (spec §4.4, "Instruction dispatch").
type Format uint8

// Statement formats.
const (
	FormatUnknown Format = iota
	FormatCA
	FormatAssembler
	FormatMachine
	FormatMacroCall
	FormatComment
)

// Literal is a literal-constant reference gathered from an operand, to be
// registered against the current location counter (spec §4.4.3, step 2:
// "Register any literals referenced in operands").
type Literal struct {
	Text  string
	Range source.Span
}

// Statement is the resolved form of one source line (or, for a
// multi-statement model-statement expansion, one re-parsed sub-statement) -
// spec §3, "Statement record (resolved form)".
type Statement struct {
	Label      string
	Instruction string
	Operands   []operand.Operand
	Remarks    string
	OpcodeRef  opcode.Descriptor
	Format     Format
	Literals   []Literal
	Range      source.Span
}

// HasLabel reports whether the label field was non-blank.
func (s Statement) HasLabel() bool {
	return s.Label != ""
}

// New constructs a statement record, inferring Format from opcodeRef.Kind
// when the caller does not already know it from context (e.g. a macro call
// whose opcode resolves to opcode.Macro).
func New(label, instruction string, operands []operand.Operand, remarks string, ref opcode.Descriptor, rng source.Span) Statement {
	return Statement{
		Label:       label,
		Instruction: instruction,
		Operands:    operands,
		Remarks:     remarks,
		OpcodeRef:   ref,
		Format:      formatOf(ref),
		Range:       rng,
	}
}

func formatOf(ref opcode.Descriptor) Format {
	switch ref.Kind {
	case opcode.CA:
		return FormatCA
	case opcode.Assembler:
		return FormatAssembler
	case opcode.Machine, opcode.Mnemonic:
		return FormatMachine
	case opcode.Macro:
		return FormatMacroCall
	default:
		return FormatUnknown
	}
}
