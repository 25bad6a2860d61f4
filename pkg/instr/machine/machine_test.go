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
package machine_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/dependency"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/machine"
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/stretchr/testify/assert"
)

func newHandler() (*machine.Handler, *context.Context) {
	c := context.New("file:///prog.hlasm")
	diag := diagnostic.NewBag("file:///prog.hlasm")
	solver := dependency.NewSolver()

	return &machine.Handler{Ctx: c, Solver: solver, Diag: diag, FileURI: "file:///prog.hlasm"}, c
}

func TestProcessAdvancesLoctrByEncodedLength(t *testing.T) {
	h, c := newHandler()

	stmt := statement.Statement{
		Instruction: "MVC",
		OpcodeRef:   opcode.Descriptor{Kind: opcode.Machine, Detail: opcode.MachineDetail{Length: 6}},
	}

	h.Process(stmt)
	assert.Equal(t, int64(6), c.CurrentSection().CurrentLoctr().Offset())
}

func TestProcessDefinesLabelWithTypeI(t *testing.T) {
	h, c := newHandler()

	stmt := statement.Statement{
		Label:       "HERE",
		Instruction: "LR",
		OpcodeRef:   opcode.Descriptor{Kind: opcode.Machine, Detail: opcode.MachineDetail{Length: 2}},
	}

	h.Process(stmt)

	sym, ok := c.Ord.Lookup(c.Ids.Intern("HERE"))
	assert.True(t, ok)
	assert.Equal(t, byte('I'), sym.Attrs.Type)
	assert.Equal(t, 2, sym.Attrs.Length)
}

func TestProcessFlagsOutOfRangeDisplacement(t *testing.T) {
	h, _ := newHandler()

	stmt := statement.Statement{
		Instruction: "L",
		OpcodeRef:   opcode.Descriptor{Kind: opcode.Machine, Detail: opcode.MachineDetail{Length: 4}},
		Operands:    []operand.Operand{operand.FromExpr(operand.Lit(5000))},
	}

	h.Process(stmt)
	assert.NotEmpty(t, h.Diag.Diagnostics())
}

func TestProcessLeavesUnresolvedOperandUnflagged(t *testing.T) {
	h, c := newHandler()
	sym := c.Ids.Intern("LATER")

	stmt := statement.Statement{
		Instruction: "L",
		OpcodeRef:   opcode.Descriptor{Kind: opcode.Machine, Detail: opcode.MachineDetail{Length: 4}},
		Operands:    []operand.Operand{operand.FromExpr(operand.Sym(sym))},
	}

	h.Process(stmt)
	assert.Empty(t, h.Diag.Diagnostics())
}
