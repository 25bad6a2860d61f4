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
package asmdir_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/dependency"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/asmdir"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/stretchr/testify/assert"
)

func newHandler() (*asmdir.Handler, *context.Context) {
	c := context.New("file:///prog.hlasm")
	diag := diagnostic.NewBag("file:///prog.hlasm")
	solver := dependency.NewSolver()

	return asmdir.NewHandler(c, solver, diag, "file:///prog.hlasm"), c
}

func TestCsectSwitchesActiveSection(t *testing.T) {
	h, c := newHandler()

	h.Dispatch(statement.Statement{Label: "MYPROG", Instruction: "CSECT"})
	assert.Equal(t, "MYPROG", c.CurrentSection().Name)
	assert.Equal(t, context.CSect, c.CurrentSection().Kind)
}

func TestCsectThenDsectSameNameReportsRedefinition(t *testing.T) {
	h, _ := newHandler()

	h.Dispatch(statement.Statement{Label: "AREA", Instruction: "CSECT"})
	h.Dispatch(statement.Statement{Label: "AREA", Instruction: "DSECT"})

	assert.NotEmpty(t, h.Diag.Diagnostics())
	assert.Equal(t, diagnostic.CodeRedefinition, h.Diag.Diagnostics()[0].Code)
}

func TestLoctrSwitchesWithinSection(t *testing.T) {
	h, c := newHandler()

	h.Dispatch(statement.Statement{Label: "MYPROG", Instruction: "CSECT"})
	h.Dispatch(statement.Statement{Label: "DATA1", Instruction: "LOCTR"})

	assert.Equal(t, "DATA1", c.CurrentSection().CurrentLoctr().Name)
}

func TestEquBindsAbsoluteValue(t *testing.T) {
	h, c := newHandler()

	h.Dispatch(statement.Statement{Label: "FIVE", Instruction: "EQU", Operands: []operand.Operand{
		operand.FromExpr(operand.Lit(5)),
	}})

	sym, ok := c.Ord.Lookup(c.Ids.Intern("FIVE"))
	assert.True(t, ok)
	assert.Equal(t, context.ValAbsolute, sym.Value.Kind)
	assert.Equal(t, int64(5), sym.Value.Absolute)
}

func TestOrgResetsLocationCounter(t *testing.T) {
	h, c := newHandler()

	lc := c.CurrentSection().CurrentLoctr()
	lc.Advance(10, 1)

	h.Dispatch(statement.Statement{Instruction: "ORG", Operands: []operand.Operand{operand.FromExpr(operand.Lit(4))}})
	assert.Equal(t, int64(4), lc.Offset())
}

func TestOrgRejectsNegativeTargetAsDiagnostic(t *testing.T) {
	h, _ := newHandler()

	h.Dispatch(statement.Statement{Instruction: "ORG", Operands: []operand.Operand{operand.FromExpr(operand.Lit(-1))}})
	assert.NotEmpty(t, h.Diag.Diagnostics())
}

func TestOpsynCreatesSynonym(t *testing.T) {
	h, c := newHandler()
	mvc := c.Ids.Intern("MVC")

	h.Dispatch(statement.Statement{Label: "MOVE", Instruction: "OPSYN", Operands: []operand.Operand{
		operand.FromExpr(operand.Sym(mvc)),
	}})

	desc, ok := c.Opcodes.Lookup(c.Ids.Intern("MOVE"), "MOVE")
	assert.True(t, ok)
	_ = desc
}

func TestCopyDetectsRecursion(t *testing.T) {
	h, c := newHandler()
	member := c.Ids.Intern("MEMBER1")

	copyStmt := statement.Statement{Instruction: "COPY", Operands: []operand.Operand{
		operand.FromExpr(operand.Sym(member)),
	}}

	h.Dispatch(copyStmt)
	assert.Empty(t, h.Diag.Diagnostics())
	assert.True(t, c.Copy.Contains(member))

	h.Dispatch(copyStmt)
	diags := h.Diag.Diagnostics()
	assert.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.CodeRecursiveCopy, diags[len(diags)-1].Code)
}

func TestUsingAndDropTrackBaseRegisters(t *testing.T) {
	h, c := newHandler()
	base := c.Ids.Intern("MYPROG")

	h.Dispatch(statement.Statement{Instruction: "USING", Operands: []operand.Operand{
		operand.FromExpr(operand.Sym(base)),
		operand.FromExpr(operand.Lit(12)),
	}})

	a, ok := h.Using.Resolve(12)
	assert.True(t, ok)
	assert.Equal(t, base, a.Base)

	h.Dispatch(statement.Statement{Instruction: "DROP", Operands: []operand.Operand{operand.FromExpr(operand.Lit(12))}})
	_, ok = h.Using.Resolve(12)
	assert.False(t, ok)
}

func TestPushPopRestoresUsingAssignments(t *testing.T) {
	h, c := newHandler()
	base := c.Ids.Intern("MYPROG")

	h.Dispatch(statement.Statement{Instruction: "USING", Operands: []operand.Operand{
		operand.FromExpr(operand.Sym(base)),
		operand.FromExpr(operand.Lit(12)),
	}})
	h.Dispatch(statement.Statement{Instruction: "PUSH"})
	h.Dispatch(statement.Statement{Instruction: "DROP"})
	assert.Equal(t, 0, h.Using.Active())

	h.Dispatch(statement.Statement{Instruction: "POP"})
	assert.Equal(t, 1, h.Using.Active())
}

func TestMnoteSeverityFromLevel(t *testing.T) {
	h, _ := newHandler()

	h.Dispatch(statement.Statement{Instruction: "MNOTE", Operands: []operand.Operand{
		operand.FromExpr(operand.Lit(8)),
		{Kind: operand.KindExpr, ParamRaw: "fatal problem"},
	}})

	diags := h.Diag.Diagnostics()
	assert.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.Error, diags[len(diags)-1].Severity)
}
