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
package ca_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/ca"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/stretchr/testify/assert"
)

func newHandler() (*ca.Handler, *context.Context) {
	c := context.New("file:///prog.hlasm")
	diag := diagnostic.NewBag("file:///prog.hlasm")

	return &ca.Handler{Ctx: c, Diag: diag, FileURI: "file:///prog.hlasm"}, c
}

func TestSetaAssignsAndReads(t *testing.T) {
	h, c := newHandler()

	h.Dispatch(statement.Statement{Label: "&N", Instruction: "SETA", Operands: []operand.Operand{
		operand.FromExpr(operand.Lit(42)),
	}})

	sym, ok := c.Scope().Lookup(c.Ids.Intern("&N"))
	assert.True(t, ok)
	assert.Equal(t, int64(42), sym.Set.GetA())
}

func TestLclaThenSetaRoundTrip(t *testing.T) {
	h, c := newHandler()
	n := c.Ids.Intern("&N")

	h.Dispatch(statement.Statement{Instruction: "LCLA", Operands: []operand.Operand{operand.FromExpr(operand.Sym(n))}})
	h.Dispatch(statement.Statement{Label: "&N", Instruction: "SETA", Operands: []operand.Operand{operand.FromExpr(operand.Lit(7))}})

	sym, _ := c.Scope().Lookup(n)
	assert.Equal(t, int64(7), sym.Set.GetA())
}

func TestGblaSharesAcrossMacroScopes(t *testing.T) {
	h, c := newHandler()
	g := c.Ids.Intern("&G")

	h.Dispatch(statement.Statement{Instruction: "GBLA", Operands: []operand.Operand{operand.FromExpr(operand.Sym(g))}})
	h.Dispatch(statement.Statement{Label: "&G", Instruction: "SETA", Operands: []operand.Operand{operand.FromExpr(operand.Lit(99))}})

	c.EnterMacro("MYMAC")
	h.Dispatch(statement.Statement{Instruction: "GBLA", Operands: []operand.Operand{operand.FromExpr(operand.Sym(g))}})

	sym, _ := c.Scope().Lookup(g)
	assert.Equal(t, int64(99), sym.Set.GetA())
}

func TestAgoBranchesUnconditionally(t *testing.T) {
	h, _ := newHandler()

	pool := h.Ctx.Ids
	target := pool.Intern("LOOP")

	branch := h.Dispatch(statement.Statement{Instruction: "AGO", Operands: []operand.Operand{
		operand.FromExpr(operand.Sym(target)),
	}})

	assert.True(t, branch.Taken)
	assert.Equal(t, "LOOP", branch.Target)
}

func TestAifBranchesOnlyWhenTrue(t *testing.T) {
	h, _ := newHandler()
	target := h.Ctx.Ids.Intern("SKIP")

	branch := h.Dispatch(statement.Statement{Instruction: "AIF", Operands: []operand.Operand{
		operand.FromExpr(operand.Lit(0)),
		operand.FromExpr(operand.Sym(target)),
	}})
	assert.False(t, branch.Taken)

	branch = h.Dispatch(statement.Statement{Instruction: "AIF", Operands: []operand.Operand{
		operand.FromExpr(operand.Lit(1)),
		operand.FromExpr(operand.Sym(target)),
	}})
	assert.True(t, branch.Taken)
	assert.Equal(t, "SKIP", branch.Target)
}

func TestActrLimitBlocksFurtherBranches(t *testing.T) {
	h, _ := newHandler()
	target := h.Ctx.Ids.Intern("LOOP")

	h.Dispatch(statement.Statement{Instruction: "ACTR", Operands: []operand.Operand{operand.FromExpr(operand.Lit(1))}})

	first := h.Dispatch(statement.Statement{Instruction: "AGO", Operands: []operand.Operand{operand.FromExpr(operand.Sym(target))}})
	assert.True(t, first.Taken)

	second := h.Dispatch(statement.Statement{Instruction: "AGO", Operands: []operand.Operand{operand.FromExpr(operand.Sym(target))}})
	assert.False(t, second.Taken, "the ACTR limit must block the next branch")
}

func TestAreadBindsRawLine(t *testing.T) {
	h, c := newHandler()

	h.Aread("&LINE", "         MVC   0(1),1(1)")

	sym, ok := c.Scope().Lookup(c.Ids.Intern("&LINE"))
	assert.True(t, ok)
	assert.Equal(t, "         MVC   0(1),1(1)", sym.Set.GetC())
}
