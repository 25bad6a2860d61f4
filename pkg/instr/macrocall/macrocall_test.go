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
package macrocall_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/dependency"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/macrocall"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/stretchr/testify/assert"
)

func newHandler() (*macrocall.Handler, *context.Context) {
	c := context.New("file:///prog.hlasm")
	diag := diagnostic.NewBag("file:///prog.hlasm")
	solver := dependency.NewSolver()

	return &macrocall.Handler{Ctx: c, Solver: solver, Diag: diag, FileURI: "file:///prog.hlasm"}, c
}

func TestProcessBindsPositionalParams(t *testing.T) {
	h, c := newHandler()
	proto := macrocall.Proto{Name: "MYMAC", Positional: []string{"&A", "&B"}}

	ok := h.Process(statement.Statement{Instruction: "MYMAC", Operands: []operand.Operand{
		{Kind: operand.KindParamRef, ParamRaw: "1"},
		{Kind: operand.KindParamRef, ParamRaw: "2"},
	}}, proto)
	assert.True(t, ok)

	sym, found := c.Scope().Lookup(c.Ids.Intern("&A"))
	assert.True(t, found)
	assert.Equal(t, context.VarMacroParam, sym.Kind)
	assert.Equal(t, "1", sym.Param.Bound.String())
}

func TestProcessBindsKeywordParam(t *testing.T) {
	h, c := newHandler()
	proto := macrocall.Proto{
		Name:     "MYMAC",
		Keywords: map[string]context.ParamData{"LEN": context.Leaf("0")},
	}

	h.Process(statement.Statement{Instruction: "MYMAC", Operands: []operand.Operand{
		{Kind: operand.KindParamRef, ParamRaw: "LEN=80"},
	}}, proto)

	sym, found := c.Scope().Lookup(c.Ids.Intern("LEN"))
	assert.True(t, found)
	assert.Equal(t, "80", sym.Param.Bound.String())
}

func TestProcessFlagsUnknownKeywordAndPassesPositionally(t *testing.T) {
	h, _ := newHandler()
	proto := macrocall.Proto{Name: "MYMAC", Positional: []string{"&A"}}

	h.Process(statement.Statement{Instruction: "MYMAC", Operands: []operand.Operand{
		{Kind: operand.KindParamRef, ParamRaw: "ODD=1"},
	}}, proto)

	diags := h.Diag.Diagnostics()
	assert.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.CodeUnknownKeyword, diags[0].Code)
}

func TestProcessFlagsDuplicateKeyword(t *testing.T) {
	h, _ := newHandler()
	proto := macrocall.Proto{Name: "MYMAC", Keywords: map[string]context.ParamData{"LEN": context.Leaf("0")}}

	h.Process(statement.Statement{Instruction: "MYMAC", Operands: []operand.Operand{
		{Kind: operand.KindParamRef, ParamRaw: "LEN=1"},
		{Kind: operand.KindParamRef, ParamRaw: "LEN=2"},
	}}, proto)

	diags := h.Diag.Diagnostics()
	assert.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.CodeDuplicateKeyword, diags[len(diags)-1].Code)
}

func TestProcessRejectsCallPastSysndxLimit(t *testing.T) {
	h, _ := newHandler()
	h.SysndxLimit = 1
	proto := macrocall.Proto{Name: "MYMAC"}

	assert.True(t, h.Process(statement.Statement{Instruction: "MYMAC"}, proto))
	assert.False(t, h.Process(statement.Statement{Instruction: "MYMAC"}, proto))

	diags := h.Diag.Diagnostics()
	assert.Equal(t, diagnostic.CodeSysndxLimit, diags[len(diags)-1].Code)
}

func TestProcessBuildsSyslistFromPositionalArgs(t *testing.T) {
	h, c := newHandler()
	proto := macrocall.Proto{Name: "MYMAC"}

	h.Process(statement.Statement{Instruction: "MYMAC", Operands: []operand.Operand{
		{Kind: operand.KindParamRef, ParamRaw: "X"},
		{Kind: operand.KindParamRef, ParamRaw: "Y"},
	}}, proto)

	sym, found := c.Scope().Lookup(c.Ids.Intern("SYSLIST"))
	assert.True(t, found)
	assert.Equal(t, 2, sym.Param.Bound.Count())
}
