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
package processor_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/processor"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/stretchr/testify/assert"
)

func TestStackNeverDropsBelowOrdinary(t *testing.T) {
	ord := &processor.Ordinary{}
	stack := processor.NewStack(ord)

	stack.Pop()
	assert.Equal(t, 1, stack.Depth())
	assert.Same(t, ord, stack.Top())
}

func TestMacroDefinitionAccumulatesAndTracksNesting(t *testing.T) {
	def := &processor.MacroDefinition{Name: "MYMAC"}
	stack := processor.NewStack(&processor.Ordinary{})
	stack.Push(def)

	def.GetProcessingStatus("MACRO") // nested macro header
	assert.False(t, def.AtOuterMend())

	def.GetProcessingStatus("MEND")
	assert.True(t, def.AtOuterMend())

	consumed, dispatch := stack.Dispatch("MVC", statement.Statement{Instruction: "MVC"})
	assert.True(t, consumed)
	assert.False(t, dispatch, "a macro-definition processor never dispatches to the ordinary handlers")
	assert.Equal(t, []string{"MVC"}, def.Body)
}

func TestLookaheadFindsTarget(t *testing.T) {
	la := &processor.Lookahead{Target: "FIELD"}
	stack := processor.NewStack(&processor.Ordinary{})
	stack.Push(la)

	stack.Dispatch("EQU", statement.Statement{Label: "OTHER", Instruction: "EQU"})
	assert.False(t, la.Found)

	stack.Dispatch("EQU", statement.Statement{Label: "FIELD", Instruction: "EQU"})
	assert.True(t, la.Found)
}

func TestCopyProcessorDispatchesLikeOrdinary(t *testing.T) {
	dispatched := false
	cp := &processor.Copy{MemberURI: "file:///MEMBER", Dispatch: func(statement.Statement) bool {
		dispatched = true
		return true
	}}

	stack := processor.NewStack(&processor.Ordinary{})
	stack.Push(cp)

	consumed, dispatch := stack.Dispatch("MVC", statement.Statement{})
	assert.True(t, consumed)
	assert.True(t, dispatch)
	assert.True(t, dispatched)
	assert.Equal(t, context.ProcCopy, stack.Top().Kind())
}
