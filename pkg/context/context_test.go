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
package context_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/stretchr/testify/assert"
)

func TestNewContextStartsAtOpenCodeScope(t *testing.T) {
	c := context.New("file:///prog.hlasm")

	assert.Equal(t, "", c.Scope().MacroName)
	assert.Equal(t, 1, c.Source.Depth())
	assert.Equal(t, context.ProcOrdinary, c.Processing.Top().Kind)
}

func TestContextMacroScopeNesting(t *testing.T) {
	c := context.New("file:///prog.hlasm")

	c.EnterMacro("MYMACRO")
	assert.Equal(t, "MYMACRO", c.Scope().MacroName)

	c.ExitMacro()
	assert.Equal(t, "", c.Scope().MacroName)
}

func TestContextSectionSwitching(t *testing.T) {
	c := context.New("file:///prog.hlasm")

	c.CurrentSection().CurrentLoctr().Advance(4, 0)

	c.SwitchSection("MYCSECT", context.CSect)
	c.CurrentSection().CurrentLoctr().Advance(8, 0)

	assert.Equal(t, int64(4), c.Section("").CurrentLoctr().Offset())
	assert.Equal(t, int64(8), c.Section("MYCSECT").CurrentLoctr().Offset())
}

func TestContextSysndxIncrements(t *testing.T) {
	c := context.New("file:///prog.hlasm")

	assert.Equal(t, 1, c.NextSysndx())
	assert.Equal(t, 2, c.NextSysndx())
}

func TestContextOpcodeOverlayUsable(t *testing.T) {
	c := context.New("file:///prog.hlasm")

	mvc := c.Ids.Intern("MVC")
	_, ok := c.Opcodes.Lookup(mvc, "MVC")
	assert.True(t, ok, "MVC is a built-in machine mnemonic")
}
