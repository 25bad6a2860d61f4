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
package engine_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/engine"
	"github.com/open-mainframe/hlasm-language-server/pkg/macrocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeclaresOrdinarySymbolFromEqu(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	diags := p.Run("FIELD    EQU   5\n")

	assert.Empty(t, diags)

	name := p.Ctx.Ids.Intern("FIELD")
	sym, ok := p.Ctx.Ord.Lookup(name)
	require.True(t, ok)
	assert.True(t, sym.Value.Resolved())
}

func TestRunFlagsRedefinitionOfOrdinarySymbol(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	diags := p.Run("FIELD    EQU   5\nFIELD    CSECT\n")

	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.CodeRedefinition, diags[0].Code)
}

func TestRunFlagsUnrecognizedOpcode(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	diags := p.Run("         BOGUS 1,2\n")

	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.CodeUndefinedOpcode, diags[0].Code)
}

func TestRunSkipsBlankAndCommentLines(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	diags := p.Run("\n* a full-line comment\n   \nFIELD EQU 1\n")

	assert.Empty(t, diags)
}

func TestRunDefinesAndCallsASimpleMacro(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	src := "         MACRO\n" +
		"         GREET &NAME\n" +
		"         MNOTE 'hello'\n" +
		"         MEND\n" +
		"         GREET 1\n"

	diags := p.Run(src)

	// The macro body's own MNOTE always surfaces a diagnostic (severity
	// follows its first operand); this test only cares that the call was
	// recognized and replayed at all, not the note's content.
	require.Len(t, diags, 1)
	assert.Equal(t, "MNOTE", diags[0].Code)

	macroId := p.Ctx.Ids.Intern("GREET")
	_, found := p.Macros.Lookup(macroId, nil, context.ProcOrdinary)
	assert.True(t, found)
}

func TestRunDispatchesMachineInstruction(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	diags := p.Run("HERE     BASR  14,15\n")

	assert.Empty(t, diags)

	name := p.Ctx.Ids.Intern("HERE")
	sym, ok := p.Ctx.Ord.Lookup(name)
	require.True(t, ok)
	assert.Equal(t, byte('I'), sym.Attrs.Type)
}
