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
package provider_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/provider"
	"github.com/stretchr/testify/assert"
)

type fixedLines struct {
	lines []string
	pos   int
}

func (f *fixedLines) NextLine() (string, bool) {
	if f.pos >= len(f.lines) {
		return "", false
	}

	l := f.lines[f.pos]
	f.pos++

	return l, true
}

func TestChainPrefersMacroOverCopyOverOpenCode(t *testing.T) {
	idx := 0
	chain := &provider.Chain{
		Macro:    &provider.MacroReplay{Body: []string{"MACRO LINE"}, Index: &idx},
		Copy:     &provider.Copy{Member: []string{"COPY LINE"}},
		OpenCode: &provider.OpenCode{Lines: &fixedLines{lines: []string{"OPEN LINE"}}},
	}

	line, src, ok := chain.Next()
	assert.True(t, ok)
	assert.Equal(t, "MACRO LINE", line)
	assert.Equal(t, provider.SourceMacro, src)
}

func TestChainFallsThroughWhenMacroExhausted(t *testing.T) {
	idx := 1
	chain := &provider.Chain{
		Macro:    &provider.MacroReplay{Body: []string{"ONLY LINE"}, Index: &idx},
		Copy:     &provider.Copy{Member: []string{"COPY LINE"}},
		OpenCode: &provider.OpenCode{Lines: &fixedLines{lines: []string{"OPEN LINE"}}},
	}

	line, src, ok := chain.Next()
	assert.True(t, ok)
	assert.Equal(t, "COPY LINE", line)
	assert.Equal(t, provider.SourceCopy, src)
}

func TestChainDegradesToOpenCodeAlone(t *testing.T) {
	chain := &provider.Chain{OpenCode: &provider.OpenCode{Lines: &fixedLines{lines: []string{"ONLY"}}}}

	line, src, ok := chain.Next()
	assert.True(t, ok)
	assert.Equal(t, "ONLY", line)
	assert.Equal(t, provider.SourceOpenCode, src)

	_, _, ok = chain.Next()
	assert.False(t, ok)
}

func TestOpenCodeAinsertFrontAndBack(t *testing.T) {
	ctxSrc := context.NewSourceStack("file:///open.hlasm")
	oc := &provider.OpenCode{Lines: &fixedLines{}, Sink: ctxSrc}

	oc.Ainsert("SECOND", false)
	oc.Ainsert("FIRST", true)

	assert.Equal(t, []string{"FIRST", "SECOND"}, ctxSrc.Top().Lines)
}
