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
	"os"
	"path/filepath"
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/engine"
	"github.com/open-mainframe/hlasm-language-server/pkg/macrocache"
	"github.com/open-mainframe/hlasm-language-server/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInlinesResolvedCopyMember(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MEMBER1.cpy"), []byte("FIELD    EQU   5\n"), 0o644))

	resolver := workspace.NewResolver([]workspace.MemberSource{workspace.NewDirLibrary(dir, []string{"cpy"})})

	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())
	p.Library = resolver

	diags := p.Run("         COPY  MEMBER1\n")

	assert.Empty(t, diags)

	name := p.Ctx.Ids.Intern("FIELD")
	_, ok := p.Ctx.Ord.Lookup(name)
	assert.True(t, ok)
}

func TestRunSkipsCopyLookupWithoutLibrary(t *testing.T) {
	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())

	diags := p.Run("         COPY  MISSING\n")

	require.Empty(t, diags)
}

func TestRunFlagsCopyMemberNotFoundInConfiguredLibrary(t *testing.T) {
	resolver := workspace.NewResolver([]workspace.MemberSource{workspace.NewDirLibrary(t.TempDir(), []string{"cpy"})})

	p := engine.NewPipeline("file:///a.hlasm", macrocache.NewCache())
	p.Library = resolver

	diags := p.Run("         COPY  MISSING\n")

	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostic.CodeMemberNotFound, diags[len(diags)-1].Code)
}
