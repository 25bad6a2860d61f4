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
package lsp_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/lsp"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"
)

func TestToProtocolDiagnosticMapsSeverityAndCode(t *testing.T) {
	file := source.NewSourceFile("test.asm", []byte("LABEL DS F\nLABEL DS F\n"))
	d := diagnostic.Errorf(diagnostic.CodeRedefinition, "file:///test.asm", source.NewSpan(0, 5), "symbol %q redefined", "LABEL")

	pd := lsp.ToProtocolDiagnostic(d, file)
	assert.Equal(t, protocol.DiagnosticSeverityError, pd.Severity)
	assert.Equal(t, diagnostic.CodeRedefinition, pd.Code)
	assert.Equal(t, uint32(0), pd.Range.Start.Line)
}

func TestToProtocolDiagnosticDegradesWithoutFile(t *testing.T) {
	d := diagnostic.Warnf(diagnostic.CodeConfigPlaceholder, "file:///proc_grps.json", source.NewSpan(3, 8), "unresolved placeholder")

	pd := lsp.ToProtocolDiagnostic(d, nil)
	assert.Equal(t, protocol.Range{}, pd.Range)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, pd.Severity)
}

func TestToProtocolDiagnosticCarriesTagsAndRelatedInfo(t *testing.T) {
	file := source.NewSourceFile("test.asm", []byte("A EQU 1\n"))
	d := diagnostic.New(diagnostic.CodeSuppressed, diagnostic.Hint, "file:///test.asm", source.NewSpan(0, 1), "unreferenced")
	d.Tags = []diagnostic.Tag{diagnostic.Unnecessary}
	d.RelatedInfo = []diagnostic.RelatedInformation{
		{FileURI: "file:///other.asm", Span: source.NewSpan(0, 1), Message: "also here"},
	}

	pd := lsp.ToProtocolDiagnostic(d, file)
	assert.Equal(t, []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}, pd.Tags)
	assert.Len(t, pd.RelatedInformation, 1)
	assert.Equal(t, protocol.DocumentURI("file:///other.asm"), pd.RelatedInformation[0].Location.URI)
}

func TestToPublishParamsCarriesURIAndCount(t *testing.T) {
	file := source.NewSourceFile("test.asm", []byte("A EQU 1\n"))
	diags := []diagnostic.Diagnostic{
		diagnostic.Errorf(diagnostic.CodeUndefinedOpcode, "file:///test.asm", source.NewSpan(0, 1), "undefined opcode"),
	}

	params := lsp.ToPublishParams("file:///test.asm", diags, file)
	assert.Equal(t, protocol.DocumentURI("file:///test.asm"), params.URI)
	assert.Len(t, params.Diagnostics, 1)
}

func TestToPublishParamsEmptyClearsDiagnostics(t *testing.T) {
	params := lsp.ToPublishParams("file:///test.asm", nil, nil)
	assert.Empty(t, params.Diagnostics)
}
