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
package termview_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/termview"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func TestDiagnosticCountsTallyBySeverity(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.Errorf(diagnostic.CodeRedefinition, "file:///a.asm", source.NewSpan(0, 1), "boom"),
		diagnostic.Errorf(diagnostic.CodeCycle, "file:///a.asm", source.NewSpan(0, 1), "boom2"),
		diagnostic.Warnf(diagnostic.CodeUnknownKeyword, "file:///a.asm", source.NewSpan(0, 1), "warn"),
	}

	counts := termview.DiagnosticCounts(diags)
	assert.Equal(t, 2, counts[diagnostic.Error])
	assert.Equal(t, 1, counts[diagnostic.Warning])
}

func TestPrintDiagnosticsDoesNotPanicOnEmpty(t *testing.T) {
	assert.NotPanics(t, func() { termview.PrintDiagnostics(nil) })
}

func TestPrintSummaryLineDoesNotPanic(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.Errorf(diagnostic.CodeRedefinition, "file:///a.asm", source.NewSpan(0, 1), "boom"),
	}
	assert.NotPanics(t, func() { termview.PrintSummaryLine(diags) })
}

func TestPrintProcessingStackDoesNotPanic(t *testing.T) {
	stack := context.NewProcessingStack()
	stack.Push(context.ProcessingEntry{Kind: context.ProcMacroDefinition, SourceDepth: 1, CopyDepth: 0})

	assert.NotPanics(t, func() { termview.PrintProcessingStack(stack) })
}

func TestPrintSourceStackDoesNotPanic(t *testing.T) {
	stack := context.NewSourceStack("file:///main.asm")
	stack.PushAinsert([]string{"GEN1", "GEN2"})

	assert.NotPanics(t, func() { termview.PrintSourceStack(stack) })
}

func TestPrintCopyStackDoesNotPanic(t *testing.T) {
	stack := context.NewCopyStack()
	stack.Push(id.New("MYCOPY"))

	assert.NotPanics(t, func() { termview.PrintCopyStack(stack) })
}

func TestProcessorKindStringNames(t *testing.T) {
	assert.Equal(t, "macro-definition", context.ProcMacroDefinition.String())
	assert.Equal(t, "ordinary", context.ProcOrdinary.String())
}
