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

// Package lsp implements the LSP method surface spec §6 lists: initialize,
// initialized, shutdown, exit, textDocument/didOpen|didChange|didClose,
// textDocument/publishDiagnostics, workspace/didChangeConfiguration,
// workspace/didChangeWatchedFiles, telemetry/event. Transport is
// go.lsp.dev/jsonrpc2 framed over the process's stdio, message types come
// from go.lsp.dev/protocol, and request-scoped logging uses go.uber.org/zap
// - all three dropped teacher indirect dependencies, now wired directly.
package lsp

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
	"go.lsp.dev/protocol"
)

// severityTable maps our diagnostic.Severity onto the LSP wire enum; the
// numeric values happen to already agree (spec §6: "severity ∈
// {error,warning,hint,info}", ordered the same way this package's own
// diagnostic.Severity is), but the table is kept explicit rather than
// relying on that coincidence surviving future edits to either enum.
var severityTable = map[diagnostic.Severity]protocol.DiagnosticSeverity{
	diagnostic.Error:       protocol.DiagnosticSeverityError,
	diagnostic.Warning:     protocol.DiagnosticSeverityWarning,
	diagnostic.Information: protocol.DiagnosticSeverityInformation,
	diagnostic.Hint:        protocol.DiagnosticSeverityHint,
}

var tagTable = map[diagnostic.Tag]protocol.DiagnosticTag{
	diagnostic.Unnecessary: protocol.DiagnosticTagUnnecessary,
	diagnostic.Deprecated:  protocol.DiagnosticTagDeprecated,
}

// ToProtocolDiagnostic translates one core Diagnostic into its LSP wire
// form, resolving the byte-offset Span against file to produce a
// line/character Range (spec §6, "Diagnostic record").
func ToProtocolDiagnostic(d diagnostic.Diagnostic, file *source.File) protocol.Diagnostic {
	pd := protocol.Diagnostic{
		Range:    spanToRange(d.Span, file),
		Severity: severityTable[d.Severity],
		Code:     d.Code,
		Source:   "hlasm",
		Message:  d.Message,
	}

	for _, tag := range d.Tags {
		pd.Tags = append(pd.Tags, tagTable[tag])
	}

	for _, ri := range d.RelatedInfo {
		pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   protocol.DocumentURI(ri.FileURI),
				Range: spanToRange(ri.Span, file),
			},
			Message: ri.Message,
		})
	}

	return pd
}

// spanToRange converts a byte-offset Span into an LSP line/character Range.
// Without a backing File (e.g. a workspace-configuration diagnostic not
// tied to an open text document) it degrades to a zero-width range at 0,0.
func spanToRange(span source.Span, file *source.File) protocol.Range {
	if file == nil {
		return protocol.Range{}
	}

	startLine := file.FindFirstEnclosingLine(span)
	startPos := protocol.Position{
		Line:      uint32(startLine.Number() - 1),
		Character: uint32(span.Start() - startLine.Start()),
	}

	endSpan := span
	endLine := file.FindFirstEnclosingLine(source.NewSpan(span.End(), span.End()))
	endPos := protocol.Position{
		Line:      uint32(endLine.Number() - 1),
		Character: uint32(endSpan.End() - endLine.Start()),
	}

	return protocol.Range{Start: startPos, End: endPos}
}

// ToPublishParams builds a textDocument/publishDiagnostics notification
// body for every diagnostic in diags, converting each one against
// file (spec §6, "Published per file; an empty array for a file clears its
// previously published diagnostics").
func ToPublishParams(fileURI string, diags []diagnostic.Diagnostic, file *source.File) protocol.PublishDiagnosticsParams {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, ToProtocolDiagnostic(d, file))
	}

	return protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(fileURI),
		Diagnostics: out,
	}
}
