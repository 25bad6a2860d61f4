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

// Package termview renders analysis state to a terminal for the "debug" CLI
// subcommand: diagnostics tables and processor/copy-stack traces, built on
// pkg/util/termio the way pkg/cmd/debug renders schema statistics in the
// teacher.
package termview

import (
	"fmt"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/termio"
)

var severityColour = map[diagnostic.Severity]uint{
	diagnostic.Error:       1, // red
	diagnostic.Warning:     3, // yellow
	diagnostic.Information: 4, // blue
	diagnostic.Hint:        6, // cyan
}

var severityName = map[diagnostic.Severity]string{
	diagnostic.Error:       "error",
	diagnostic.Warning:     "warning",
	diagnostic.Information: "info",
	diagnostic.Hint:        "hint",
}

// PrintDiagnostics renders one row per diagnostic: severity, code,
// span, and message, sorted by nothing in particular beyond the order the
// bag accumulated them (the analysis pass, not this view, is responsible
// for ordering).
func PrintDiagnostics(diags []diagnostic.Diagnostic) {
	n := uint(len(diags))
	tbl := termio.NewFormattedTable(4, n+1)
	tbl.SetRow(0, termio.NewText("Severity"), termio.NewText("Code"), termio.NewText("Span"), termio.NewText("Message"))

	for i, d := range diags {
		row := uint(i + 1)
		severity := termio.NewColouredText(severityName[d.Severity], severityColour[d.Severity])
		span := termio.NewText(fmt.Sprintf("%d:%d", d.Span.Start(), d.Span.End()))
		tbl.SetRow(row, severity, termio.NewText(d.Code), span, termio.NewText(d.Message))
	}

	tbl.SetMaxWidths(80)
	tbl.Print(true)
}

// DiagnosticCounts tallies diags by severity, for a one-line summary
// following the table (e.g. "3 errors, 1 warning").
func DiagnosticCounts(diags []diagnostic.Diagnostic) map[diagnostic.Severity]int {
	counts := make(map[diagnostic.Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}

	return counts
}

// PrintSummaryLine prints the one-line tally produced by DiagnosticCounts.
func PrintSummaryLine(diags []diagnostic.Diagnostic) {
	counts := DiagnosticCounts(diags)
	fmt.Printf("%d error(s), %d warning(s), %d info, %d hint(s)\n",
		counts[diagnostic.Error], counts[diagnostic.Warning], counts[diagnostic.Information], counts[diagnostic.Hint])
}
