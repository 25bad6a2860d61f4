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
package termview

import (
	"fmt"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/termio"
)

// PrintProcessingStack renders the processor stack top-to-bottom (spec §3,
// "Processing stack"), one row per entry showing which of the four
// processor kinds is active and at what source/copy depth it entered.
func PrintProcessingStack(stack *context.ProcessingStack) {
	frames := stack.Frames()
	tbl := termio.NewFormattedTable(3, uint(len(frames)+1))
	tbl.SetRow(0, termio.NewText("Depth"), termio.NewText("Processor"), termio.NewText("Source/Copy"))

	for i, f := range frames {
		row := uint(i + 1)
		depth := termio.NewText(fmt.Sprintf("%d", len(frames)-i))
		kind := termio.NewText(f.Kind.String())
		nesting := termio.NewText(fmt.Sprintf("%d/%d", f.SourceDepth, f.CopyDepth))
		tbl.SetRow(row, depth, kind, nesting)
	}

	tbl.Print(true)
}

// PrintSourceStack renders the source stack top-to-bottom (spec §3,
// "Source stack"): open-code's file at the bottom, any nested AINSERT
// buffers above it.
func PrintSourceStack(stack *context.SourceStack) {
	frames := stack.Frames()
	tbl := termio.NewFormattedTable(2, uint(len(frames)+1))
	tbl.SetRow(0, termio.NewText("Frame"), termio.NewText("Source"))

	for i, f := range frames {
		row := uint(i + 1)
		label := termio.NewText(fmt.Sprintf("%d", len(frames)-i))

		var source termio.FormattedText
		if f.IsAinsert {
			source = termio.NewText(fmt.Sprintf("<AINSERT %d line(s)>", len(f.Lines)))
		} else {
			source = termio.NewText(f.FileURI)
		}

		tbl.SetRow(row, label, source)
	}

	tbl.Print(true)
}

// PrintCopyStack renders the active COPY invocations innermost-first (spec
// §3, "Copy stack").
func PrintCopyStack(stack *context.CopyStack) {
	frames := stack.Frames()
	tbl := termio.NewFormattedTable(3, uint(len(frames)+1))
	tbl.SetRow(0, termio.NewText("Depth"), termio.NewText("Member"), termio.NewText("Reentrant"))

	for i, f := range frames {
		row := uint(i + 1)
		depth := termio.NewText(fmt.Sprintf("%d", len(frames)-i))
		member := termio.NewText(f.Member.String())
		reentrant := termio.NewText(fmt.Sprintf("%v", f.Reentrant))
		tbl.SetRow(row, depth, member, reentrant)
	}

	tbl.Print(true)
}
