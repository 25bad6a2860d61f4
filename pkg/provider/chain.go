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
package provider

// Chain selects, at each step, the highest-priority non-exhausted provider
// among macro-replay, copy, and open-code (spec §4.2: "The provider chosen
// for the next step is the highest-priority non-exhausted one"). A nil
// MacroReplay or Copy is treated as exhausted, so the chain degrades
// gracefully to plain open-code outside of macro/copy processing.
type Chain struct {
	Macro    *MacroReplay
	Copy     *Copy
	OpenCode *OpenCode
}

// Next returns the next line from the highest-priority provider that still
// has one, and which provider produced it. When every provider above
// open-code is exhausted, its frame is considered popped by the caller
// (context.Scope/CopyStack bookkeeping lives one layer up, in
// pkg/engine) and open-code resumes.
func (c *Chain) Next() (line string, source ProcessorSource, ok bool) {
	if c.Macro != nil && !c.Macro.Exhausted() {
		if l, ok := c.Macro.Next(); ok {
			return l, SourceMacro, true
		}
	}

	if c.Copy != nil && !c.Copy.Exhausted() {
		if l, ok := c.Copy.Next(); ok {
			return l, SourceCopy, true
		}
	}

	if c.OpenCode != nil {
		if l, ok := c.OpenCode.Next(); ok {
			return l, SourceOpenCode, true
		}
	}

	return "", SourceOpenCode, false
}

// ProcessorSource identifies which provider produced a given line, so the
// caller can charge diagnostics/hit counts to the right file (spec §4.3,
// "Copy" processor: "diagnostics ... are charged to the copy file rather
// than the including file").
type ProcessorSource uint8

// Provider sources, in priority order.
const (
	SourceMacro ProcessorSource = iota
	SourceCopy
	SourceOpenCode
)
