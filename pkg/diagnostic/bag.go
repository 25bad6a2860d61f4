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
package diagnostic

// Bag accumulates diagnostics and fades produced during a single analysis
// pass over one file, and applies the publish-time suppression rule from
// spec §7: "When the total count of unsuppressed diagnostics on a file
// exceeds diagnosticsSuppressLimit, the core replaces the published list
// with one SUP diagnostic". Suppression is purely an output filter - the
// stored diagnostics are untouched.
type Bag struct {
	fileURI     string
	diagnostics []Diagnostic
	fades       []Fade
}

// NewBag constructs an empty diagnostic bag for the given file.
func NewBag(fileURI string) *Bag {
	return &Bag{fileURI: fileURI}
}

// Add records a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// AddFade records a fade message.
func (b *Bag) AddFade(f Fade) {
	b.fades = append(b.fades, f)
}

// Diagnostics returns every diagnostic recorded so far, unfiltered.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diagnostics
}

// Fades returns every fade message recorded so far.
func (b *Bag) Fades() []Fade {
	return b.fades
}

// Publish returns the diagnostics that should actually be sent to the
// client, applying the suppression limit. A limit of 0 or less means "no
// limit".
func (b *Bag) Publish(suppressLimit int) []Diagnostic {
	if suppressLimit <= 0 || len(b.diagnostics) <= suppressLimit {
		return b.diagnostics
	}

	return []Diagnostic{
		New(CodeSuppressed, Information, b.fileURI, b.diagnostics[0].Span,
			"too many diagnostics; publication suppressed for this file"),
	}
}
