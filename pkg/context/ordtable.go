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
package context

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
)

// OrdTable is the single, assembly-wide table of ordinary symbols (spec §3:
// ordinary symbols "are not scoped to macros - there is exactly one
// namespace for the whole assembly"). It enforces invariant 2: a name may
// be declared as at most one OrdSymKind.
type OrdTable struct {
	entries map[id.Id]*OrdSym
}

// NewOrdTable constructs an empty ordinary-symbol table.
func NewOrdTable() *OrdTable {
	return &OrdTable{entries: make(map[id.Id]*OrdSym)}
}

// Lookup resolves an ordinary symbol by name.
func (t *OrdTable) Lookup(name id.Id) (*OrdSym, bool) {
	s, ok := t.entries[name]
	return s, ok
}

// Declare installs a new ordinary symbol of the given kind. It returns false
// without modifying the table if name is already declared with a different
// kind (caller raises E031, spec §3 invariant 2); redeclaring with the same
// kind - e.g. a label re-used across conditional assembly branches that
// never simultaneously execute - overwrites the previous entry.
func (t *OrdTable) Declare(name id.Id, kind OrdSymKind) (*OrdSym, bool) {
	if existing, ok := t.entries[name]; ok && existing.Kind != kind {
		return existing, false
	}

	sym := &OrdSym{Kind: kind, Value: UndefinedValue()}
	t.entries[name] = sym

	return sym, true
}

// Names returns every declared ordinary-symbol name, for diagnostics and
// completion support.
func (t *OrdTable) Names() []id.Id {
	out := make([]id.Id, 0, len(t.entries))
	for name := range t.entries {
		out = append(out, name)
	}

	return out
}
