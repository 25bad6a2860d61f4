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
package dependency

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
)

// AddSymbol implements spec §4.5's `add_symbol(id, value, attrs)`: declares
// the ordinary symbol in ord (failing with E031 - reported by the caller,
// which holds the diagnostic bag and the statement's range - on a kind
// mismatch), stores its value/attrs on success, and cascades resolution to
// every statement blocked on it. Returns ok=false on redefinition, leaving
// the solver state untouched; otherwise returns whether the resulting
// cascade detected a dependency cycle (E033).
func (s *Solver) AddSymbol(ord *context.OrdTable, name id.Id, kind context.OrdSymKind, value context.SymbolValue, attrs context.SymbolAttrs) (ok bool, cycle bool) {
	sym, declared := ord.Declare(name, kind)
	if !declared {
		return false, false
	}

	sym.Value = value
	sym.Attrs = attrs

	if !value.Resolved() {
		return true, false
	}

	return true, s.ResolveSymbol(name)
}
