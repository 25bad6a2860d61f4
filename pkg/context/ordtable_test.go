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
package context_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/stretchr/testify/assert"
)

func TestOrdTableRejectsKindMismatch(t *testing.T) {
	pool := id.NewPool()
	tab := context.NewOrdTable()
	name := pool.Intern("LABEL1")

	_, ok := tab.Declare(name, context.OrdLabel)
	assert.True(t, ok)

	_, ok = tab.Declare(name, context.OrdEqu)
	assert.False(t, ok, "redeclaring a label as an EQU symbol must be rejected (E031)")

	sym, ok := tab.Lookup(name)
	assert.True(t, ok)
	assert.Equal(t, context.OrdLabel, sym.Kind, "the original kind must survive a rejected redeclaration")
}

func TestOrdTableAllowsSameKindRedeclaration(t *testing.T) {
	pool := id.NewPool()
	tab := context.NewOrdTable()
	name := pool.Intern("LOOP")

	_, ok := tab.Declare(name, context.OrdLabel)
	assert.True(t, ok)

	_, ok = tab.Declare(name, context.OrdLabel)
	assert.True(t, ok, "re-declaring the same kind, e.g. across CA branches, is permitted")
}

func TestSymbolValueResolved(t *testing.T) {
	assert.False(t, context.UndefinedValue().Resolved())
	assert.True(t, context.AbsoluteValue(42).Resolved())
}
