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
package opcode_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
	"github.com/stretchr/testify/assert"
)

func TestBaseTableNeverMutated(t *testing.T) {
	base := opcode.NewBuiltinTable()
	overlay := opcode.NewOverlay(base)

	jId := id.New("J")

	ok := overlay.Synonym(jId, "MACRO")
	assert.True(t, ok)

	// Base table must still resolve J as undefined.
	_, baseHasJ := base.Lookup("J")
	assert.False(t, baseHasJ)

	d, ok := overlay.Lookup(jId, "J")
	assert.True(t, ok)
	assert.Equal(t, opcode.CA, d.Kind)
}

func TestOpsynDeleteIsDistinctFromNeverDefined(t *testing.T) {
	base := opcode.NewBuiltinTable()
	overlay := opcode.NewOverlay(base)

	lrId := id.New("LR")
	overlay.Delete(lrId)

	_, ok := overlay.Lookup(lrId, "LR")
	assert.False(t, ok, "a tombstoned opcode must resolve to undefined")

	// A name that was genuinely never defined also resolves to undefined,
	// but via the base table fallback rather than a tombstone - both
	// observably "undefined" from Lookup's perspective.
	_, ok = overlay.Lookup(id.New("ZZZNOPE"), "ZZZNOPE")
	assert.False(t, ok)
}

func TestFingerprintOnlyRecordsChangedNames(t *testing.T) {
	base := opcode.NewBuiltinTable()
	overlay := opcode.NewOverlay(base)
	overlay.Synonym(id.New("J"), "MACRO")

	fp := overlay.Fingerprint([]string{"J", "LR", "MACRO"})

	_, hasJ := fp["J"]
	_, hasLR := fp["LR"]
	assert.True(t, hasJ)
	assert.False(t, hasLR, "unrelated opcodes must not appear in the fingerprint")
}
