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
package statement_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func TestNewInfersFormatFromOpcodeKind(t *testing.T) {
	s := statement.New("LOOP", "AIF", nil, "", opcode.Descriptor{Kind: opcode.CA}, source.NewSpan(0, 3))
	assert.Equal(t, statement.FormatCA, s.Format)
	assert.True(t, s.HasLabel())

	s = statement.New("", "MVC", nil, "", opcode.Descriptor{Kind: opcode.Machine}, source.NewSpan(0, 3))
	assert.Equal(t, statement.FormatMachine, s.Format)
	assert.False(t, s.HasLabel())

	s = statement.New("", "UNKNOWNOP", nil, "", opcode.Descriptor{Kind: opcode.Undefined}, source.NewSpan(0, 9))
	assert.Equal(t, statement.FormatUnknown, s.Format)
}
