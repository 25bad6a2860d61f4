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
	"github.com/stretchr/testify/assert"
)

func TestParamDataRoundTrip(t *testing.T) {
	cases := []context.ParamData{
		context.Leaf(""),
		context.Leaf("REG1"),
		context.Sublist([]context.ParamData{context.Leaf("A"), context.Leaf("B")}),
		context.Sublist([]context.ParamData{
			context.Leaf("A"),
			context.Sublist([]context.ParamData{context.Leaf("C"), context.Leaf("D")}),
		}),
	}

	for _, c := range cases {
		encoded := context.ParamDataToString(c)
		decoded := context.StringToParamData(encoded)
		assert.Equal(t, encoded, context.ParamDataToString(decoded))
	}
}

func TestParamDataCountAndLength(t *testing.T) {
	leaf := context.Leaf("HELLO")
	assert.Equal(t, 1, leaf.Count())
	assert.Equal(t, 5, leaf.Length())

	list := context.Sublist([]context.ParamData{context.Leaf("A"), context.Leaf("BB"), context.Leaf("CCC")})
	assert.Equal(t, 3, list.Count())
	assert.Equal(t, len("(A,BB,CCC)"), list.Length())
}

func TestParamDataSubscript(t *testing.T) {
	list := context.Sublist([]context.ParamData{context.Leaf("A"), context.Leaf("B"), context.Leaf("C")})

	assert.Equal(t, "B", list.Sub(2).String())
	assert.Equal(t, "", list.Sub(0).String(), "subscript must be 1-based")
	assert.Equal(t, "", list.Sub(99).String(), "out-of-range subscript degrades to empty")
}
