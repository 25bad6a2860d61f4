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
package operand_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/stretchr/testify/assert"
)

func TestKeywordOperandBindsValue(t *testing.T) {
	op := operand.Keyed("LENGTH", operand.FromExpr(operand.Lit(4)))

	assert.Equal(t, operand.KindKeyword, op.Kind)
	assert.Equal(t, "LENGTH", op.Keyword)
	assert.Equal(t, int64(4), op.Value.Expr.ConstantValue())
}

func TestSublistOperandPreservesOrder(t *testing.T) {
	sub := operand.FromSublist([]operand.Operand{
		operand.FromExpr(operand.Lit(0)),
		operand.FromExpr(operand.Lit(1)),
	})

	assert.Len(t, sub.Sublist, 2)
	assert.Equal(t, int64(1), sub.Sublist[1].Expr.ConstantValue())
}

func TestOmittedOperand(t *testing.T) {
	assert.Equal(t, operand.KindOmitted, operand.Omitted().Kind)
}
