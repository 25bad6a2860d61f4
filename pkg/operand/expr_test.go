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

	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/stretchr/testify/assert"
)

func TestConstantFolding(t *testing.T) {
	// (2+3)*4 - 1 = 19
	expr := operand.Binary(operand.BinarySub,
		operand.Binary(operand.BinaryMul,
			operand.Binary(operand.BinaryAdd, operand.Lit(2), operand.Lit(3)),
			operand.Lit(4)),
		operand.Lit(1))

	assert.True(t, expr.IsConstant())
	assert.Equal(t, int64(19), expr.ConstantValue())
}

func TestSymbolReferenceIsNotConstant(t *testing.T) {
	pool := id.NewPool()
	expr := operand.Binary(operand.BinaryAdd, operand.Sym(pool.Intern("FIELD")), operand.Lit(1))

	assert.False(t, expr.IsConstant())
}

func TestUnaryMinus(t *testing.T) {
	expr := operand.Unary(operand.UnaryMinus, operand.Lit(5))
	assert.Equal(t, int64(-5), expr.ConstantValue())
}

func TestDivisionByZeroDoesNotPanic(t *testing.T) {
	expr := operand.Binary(operand.BinaryDiv, operand.Lit(1), operand.Lit(0))
	assert.NotPanics(t, func() { expr.ConstantValue() })
}
