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

// Package machine implements the machine-instruction processor (spec
// §4.4.3): for a recognized machine or mnemonic opcode, it reserves
// storage equal to the instruction's encoded size (aligned to halfword),
// defines the label (if any) with type 'I' and length equal to that size,
// and range-checks operands that are already fully resolved, deferring the
// rest to the dependency solver.
package machine

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/dependency"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
)

// halfword is the alignment every machine instruction's encoded bytes are
// reserved at (spec §4.4.3, "aligned to halfword").
const halfword = 2

// Handler dispatches machine/mnemonic-opcode statements.
type Handler struct {
	Ctx     *context.Context
	Solver  *dependency.Solver
	Diag    *diagnostic.Bag
	FileURI string
}

// Process implements spec §4.4.3's three steps for one resolved machine
// statement: reserve storage, define the label, and range-check operands
// that are already resolvable.
func (h *Handler) Process(stmt statement.Statement) {
	detail, ok := stmt.OpcodeRef.Detail.(opcode.MachineDetail)
	if !ok {
		return
	}

	lc := h.Ctx.CurrentSection().CurrentLoctr()
	start := lc.Advance(int64(detail.Length), halfword)

	h.defineLabel(stmt, start)
	h.checkOperands(stmt, detail)
}

// defineLabel implements "define the label (if any) with type 'I' and
// length = instruction size" (spec §4.4.3).
func (h *Handler) defineLabel(stmt statement.Statement, start int64) {
	if stmt.Label == "" {
		return
	}

	name := h.Ctx.Ids.Intern(stmt.Label)
	rv := context.RelocatableValue{Section: h.Ctx.CurrentSection(), Offset: start}
	attrs := context.SymbolAttrs{Type: 'I', Length: int(lengthOf(stmt.OpcodeRef))}

	ok, _ := h.Solver.AddSymbol(h.Ctx.Ord, name, context.OrdLabel, context.RelocValue(rv), attrs)
	if !ok {
		h.Diag.Add(diagnostic.Errorf(diagnostic.CodeRedefinition, h.FileURI, stmt.Range,
			"%s is already defined as a different kind of symbol", stmt.Label))
	}
}

func lengthOf(ref opcode.Descriptor) uint {
	if d, ok := ref.Detail.(opcode.MachineDetail); ok {
		return d.Length
	}

	return 0
}

// checkOperands range-checks every fully-resolved expression operand
// against a displacement field's 12-bit unsigned range; operands that are
// not yet constant are left for the dependency solver to resolve later
// (spec §4.4.3, "Operands whose expressions contain unresolved symbols are
// deferred; fully-resolved operands are range-checked immediately").
func (h *Handler) checkOperands(stmt statement.Statement, detail opcode.MachineDetail) {
	for _, op := range stmt.Operands {
		if op.Kind != operand.KindExpr || !op.Expr.IsConstant() {
			continue
		}

		v := op.Expr.ConstantValue()
		if v < 0 || v > 0xFFF {
			h.Diag.Add(diagnostic.Errorf(diagnostic.CodeBadExpression, h.FileURI, stmt.Range,
				"operand value %d is out of displacement range", v))
		}
	}
}
