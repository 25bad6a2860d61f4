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

// Package ca implements the conditional-assembly instruction family (spec
// §4.4.1): SETA/SETB/SETC, LCLA/LCLB/LCLC, GBLA/GBLB/GBLC, ANOP, AIF, AGO,
// ACTR, AREAD, ASPACE, AEJECT, MACRO, MEND, MEXIT, MHELP.
package ca

import (
	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
)

// Handler dispatches CA statements against a Context, recording
// diagnostics on Diag rather than returning errors directly (spec §7:
// "Diagnostics are values").
type Handler struct {
	Ctx     *context.Context
	Diag    *diagnostic.Bag
	FileURI string
}

// Branch is the outcome of AIF/AGO: whether a branch was taken and, if so,
// which sequence symbol to resume at. pkg/engine records a taken Branch to
// validate its target (E047) and fade the statements it skips; no statement
// provider is repositioned, so replay continues with the next statement.
type Branch struct {
	Taken  bool
	Target string
}

// Dispatch routes one CA statement to its handler, returning a Branch for
// AIF/AGO (zero value for every other instruction).
func (h *Handler) Dispatch(stmt statement.Statement) Branch {
	switch stmt.Instruction {
	case "SETA":
		h.setVar(stmt, context.SetA, context.Local)
	case "SETB":
		h.setVar(stmt, context.SetB, context.Local)
	case "SETC":
		h.setVar(stmt, context.SetC, context.Local)
	case "LCLA":
		h.declare(stmt, context.SetA, context.Local)
	case "LCLB":
		h.declare(stmt, context.SetB, context.Local)
	case "LCLC":
		h.declare(stmt, context.SetC, context.Local)
	case "GBLA":
		h.declareGlobal(stmt, context.SetA)
	case "GBLB":
		h.declareGlobal(stmt, context.SetB)
	case "GBLC":
		h.declareGlobal(stmt, context.SetC)
	case "AGO":
		return h.ago(stmt)
	case "AIF":
		return h.aif(stmt)
	case "ACTR":
		h.actr(stmt)
	case "ANOP", "ASPACE", "AEJECT":
		// No program-state effect: ANOP is a bare branch target, ASPACE/
		// AEJECT only affect listing pagination (out of scope, spec §1).
	case "MHELP":
		// Verbosity control only; the branch-limit override path is
		// exercised through Scope.SetActrLimit directly by callers that
		// also need MHELP's operand, which is listing-only here.
	}

	return Branch{}
}

// setVar implements SETA/SETB/SETC: the statement's label names the target
// and the sole operand is the new value, always stored at index 1. A
// subscript in the label is not parsed; the label text is used as the
// symbol name as it stands.
func (h *Handler) setVar(stmt statement.Statement, kind context.SetKind, vis context.VisibilityKind) {
	if stmt.Label == "" || len(stmt.Operands) == 0 {
		return
	}

	name := h.Ctx.Ids.Intern(stmt.Label)

	sym, ok := h.Ctx.Scope().Lookup(name)
	if !ok {
		sym = &context.VarSym{Kind: context.VarSet, Set: context.NewSetSym(kind, vis, true)}
		h.Ctx.Scope().Declare(name, sym)
	}

	if sym.Kind != context.VarSet || sym.Set.Kind != kind {
		h.Diag.Add(diagnostic.Errorf(diagnostic.CodeVarKindMismatch, h.FileURI, stmt.Range,
			"%s is not a SET%c symbol", stmt.Label, kindLetter(kind)))

		return
	}

	value := valueOf(kind, stmt.Operands[0])
	if !sym.Set.Set(1, value) {
		h.Diag.Add(diagnostic.Errorf(diagnostic.CodeBadExpression, h.FileURI, stmt.Range,
			"subscript out of range for %s", stmt.Label))
	}
}

func valueOf(kind context.SetKind, op operand.Operand) any {
	switch kind {
	case context.SetA:
		return op.Expr.ConstantValue()
	case context.SetB:
		return op.Expr.ConstantValue() != 0
	default:
		return op.ParamRaw
	}
}

func kindLetter(kind context.SetKind) byte {
	switch kind {
	case context.SetA:
		return 'A'
	case context.SetB:
		return 'B'
	default:
		return 'C'
	}
}

// declare implements LCLA/LCLB/LCLC: each operand names a local variable to
// create in the current scope (spec §3, "Variable tables are per code
// scope").
func (h *Handler) declare(stmt statement.Statement, kind context.SetKind, vis context.VisibilityKind) {
	for _, op := range stmt.Operands {
		if op.Kind != operand.KindExpr || op.Expr.Kind != operand.ExprSymbol {
			continue
		}

		h.Ctx.Scope().Declare(op.Expr.Symbol, &context.VarSym{Kind: context.VarSet, Set: context.NewSetSym(kind, vis, true)})
	}
}

// declareGlobal implements GBLA/GBLB/GBLC: each operand binds the current
// scope to the assembly-wide global of that name (spec §3, "globals table
// shared across scopes").
func (h *Handler) declareGlobal(stmt statement.Statement, kind context.SetKind) {
	for _, op := range stmt.Operands {
		if op.Kind != operand.KindExpr || op.Expr.Kind != operand.ExprSymbol {
			continue
		}

		set := h.Ctx.Globals.Declare(op.Expr.Symbol, kind, true)
		h.Ctx.Scope().Declare(op.Expr.Symbol, &context.VarSym{Kind: context.VarSet, Set: set})
	}
}

// ago implements AGO: an unconditional branch to the named sequence symbol.
func (h *Handler) ago(stmt statement.Statement) Branch {
	if len(stmt.Operands) == 0 || stmt.Operands[0].Kind != operand.KindExpr || stmt.Operands[0].Expr.Kind != operand.ExprSymbol {
		return Branch{}
	}

	target := stmt.Operands[0].Expr.Symbol.String()
	if !h.checkActr(stmt) {
		return Branch{}
	}

	return Branch{Taken: true, Target: target}
}

// aif implements AIF: operands are `(condition) target`; the first operand
// is the boolean condition, the second the sequence-symbol target.
func (h *Handler) aif(stmt statement.Statement) Branch {
	if len(stmt.Operands) < 2 {
		return Branch{}
	}

	cond := stmt.Operands[0].Expr.ConstantValue() != 0
	if !cond {
		return Branch{}
	}

	if stmt.Operands[1].Kind != operand.KindExpr || stmt.Operands[1].Expr.Kind != operand.ExprSymbol {
		return Branch{}
	}

	if !h.checkActr(stmt) {
		return Branch{}
	}

	return Branch{Taken: true, Target: stmt.Operands[1].Expr.Symbol.String()}
}

// checkActr ticks the current scope's branch counter, reporting W063 and
// refusing any branch beyond the ACTR limit (spec §4.4.1).
func (h *Handler) checkActr(stmt statement.Statement) bool {
	if h.Ctx.Scope().Tick() {
		h.Diag.Add(diagnostic.Warnf(diagnostic.CodeActrLimit, h.FileURI, stmt.Range,
			"ACTR limit reached; further AIF/AGO branches in this scope are blocked"))

		return false
	}

	return true
}

// actr implements ACTR: sets the current scope's branch-counter limit.
func (h *Handler) actr(stmt statement.Statement) {
	if len(stmt.Operands) == 0 {
		return
	}

	h.Ctx.Scope().SetActrLimit(int(stmt.Operands[0].Expr.ConstantValue()))
}

// Aread reads one raw source line into a SETC variable (spec §4.4.1,
// "AREAD"). The raw line is supplied by the caller (the open-code provider
// owns the actual line stream); this only performs the variable binding.
func (h *Handler) Aread(varName string, line string) {
	name := h.Ctx.Ids.Intern(varName)

	sym, ok := h.Ctx.Scope().Lookup(name)
	if !ok || sym.Kind != context.VarSet || sym.Set.Kind != context.SetC {
		sym = &context.VarSym{Kind: context.VarSet, Set: context.NewSetSym(context.SetC, context.Local, true)}
		h.Ctx.Scope().Declare(name, sym)
	}

	sym.Set.Set(1, line)
}
