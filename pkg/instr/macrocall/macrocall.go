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

// Package macrocall implements the macro-call processor (spec §4.4.4):
// SYSNDX allocation and its per-context limit, the 0-length machine-origin
// label reference, ParamData parsing of the operand list (positional
// forwarding, NAME=value keyword binding, balanced-paren sublists), and
// entering the callee's scope with its parameter bindings and SYSLIST.
package macrocall

import (
	"strconv"
	"strings"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/dependency"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
)

// defaultSysndxLimit bounds how many macro invocations a single analysis
// run permits before reporting E072 (spec §4.4.4, step 1), matching the
// conventional HLASM assembler-option default.
const defaultSysndxLimit = 9999

// Proto is a macro's call-site contract: its declared positional parameter
// names in order, and its declared keyword parameters with their default
// bindings (spec §3, "Macro prototype"). The macro cache (pkg/macrocache)
// and the MACRO-definition processor are responsible for building one of
// these per cached macro body; this package only consumes it.
type Proto struct {
	Name       string
	Positional []string
	Keywords   map[string]context.ParamData
}

// Handler dispatches macro-call statements.
type Handler struct {
	Ctx         *context.Context
	Solver      *dependency.Solver
	Diag        *diagnostic.Bag
	FileURI     string
	SysndxLimit int
}

// Process implements spec §4.4.4's four steps. It returns false (without
// entering the macro) if the SYSNDX limit has been reached.
func (h *Handler) Process(stmt statement.Statement, proto Proto) bool {
	limit := h.SysndxLimit
	if limit == 0 {
		limit = defaultSysndxLimit
	}

	sysndx := h.Ctx.NextSysndx()
	if sysndx > limit {
		h.Diag.Add(diagnostic.Errorf(diagnostic.CodeSysndxLimit, h.FileURI, stmt.Range,
			"SYSNDX limit of %d exceeded", limit))

		return false
	}

	h.recordLabel(stmt)

	positional, keywords := h.bindOperands(stmt, proto)
	h.enter(proto, positional, keywords)

	return true
}

// recordLabel implements "If the label is an ordinary symbol, record a
// 0-length machine-origin symbol reference with type 'M'" (spec §4.4.4,
// step 2).
func (h *Handler) recordLabel(stmt statement.Statement) {
	if stmt.Label == "" {
		return
	}

	name := h.Ctx.Ids.Intern(stmt.Label)
	offset := h.Ctx.CurrentSection().CurrentLoctr().Offset()
	rv := context.RelocatableValue{Section: h.Ctx.CurrentSection(), Offset: offset}

	ok, _ := h.Solver.AddSymbol(h.Ctx.Ord, name, context.OrdLabel, context.RelocValue(rv), context.SymbolAttrs{Type: 'M', Length: 0})
	if !ok {
		h.Diag.Add(diagnostic.Errorf(diagnostic.CodeRedefinition, h.FileURI, stmt.Range,
			"%s is already defined as a different kind of symbol", stmt.Label))
	}
}

// bindOperands implements step 3: parses the operand list into ParamData,
// separating positional arguments (in call order, for SYSLIST) from
// keyword bindings. A duplicate keyword is E011 (first binding wins); a
// keyword not declared by proto is W014 and is instead appended
// positionally, exactly as HLASM passes an unrecognised NAME=value token
// through to SYSLIST rather than rejecting the call outright.
func (h *Handler) bindOperands(stmt statement.Statement, proto Proto) ([]context.ParamData, map[string]context.ParamData) {
	positional := make([]context.ParamData, 0, len(stmt.Operands))
	keywords := make(map[string]context.ParamData, len(proto.Keywords))

	for _, op := range stmt.Operands {
		raw := operandText(op)

		name, value, isKeyword := splitKeyword(raw)
		if !isKeyword {
			positional = append(positional, context.StringToParamData(raw))
			continue
		}

		if _, declared := proto.Keywords[name]; !declared {
			h.Diag.Add(diagnostic.Warnf(diagnostic.CodeUnknownKeyword, h.FileURI, stmt.Range,
				"%s is not a declared keyword parameter of %s; passed positionally", name, proto.Name))

			positional = append(positional, context.StringToParamData(raw))

			continue
		}

		if _, bound := keywords[name]; bound {
			h.Diag.Add(diagnostic.Errorf(diagnostic.CodeDuplicateKeyword, h.FileURI, stmt.Range,
				"keyword %s is bound more than once", name))

			continue
		}

		keywords[name] = context.StringToParamData(value)
	}

	return positional, keywords
}

// operandText recovers the raw textual form of an operand for ParamData
// parsing; KindParamRef carries it directly, and literal and symbol
// expression operands are written back as their decimal value or symbol
// name so a plain expression operand can still be passed as a macro
// argument. Any other operand yields its ParamRaw, empty unless set.
func operandText(op operand.Operand) string {
	if op.Kind == operand.KindParamRef {
		return op.ParamRaw
	}

	if op.Kind == operand.KindKeyword && op.Value != nil {
		return op.Keyword + "=" + operandText(*op.Value)
	}

	if op.Kind == operand.KindExpr {
		switch op.Expr.Kind {
		case operand.ExprLiteral:
			return strconv.FormatInt(op.Expr.Literal, 10)
		case operand.ExprSymbol:
			return op.Expr.Symbol.String()
		}
	}

	return op.ParamRaw
}

// splitKeyword recognises `NAME=value` (spec §4.4.4, step 3). NAME must
// look like a bare identifier - no parens, no leading digit - otherwise the
// '=' is part of the positional text itself (e.g. a literal containing
// '=').
func splitKeyword(raw string) (name, value string, ok bool) {
	idx := strings.IndexByte(raw, '=')
	if idx <= 0 {
		return "", "", false
	}

	candidate := raw[:idx]
	for i, r := range candidate {
		isAlpha := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '#' || r == '@' || r == '$'
		isDigit := r >= '0' && r <= '9'

		if i == 0 && !isAlpha {
			return "", "", false
		}

		if i > 0 && !isAlpha && !isDigit {
			return "", "", false
		}
	}

	return strings.ToUpper(candidate), raw[idx+1:], true
}

// enter implements step 4: pushes a new scope, binds every declared
// parameter (positional and keyword, falling back to its declared default
// when the call site omitted it), and constructs SYSLIST from the
// positional arguments actually supplied.
func (h *Handler) enter(proto Proto, positional []context.ParamData, keywords map[string]context.ParamData) {
	h.Ctx.EnterMacro(proto.Name)
	scope := h.Ctx.Scope()

	for i, name := range proto.Positional {
		bound := context.ParamData{}
		if i < len(positional) {
			bound = positional[i]
		}

		id := h.Ctx.Ids.Intern(name)
		scope.Declare(id, &context.VarSym{Kind: context.VarMacroParam, Param: &context.MacroParamSym{
			Position: i + 1, Name: name, Bound: bound,
		}})
	}

	for name, def := range proto.Keywords {
		bound := def
		if v, ok := keywords[name]; ok {
			bound = v
		}

		id := h.Ctx.Ids.Intern(name)
		scope.Declare(id, &context.VarSym{Kind: context.VarMacroParam, Param: &context.MacroParamSym{
			Name: name, Default: def, Bound: bound,
		}})
	}

	syslist := h.Ctx.Ids.Intern("SYSLIST")
	scope.Declare(syslist, &context.VarSym{Kind: context.VarMacroParam, Param: &context.MacroParamSym{
		Name: "SYSLIST", Bound: context.Sublist(positional),
	}})
}
