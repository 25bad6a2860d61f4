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

// Package engine wires the identifier pool, context state, operand AST,
// statement record, statement providers, processors and instruction
// handlers into one analysis pipeline (spec §3's dependency order, spec
// §8, "End-to-end pipeline").
//
// The ANTLR-generated lexer/parser is explicitly out of scope (spec §1:
// "treat as external collaborators ... only its produced statement
// records and operand ASTs are consumed") - this file is NOT that
// grammar. It is a minimal, free-form field splitter good enough to
// drive the pipeline end-to-end for the "check" CLI subcommand and the
// language-server's diagnostics pass against ordinary, non-continued
// HLASM source. Field and operand boundaries are found with a single
// paren-nesting counter and a quote toggle; it does not implement
// fixed-format columns, statement continuation, or model-statement
// substitution.
package engine

import (
	"strconv"
	"strings"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
)

// ParseLine builds a resolved Statement from one raw source line, or
// reports ok=false for a blank line or full-line comment (stmt.Format
// already distinguishes comments recorded for other reasons).
func ParseLine(ctx *context.Context, lineIdx int, raw string) (stmt statement.Statement, ok bool) {
	trimmed := strings.TrimRight(raw, "\r\n")
	stripped := strings.TrimSpace(trimmed)

	if stripped == "" || strings.HasPrefix(stripped, "*") {
		return statement.Statement{}, false
	}

	label, rest := splitLabel(trimmed)

	instruction, operandsText, remarks := splitFields(rest)
	if instruction == "" {
		return statement.Statement{}, false
	}

	instruction = strings.ToUpper(instruction)

	opId := ctx.Ids.Intern(instruction)
	ref, _ := ctx.Opcodes.Lookup(opId, instruction)

	operands := parseOperands(ctx, operandsText)
	span := source.NewSpan(lineIdx, lineIdx+len(trimmed))

	return statement.New(label, instruction, operands, remarks, ref, span), true
}

// splitLabel peels off a leading label: a line beginning in column 1 with
// a non-blank character names a label, anything else (beginning with
// whitespace) has none - the free-form stand-in for HLASM's fixed
// label/continuation columns.
func splitLabel(line string) (label, rest string) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", strings.TrimLeft(line, " \t")
	}

	fields := strings.SplitN(line, " ", 2)
	if len(fields) == 1 {
		return fields[0], ""
	}

	return fields[0], strings.TrimLeft(fields[1], " \t")
}

// splitFields separates the instruction mnemonic from its operand list and
// any trailing remarks: the first whitespace-delimited token is the
// instruction, the operand field runs until whitespace outside any
// parenthesis nesting or quoted string, and whatever follows is remarks.
func splitFields(rest string) (instruction, operands, remarks string) {
	rest = strings.TrimLeft(rest, " \t")

	end := strings.IndexAny(rest, " \t")
	if end < 0 {
		return rest, "", ""
	}

	instruction = rest[:end]
	tail := strings.TrimLeft(rest[end:], " \t")

	depth := 0
	inQuote := false

	for i, r := range tail {
		switch r {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote && depth > 0 {
				depth--
			}
		case ' ', '\t':
			if !inQuote && depth == 0 {
				return instruction, tail[:i], strings.TrimLeft(tail[i:], " \t")
			}
		}
	}

	return instruction, tail, ""
}

// parseOperands splits a comma-separated operand field at top-level commas
// (respecting parenthesis nesting and quoted strings) and classifies each
// token into the operand AST's tagged union: a bare integer becomes a
// literal expression, a bare identifier becomes a symbol reference, a
// `NAME=value` token becomes a keyword operand, and anything else (sublists,
// data-constant syntax, macro-parameter text the family handlers reparse
// via ParamData) is carried through as KindParamRef raw text.
func parseOperands(ctx *context.Context, field string) []operand.Operand {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	var out []operand.Operand

	for _, tok := range splitTopLevelCommas(field) {
		out = append(out, classifyOperand(ctx, tok))
	}

	return out
}

func classifyOperand(ctx *context.Context, tok string) operand.Operand {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return operand.Omitted()
	}

	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return operand.FromExpr(operand.Lit(n))
	}

	if name, value, ok := splitAssignment(tok); ok {
		return operand.Keyed(name, classifyOperand(ctx, value))
	}

	if isBareIdentifier(tok) {
		return operand.FromExpr(operand.Sym(ctx.Ids.Intern(strings.ToUpper(tok))))
	}

	return operand.Operand{Kind: operand.KindParamRef, ParamRaw: tok}
}

func isBareIdentifier(tok string) bool {
	// A leading '.' is the sequence-symbol sigil (spec §4.4.1, AIF/AGO
	// targets) rather than part of the identifier proper; strip it before
	// applying the ordinary symbol-character rules to the rest.
	tok = strings.TrimPrefix(tok, ".")
	if tok == "" {
		return false
	}

	for i, r := range tok {
		alpha := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '#' || r == '@' || r == '$' || r == '&'
		digit := r >= '0' && r <= '9'

		if i == 0 && !alpha {
			return false
		}

		if i > 0 && !alpha && !digit {
			return false
		}
	}

	return true
}

// splitAssignment recognises a top-level `NAME=value` operand token.
func splitAssignment(tok string) (name, value string, ok bool) {
	idx := strings.IndexByte(tok, '=')
	if idx <= 0 {
		return "", "", false
	}

	candidate := tok[:idx]
	if !isBareIdentifier(candidate) {
		return "", "", false
	}

	return strings.ToUpper(candidate), tok[idx+1:], true
}

// splitTopLevelCommas splits on commas outside parens/quotes, the same
// nesting discipline real HLASM operand-field parsing applies before any
// individual operand is interpreted.
func splitTopLevelCommas(s string) []string {
	var out []string

	depth := 0
	inQuote := false
	start := 0

	for i, r := range s {
		switch r {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote && depth > 0 {
				depth--
			}
		case ',':
			if !inQuote && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}

	out = append(out, s[start:])

	return out
}
