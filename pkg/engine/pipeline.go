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
package engine

import (
	"strings"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/dependency"
	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/asmdir"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/ca"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/machine"
	"github.com/open-mainframe/hlasm-language-server/pkg/instr/macrocall"
	"github.com/open-mainframe/hlasm-language-server/pkg/macrocache"
	"github.com/open-mainframe/hlasm-language-server/pkg/opcode"
	"github.com/open-mainframe/hlasm-language-server/pkg/operand"
	"github.com/open-mainframe/hlasm-language-server/pkg/processor"
	"github.com/open-mainframe/hlasm-language-server/pkg/provider"
	"github.com/open-mainframe/hlasm-language-server/pkg/statement"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
	"github.com/open-mainframe/hlasm-language-server/pkg/workspace"
)

// sliceLines is the Lines implementation (spec §4.2) the open-code
// provider pulls from, given a whole source file split into lines ahead
// of time.
type sliceLines struct {
	lines []string
	next  int
}

func (s *sliceLines) NextLine() (string, bool) {
	if s.next >= len(s.lines) {
		return "", false
	}

	line := s.lines[s.next]
	s.next++

	return line, true
}

// Pipeline is the end-to-end analysis driver (spec §8): one Context, one
// Solver, one diagnostic Bag, the four instruction-family handlers, the
// processor stack and the statement-provider chain, wired together for a
// single source file. pkg/lsp and pkg/cmd each construct one per
// analysis run.
type Pipeline struct {
	Ctx    *context.Context
	Solver *dependency.Solver
	Diag   *diagnostic.Bag
	Macros *macrocache.Cache

	// Library resolves COPY members against the workspace's configured
	// library list (spec §4.6). When nil, COPY members are never looked up
	// or expanded and no not-found diagnostic is reported. The check,
	// debug and serve subcommands each wire one up.
	Library *workspace.Resolver

	fileURI string

	ca        *ca.Handler
	asmdir    *asmdir.Handler
	machine   *machine.Handler
	macrocall *macrocall.Handler

	stack *processor.Stack
	chain *provider.Chain

	lineIdx int

	// Single-level macro-definition/replay bookkeeping (documented
	// simplification: nested macro invocation from within a replaying
	// macro body, and nested MACRO/MEND within a definition, are not
	// supported by this minimal engine).
	protos        map[string]macrocall.Proto
	awaitingProto bool
	defBody       []string
	defDepth      int
	macroIndex    int

	// Fading bookkeeping (spec §7): protoRanges/invokedMacros track which
	// defined macros are never called, and stmtRanges/branches let a taken
	// AIF/AGO fade the statements it skips over once its target sequence
	// symbol is known - resolved in a post-pass at scope exit, since a
	// forward target is not declared yet at the moment the branch is seen.
	protoRanges   map[string]source.Span
	invokedMacros map[string]bool
	stmtRanges    map[*context.Scope][]source.Span
	branches      []branchEvent
}

// branchEvent is a taken AIF/AGO awaiting resolution against the sequence
// symbols of the scope it occurred in.
type branchEvent struct {
	scope     *context.Scope
	fromIndex int
	target    string
	span      source.Span
}

// NewPipeline constructs a Pipeline rooted at fileURI, sharing macros
// across analysis runs of different files in the same workspace (spec
// §4.7, "Macro cache").
func NewPipeline(fileURI string, macros *macrocache.Cache) *Pipeline {
	ctx := context.New(fileURI)
	solver := dependency.NewSolver()
	diag := diagnostic.NewBag(fileURI)

	p := &Pipeline{
		Ctx:     ctx,
		Solver:  solver,
		Diag:    diag,
		Macros:  macros,
		fileURI: fileURI,
		ca:      &ca.Handler{Ctx: ctx, Diag: diag, FileURI: fileURI},
		asmdir:  asmdir.NewHandler(ctx, solver, diag, fileURI),
		machine: &machine.Handler{Ctx: ctx, Solver: solver, Diag: diag, FileURI: fileURI},
		macrocall: &macrocall.Handler{
			Ctx: ctx, Solver: solver, Diag: diag, FileURI: fileURI,
		},
		protos:        make(map[string]macrocall.Proto),
		protoRanges:   make(map[string]source.Span),
		invokedMacros: make(map[string]bool),
		stmtRanges:    make(map[*context.Scope][]source.Span),
	}

	p.stack = processor.NewStack(&processor.Ordinary{Dispatch: p.dispatch})
	p.chain = &provider.Chain{OpenCode: &provider.OpenCode{Sink: ctx.Source}}

	return p
}

// Run analyzes the given source text line by line and returns every
// diagnostic recorded along the way (spec §8: "the pipeline's output is
// the diagnostic bag's contents"). It is the function both pkg/lsp's
// Analyze closure and the "check" CLI subcommand call.
func (p *Pipeline) Run(text string) []diagnostic.Diagnostic {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	p.chain.OpenCode.Lines = &sliceLines{lines: lines}

	for {
		if p.chain.Macro != nil && p.chain.Macro.Exhausted() {
			p.resolveBranches(p.Ctx.Scope())
			p.Ctx.ExitMacro()
			p.chain.Macro = nil
		}

		if p.chain.Copy != nil && p.chain.Copy.Exhausted() {
			p.Ctx.Copy.Pop()
			p.chain.Copy = nil
		}

		raw, _, ok := p.chain.Next()
		if !ok {
			break
		}

		p.lineIdx++

		stmt, recognized := ParseLine(p.Ctx, p.lineIdx, raw)
		if !recognized {
			continue
		}

		p.step(raw, stmt)
	}

	p.resolveBranches(p.Ctx.Scope())
	p.fadeUninvokedMacros()
	p.Solver.Flush()

	return p.Diag.Diagnostics()
}

// resolveBranches validates every AIF/AGO target recorded against scope and
// fades the statements a taken forward branch skips over (spec §7, fading;
// spec §4.4.1 jump validation: "target sequence symbols must exist within
// the current scope; undefined targets emit E047 in post-pass"). It runs
// once the scope is finished (macro replay exhausted, or end of file for
// open code) since a forward target is not declared yet when the branch
// statement itself is seen.
func (p *Pipeline) resolveBranches(scope *context.Scope) {
	ranges := p.stmtRanges[scope]
	remaining := p.branches[:0]

	for _, br := range p.branches {
		if br.scope != scope {
			remaining = append(remaining, br)
			continue
		}

		targetIdx, ok := scope.LookupSeqSym(p.Ctx.Ids.Intern(br.target))
		if !ok {
			p.Diag.Add(diagnostic.Errorf(diagnostic.CodeUndefinedSeqSym, p.fileURI, br.span,
				"%s is not a defined sequence symbol in this scope", br.target))

			continue
		}

		for i := br.fromIndex + 1; i < targetIdx && i < len(ranges); i++ {
			p.Diag.AddFade(diagnostic.Fade{Kind: diagnostic.InactiveStatement, FileURI: p.fileURI, Span: ranges[i]})
		}
	}

	p.branches = remaining
	delete(p.stmtRanges, scope)
}

// recordStatement assigns stmt the current scope's next statement index
// and, if its label is a sequence symbol, declares it there (spec §4.4.1,
// AIF/AGO targets) so a later branch in this scope can resolve against it.
func (p *Pipeline) recordStatement(stmt statement.Statement) {
	scope := p.Ctx.Scope()
	idx := scope.StatementIndex
	scope.StatementIndex++

	p.stmtRanges[scope] = append(p.stmtRanges[scope], stmt.Range)

	if strings.HasPrefix(stmt.Label, ".") {
		scope.DeclareSeqSym(p.Ctx.Ids.Intern(strings.ToUpper(stmt.Label)), idx)
	}
}

// applyBranch records a taken AIF/AGO so resolveBranches can validate its
// target and fade the statements it skips once the current scope finishes.
func (p *Pipeline) applyBranch(br ca.Branch, stmt statement.Statement) {
	if !br.Taken {
		return
	}

	p.branches = append(p.branches, branchEvent{
		scope:     p.Ctx.Scope(),
		fromIndex: p.Ctx.Scope().StatementIndex - 1,
		target:    br.Target,
		span:      stmt.Range,
	})
}

// fadeUninvokedMacros emits a fade for every macro whose MACRO/MEND
// definition was seen but which no statement in this file ever called
// (spec §7, "uninvoked macros").
func (p *Pipeline) fadeUninvokedMacros() {
	for name, span := range p.protoRanges {
		if p.invokedMacros[name] {
			continue
		}

		p.Diag.AddFade(diagnostic.Fade{Kind: diagnostic.UnusedMacro, FileURI: p.fileURI, Span: span})
	}
}

// step advances the processor stack and the macro-definition/replay
// bookkeeping by exactly one statement.
func (p *Pipeline) step(raw string, stmt statement.Statement) {
	if def, defining := p.stack.Top().(*processor.MacroDefinition); defining {
		p.stepMacroDefinition(def, raw, stmt)
		return
	}

	if stmt.Instruction == "MACRO" {
		p.stack.Push(&processor.MacroDefinition{})
		p.awaitingProto = true
		p.defBody = nil
		p.defDepth = 0

		return
	}

	p.stack.Dispatch(stmt.Instruction, stmt)
}

func (p *Pipeline) stepMacroDefinition(def *processor.MacroDefinition, raw string, stmt statement.Statement) {
	if p.awaitingProto {
		p.captureProto(stmt)
		p.awaitingProto = false
		p.stack.Dispatch(stmt.Instruction, stmt)

		return
	}

	// The outer MEND that closes this definition is consumed here, not
	// recorded into the replayed body - only a nested MACRO/MEND pair's
	// statements are genuine body content.
	willEnd := stmt.Instruction == "MEND" && p.defDepth == 0
	if !willEnd {
		p.defBody = append(p.defBody, raw)
	}

	switch stmt.Instruction {
	case "MACRO":
		p.defDepth++
	case "MEND":
		if p.defDepth > 0 {
			p.defDepth--
		}
	}

	p.stack.Dispatch(stmt.Instruction, stmt)

	if willEnd {
		p.finishMacroDefinition(def)
		p.stack.Pop()
	}
}

// captureProto reads the statement immediately following MACRO as the
// macro's prototype (spec §3, "Macro prototype"): its instruction field
// names the macro, its label field (if any) names the result variable
// (not modelled further here), and its operands name the positional
// parameters, `&NAME=default` declaring a keyword parameter instead.
func (p *Pipeline) captureProto(stmt statement.Statement) {
	proto := macrocall.Proto{Name: stmt.Instruction, Keywords: make(map[string]context.ParamData)}

	for _, op := range stmt.Operands {
		if op.Kind == operand.KindKeyword && op.Value != nil {
			proto.Keywords[strings.ToUpper(strings.TrimPrefix(op.Keyword, "&"))] =
				context.StringToParamData(operandLiteralText(*op.Value))

			continue
		}

		if name := operandLiteralText(op); name != "" {
			proto.Positional = append(proto.Positional, strings.ToUpper(strings.TrimPrefix(name, "&")))
		}
	}

	p.protos[proto.Name] = proto
	p.protoRanges[proto.Name] = stmt.Range
}

// operandLiteralText recovers a bare identifier's text from an operand
// built by ParseLine's simplified classification, for prototype-parameter
// name extraction.
func operandLiteralText(op operand.Operand) string {
	switch op.Kind {
	case operand.KindExpr:
		if op.Expr.Kind == operand.ExprSymbol {
			return op.Expr.Symbol.String()
		}
	case operand.KindParamRef:
		return op.ParamRaw
	}

	return ""
}

// finishMacroDefinition records the accumulated body in the macro cache
// and makes the macro name resolve as a callable opcode from this point
// forward (spec §4.3: "MEND ... recognized as a macro call thereafter").
func (p *Pipeline) finishMacroDefinition(def *processor.MacroDefinition) {
	if len(def.Body) == 0 {
		return
	}

	name := def.Body[0]

	macroId := p.Ctx.Ids.Intern(name)
	p.Macros.Record(macroId, p.defBody, nil, map[id.Id]opcode.Descriptor{}, p.Ctx.Processing.Top().Kind)
	p.Ctx.Opcodes.Define(macroId, opcode.Descriptor{Kind: opcode.Macro})
}

// dispatch is the Ordinary/Copy processor's injected family-handler
// dispatch (spec §4.4, "Instruction dispatch"): it routes a statement to
// the CA, assembler, machine, or macro-call handler by Format.
func (p *Pipeline) dispatch(stmt statement.Statement) bool {
	p.recordStatement(stmt)

	switch stmt.Format {
	case statement.FormatCA:
		p.applyBranch(p.ca.Dispatch(stmt), stmt)
	case statement.FormatAssembler:
		if stmt.Instruction == "COPY" {
			p.dispatchCopy(stmt)
			break
		}

		p.asmdir.Dispatch(stmt)
	case statement.FormatMachine:
		p.machine.Process(stmt)
	case statement.FormatMacroCall:
		p.dispatchMacroCall(stmt)
	default:
		p.Diag.Add(diagnostic.Errorf(diagnostic.CodeUndefinedOpcode, p.fileURI, stmt.Range,
			"%s is not a recognized opcode", stmt.Instruction))

		return false
	}

	return true
}

// dispatchCopy drives asmdir's recursion/label bookkeeping for COPY, then -
// if a library resolver is configured - looks the member up and pushes it
// onto the provider chain's copy slot (spec §4.2, item 2; spec §4.6). The
// asmdir handler itself stays library-agnostic (its copy() is unexported
// and only enforces the copy-stack invariant); resolution is this
// pipeline's job, the caller of pkg/workspace.Resolver.
func (p *Pipeline) dispatchCopy(stmt statement.Statement) {
	depthBefore := p.Ctx.Copy.Depth()
	p.asmdir.Dispatch(stmt)

	if p.Library == nil || p.Ctx.Copy.Depth() <= depthBefore {
		return
	}

	name := operandLiteralText(stmt.Operands[0])

	text, _, found := p.Library.Resolve(name)
	if !found {
		p.Diag.Add(diagnostic.Errorf(diagnostic.CodeMemberNotFound, p.fileURI, stmt.Range,
			"COPY member %s not found in any library", name))
		p.Ctx.Copy.Pop()

		return
	}

	p.chain.Copy = &provider.Copy{Member: text}
}

func (p *Pipeline) dispatchMacroCall(stmt statement.Statement) {
	proto, ok := p.protos[stmt.Instruction]
	if !ok {
		p.Diag.Add(diagnostic.Errorf(diagnostic.CodeUndefinedOpcode, p.fileURI, stmt.Range,
			"%s is not a recognized opcode", stmt.Instruction))

		return
	}

	p.invokedMacros[stmt.Instruction] = true

	if !p.macrocall.Process(stmt, proto) {
		return
	}

	macroId := p.Ctx.Ids.Intern(stmt.Instruction)

	entry, found := p.Macros.Lookup(macroId, map[id.Id]opcode.Descriptor{}, p.Ctx.Processing.Top().Kind)
	if !found {
		p.Ctx.ExitMacro()
		return
	}

	p.macroIndex = 0
	p.chain.Macro = &provider.MacroReplay{Body: entry.Body, Index: &p.macroIndex}
}
