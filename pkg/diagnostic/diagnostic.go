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

// Package diagnostic implements the diagnostic-as-value model required by
// spec §7: instruction handlers never panic on user-input errors, they
// return Diagnostics and processing continues. The shape generalises the
// teacher's pkg/util/source.SyntaxError (a struct carrying a source file, a
// Span and a message with an Error() method) into something that also
// carries a code, a severity, related information and fade tags.
package diagnostic

import (
	"fmt"

	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
)

// Severity mirrors the LSP DiagnosticSeverity enum (spec §6).
type Severity int

// Severities, ordered the same way LSP numbers them (Error is 1).
const (
	Error Severity = iota + 1
	Warning
	Information
	Hint
)

// Tag mirrors the LSP DiagnosticTag enum (spec §6).
type Tag int

// Recognised tags.
const (
	Unnecessary Tag = iota + 1
	Deprecated
)

// RelatedInformation cross-references another location from a diagnostic.
type RelatedInformation struct {
	FileURI string
	Span    source.Span
	Message string
}

// Diagnostic is a structured, file-scoped error/warning/info record (spec
// §6, "Diagnostic record"). It implements error so instruction handlers can
// thread it through ordinary Go error-returning code when convenient, while
// the processing manager accumulates every Diagnostic produced during a
// pass rather than stopping at the first one.
type Diagnostic struct {
	Code        string
	Severity    Severity
	FileURI     string
	Span        source.Span
	Message     string
	RelatedInfo []RelatedInformation
	Tags        []Tag
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %d:%d: %s", d.FileURI, d.Code, d.Span.Start(), d.Span.End(), d.Message)
}

// New constructs a Diagnostic for the given code/severity/span/message.
func New(code string, severity Severity, fileURI string, span source.Span, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: severity, FileURI: fileURI, Span: span, Message: message}
}

// Errorf is a convenience constructor for Severity Error diagnostics with a
// formatted message.
func Errorf(code, fileURI string, span source.Span, format string, args ...any) Diagnostic {
	return New(code, Error, fileURI, span, fmt.Sprintf(format, args...))
}

// Warnf is a convenience constructor for Severity Warning diagnostics with a
// formatted message.
func Warnf(code, fileURI string, span source.Span, format string, args ...any) Diagnostic {
	return New(code, Warning, fileURI, span, fmt.Sprintf(format, args...))
}

// FadeKind classifies a fade message (spec §7, "Fading").
type FadeKind int

// Recognised fade kinds.
const (
	InactiveStatement FadeKind = iota
	UnusedMacro
)

// Fade is a non-diagnostic annotation driving the editor's dim-inactive-code
// rendering. Fades are published separately from Diagnostics (spec §7).
type Fade struct {
	Kind    FadeKind
	FileURI string
	Span    source.Span
}

// Well-known diagnostic codes referenced directly by the spec. Kept as
// constants so instruction handlers never hand-type a code string more than
// once.
const (
	CodeSyntax0003        = "S0003"
	CodeSyntax0005        = "S0005"
	CodeSyntax0011        = "S0011"
	CodeRedefinition      = "E031"
	CodeCycle             = "E033"
	CodeVarKindMismatch   = "E051"
	CodeVarKindMismatch2  = "E052"
	CodeBadCopyOperand    = "E058"
	CodeRecursiveCopy     = "E062"
	CodeMemberNotFound    = "E059"
	CodeUndefinedOpcode   = "E049"
	CodeDuplicateKeyword  = "E011"
	CodeUndefinedSeqSym   = "E047"
	CodeLoctrUnderflow    = "E068"
	CodeBadExpression     = "A115"
	CodeBadBoundary       = "A116"
	CodeSysndxLimit       = "E072"
	CodeUnknownKeyword    = "W014"
	CodeActrLimit         = "W063"
	CodeConfigPlaceholder = "W0007"
	CodeSuppressed        = "SUP"
)
