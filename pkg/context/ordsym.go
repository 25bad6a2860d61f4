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
package context

// OrdSymKind is the kind discriminant of an ordinary symbol: a label, an
// EQU-defined symbol, or a machine/assembler-instruction opcode used as a
// symbol (spec §3, "Ordinary symbols" - "a name appears as at most one kind
// of ordinary symbol").
type OrdSymKind uint8

// Ordinary-symbol kinds.
const (
	OrdUndefined OrdSymKind = iota
	OrdLabel
	OrdEqu
	OrdMachine
)

// ValueKind discriminates the three shapes an ordinary symbol's value can
// take (spec §3, "a value is either undefined, absolute, or relocatable").
type ValueKind uint8

// Value kinds.
const (
	ValUndefined ValueKind = iota
	ValAbsolute
	ValRelocatable
)

// SymbolValue is the tagged union `undefined | absolute | relocatable`
// (spec §3), modelled with an explicit discriminator plus payload per spec
// §9, the same pattern used by VarSym and ParamData.
type SymbolValue struct {
	Kind        ValueKind
	Absolute    int64
	Relocatable RelocatableValue
}

// UndefinedValue constructs the undefined symbol value.
func UndefinedValue() SymbolValue {
	return SymbolValue{Kind: ValUndefined}
}

// AbsoluteValue constructs an absolute symbol value.
func AbsoluteValue(v int64) SymbolValue {
	return SymbolValue{Kind: ValAbsolute, Absolute: v}
}

// RelocValue constructs a relocatable symbol value.
func RelocValue(r RelocatableValue) SymbolValue {
	return SymbolValue{Kind: ValRelocatable, Relocatable: r}
}

// Resolved reports whether this value is no longer undefined and, if
// relocatable, carries no outstanding unresolved spaces.
func (v SymbolValue) Resolved() bool {
	switch v.Kind {
	case ValUndefined:
		return false
	case ValRelocatable:
		return v.Relocatable.Resolved()
	default:
		return true
	}
}

// AssemblerType records XATTR-assignable and implicit assembler-type
// classification (spec §4.4.2, "XATTR").
type AssemblerType uint8

// Assembler types recognised by XATTR PSECT/cross-section attributes.
const (
	AsmTypeUnknown AssemblerType = iota
	AsmTypeOrdinary
	AsmTypeExternal
	AsmTypeWeakExternal
	AsmTypeEntry
)

// SymbolAttrs holds the extended attributes a symbol carries alongside its
// value (spec §3, glossary: "Symbol attributes" - type, length, scale,
// integer, program type, assembler type), each independently queryable via
// the T'/L'/S'/I' attribute references and via XATTR.
type SymbolAttrs struct {
	Type        byte // T' attribute, e.g. 'C','F','U'
	Length      int  // L' attribute
	Scale       int  // S' attribute
	Integer     int  // I' attribute
	ProgramType int64
	Assembler   AssemblerType
	PSect       string // XATTR PSECT(name), empty if not bound to a private section
}

// OrdSym is an ordinary symbol: a label, EQU target, or machine-instruction
// mnemonic used as a symbol (spec §3). Kind is fixed at first declaration;
// spec invariant 2 forbids a later declaration with a different Kind,
// flagged as a redefinition (E031) by the caller holding the owning table.
type OrdSym struct {
	Kind  OrdSymKind
	Value SymbolValue
	Attrs SymbolAttrs
}
