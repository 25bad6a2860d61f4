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
package opcode

// caMnemonics lists the conditional-assembly instructions handled by
// instr/ca (spec §4.4.1).
var caMnemonics = []string{
	"SETA", "SETB", "SETC",
	"LCLA", "LCLB", "LCLC",
	"GBLA", "GBLB", "GBLC",
	"ANOP", "AIF", "AGO", "ACTR", "AREAD", "ASPACE", "AEJECT",
	"MACRO", "MEND", "MEXIT", "MHELP",
}

// asmMnemonics lists the assembler instructions handled by instr/asmdir
// (spec §4.4.2).
var asmMnemonics = []string{
	"CSECT", "DSECT", "RSECT", "COM", "LOCTR",
	"EQU", "DC", "DS", "COPY", "DXD", "EXTRN", "WXTRN",
	"ORG", "OPSYN", "AINSERT", "CCW", "CCW0", "CCW1", "CNOP",
	"START", "ALIAS", "END", "LTORG", "USING", "DROP", "PUSH", "POP",
	"MNOTE", "CXD", "TITLE", "PUNCH", "CATTR", "XATTR",
}

// NewBuiltinTable constructs the base opcode table with the CA and
// assembler instruction families populated, plus a representative sample of
// machine mnemonics sufficient for the machine-instruction processor's
// dispatch tests. The OPTABLE assembler option does not select a different
// table: pkg/workspace keeps asm_options as an uninterpreted map.
func NewBuiltinTable() *Table {
	entries := make(map[string]Descriptor)

	for _, m := range caMnemonics {
		entries[m] = Descriptor{Kind: CA}
	}

	for _, m := range asmMnemonics {
		entries[m] = Descriptor{Kind: Assembler}
	}

	for name, size := range machineMnemonics {
		entries[name] = Descriptor{Kind: Machine, Detail: MachineDetail{Length: size}}
	}

	for mnemonic, base := range aliasMnemonics {
		entries[mnemonic] = Descriptor{Kind: Mnemonic, Detail: MachineDetail{Length: machineMnemonics[base]}}
	}

	return NewTable(entries)
}

// MachineDetail is the Descriptor payload for Machine/Mnemonic kinds: the
// encoded instruction length in bytes, used to advance the location counter
// (spec §4.4.3).
type MachineDetail struct {
	Length uint
}

// machineMnemonics is a representative slice of the S/390 instruction set,
// enough to exercise the machine-instruction processor meaningfully without
// reproducing the full several-hundred-entry OPTABLE.
var machineMnemonics = map[string]uint{
	"LR": 2, "LTR": 2, "AR": 2, "SR": 2, "MR": 2, "DR": 2,
	"BR": 2, "BCR": 2, "BASR": 2, "NOP": 2,
	"L": 4, "ST": 4, "A": 4, "S": 4, "C": 4, "LA": 4, "B": 4, "BC": 4,
	"BAS": 4, "BAL": 4, "AH": 4, "SH": 4, "CH": 4, "MH": 4,
	"LH": 4, "STH": 4, "N": 4, "O": 4, "X": 4, "CL": 4,
	"MVC": 6, "CLC": 6, "NC": 6, "OC": 6, "XC": 6, "PACK": 6, "UNPK": 6,
	"TM": 4, "TR": 6, "TRT": 6, "ED": 6, "EDMK": 6,
	"LM": 4, "STM": 4, "SVC": 2,
}

// aliasMnemonics lists extended mnemonics that resolve to an underlying
// machine instruction (e.g. the BC/BCR family's condition-code aliases).
var aliasMnemonics = map[string]string{
	"BE": "BC", "BNE": "BC", "BH": "BC", "BL": "BC", "BP": "BC", "BM": "BC",
	"BZ": "BC", "BO": "BC", "BNZ": "BC", "BNO": "BC",
}
