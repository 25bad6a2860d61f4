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

import (
	"strings"
)

// ParamData is the recursive tree backing macro-parameter bindings (spec
// §3, "ParamData"): either a leaf string, or an ordered list of ParamData
// children (a sublist). It is a tagged union expressed as a discriminator
// plus payload, per spec §9 ("sum types over class hierarchies").
type ParamData struct {
	leaf     bool
	value    string
	children []ParamData
}

// Leaf constructs a leaf ParamData holding a literal string.
func Leaf(s string) ParamData {
	return ParamData{leaf: true, value: s}
}

// Sublist constructs a non-leaf ParamData from an ordered list of children.
func Sublist(children []ParamData) ParamData {
	return ParamData{children: append([]ParamData(nil), children...)}
}

// IsLeaf reports whether this node is a leaf string (as opposed to a
// sublist).
func (p ParamData) IsLeaf() bool {
	return p.leaf
}

// Count implements N': the number of elements at this node. A leaf always
// has count 1; a sublist has the number of immediate children.
func (p ParamData) Count() int {
	if p.leaf {
		return 1
	}

	return len(p.children)
}

// Length implements K': the length, in characters, of the node's textual
// representation.
func (p ParamData) Length() int {
	return len(p.String())
}

// Sub implements subscript addressing: SYSLIST(3) or a macro parameter's
// N'th sublist element, 1-based as in HLASM. Returns an empty leaf if the
// index is out of range, mirroring the forgiving behaviour SYSLIST exhibits
// for out-of-range subscripts.
func (p ParamData) Sub(index int) ParamData {
	if p.leaf || index < 1 || index > len(p.children) {
		return Leaf("")
	}

	return p.children[index-1]
}

// String renders the canonical textual form of this node: a leaf renders as
// its value; a sublist renders as a parenthesised, comma-separated list of
// its children's textual forms - the same syntax HLASM source uses for
// sublist operands, which is what makes the round trip in
// StringToParamData(ParamDataToString(x)) == x hold (spec §8).
func (p ParamData) String() string {
	if p.leaf {
		return p.value
	}

	parts := make([]string, len(p.children))
	for i, c := range p.children {
		parts[i] = c.String()
	}

	return "(" + strings.Join(parts, ",") + ")"
}

// ParamDataToString is the spec's macrodata_to_string.
func ParamDataToString(p ParamData) string {
	return p.String()
}

// StringToParamData is the spec's string_to_macrodata: parses the canonical
// textual form produced by ParamDataToString back into a ParamData tree.
// Plain text with no enclosing parentheses is parsed as a single leaf, even
// if it happens to contain commas - splitting on unparenthesised commas is
// the caller's job (operand-list parsing), not this round-trip codec's.
func StringToParamData(s string) ParamData {
	node, rest := parseParamData(s)
	if rest != "" {
		// Trailing garbage after a balanced sublist is folded into a leaf so
		// the function is total; well-formed callers never hit this path.
		return Leaf(s)
	}

	return node
}

func parseParamData(s string) (ParamData, string) {
	if !strings.HasPrefix(s, "(") {
		return Leaf(s), ""
	}

	depth := 0
	children := make([]ParamData, 0, 4)
	start := 1

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--

			if depth == 0 {
				children = append(children, splitTopLevel(s[start:i])...)
				return Sublist(children), s[i+1:]
			}
		}
	}
	// Unbalanced input: treat the whole thing as a leaf rather than panic.
	return Leaf(s), ""
}

// splitTopLevel splits a comma-separated list of ParamData textual forms at
// top-level commas only (commas nested inside a parenthesised child do not
// split).
func splitTopLevel(s string) []ParamData {
	if s == "" {
		return nil
	}

	var out []ParamData

	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				node, _ := parseParamData(s[start:i])
				out = append(out, node)
				start = i + 1
			}
		}
	}

	node, _ := parseParamData(s[start:])
	out = append(out, node)

	return out
}
