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

// Package id implements the interned identifier pool used throughout the
// analyzer.  An Id is a small value type: strings of at most inlineCap bytes
// are stored directly inside the value, longer strings are interned once into
// an owned Pool and the Id keeps a pointer to the pool's copy.  Equality and
// hashing agree regardless of which representation was used to construct the
// Id, which is essential because a Pool and a bare literal can both produce
// an Id for the same underlying text (spec §4.1, invariant 1).
package id

import (
	"hash/fnv"
)

// inlineCap is the largest string length stored directly inside an Id without
// going through the pool.  HLASM ordinary symbols are at most 63 characters,
// but the overwhelming majority of identifiers seen in practice - opcodes,
// register names, short labels - fit comfortably under 16 bytes. With the
// 2-byte length, this inline buffer and the pool pointer, an Id occupies 32
// bytes (four machine words) on a 64-bit platform.
const inlineCap = 15

// Id is an interned identifier.  The zero Id is the empty string.
type Id struct {
	length uint16
	inline [inlineCap]byte
	// long points at the pool's owned copy of the string when length exceeds
	// inlineCap; nil otherwise. Two Ids are equal iff their text is equal,
	// never by comparing pointers, since distinct pools may separately intern
	// the same string (e.g. macro parameter names reused across contexts).
	long *string
}

// Len returns the number of bytes in the identifier.
func (i Id) Len() int {
	return int(i.length)
}

func (i Id) isInline() bool {
	return i.long == nil
}

// String reconstructs the textual form of this identifier.
func (i Id) String() string {
	if i.long != nil {
		return *i.long
	}

	return string(i.inline[:i.length])
}

// Equals reports whether i and o denote the same identifier text, agreeing
// with Hash regardless of which representation (inline or pool-backed)
// either side was constructed through.
func (i Id) Equals(o Id) bool {
	if i.length != o.length {
		return false
	}

	if i.isInline() && o.isInline() {
		return i.inline == o.inline
	}

	return i.String() == o.String()
}

// Hash computes a byte hash of the identifier's text, as required by spec
// §4.1 / §9 ("keep the Id value type small ... use direct byte comparison")
// - computed the same way regardless of storage form, so inline and
// pool-backed Ids for equal strings always hash equal. Go's built-in `==`
// is not a substitute for Equals/Hash here: two distinct Pools that each
// intern the same long string produce Ids whose `long` pointers differ, so
// `==` would wrongly report them unequal even though Equals (and every
// caller that cares about identifier identity) treats them as the same
// symbol.
func (i Id) Hash() uint64 {
	h := fnv.New64a()

	if i.isInline() {
		_, _ = h.Write(i.inline[:i.length])
	} else {
		_, _ = h.Write([]byte(*i.long))
	}

	return h.Sum64()
}

// Pool interns arbitrary-length strings for a single Context.  Two contexts
// never share a Pool (spec §5, "shared-resource policy"): each Context owns
// its pool outright.
type Pool struct {
	strings map[string]*string
}

// NewPool constructs an empty identifier pool.
func NewPool() *Pool {
	return &Pool{strings: make(map[string]*string)}
}

// Intern returns the Id for the given string, interning it if this is the
// first time the pool has seen it.  Short strings never touch the pool's
// storage at all - they are returned as pure inline Ids, which is what makes
// equality/hashing agree regardless of whether a string passed through
// Intern or was constructed directly via New.
func (p *Pool) Intern(s string) Id {
	if len(s) <= inlineCap {
		return newInline(s)
	}

	owned, ok := p.strings[s]
	if !ok {
		copied := s
		owned = &copied
		p.strings[s] = owned
	}

	return Id{length: uint16(len(s)), long: owned}
}

// New constructs an Id directly from a string without requiring a Pool. If
// the string exceeds inlineCap in length, it panics: callers working with
// strings that might be long must go through a Pool so that equality/hashing
// stay consistent across the program (spec §4.1).
func New(s string) Id {
	if len(s) > inlineCap {
		panic("id: string exceeds inline capacity; intern via a Pool")
	}

	return newInline(s)
}

func newInline(s string) Id {
	var buf [inlineCap]byte

	copy(buf[:], s)

	return Id{length: uint16(len(s)), inline: buf}
}
