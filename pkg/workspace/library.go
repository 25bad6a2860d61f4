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
package workspace

// MemberSource reads the text of a library member, given its bare name (no
// extension); libraries decide amongst themselves which file on disk that
// maps to (spec §4.6, "each library in the group is asked whether it holds
// a member with that name").
type MemberSource interface {
	// Read returns the member's source text, or ok=false if this library
	// does not hold it.
	Read(name string) (text []string, ok bool)
}

// cacheKey is the (library, id) pair the resolution cache is keyed by
// (spec §4.6, "results are cached by (library, id) so subsequent lookups
// are O(1)").
type cacheKey struct {
	library int
	name    string
}

// Resolver resolves COPY/macro member lookups against an ordered list of
// libraries, caching hits and misses alike.
type Resolver struct {
	libraries []MemberSource
	cache     map[cacheKey]cacheEntry
}

type cacheEntry struct {
	text  []string
	found bool
}

// NewResolver constructs a resolver over the given libraries, consulted in
// order (spec §4.6, "the first hit wins").
func NewResolver(libraries []MemberSource) *Resolver {
	return &Resolver{libraries: libraries, cache: make(map[cacheKey]cacheEntry)}
}

// Resolve looks up name, consulting the cache before any library.
func (r *Resolver) Resolve(name string) (text []string, libraryIndex int, ok bool) {
	for i, lib := range r.libraries {
		key := cacheKey{library: i, name: name}

		if e, cached := r.cache[key]; cached {
			if e.found {
				return e.text, i, true
			}

			continue
		}

		t, found := lib.Read(name)
		r.cache[key] = cacheEntry{text: t, found: found}

		if found {
			return t, i, true
		}
	}

	return nil, -1, false
}

// Invalidate drops every cached result for the given library, as a
// filesystem observer does when that library's directory listing changes
// (spec §4.6, "filesystem observers notify the cache when the underlying
// directory listing changes").
func (r *Resolver) Invalidate(libraryIndex int) {
	for key := range r.cache {
		if key.library == libraryIndex {
			delete(r.cache, key)
		}
	}
}
