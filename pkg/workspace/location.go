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

import (
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"
)

// Location is the resource-location value type spec §4.6 asks for: a
// canonical `file://` form plus the displayable local path it came from,
// built on go.lsp.dev/uri (the same URI type the LSP transport layer
// exchanges in textDocument notifications, so a Location round-trips
// through pkg/lsp without reparsing).
type Location struct {
	uri uri.URI
}

// NewLocation constructs a Location from a local filesystem path,
// normalising it (drive-letter case folding, slash direction) the way
// go.lsp.dev/uri.File does.
func NewLocation(path string) Location {
	return Location{uri: uri.File(path)}
}

// ParseLocation parses an existing URI string, e.g. one received over the
// LSP transport.
func ParseLocation(raw string) (Location, error) {
	u, err := uri.Parse(raw)
	if err != nil {
		return Location{}, err
	}

	return Location{uri: u}, nil
}

// String returns the canonical URI form.
func (l Location) String() string {
	return string(l.uri)
}

// Filename returns the displayable local path (spec §4.6, "conversion to a
// displayable local path").
func (l Location) Filename() string {
	return l.uri.Filename()
}

// Join resolves a relative reference against this location (spec §4.6,
// "joining with relative references (RFC 3986 §5)"), used to locate a COPY
// member or AINSERT target relative to the file that named it.
func (l Location) Join(relative string) Location {
	if filepath.IsAbs(relative) {
		return NewLocation(relative)
	}

	return NewLocation(filepath.Join(filepath.Dir(l.Filename()), relative))
}

// IsLocal reports whether this location denotes a path reachable on the
// local filesystem rather than some other URI scheme, e.g. the synthetic
// locations the AINSERT/model-statement expansion machinery mints for
// generated text (original resource_location::is_local()).
func (l Location) IsLocal() bool {
	return strings.HasPrefix(string(l.uri), "file:")
}

// Parent returns the location one directory level up (original
// resource_location::parent()).
func (l Location) Parent() Location {
	return NewLocation(filepath.Dir(l.Filename()))
}

// ReplaceFilename returns this location with its final path segment
// replaced by name (original resource_location::replace_filename()), used
// when a B4G bridge mapping or program-configuration override substitutes
// a different member name at the same directory.
func (l Location) ReplaceFilename(name string) Location {
	return NewLocation(filepath.Join(filepath.Dir(l.Filename()), name))
}

// ToPresentable returns the form most natural for displaying this location
// to a user: the local filesystem path when IsLocal, the full URI
// otherwise (spec §4.6, "conversion to a displayable local path"; original
// resource_location::to_presentable).
func (l Location) ToPresentable() string {
	if l.IsLocal() {
		return l.Filename()
	}

	return l.String()
}

// LexicallyNormal collapses "." and ".." segments and duplicate separators
// in this location's path without touching the filesystem or resolving
// symlinks (spec §8, "resource_location::lexically_normal is idempotent";
// original resource_location::lexically_normal). Normalizing an
// already-normal location returns an equal location.
func (l Location) LexicallyNormal() Location {
	return NewLocation(filepath.Clean(l.Filename()))
}

// LexicallyRelative computes the relative filesystem reference that, joined
// back onto base, reproduces this location (spec §8's round-trip property:
// `join(normal(a), relative_to(normal(a), b)) == normal(b)`; original
// resource_location::lexically_relative). ok is false when the two
// locations resolve to different filesystem roots (e.g. different Windows
// drive letters) and no relative reference can express the relationship.
func (l Location) LexicallyRelative(base Location) (rel string, ok bool) {
	baseDir := filepath.Dir(base.Filename())

	rel, err := filepath.Rel(baseDir, l.Filename())
	if err != nil {
		return "", false
	}

	return filepath.ToSlash(rel), true
}
