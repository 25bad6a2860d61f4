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
	"os"
	"path/filepath"
	"strings"
)

// DirLibrary is a MemberSource backed by a directory on disk: a member
// named FOO resolves to the first file FOO.<ext> found among Extensions,
// falling back to a bare FOO with no extension (spec §4.6, "libs" entries
// naming a directory path plus macro_extensions).
type DirLibrary struct {
	Root       string
	Extensions []string
}

// NewDirLibrary constructs a DirLibrary rooted at dir, trying each of
// extensions (without the leading dot) in order before the bare filename.
func NewDirLibrary(dir string, extensions []string) *DirLibrary {
	return &DirLibrary{Root: dir, Extensions: extensions}
}

// Read implements MemberSource by reading name.<ext> (or bare name) from
// Root and splitting it into lines.
func (d *DirLibrary) Read(name string) ([]string, bool) {
	for _, candidate := range d.candidates(name) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}

		text := strings.ReplaceAll(string(data), "\r\n", "\n")

		return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), true
	}

	return nil, false
}

func (d *DirLibrary) candidates(name string) []string {
	out := make([]string, 0, len(d.Extensions)+1)

	for _, ext := range d.Extensions {
		ext = strings.TrimPrefix(ext, ".")
		out = append(out, filepath.Join(d.Root, name+"."+ext))
	}

	out = append(out, filepath.Join(d.Root, name))

	return out
}
