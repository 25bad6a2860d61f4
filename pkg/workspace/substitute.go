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
	"strings"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
)

const placeholderPrefix = "${config:"

// Substitute replaces every `${config:KEY}` placeholder in text with
// settings[KEY] (spec §6: "Both JSON files support ${config:...}
// substitutions against a workspace-supplied settings object"). An
// unresolved placeholder is left in place and reported as W0007 against
// fileURI.
func Substitute(text string, settings map[string]string, fileURI string, diag *diagnostic.Bag) string {
	var b strings.Builder

	rest := text

	for {
		start := strings.Index(rest, placeholderPrefix)
		if start < 0 {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:start])

		afterPrefix := rest[start+len(placeholderPrefix):]

		end := strings.IndexByte(afterPrefix, '}')
		if end < 0 {
			b.WriteString(rest[start:])
			break
		}

		key := afterPrefix[:end]

		if v, ok := settings[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(placeholderPrefix + key + "}")

			if diag != nil {
				diag.Add(diagnostic.Warnf(diagnostic.CodeConfigPlaceholder, fileURI, source.Span{},
					"unresolved configuration placeholder ${config:%s}", key))
			}
		}

		rest = afterPrefix[end+1:]
	}

	return b.String()
}
