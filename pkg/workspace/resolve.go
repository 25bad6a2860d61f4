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
)

// NoProc is the sentinel processor-group name that disables processing for
// a file entirely (spec §4.6, "the default program group (*NOPROC*)
// disables processing").
const NoProc = "*NOPROC*"

// Config bundles one workspace's decoded configuration documents, plus a
// settings object ${config:...} substitutions are resolved against (spec
// §6).
type Config struct {
	ProcGrps ProcGrps
	PgmConf  PgmConf
	Bridge   Bridge
	Settings map[string]string
}

// ResolveGroup implements spec §4.6's per-file resolution order: exact
// pgm_conf entry, then wildcard pgm_conf entry, then the B4G bridge mapping
// for the file's directory, then the bridge's (or workspace's) default
// group. Returns NoProc if nothing matches.
func (c Config) ResolveGroup(filePath string) string {
	base := filepath.Base(filePath)

	for _, m := range c.PgmConf.Pgms {
		if !strings.ContainsAny(m.Program, "*?") && m.Program == base {
			return m.Pgroup
		}
	}

	for _, m := range c.PgmConf.Pgms {
		if strings.ContainsAny(m.Program, "*?") {
			if ok, _ := filepath.Match(m.Program, base); ok {
				return m.Pgroup
			}
		}
	}

	if len(c.Bridge.Elements) > 0 {
		if el, ok := c.Bridge.Elements[base]; ok {
			return el.ProcessorGroup
		}

		if c.Bridge.DefaultProcessorGroup != "" {
			return c.Bridge.DefaultProcessorGroup
		}
	}

	return NoProc
}

// Group looks up a processor group by name.
func (c Config) Group(name string) (ProcessorGroup, bool) {
	for _, g := range c.ProcGrps.Pgroups {
		if g.Name == name {
			return g, true
		}
	}

	return ProcessorGroup{}, false
}
