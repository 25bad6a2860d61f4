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

// Package workspace implements the workspace configuration and library
// resolver (spec §4.6): proc_grps.json/pgm_conf.json/.bridge.json loading,
// program-to-processor-group resolution, and a library resolver cached by
// (library, id). JSON decoding uses segmentio/encoding/json, the same
// high-throughput decoder family the teacher reaches for wherever it
// handles structured config or trace data, generalised here from trace
// column decoding to workspace configuration decoding.
package workspace

import (
	"github.com/segmentio/encoding/json"
)

// Library is one entry of a processor group's library list (spec §6,
// ".hlasmplugin/proc_grps.json", "libs").
type Library struct {
	Path                string   `json:"path"`
	Optional            bool     `json:"optional"`
	MacroExtensions     []string `json:"macro_extensions"`
	PreferAlternateRoot bool     `json:"prefer_alternate_root"`
}

// UnmarshalJSON accepts either a bare path string or the full object form
// (spec §6: `STRING | { "path": STRING, "optional": BOOL, ... }`).
func (l *Library) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*l = Library{Path: path}
		return nil
	}

	type alias Library

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*l = Library(a)

	return nil
}

// ProcessorGroup is one `pgroups[]` entry (spec §6).
type ProcessorGroup struct {
	Name         string          `json:"name"`
	Libs         []Library       `json:"libs"`
	AsmOptions   map[string]any  `json:"asm_options"`
	Preprocessor json.RawMessage `json:"preprocessor"`
}

// ProcGrps is the decoded form of `.hlasmplugin/proc_grps.json` (spec §6).
type ProcGrps struct {
	Pgroups []ProcessorGroup `json:"pgroups"`
}

// LoadProcGrps decodes a proc_grps.json document.
func LoadProcGrps(data []byte) (ProcGrps, error) {
	var pg ProcGrps
	err := json.Unmarshal(data, &pg)

	return pg, err
}

// ProgramMapping is one `pgms[]` entry (spec §6); Program may be an exact
// path or a glob pattern.
type ProgramMapping struct {
	Program    string         `json:"program"`
	Pgroup     string         `json:"pgroup"`
	AsmOptions map[string]any `json:"asm_options"`
}

// PgmConf is the decoded form of `.hlasmplugin/pgm_conf.json` (spec §6).
type PgmConf struct {
	Pgms                     []ProgramMapping `json:"pgms"`
	DiagnosticsSuppressLimit int              `json:"diagnosticsSuppressLimit"`
}

// LoadPgmConf decodes a pgm_conf.json document.
func LoadPgmConf(data []byte) (PgmConf, error) {
	var pc PgmConf
	err := json.Unmarshal(data, &pc)

	return pc, err
}

// BridgeElement is one `.bridge.json` `elements` entry (spec §6, "B4G").
type BridgeElement struct {
	ProcessorGroup string `json:"processorGroup"`
}

// Bridge is the decoded form of `.bridge.json` (spec §6).
type Bridge struct {
	Elements             map[string]BridgeElement `json:"elements"`
	DefaultProcessorGroup string                   `json:"defaultProcessorGroup"`
	FileExtension        string                    `json:"fileExtension"`
}

// LoadBridge decodes a .bridge.json document.
func LoadBridge(data []byte) (Bridge, error) {
	var b Bridge
	err := json.Unmarshal(data, &b)

	return b, err
}
