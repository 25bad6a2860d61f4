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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/engine"
	"github.com/open-mainframe/hlasm-language-server/pkg/macrocache"
	"github.com/open-mainframe/hlasm-language-server/pkg/termview"
	"github.com/open-mainframe/hlasm-language-server/pkg/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkLibraries accumulates one or more --library flags (spec §4.6's
// library-list configuration, taken from the command line rather than
// proc_grps.json for this simple batch entry point).
var checkLibraries libraryFlag

// libraryFlag is a repeatable flag registered directly against pflag
// (spf13/pflag), rather than through one of cobra's built-in slice flag
// types: each occurrence of --library is parsed as path[:ext1,ext2,...]
// and appended, mirroring how an individual proc_grps.json "libs" entry
// names a path plus macro_extensions.
type libraryFlag struct {
	libs []workspace.Library
}

func (l *libraryFlag) String() string {
	paths := make([]string, len(l.libs))
	for i, lib := range l.libs {
		paths[i] = lib.Path
	}

	return strings.Join(paths, ",")
}

func (l *libraryFlag) Set(raw string) error {
	path, extsField, hasExts := strings.Cut(raw, ":")

	lib := workspace.Library{Path: path}
	if hasExts && extsField != "" {
		lib.MacroExtensions = strings.Split(extsField, ",")
	}

	l.libs = append(l.libs, lib)

	return nil
}

func (l *libraryFlag) Type() string { return "library" }

// checkCmd analyzes one or more HLASM source files and reports diagnostics
// (spec §8, "the pipeline's output is the diagnostic bag's contents"),
// following the verbose/logrus-level convention of pkg/cmd/check.go.
var checkCmd = &cobra.Command{
	Use:   "check [flags] source_file...",
	Short: "Analyze HLASM source files and report diagnostics.",
	Long: `Run the analysis pipeline over one or more HLASM source files and
	print every diagnostic produced, the same way the language server's
	textDocument/publishDiagnostics would report them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		resolver := buildResolver(checkLibraries.libs)
		macros := macrocache.NewCache()
		exitCode := 0

		for _, filename := range args {
			data, err := os.ReadFile(filename)
			if err != nil {
				log.Errorln(err)
				exitCode = 1

				continue
			}

			p := engine.NewPipeline("file://"+filename, macros)
			p.Library = resolver

			diags := p.Run(string(data))
			if len(diags) == 0 {
				continue
			}

			fmt.Printf("%s:\n", filename)
			termview.PrintDiagnostics(diags)
			termview.PrintSummaryLine(diags)

			for _, d := range diags {
				if d.Severity == diagnostic.Error {
					exitCode = 1
				}
			}
		}

		os.Exit(exitCode)
	},
}

// buildResolver turns the --library flag's accumulated entries into a
// workspace.Resolver of directory-backed libraries, or nil if none were
// given (COPY then always fails to find its member, same as an empty
// proc_grps.json library list would).
func buildResolver(libs []workspace.Library) *workspace.Resolver {
	if len(libs) == 0 {
		return nil
	}

	sources := make([]workspace.MemberSource, len(libs))

	for i, lib := range libs {
		exts := lib.MacroExtensions
		if len(exts) == 0 {
			exts = []string{"hlasm", "asm", "mac", "cpy"}
		}

		sources[i] = workspace.NewDirLibrary(lib.Path, exts)
	}

	return workspace.NewResolver(sources)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().VarP(&checkLibraries, "library", "L",
		"library directory to search for COPY/macro members, as path[:ext1,ext2] (repeatable)")
}
