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

	"github.com/open-mainframe/hlasm-language-server/pkg/engine"
	"github.com/open-mainframe/hlasm-language-server/pkg/macrocache"
	"github.com/open-mainframe/hlasm-language-server/pkg/termview"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// debugLibraries mirrors checkCmd's --library flag for debugCmd, since a
// COPY member library resolver is just as relevant when inspecting one
// file's stacks as when batch-checking several (spec §4.6).
var debugLibraries libraryFlag

// debugCmd dumps one source file's processing/source/copy stacks plus its
// diagnostics at end of analysis, for inspecting how the engine nested
// macros, copies and AINSERT buffers (spec §3: "Processing stack", "Source
// stack", "Copy stack").
var debugCmd = &cobra.Command{
	Use:   "debug [flags] source_file",
	Short: "Show the final processing/source/copy stacks for one HLASM file.",
	Long: `Run the analysis pipeline over exactly one HLASM source file and print
	its processing stack, source stack and copy stack as they stand at the
	end of the run, followed by every diagnostic produced.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			log.Errorln(err)
			os.Exit(1)
		}

		p := engine.NewPipeline("file://"+filename, macrocache.NewCache())
		p.Library = buildResolver(debugLibraries.libs)

		diags := p.Run(string(data))

		fmt.Println("Processing stack:")
		termview.PrintProcessingStack(p.Ctx.Processing)
		fmt.Println("Source stack:")
		termview.PrintSourceStack(p.Ctx.Source)
		fmt.Println("Copy stack:")
		termview.PrintCopyStack(p.Ctx.Copy)

		fmt.Println("Diagnostics:")
		termview.PrintDiagnostics(diags)
		termview.PrintSummaryLine(diags)
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().VarP(&debugLibraries, "library", "L",
		"library directory to search for COPY/macro members, as path[:ext1,ext2] (repeatable)")
}
