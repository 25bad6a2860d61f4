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
	"context"
	"io"
	"os"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/engine"
	"github.com/open-mainframe/hlasm-language-server/pkg/lsp"
	"github.com/open-mainframe/hlasm-language-server/pkg/macrocache"
	"github.com/open-mainframe/hlasm-language-server/pkg/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

// serveLibraries is serve's analogue of checkCmd's --library flag: the
// directories the running language server resolves COPY/macro members
// against (spec §4.6), supplementing whatever proc_grps.json later
// contributes once workspace/configuration support is wired into a client.
var serveLibraries libraryFlag

// stdio adapts process stdin/stdout into the io.ReadWriteCloser jsonrpc2
// streams over, the same transport every stdio-mode LSP server uses.
type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }

// serveCmd runs the language server over stdio (spec §6: "a jsonrpc2.Conn
// wrapping stdin/stdout"), sharing one macro cache and one library resolver
// across every document the client opens.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HLASM language server over stdio.",
	Long:  `Speak LSP over stdin/stdout until the client disconnects or sends exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Errorln(err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		macros := macrocache.NewCache()
		resolver := buildResolver(serveLibraries.libs)

		analyze := func(uri, text string) []diagnostic.Diagnostic {
			p := engine.NewPipeline(uri, macros)
			p.Library = resolver

			return p.Run(text)
		}

		stream := jsonrpc2.NewStream(stdio{Reader: os.Stdin, Writer: os.Stdout})
		conn := jsonrpc2.NewConn(stream)
		server := lsp.NewServer(conn, logger, analyze)
		server.Workspace = &workspace.Config{}

		ctx := context.Background()
		conn.Go(ctx, server.Handle)

		<-conn.Done()

		if err := conn.Err(); err != nil {
			log.Errorln(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().VarP(&serveLibraries, "library", "L",
		"library directory to search for COPY/macro members, as path[:ext1,ext2] (repeatable)")
}
