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
package lsp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/open-mainframe/hlasm-language-server/pkg/diagnostic"
	"github.com/open-mainframe/hlasm-language-server/pkg/workspace"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/pkg/xcontext"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Analyze is supplied by the caller (the command layer wiring context,
// dependency, and instr/* together) and runs one full analysis pass over a
// document's text, returning the diagnostics produced.
type Analyze func(uri, text string) []diagnostic.Diagnostic

// Server implements the LSP method surface of spec §6 over a jsonrpc2.Conn.
// One Server serves one client connection; workspace configuration
// (processor groups/program mappings) is shared, read-mostly state per
// spec §5's "Shared-resource policy".
type Server struct {
	Logger    *zap.Logger
	Docs      *DocumentStore
	Workspace *workspace.Config
	Analyze   Analyze

	mu       sync.Mutex
	conn     jsonrpc2.Conn
	shutdown bool
}

// NewServer constructs a Server bound to conn.
func NewServer(conn jsonrpc2.Conn, logger *zap.Logger, analyze Analyze) *Server {
	return &Server{
		Logger:  logger,
		Docs:    NewDocumentStore(),
		Analyze: analyze,
		conn:    conn,
	}
}

// Handle implements jsonrpc2.Handler, dispatching by method name (spec §6:
// "Requests not in this set are rejected with 'unknown method'").
func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()

		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		return s.conn.Close()
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, req)
	case protocol.MethodWorkspaceDidChangeConfiguration:
		return reply(ctx, nil, nil)
	case protocol.MethodWorkspaceDidChangeWatchedFiles:
		return reply(ctx, nil, nil)
	default:
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.MethodNotFound, "unknown method: "+req.Method()))
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result := protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: "hlasm-language-server"},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncKindFull,
		},
	}

	return reply(ctx, result, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := string(params.TextDocument.URI)
	s.Docs.Open(uri, params.TextDocument.Text)

	// Detach: publishing must outlive this request's context, which the
	// client may cancel the instant it gets its didOpen response back.
	s.publish(xcontext.Detach(ctx), uri)

	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) > 0 {
		s.Docs.Change(uri, params.ContentChanges[len(params.ContentChanges)-1].Text)
	}

	s.publish(xcontext.Detach(ctx), uri)

	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := string(params.TextDocument.URI)

	// An empty diagnostics array clears whatever was previously published
	// for this file before it drops out of the document store (spec §6).
	_ = s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics,
		protocol.PublishDiagnosticsParams{URI: protocol.DocumentURI(uri)})

	s.Docs.Close(uri)

	return reply(ctx, nil, nil)
}

// publish runs Analyze over the current text of uri and notifies the
// client with the resulting diagnostics (spec §6,
// "textDocument/publishDiagnostics").
func (s *Server) publish(ctx context.Context, uri string) {
	file := s.Docs.Get(uri)
	if file == nil || s.Analyze == nil {
		return
	}

	diags := s.Analyze(uri, string(file.Contents()))
	params := ToPublishParams(uri, diags, file)

	if err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, params); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to publish diagnostics", zap.String("uri", uri), zap.Error(err))
	}
}

// Telemetry sends a telemetry/event notification (spec §6: "{method_name,
// properties, measurements: {duration_ms, error_count, warning_count,
// ...}}").
func (s *Server) Telemetry(ctx context.Context, methodName string, properties map[string]any, measurements map[string]float64) {
	event := map[string]any{
		"method_name":  methodName,
		"properties":   properties,
		"measurements": measurements,
	}

	if err := s.conn.Notify(ctx, "telemetry/event", event); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to send telemetry", zap.Error(err))
	}
}
