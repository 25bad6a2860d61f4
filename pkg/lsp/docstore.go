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
	"sync"

	"github.com/open-mainframe/hlasm-language-server/pkg/util/source"
)

// DocumentStore tracks the text of every open document by URI, so a
// Diagnostic's byte-offset Span can be translated into an LSP line/
// character Range at publish time (spec §6, "textDocument/didOpen|
// didChange|didClose").
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*source.File
}

// NewDocumentStore constructs an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*source.File)}
}

// Open records a newly opened document's text.
func (d *DocumentStore) Open(uri, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.docs[uri] = source.NewSourceFile(uri, []byte(text))
}

// Change replaces a document's text wholesale, matching a full-content
// `textDocument/didChange` sync (the only sync kind this analyzer
// supports, per spec §9's "no partial-result contract" posture carried
// over to incremental edits).
func (d *DocumentStore) Change(uri, text string) {
	d.Open(uri, text)
}

// Close forgets a document; its last-published diagnostics are cleared by
// the caller publishing an empty diagnostic array before calling Close.
func (d *DocumentStore) Close(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.docs, uri)
}

// Get returns the current text of an open document, or nil if it is not
// open.
func (d *DocumentStore) Get(uri string) *source.File {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.docs[uri]
}
