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
package lsp_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/lsp"
	"github.com/stretchr/testify/assert"
)

func TestDocumentStoreOpenThenGet(t *testing.T) {
	store := lsp.NewDocumentStore()
	store.Open("file:///a.asm", "LABEL DS F\n")

	file := store.Get("file:///a.asm")
	assert.NotNil(t, file)
	assert.Equal(t, "LABEL DS F\n", string(file.Contents()))
}

func TestDocumentStoreChangeReplacesText(t *testing.T) {
	store := lsp.NewDocumentStore()
	store.Open("file:///a.asm", "FIRST DS F\n")
	store.Change("file:///a.asm", "SECOND DS F\n")

	assert.Equal(t, "SECOND DS F\n", string(store.Get("file:///a.asm").Contents()))
}

func TestDocumentStoreCloseForgetsDocument(t *testing.T) {
	store := lsp.NewDocumentStore()
	store.Open("file:///a.asm", "LABEL DS F\n")
	store.Close("file:///a.asm")

	assert.Nil(t, store.Get("file:///a.asm"))
}

func TestDocumentStoreGetUnknownReturnsNil(t *testing.T) {
	store := lsp.NewDocumentStore()
	assert.Nil(t, store.Get("file:///missing.asm"))
}
