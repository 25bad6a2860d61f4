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
package context_test

import (
	"testing"

	"github.com/open-mainframe/hlasm-language-server/pkg/context"
	"github.com/open-mainframe/hlasm-language-server/pkg/id"
	"github.com/stretchr/testify/assert"
)

func TestGlobalsShareAcrossDeclarations(t *testing.T) {
	pool := id.NewPool()
	globals := context.NewGlobals()
	name := pool.Intern("&GCOUNT")

	first := globals.Declare(name, context.SetA, true)
	first.Set(1, int64(7))

	second := globals.Declare(name, context.SetA, true)
	assert.Same(t, first, second, "a second GBLA of the same name binds to the existing global")
	assert.Equal(t, int64(7), second.GetA())
}
