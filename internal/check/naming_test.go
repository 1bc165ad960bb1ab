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
package check

import (
	"testing"

	"github.com/veryl-lang/veryl-analyzer/internal/assert"
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

func TestDefaultNamingRulesFlagsBadModuleName(t *testing.T) {
	it := intern.New()
	tbl := symtab.New(it)

	tbl.Insert(symtab.Symbol{Token: token.Token{Text: it.InsertStr("BadModule")}, Kind: symtab.KindModule})
	tbl.Insert(symtab.Symbol{Token: token.Token{Text: it.InsertStr("good_module")}, Kind: symtab.KindModule})

	sink := diag.NewSink()
	CheckNaming(tbl, &ir.Ir{}, sink)

	assert.Equal(t, 1, len(sink.All()))
	assert.Equal(t, diag.InvalidIdentifier, sink.All()[0].Code)
}

func TestDefaultNamingRulesAcceptsUpperCamelStructs(t *testing.T) {
	it := intern.New()
	tbl := symtab.New(it)

	tbl.Insert(symtab.Symbol{Token: token.Token{Text: it.InsertStr("PacketHeader")}, Kind: symtab.KindStruct})

	sink := diag.NewSink()
	CheckNaming(tbl, &ir.Ir{}, sink)

	assert.Equal(t, 0, len(sink.All()))
}

func TestNamingCheckerSkipsKindsWithNoRule(t *testing.T) {
	it := intern.New()
	tbl := symtab.New(it)

	tbl.Insert(symtab.Symbol{Token: token.Token{Text: it.InsertStr("AnythingGoes")}, Kind: symtab.KindGenericParameter})

	sink := diag.NewSink()
	NamingChecker(DefaultNamingRules())(tbl, &ir.Ir{}, sink)

	assert.Equal(t, 0, len(sink.All()))
}
