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
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// protoAliasTarget is the Kind a proto_alias of this kind must resolve to.
func protoAliasTarget(k symtab.Kind) (symtab.Kind, bool) {
	switch k {
	case symtab.KindProtoAliasModule:
		return symtab.KindProtoModule, true
	case symtab.KindProtoAliasInterface:
		return symtab.KindProtoInterface, true
	case symtab.KindProtoAliasPackage:
		return symtab.KindProtoPackage, true
	default:
		return 0, false
	}
}

// CheckAliasTargets validates that a `proto_alias`'s resolved target is
// itself a prototype of the matching kind (spec.md §4.G): a
// `proto_alias module Foo = Bar;` where Bar is a concrete module (not a
// `proto module`) is reported the same way a mismatched proto-conformance
// member is (spec.md §4.D's "Aliases: resolved target must point to the same
// proto id" comparison reuses this taxonomy).
func CheckAliasTargets(tbl *symtab.Table, _ *ir.Ir, sink *diag.Sink) {
	for _, id := range tbl.All() {
		sym := tbl.Get(id)

		want, isProtoAlias := protoAliasTarget(sym.Kind)
		if !isProtoAlias || !sym.HasAlias {
			continue
		}

		target := tbl.Get(sym.AliasTarget)
		if target.Kind != want {
			sink.IncompatProtof(diag.Incompatible, diag.ProtoAlias, sym.Name(tbl.Interner),
				"alias target %q is a %s, not a %s", token.NewRange(sym.Token),
				target.Name(tbl.Interner), target.Kind, want)
		}
	}
}
