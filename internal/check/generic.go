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
	"github.com/veryl-lang/veryl-analyzer/internal/types"
)

// CheckGenericBounds checks the arguments bound to generic parameters
// against those parameters' declared bounds (spec.md §4.G): a bound of
// `Proto` requires the bound symbol to itself declare conformance to that
// same prototype. A bound of `type` is not checked: any bound symbol is
// accepted for it.
func CheckGenericBounds(tbl *symtab.Table, _ *ir.Ir, sink *diag.Sink) {
	for _, id := range tbl.All() {
		inst := tbl.Get(id)
		if inst.Kind != symtab.KindGenericInstance {
			continue
		}

		generic := tbl.Get(inst.GenericOf)

		formalBound := make(map[string]*symtab.Symbol, len(generic.Generics))
		for _, gid := range generic.Generics {
			gp := tbl.Get(gid)
			formalBound[gp.Name(tbl.Interner)] = gp
		}

		for _, b := range inst.Bindings {
			formalName := tbl.Interner.GetStr(b.Formal)

			bound, ok := formalBound[formalName]
			if !ok {
				continue
			}

			actual := tbl.Get(b.Bound)
			if !satisfiesGenericBound(bound, actual) {
				sink.Errorf(diag.UnresolvableGenericArgument, token.NewRange(inst.Token),
					"generic argument %q bound to parameter %q does not satisfy its declared bound",
					actual.Name(tbl.Interner), formalName)
			}
		}
	}
}

// satisfiesGenericBound reports whether actual is a legal argument for a
// generic parameter declared with bound's constraint.
func satisfiesGenericBound(bound, actual *symtab.Symbol) bool {
	if bound.Type.Kind == types.TypeKind {
		return true
	}

	if bound.HasProto {
		return actual.HasProto && actual.ProtoTarget == bound.ProtoTarget
	}

	return true
}
