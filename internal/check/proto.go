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
)

// CheckProtoConformance compares every impl declaring `for Proto` against the
// prototype it names (spec.md §4.D/§4.G), delegating the actual member-by-
// member comparison to symtab.Table.CheckProto.
func CheckProtoConformance(tbl *symtab.Table, _ *ir.Ir, sink *diag.Sink) {
	for _, id := range tbl.All() {
		sym := tbl.Get(id)
		if !sym.HasProto {
			continue
		}

		tbl.CheckProto(sym.ProtoTarget, id, sink)
	}
}
