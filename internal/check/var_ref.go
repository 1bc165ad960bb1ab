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
	"strings"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
)

// CheckVarRef implements the supplemented check_var_ref pass (spec.md §9):
// a Variable-kind signal read before any write reaches it is
// ReferringBeforeDefinition. Two independent sources are consulted --
// per-block AssignTable.UnwrittenReads (bit-exact, scoped to a single
// procedural block) when lowering retained one on the Process, and the
// global VarRefs() log (declaration-order, whole-compilation) as a coarser
// fallback for symbols no block-level table covers.
func CheckVarRef(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink) {
	checkUnwrittenReadsPerBlock(tbl, irOut, sink)
	checkVarRefLog(tbl, sink)
}

func checkUnwrittenReadsPerBlock(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink) {
	for _, comp := range irOut.Components {
		for i := range comp.Processes {
			proc := &comp.Processes[i]
			if proc.Assigns == nil {
				continue
			}

			for varID, v := range comp.Variables {
				if v.Kind != ir.VarVariable {
					continue
				}

				for elem := range v.Value {
					unwritten := proc.Assigns.UnwrittenReads(varID, uint(elem))
					if len(unwritten) == 0 {
						continue
					}

					sink.Errorf(diag.ReferringBeforeDefinition, proc.Span,
						"%q is read before any write reaches it within this block",
						varPathString(tbl.Interner, v.Path))
				}
			}
		}
	}
}

func varPathString(it *intern.Table, path ir.VarPath) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = it.GetStr(id)
	}

	return strings.Join(parts, ".")
}

// checkVarRefLog walks the global variable-reference log in record order,
// flagging a read of a Variable-kind symbol for which no earlier write of
// the same symbol appears in the log.
func checkVarRefLog(tbl *symtab.Table, sink *diag.Sink) {
	written := make(map[symtab.ID]bool)

	for _, ref := range tbl.VarRefs() {
		if ref.Write {
			written[ref.Variable] = true
			continue
		}

		sym, ok := tbl.TryGet(ref.Variable)
		if !ok || sym.Kind != symtab.KindVariable {
			continue
		}

		if !written[ref.Variable] {
			sink.Errorf(diag.ReferringBeforeDefinition, ref.Span,
				"%q is read before any write reaches it", sym.Name(tbl.Interner))
		}
	}
}
