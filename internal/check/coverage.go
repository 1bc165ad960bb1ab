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
	"github.com/bits-and-blooms/bitset"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
)

// CheckAssignmentCoverage rebuilds, per procedural block, the write coverage
// that spec.md §4.F.5 describes (every if/if_reset branch OR'd together) and
// reports UncoveredBranch for a variable touched in some but not every
// sibling branch (in an always_comb block an if without an else counts an
// empty implicit else as a sibling, and a variable already fully written
// earlier in the same statement list is not reported), MissingResetStatement
// for an if_reset chain whose reset branch does not write exactly the same
// bits as its clocked branches, and UnassignVariable for a combinational
// process that leaves an output or variable only partially written. This is
// an independent pass: it
// does not require internal/lower to have retained a Process.Assigns table,
// though it is consistent with one when present (this rebuild arrives at the
// identical AssignTable for the same statement list).
//
// Every destination is recorded at element 0. A destination carrying an
// Index or Select is recorded as a maybe-write, since its reach is not
// resolved here, so it never counts toward full coverage; this checker does
// not flatten indexed array writes to their element offsets.
func CheckAssignmentCoverage(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink) {
	for _, comp := range irOut.Components {
		for i := range comp.Processes {
			proc := &comp.Processes[i]
			table := coverageOfStatements(comp, proc.Body, proc.Kind == ir.ProcAlwaysComb, sink, tbl.Interner)

			if proc.Kind == ir.ProcAlwaysComb {
				reportUnassignedOutputs(tbl.Interner, comp, table, sink, proc)
			}
		}
	}
}

func coverageOfStatements(comp *ir.Component, stmts []ir.Statement, comb bool, sink *diag.Sink,
	it *intern.Table) *ir.AssignTable {
	table := ir.NewAssignTable()

	for i := range stmts {
		s := &stmts[i]

		switch s.Kind {
		case ir.StmtAssign:
			recordAssign(table, s)
		case ir.StmtIf, ir.StmtIfReset:
			mergeBranches(comp, s, comb, table, sink, it)
		}
	}

	return table
}

func recordAssign(table *ir.AssignTable, s *ir.Statement) {
	for _, dst := range s.Dst {
		known := len(dst.Index) == 0 && len(dst.Select) == 0

		hi := uint(0)
		if dst.Width > 0 {
			hi = dst.Width - 1
		}

		table.RecordWrite(dst.Var, 0, 0, hi, known)
	}
}

func mergeBranches(comp *ir.Component, s *ir.Statement, comb bool, table *ir.AssignTable, sink *diag.Sink,
	it *intern.Table) {
	branchTables := make([]*ir.AssignTable, 0, len(s.Branches)+1)
	hasElse := false

	for _, br := range s.Branches {
		if br.Cond == nil {
			hasElse = true
		}

		branchTables = append(branchTables, coverageOfStatements(comp, br.Body, comb, sink, it))
	}

	// In combinational code an if without an else has an implicit else that
	// writes nothing.
	if comb && s.Kind == ir.StmtIf && !hasElse {
		branchTables = append(branchTables, ir.NewAssignTable())
		hasElse = true
	}

	merged := ir.MergeBranchesOr(branchTables)

	for v, vr := range comp.Variables {
		width := elemWidthOf(vr)

		for elem := range vr.Value {
			if hasElse && !table.IsFullyWritten(v, uint(elem), width) {
				if uncovered := ir.BranchUncovered(branchTables, v, uint(elem)); !uncovered.None() {
					sink.Warnf(diag.UncoveredBranch, s.Span, "%q is not assigned in every branch",
						varPathString(it, vr.Path))
				}
			}

			if s.Kind == ir.StmtIfReset && len(branchTables) > 0 {
				reset := branchTables[0].WrittenMask(v, uint(elem))

				clocked := bitset.New(0)
				for _, b := range branchTables[1:] {
					clocked = clocked.Union(b.WrittenMask(v, uint(elem)))
				}

				// spec.md §4.F.5: the reset branch's written bits must equal the
				// clocked branches' written bits exactly, not merely be a subset.
				if mismatch := reset.SymmetricDifference(clocked); !mismatch.None() {
					sink.Warnf(diag.MissingResetStatement, s.Span,
						"%q is not assigned identically in the reset and clocked branches", varPathString(it, vr.Path))
				}
			}

			if merged.IsFullyWritten(v, uint(elem), width) {
				hi := uint(0)
				if width > 0 {
					hi = width - 1
				}

				table.RecordWrite(v, uint(elem), 0, hi, true)
			}
		}
	}
}

func elemWidthOf(v *ir.Variable) uint {
	if w := v.Type.Width.Total(); w != nil {
		return *w
	}

	return 0
}

func reportUnassignedOutputs(it *intern.Table, comp *ir.Component, table *ir.AssignTable, sink *diag.Sink,
	proc *ir.Process) {
	for v, vr := range comp.Variables {
		if vr.Kind != ir.VarOutput && vr.Kind != ir.VarVariable {
			continue
		}

		width := elemWidthOf(vr)

		for elem := range vr.Value {
			if !table.IsFullyWritten(v, uint(elem), width) {
				sink.Warnf(diag.UnassignVariable, proc.Span, "%q is not assigned on every path through this block",
					varPathString(it, vr.Path))
			}
		}
	}
}
