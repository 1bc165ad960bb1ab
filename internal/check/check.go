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

// Package check implements the independent semantic passes of spec.md §4.G:
// prototype conformance, clock-domain separation, alias-target validity,
// generic-bound satisfaction, naming conventions, enum-variant legality,
// `unsafe` block keyword whitelisting, assignment coverage, and
// referring-before-definition. Every checker is a single pass over
// (*symtab.Table, *ir.Ir) that reports into a shared *diag.Sink and never
// aborts early, matching the teacher's preprocessor-pass style of always
// appending to an error slice and continuing.
package check

import (
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
)

// Checker is the common shape of every pass in this package, so a driver can
// hold a slice of them and run each in turn.
type Checker func(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink)

// All lists every checker in this package, in the order spec.md §4.G names
// them. A caller (pkg/analyzer) runs these after lowering.
var All = []Checker{
	CheckProtoConformance,
	CheckClockDomains,
	CheckAliasTargets,
	CheckGenericBounds,
	CheckNaming,
	CheckEnums,
	CheckUnsafeBlocks,
	CheckVarRef,
	CheckAssignmentCoverage,
}

// Run executes every checker in All against tbl/irOut, pushing into sink.
func Run(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink) {
	for _, c := range All {
		c(tbl, irOut, sink)
	}
}
