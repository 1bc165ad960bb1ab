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
	"github.com/sirupsen/logrus"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/eval"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// CheckClockDomains implements spec.md §4.G's second bullet: for every
// expression node where two sub-expressions each carry an explicit clock
// domain (Comptime.HasDomain), the two domain tokens must be identical,
// otherwise MismatchClockDomain. A domain reaching an opaque `$sv::` call's
// argument is never checked against anything -- that escape hatch is
// permissive by spec.md §9's explicit instruction, but the permissive path
// is logged at Debug so a silent pass is still observable.
func CheckClockDomains(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink) {
	for _, comp := range irOut.Components {
		for i := range comp.Processes {
			walkStatements(tbl, comp.Processes[i].Body, sink)
		}

		for _, fn := range comp.Functions {
			walkStatements(tbl, fn.Body, sink)
		}
	}
}

func walkStatements(tbl *symtab.Table, stmts []ir.Statement, sink *diag.Sink) {
	for i := range stmts {
		s := &stmts[i]

		if s.Expr != nil {
			walkExpr(tbl, s.Expr, sink)
		}

		for j := range s.Branches {
			br := &s.Branches[j]
			if br.Cond != nil {
				walkExpr(tbl, br.Cond, sink)
			}

			walkStatements(tbl, br.Body, sink)
		}

		if s.Call != nil {
			walkCallArgs(tbl, s.Call, sink)
		}
	}
}

func walkCallArgs(tbl *symtab.Table, call *ir.Call, sink *diag.Sink) {
	name := tbl.Interner.GetStr(call.Name)
	if eval.IsSVQualified(name) {
		logrus.WithField("call", name).Debug("clock-domain check skipped for opaque $sv:: call argument")
		return
	}

	for k := range call.Args {
		walkExpr(tbl, &call.Args[k], sink)
	}
}

// walkExpr recurses into e's sub-expressions, reporting MismatchClockDomain
// for any pair that each declare a domain but disagree, and returns e's own
// Comptime so a caller one level up can compare it against a sibling.
func walkExpr(tbl *symtab.Table, e *ir.Expression, sink *diag.Sink) ir.Comptime {
	switch e.Kind {
	case ir.ExprTerm:
		if e.Term != nil {
			walkFactor(tbl, e.Term, sink)
		}
	case ir.ExprUnary:
		if e.Operand != nil {
			walkExpr(tbl, e.Operand, sink)
		}
	case ir.ExprBinary:
		if e.Left != nil && e.Right != nil {
			l := walkExpr(tbl, e.Left, sink)
			r := walkExpr(tbl, e.Right, sink)
			checkDomainPair(sink, l, r, e.Span)
		}
	case ir.ExprTernary:
		if e.Cond != nil {
			walkExpr(tbl, e.Cond, sink)
		}

		if e.True != nil && e.False != nil {
			t := walkExpr(tbl, e.True, sink)
			f := walkExpr(tbl, e.False, sink)
			checkDomainPair(sink, t, f, e.Span)
		}
	case ir.ExprConcatenation:
		comps := make([]ir.Comptime, 0, len(e.Concat))

		for k := range e.Concat {
			comps = append(comps, walkExpr(tbl, &e.Concat[k].Expr, sink))

			if e.Concat[k].Repeat != nil {
				walkExpr(tbl, e.Concat[k].Repeat, sink)
			}
		}

		checkDomainSet(sink, comps, e.Span)
	case ir.ExprArrayLiteral:
		comps := make([]ir.Comptime, 0, len(e.Array))

		for k := range e.Array {
			comps = append(comps, walkExpr(tbl, &e.Array[k], sink))
		}

		checkDomainSet(sink, comps, e.Span)
	case ir.ExprStructConstructor:
		comps := make([]ir.Comptime, 0, len(e.Fields))

		for k := range e.Fields {
			comps = append(comps, walkExpr(tbl, &e.Fields[k].Expr, sink))
		}

		checkDomainSet(sink, comps, e.Span)
	}

	return e.Comptime
}

func walkFactor(tbl *symtab.Table, f *ir.Factor, sink *diag.Sink) {
	for k := range f.Index {
		walkExpr(tbl, &f.Index[k].Expr, sink)

		if f.Index[k].End != nil {
			walkExpr(tbl, f.Index[k].End, sink)
		}
	}

	for k := range f.Select {
		walkExpr(tbl, &f.Select[k].Expr, sink)

		if f.Select[k].End != nil {
			walkExpr(tbl, f.Select[k].End, sink)
		}
	}

	if f.Call != nil {
		walkCallArgs(tbl, f.Call, sink)
	}
}

func checkDomainPair(sink *diag.Sink, l, r ir.Comptime, span token.Range) {
	if !l.HasDomain || !r.HasDomain {
		return
	}

	if l.ClockDomain != r.ClockDomain {
		sink.Errorf(diag.MismatchClockDomain, span,
			"expression mixes clock domains without a synchroniser")
	}
}

func checkDomainSet(sink *diag.Sink, comps []ir.Comptime, span token.Range) {
	var first intern.StringID

	have := false

	for _, c := range comps {
		if !c.HasDomain {
			continue
		}

		if !have {
			first, have = c.ClockDomain, true
			continue
		}

		if c.ClockDomain != first {
			sink.Errorf(diag.MismatchClockDomain, span,
				"expression mixes clock domains without a synchroniser")

			return
		}
	}
}
