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
package lower

import (
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
)

// ConvStatement lowers a single statement node, dispatching the handful of
// statement-level forms this package supports; unrecognised kinds lower to
// StmtNull rather than aborting the whole block (spec.md §4.G checkers still
// run over everything else this block did produce).
func (ctx *Context) ConvStatement(n *token.Node) ir.Statement {
	switch n.Kind {
	case KindCaseStatement:
		return ctx.ConvCaseStatement(n)
	case KindIfStatement:
		return ctx.convIfChain(n, ir.StmtIf)
	case KindIfResetStatement:
		return ctx.convIfChain(n, ir.StmtIfReset)
	case KindAssignStatement:
		return ctx.ConvAssignStatement(n)
	default:
		return ir.Statement{Kind: ir.StmtNull, Span: n.Span}
	}
}

// convIfChain lowers a plain `if`/`if_reset` chain: each "branch" child
// carries an optional "cond" (absent on the trailing else) and a "body" list,
// the same shape ConvCaseStatement's branches use. internal/check's
// CheckAssignmentCoverage distinguishes StmtIf from StmtIfReset only by this
// Kind tag -- both share the identical Branches representation.
func (ctx *Context) convIfChain(n *token.Node, kind ir.StmtKind) ir.Statement {
	branches := make([]ir.IfBranch, 0, len(n.List("branch")))

	for _, b := range n.List("branch") {
		body := ctx.ConvStatements(b.List("body"))

		branch := ir.IfBranch{Body: body, Span: b.Span}
		if condNode, ok := b.Opt("cond"); ok {
			branch.Cond = ctx.ConvExpr(condNode)
		}

		branches = append(branches, branch)
	}

	return ir.Statement{Kind: kind, Branches: branches, Span: n.Span}
}

// ConvAssignStatement lowers a single `lhs = rhs` (or `<=`) assignment. The
// left-hand side's own "index"/"select" lists become the destination's
// per-element indexing, mirroring convFactor's identical handling for a
// read; a left-hand side this context can't resolve is recorded with a zero
// Variable/Var, and no diagnostic is reported for it here.
func (ctx *Context) ConvAssignStatement(n *token.Node) ir.Statement {
	lhsNode, _ := n.Opt("lhs")
	rhsNode, _ := n.Opt("rhs")

	dst := ir.AssignDestination{}

	if lhsNode != nil {
		if id, ok := ctx.resolveName(lhsNode.Text()); ok {
			dst.Variable = id
			dst.Var = ir.VarID(id)
			dst.Width = widthOf(ctx.Table.Get(id).Type)
		}

		for _, idx := range lhsNode.List("index") {
			dst.Index = append(dst.Index, ir.VarIndexElem{Expr: *ctx.ConvExpr(idx)})
		}

		for _, sel := range lhsNode.List("select") {
			dst.Select = append(dst.Select, ir.VarIndexElem{Expr: *ctx.ConvExpr(sel), Op: ir.SelectColon})
		}
	}

	return ir.Statement{
		Kind: ir.StmtAssign,
		Dst:  []ir.AssignDestination{dst},
		Expr: ctx.ConvExpr(rhsNode),
		Span: n.Span,
	}
}

func widthOf(t types.Type) uint {
	if total := t.Width.Total(); total != nil {
		return *total
	}

	return 0
}

// ConvStatements lowers a node list in order.
func (ctx *Context) ConvStatements(nodes []*token.Node) []ir.Statement {
	out := make([]ir.Statement, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ctx.ConvStatement(n))
	}

	return out
}

// ConvCaseStatement lowers a `case`/`switch` statement to an `If` chain
// (spec.md §4.H) in the same flat form an if/else-if chain takes: one StmtIf
// whose Branches are the case branches in source order, each taken only when
// every earlier condition failed, with a trailing `default`/no-condition
// branch as the final else. A branch
// naming several values (`1, 2: ...`) becomes an OR of per-value equality
// tests against the case subject. ir.Statement has no dedicated case-node
// form, so this is the only shape a case/switch is ever represented in once
// lowered: downstream passes (internal/check, a future simulator) only ever
// need to understand `If`.
func (ctx *Context) ConvCaseStatement(n *token.Node) ir.Statement {
	subjectNode, _ := n.Opt("subject")
	subject := ctx.ConvExpr(subjectNode)

	branches := make([]ir.IfBranch, 0, len(n.List("branch")))

	for _, b := range n.List("branch") {
		values := b.List("value")
		body := ctx.ConvStatements(b.List("body"))

		if len(values) == 0 {
			branches = append(branches, ir.IfBranch{Body: body, Span: b.Span})
			continue
		}

		var cond *ir.Expression

		for _, v := range values {
			eq := &ir.Expression{
				Kind:  ir.ExprBinary,
				BinOp: ir.BinEq,
				Left:  subject,
				Right: ctx.ConvExpr(v),
				Span:  v.Span,
			}
			ctx.Eval.Eval(eq)

			if cond == nil {
				cond = eq
				continue
			}

			or := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinLogicalOr, Left: cond, Right: eq, Span: b.Span}
			ctx.Eval.Eval(or)
			cond = or
		}

		branches = append(branches, ir.IfBranch{Cond: cond, Body: body, Span: b.Span})
	}

	return ir.Statement{Kind: ir.StmtIf, Branches: branches, Span: n.Span}
}

// ConnectSide is the minimal per-port info ConvConnect needs from one side of
// a `<>` connect: the variable id on that side's component, its direction,
// and the symbol id to reference in the generated assignment's factor.
type ConnectSide struct {
	Var    ir.VarID
	Symbol symtab.ID
	Kind   ir.VarKind
}

// ConvConnect lowers a `<>` connect between two interface modports into a
// sequence of assignments aligned by direction (spec.md §4.H): an output
// port on the master side drives the matching input port on the slave side,
// and vice versa. Sides are matched by the caller-supplied name keys (the
// modport member name); a name present on one side but absent from the other
// is skipped here -- IncompatProto / instance-port validation is responsible
// for flagging that mismatch, not this lowering step.
func ConvConnect(master, slave map[string]ConnectSide, span token.Range) []ir.Statement {
	out := make([]ir.Statement, 0, len(master))

	for name, m := range master {
		s, ok := slave[name]
		if !ok {
			continue
		}

		src, dst := m, s
		if m.Kind == ir.VarInput {
			src, dst = s, m
		}

		out = append(out, ir.Statement{
			Kind: ir.StmtAssign,
			Dst:  []ir.AssignDestination{{Variable: dst.Symbol, Var: dst.Var}},
			Expr: &ir.Expression{Kind: ir.ExprTerm, Term: &ir.Factor{Kind: ir.FactorVariable, Variable: src.Symbol}},
			Span: span,
		})
	}

	return out
}
