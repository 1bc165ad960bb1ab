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
	"strconv"
	"strings"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/shape"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// binaryOps maps the operator leaf's source text to its ir.BinaryOp tag.
var binaryOps = map[string]ir.BinaryOp{
	"+": ir.BinAdd, "-": ir.BinSub, "*": ir.BinMul, "/": ir.BinDiv, "%": ir.BinMod,
	"**": ir.BinPow, "&": ir.BinBitAnd, "|": ir.BinBitOr, "^": ir.BinBitXor, "~^": ir.BinBitXnor,
	"<<": ir.BinShiftLeft, "<<<": ir.BinShiftLeftArith, ">>": ir.BinShiftRight, ">>>": ir.BinShiftRightArith,
	"&&": ir.BinLogicalAnd, "||": ir.BinLogicalOr, "==": ir.BinEq, "!=": ir.BinNeq,
	"==?": ir.BinWildcardEq, "!=?": ir.BinWildcardNeq, "<": ir.BinLt, "<=": ir.BinLe,
	">": ir.BinGt, ">=": ir.BinGe, "as": ir.BinCast,
}

// unaryOps maps a prefix operator leaf's text to its ir.UnaryOp tag.
var unaryOps = map[string]ir.UnaryOp{
	"~": ir.UnaryBitwiseNot, "!": ir.UnaryLogicalNot, "&": ir.UnaryReduceAnd, "|": ir.UnaryReduceOr,
	"^": ir.UnaryReduceXor, "~&": ir.UnaryReduceNand, "~|": ir.UnaryReduceNor, "~^": ir.UnaryReduceXnor,
	"+": ir.UnaryPlus, "-": ir.UnaryMinus,
}

// ConvExpr lowers a parsed expression node into an ir.Expression, then
// immediately runs it through ctx.Eval so every node carries its Comptime
// bundle by the time the caller sees it (spec.md §4.F's evaluator is driven
// eagerly during lowering, not as a separate later pass).
func (ctx *Context) ConvExpr(n *token.Node) *ir.Expression {
	e := ctx.convExprRaw(n)
	ctx.Eval.Eval(e)

	return e
}

func (ctx *Context) convExprRaw(n *token.Node) *ir.Expression {
	if n == nil {
		return &ir.Expression{Kind: ir.ExprTerm, Term: &ir.Factor{Kind: ir.FactorUnknown}}
	}

	switch n.Kind {
	case "", KindIdentifier, KindNumber:
		return &ir.Expression{Kind: ir.ExprTerm, Term: ctx.convFactor(n), Span: n.Span}
	case KindUnaryExpression:
		return ctx.convUnary(n)
	case KindBinaryExpression:
		return ctx.convBinary(n)
	case KindIfExpression:
		return ctx.convTernary(n)
	case KindConcatenation:
		return ctx.convConcat(n)
	case KindArrayLiteral:
		return ctx.convArrayLiteral(n)
	case KindStructConstructor:
		return ctx.convStructConstructor(n)
	default:
		ctx.Sink.Errorf(diag.InvalidFactor, n.Span, "unsupported expression node %q", n.Kind)

		return &ir.Expression{Kind: ir.ExprTerm, Term: &ir.Factor{Kind: ir.FactorUnresolved}, Span: n.Span}
	}
}

func (ctx *Context) convFactor(n *token.Node) *ir.Factor {
	if call, ok := n.Opt("call"); ok {
		return ctx.convCallFactor(n, call)
	}

	if n.IsLeaf() && looksNumeric(ctx.Interner.GetStr(n.Leaf.Text)) {
		v := parseLiteral(ctx.Interner.GetStr(n.Leaf.Text))

		return &ir.Factor{
			Kind:     ir.FactorValue,
			Comptime: ir.Comptime{Value: v, Type: scalarValueType(v), IsConst: true},
			Span:     token.NewRange(n.Leaf),
		}
	}

	f := &ir.Factor{Kind: ir.FactorVariable, Span: n.Span}

	if n.IsLeaf() {
		f.Span = token.NewRange(n.Leaf)

		if bound, ok := ctx.Bindings[n.Leaf.Text]; ok {
			f.Kind, f.Comptime = ir.FactorValue, bound
			return f
		}

		if id, ok := ctx.resolveName(n.Leaf.Text); ok {
			f.Variable = id
			f.Comptime.Type = ctx.Table.Get(id).Type
		} else {
			f.Kind = ir.FactorUnresolved
		}
	}

	for _, idx := range n.List("index") {
		f.Index = append(f.Index, ir.VarIndexElem{Expr: *ctx.ConvExpr(idx)})
	}

	for _, sel := range n.List("select") {
		f.Select = append(f.Select, ir.VarIndexElem{Expr: *ctx.ConvExpr(sel), Op: ir.SelectColon})
	}

	return f
}

func (ctx *Context) convCallFactor(n, call *token.Node) *ir.Factor {
	name := ctx.Interner.GetStr(call.Leaf.Text)

	args := make([]ir.Expression, 0, len(n.List("arg")))
	for _, a := range n.List("arg") {
		args = append(args, *ctx.ConvExpr(a))
	}

	kind := ir.FactorFunctionCall
	if strings.HasPrefix(name, "$") {
		kind = ir.FactorSystemFunctionCall
	}

	return &ir.Factor{
		Kind: kind,
		Call: &ir.Call{Name: call.Leaf.Text, Args: args},
		Span: n.Span,
	}
}

func (ctx *Context) resolveName(name intern.StringID) (symtab.ID, bool) {
	id, err := ctx.Table.Resolve(symtab.Path{name}, nil, nil)

	return id, err == nil
}

func (ctx *Context) convUnary(n *token.Node) *ir.Expression {
	opNode, _ := n.Opt("op")
	operandNode, _ := n.Opt("operand")
	operand := ctx.ConvExpr(operandNode)

	op, ok := unaryOps[ctx.Interner.GetStr(opNode.Text())]
	if !ok {
		ctx.Sink.Errorf(diag.InvalidOperand, n.Span, "unrecognised unary operator")
	}

	return &ir.Expression{Kind: ir.ExprUnary, UnaryOp: op, Operand: operand, Span: n.Span}
}

func (ctx *Context) convBinary(n *token.Node) *ir.Expression {
	opNode, _ := n.Opt("op")
	leftNode, _ := n.Opt("left")
	rightNode, _ := n.Opt("right")

	left := ctx.ConvExpr(leftNode)
	right := ctx.ConvExpr(rightNode)

	op, ok := binaryOps[ctx.Interner.GetStr(opNode.Text())]
	if !ok {
		ctx.Sink.Errorf(diag.InvalidOperand, n.Span, "unrecognised binary operator")
	}

	return &ir.Expression{Kind: ir.ExprBinary, BinOp: op, Left: left, Right: right, Span: n.Span}
}

func (ctx *Context) convTernary(n *token.Node) *ir.Expression {
	condNode, _ := n.Opt("cond")
	trueNode, _ := n.Opt("then")
	falseNode, _ := n.Opt("else")

	return &ir.Expression{
		Kind:  ir.ExprTernary,
		Cond:  ctx.ConvExpr(condNode),
		True:  ctx.ConvExpr(trueNode),
		False: ctx.ConvExpr(falseNode),
		Span:  n.Span,
	}
}

func (ctx *Context) convConcat(n *token.Node) *ir.Expression {
	items := make([]ir.ConcatItem, 0, len(n.List("item")))

	for _, it := range n.List("item") {
		item := ir.ConcatItem{Expr: *ctx.ConvExpr(it)}

		if rep, ok := it.Opt("repeat"); ok {
			item.Repeat = ctx.ConvExpr(rep)
		}

		items = append(items, item)
	}

	return &ir.Expression{Kind: ir.ExprConcatenation, Concat: items, Span: n.Span}
}

func (ctx *Context) convArrayLiteral(n *token.Node) *ir.Expression {
	items := make([]ir.Expression, 0, len(n.List("item")))
	for _, it := range n.List("item") {
		items = append(items, *ctx.ConvExpr(it))
	}

	return &ir.Expression{Kind: ir.ExprArrayLiteral, Array: items, Span: n.Span}
}

func (ctx *Context) convStructConstructor(n *token.Node) *ir.Expression {
	fields := make([]ir.StructField, 0, len(n.List("field")))

	for _, f := range n.List("field") {
		nameNode, _ := f.Opt("name")
		exprNode, _ := f.Opt("value")
		fields = append(fields, ir.StructField{Name: nameNode.Text(), Expr: *ctx.ConvExpr(exprNode)})
	}

	return &ir.Expression{Kind: ir.ExprStructConstructor, Fields: fields, Span: n.Span}
}

// scalarValueType builds the scalar type a raw numeric-literal Value
// presents as, mirroring internal/eval's own scalarType helper.
func scalarValueType(v value.Value) types.Type {
	t := types.Scalar(types.Bit, v.Signed())
	t.Width = shape.New(v.Width())

	return t
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}

	c := s[0]

	return c >= '0' && c <= '9'
}

// parseLiteral parses a Veryl-style sized/based numeric literal
// (`8'hFF`, `3'b101`, or a plain decimal) into a value.Value. Unsupported or
// malformed forms fall back to an all-zero value of the literal's stated
// width (32 bits for an unsized literal); the width/base
// grammar itself is parser territory, this is a best-effort decode of
// whatever text the leaf carries.
func parseLiteral(s string) value.Value {
	if idx := strings.IndexAny(s, "'"); idx >= 0 {
		widthPart, rest := s[:idx], s[idx+1:]

		width, _ := strconv.Atoi(widthPart)
		if len(rest) == 0 {
			return value.New(0, uint(width), false)
		}

		base, digits := rest[0], rest[1:]

		var bitBase int

		switch base {
		case 'h', 'H':
			bitBase = 16
		case 'b', 'B':
			bitBase = 2
		case 'o', 'O':
			bitBase = 8
		default:
			bitBase = 10
			digits = rest
		}

		n, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), bitBase, 64)
		if err != nil {
			return value.New(0, uint(width), false)
		}

		return value.New(n, uint(width), false)
	}

	n, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 10, 64)
	if err != nil {
		return value.New(0, 32, false)
	}

	return value.New(n, 32, false)
}
