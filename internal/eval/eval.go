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

// Package eval implements the compile-time expression evaluator of spec.md
// §4.F: a re-entrant walk that annotates every Expression node with a
// Comptime bundle (value, type, const-ness, clock domain), propagating
// width/sign per the operator table in §4.F.1 and folding constants per
// §4.F.3.
package eval

import (
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/shape"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// Context is the per-top-level-component evaluator state (spec.md §9's
// "re-entrant evaluator" note): never shared across components, threaded
// explicitly through Eval rather than carried on a package-level global.
type Context struct {
	// CtxWidth is the inherited destination width for the expression
	// currently being evaluated (0 means "no inherited width": do not
	// widen beyond what operands naturally produce).
	CtxWidth uint
	Sink     *diag.Sink
	Interner *intern.Table
}

// NewContext constructs an evaluator context reporting into sink.
func NewContext(sink *diag.Sink, interner *intern.Table) *Context {
	return &Context{Sink: sink, Interner: interner}
}

// WithCtxWidth returns a copy of c with a different inherited width, used
// when descending into an assignment's right-hand side or a function
// argument with a known target width.
func (c *Context) WithCtxWidth(w uint) *Context {
	cp := *c
	cp.CtxWidth = w

	return &cp
}

// Eval walks e bottom-up, producing (and caching on e.Comptime) a Comptime
// bundle, then constant-folds the node per spec.md §4.F.3 if eligible.
func (c *Context) Eval(e *ir.Expression) ir.Comptime {
	switch e.Kind {
	case ir.ExprTerm:
		e.Comptime = c.evalFactor(e.Term)
	case ir.ExprUnary:
		e.Comptime = c.evalUnary(e)
	case ir.ExprBinary:
		e.Comptime = c.evalBinary(e)
	case ir.ExprTernary:
		e.Comptime = c.evalTernary(e)
	case ir.ExprConcatenation:
		e.Comptime = c.evalConcat(e)
	case ir.ExprArrayLiteral:
		e.Comptime = c.evalArrayLiteral(e)
	case ir.ExprStructConstructor:
		e.Comptime = c.evalStructConstructor(e)
	}

	c.foldConstant(e)

	return e.Comptime
}

// foldConstant rewrites e into a Value-leaf Term carrying the already-
// computed constant, per spec.md §4.F.3: a pure optimisation that enables
// generate-loop unrolling and static select-range evaluation downstream.
func (c *Context) foldConstant(e *ir.Expression) {
	if !e.Comptime.IsConst || e.Comptime.Value.HasUnknown() {
		return
	}

	if e.Kind == ir.ExprTerm && e.Term != nil && e.Term.Kind == ir.FactorValue {
		return // already folded
	}

	e.Kind = ir.ExprTerm
	e.Term = &ir.Factor{
		Kind:     ir.FactorValue,
		Comptime: e.Comptime,
		Span:     e.Span,
	}
}

func (c *Context) evalFactor(f *ir.Factor) ir.Comptime {
	if f.Kind == ir.FactorSystemFunctionCall && f.Call != nil && c.Interner != nil {
		args := make([]ir.Comptime, len(f.Call.Args))
		for i := range f.Call.Args {
			args[i] = c.Eval(&f.Call.Args[i])
		}

		return c.CallSysFunc(c.Interner.GetStr(f.Call.Name), args, f.Span)
	}

	// Variable/FunctionCall factors carry their Comptime pre-populated by
	// the lowering pass (internal/lower), which resolves the referenced
	// symbol's current known value/type; this evaluator only needs to
	// trust and propagate it.
	return f.Comptime
}

// totalWidthOf returns t's flattened width, or 0 if unresolved (an unknown
// width never widens a result beyond what its known sibling operand needs).
func totalWidthOf(t types.Type) uint {
	if w := t.TotalWidth(); w != nil {
		return *w
	}

	return 0
}

func widthMax(a, b uint) uint {
	if a > b {
		return a
	}

	return b
}

func scalarType(kind types.Kind, signed bool, width uint) types.Type {
	t := types.Scalar(kind, signed)
	t.Width = shape.New(width)

	return t
}

// reduceType returns the 1-bit result type of a reduction operator,
// preserving 2-state-ness per spec.md §4.F.1's "preserves" column.
func reduceType(t types.Type) types.Type {
	return scalarType(boolToKind(t.Is2State()), false, 1)
}

func boolToKind(is2State bool) types.Kind {
	if is2State {
		return types.Bit
	}

	return types.Logic
}

func (c *Context) evalUnary(e *ir.Expression) ir.Comptime {
	operand := c.Eval(e.Operand)
	v := operand.Value
	t := operand.Type

	var result value.Value

	switch e.UnaryOp {
	case ir.UnaryBitwiseNot:
		result = value.Not(v)
	case ir.UnaryLogicalNot:
		result = value.LogicalNot(v)
		t = scalarType(types.Logic, false, 1)
	case ir.UnaryReduceAnd:
		result = value.ReduceAnd(v)
		t = reduceType(t)
	case ir.UnaryReduceOr:
		result = value.ReduceOr(v)
		t = reduceType(t)
	case ir.UnaryReduceXor:
		result = value.ReduceXor(v)
		t = reduceType(t)
	case ir.UnaryReduceNand:
		result = value.ReduceNand(v)
		t = reduceType(t)
	case ir.UnaryReduceNor:
		result = value.ReduceNor(v)
		t = reduceType(t)
	case ir.UnaryReduceXnor:
		result = value.ReduceXnor(v)
		t = reduceType(t)
	case ir.UnaryPlus:
		result = v
	case ir.UnaryMinus:
		result = value.Sub(value.New(0, v.Width(), v.Signed()), v, c.CtxWidth)
	}

	return ir.Comptime{
		Value:       result,
		Type:        t,
		IsConst:     operand.IsConst,
		IsGlobal:    operand.IsGlobal,
		ClockDomain: operand.ClockDomain,
		HasDomain:   operand.HasDomain,
		Span:        e.Span,
	}
}

// mergeDomain combines two operands' clock-domain annotations: if either
// declares one, it is carried forward (spec.md §9's permissive `$sv::Foo`
// note: domain checking itself is the checker's job, not the evaluator's —
// this just propagates whichever annotation is present).
func mergeDomain(l, r ir.Comptime) (intern.StringID, bool) {
	if l.HasDomain {
		return l.ClockDomain, true
	}

	if r.HasDomain {
		return r.ClockDomain, true
	}

	return 0, false
}

type dyadicOp func(l, r value.Value, ctxWidth uint) value.Value

// isArithOperandInvalid reports whether t may not appear as an operand of an
// arithmetic operator (spec.md §4.F.2): an array (non-scalar shape) or the
// meta-kind `type` itself.
func isArithOperandInvalid(t types.Type) bool {
	return len(t.Array) > 0 || t.Kind == types.TypeKind
}

// checkArithOperands reports the two InvalidOperand conditions spec.md
// §4.F.2 documents for `+ - * / % & | ^ ~^`: a string mixed with a
// non-string operand, and an array or `type` operand in this context.
func (c *Context) checkArithOperands(span token.Range, l, r types.Type) {
	if (l.Kind == types.StringKind) != (r.Kind == types.StringKind) {
		c.Sink.Errorf(diag.InvalidOperand, span, "cannot mix string and non-string operands")
	}

	if isArithOperandInvalid(l) || isArithOperandInvalid(r) {
		c.Sink.Errorf(diag.InvalidOperand, span, "array or type operand is not valid in an arithmetic context")
	}
}

// arith implements the "max(L,R,ctx-width), 2-state iff both operands are"
// result-type rule shared by `+ - * / % & | ^ ~^` (spec.md §4.F.1).
func (c *Context) arith(span token.Range, l, r ir.Comptime, op dyadicOp) (value.Value, types.Type) {
	c.checkArithOperands(span, l.Type, r.Type)

	w := widthMax(widthMax(totalWidthOf(l.Type), totalWidthOf(r.Type)), c.CtxWidth)
	result := op(l.Value, r.Value, c.CtxWidth)
	signed := l.Type.Signed && r.Type.Signed
	kind := boolToKind(l.Type.Is2State() && r.Type.Is2State())

	return result, scalarType(kind, signed, w)
}

// shiftClass implements the "max(L-width, ctx-width), preserves LHS 2-state"
// rule shared by `** << <<< >> >>>` (spec.md §4.F.1): result width never
// depends on the RHS operand's width.
func (c *Context) shiftClass(l, r ir.Comptime, op dyadicOp) (value.Value, types.Type) {
	w := widthMax(totalWidthOf(l.Type), c.CtxWidth)
	result := op(l.Value, r.Value, c.CtxWidth)
	kind := boolToKind(l.Type.Is2State())

	return result, scalarType(kind, l.Type.Signed, w)
}

// checkLogicalOperands reports InvalidLogicalOperand for `&&`/`||` when
// either operand's resolved width is known and is not exactly 1 bit
// (spec.md §4.F.2). An unresolved width (0) is not flagged: it cannot yet be
// proven wrong.
func (c *Context) checkLogicalOperands(span token.Range, l, r types.Type) {
	if w := totalWidthOf(l); w != 0 && w != 1 {
		c.Sink.Errorf(diag.InvalidLogicalOperand, span, "logical operator operand must be 1 bit, has width %d", w)
	}

	if w := totalWidthOf(r); w != 0 && w != 1 {
		c.Sink.Errorf(diag.InvalidLogicalOperand, span, "logical operator operand must be 1 bit, has width %d", w)
	}
}

type compareOp func(l, r value.Value) value.Value

// compare implements the 1-bit comparison-result rule (spec.md §4.F.1):
// result is always 1-bit, 2-state iff both operands are.
func (c *Context) compare(l, r ir.Comptime, op compareOp) (value.Value, types.Type) {
	result := op(l.Value, r.Value)
	kind := boolToKind(l.Type.Is2State() && r.Type.Is2State())

	return result, scalarType(kind, false, 1)
}

//nolint:gocyclo // one dispatch arm per spec.md §4.F.1 operator table entry
func (c *Context) evalBinary(e *ir.Expression) ir.Comptime {
	l := c.Eval(e.Left)
	r := c.Eval(e.Right)

	domain, hasDomain := mergeDomain(l, r)
	isGlobal := l.IsGlobal && r.IsGlobal
	isConst := l.IsConst && r.IsConst

	var result value.Value
	var resultType types.Type

	switch e.BinOp {
	case ir.BinAdd:
		result, resultType = c.arith(e.Span, l, r, value.Add)
	case ir.BinSub:
		result, resultType = c.arith(e.Span, l, r, value.Sub)
	case ir.BinMul:
		result, resultType = c.arith(e.Span, l, r, value.Mul)
	case ir.BinDiv:
		if l.Type.Signed && r.Type.Signed {
			result, resultType = c.arith(e.Span, l, r, value.SDiv)
		} else {
			result, resultType = c.arith(e.Span, l, r, value.UDiv)
		}
	case ir.BinMod:
		if l.Type.Signed && r.Type.Signed {
			result, resultType = c.arith(e.Span, l, r, value.SRem)
		} else {
			result, resultType = c.arith(e.Span, l, r, value.URem)
		}
	case ir.BinBitAnd:
		result, resultType = c.arith(e.Span, l, r, value.And)
	case ir.BinBitOr:
		result, resultType = c.arith(e.Span, l, r, value.Or)
	case ir.BinBitXor:
		result, resultType = c.arith(e.Span, l, r, value.Xor)
	case ir.BinBitXnor:
		result, resultType = c.arith(e.Span, l, r, value.Xnor)
	case ir.BinPow:
		result, resultType = c.shiftClass(l, r, value.Pow)
	case ir.BinShiftLeft, ir.BinShiftLeftArith:
		result, resultType = c.shiftClass(l, r, value.ShiftLeft)
	case ir.BinShiftRight:
		result, resultType = c.shiftClass(l, r, value.LogicShiftRight)
	case ir.BinShiftRightArith:
		result, resultType = c.shiftClass(l, r, value.ArithShiftRight)
	case ir.BinLogicalAnd:
		c.checkLogicalOperands(e.Span, l.Type, r.Type)
		result = value.LogicalAnd(l.Value, r.Value)
		resultType = scalarType(boolToKind(l.Type.Is2State() && r.Type.Is2State()), false, 1)
	case ir.BinLogicalOr:
		c.checkLogicalOperands(e.Span, l.Type, r.Type)
		result = value.LogicalOr(l.Value, r.Value)
		resultType = scalarType(boolToKind(l.Type.Is2State() && r.Type.Is2State()), false, 1)
	case ir.BinEq:
		result, resultType = c.compare(l, r, value.Eq)
	case ir.BinNeq:
		result, resultType = c.compare(l, r, value.Neq)
	case ir.BinWildcardEq:
		result, resultType = c.compare(l, r, value.WildcardEq)
		isConst = false // `==?` is never folded even with const operands (spec.md §4.F.3)
	case ir.BinWildcardNeq:
		result, resultType = c.compare(l, r, value.WildcardNeq)
		isConst = false
	case ir.BinLt:
		if l.Type.Signed && r.Type.Signed {
			result, resultType = c.compare(l, r, value.SLt)
		} else {
			result, resultType = c.compare(l, r, value.ULt)
		}
	case ir.BinLe:
		if l.Type.Signed && r.Type.Signed {
			result, resultType = c.compare(l, r, value.SLe)
		} else {
			result, resultType = c.compare(l, r, value.ULe)
		}
	case ir.BinGt:
		if l.Type.Signed && r.Type.Signed {
			result, resultType = c.compare(l, r, value.SGt)
		} else {
			result, resultType = c.compare(l, r, value.UGt)
		}
	case ir.BinGe:
		if l.Type.Signed && r.Type.Signed {
			result, resultType = c.compare(l, r, value.SGe)
		} else {
			result, resultType = c.compare(l, r, value.UGe)
		}
	case ir.BinCast:
		// The rhs of a cast carries the target type in its Comptime.Type
		// (internal/lower resolves the type-reference factor without
		// producing a real Value); the result takes on that type and its
		// 2-state-ness, per spec.md §4.E's CanCast rule.
		target := r.Type
		w := totalWidthOf(target)

		if !target.CanCast(l.Type) {
			c.Sink.Errorf(diag.InvalidCast, e.Span, "cannot cast %s to %s", l.Type.String(), target.String())
		}

		if target.Is2State() {
			result = l.Value.Truncate(w).Expand(w)
		} else {
			result = l.Value.Expand(w).Truncate(w)
		}

		resultType = target
	}

	return ir.Comptime{
		Value:       result,
		Type:        resultType,
		IsConst:     isConst,
		IsGlobal:    isGlobal,
		ClockDomain: domain,
		HasDomain:   hasDomain,
		Span:        e.Span,
	}
}

func (c *Context) evalTernary(e *ir.Expression) ir.Comptime {
	cond := c.Eval(e.Cond)
	t := c.Eval(e.True)
	f := c.Eval(e.False)

	isConst := cond.IsConst && t.IsConst && f.IsConst
	isGlobal := cond.IsGlobal && t.IsGlobal && f.IsGlobal

	w := widthMax(totalWidthOf(t.Type), totalWidthOf(f.Type))
	signed := t.Type.Signed && f.Type.Signed
	kind := boolToKind(t.Type.Is2State() && f.Type.Is2State())
	resultType := scalarType(kind, signed, w)

	var result value.Value

	switch {
	case cond.Value.HasUnknown():
		// An unknown condition makes the result unknown, even if both arms
		// happen to agree (spec.md §4.F.1): which arm executes cannot be
		// determined.
		result = value.Unknown(w, signed)
		isConst = false
	case cond.Value.BigInt().Sign() != 0:
		result = t.Value.Expand(w)
	default:
		result = f.Value.Expand(w)
	}

	return ir.Comptime{
		Value:    result,
		Type:     resultType,
		IsConst:  isConst,
		IsGlobal: isGlobal,
		Span:     e.Span,
	}
}

// evalConcat evaluates a `{a, b repeat(n)}` concatenation, MSB-first (the
// first item occupies the highest bits), per spec.md §3's Concatenation
// node and §4.F.4's aggregate-packing convention.
func (c *Context) evalConcat(e *ir.Expression) ir.Comptime {
	var parts []value.Value
	isConst := true
	isGlobal := true

	for i := range e.Concat {
		item := &e.Concat[i]
		v := c.Eval(&item.Expr)
		isConst = isConst && v.IsConst
		isGlobal = isGlobal && v.IsGlobal

		n := uint(1)

		if item.Repeat != nil {
			rep := c.Eval(item.Repeat)
			isConst = isConst && rep.IsConst
			isGlobal = isGlobal && rep.IsGlobal

			if rep.IsConst && !rep.Value.HasUnknown() {
				n = uint(rep.Value.BigInt().Uint64())
			} else {
				isConst = false
			}
		}

		for i := uint(0); i < n; i++ {
			parts = append(parts, v.Value)
		}
	}

	result := value.Concat(parts...)
	resultType := scalarType(types.Logic, false, result.Width())

	return ir.Comptime{
		Value:    result,
		Type:     resultType,
		IsConst:  isConst,
		IsGlobal: isGlobal,
		Span:     e.Span,
	}
}

// evalArrayLiteral evaluates a `'{a, b, c}` array literal. Elements are
// packed MSB-first (index 0 occupies the highest bits), matching the
// row-major "outermost dimension varies slowest" convention of
// internal/shape and the struct-packing rule of spec.md §4.F.4.
func (c *Context) evalArrayLiteral(e *ir.Expression) ir.Comptime {
	var parts []value.Value

	isConst := true
	isGlobal := true

	var elemType types.Type

	for i := range e.Array {
		v := c.Eval(&e.Array[i])
		isConst = isConst && v.IsConst
		isGlobal = isGlobal && v.IsGlobal
		elemType = v.Type
		parts = append(parts, v.Value)
	}

	result := value.Concat(parts...)

	resultType := elemType
	resultType.Array = resultType.Array.Prepend(shape.New(uint(len(e.Array))))

	return ir.Comptime{
		Value:    result,
		Type:     resultType,
		IsConst:  isConst,
		IsGlobal: isGlobal,
		Span:     e.Span,
	}
}

// evalStructConstructor evaluates a `'{a: 1, b: 2}` struct-literal, packing
// fields in e.StructType.Members declaration order (MSB-first), matching
// internal/ir.BuildPartSelectPath's layout exactly.
func (c *Context) evalStructConstructor(e *ir.Expression) ir.Comptime {
	byName := make(map[intern.StringID]*ir.Expression, len(e.Fields))
	for i := range e.Fields {
		byName[e.Fields[i].Name] = &e.Fields[i].Expr
	}

	var parts []value.Value

	isConst := true
	isGlobal := true

	for _, m := range e.StructType.Members {
		fieldExpr, ok := byName[m.Name]
		if !ok {
			isConst = false
			parts = append(parts, value.Unknown(totalWidthOf(m.Type), false))

			continue
		}

		v := c.Eval(fieldExpr)
		isConst = isConst && v.IsConst
		isGlobal = isGlobal && v.IsGlobal
		parts = append(parts, v.Value.Expand(totalWidthOf(m.Type)).Truncate(totalWidthOf(m.Type)))
	}

	result := value.Concat(parts...)

	return ir.Comptime{
		Value:    result,
		Type:     e.StructType,
		IsConst:  isConst,
		IsGlobal: isGlobal,
		Span:     e.Span,
	}
}
