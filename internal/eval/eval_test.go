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
package eval

import (
	"testing"

	"github.com/veryl-lang/veryl-analyzer/internal/assert"
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/shape"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

func constFactor(v value.Value, t types.Type) *ir.Expression {
	return &ir.Expression{
		Kind: ir.ExprTerm,
		Term: &ir.Factor{
			Kind:     ir.FactorValue,
			Comptime: ir.Comptime{Value: v, Type: t, IsConst: true},
		},
	}
}

// TestAddResultWidthIsMaxOfOperandsAndCtx reproduces spec.md §4.F.1's
// `+ - * / % & | ^ ~^` row: result width is max(L, R, ctx-width).
func TestAddResultWidthIsMaxOfOperandsAndCtx(t *testing.T) {
	c := NewContext(diag.NewSink(), intern.New())
	c.CtxWidth = 8

	l := constFactor(value.New(3, 4, false), scalarType(types.Logic, false, 4))
	r := constFactor(value.New(5, 6, false), scalarType(types.Logic, false, 6))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinAdd, Left: l, Right: r}
	ct := c.Eval(e)

	assert.Equal(t, uint(8), totalWidthOf(ct.Type))
	assert.Equal(t, uint64(8), ct.Value.BigInt().Uint64())
}

// TestAddIs2StateOnlyWhenBothOperandsAre covers the "2-state iff both are
// 2-state" half of the same row.
func TestAddIs2StateOnlyWhenBothOperandsAre(t *testing.T) {
	c := NewContext(diag.NewSink(), intern.New())

	l := constFactor(value.New(1, 4, false), scalarType(types.Bit, false, 4))
	r := constFactor(value.New(2, 4, false), scalarType(types.Logic, false, 4))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinAdd, Left: l, Right: r}
	ct := c.Eval(e)

	assert.False(t, ct.Type.Is2State())
}

// TestShiftResultWidthIgnoresRHSWidth reproduces the `**`/shift row: result
// width is max(L-width, ctx-width), never the RHS's width.
func TestShiftResultWidthIgnoresRHSWidth(t *testing.T) {
	c := NewContext(diag.NewSink(), intern.New())

	l := constFactor(value.New(1, 4, false), scalarType(types.Logic, false, 4))
	r := constFactor(value.New(1, 32, false), scalarType(types.Logic, false, 32))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinShiftLeft, Left: l, Right: r}
	ct := c.Eval(e)

	assert.Equal(t, uint(4), totalWidthOf(ct.Type))
	assert.Equal(t, uint64(2), ct.Value.BigInt().Uint64())
}

// TestComparisonIs1BitAndBitOnlyWhenBothOperandsAre2State.
func TestComparisonIs1BitAndBitOnlyWhenBothOperandsAre2State(t *testing.T) {
	c := NewContext(diag.NewSink(), intern.New())

	l := constFactor(value.New(3, 4, false), scalarType(types.Bit, false, 4))
	r := constFactor(value.New(3, 4, false), scalarType(types.Bit, false, 4))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinEq, Left: l, Right: r}
	ct := c.Eval(e)

	assert.Equal(t, uint(1), totalWidthOf(ct.Type))
	assert.True(t, ct.Type.Is2State())
	assert.Equal(t, uint64(1), ct.Value.BigInt().Uint64())
}

// TestUnaryReductionPreserves2State covers the reduction-operator row.
func TestUnaryReductionPreserves2State(t *testing.T) {
	c := NewContext(diag.NewSink(), intern.New())

	operand := constFactor(value.New(0b1010, 4, false), scalarType(types.Bit, false, 4))
	e := &ir.Expression{Kind: ir.ExprUnary, UnaryOp: ir.UnaryReduceOr, Operand: operand}

	ct := c.Eval(e)

	assert.Equal(t, uint(1), totalWidthOf(ct.Type))
	assert.True(t, ct.Type.Is2State())
	assert.Equal(t, uint64(1), ct.Value.BigInt().Uint64())
}

// TestConstantFoldingRewritesNodeToValueLeaf reproduces spec.md §4.F.3.
func TestConstantFoldingRewritesNodeToValueLeaf(t *testing.T) {
	c := NewContext(diag.NewSink(), intern.New())

	l := constFactor(value.New(1, 4, false), scalarType(types.Logic, false, 4))
	r := constFactor(value.New(1, 4, false), scalarType(types.Logic, false, 4))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinAdd, Left: l, Right: r}
	c.Eval(e)

	assert.Equal(t, ir.ExprTerm, e.Kind)
	assert.Equal(t, ir.FactorValue, e.Term.Kind)
}

// TestLogicalAndRejectsMultiBitOperand reproduces spec.md §4.F.2's
// "operands of logical ops must be 1-bit" rule.
func TestLogicalAndRejectsMultiBitOperand(t *testing.T) {
	sink := diag.NewSink()
	c := NewContext(sink, intern.New())

	l := constFactor(value.New(3, 4, false), scalarType(types.Logic, false, 4))
	r := constFactor(value.New(1, 1, false), scalarType(types.Logic, false, 1))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinLogicalAnd, Left: l, Right: r}
	c.Eval(e)

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.InvalidLogicalOperand {
			found = true
		}
	}
	assert.True(t, found)
}

// TestLogicalOrAccepts1BitOperands is the negative case: no diagnostic when
// both operands are already 1-bit.
func TestLogicalOrAccepts1BitOperands(t *testing.T) {
	sink := diag.NewSink()
	c := NewContext(sink, intern.New())

	l := constFactor(value.New(1, 1, false), scalarType(types.Logic, false, 1))
	r := constFactor(value.New(0, 1, false), scalarType(types.Logic, false, 1))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinLogicalOr, Left: l, Right: r}
	c.Eval(e)

	assert.Equal(t, 0, len(sink.All()))
}

// TestArithRejectsMixedStringOperand reproduces spec.md §4.F.2's "mixed
// string and non-string operands" InvalidOperand rule.
func TestArithRejectsMixedStringOperand(t *testing.T) {
	sink := diag.NewSink()
	c := NewContext(sink, intern.New())

	l := constFactor(value.New(1, 8, false), scalarType(types.StringKind, false, 8))
	r := constFactor(value.New(1, 8, false), scalarType(types.Logic, false, 8))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinAdd, Left: l, Right: r}
	c.Eval(e)

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.InvalidOperand {
			found = true
		}
	}
	assert.True(t, found)
}

// TestArithRejectsArrayOperand reproduces spec.md §4.F.2's "array/type
// operand in arithmetic context" InvalidOperand rule.
func TestArithRejectsArrayOperand(t *testing.T) {
	sink := diag.NewSink()
	c := NewContext(sink, intern.New())

	arrType := scalarType(types.Logic, false, 4)
	arrType.Array = shape.New(3)

	l := constFactor(value.New(1, 4, false), arrType)
	r := constFactor(value.New(1, 4, false), scalarType(types.Logic, false, 4))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinMul, Left: l, Right: r}
	c.Eval(e)

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.InvalidOperand {
			found = true
		}
	}
	assert.True(t, found)
}

// TestCastRejectsClockToReset reproduces spec.md §4.E/§4.F.2's clock<->reset
// cast rejection.
func TestCastRejectsClockToReset(t *testing.T) {
	sink := diag.NewSink()
	c := NewContext(sink, intern.New())

	l := constFactor(value.New(1, 1, false), scalarType(types.Clock, false, 1))
	target := constFactor(value.Value{}, scalarType(types.Reset, false, 1))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinCast, Left: l, Right: target}
	c.Eval(e)

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.InvalidCast {
			found = true
		}
	}
	assert.True(t, found)
}

// TestCastAcceptsLogicToLogic is the negative case for BinCast.
func TestCastAcceptsLogicToLogic(t *testing.T) {
	sink := diag.NewSink()
	c := NewContext(sink, intern.New())

	l := constFactor(value.New(1, 4, false), scalarType(types.Logic, false, 4))
	target := constFactor(value.Value{}, scalarType(types.Logic, false, 8))

	e := &ir.Expression{Kind: ir.ExprBinary, BinOp: ir.BinCast, Left: l, Right: target}
	c.Eval(e)

	assert.Equal(t, 0, len(sink.All()))
}

// TestClog2MatchesConventionalEdgeCases checks $clog2(1)=0, $clog2(2)=1,
// $clog2(5)=3.
func TestClog2MatchesConventionalEdgeCases(t *testing.T) {
	it := intern.New()
	c := NewContext(diag.NewSink(), it)

	for n, want := range map[uint64]uint64{1: 0, 2: 1, 5: 3, 8: 3} {
		args := []ir.Comptime{{Value: value.New(n, 32, false), IsConst: true}}
		got := c.CallSysFunc("$clog2", args, token.Range{})

		assert.Equal(t, want, got.Value.BigInt().Uint64())
	}
}
