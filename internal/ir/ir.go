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

// Package ir implements the typed, value-carrying intermediate
// representation of spec.md §3/§4.F: Expression/Statement trees produced by
// lowering, a compile-time Comptime bundle attached to every evaluated node,
// and the per-variable assignment-coverage bookkeeping consulted by the
// checker suite.
package ir

import (
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// Comptime is the bundle produced by evaluating an expression at analysis
// time: its value (if known), its type, whether it folds to a constant, and
// the clock domain it belongs to (for cross-domain checking).
type Comptime struct {
	Value       value.Value
	Type        types.Type
	IsConst     bool
	IsGlobal    bool
	ClockDomain intern.StringID // zero value means "no declared domain"
	HasDomain   bool
	Span        token.Range
}

// VarID is an arena handle into a Module/Interface/Package's Variables map.
type VarID uint32

// VarKind is the storage class of a Variable.
type VarKind uint8

// Recognised variable kinds.
const (
	VarParam VarKind = iota
	VarConst
	VarInput
	VarOutput
	VarInout
	VarVariable
	VarLet
)

func (k VarKind) String() string {
	switch k {
	case VarParam:
		return "param"
	case VarConst:
		return "const"
	case VarInput:
		return "input"
	case VarOutput:
		return "output"
	case VarInout:
		return "inout"
	case VarVariable:
		return "variable"
	case VarLet:
		return "let"
	default:
		return "?"
	}
}

// VarPath is an ordered sequence of text-ids rooted at the declaring scope;
// `a.b[0].c` becomes path [a, b, c], with index/select encoded separately on
// the Factor or AssignDestination that uses it.
type VarPath []intern.StringID

// SelectOp distinguishes the four bit-range selection forms.
type SelectOp uint8

// Recognised select operators.
const (
	SelectNone   SelectOp = iota // plain array index, no range
	SelectColon                  // [hi:lo]
	SelectPlus                   // [base+:width]
	SelectMinus                  // [base-:width]
	SelectStep                   // [base step width] (strided)
)

// VarIndexElem is a single array-subscript or bit-range element of a
// VarIndex/VarSelect chain.
type VarIndexElem struct {
	Expr Expression
	End  *Expression // set when Op != SelectNone
	Op   SelectOp
}

// FactorKind tags the Factor union.
type FactorKind uint8

// Recognised factor kinds.
const (
	FactorVariable FactorKind = iota
	FactorValue
	FactorSystemFunctionCall
	FactorFunctionCall
	FactorAnonymous
	FactorUnresolved
	FactorUnknown
)

// Factor is the leaf of an Expression tree (spec.md §3).
type Factor struct {
	Kind     FactorKind
	Variable symtab.ID
	Index    []VarIndexElem
	Select   []VarIndexElem
	Call     *Call // FunctionCall / SystemFunctionCall
	Comptime Comptime
	Span     token.Range
}

// Call captures a (system-)function-call factor's argument list.
type Call struct {
	Name intern.StringID
	Args []Expression
}

// ExprKind tags the Expression union.
type ExprKind uint8

// Recognised expression kinds.
const (
	ExprTerm ExprKind = iota
	ExprUnary
	ExprBinary
	ExprTernary
	ExprConcatenation
	ExprArrayLiteral
	ExprStructConstructor
)

// UnaryOp enumerates recognised prefix operators.
type UnaryOp uint8

// Recognised unary operators.
const (
	UnaryBitwiseNot UnaryOp = iota
	UnaryLogicalNot
	UnaryReduceAnd
	UnaryReduceOr
	UnaryReduceXor
	UnaryReduceNand
	UnaryReduceNor
	UnaryReduceXnor
	UnaryPlus
	UnaryMinus
)

// BinaryOp enumerates recognised infix operators.
type BinaryOp uint8

// Recognised binary operators.
const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinBitAnd
	BinBitOr
	BinBitXor
	BinBitXnor
	BinShiftLeft
	BinShiftLeftArith
	BinShiftRight
	BinShiftRightArith
	BinLogicalAnd
	BinLogicalOr
	BinEq
	BinNeq
	BinWildcardEq
	BinWildcardNeq
	BinLt
	BinLe
	BinGt
	BinGe
	BinCast // `as`
)

// ConcatItem is one element of a `{a, b repeat(n)}` concatenation.
type ConcatItem struct {
	Expr   Expression
	Repeat *Expression // nil means no repeat count
}

// StructField binds one field in a StructConstructor.
type StructField struct {
	Name intern.StringID
	Expr Expression
}

// Expression is the tagged IR expression node of spec.md §3.
type Expression struct {
	Kind ExprKind

	Term *Factor // ExprTerm

	UnaryOp UnaryOp    // ExprUnary
	Operand *Expression // ExprUnary

	BinOp BinaryOp    // ExprBinary
	Left  *Expression // ExprBinary/ExprTernary
	Right *Expression // ExprBinary

	Cond  *Expression // ExprTernary
	True  *Expression // ExprTernary
	False *Expression // ExprTernary

	Concat []ConcatItem // ExprConcatenation
	Array  []Expression // ExprArrayLiteral

	StructType types.Type    // ExprStructConstructor
	Fields     []StructField // ExprStructConstructor

	Comptime Comptime
	Span     token.Range
}

// CondType is the `#[cond_type(...)]` attribute's argument, controlling how
// strictly an if-chain's branch coverage is enforced (spec.md §6).
type CondType uint8

// Recognised cond_type values.
const (
	CondNone CondType = iota
	CondUnique
	CondPriority
	CondUnique0
)

// StmtKind tags the Statement union.
type StmtKind uint8

// Recognised statement kinds.
const (
	StmtAssign StmtKind = iota
	StmtIf
	StmtIfReset
	StmtSystemFunctionCall
	StmtFunctionCall
	StmtNull
)

// AssignDestination is a single assignment target; multiple destinations in
// one Assign statement form a concatenation on the left-hand side.
type AssignDestination struct {
	Variable symtab.ID
	Var      VarID
	Index    []VarIndexElem
	Select   []VarIndexElem
	Width    uint
}

// IfBranch pairs a constant-foldable condition (nil for a final `else`) with
// its body.
type IfBranch struct {
	Cond *Expression // nil for the trailing else
	Body []Statement
	Span token.Range
}

// Statement is the tagged IR statement node of spec.md §3.
type Statement struct {
	Kind StmtKind

	// StmtAssign
	Dst      []AssignDestination
	AsgWidth uint
	Expr     *Expression

	// StmtIf / StmtIfReset
	Branches []IfBranch
	CondType CondType

	// StmtSystemFunctionCall / StmtFunctionCall
	Call *Call

	Span token.Range
}
