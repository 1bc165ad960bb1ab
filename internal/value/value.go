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

// Package value implements 4-state (0, 1, X, Z) arbitrary-precision
// arithmetic, the evaluator's scalar value domain.  A Value pairs a payload
// big integer with a mask bitset recording which bits are unknown; X and Z
// are both represented by a set mask bit (this analyzer does not otherwise
// distinguish them, matching how the source language treats them for
// assignment-legality purposes).
package value

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Value is a 4-state, width- and sign-annotated integer.  Invariants:
// payload.BitLen() <= width and the highest set bit in mask is < width.
type Value struct {
	payload *big.Int
	mask    *bitset.BitSet
	width   uint
	signed  bool
}

// New constructs a known-valid value from a u64 literal truncated to width.
func New(v uint64, width uint, signed bool) Value {
	p := new(big.Int).SetUint64(v)
	mask := truncateBig(p, width)

	return Value{payload: mask, mask: bitset.New(width), width: width, signed: signed}
}

// NewBig constructs a known-valid value from an arbitrary-precision integer,
// truncated to width.
func NewBig(v *big.Int, width uint, signed bool) Value {
	p := truncateBig(new(big.Int).Set(v), width)

	return Value{payload: p, mask: bitset.New(width), width: width, signed: signed}
}

// Unknown constructs an all-X value of the given width.
func Unknown(width uint, signed bool) Value {
	m := bitset.New(width)
	for i := uint(0); i < width; i++ {
		m.Set(i)
	}

	return Value{payload: new(big.Int), mask: m, width: width, signed: signed}
}

func truncateBig(v *big.Int, width uint) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	mask.Sub(mask, big.NewInt(1))

	return new(big.Int).And(v, mask)
}

// Width returns the bit width of this value.
func (v Value) Width() uint { return v.width }

// Signed reports whether this value's type is signed.
func (v Value) Signed() bool { return v.signed }

// IsFullyKnown reports whether no bit of this value is unknown.
func (v Value) IsFullyKnown() bool { return v.mask.None() }

// HasUnknown reports whether at least one bit is unknown (X or Z).
func (v Value) HasUnknown() bool { return !v.mask.None() }

// BigInt returns the payload as an unsigned big integer.  Unknown bits read
// as 0 in the payload; callers must check IsFullyKnown first if unknown bits
// matter.
func (v Value) BigInt() *big.Int {
	return new(big.Int).Set(v.payload)
}

// Bit returns the known value (0/1) and whether bit i is known.
func (v Value) Bit(i uint) (b uint, known bool) {
	if i >= v.width {
		return 0, false
	}

	if v.mask.Test(i) {
		return 0, false
	}

	return uint(v.payload.Bit(int(i))), true
}

func widthMax(a, b uint) uint {
	if a > b {
		return a
	}

	return b
}

// expand returns a copy of v widened (zero- or sign-extended per v.signed)
// to width w.  Never shrinks: if w <= v.width, v is returned unchanged.
func (v Value) expand(w uint) Value {
	if w <= v.width {
		return v
	}

	payload := new(big.Int).Set(v.payload)
	mask := bitset.New(w)

	for i := uint(0); i < v.width; i++ {
		if v.mask.Test(i) {
			mask.Set(i)
		}
	}

	if v.signed {
		signBit, known := v.Bit(v.width - 1)

		if !known {
			for i := v.width; i < w; i++ {
				mask.Set(i)
			}
		} else if signBit == 1 {
			ext := new(big.Int).Lsh(big.NewInt(1), w)
			ext.Sub(ext, new(big.Int).Lsh(big.NewInt(1), v.width))
			payload.Or(payload, ext)
		}
	}

	return Value{payload: payload, mask: mask, width: w, signed: v.signed}
}

// Expand is the public, width-only-ever-grows extension operator from
// spec.md §4.B ("expand (zero- or sign-extend) to target width").
func (v Value) Expand(w uint) Value {
	return v.expand(w)
}

// Truncate returns v truncated to width w (w <= v.width); this discards
// high-order bits and never extends.
func (v Value) Truncate(w uint) Value {
	if w >= v.width {
		return v
	}

	mask := bitset.New(w)

	for i := uint(0); i < w; i++ {
		if v.mask.Test(i) {
			mask.Set(i)
		}
	}

	return Value{payload: truncateBig(v.payload, w), mask: mask, width: w, signed: v.signed}
}

// SignExtend reinterprets v as signed and extends it, regardless of v's own
// Signed() flag; used for explicit $signed()-style casts.
func (v Value) SignExtend(w uint) Value {
	signed := Value{payload: v.payload, mask: v.mask, width: v.width, signed: true}
	return signed.expand(w)
}

// binWidth determines the result width for a dyadic arithmetic/bitwise op
// per spec.md §4.F.1: max(L, R, ctxWidth).  ctxWidth of 0 means "no inherited
// context width" (e.g. not the RHS of an assignment).
func binWidth(l, r Value, ctxWidth uint) uint {
	return widthMax(widthMax(l.width, r.width), ctxWidth)
}

func bothKnown2State(l, r Value) bool {
	return l.IsFullyKnown() && r.IsFullyKnown()
}

func propagateUnknown(w uint) Value {
	return Unknown(w, false)
}

// Add computes l+r, result width per binWidth.  Any input bit reachable
// through carry propagation from an unknown bit makes the corresponding and
// all higher result bits unknown (carries propagate leftward), per spec
// §4.B's "any unknown bit reachable through carry propagation" rule.
func Add(l, r Value, ctxWidth uint) Value {
	return carryOp(l, r, ctxWidth, func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
}

// Sub computes l-r with the same carry/borrow-propagation unknown rule as Add.
func Sub(l, r Value, ctxWidth uint) Value {
	return carryOp(l, r, ctxWidth, func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
}

// carryOp implements the shared "first unknown bit poisons itself and
// everything above it" rule used by Add/Sub.
func carryOp(l, r Value, ctxWidth uint, op func(a, b *big.Int) *big.Int) Value {
	w := binWidth(l, r, ctxWidth)
	le, re := l.expand(w), r.expand(w)

	lowestUnknown := w
	for i := uint(0); i < w; i++ {
		if le.mask.Test(i) || re.mask.Test(i) {
			lowestUnknown = i
			break
		}
	}

	if lowestUnknown == w {
		return NewBig(op(le.payload, re.payload), w, l.signed || r.signed)
	}

	result := NewBig(op(le.payload, re.payload), w, l.signed || r.signed)

	for i := lowestUnknown; i < w; i++ {
		result.mask.Set(i)
	}

	return result
}

// Mul computes l*r; any unknown input bit poisons the whole result, since
// every output bit of a multiply can depend on every input bit.
func Mul(l, r Value, ctxWidth uint) Value {
	w := binWidth(l, r, ctxWidth)

	if !bothKnown2State(l, r) {
		return propagateUnknown(w)
	}

	le, re := l.expand(w), r.expand(w)

	return NewBig(new(big.Int).Mul(le.payload, re.payload), w, l.signed || r.signed)
}

// divZeroOrUnknown reports whether r is zero or carries any unknown bit, the
// sentinel condition under which division/modulus yields all-X (spec §4.B).
func divZeroOrUnknown(r Value) bool {
	return r.HasUnknown() || r.payload.Sign() == 0
}

// UDiv computes unsigned l/r.
func UDiv(l, r Value, ctxWidth uint) Value {
	w := binWidth(l, r, ctxWidth)

	if !l.IsFullyKnown() || divZeroOrUnknown(r) {
		return propagateUnknown(w)
	}

	le, re := l.expand(w), r.expand(w)

	return NewBig(new(big.Int).Div(le.payload, re.payload), w, false)
}

// URem computes unsigned l%r.
func URem(l, r Value, ctxWidth uint) Value {
	w := binWidth(l, r, ctxWidth)

	if !l.IsFullyKnown() || divZeroOrUnknown(r) {
		return propagateUnknown(w)
	}

	le, re := l.expand(w), r.expand(w)

	return NewBig(new(big.Int).Mod(le.payload, re.payload), w, false)
}

// SDiv computes signed l/r (truncating toward zero).
func SDiv(l, r Value, ctxWidth uint) Value {
	w := binWidth(l, r, ctxWidth)

	if !l.IsFullyKnown() || divZeroOrUnknown(r) {
		return propagateUnknown(w)
	}

	a, b := l.asSigned(w), r.asSigned(w)
	q := new(big.Int).Quo(a, b)

	return NewBig(q, w, true)
}

// SRem computes signed l%r (sign following the dividend).
func SRem(l, r Value, ctxWidth uint) Value {
	w := binWidth(l, r, ctxWidth)

	if !l.IsFullyKnown() || divZeroOrUnknown(r) {
		return propagateUnknown(w)
	}

	a, b := l.asSigned(w), r.asSigned(w)
	m := new(big.Int).Rem(a, b)

	return NewBig(m, w, true)
}

// asSigned reinterprets the expanded payload as a signed big.Int.
func (v Value) asSigned(w uint) *big.Int {
	e := v.expand(w)
	p := new(big.Int).Set(e.payload)

	if bit, _ := e.Bit(w - 1); bit == 1 {
		full := new(big.Int).Lsh(big.NewInt(1), w)
		p.Sub(p, full)
	}

	return p
}

// bitwiseOp applies a per-bit dominance rule: a known 0/1 bit can dominate
// an unknown partner bit for And/Or (0 AND X = 0, 1 OR X = 1); otherwise the
// result bit is unknown if either input bit is unknown.
func bitwiseOp(l, r Value, ctxWidth uint, known func(a, b uint) uint, dominant func(known, other uint) (uint, bool)) Value {
	w := binWidth(l, r, ctxWidth)
	le, re := l.expand(w), r.expand(w)
	result := Unknown(w, false)
	result.mask.ClearAll()

	for i := uint(0); i < w; i++ {
		lb, lk := le.Bit(i)
		rb, rk := re.Bit(i)

		switch {
		case lk && rk:
			if known(lb, rb) == 1 {
				result.payload.SetBit(result.payload, int(i), 1)
			}
		case lk && !rk:
			if v, dom := dominant(lb, 0); dom {
				if v == 1 {
					result.payload.SetBit(result.payload, int(i), 1)
				}
			} else {
				result.mask.Set(i)
			}
		case !lk && rk:
			if v, dom := dominant(rb, 0); dom {
				if v == 1 {
					result.payload.SetBit(result.payload, int(i), 1)
				}
			} else {
				result.mask.Set(i)
			}
		default:
			result.mask.Set(i)
		}
	}

	result.signed = l.signed && r.signed

	return result
}

// And implements bitwise AND with 0-dominance (0 AND X = 0).
func And(l, r Value, ctxWidth uint) Value {
	return bitwiseOp(l, r, ctxWidth,
		func(a, b uint) uint { return a & b },
		func(known, _ uint) (uint, bool) {
			if known == 0 {
				return 0, true
			}

			return 0, false
		})
}

// Or implements bitwise OR with 1-dominance (1 OR X = 1).
func Or(l, r Value, ctxWidth uint) Value {
	return bitwiseOp(l, r, ctxWidth,
		func(a, b uint) uint { return a | b },
		func(known, _ uint) (uint, bool) {
			if known == 1 {
				return 1, true
			}

			return 0, false
		})
}

// Xor implements bitwise XOR: no dominance, any unknown input bit makes the
// output bit unknown.
func Xor(l, r Value, ctxWidth uint) Value {
	return bitwiseOp(l, r, ctxWidth,
		func(a, b uint) uint { return a ^ b },
		func(_, _ uint) (uint, bool) { return 0, false })
}

// Xnor implements bitwise XNOR (~(a^b)).
func Xnor(l, r Value, ctxWidth uint) Value {
	x := Xor(l, r, ctxWidth)
	return Not(x)
}

// Not implements bitwise NOT; unknown bits stay unknown.
func Not(v Value) Value {
	result := Unknown(v.width, v.signed)
	result.mask = v.mask.Clone()

	for i := uint(0); i < v.width; i++ {
		if !v.mask.Test(i) {
			b, _ := v.Bit(i)
			if b == 0 {
				result.payload.SetBit(result.payload, int(i), 1)
			}
		}
	}

	return result
}

// LogicalAnd/Or/Not operate on 1-bit logical operands (the type checker
// enforces operand width==1 before calling these; see internal/eval).
func LogicalAnd(l, r Value) Value { return boolOp(l, r, func(a, b bool) bool { return a && b }) }
func LogicalOr(l, r Value) Value  { return boolOp(l, r, func(a, b bool) bool { return a || b }) }

func LogicalNot(v Value) Value {
	if v.HasUnknown() {
		return Unknown(1, false)
	}

	if v.payload.Sign() == 0 {
		return New(1, 1, false)
	}

	return New(0, 1, false)
}

func boolOp(l, r Value, op func(a, b bool) bool) Value {
	if l.HasUnknown() || r.HasUnknown() {
		return Unknown(1, false)
	}

	lb := l.payload.Sign() != 0
	rb := r.payload.Sign() != 0

	if op(lb, rb) {
		return New(1, 1, false)
	}

	return New(0, 1, false)
}

// compareOp is shared by (u/s)comparisons: any unknown operand bit makes the
// 1-bit result unknown.
func compareOp(l, r Value, signed bool, cmp func(a, b *big.Int) bool) Value {
	w := widthMax(l.width, r.width)
	le, re := l.expand(w), r.expand(w)

	if le.HasUnknown() || re.HasUnknown() {
		return Unknown(1, false)
	}

	var a, b *big.Int

	if signed {
		a, b = le.asSigned(w), re.asSigned(w)
	} else {
		a, b = le.payload, re.payload
	}

	if cmp(a, b) {
		return New(1, 1, false)
	}

	return New(0, 1, false)
}

func Eq(l, r Value) Value  { return compareOp(l, r, false, func(a, b *big.Int) bool { return a.Cmp(b) == 0 }) }
func Neq(l, r Value) Value { return compareOp(l, r, false, func(a, b *big.Int) bool { return a.Cmp(b) != 0 }) }
func ULt(l, r Value) Value { return compareOp(l, r, false, func(a, b *big.Int) bool { return a.Cmp(b) < 0 }) }
func ULe(l, r Value) Value { return compareOp(l, r, false, func(a, b *big.Int) bool { return a.Cmp(b) <= 0 }) }
func UGt(l, r Value) Value { return compareOp(l, r, false, func(a, b *big.Int) bool { return a.Cmp(b) > 0 }) }
func UGe(l, r Value) Value { return compareOp(l, r, false, func(a, b *big.Int) bool { return a.Cmp(b) >= 0 }) }
func SLt(l, r Value) Value { return compareOp(l, r, true, func(a, b *big.Int) bool { return a.Cmp(b) < 0 }) }
func SLe(l, r Value) Value { return compareOp(l, r, true, func(a, b *big.Int) bool { return a.Cmp(b) <= 0 }) }
func SGt(l, r Value) Value { return compareOp(l, r, true, func(a, b *big.Int) bool { return a.Cmp(b) > 0 }) }
func SGe(l, r Value) Value { return compareOp(l, r, true, func(a, b *big.Int) bool { return a.Cmp(b) >= 0 }) }

// WildcardEq implements `==?`: an X or Z bit in r matches anything in l at
// that position; a known bit must match exactly.  Per spec §8.2,
// 0000 ==? 00XX = 1 and 0100 ==? 00XX = 0.
func WildcardEq(l, r Value) Value {
	w := widthMax(l.width, r.width)
	le, re := l.expand(w), r.expand(w)

	for i := uint(0); i < w; i++ {
		if re.mask.Test(i) {
			continue // wildcard position: matches anything
		}

		lb, lk := le.Bit(i)
		rb, _ := re.Bit(i)

		if !lk || lb != rb {
			return New(0, 1, false)
		}
	}

	return New(1, 1, false)
}

// WildcardNeq is the negation of WildcardEq.
func WildcardNeq(l, r Value) Value {
	eq := WildcardEq(l, r)
	if b, _ := eq.Bit(0); b == 1 {
		return New(0, 1, false)
	}

	return New(1, 1, false)
}

// reduce folds every bit of v through a 2-ary known-bit combiner; if any bit
// is unknown the result is unknown, UNLESS the combiner is already
// "saturated" (e.g. reduction-OR over a value containing a known 1 is 1
// regardless of other unknown bits, and reduction-AND over a value
// containing a known 0 is 0 regardless of other unknown bits).
func reduce(v Value, identity uint, saturating uint, combine func(a, b uint) uint) Value {
	acc := identity
	sawSaturating := false
	sawUnknown := false

	for i := uint(0); i < v.width; i++ {
		b, known := v.Bit(i)
		if !known {
			sawUnknown = true
			continue
		}

		if b == saturating {
			sawSaturating = true
		}

		acc = combine(acc, b)
	}

	if sawSaturating {
		return New(uint64(saturating), 1, false)
	}

	if sawUnknown {
		return Unknown(1, false)
	}

	return New(uint64(acc), 1, false)
}

// ReduceAnd is `&v`: AND of every bit.
func ReduceAnd(v Value) Value { return reduce(v, 1, 0, func(a, b uint) uint { return a & b }) }

// ReduceOr is `|v`: OR of every bit.
func ReduceOr(v Value) Value { return reduce(v, 0, 1, func(a, b uint) uint { return a | b }) }

// ReduceXor is `^v`: XOR of every bit; unknown if any bit is unknown (no
// saturating value exists for XOR).
func ReduceXor(v Value) Value {
	acc := uint(0)

	for i := uint(0); i < v.width; i++ {
		b, known := v.Bit(i)
		if !known {
			return Unknown(1, false)
		}

		acc ^= b
	}

	return New(uint64(acc), 1, false)
}

// ReduceNand, ReduceNor, ReduceXnor are the negated forms.
func ReduceNand(v Value) Value { return LogicalNotBit(ReduceAnd(v)) }
func ReduceNor(v Value) Value  { return LogicalNotBit(ReduceOr(v)) }
func ReduceXnor(v Value) Value { return LogicalNotBit(ReduceXor(v)) }

// LogicalNotBit inverts a 1-bit value, preserving unknown-ness.
func LogicalNotBit(v Value) Value {
	if v.HasUnknown() {
		return Unknown(1, false)
	}

	if v.payload.Sign() == 0 {
		return New(1, 1, false)
	}

	return New(0, 1, false)
}

// shiftOp is shared by ShiftLeft/ArithShiftRight/LogicShiftRight: result
// width is max(L-width, ctxWidth) and preserves the LHS's signedness. An
// unknown shift amount poisons the entire result.
func shiftOp(l, r Value, ctxWidth uint, do func(p *big.Int, n uint) *big.Int) Value {
	w := widthMax(l.width, ctxWidth)
	le := l.expand(w)

	if r.HasUnknown() {
		return Unknown(w, l.signed)
	}

	n := uint(r.payload.Uint64())

	if le.HasUnknown() {
		// Shifting still loses information about which original bits
		// land where an unknown was, but bits shifted in are known
		// zero/sign, so we still try to track the mask.
		shiftedMask := shiftMask(le.mask, n, do)
		result := NewBig(do(le.payload, n), w, l.signed)
		result.mask = shiftedMask

		return result
	}

	return NewBig(do(le.payload, n), w, l.signed)
}

func shiftMask(m *bitset.BitSet, n uint, _ func(*big.Int, uint) *big.Int) *bitset.BitSet {
	// Conservative: shift the mask bits themselves left by n (logical
	// shift-left semantics for the unknown-bit tracking; sufficient for
	// the common case of a statically-known shift amount over a partly
	// unknown operand).
	out := bitset.New(m.Len())

	for i, e := m.NextSet(0); e; i, e = m.NextSet(i + 1) {
		if i+n < m.Len() {
			out.Set(i + n)
		}
	}

	return out
}

// ShiftLeft implements `<<`/`<<<` (identical for shift-left).
func ShiftLeft(l, r Value, ctxWidth uint) Value {
	return shiftOp(l, r, ctxWidth, func(p *big.Int, n uint) *big.Int {
		return new(big.Int).Lsh(p, n)
	})
}

// LogicShiftRight implements `>>` (zero-fill).
func LogicShiftRight(l, r Value, ctxWidth uint) Value {
	return shiftOp(l, r, ctxWidth, func(p *big.Int, n uint) *big.Int {
		return new(big.Int).Rsh(p, n)
	})
}

// ArithShiftRight implements `>>>` (sign-fill when signed).
func ArithShiftRight(l, r Value, ctxWidth uint) Value {
	w := widthMax(l.width, ctxWidth)
	le := l.expand(w)

	if r.HasUnknown() {
		return Unknown(w, l.signed)
	}

	n := uint(r.payload.Uint64())

	if !l.signed {
		return LogicShiftRight(l, r, ctxWidth)
	}

	a := le.asSigned(w)
	a.Rsh(a, n)

	return NewBig(a, w, true)
}

// Pow implements `**`; result width per shift-class rule (max(L-width,
// ctxWidth)), preserving LHS signedness.
func Pow(l, r Value, ctxWidth uint) Value {
	w := widthMax(l.width, ctxWidth)

	if !bothKnown2State(l, r) {
		return Unknown(w, l.signed)
	}

	le := l.expand(w)
	result := new(big.Int).Exp(le.payload, r.payload, nil)

	return NewBig(result, w, l.signed)
}

// Concat concatenates values MSB-first: parts[0] occupies the highest bits.
func Concat(parts ...Value) Value {
	width := uint(0)
	for _, p := range parts {
		width += p.width
	}

	result := Unknown(width, false)
	result.mask.ClearAll()

	offset := width

	for _, p := range parts {
		offset -= p.width

		for i := uint(0); i < p.width; i++ {
			if p.mask.Test(i) {
				result.mask.Set(offset + i)
			} else if b, _ := p.Bit(i); b == 1 {
				result.payload.SetBit(result.payload, int(offset+i), 1)
			}
		}
	}

	return result
}

// BitSelect returns bit i as a 1-bit value.
func (v Value) BitSelect(i uint) Value {
	if i >= v.width {
		return Unknown(1, false)
	}

	if v.mask.Test(i) {
		return Unknown(1, false)
	}

	b, _ := v.Bit(i)

	return New(uint64(b), 1, false)
}

// PartSelect returns the inclusive [hi:lo] slice as a (hi-lo+1)-bit value.
func (v Value) PartSelect(hi, lo uint) Value {
	if hi < lo {
		hi, lo = lo, hi
	}

	w := hi - lo + 1
	result := Unknown(w, false)
	result.mask.ClearAll()

	for i := uint(0); i < w; i++ {
		src := lo + i
		if src >= v.width || v.mask.Test(src) {
			result.mask.Set(i)
			continue
		}

		if b, _ := v.Bit(src); b == 1 {
			result.payload.SetBit(result.payload, int(i), 1)
		}
	}

	return result
}

// String renders v as `<width>'h<hex>` with X/x per nibble-level
// unknown-ness, matching the conventional Verilog literal notation used in
// golden-output tests (spec §8.5).
func (v Value) String() string {
	var sb strings.Builder

	if v.mask.None() {
		fmt.Fprintf(&sb, "%d'h%x", v.width, v.payload)

		return sb.String()
	}

	if v.mask.All() {
		fmt.Fprintf(&sb, "%d'hx", v.width)

		return sb.String()
	}

	// Mixed known/unknown: render nibble-wise, marking any nibble with an
	// unknown bit as 'x'.
	nibbles := (v.width + 3) / 4
	digits := make([]byte, nibbles)

	for n := uint(0); n < nibbles; n++ {
		lo := n * 4
		hi := lo + 3

		if hi >= v.width {
			hi = v.width - 1
		}

		unknown := false

		for i := lo; i <= hi; i++ {
			if v.mask.Test(i) {
				unknown = true
				break
			}
		}

		if unknown {
			digits[nibbles-1-n] = 'x'
			continue
		}

		nibVal := uint64(0)
		for i := hi; ; i-- {
			b, _ := v.Bit(i)
			nibVal = nibVal<<1 | uint64(b)

			if i == lo {
				break
			}
		}

		digits[nibbles-1-n] = "0123456789abcdef"[nibVal]
	}

	fmt.Fprintf(&sb, "%d'h%s", v.width, string(digits))

	return sb.String()
}
