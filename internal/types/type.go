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

// Package types implements the type descriptors of spec.md §3/§4.E: a tagged
// sum (not an interface hierarchy, per the "polymorphism without
// inheritance" design note) dispatched on Kind, plus the assignment
// compatibility and cast-legality relations.
package types

import (
	"fmt"
	"strings"

	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/shape"
)

// Kind is the tag distinguishing the variants of Type.
type Kind uint8

// Recognised kinds, per spec.md §3.
const (
	Bit Kind = iota
	Logic
	Clock
	Reset
	StructKind
	UnionKind
	EnumKind
	InterfaceKind
	ModportKind
	AbstractInterfaceKind
	TypeKind // the meta-kind "type" itself (a generic type-parameter value)
	StringKind
	SystemVerilogKind
	UnknownKind
)

// ClockEdge distinguishes clock polarity variants.
type ClockEdge uint8

// Recognised clock edges; Implicit means no polarity was specified.
const (
	ClockImplicit ClockEdge = iota
	ClockPosedge
	ClockNegedge
)

// ResetVariant distinguishes reset polarity/synchronicity variants.
type ResetVariant uint8

// Recognised reset variants; ResetImplicit means no variant was specified.
const (
	ResetImplicit ResetVariant = iota
	ResetAsyncHigh
	ResetAsyncLow
	ResetSyncHigh
	ResetSyncLow
)

// Member is a single struct/union member or enum variant.
type Member struct {
	Name intern.StringID
	Type Type

	// ExplicitValue is set for an EnumKind member that was given an explicit
	// value in source (`Variant = 3`); nil means the sequential
	// auto-assigned value is used instead. Meaningless for struct/union
	// members.
	ExplicitValue *uint64
}

// Signature describes an interface or modport's externally visible shape,
// compared structurally (up to generic substitution) for compatibility.
type Signature struct {
	Members []Member
}

// Type is the tagged descriptor described by spec.md §3.  Invariants: the
// width of scalar kinds is 1; struct width is the sum of member widths;
// union width is member[0]'s width; enum width is Base's width. Arrays never
// appear inside Width, and Width never appears inside Array: the two shapes
// are tracked separately.
type Type struct {
	Kind   Kind
	Signed bool
	Array  shape.Shape
	Width  shape.Shape

	ClockEdge    ClockEdge
	ResetVariant ResetVariant

	Members []Member // Struct/Union/Enum
	Base    *Type    // Enum's base type

	Sig           *Signature // Interface/Modport
	ModportName   intern.StringID
	GenericParams []intern.StringID // substitution keys cleared for structural comparison
}

// Scalar constructs a 1-bit-wide scalar type of the given kind.
func Scalar(kind Kind, signed bool) Type {
	return Type{Kind: kind, Signed: signed, Width: shape.New(1)}
}

// Unknown is the lattice top: compatible with everything (spec §4.E).
func Unknown() Type { return Type{Kind: UnknownKind} }

// SystemVerilogOpaque is the escape hatch for foreign SV instances:
// compatible with everything, same as Unknown, but distinct for diagnostics.
func SystemVerilogOpaque() Type { return Type{Kind: SystemVerilogKind} }

// StructType constructs a struct type from its members in declaration
// order; members are packed MSB-first per spec.md §4.F.4.
func StructType(members []Member) Type {
	total := uint(0)

	for _, m := range members {
		total += memberWidth(m.Type)
	}

	return Type{Kind: StructKind, Members: members, Width: shape.New(total)}
}

// UnionType constructs a union type; its width equals member[0]'s width,
// narrower members are conceptually left-extended with zeros.
func UnionType(members []Member) Type {
	w := uint(0)
	if len(members) > 0 {
		w = memberWidth(members[0].Type)
	}

	return Type{Kind: UnionKind, Members: members, Width: shape.New(w)}
}

// EnumType constructs an enum type over a base scalar type.
func EnumType(base Type, members []Member) Type {
	return Type{Kind: EnumKind, Base: &base, Members: members, Width: base.Width}
}

func memberWidth(t Type) uint {
	if total := t.TotalWidth(); total != nil {
		return *total
	}

	return 0
}

// Is2State reports whether this type's scalar domain excludes X/Z (i.e. it
// is a `bit`-family type, as opposed to `logic`-family).
func (t Type) Is2State() bool {
	switch t.Kind {
	case Bit:
		return true
	case EnumKind:
		return t.Base != nil && t.Base.Is2State()
	default:
		return false
	}
}

// TotalWidth returns the flattened bit width of a value of this type,
// including array replication, or nil if any dimension is unresolved.
func (t Type) TotalWidth() *uint {
	w := t.Width.Total()
	if w == nil {
		return nil
	}

	a := t.Array.Total()
	if a == nil {
		return nil
	}

	total := *w * *a

	return &total
}

// IsCompatible implements the assignment-compatibility relation of spec.md
// §4.E. It is directional: other must be assignable TO t (t is the
// destination/target).
func (t Type) IsCompatible(other Type) bool {
	if t.Kind == UnknownKind || other.Kind == UnknownKind {
		return true
	}

	if t.Kind == SystemVerilogKind || other.Kind == SystemVerilogKind {
		return true
	}

	if t.Kind == TypeKind || other.Kind == TypeKind {
		return t.Kind == TypeKind && other.Kind == TypeKind
	}

	if t.Kind == InterfaceKind || t.Kind == ModportKind || t.Kind == AbstractInterfaceKind {
		if other.Kind != t.Kind && other.Kind != AbstractInterfaceKind {
			return false
		}

		return signatureEqual(t.Sig, other.Sig)
	}

	if !shape.Equal(t.Array, other.Array) {
		return false
	}

	if len(t.Array) > 0 {
		// Recurse on the element type (same Type with Array cleared).
		tElem, oElem := t, other
		tElem.Array, oElem.Array = nil, nil

		return tElem.IsCompatible(oElem)
	}

	switch t.Kind {
	case Clock:
		return other.Kind == Clock || isConstBinaryLiteral(other)
	case Reset:
		return other.Kind == Reset || isConstBinaryLiteral(other)
	case StructKind, UnionKind:
		return t.Kind == other.Kind && membersCompatible(t.Members, other.Members)
	case EnumKind:
		return other.Kind == EnumKind && t.Base != nil && other.Base != nil && t.Base.IsCompatible(*other.Base)
	case StringKind:
		return other.Kind == StringKind
	default: // Bit, Logic
		if t.Is2State() && !other.Is2State() {
			return false
		}

		tw, ow := t.TotalWidth(), other.TotalWidth()
		if tw == nil || ow == nil {
			return true // widths not yet resolved; defer to evaluator
		}

		// Equal widths always fine; a narrower source is fine too since
		// sign/zero-extension is well-defined.  A wider source does not
		// assign without an explicit truncation/cast.
		return *ow <= *tw
	}
}

func isConstBinaryLiteral(t Type) bool {
	return (t.Kind == Bit || t.Kind == Logic) && len(t.Array) == 0
}

func membersCompatible(a, b []Member) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Type.IsCompatible(b[i].Type) {
			return false
		}
	}

	return true
}

func signatureEqual(a, b *Signature) bool {
	if a == nil || b == nil {
		return a == b
	}

	return membersCompatible(a.Members, b.Members)
}

// CanCast reports whether an `as` cast from src to this (target) type is
// legal.  Legal whenever assignment-compatibility holds, EXCEPT that
// clock<->reset casts are always rejected (spec.md §4.E): the two flavours
// are only interconvertible by routing through an explicit `logic` variable.
func (t Type) CanCast(src Type) bool {
	if (t.Kind == Clock && src.Kind == Reset) || (t.Kind == Reset && src.Kind == Clock) {
		return false
	}

	return t.IsCompatible(src)
}

// String renders a human-readable type name, used in diagnostics.
func (t Type) String() string {
	var sb strings.Builder

	switch t.Kind {
	case Bit:
		sb.WriteString("bit")
	case Logic:
		sb.WriteString("logic")
	case Clock:
		sb.WriteString(clockName(t.ClockEdge))
	case Reset:
		sb.WriteString(resetName(t.ResetVariant))
	case StructKind:
		sb.WriteString("struct")
	case UnionKind:
		sb.WriteString("union")
	case EnumKind:
		sb.WriteString("enum")
	case InterfaceKind:
		sb.WriteString("interface")
	case ModportKind:
		sb.WriteString("modport")
	case AbstractInterfaceKind:
		sb.WriteString("interface(abstract)")
	case TypeKind:
		sb.WriteString("type")
	case StringKind:
		sb.WriteString("string")
	case SystemVerilogKind:
		sb.WriteString("$sv")
	default:
		sb.WriteString("unknown")
	}

	if w := t.Width.Total(); w != nil && t.Kind != StructKind && t.Kind != UnionKind && t.Kind != EnumKind {
		fmt.Fprintf(&sb, "<%d>", *w)
	}

	for _, d := range t.Array {
		if d == nil {
			sb.WriteString("[]")
		} else {
			fmt.Fprintf(&sb, "[%d]", *d)
		}
	}

	return sb.String()
}

func clockName(e ClockEdge) string {
	switch e {
	case ClockPosedge:
		return "clock posedge"
	case ClockNegedge:
		return "clock negedge"
	default:
		return "clock"
	}
}

func resetName(v ResetVariant) string {
	switch v {
	case ResetAsyncHigh:
		return "reset async high"
	case ResetAsyncLow:
		return "reset async low"
	case ResetSyncHigh:
		return "reset sync high"
	case ResetSyncLow:
		return "reset sync low"
	default:
		return "reset"
	}
}
