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
package ir

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// Variable is the lowered IR form of a declared signal, parameter, or let
// binding (spec.md §3). Value/Assigned have length Π(array dims): one slot
// per flattened array element.
type Variable struct {
	ID          VarID
	Path        VarPath
	Kind        VarKind
	Type        types.Type
	Value       []value.Value
	Assigned    []*bitset.BitSet // per-element bitmask of written bits
	AssignedAny []bool           // per-element "written via a not-statically-known index"
	Affiliation intern.StringID
	Token       token.Token
}

// Function is a lowered function declaration; its body is a Statement list
// evaluated the same way a procedural block is.
type Function struct {
	ID     symtab.ID
	Name   intern.StringID
	Params []VarID
	Return types.Type
	Body   []Statement
	Token  token.Token
}

// ComponentKind tags the top-level IR component union (spec.md §3).
type ComponentKind uint8

// Recognised component kinds.
const (
	ComponentModule ComponentKind = iota
	ComponentInterface
	ComponentPackage
)

// ProcKind distinguishes a module's procedural blocks.
type ProcKind uint8

// Recognised procedural block kinds.
const (
	ProcAlwaysComb ProcKind = iota
	ProcAlwaysFF
	ProcInitial
)

// Process is one `always_comb`/`always_ff`/`initial` block lowered to a
// flat statement list, plus (for always_ff) the clock/reset ports it is
// sensitive to.
type Process struct {
	Kind  ProcKind
	Clock VarID
	Reset VarID
	Body  []Statement
	Span  token.Range

	// Assigns optionally holds this block's AssignTable: which bits of which
	// variables were written, and which were read before any write reached
	// them within the block (spec.md §4.F.5/§4.F.6). internal/lower does not
	// set it. CheckVarRef consults it when it is set and otherwise scans the
	// table's VarRefs log; CheckAssignmentCoverage always rebuilds coverage
	// from Body.
	Assigns *AssignTable
}

// Instance is a lowered module/interface instantiation, with its port
// connections resolved against the instantiated component's declared ports.
type Instance struct {
	ID         symtab.ID
	Name       intern.StringID
	Target     symtab.ID // the instantiated Module/Interface symbol
	PortConns  map[VarID]Expression
	GenericArg []symtab.GenericBinding
	Token      token.Token
}

// Component is the lowered form of a single Module, Interface, or Package
// (spec.md §3/§6): `Ir { components: []Component }` is the analyzer's
// public output.
type Component struct {
	Kind ComponentKind
	Name intern.StringID

	Ports     map[string]VarID // keyed by the rendered VarPath, per spec.md §3
	PortTypes map[VarID]types.Type
	Variables map[VarID]*Variable
	Functions map[intern.StringID]*Function
	Instances []Instance
	Processes []Process

	DefaultClock intern.StringID
	DefaultReset intern.StringID
	HasDefClock  bool
	HasDefReset  bool

	SuppressUnassigned bool

	Token token.Token
}

// NewComponent constructs an empty component ready for lowering to fill in.
func NewComponent(kind ComponentKind, name intern.StringID, tok token.Token) *Component {
	return &Component{
		Kind:      kind,
		Name:      name,
		Ports:     make(map[string]VarID),
		PortTypes: make(map[VarID]types.Type),
		Variables: make(map[VarID]*Variable),
		Functions: make(map[intern.StringID]*Function),
		Token:     tok,
	}
}

// Ir is the analyzer's single lowered output: one Component per top-level
// module/interface/package, in source declaration order (spec.md §6).
type Ir struct {
	Components []*Component
}
