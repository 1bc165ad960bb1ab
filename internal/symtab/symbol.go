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

// Package symtab implements the global symbol table of spec.md §4.D: an
// arena of symbols addressed only by id (never by pointer, per the "cyclic
// references via symbols" design note), indexed by namespace for lookup and
// by source path for incremental drop/rebuild.
package symtab

import (
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
)

// ID is an arena-allocated handle to a Symbol.  Ids are never reused, even
// after Drop: a stale id simply fails to look up (or, if callers are
// careless, could alias a tombstone -- Table.Get panics on a dropped id to
// catch that early).
type ID uint32

// Kind is the tagged-sum discriminant for Symbol, enumerating every
// declaration form named in spec.md §3.
type Kind uint8

// Recognised symbol kinds.
const (
	KindModule Kind = iota
	KindInterface
	KindPackage
	KindProtoModule
	KindProtoInterface
	KindProtoPackage
	KindPort
	KindVariable
	KindParamParam
	KindParamConst
	KindTypeDef
	KindProtoTypeDef
	KindStruct
	KindStructMember
	KindUnion
	KindUnionMember
	KindEnum
	KindEnumMember
	KindEnumMemberMangled
	KindModport
	KindModportVariableMember
	KindModportFunctionMember
	KindFunction
	KindProtoFunction
	KindSystemFunction
	KindInstance
	KindBlock
	KindGenvar
	KindGenericParameter
	KindGenericInstance
	KindAliasModule
	KindAliasInterface
	KindAliasPackage
	KindProtoAliasModule
	KindProtoAliasInterface
	KindProtoAliasPackage
	KindClockDomain
	KindTest
	KindSystemVerilog
	KindNamespace
)

// String gives a stable, lower-kebab rendering used in diagnostics and the
// naming-checker's per-kind rule table.
func (k Kind) String() string {
	names := [...]string{
		"module", "interface", "package", "proto-module", "proto-interface", "proto-package",
		"port", "variable", "param", "const", "typedef", "proto-typedef", "struct", "struct-member",
		"union", "union-member", "enum", "enum-member", "enum-member-mangled", "modport",
		"modport-variable-member", "modport-function-member", "function", "proto-function",
		"system-function", "instance", "block", "genvar", "generic-parameter", "generic-instance",
		"alias-module", "alias-interface", "alias-package", "proto-alias-module",
		"proto-alias-interface", "proto-alias-package", "clock-domain", "test", "systemverilog",
		"namespace",
	}

	if int(k) < len(names) {
		return names[k]
	}

	return "unknown"
}

// GenericBinding maps a formal generic-parameter name to the concrete symbol
// bound to it within a particular instantiation.
type GenericBinding struct {
	Formal intern.StringID
	Bound  ID
}

// Symbol is a single named declaration, per spec.md §3.
type Symbol struct {
	id         ID
	Token      token.Token
	Namespace  Namespace
	Kind       Kind
	Public     bool
	DocComment string
	References []token.Range

	// Type is populated once the declaration's type is known (ports,
	// variables, typedefs, struct/union/enum members, parameters).
	Type types.Type

	// Generics holds the formal generic-parameter symbol ids for a
	// generic-bearing kind (Module/Interface/Package/Function/...).
	Generics []ID
	// Bindings holds the formal->bound mapping once this symbol is a
	// concrete GenericInstance.
	Bindings []GenericBinding
	// GenericOf is set on a GenericInstance, pointing back at the generic
	// declaration it was cloned from.
	GenericOf ID

	// Parent is this symbol's lexically enclosing symbol (module,
	// interface, struct, etc), or the zero ID if at the root.
	Parent ID
	// Children enumerates members/declarations nested directly inside
	// this symbol, in declaration order (used for scope-member lookup and
	// conformance checking).
	Children []ID

	// Source identifies which source file this symbol was declared in,
	// for incremental drop/rebuild (spec.md §5).
	Source intern.PathID

	// ProtoTarget is set when this symbol declares "for <proto>"
	// conformance (a Module/Interface/Package implementing a prototype).
	ProtoTarget ID
	HasProto    bool

	// AliasTarget is set for Alias*/ProtoAlias* kinds: the symbol this
	// one transparently re-resolves through.
	AliasTarget ID
	HasAlias    bool
}

// ID returns this symbol's arena handle.
func (s *Symbol) ID() ID { return s.id }

// Name returns the leaf (unqualified) name of this symbol, i.e. the text of
// its defining token.
func (s *Symbol) Name(tbl *intern.Table) string {
	return tbl.GetStr(s.Token.Text)
}

// IsGenericBearing reports whether this symbol kind can carry generic
// parameters (Module/Interface/Package/Function and their proto forms).
func (k Kind) IsGenericBearing() bool {
	switch k {
	case KindModule, KindInterface, KindPackage, KindProtoModule, KindProtoInterface,
		KindProtoPackage, KindFunction, KindProtoFunction:
		return true
	default:
		return false
	}
}
