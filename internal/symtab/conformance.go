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
package symtab

import (
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// protoMemberKind maps the subset of Kind that check_proto compares between a
// prototype and its implementor, mapped onto diag's IncompatProtoMember
// taxonomy (spec.md §4.D conformance checking / §7 IncompatProto).
func protoMemberKind(k Kind) (diag.IncompatProtoMember, bool) {
	switch k {
	case KindParamParam:
		return diag.ProtoParam, true
	case KindPort:
		return diag.ProtoPort, true
	case KindVariable:
		return diag.ProtoVar, true
	case KindTypeDef, KindProtoTypeDef:
		return diag.ProtoTypedef, true
	case KindFunction, KindProtoFunction:
		return diag.ProtoFunction, true
	case KindAliasModule, KindAliasInterface, KindAliasPackage,
		KindProtoAliasModule, KindProtoAliasInterface, KindProtoAliasPackage:
		return diag.ProtoAlias, true
	case KindModport:
		return diag.ProtoModport, true
	case KindGenericParameter:
		return diag.ProtoGenericParam, true
	default:
		return diag.ProtoType, false
	}
}

// mustDeclareKind reports whether extra impl members of this kind, beyond
// what the prototype declares, are themselves a conformance error.  Per
// spec.md §4.D, "extras are allowed" for most member kinds, but a module or
// interface's port list IS its instantiation contract: an impl adding a
// port the prototype never declared changes that contract, so ports are the
// one kind reported as Unnecessary (spec.md §8.7's worked example).
func mustDeclareKind(k Kind) bool {
	return k == KindPort
}

// CheckProto validates that implID's declared member set conforms to the
// prototype declared at protoID, emitting one IncompatProto diagnostic per
// mismatch: Missing (in proto, absent from impl), Unnecessary (impl declares
// a must-declare-kind member -- currently only ports -- the proto never
// required), and Incompatible (both declare it, but the member's Type
// disagrees).
func (t *Table) CheckProto(protoID, implID ID, sink *diag.Sink) {
	proto := t.Get(protoID)
	impl := t.Get(implID)

	implByName := make(map[string]ID, len(impl.Children))
	for _, cid := range impl.Children {
		c := t.Get(cid)
		implByName[c.Name(t.Interner)] = cid
	}

	protoByName := make(map[string]bool, len(proto.Children))

	for _, pid := range proto.Children {
		pm := t.Get(pid)
		name := pm.Name(t.Interner)
		protoByName[name] = true

		member, kind := protoMemberKind(pm.Kind)

		implCID, found := implByName[name]
		if !found {
			sink.IncompatProtof(diag.Missing, member, name,
				"%s %q required by prototype is not declared", token.NewRange(impl.Token), pm.Kind, name)
			continue
		}

		im := t.Get(implCID)

		if !kind {
			continue
		}

		if !im.Type.IsCompatible(pm.Type) || !pm.Type.IsCompatible(im.Type) {
			sink.IncompatProtof(diag.Incompatible, member, name,
				"%s %q does not match prototype's declared type (%s vs %s)", token.NewRange(im.Token),
				pm.Kind, name, im.Type.String(), pm.Type.String())
		}
	}

	for _, cid := range impl.Children {
		c := t.Get(cid)
		name := c.Name(t.Interner)

		if protoByName[name] || !mustDeclareKind(c.Kind) {
			continue
		}

		member, _ := protoMemberKind(c.Kind)
		sink.IncompatProtof(diag.Unnecessary, member, name,
			"%s %q is not declared by the prototype", token.NewRange(c.Token), c.Kind, name)
	}
}
