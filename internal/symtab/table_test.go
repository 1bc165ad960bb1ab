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
	"testing"

	"github.com/veryl-lang/veryl-analyzer/internal/assert"
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
)

func newTok(it *intern.Table, text string, path intern.PathID) token.Token {
	return token.Token{Text: it.InsertStr(text), Source: path}
}

func TestInsertAndGetRoundtrip(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")

	id := tbl.Insert(Symbol{Token: newTok(it, "foo", p), Kind: KindVariable, Source: p})

	sym := tbl.Get(id)
	assert.Equal(t, "foo", sym.Name(it))
}

func TestGetOnDroppedSymbolPanics(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")

	id := tbl.Insert(Symbol{Token: newTok(it, "foo", p), Kind: KindVariable, Source: p})
	tbl.Drop(p)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected Get on a dropped id to panic")
		}
	}()

	tbl.Get(id)
}

// TestResolveInnermostShadowsOuter mirrors spec.md §8.8's worked example:
// a variable `x` declared both at module scope and inside a nested block
// resolves, from inside the block, to the block-local declaration.
func TestResolveInnermostShadowsOuter(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")

	modNS := Namespace{it.InsertStr("m")}
	blockNS := modNS.Extend(it.InsertStr("blk"))

	outer := tbl.Insert(Symbol{Token: newTok(it, "x", p), Kind: KindVariable, Namespace: modNS, Source: p})
	inner := tbl.Insert(Symbol{Token: newTok(it, "x", p), Kind: KindVariable, Namespace: blockNS, Source: p})

	path := Path{it.InsertStr("x")}

	resolved, err := tbl.Resolve(path, blockNS, nil)
	assert.NoError(t, err)
	assert.Equal(t, inner, resolved)

	resolved, err = tbl.Resolve(path, modNS, nil)
	assert.NoError(t, err)
	assert.Equal(t, outer, resolved)
}

func TestResolveThroughWildcardImport(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")

	pkgNS := Namespace{it.InsertStr("pkg")}
	modNS := Namespace{it.InsertStr("m")}

	constID := tbl.Insert(Symbol{Token: newTok(it, "WIDTH", p), Kind: KindParamConst, Namespace: pkgNS, Source: p})

	imports := NewImports()
	imports.Add(ImportEntry{Into: modNS, FromNS: pkgNS, Wildcard: true}, it)

	resolved, err := tbl.Resolve(Path{it.InsertStr("WIDTH")}, modNS, imports)
	assert.NoError(t, err)
	assert.Equal(t, constID, resolved)
}

func TestResolveMissingReportsLongestPrefix(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")

	modNS := Namespace{it.InsertStr("m")}
	structID := tbl.Insert(Symbol{Token: newTok(it, "S", p), Kind: KindStruct, Namespace: modNS, Source: p})

	member := tbl.Insert(Symbol{Token: newTok(it, "a", p), Kind: KindStructMember,
		Namespace: modNS.Extend(it.InsertStr("S")), Source: p})
	tbl.SetChildren(structID, []ID{member})

	_, err := tbl.Resolve(Path{it.InsertStr("S"), it.InsertStr("nope")}, modNS, nil)
	assert.Error(t, err)

	rerr, ok := err.(*ResolveError)
	assert.True(t, ok)
	assert.Equal(t, 1, rerr.LongestPrefix)
}

func TestResolveThroughAlias(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")
	ns := Namespace{it.InsertStr("m")}

	target := tbl.Insert(Symbol{Token: newTok(it, "Real", p), Kind: KindModule, Namespace: ns, Source: p})
	aliasID := tbl.Insert(Symbol{Token: newTok(it, "Alias", p), Kind: KindAliasModule, Namespace: ns,
		Source: p, AliasTarget: target, HasAlias: true})
	_ = aliasID

	resolved, err := tbl.Resolve(Path{it.InsertStr("Alias")}, ns, nil)
	assert.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestInstantiateGenericMemoises(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")
	ns := Namespace{it.InsertStr("m")}

	genericID := tbl.Insert(Symbol{Token: newTok(it, "Buf", p), Kind: KindModule, Namespace: ns, Source: p})
	formal := it.InsertStr("WIDTH")
	boundConst := tbl.Insert(Symbol{Token: newTok(it, "8", p), Kind: KindParamConst, Namespace: ns, Source: p})

	calls := 0
	cloneFn := func() Symbol {
		calls++
		return Symbol{Token: newTok(it, "Buf", p), Namespace: ns, Source: p}
	}

	bindings := []GenericBinding{{Formal: formal, Bound: boundConst}}

	id1 := tbl.InstantiateGeneric(genericID, bindings, cloneFn)
	id2 := tbl.InstantiateGeneric(genericID, bindings, cloneFn)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, calls)
}

func TestCheckProtoReportsMissingAndIncompatible(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")
	ns := Namespace{it.InsertStr("m")}

	protoID := tbl.Insert(Symbol{Token: newTok(it, "P", p), Kind: KindProtoModule, Namespace: ns, Source: p})
	implID := tbl.Insert(Symbol{Token: newTok(it, "I", p), Kind: KindModule, Namespace: ns, Source: p})

	wantPort := tbl.Insert(Symbol{Token: newTok(it, "clk", p), Kind: KindPort,
		Type: types.Type{Kind: types.Clock}, Namespace: ns, Source: p})
	missingPort := tbl.Insert(Symbol{Token: newTok(it, "rst", p), Kind: KindPort,
		Type: types.Type{Kind: types.Reset}, Namespace: ns, Source: p})
	tbl.SetChildren(protoID, []ID{wantPort, missingPort})

	implPort := tbl.Insert(Symbol{Token: newTok(it, "clk", p), Kind: KindPort,
		Type: types.Scalar(types.Bit, false), Namespace: ns, Source: p})
	tbl.SetChildren(implID, []ID{implPort})

	sink := diag.NewSink()
	tbl.CheckProto(protoID, implID, sink)

	all := sink.All()
	assert.True(t, len(all) >= 2)

	sawMissing, sawIncompatible := false, false

	for _, d := range all {
		assert.Equal(t, diag.IncompatProto, d.Code)

		if d.ProtoAction == diag.Missing {
			sawMissing = true
		}

		if d.ProtoAction == diag.Incompatible {
			sawIncompatible = true
		}
	}

	assert.True(t, sawMissing)
	assert.True(t, sawIncompatible)
}

// TestCheckProtoReportsUnnecessaryPort reproduces spec.md §8.7's third
// bullet: an impl adding port `y` not declared by `P` reports Unnecessary.
func TestCheckProtoReportsUnnecessaryPort(t *testing.T) {
	it := intern.New()
	tbl := New(it)
	p := it.InsertPath("mod.vl")
	ns := Namespace{it.InsertStr("m")}

	protoID := tbl.Insert(Symbol{Token: newTok(it, "P", p), Kind: KindProtoModule, Namespace: ns, Source: p})
	implID := tbl.Insert(Symbol{Token: newTok(it, "I", p), Kind: KindModule, Namespace: ns, Source: p})

	xPort := tbl.Insert(Symbol{Token: newTok(it, "x", p), Kind: KindPort,
		Type: types.Scalar(types.Logic, false), Namespace: ns, Source: p})
	tbl.SetChildren(protoID, []ID{xPort})

	implX := tbl.Insert(Symbol{Token: newTok(it, "x", p), Kind: KindPort,
		Type: types.Scalar(types.Logic, false), Namespace: ns, Source: p})
	implY := tbl.Insert(Symbol{Token: newTok(it, "y", p), Kind: KindPort,
		Type: types.Scalar(types.Logic, false), Namespace: ns, Source: p})
	tbl.SetChildren(implID, []ID{implX, implY})

	sink := diag.NewSink()
	tbl.CheckProto(protoID, implID, sink)

	all := sink.All()

	sawUnnecessary := false

	for _, d := range all {
		if d.ProtoAction == diag.Unnecessary {
			sawUnnecessary = true
			assert.Equal(t, "y", d.ProtoName)
		}
	}

	assert.True(t, sawUnnecessary)
}

func TestNamespacePrefixesInnermostFirst(t *testing.T) {
	it := intern.New()
	ns := Namespace{it.InsertStr("a"), it.InsertStr("b"), it.InsertStr("c")}

	prefixes := ns.Prefixes()
	assert.Equal(t, 4, len(prefixes))
	assert.Equal(t, 3, len(prefixes[0]))
	assert.Equal(t, 0, len(prefixes[3]))
}
