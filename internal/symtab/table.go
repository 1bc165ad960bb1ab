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
	"sync"

	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// nameKey indexes a symbol by its enclosing namespace and leaf name.
type nameKey struct {
	ns   string // Namespace rendered to a comparable key (see keyOf)
	name intern.StringID
}

// VarRefEntry records a single read or write of a variable, for the
// unassigned/referring-before-definition checks (spec.md §4.D, §4.F.6).
type VarRefEntry struct {
	Variable ID
	Write    bool
	Span     token.Range
}

// Attribute is a single `#[name(args...)]` annotation attached to a token.
type Attribute struct {
	Name intern.StringID
	Args []string
	Span token.Range
}

// Table is the process- (or session-) wide symbol table.  It owns every
// Symbol; everything else refers to symbols only by ID, so the graph of
// cross-symbol edges (self-referential types, mutual module instances) can
// be cyclic without requiring owning pointers anywhere (spec.md §9).
//
// Write contention is confined to pass 1 (symbol insertion); later passes
// are read-mostly, matching the single-mutex-per-table policy of spec.md §5.
type Table struct {
	mu      sync.RWMutex
	symbols []Symbol          // index i holds the symbol with ID(i)
	dropped []bool            // parallel to symbols; true once tombstoned
	names   map[nameKey][]ID  // namespace+leaf-name -> candidate ids (decl order)
	byPath  map[intern.PathID][]ID

	genericCache map[string]ID // memoised generic-instance key -> instance id

	attrMu sync.RWMutex
	attrs  map[token.ID][]Attribute

	varRefMu sync.Mutex
	varRefs  []VarRefEntry

	Interner *intern.Table
}

// New constructs an empty symbol table backed by the given interner.
func New(interner *intern.Table) *Table {
	return &Table{
		names:        make(map[nameKey][]ID),
		byPath:       make(map[intern.PathID][]ID),
		genericCache: make(map[string]ID),
		attrs:        make(map[token.ID][]Attribute),
		Interner:     interner,
	}
}

func keyOf(ns Namespace, tbl *intern.Table) string {
	s := ""

	for _, id := range ns {
		s += tbl.GetStr(id) + "\x00"
	}

	return s
}

// Insert adds sym to the arena and indexes it by namespace+name and by
// source path.  Returns the freshly allocated ID.
func (t *Table) Insert(sym Symbol) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := ID(len(t.symbols))
	sym.id = id
	t.symbols = append(t.symbols, sym)
	t.dropped = append(t.dropped, false)

	key := nameKey{ns: keyOf(sym.Namespace, t.Interner), name: sym.Token.Text}
	t.names[key] = append(t.names[key], id)
	t.byPath[sym.Source] = append(t.byPath[sym.Source], id)

	return id
}

// Get returns the symbol for id.  Panics if id was never issued, or was
// subsequently dropped -- both indicate a programming error upstream, since
// every other structure is expected to drop its own references in lock-step
// with Table.Drop.
func (t *Table) Get(id ID) *Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(id) >= len(t.symbols) || t.dropped[id] {
		panic("symtab: stale or unknown symbol id")
	}

	return &t.symbols[id]
}

// TryGet is the non-panicking counterpart of Get.
func (t *Table) TryGet(id ID) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(id) >= len(t.symbols) || t.dropped[id] {
		return nil, false
	}

	return &t.symbols[id], true
}

// All returns every live symbol id, in arena order.
func (t *Table) All() []ID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]ID, 0, len(t.symbols))

	for i := range t.symbols {
		if !t.dropped[i] {
			out = append(out, ID(i))
		}
	}

	return out
}

// lookupInNamespace returns the ids declared with leaf name `name` directly
// in namespace ns (no prefix search).
func (t *Table) lookupInNamespace(ns Namespace, name intern.StringID) []ID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	key := nameKey{ns: keyOf(ns, t.Interner), name: name}

	ids := t.names[key]
	out := make([]ID, 0, len(ids))

	for _, id := range ids {
		if !t.dropped[id] {
			out = append(out, id)
		}
	}

	return out
}

// SetChildren installs the nested-declaration list for id. Mutating a
// Symbol's slice fields must go through the table rather than the pointer
// returned by Get/TryGet, since a later Insert can grow the underlying
// arena and relocate it out from under a previously taken pointer.
func (t *Table) SetChildren(id ID, children []ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if int(id) >= len(t.symbols) {
		panic("symtab: stale or unknown symbol id")
	}

	t.symbols[id].Children = children
}

// SetProtoTarget records that id declares conformance to the prototype proto.
func (t *Table) SetProtoTarget(id, proto ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if int(id) >= len(t.symbols) {
		panic("symtab: stale or unknown symbol id")
	}

	t.symbols[id].ProtoTarget = proto
	t.symbols[id].HasProto = true
}

// Drop removes every symbol declared in the given source path, for
// incremental re-analysis.  The removal is atomic with respect to
// subsequent resolutions: once Drop returns, no later Resolve call can
// observe the dropped symbols.
func (t *Table) Drop(path intern.PathID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range t.byPath[path] {
		t.dropped[id] = true
	}

	delete(t.byPath, path)
}

// Clear resets the table to empty, as if newly constructed.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.symbols = nil
	t.dropped = nil
	t.names = make(map[nameKey][]ID)
	t.byPath = make(map[intern.PathID][]ID)
	t.genericCache = make(map[string]ID)
}

// AddAttribute records a `#[...]` annotation against the token it decorates.
func (t *Table) AddAttribute(tok token.ID, attr Attribute) {
	t.attrMu.Lock()
	defer t.attrMu.Unlock()
	t.attrs[tok] = append(t.attrs[tok], attr)
}

// AttributesOf returns the attributes recorded against tok, if any.
func (t *Table) AttributesOf(tok token.ID) []Attribute {
	t.attrMu.RLock()
	defer t.attrMu.RUnlock()

	return append([]Attribute(nil), t.attrs[tok]...)
}

// AttrEntry pairs a recorded Attribute with the token it decorates, for
// checkers that need to sweep every attribute in the table rather than look
// one up by a known token (spec.md §4.G's allow/unsafe/naming checkers).
type AttrEntry struct {
	Token     token.ID
	Attribute Attribute
}

// AllAttributes returns every attribute recorded in the table, in
// insertion-nondeterministic (map) order; callers that need a stable order
// should sort by Entry.Token.
func (t *Table) AllAttributes() []AttrEntry {
	t.attrMu.RLock()
	defer t.attrMu.RUnlock()

	out := make([]AttrEntry, 0, len(t.attrs))

	for tok, attrs := range t.attrs {
		for _, a := range attrs {
			out = append(out, AttrEntry{Token: tok, Attribute: a})
		}
	}

	return out
}

// AddVarRef logs a single variable read/write, consulted by the
// unassigned-variable and referring-before-definition checks.
func (t *Table) AddVarRef(entry VarRefEntry) {
	t.varRefMu.Lock()
	defer t.varRefMu.Unlock()
	t.varRefs = append(t.varRefs, entry)
}

// VarRefs returns every logged variable reference, in log order.
func (t *Table) VarRefs() []VarRefEntry {
	t.varRefMu.Lock()
	defer t.varRefMu.Unlock()

	return append([]VarRefEntry(nil), t.varRefs...)
}
