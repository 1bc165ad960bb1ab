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
	"fmt"

	"github.com/veryl-lang/veryl-analyzer/internal/intern"
)

// Path is a possibly-qualified reference: `foo::bar::baz` is
// [foo, bar, baz]; an unqualified reference `foo` is [foo].
type Path []intern.StringID

// ResolveError reports a failed resolution, carrying the longest prefix of
// Path that DID resolve to something, per spec.md §4.D step 6.
type ResolveError struct {
	Path           Path
	LongestPrefix  int // count of leading Path elements that resolved
	FailedAt       intern.StringID
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("unresolved reference (%d of %d path segments matched)", e.LongestPrefix, len(e.Path))
}

// ImportEntry is a single splice of another namespace's exports into ns, as
// installed by a `import pkg::*;` or `import pkg::name;` declaration.
type ImportEntry struct {
	Into      Namespace
	FromNS    Namespace
	OnlyName  intern.StringID // zero-value StringID means wildcard import
	Wildcard  bool
}

// Imports tracks the splice edges usable during resolution. It is owned by
// whichever pass builds up namespaces (kept separate from Table so a plain
// Table is usable without import bookkeeping in unit tests).
type Imports struct {
	byNamespace map[string][]ImportEntry
}

// NewImports constructs an empty import-edge set.
func NewImports() *Imports {
	return &Imports{byNamespace: make(map[string][]ImportEntry)}
}

// Add registers a single import edge.
func (im *Imports) Add(entry ImportEntry, tbl *intern.Table) {
	key := keyOf(entry.Into, tbl)
	im.byNamespace[key] = append(im.byNamespace[key], entry)
}

func (im *Imports) entriesFor(ns Namespace, tbl *intern.Table) []ImportEntry {
	return im.byNamespace[keyOf(ns, tbl)]
}

// resolveState threads cycle-guard bookkeeping through a single top-level
// Resolve call, so import splicing cannot loop forever on `import a::*;`
// paired with `import b::*;` inside a::*.
type resolveState struct {
	visitedImportNS map[string]bool
}

// Resolve looks up a (possibly qualified) path starting from namespace ns,
// per spec.md §4.D's six-step algorithm:
//  1. search ns and each enclosing namespace, innermost first;
//  2. within a candidate namespace, match the path's leading segment against
//     a direct child; a generic declaration found this way is returned as
//     is -- Resolve does not instantiate generics, which InstantiateGeneric
//     does separately;
//  3. if the symbol found is an alias, transparently continue resolution
//     through its target;
//  4. if no direct child matches, consult import edges spliced into that
//     namespace (wildcard or named), recursing into the imported namespace
//     with a cycle guard;
//  5. once the leading segment resolves to a symbol, consume it and repeat
//     from step 2 for the remaining path segments, now rooted at that
//     symbol's own namespace (its children);
//  6. if resolution fails at any point, report a ResolveError carrying the
//     longest prefix that succeeded.
func (t *Table) Resolve(path Path, ns Namespace, imports *Imports) (ID, error) {
	if len(path) == 0 {
		return 0, &ResolveError{Path: path}
	}

	// Step 1: innermost-to-outermost search for the leading segment.
	for _, prefix := range ns.Prefixes() {
		if id, ok := t.resolveOne(path[0], prefix, imports, &resolveState{visitedImportNS: map[string]bool{}}); ok {
			return t.resolveRemainder(id, path[1:], path)
		}
	}

	return 0, &ResolveError{Path: path, LongestPrefix: 0, FailedAt: path[0]}
}

// resolveOne finds a direct child (or spliced import) of ns named `name`,
// following alias transparency (step 3).
func (t *Table) resolveOne(name intern.StringID, ns Namespace, imports *Imports, st *resolveState) (ID, bool) {
	candidates := t.lookupInNamespace(ns, name)
	if len(candidates) > 0 {
		id := candidates[0]
		return t.throughAlias(id), true
	}

	if imports == nil {
		return 0, false
	}

	key := keyOf(ns, t.Interner)
	if st.visitedImportNS[key] {
		return 0, false
	}

	st.visitedImportNS[key] = true

	for _, entry := range imports.entriesFor(ns, t.Interner) {
		if entry.Wildcard || entry.OnlyName == name {
			if id, ok := t.resolveOne(name, entry.FromNS, imports, st); ok {
				return id, true
			}
		}
	}

	return 0, false
}

// throughAlias follows Alias*/ProtoAlias* symbols to their ultimate target,
// so callers never observe an alias symbol itself (step 3).
func (t *Table) throughAlias(id ID) ID {
	seen := map[ID]bool{}

	for {
		sym, ok := t.TryGet(id)
		if !ok || !sym.HasAlias || seen[id] {
			return id
		}

		seen[id] = true
		id = sym.AliasTarget
	}
}

// resolveRemainder consumes the remaining path segments as direct children
// of the symbol found so far (step 5); it does no generic instantiation.
func (t *Table) resolveRemainder(id ID, remainder Path, full Path) (ID, error) {
	matched := len(full) - len(remainder)

	for i, seg := range remainder {
		sym := t.Get(id)

		var found ID
		ok := false

		for _, childID := range sym.Children {
			child := t.Get(childID)
			if child.Token.Text == seg {
				found = childID
				ok = true
				break
			}
		}

		if !ok {
			return 0, &ResolveError{Path: full, LongestPrefix: matched + i, FailedAt: seg}
		}

		id = t.throughAlias(found)
	}

	return id, nil
}

// InstantiateGeneric returns the id of the memoised generic instance for
// (genericID, bindings), demand-creating and caching it via cloneFn on first
// use (spec.md §4.D step 2). cloneFn must produce a fresh Symbol tree with
// every reference to a formal generic parameter substituted by its bound
// symbol; Table only owns the memoisation key.
func (t *Table) InstantiateGeneric(genericID ID, bindings []GenericBinding, cloneFn func() Symbol) ID {
	key := genericInstanceKey(genericID, bindings)

	t.mu.Lock()
	if cached, ok := t.genericCache[key]; ok {
		t.mu.Unlock()
		return cached
	}
	t.mu.Unlock()

	clone := cloneFn()
	clone.GenericOf = genericID
	clone.Bindings = bindings
	clone.Kind = KindGenericInstance

	id := t.Insert(clone)

	t.mu.Lock()
	t.genericCache[key] = id
	t.mu.Unlock()

	return id
}

func genericInstanceKey(genericID ID, bindings []GenericBinding) string {
	key := fmt.Sprintf("g%d", genericID)

	for _, b := range bindings {
		key += fmt.Sprintf("|%d=%d", b.Formal, b.Bound)
	}

	return key
}
