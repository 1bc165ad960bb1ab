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
package token

import "github.com/veryl-lang/veryl-analyzer/internal/intern"

// Kind names one non-terminal of the external grammar (e.g.
// "ModuleDeclaration", "IfExpression"). The set is open: internal/lower only
// ever switches on the handful of kinds it needs to lower, and ignores any
// node whose Kind it does not recognise.
type Kind string

// Node is one non-terminal of the parser's concrete syntax tree (spec.md §6:
// "a tree of non-terminals with explicit per-node ancillary fields, opts and
// lists, and Token leaves"). A leaf node carries Leaf and an empty Kind; an
// interior node carries Kind plus whatever Opts/Lists its grammar rule
// produced. Opts/Lists are keyed by the grammar's field name for that rule
// (e.g. a ModuleDeclaration node's "generic" opt, its "port" list), mirroring
// the named-accessor shape a generated parser (pest/ANTLR-style) exposes on
// its rule structs, rather than a positional children slice.
type Node struct {
	Kind  Kind
	Leaf  Token // valid iff Kind == ""
	Opts  map[string]*Node
	Lists map[string][]*Node
	Span  Range
}

// IsLeaf reports whether n is a token leaf rather than an interior
// non-terminal.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == ""
}

// Opt returns the optional child field named name, and whether it was
// present in source (an omitted optional grammar element, e.g. a module
// declaration with no generic parameter list, has no entry at all).
func (n *Node) Opt(name string) (*Node, bool) {
	if n == nil || n.Opts == nil {
		return nil, false
	}

	child, ok := n.Opts[name]

	return child, ok
}

// List returns the repeated-child field named name, or nil if the rule
// produced none.
func (n *Node) List(name string) []*Node {
	if n == nil || n.Lists == nil {
		return nil
	}

	return n.Lists[name]
}

// Text returns the interned text of a leaf node, or the empty-string id if n
// is not a leaf.
func (n *Node) Text() intern.StringID {
	if !n.IsLeaf() {
		return 0
	}

	return n.Leaf.Text
}

// Tree is a single compilation unit's parsed syntax tree: one Root node
// (conventionally a "Veryl" top-level rule holding the file's item list) plus
// the source path it was parsed from. internal/lower consumes *Tree; nothing
// in this module constructs one from raw text, since lexing/parsing is
// external per spec.md §1's Non-goals.
type Tree struct {
	Root *Node
	Path intern.PathID
}

// Walk visits n and every node reachable through its Opts/Lists, depth
// first, calling visit on each. visit returning false stops recursion into
// that node's children (but not its siblings).
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}

	for _, child := range n.Opts {
		Walk(child, visit)
	}

	for _, list := range n.Lists {
		for _, child := range list {
			Walk(child, visit)
		}
	}
}
