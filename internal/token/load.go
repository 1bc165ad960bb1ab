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

// RawNode is the wire form of Node: the external parser (or a test fixture)
// emits a tree of these, with leaf text as a plain string rather than an
// already-interned StringID, since the interner lives on this module's side
// of the parser boundary. Load walks a RawNode tree once, interning every
// leaf's text and the file's own path, to build the Tree this module's
// lowering actually consumes.
type RawNode struct {
	Kind  string              `json:"kind,omitempty"`
	Text  string              `json:"text,omitempty"`
	Line  uint32              `json:"line,omitempty"`
	Col   uint32              `json:"col,omitempty"`
	Len   uint32              `json:"len,omitempty"`
	Off   uint32              `json:"off,omitempty"`
	Opts  map[string]*RawNode `json:"opts,omitempty"`
	Lists map[string][]*RawNode `json:"lists,omitempty"`
}

// Load interns path and every leaf's text in root, producing the Tree
// internal/lower consumes. It never fails: a RawNode with no Kind and no
// Text lowers to an empty leaf rather than erroring, since fixture authors
// occasionally omit fields they don't care about for a given test.
func Load(it *intern.Table, path string, root *RawNode) *Tree {
	pathID := it.InsertPath(path)

	return &Tree{Root: loadNode(it, pathID, root), Path: pathID}
}

func loadNode(it *intern.Table, path intern.PathID, raw *RawNode) *Node {
	if raw == nil {
		return nil
	}

	n := &Node{
		Kind: Kind(raw.Kind),
		Leaf: Token{
			Text:   it.InsertStr(raw.Text),
			Source: path,
			Line:   raw.Line,
			Column: raw.Col,
			Length: raw.Len,
			Offset: raw.Off,
		},
	}
	n.Span = NewRange(n.Leaf)

	if len(raw.Opts) > 0 {
		n.Opts = make(map[string]*Node, len(raw.Opts))
		for k, v := range raw.Opts {
			n.Opts[k] = loadNode(it, path, v)
		}
	}

	if len(raw.Lists) > 0 {
		n.Lists = make(map[string][]*Node, len(raw.Lists))
		for k, list := range raw.Lists {
			children := make([]*Node, 0, len(list))
			for _, v := range list {
				children = append(children, loadNode(it, path, v))
			}
			n.Lists[k] = children
		}
	}

	return n
}
