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

// Package lower implements the Conv family of spec.md §4.H: mutually
// recursive producers that turn a parsed *token.Tree into an *ir.Ir,
// threading a single mutable Context the way the teacher's translator.go
// threads its own translator struct through a recursive-descent walk.
package lower

import (
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/eval"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// DefaultMaxBits is the ceiling check_size enforces absent an explicit
// Context.MaxBits override (spec.md §4.H: "default 2^20 bits").
const DefaultMaxBits = 1 << 20

// Context is the mutable state threaded through one top-level component's
// lowering: the affiliation/hierarchy-label stack generate-unrolling pushes
// and pops, the default clock/reset in scope, comptime variable bindings
// (generate-loop indices, comptime consts), the diagnostic sink, and the
// symbol table being consulted for resolution. One Context is built per
// Module/Interface/Package; it is never shared across components, mirroring
// internal/eval.Context's own per-component lifetime.
type Context struct {
	Table    *symtab.Table
	Interner *intern.Table
	Sink     *diag.Sink
	Eval     *eval.Context

	// MaxBits is the check_size ceiling; zero means DefaultMaxBits.
	MaxBits uint

	// Affiliation is the current hierarchy-label stack, innermost last:
	// a generate-for pushes "label[i]" per iteration, a generate-if pushes
	// the label of whichever branch survived constant folding.
	Affiliation []intern.StringID

	// Bindings holds comptime variable values currently in scope: generate
	// loop variables and `const`/comptime `let`/`param` bindings, keyed by
	// name. A child Context created for a nested generate block inherits a
	// copy, so a binding shadowed deeper in never leaks back out to a sibling
	// iteration.
	Bindings map[intern.StringID]ir.Comptime

	DefaultClock ir.VarID
	DefaultReset ir.VarID
	HasDefClock  bool
	HasDefReset  bool

	// Modules indexes every top-level Module/Interface lowered so far by
	// name, so an instance declaration lowered later in the same (or a
	// later) top-level item can resolve its target's port set. A map is a
	// reference type, so Child() sharing the same Context value shares this
	// registry across every nested scope without needing its own copy.
	Modules map[intern.StringID]*ir.Component
}

// NewContext constructs the root Context for lowering one top-level
// component.
func NewContext(tbl *symtab.Table, sink *diag.Sink) *Context {
	return &Context{
		Table:    tbl,
		Interner: tbl.Interner,
		Sink:     sink,
		Eval:     eval.NewContext(sink, tbl.Interner),
		Bindings: make(map[intern.StringID]ir.Comptime),
		Modules:  make(map[intern.StringID]*ir.Component),
	}
}

// Child returns a new Context for a nested lexical scope (a generate block
// iteration, an if-generate branch): same table/sink/eval, a fresh copy of
// Bindings so the child can shadow without mutating the parent, and the same
// Affiliation slice header (the caller pushes/pops around the recursive
// call).
func (c *Context) Child() *Context {
	bindings := make(map[intern.StringID]ir.Comptime, len(c.Bindings))
	for k, v := range c.Bindings {
		bindings[k] = v
	}

	child := *c
	child.Bindings = bindings

	return &child
}

// PushAffiliation returns a Context with label appended to the hierarchy
// stack; the caller discards the returned Context (or its Affiliation slice)
// once the labelled construct has been fully lowered.
func (c *Context) PushAffiliation(label intern.StringID) *Context {
	child := c.Child()
	child.Affiliation = append(append([]intern.StringID(nil), c.Affiliation...), label)

	return child
}

// maxBits returns the effective check_size ceiling.
func (c *Context) maxBits() uint {
	if c.MaxBits == 0 {
		return DefaultMaxBits
	}

	return c.MaxBits
}

// CheckSize rejects sizes exceeding the configured maximum (spec.md §4.H),
// reporting TooLargeNumber and returning false when n is too large; returns
// true (and pushes nothing) otherwise.
func (c *Context) CheckSize(n uint, span token.Range) bool {
	if n <= c.maxBits() {
		return true
	}

	c.Sink.Errorf(diag.TooLargeNumber, span,
		"size %d exceeds the maximum of %d bits", n, c.maxBits())

	return false
}
