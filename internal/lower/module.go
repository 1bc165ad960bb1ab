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
package lower

import (
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/shape"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// elemsOf returns one placeholder Value, standing in for the single element
// every declaration this package lowers has: convType flattens a
// declaration's bit width into one Shape dimension rather than modelling
// separate array-of-element dimensions, so there is always exactly one
// element to cover. The entry carries no computed content --
// internal/check.CheckAssignmentCoverage only ever ranges over this slice to
// learn how many per-element coverage tables a variable needs, never reads
// its payload.
func elemsOf(types.Type) []value.Value {
	return make([]value.Value, 1)
}

// ConvTree lowers every top-level declaration in tree into one ir.Ir, in
// source order (spec.md §6: "one Component per top-level module/interface/
// package, in source declaration order").
func ConvTree(tree *token.Tree, tbl *symtab.Table, sink *diag.Sink) *ir.Ir {
	out := &ir.Ir{}
	ctx := NewContext(tbl, sink)

	for _, n := range tree.Root.List("item") {
		var comp *ir.Component

		switch n.Kind {
		case KindModule:
			comp = ctx.ConvModule(n)
		case KindInterface:
			comp = ctx.ConvInterface(n)
		case KindPackage:
			comp = ctx.ConvPackage(n)
		default:
			continue
		}

		out.Components = append(out.Components, comp)
		ctx.Modules[comp.Name] = comp
	}

	return out
}

// ConvModule lowers a single module declaration into an ir.Component,
// threading a fresh child Context that carries the module's default clock/
// reset into every process and instance it declares (spec.md §4.H: "produce
// fresh child contexts that inherit parent imports and generic bindings").
func (ctx *Context) ConvModule(n *token.Node) *ir.Component {
	nameNode, _ := n.Opt("name")
	comp := ir.NewComponent(ir.ComponentModule, nameNode.Text(), n.Leaf)
	mctx := ctx.Child()

	if clock, ok := n.Opt("default_clock"); ok {
		if id, resolved := mctx.resolveName(clock.Text()); resolved {
			mctx.DefaultClock, mctx.HasDefClock = ir.VarID(id), true
			comp.DefaultClock, comp.HasDefClock = clock.Text(), true
		}
	}

	if reset, ok := n.Opt("default_reset"); ok {
		if id, resolved := mctx.resolveName(reset.Text()); resolved {
			mctx.DefaultReset, mctx.HasDefReset = ir.VarID(id), true
			comp.DefaultReset, comp.HasDefReset = reset.Text(), true
		}
	}

	mctx.convPorts(n, comp)
	mctx.convBody(n.List("item"), comp)

	return comp
}

// ConvInterface lowers an interface declaration the same way a module is
// lowered, minus always_ff/always_comb processes (an interface only ever
// declares ports, variables, modports, and nested generate blocks).
func (ctx *Context) ConvInterface(n *token.Node) *ir.Component {
	nameNode, _ := n.Opt("name")
	comp := ir.NewComponent(ir.ComponentInterface, nameNode.Text(), n.Leaf)
	ictx := ctx.Child()

	ictx.convPorts(n, comp)
	ictx.convBody(n.List("item"), comp)

	return comp
}

// ConvPackage lowers a package declaration: a flat bag of consts, typedefs,
// and functions, with no ports or processes.
func (ctx *Context) ConvPackage(n *token.Node) *ir.Component {
	nameNode, _ := n.Opt("name")
	comp := ir.NewComponent(ir.ComponentPackage, nameNode.Text(), n.Leaf)
	pctx := ctx.Child()

	pctx.convBody(n.List("item"), comp)

	return comp
}

func (ctx *Context) convPorts(n *token.Node, comp *ir.Component) {
	for _, p := range n.List("port") {
		nameNode, _ := p.Opt("name")
		dirNode, _ := p.Opt("dir")

		kind := portKindOf(ctx.Interner.GetStr(dirNode.Text()))
		t := ctx.convType(p)

		id := ctx.Table.Insert(symtab.Symbol{Token: p.Leaf, Kind: symtab.KindPort, Type: t})
		varID := ir.VarID(id)

		v := &ir.Variable{ID: varID, Path: ir.VarPath{nameNode.Text()}, Kind: kind, Type: t, Token: p.Leaf, Value: elemsOf(t)}
		comp.Variables[varID] = v
		comp.Ports[ctx.Interner.GetStr(nameNode.Text())] = varID
		comp.PortTypes[varID] = t
	}
}

func portKindOf(dir string) ir.VarKind {
	switch dir {
	case "output":
		return ir.VarOutput
	case "inout":
		return ir.VarInout
	default:
		return ir.VarInput
	}
}

// convType builds this declaration's type. Full type-expression lowering
// (struct/union/enum/typedef resolution) belongs to a dedicated pass this
// package does not yet implement; absent a width list, a declaration is
// treated as a 1-bit logic scalar, matching Veryl's own implicit-width
// default for an undecorated `logic`/`var` declaration.
func (ctx *Context) convType(n *token.Node) types.Type {
	width := uint(1)

	if w, ok := n.Opt("width"); ok {
		e := ctx.ConvExpr(w)
		if e.Comptime.IsConst {
			width = uint(e.Comptime.Value.BigInt().Uint64())
		}
	}

	ctx.CheckSize(width, n.Span)

	t := types.Scalar(types.Logic, false)
	t.Width = shape.New(width)

	return t
}

func (ctx *Context) convBody(items []*token.Node, comp *ir.Component) {
	for _, n := range items {
		switch n.Kind {
		case "Variable", "Const", "Let":
			ctx.convVariableDecl(n, comp)
		case KindForGenerate:
			for _, it := range ctx.ConvForGenerate(n) {
				it.Ctx.convBody(it.Body, comp)
			}
		case KindIfGenerate:
			if it, ok := ctx.ConvIfGenerate(n); ok {
				it.Ctx.convBody(it.Body, comp)
			}
		case KindInstanceDecl:
			ctx.convInstanceDecl(n, comp)
		case "AlwaysComb", "AlwaysFF", "Initial":
			ctx.convProcess(n, comp)
		}
	}
}

func (ctx *Context) convVariableDecl(n *token.Node, comp *ir.Component) {
	nameNode, _ := n.Opt("name")
	t := ctx.convType(n)

	kind := ir.VarVariable
	switch n.Kind {
	case "Const":
		kind = ir.VarConst
	case "Let":
		kind = ir.VarLet
	}

	id := ctx.Table.Insert(symtab.Symbol{Token: n.Leaf, Kind: symtab.KindVariable, Type: t})
	varID := ir.VarID(id)

	comp.Variables[varID] = &ir.Variable{ID: varID, Path: ir.VarPath{nameNode.Text()}, Kind: kind, Type: t, Token: n.Leaf, Value: elemsOf(t)}

	if kind == ir.VarConst || kind == ir.VarLet {
		if initNode, ok := n.Opt("init"); ok {
			e := ctx.ConvExpr(initNode)
			ctx.Bindings[nameNode.Text()] = e.Comptime
		}
	}
}

func (ctx *Context) convInstanceDecl(n *token.Node, comp *ir.Component) {
	targetNode, _ := n.Opt("target")

	target, ok := ctx.Modules[targetNode.Text()]
	if !ok {
		// The instantiated component hasn't been lowered yet in this pass
		// (declared later in the same file, or in another file this
		// Context's ConvTree run hasn't reached) -- spec.md §6's staged
		// AnalyzePass1/2/3 split exists precisely so a later pass can revisit
		// an instance once every file's top-level declarations are known.
		// Record the instance by name with an empty connection map rather
		// than dropping it; its connections are not lowered here, since
		// PortConns is keyed by the target's port VarIDs.
		conns := make(map[ir.VarID]ir.Expression, len(n.List("conn")))
		comp.Instances = append(comp.Instances, ir.Instance{Name: targetNode.Text(), PortConns: conns, Token: n.Leaf})

		return
	}

	inst := ctx.ConvInstance(n, target)
	inst.Name = targetNode.Text()
	comp.Instances = append(comp.Instances, inst)
}

func (ctx *Context) convProcess(n *token.Node, comp *ir.Component) {
	kind := ir.ProcAlwaysComb

	switch n.Kind {
	case "AlwaysFF":
		kind = ir.ProcAlwaysFF
	case "Initial":
		kind = ir.ProcInitial
	}

	pctx := ctx.Child()

	proc := ir.Process{Kind: kind, Span: n.Span}

	if kind == ir.ProcAlwaysFF {
		proc.Clock = pctx.DefaultClock
		proc.Reset = pctx.DefaultReset
	}

	proc.Body = pctx.ConvStatements(n.List("body"))

	comp.Processes = append(comp.Processes, proc)
}
