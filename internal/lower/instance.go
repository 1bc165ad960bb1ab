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
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// ConvInstance lowers an instance declaration's port-connection list against
// the instantiated component's declared ports (spec.md §4.H): a declared
// port absent from the connection list is reported the same way a missing
// proto-conformance port is (spec.md §8.7's worked example already treats a
// missing port as `IncompatProto(Missing, Port, ...)`; an instance's port
// list is just as much a contract as a prototype's), a connection naming a
// port the target does not declare is UnknownPort (an error).
func (ctx *Context) ConvInstance(n *token.Node, target *ir.Component) ir.Instance {
	conns := make(map[ir.VarID]ir.Expression, len(n.List("conn")))
	named := make(map[string]bool, len(n.List("conn")))

	for _, c := range n.List("conn") {
		portNode, _ := c.Opt("port")
		exprNode, hasExpr := c.Opt("expr")

		name := ctx.Interner.GetStr(portNode.Text())
		named[name] = true

		varID, ok := target.Ports[name]
		if !ok {
			ctx.Sink.Errorf(diag.UnknownPort, c.Span, "%q is not a port of this component", name)
			continue
		}

		expr := ctx.ConvExpr(portNode)
		if hasExpr {
			expr = ctx.ConvExpr(exprNode)
		}

		conns[varID] = *expr
	}

	for name := range target.Ports {
		if named[name] {
			continue
		}

		// Missing here is a Warning, unlike IncompatProtof's Missing/Port
		// case which is always an Error (spec.md §4.H explicitly calls an
		// unconnected instance port a warning, since it may be left
		// deliberately floating, while a missing proto-conformance member is
		// a hard incompatibility); pushed directly rather than through
		// Sink.IncompatProtof to get that weaker severity.
		ctx.Sink.Push(diag.Diagnostic{
			Code:        diag.IncompatProto,
			Severity:    diag.Warning,
			Message:     "port is not connected on this instance",
			Span:        n.Span,
			ProtoAction: diag.Missing,
			ProtoMember: diag.ProtoPort,
			ProtoName:   name,
		})
	}

	return ir.Instance{PortConns: conns, Token: n.Leaf}
}
