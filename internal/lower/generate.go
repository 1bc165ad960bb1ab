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
	"fmt"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// ConvForGenerate fully unrolls a `for i in range :label` generate loop
// (spec.md §4.H): the range bounds are comptime-evaluated once, then for each
// index the label gets `[i]` pushed onto the hierarchy, a constant loop
// variable bound to the literal index value is installed, the body's
// declaration nodes are returned verbatim (the caller lowers them under the
// pushed Context), and the binding/label are popped again before the next
// iteration. The worked example of spec.md §8.6 -- a two-iteration loop over
// a `const`/`let` pair -- is exactly this: two iterations times one
// const/let pair each yields four produced bindings.
func (ctx *Context) ConvForGenerate(n *token.Node) []GenerateIteration {
	loopVar, _ := n.Opt("var")
	label, _ := n.Opt("label")
	lowNode, _ := n.Opt("low")
	highNode, _ := n.Opt("high")

	lowExpr := ctx.ConvExpr(lowNode)
	highExpr := ctx.ConvExpr(highNode)

	if !lowExpr.Comptime.IsConst || !highExpr.Comptime.IsConst {
		ctx.Sink.Errorf(diag.InvalidFactor, n.Span, "for-generate bounds must be comptime-constant")
		return nil
	}

	lo := lowExpr.Comptime.Value.BigInt().Int64()
	hi := highExpr.Comptime.Value.BigInt().Int64()

	var labelID intern.StringID
	if label != nil {
		labelID = label.Text()
	}

	body := n.List("body")

	iterations := make([]GenerateIteration, 0, hi-lo)

	for i := lo; i < hi; i++ {
		child := ctx.PushAffiliation(iterationLabel(ctx, labelID, i))

		if loopVar != nil {
			child.Bindings[loopVar.Text()] = constComptime(i)
		}

		iterations = append(iterations, GenerateIteration{Ctx: child, Body: body})
	}

	return iterations
}

// GenerateIteration is one unrolled for-generate iteration: a Context with
// the loop variable bound and the hierarchy label pushed, plus the (shared,
// unmodified) body node list to lower under it.
type GenerateIteration struct {
	Ctx  *Context
	Body []*token.Node
}

func iterationLabel(ctx *Context, label intern.StringID, i int64) intern.StringID {
	base := ""
	if label != 0 {
		base = ctx.Interner.GetStr(label)
	}

	return ctx.Interner.InsertStr(fmt.Sprintf("%s[%d]", base, i))
}

// constComptime builds the Comptime bundle for a fully-known generate-loop
// index: a 32-bit constant, matching the width internal/eval assigns other
// elaboration-time integer literals.
func constComptime(i int64) ir.Comptime {
	return ir.Comptime{
		Value:   value.New(uint64(i), 32, false),
		Type:    scalarValueType(value.New(uint64(i), 32, false)),
		IsConst: true,
	}
}

// ConvIfGenerate constant-folds an `if cond :label1 { ... } else if cond2
// :label2 { ... } else :label3 { ... }` generate chain and returns only the
// selected branch's body, lowered under a Context with that branch's label
// pushed (spec.md §4.H: "emit only the selected branch's declarations; the
// label is retained on whichever branch survives"). A branch with no Cond
// node is the trailing else and is always eligible. Returns (nil, false) if
// every conditioned branch folds false and there is no else.
func (ctx *Context) ConvIfGenerate(n *token.Node) (*GenerateIteration, bool) {
	for _, branch := range n.List("branch") {
		condNode, hasCond := branch.Opt("cond")

		if hasCond {
			cond := ctx.ConvExpr(condNode)

			if !cond.Comptime.IsConst {
				ctx.Sink.Errorf(diag.InvalidFactor, branch.Span, "if-generate condition must be comptime-constant")
				continue
			}

			if cond.Comptime.Value.BigInt().Sign() == 0 {
				continue
			}
		}

		var labelID intern.StringID
		if label, ok := branch.Opt("label"); ok {
			labelID = label.Text()
		}

		child := ctx
		if labelID != 0 {
			child = ctx.PushAffiliation(labelID)
		}

		return &GenerateIteration{Ctx: child, Body: branch.List("body")}, true
	}

	return nil, false
}
