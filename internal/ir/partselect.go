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
package ir

import (
	"fmt"

	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
)

// BitRange is an inclusive `[Msb:Lsb]` absolute bit range within a flattened
// aggregate vector.
type BitRange struct {
	Msb uint
	Lsb uint
}

// PartSelectPath maps every (possibly nested, possibly array-indexed) member
// path of an aggregate type to its absolute bit range within the flattened
// `[W-1:0]` vector, per spec.md §4.F.4. Keys are rendered member paths, e.g.
// "e[1].a" or "f".
type PartSelectPath struct {
	Total   uint
	Offsets map[string]BitRange
}

// BuildPartSelectPath computes the flattened layout for a (possibly nested)
// struct/union/enum type, following spec.md §4.F.4's packing rules:
//   - struct fields are packed MSB-first: field k occupies
//     [Σ_{j>k} W_j + W_k - 1 : Σ_{j>k} W_j], where W_j is member j's total
//     width (including any array replication it carries).
//   - union members all occupy [W-1:0] of the total (W = member[0]'s total
//     width); narrower members conceptually left-extend with zeros, so they
//     still report range [W-1:0], not their own narrower width.
//   - an array-typed member (struct field or union member) is expanded
//     per-index: element i's sub-paths are offset by i*elementWidth within
//     that member's own range, matching spec.md §8.3's `e[0].a`/`e[1].a`.
func BuildPartSelectPath(t types.Type, it *intern.Table) *PartSelectPath {
	total := uint(0)
	if w := t.TotalWidth(); w != nil {
		total = *w
	}

	p := &PartSelectPath{Total: total, Offsets: make(map[string]BitRange)}
	walkMember(t, "", total, 0, it, p)

	return p
}

// walkMember records path's own range (assumed already placed at
// [base+width-1 : base] by the caller, except for the synthetic top-level
// call) and recurses into its aggregate contents, expanding any array
// dimension the member itself carries.
func walkMember(t types.Type, path string, width, base uint, it *intern.Table, p *PartSelectPath) {
	if path != "" {
		p.Offsets[path] = BitRange{Msb: base + width - 1, Lsb: base}
	}

	if len(t.Array) > 0 {
		n := t.Array.Total()
		if n == nil {
			return // unknown array extent: cannot enumerate indices
		}

		elemScalar := t
		elemScalar.Array = nil

		elemWidth := uint(0)
		if w := elemScalar.TotalWidth(); w != nil {
			elemWidth = *w
		}

		for i := uint(0); i < *n; i++ {
			idxPath := fmt.Sprintf("%s[%d]", path, i)
			walkAggregateBody(elemScalar, idxPath, elemWidth, base+i*elemWidth, it, p)
		}

		return
	}

	walkAggregateBody(t, path, width, base, it, p)
}

// walkAggregateBody recurses into t's struct/union members (t itself has no
// remaining array dimension at this point).
func walkAggregateBody(t types.Type, path string, width, base uint, it *intern.Table, p *PartSelectPath) {
	switch t.Kind {
	case types.StructKind:
		cursor := width

		for _, m := range t.Members {
			w := memberTotalWidth(m.Type)
			lo := cursor - w
			name := joinPath(path, it.GetStr(m.Name))

			walkMember(m.Type, name, w, base+lo, it, p)

			cursor = lo
		}
	case types.UnionKind:
		for _, m := range t.Members {
			name := joinPath(path, it.GetStr(m.Name))
			// Every union member starts at the union's base and reports the
			// union's full range; a narrower member left-extends with zeros,
			// so its own sub-fields keep the member's natural layout.
			w := memberTotalWidth(m.Type)
			walkMember(m.Type, name, w, base, it, p)
			p.Offsets[name] = BitRange{Msb: base + width - 1, Lsb: base}
		}
	default:
		// Scalar leaf (or enum, whose variants are values, not sub-fields):
		// nothing further to record beyond what walkMember already set.
	}
}

func memberTotalWidth(t types.Type) uint {
	if w := t.TotalWidth(); w != nil {
		return *w
	}

	return 0
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

// ToBaseSelect converts a rendered member path plus an optional intra-member
// bit-range (hi, lo, relative to that member's own width) into an absolute
// [msb:lsb] select on the flattened vector. Passing hasRange=false selects
// the member's entire range.
func (p *PartSelectPath) ToBaseSelect(memberPath string, hasRange bool, hi, lo uint) (BitRange, bool) {
	base, ok := p.Offsets[memberPath]
	if !ok {
		return BitRange{}, false
	}

	if !hasRange {
		return base, true
	}

	return BitRange{Msb: base.Lsb + hi, Lsb: base.Lsb + lo}, true
}
