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
	"github.com/bits-and-blooms/bitset"
)

// elementEntry is the per-(variable, array-element) bookkeeping an
// AssignTable tracks: which bits have been written, and whether any write
// hit this element through an index/select that was not statically known
// (in which case coverage cannot be proven bit-exactly and "maybe" wins).
type elementEntry struct {
	written *bitset.BitSet
	maybe   bool
	read    *bitset.BitSet // bits read before any write reached them, this block
}

// AssignTable tracks, per variable and per flattened array element, which
// bits have been written (and which were read before being written), for
// the assignment-coverage and reference-tracking checks of spec.md §4.F.5/
// §4.F.6.
type AssignTable struct {
	entries map[VarID]map[uint]*elementEntry
}

// NewAssignTable constructs an empty table.
func NewAssignTable() *AssignTable {
	return &AssignTable{entries: make(map[VarID]map[uint]*elementEntry)}
}

func (a *AssignTable) entry(v VarID, elem uint) *elementEntry {
	byElem, ok := a.entries[v]
	if !ok {
		byElem = make(map[uint]*elementEntry)
		a.entries[v] = byElem
	}

	e, ok := byElem[elem]
	if !ok {
		e = &elementEntry{written: bitset.New(0), read: bitset.New(0)}
		byElem[elem] = e
	}

	return e
}

// RecordWrite marks [lo,hi] (inclusive) as written for variable v's array
// element elem. statIndex false means the index/select reaching this
// element was not statically resolvable, so the whole element is marked
// "maybe written" rather than precisely bit-tracked.
func (a *AssignTable) RecordWrite(v VarID, elem uint, lo, hi uint, statIndex bool) {
	e := a.entry(v, elem)

	if !statIndex {
		e.maybe = true
		return
	}

	for b := lo; b <= hi; b++ {
		e.written.Set(b)
	}
}

// RecordRead marks [lo,hi] as read for variable v's array element elem,
// for later UnassignVariable / ReferringBeforeDefinition detection: a read
// is only meaningful if the bits have not yet been written in this pass.
func (a *AssignTable) RecordRead(v VarID, elem uint, lo, hi uint) {
	e := a.entry(v, elem)

	for b := lo; b <= hi; b++ {
		if !e.written.Test(b) {
			e.read.Set(b)
		}
	}
}

// UnwrittenReads returns, for variable v's array element elem, the bit
// positions that were read before any write reached them within this
// table's scope — candidates for ReferringBeforeDefinition.
func (a *AssignTable) UnwrittenReads(v VarID, elem uint) []uint {
	byElem, ok := a.entries[v]
	if !ok {
		return nil
	}

	e, ok := byElem[elem]
	if !ok {
		return nil
	}

	var out []uint

	for i, ok := e.read.NextSet(0); ok; i, ok = e.read.NextSet(i + 1) {
		out = append(out, i)
	}

	return out
}

// IsFullyWritten reports whether every bit in [0,width) of variable v's
// array element elem has been written, per the rules above (a "maybe"
// write is treated as covering, since its actual bits cannot be proven
// otherwise, and spec.md §4.F.5 does not require flagging those).
func (a *AssignTable) IsFullyWritten(v VarID, elem uint, width uint) bool {
	byElem, ok := a.entries[v]
	if !ok {
		return false
	}

	e, ok := byElem[elem]
	if !ok {
		return false
	}

	if e.maybe {
		return true
	}

	for b := uint(0); b < width; b++ {
		if !e.written.Test(b) {
			return false
		}
	}

	return true
}

// WrittenMask returns the set of written bits for v's array element elem
// (nil/empty if never touched); used to compare branch coverage.
func (a *AssignTable) WrittenMask(v VarID, elem uint) *bitset.BitSet {
	byElem, ok := a.entries[v]
	if !ok {
		return bitset.New(0)
	}

	e, ok := byElem[elem]
	if !ok {
		return bitset.New(0)
	}

	return e.written
}

// MergeBranchesOr merges a set of branch-local AssignTables into a new table
// by logical-OR over written bits, per spec.md §4.F.5's IfStatement::eval_assign:
// a bit is written in the merged result only if EVERY branch wrote it ("and"
// across branches of what each branch wrote, which is the condition under
// which a bit can be considered unconditionally assigned by the whole
// statement). The branch tables are left unchanged, so callers can still
// diff them for UncoveredBranch/MissingResetStatement.
func MergeBranchesOr(branches []*AssignTable) *AssignTable {
	merged := NewAssignTable()

	if len(branches) == 0 {
		return merged
	}

	vars := map[VarID]map[uint]bool{}

	for _, b := range branches {
		for v, byElem := range b.entries {
			if vars[v] == nil {
				vars[v] = map[uint]bool{}
			}

			for elem := range byElem {
				vars[v][elem] = true
			}
		}
	}

	for v, elems := range vars {
		for elem := range elems {
			var intersect *bitset.BitSet

			allMaybe := true

			for _, b := range branches {
				w := b.WrittenMask(v, elem)

				if byElem, ok := b.entries[v]; ok {
					if e, ok := byElem[elem]; ok && !e.maybe {
						allMaybe = false
					}
				} else {
					allMaybe = false
				}

				if intersect == nil {
					intersect = w.Clone()
				} else {
					intersect = intersect.Intersection(w)
				}
			}

			if intersect == nil {
				intersect = bitset.New(0)
			}

			e := merged.entry(v, elem)
			e.written = intersect
			e.maybe = allMaybe && len(branches) > 0
		}
	}

	return merged
}

// BranchUncovered reports, for variable v's array element elem, the bit
// positions written in at least one of the branches but not in all of
// them — exactly the "uncovered branch" condition of spec.md §4.F.5.
func BranchUncovered(branches []*AssignTable, v VarID, elem uint) *bitset.BitSet {
	if len(branches) == 0 {
		return bitset.New(0)
	}

	union := bitset.New(0)

	var intersection *bitset.BitSet

	for _, b := range branches {
		w := b.WrittenMask(v, elem)
		union = union.Union(w)

		if intersection == nil {
			intersection = w.Clone()
		} else {
			intersection = intersection.Intersection(w)
		}
	}

	return union.Difference(intersection)
}
