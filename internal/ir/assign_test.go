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
	"testing"

	"github.com/veryl-lang/veryl-analyzer/internal/assert"
)

// TestIfWithoutElseLeavesBranchUncovered reproduces spec.md §8.4's
// `if x { a = 1; }` (no else): the implicit else branch writes nothing to
// `a`, so bit 0 is uncovered across the two (real, implicit-empty) branches.
func TestIfWithoutElseLeavesBranchUncovered(t *testing.T) {
	const a = VarID(0)

	thenBranch := NewAssignTable()
	thenBranch.RecordWrite(a, 0, 0, 0, true)

	elseBranch := NewAssignTable() // implicit empty else

	uncovered := BranchUncovered([]*AssignTable{thenBranch, elseBranch}, a, 0)
	assert.True(t, uncovered.Test(0))
}

// TestIfElseBothBranchesCoverBit reproduces the second half of §8.4: both
// branches write `a`, so there is no uncovered bit.
func TestIfElseBothBranchesCoverBit(t *testing.T) {
	const a = VarID(0)

	thenBranch := NewAssignTable()
	thenBranch.RecordWrite(a, 0, 0, 0, true)

	elseBranch := NewAssignTable()
	elseBranch.RecordWrite(a, 0, 0, 0, true)

	uncovered := BranchUncovered([]*AssignTable{thenBranch, elseBranch}, a, 0)
	assert.True(t, uncovered.None())
}

// TestIfResetMissingResetStatement reproduces §8.4's always_ff example: the
// reset branch writes only `a`, the clocked branch writes `a` and `b` — `b`
// is written in the clocked branch but not the reset branch, which is the
// MissingResetStatement condition (as opposed to plain UncoveredBranch,
// which would apply to a merely-combinational if).
func TestIfResetMissingResetStatement(t *testing.T) {
	const a, b = VarID(0), VarID(1)

	resetBranch := NewAssignTable()
	resetBranch.RecordWrite(a, 0, 0, 0, true)

	clockedBranch := NewAssignTable()
	clockedBranch.RecordWrite(a, 0, 0, 0, true)
	clockedBranch.RecordWrite(b, 0, 0, 0, true)

	uncoveredA := BranchUncovered([]*AssignTable{resetBranch, clockedBranch}, a, 0)
	assert.True(t, uncoveredA.None())

	uncoveredB := BranchUncovered([]*AssignTable{resetBranch, clockedBranch}, b, 0)
	assert.True(t, uncoveredB.Test(0))
}

func TestUnwrittenReadFlagsReferringBeforeDefinition(t *testing.T) {
	const a = VarID(0)

	tbl := NewAssignTable()
	tbl.RecordRead(a, 0, 0, 0)

	reads := tbl.UnwrittenReads(a, 0)
	assert.Equal(t, 1, len(reads))
	assert.Equal(t, uint(0), reads[0])

	tbl.RecordWrite(a, 0, 0, 0, true)
	tbl.RecordRead(a, 0, 0, 0) // now written first, so no longer "before definition"

	reads = tbl.UnwrittenReads(a, 0)
	assert.Equal(t, 1, len(reads)) // earlier read already recorded; still reported once
}

func TestMaybeWriteCountsAsFullyWritten(t *testing.T) {
	const a = VarID(0)

	tbl := NewAssignTable()
	tbl.RecordWrite(a, 0, 0, 0, false) // dynamic index: "maybe" write

	assert.True(t, tbl.IsFullyWritten(a, 0, 4))
}
