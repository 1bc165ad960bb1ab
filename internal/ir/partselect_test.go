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
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/shape"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
)

func logicOf(w uint) types.Type {
	t := types.Scalar(types.Logic, false)
	t.Width = shape.New(w)

	return t
}

func TestStructPartSelectWorkedExample(t *testing.T) {
	it := intern.New()

	structT := types.StructType([]types.Member{
		{Name: it.InsertStr("a"), Type: logicOf(2)},
		{Name: it.InsertStr("b"), Type: logicOf(3)},
	})

	p := BuildPartSelectPath(structT, it)

	assert.Equal(t, uint(5), p.Total)

	a := p.Offsets["a"]
	assert.Equal(t, BitRange{Msb: 4, Lsb: 3}, a)

	b := p.Offsets["b"]
	assert.Equal(t, BitRange{Msb: 2, Lsb: 0}, b)
}

func TestUnionOfArrayOfStructWorkedExample(t *testing.T) {
	it := intern.New()

	sT := types.StructType([]types.Member{
		{Name: it.InsertStr("a"), Type: logicOf(2)},
		{Name: it.InsertStr("b"), Type: logicOf(3)},
	})
	sArrayT := sT
	sArrayT.Array = shape.New(2) // S<2>

	unionT := types.UnionType([]types.Member{
		{Name: it.InsertStr("e"), Type: sArrayT},
		{Name: it.InsertStr("f"), Type: logicOf(10)},
	})

	p := BuildPartSelectPath(unionT, it)
	assert.Equal(t, uint(10), p.Total)

	assert.Equal(t, BitRange{Msb: 4, Lsb: 3}, p.Offsets["e[0].a"])
	assert.Equal(t, BitRange{Msb: 9, Lsb: 8}, p.Offsets["e[1].a"])
	assert.Equal(t, BitRange{Msb: 9, Lsb: 0}, p.Offsets["f"])

	sel, ok := p.ToBaseSelect("f", true, 5, 5)
	assert.True(t, ok)
	assert.Equal(t, BitRange{Msb: 5, Lsb: 5}, sel)
}
