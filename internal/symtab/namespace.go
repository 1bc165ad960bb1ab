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
package symtab

import "github.com/veryl-lang/veryl-analyzer/internal/intern"

// Namespace is an ordered list of enclosing scope names: `A::B::C` is
// represented as [A, B, C].  Inclusion is prefix containment.
type Namespace []intern.StringID

// Extend returns a new namespace with name appended.
func (n Namespace) Extend(name intern.StringID) Namespace {
	out := make(Namespace, len(n)+1)
	copy(out, n)
	out[len(n)] = name

	return out
}

// Prefixes yields every prefix of n, from itself down to the
// (empty) root, used by the resolver's innermost-to-outermost search order
// (spec.md §4.D resolution algorithm, step 1).
func (n Namespace) Prefixes() []Namespace {
	out := make([]Namespace, 0, len(n)+1)

	for i := len(n); i >= 0; i-- {
		out = append(out, n[:i])
	}

	return out
}

// Contains reports whether n is a prefix of other (inclusive).
func (n Namespace) Contains(other Namespace) bool {
	if len(n) > len(other) {
		return false
	}

	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}

	return true
}

// Equal reports structural equality.
func (n Namespace) Equal(other Namespace) bool {
	if len(n) != len(other) {
		return false
	}

	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}

	return true
}

// String renders the namespace using `::` separators.
func (n Namespace) String(tbl *intern.Table) string {
	s := ""

	for i, id := range n {
		if i > 0 {
			s += "::"
		}

		s += tbl.GetStr(id)
	}

	return s
}
