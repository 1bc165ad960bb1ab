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
package check

import (
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// recognisedUnsafeTags is the closed set of keywords a source file may name
// inside `unsafe(tag) { ... }`. This pass only validates the tag names (cdc,
// combinational_loop, missing_reset_statement); no other checker consults
// them, so a recognised tag relaxes no diagnostic. An unrecognised tag is
// always an error, never a warning: the source never silently ignores an
// unsafe block it does not understand.
var recognisedUnsafeTags = map[string]bool{
	"cdc":                     true,
	"combinational_loop":      true,
	"missing_reset_statement": true,
}

// CheckUnsafeBlocks validates that every `unsafe(tag) { ... }` block names a
// recognised tag (spec.md §4.G), lowered by internal/lower as an `unsafe`
// attribute on the block's opening token.
func CheckUnsafeBlocks(tbl *symtab.Table, _ *ir.Ir, sink *diag.Sink) {
	for _, entry := range tbl.AllAttributes() {
		if tbl.Interner.GetStr(entry.Attribute.Name) != "unsafe" {
			continue
		}

		if len(entry.Attribute.Args) != 1 || !recognisedUnsafeTags[entry.Attribute.Args[0]] {
			tag := "<missing>"
			if len(entry.Attribute.Args) == 1 {
				tag = entry.Attribute.Args[0]
			}

			sink.Errorf(diag.UnknownUnsafe, entry.Attribute.Span, "unrecognised unsafe tag %q", tag)
		}
	}
}
