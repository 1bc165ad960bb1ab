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
	"math/bits"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

const (
	encodingSequential = "sequential"
	encodingOnehot     = "onehot"
	encodingGray       = "gray"
)

// CheckEnums validates every Enum symbol's variants against its base-type
// width, flags duplicate explicit values, and validates the `onehot`/`gray`
// `enum_encoding` attribute when present (spec.md §4.G).
func CheckEnums(tbl *symtab.Table, _ *ir.Ir, sink *diag.Sink) {
	for _, id := range tbl.All() {
		sym := tbl.Get(id)
		if sym.Kind != symtab.KindEnum {
			continue
		}

		checkEnumWidthAndDuplicates(tbl, sym, sink)
		checkEnumEncoding(tbl, sym, sink)
	}
}

func checkEnumWidthAndDuplicates(tbl *symtab.Table, sym *symtab.Symbol, sink *diag.Sink) {
	width := uint64(0)
	if w := sym.Type.TotalWidth(); w != nil {
		width = uint64(*w)
	}

	limit := uint64(1) << width
	if width >= 64 {
		limit = 0 // unrepresentable as a sentinel; treat as "no overflow possible"
	}

	seen := make(map[uint64]string, len(sym.Type.Members))

	for _, m := range sym.Type.Members {
		if m.ExplicitValue == nil {
			continue
		}

		v := *m.ExplicitValue
		name := tbl.Interner.GetStr(m.Name)

		if limit != 0 && v >= limit {
			sink.Errorf(diag.TooLargeEnumVariant, token.NewRange(sym.Token),
				"enum variant %q value %d does not fit in %d-bit base type", name, v, width)
		}

		if prior, dup := seen[v]; dup {
			sink.Warnf(diag.TooMuchEnumVariant, token.NewRange(sym.Token),
				"enum variants %q and %q share the explicit value %d", prior, name, v)
		} else {
			seen[v] = name
		}
	}
}

func checkEnumEncoding(tbl *symtab.Table, sym *symtab.Symbol, sink *diag.Sink) {
	encoding, ok := enumEncodingOf(tbl, sym)
	if !ok || encoding == encodingSequential {
		return
	}

	prev, havePrev := uint64(0), false

	for _, m := range sym.Type.Members {
		if m.ExplicitValue == nil {
			continue
		}

		v := *m.ExplicitValue
		name := tbl.Interner.GetStr(m.Name)

		switch encoding {
		case encodingOnehot:
			if bits.OnesCount64(v) != 1 {
				sink.Errorf(diag.MismatchAttributeArgs, token.NewRange(sym.Token),
					"enum variant %q value %d is not one-hot under enum_encoding(onehot)", name, v)
			}
		case encodingGray:
			if havePrev && bits.OnesCount64(prev^v) != 1 {
				sink.Errorf(diag.MismatchAttributeArgs, token.NewRange(sym.Token),
					"enum variant %q value %d does not differ from the previous variant by one bit "+
						"under enum_encoding(gray)", name, v)
			}

			prev, havePrev = v, true
		}
	}
}

// enumEncodingOf looks up the `#[enum_encoding(...)]` attribute on sym's
// declaring token, if any.
func enumEncodingOf(tbl *symtab.Table, sym *symtab.Symbol) (string, bool) {
	for _, a := range tbl.AttributesOf(sym.Token.ID) {
		if tbl.Interner.GetStr(a.Name) != "enum_encoding" || len(a.Args) == 0 {
			continue
		}

		return a.Args[0], true
	}

	return "", false
}
