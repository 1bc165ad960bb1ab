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

// Package token defines the leaf values produced by the (external) lexer and
// parser that this analyzer consumes.  Every later structure refers to a
// token by value and inherits its source span; the analyzer never re-derives
// position information on its own.
package token

import "github.com/veryl-lang/veryl-analyzer/internal/intern"

// SourceKind distinguishes where a token's text originated.
type SourceKind uint8

// Recognised source kinds.
const (
	File SourceKind = iota
	Builtin
	External
	Generated
)

// ID uniquely identifies a token within a compilation.
type ID uint32

// Token is a (text-id, source-id, line, column, length, byte-offset,
// token-id) tuple, exactly as specified.  All later structures refer to
// tokens by value.
type Token struct {
	Text   intern.StringID
	Source intern.PathID
	Line   uint32
	Column uint32
	Length uint32
	Offset uint32
	ID     ID
	Kind   SourceKind
}

// Span is the half-open byte range [Begin,End) a diagnostic or IR node
// covers within a single source file.
type Span struct {
	Begin uint32
	End   uint32
}

// Range is a pair of tokens bracketing a multi-token construct (e.g. an
// entire always_ff block), so a single diagnostic can be reported over the
// whole construct rather than just its first token.
type Range struct {
	Begin Token
	End   Token
}

// NewRange constructs a Range spanning exactly one token.
func NewRange(t Token) Range {
	return Range{Begin: t, End: t}
}

// Span computes the byte span covered by r, from the start of Begin to the
// end of End.
func (r Range) Span() Span {
	return Span{Begin: r.Begin.Offset, End: r.End.Offset + r.End.Length}
}

// Merge returns the smallest Range enclosing both r and other.  Both ranges
// are assumed to originate from the same source file.
func (r Range) Merge(other Range) Range {
	begin, end := r.Begin, r.End

	if other.Begin.Offset < begin.Offset {
		begin = other.Begin
	}

	if other.End.Offset+other.End.Length > end.Offset+end.Length {
		end = other.End
	}

	return Range{Begin: begin, End: end}
}
