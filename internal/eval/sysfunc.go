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
package eval

import (
	"math/big"
	"strings"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/internal/types"
	"github.com/veryl-lang/veryl-analyzer/internal/value"
)

// SysFuncSig describes one built-in system function: its arity and how to
// compute its result from already-evaluated arguments.
type SysFuncSig struct {
	// Arity is the expected argument count.
	Arity int
	Eval  func(args []ir.Comptime) ir.Comptime
}

// SysFuncs is the closed table of built-in system functions this analyzer
// understands natively, per spec.md §9's supplemented-feature note; any
// identifier of the form `$sv::name` is an opaque foreign call handled by
// CallSysFunc separately, never looked up here.
var SysFuncs = map[string]SysFuncSig{
	"$clog2": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			n := args[0].Value.BigInt()
			return ir.Comptime{Value: value.New(uint64(clog2(n)), 32, false), Type: scalarType(types.Bit, false, 32), IsConst: true}
		},
	},
	"$bits": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			w := totalWidthOf(args[0].Type)
			return ir.Comptime{Value: value.New(uint64(w), 32, false), Type: scalarType(types.Bit, false, 32), IsConst: true}
		},
	},
	"$left": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			w := totalWidthOf(args[0].Type)
			hi := uint64(0)
			if w > 0 {
				hi = uint64(w - 1)
			}

			return ir.Comptime{Value: value.New(hi, 32, false), Type: scalarType(types.Bit, false, 32), IsConst: true}
		},
	},
	"$right": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			return ir.Comptime{Value: value.New(0, 32, false), Type: scalarType(types.Bit, false, 32), IsConst: true}
		},
	},
	"$size": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			w := totalWidthOf(args[0].Type)
			return ir.Comptime{Value: value.New(uint64(w), 32, false), Type: scalarType(types.Bit, false, 32), IsConst: true}
		},
	},
	"$countones": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			n := args[0].Value.BigInt()

			count := 0
			for _, w := range n.Bits() {
				for b := w; b != 0; b >>= 1 {
					if b&1 != 0 {
						count++
					}
				}
			}

			isConst := args[0].IsConst && !args[0].Value.HasUnknown()

			return ir.Comptime{
				Value:   value.New(uint64(count), 32, false),
				Type:    scalarType(types.Bit, false, 32),
				IsConst: isConst,
			}
		},
	},
	"$signed": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			w := totalWidthOf(args[0].Type)
			return ir.Comptime{
				Value:   args[0].Value.SignExtend(w),
				Type:    scalarType(boolToKind(args[0].Type.Is2State()), true, w),
				IsConst: args[0].IsConst,
			}
		},
	},
	"$unsigned": {
		Arity: 1,
		Eval: func(args []ir.Comptime) ir.Comptime {
			w := totalWidthOf(args[0].Type)
			return ir.Comptime{
				Value:   args[0].Value,
				Type:    scalarType(boolToKind(args[0].Type.Is2State()), false, w),
				IsConst: args[0].IsConst,
			}
		},
	},
}

// clog2 computes ceil(log2(n)) for n >= 1, and 0 for n <= 1 (the conventional
// $clog2(0) = $clog2(1) = 0 edge case).
func clog2(n *big.Int) uint {
	if n.Sign() <= 0 || n.Cmp(big.NewInt(1)) == 0 {
		return 0
	}

	bits := uint(n.BitLen())
	pow := new(big.Int).Lsh(big.NewInt(1), bits-1)

	if pow.Cmp(n) == 0 {
		return bits - 1
	}

	return bits
}

// IsSVQualified reports whether name has the `$sv::` foreign-function prefix
// that bypasses the closed SysFuncs table.
func IsSVQualified(name string) bool {
	return strings.HasPrefix(name, "$sv::")
}

// CallSysFunc evaluates a system-function-call factor. name is the already
// interned-string-decoded call name (e.g. "$clog2" or "$sv::foo"); args are
// the already-Eval'd Comptime bundles of the call's arguments, in order.
// Reports MismatchFunctionArity for a known sysfunc called with the wrong
// argument count, and UndefinedIdentifier for an unrecognised, non-$sv name.
func (c *Context) CallSysFunc(name string, args []ir.Comptime, span token.Range) ir.Comptime {
	if IsSVQualified(name) {
		return ir.Comptime{Type: types.SystemVerilogOpaque(), Span: span}
	}

	sig, ok := SysFuncs[name]
	if !ok {
		if c.Sink != nil {
			c.Sink.Errorf(diag.UndefinedIdentifier, span, "unknown system function %q", name)
		}

		return ir.Comptime{Type: types.Unknown(), Span: span}
	}

	if len(args) != sig.Arity {
		if c.Sink != nil {
			c.Sink.Errorf(diag.MismatchFunctionArity, span, "%s expects %d argument(s), got %d", name, sig.Arity, len(args))
		}

		return ir.Comptime{Type: types.Unknown(), Span: span}
	}

	result := sig.Eval(args)
	result.Span = span

	return result
}
