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
	"regexp"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// NamingRules maps a symbol kind to the regex its identifiers must match.
// Kinds absent from the map are not checked.
type NamingRules map[symtab.Kind]*regexp.Regexp

var (
	snakeCase      = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	upperCamelCase = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// DefaultNamingRules returns this analyzer's out-of-the-box naming
// convention: snake_case for modules/variables/ports/functions, UpperCamelCase
// for types and interfaces. A project overrides this via its own NamingRules
// wired into pkg/analyzer.Config.
func DefaultNamingRules() NamingRules {
	return NamingRules{
		symtab.KindModule:    snakeCase,
		symtab.KindInterface: upperCamelCase,
		symtab.KindPackage:   snakeCase,
		symtab.KindPort:      snakeCase,
		symtab.KindVariable:  snakeCase,
		symtab.KindFunction:  snakeCase,
		symtab.KindGenvar:    snakeCase,
		symtab.KindStruct:    upperCamelCase,
		symtab.KindUnion:     upperCamelCase,
		symtab.KindEnum:      upperCamelCase,
		symtab.KindTypeDef:   upperCamelCase,
		symtab.KindModport:   upperCamelCase,
	}
}

// NamingChecker builds a Checker enforcing rules, reporting InvalidIdentifier
// as a warning (spec.md §4.G) for every symbol whose kind has a rule and
// whose name does not match it.
func NamingChecker(rules NamingRules) Checker {
	return func(tbl *symtab.Table, _ *ir.Ir, sink *diag.Sink) {
		for _, id := range tbl.All() {
			sym := tbl.Get(id)

			re, ok := rules[sym.Kind]
			if !ok {
				continue
			}

			name := sym.Name(tbl.Interner)
			if !re.MatchString(name) {
				sink.Warnf(diag.InvalidIdentifier, token.NewRange(sym.Token),
					"%s %q does not match the naming convention %s", sym.Kind, name, re.String())
			}
		}
	}
}

// CheckNaming runs the naming checker with DefaultNamingRules; it is the
// entry registered in All. Callers wanting a project-specific rule set use
// NamingChecker directly.
func CheckNaming(tbl *symtab.Table, irOut *ir.Ir, sink *diag.Sink) {
	NamingChecker(DefaultNamingRules())(tbl, irOut, sink)
}
