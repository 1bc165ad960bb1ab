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

// Package diag defines the closed taxonomy of structured errors the analyzer
// can report, plus the per-context error sink used throughout the pipeline.
// Diagnostics are pure data: nothing in this package renders source excerpts,
// that is left to an external renderer (spec §1, Non-goals).
package diag

// Severity distinguishes fatal problems from advisory ones.
type Severity uint8

// Recognised severities.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}

	return "error"
}

// Code is a stable identifier for a diagnostic kind, used both for display
// and for #[allow(rule)] filtering.
type Code string

// The closed sum of diagnostic codes, grouped as in spec.md §7.
const (
	// Resolution.
	UndefinedIdentifier         Code = "undefined-identifier"
	UnknownMember               Code = "unknown-member"
	UnknownPort                 Code = "unknown-port"
	UnknownParam                Code = "unknown-param"
	UnknownAttribute            Code = "unknown-attribute"
	UnresolvableGenericArgument Code = "unresolvable-generic-argument"

	// Declaration legality.
	DuplicatedIdentifier     Code = "duplicated-identifier"
	InvalidDirection         Code = "invalid-direction"
	InvalidModportVariable   Code = "invalid-modport-variable-item"
	InvalidModportFunction   Code = "invalid-modport-function-item"
	InvalidStatement         Code = "invalid-statement"
	InvalidImport            Code = "invalid-import"
	InvalidAllow             Code = "invalid-allow"
	ReservedIdentifier       Code = "reserved-identifier"
	SvKeywordUsage           Code = "sv-keyword-usage"
	UnknownUnsafe            Code = "unknown-unsafe"

	// Typing.
	MismatchType           Code = "mismatch-type"
	MismatchFunctionArity  Code = "mismatch-function-arity"
	MismatchGenericsArity  Code = "mismatch-generics-arity"
	MismatchAttributeArgs  Code = "mismatch-attribute-args"
	InvalidCast            Code = "invalid-cast"
	InvalidFactor          Code = "invalid-factor"
	CallNonFunction        Code = "call-non-function"
	InvalidOperand         Code = "invalid-operand"
	InvalidLogicalOperand  Code = "invalid-logical-operand"

	// Width/range.
	TooLargeNumber          Code = "too-large-number"
	TooLargeEnumVariant     Code = "too-large-enum-variant"
	TooMuchEnumVariant      Code = "too-much-enum-variant"
	InvalidNumberCharacter  Code = "invalid-number-character"
	InvalidSelectOutOfDim   Code = "invalid-select-out-of-dimension"
	InvalidSelectOutOfRange Code = "invalid-select-out-of-range"
	InvalidSelectWrongOrder Code = "invalid-select-wrong-order"

	// Dataflow.
	MultipleAssignment       Code = "multiple-assignment"
	UnassignVariable         Code = "unassign-variable"
	UncoveredBranch          Code = "uncovered-branch"
	InvalidAssignment        Code = "invalid-assignment"
	InvalidAssignmentToConst Code = "invalid-assignment-to-const"
	UnusedVariable           Code = "unused-variable"
	UnusedReturn             Code = "unused-return"
	ReferringBeforeDefinition Code = "referring-before-definition"

	// Clock/reset.
	InvalidClock                 Code = "invalid-clock"
	InvalidReset                 Code = "invalid-reset"
	MissingClockSignal           Code = "missing-clock-signal"
	MissingResetSignal           Code = "missing-reset-signal"
	MissingClockDomain           Code = "missing-clock-domain"
	MissingIfReset               Code = "missing-if-reset"
	MissingResetStatement        Code = "missing-reset-statement"
	MismatchClockDomain           Code = "mismatch-clock-domain"
	SvWithImplicitReset           Code = "sv-with-implicit-reset"
	InvalidResetNonElaborative    Code = "invalid-reset-non-elaborative"

	// Cross-cutting.
	CyclicTypeDependency Code = "cyclic-type-dependency"

	// IncompatProto sub-kinds (18): Missing/Unnecessary/Incompatible x
	// Param/Port/Var/Typedef/Function/Alias/Modport/Member/Type/GenericParam
	// are represented by IncompatProtoKind below, carried alongside this
	// shared code.
	IncompatProto Code = "incompat-proto"

	// Local warnings.
	InvalidIdentifier Code = "invalid-identifier"
)

// IncompatProtoAction is the verb half of an IncompatProto diagnostic.
type IncompatProtoAction string

// Recognised actions.
const (
	Missing      IncompatProtoAction = "missing"
	Unnecessary  IncompatProtoAction = "unnecessary"
	Incompatible IncompatProtoAction = "incompatible"
)

// IncompatProtoMember is the noun half of an IncompatProto diagnostic.
type IncompatProtoMember string

// Recognised members.
const (
	ProtoParam        IncompatProtoMember = "param"
	ProtoPort         IncompatProtoMember = "port"
	ProtoVar          IncompatProtoMember = "var"
	ProtoTypedef      IncompatProtoMember = "typedef"
	ProtoFunction     IncompatProtoMember = "function"
	ProtoAlias        IncompatProtoMember = "alias"
	ProtoModport      IncompatProtoMember = "modport"
	ProtoMember       IncompatProtoMember = "member"
	ProtoType         IncompatProtoMember = "type"
	ProtoGenericParam IncompatProtoMember = "generic-param"
)

// IsSuppressible reports whether a diagnostic of this severity may ever be
// silenced by a #[allow(rule)] attribute.  Only warnings are suppressible;
// attempting to allow an Error-severity code is itself reported as
// InvalidAllow by the caller.
func (s Severity) IsSuppressible() bool {
	return s == Warning
}
