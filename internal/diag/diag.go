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
package diag

import (
	"fmt"
	"sync"

	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// Diagnostic is a single structured error or warning.  It satisfies the
// error interface purely as a convenience for logging and tests; control
// flow never uses it that way (detectors push into a Sink and continue).
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Span     token.Range
	// Proto-conformance diagnostics additionally carry an action/member
	// pair identifying which of the 18 IncompatProto sub-kinds this is.
	ProtoAction IncompatProtoAction
	ProtoMember IncompatProtoMember
	ProtoName   string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	span := d.Span.Span()
	if d.Code == IncompatProto {
		return fmt.Sprintf("%d:%d: %s: %s %s %q: %s", span.Begin, span.End, d.Severity, d.ProtoAction,
			d.ProtoMember, d.ProtoName, d.Message)
	}

	return fmt.Sprintf("%d:%d: %s [%s]: %s", span.Begin, span.End, d.Severity, d.Code, d.Message)
}

// Sink accumulates diagnostics for a single analysis context.  Detectors
// never abort on the first problem found: they push here and keep going, so
// a single pass reports everything it can in one shot.
type Sink struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewSink constructs an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Push records a diagnostic.
func (s *Sink) Push(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

// Errorf is a convenience for pushing an Error-severity diagnostic.
func (s *Sink) Errorf(code Code, span token.Range, format string, args ...any) {
	s.Push(Diagnostic{Code: code, Severity: Error, Message: fmt.Sprintf(format, args...), Span: span})
}

// Warnf is a convenience for pushing a Warning-severity diagnostic.
func (s *Sink) Warnf(code Code, span token.Range, format string, args ...any) {
	s.Push(Diagnostic{Code: code, Severity: Warning, Message: fmt.Sprintf(format, args...), Span: span})
}

// IncompatProtof pushes one of the 18 proto-conformance sub-kinds.
func (s *Sink) IncompatProtof(action IncompatProtoAction, member IncompatProtoMember, name, format string,
	span token.Range, args ...any) {
	s.Push(Diagnostic{
		Code:        IncompatProto,
		Severity:    Error,
		Message:     fmt.Sprintf(format, args...),
		Span:        span,
		ProtoAction: action,
		ProtoMember: member,
		ProtoName:   name,
	})
}

// All returns every diagnostic pushed so far, in push order.
func (s *Sink) All() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)

	return out
}

// HasErrors reports whether any Error-severity diagnostic was pushed.
func (s *Sink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// Filter removes diagnostics for which allowed reports a #[allow(code)] in
// scope, keeping only non-suppressible ones (or suppressible ones the caller
// did not allow).  It returns the filtered list; InvalidAllow diagnostics for
// attempts to allow a non-suppressible code are the caller's responsibility
// to generate (see internal/check).
func (s *Sink) Filter(allowed func(Diagnostic) bool) []Diagnostic {
	all := s.All()
	out := make([]Diagnostic, 0, len(all))

	for _, d := range all {
		if d.Severity.IsSuppressible() && allowed(d) {
			continue
		}

		out = append(out, d)
	}

	return out
}
