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

// Package analyzer is the external facade of spec.md §6: a Session exposing
// AnalyzePass1/AnalyzePostPass1/AnalyzePass2/AnalyzePass3 over a
// *symtab.Table shared across a whole project, plus a BackgroundSession for
// the incremental, cancellable re-analysis loop of spec.md §5.
package analyzer

import (
	"github.com/veryl-lang/veryl-analyzer/internal/check"
	"github.com/veryl-lang/veryl-analyzer/internal/lower"
)

// Config mirrors the teacher's CompilationConfig{Stdlib, Debug, Legacy}:
// a flat options struct filled in by functional options rather than
// constructed directly.
type Config struct {
	// MaxBits is the check_size ceiling (spec.md §4.H); zero means
	// lower.DefaultMaxBits.
	MaxBits uint

	// NamingRules overrides check.DefaultNamingRules() when non-nil.
	NamingRules check.NamingRules

	// AllowUnknownAttributes is stored on the Config; no pass reads it, and
	// no pass reports UnknownAttribute diagnostics.
	AllowUnknownAttributes bool
}

// Option configures a Config, chained the way the teacher chains
// SetDebug/SetAllocator on *Compiler[M].
type Option func(*Config)

// WithMaxBits overrides the check_size ceiling.
func WithMaxBits(n uint) Option {
	return func(c *Config) { c.MaxBits = n }
}

// WithNamingRules overrides the naming checker's default rule set.
func WithNamingRules(rules check.NamingRules) Option {
	return func(c *Config) { c.NamingRules = rules }
}

// WithAllowUnknownAttributes sets Config.AllowUnknownAttributes.
func WithAllowUnknownAttributes(allow bool) Option {
	return func(c *Config) { c.AllowUnknownAttributes = allow }
}

func newConfig(opts []Option) Config {
	cfg := Config{MaxBits: lower.DefaultMaxBits}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
