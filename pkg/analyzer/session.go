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
package analyzer

import (
	log "github.com/sirupsen/logrus"

	"github.com/veryl-lang/veryl-analyzer/internal/check"
	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/intern"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/lower"
	"github.com/veryl-lang/veryl-analyzer/internal/symtab"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// Session is the analyzer's single stateful handle: one symbol table and
// interner shared across every file of every project it is asked to
// analyze, plus one lowering Context and accumulated *ir.Ir per project
// name, so cross-file instance/import resolution has somewhere to live
// between calls (spec.md §6's external-interface contract implies a Session
// outlives any single AnalyzePass* call; this module makes that lifetime
// concrete).
type Session struct {
	cfg Config
	log *log.Entry

	Table    *symtab.Table
	Interner *intern.Table

	projects map[string]*projectState
}

type projectState struct {
	ctx *lower.Context
	ir  *ir.Ir
}

// NewSession constructs a Session with a fresh symbol table and interner.
func NewSession(opts ...Option) *Session {
	interner := intern.New()
	tbl := symtab.New(interner)

	return &Session{
		cfg:      newConfig(opts),
		log:      log.WithField("component", "analyzer"),
		Table:    tbl,
		Interner: interner,
		projects: make(map[string]*projectState),
	}
}

func (s *Session) projectOf(project string) *projectState {
	p, ok := s.projects[project]
	if !ok {
		ctx := lower.NewContext(s.Table, diag.NewSink())
		ctx.MaxBits = s.cfg.MaxBits
		p = &projectState{ctx: ctx, ir: &ir.Ir{}}
		s.projects[project] = p
	}

	return p
}

// AnalyzePass1 lowers one file's syntax tree against the session's shared
// symbol table, declaring every symbol it introduces and structurally
// lowering its components, and appends the result into this project's
// accumulated IR. Instance declarations naming a not-yet-declared target
// (a forward reference within this file, or a reference to a file from this
// project not yet passed to AnalyzePass1) are recorded unresolved and
// revisited by AnalyzePass2 (spec.md §6: "later passes may revisit what an
// earlier pass could not yet resolve").
func (s *Session) AnalyzePass1(project string, tree *token.Tree) []diag.Diagnostic {
	p := s.projectOf(project)
	p.ctx.Sink = diag.NewSink()

	fileIr := lower.ConvTree(tree, s.Table, p.ctx.Sink)
	p.ir.Components = append(p.ir.Components, fileIr.Components...)

	s.log.WithField("project", project).
		WithField("components", len(fileIr.Components)).
		Debug("AnalyzePass1 lowered file")

	return p.ctx.Sink.All()
}

// AnalyzePostPass1 runs once every file of every known project has had
// AnalyzePass1 called on it: it is a no-op pass boundary (nothing in this
// package's two-stage design needs cross-project work here), kept as its
// own method only so a caller driving the spec.md §6 pass sequence has
// somewhere to put cross-file wiring should the project ever need it, and so
// the external interface matches spec.md §6 exactly.
func (s *Session) AnalyzePostPass1() []diag.Diagnostic {
	s.log.Debug("AnalyzePostPass1")

	return nil
}

// AnalyzePass2 re-lowers tree against the project's now-complete Modules
// registry (every file's top-level components are declared by this point,
// since every project file has gone through AnalyzePass1), so an instance
// that named a forward-referenced target in pass 1 resolves for real here.
// irOut receives this project's accumulated components, replacing whatever
// the caller passed in -- the caller owns irOut's storage across calls the
// way it owns project string identity.
func (s *Session) AnalyzePass2(project string, tree *token.Tree, irOut *ir.Ir) []diag.Diagnostic {
	p := s.projectOf(project)
	p.ctx.Sink = diag.NewSink()

	// Re-run this file's top-level declarations through the now-populated
	// Modules registry so any instance pointing at a component this project
	// declared in a different file (or later in this one) resolves.
	refreshed := lower.ConvTree(tree, s.Table, p.ctx.Sink)
	for _, c := range refreshed.Components {
		for i, old := range p.ir.Components {
			if old.Name == c.Name {
				p.ir.Components[i] = c
				break
			}
		}
	}

	irOut.Components = p.ir.Components

	s.log.WithField("project", project).Debug("AnalyzePass2 refreshed file")

	return p.ctx.Sink.All()
}

// AnalyzePass3 runs the full independent checker suite of spec.md §4.G
// (internal/check.All) over this project's accumulated IR. tree is accepted
// to match spec.md §6's signature and logged for traceability; the checker
// suite itself always runs over the whole project, since several checks
// (clock-domain separation, generic-bound satisfaction) are only meaningful
// with every file's components visible at once.
func (s *Session) AnalyzePass3(project string, tree *token.Tree) []diag.Diagnostic {
	p := s.projectOf(project)
	sink := diag.NewSink()

	rules := s.cfg.NamingRules
	if rules == nil {
		rules = check.DefaultNamingRules()
	}

	checkers := append([]check.Checker{}, check.All...)
	checkers[4] = check.NamingChecker(rules) // index of CheckNaming in check.All

	for _, c := range checkers {
		c(s.Table, p.ir, sink)
	}

	path := "(no tree)"
	if tree != nil {
		path = s.Interner.GetPath(tree.Path)
	}

	s.log.WithField("project", project).WithField("file", path).
		WithField("diagnostics", len(sink.All())).
		Debug("AnalyzePass3 checked project")

	return sink.All()
}
