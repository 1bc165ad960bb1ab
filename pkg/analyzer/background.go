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
	"context"

	log "github.com/sirupsen/logrus"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/atomic"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
)

// Edit is one pending re-analysis request: a file's project, path, and
// freshly parsed tree. A later Submit supersedes an earlier one still
// in flight, matching spec.md §5's "only the most recent edit matters"
// background-analysis model.
type Edit struct {
	Project string
	Path    string
	Tree    *token.Tree
}

// PublishFunc is the diagnostics-push callback, shaped exactly like an LSP
// server's textDocument/publishDiagnostics notification so a real language
// server can hand this straight to its client connection without an adapter.
type PublishFunc func(uri.URI, []protocol.Diagnostic)

// BackgroundSession wraps a Session with the cooperative-cancellation loop
// of spec.md §5: Submit records the latest edit and asks any in-flight
// analysis to abandon itself; Run drains one edit at a time, checking the
// cancellation flag between pass boundaries so a superseded edit's analysis
// gives up promptly instead of racing the new one to completion.
type BackgroundSession struct {
	sess    *Session
	publish PublishFunc

	cancelled atomic.Bool
	pending   atomic.Pointer[Edit]
	nextID    atomic.Int64

	log *log.Entry
}

// NewBackgroundSession wraps sess with a cancellable, single-flight
// re-analysis loop that reports through publish.
func NewBackgroundSession(sess *Session, publish PublishFunc) *BackgroundSession {
	return &BackgroundSession{
		sess:    sess,
		publish: publish,
		log:     log.WithField("component", "analyzer.background"),
	}
}

// Submit records edit as the latest pending change, cancelling whatever
// analysis Run is currently mid-way through so it can pick up this edit
// instead. Returns a request id a caller embedding this in a real JSON-RPC
// server can correlate with a later $/cancelRequest.
func (b *BackgroundSession) Submit(edit Edit) jsonrpc2.ID {
	b.cancelled.Store(true)
	b.pending.Store(&edit)

	return jsonrpc2.NewNumberID(int32(b.nextID.Inc()))
}

// Run drains pending edits, returning once ctx is done or no edit is
// pending, running the full Pass1 -> PostPass1 -> Pass2 -> Pass3 sequence
// for each and publishing the result.
// Between every stage it checks whether a newer Submit has cancelled this
// run; if so, it abandons the current edit immediately rather than
// publishing stale diagnostics, and the next loop iteration picks up
// whatever is now pending.
func (b *BackgroundSession) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		edit := b.pending.Swap(nil)
		if edit == nil {
			return
		}

		b.cancelled.Store(false)
		b.analyzeOne(*edit)
	}
}

func (b *BackgroundSession) analyzeOne(edit Edit) {
	var all []diag.Diagnostic

	all = append(all, b.sess.AnalyzePass1(edit.Project, edit.Tree)...)

	if b.cancelled.Load() {
		b.log.WithField("path", edit.Path).Debug("analysis cancelled after Pass1")
		return
	}

	all = append(all, b.sess.AnalyzePostPass1()...)

	if b.cancelled.Load() {
		b.log.WithField("path", edit.Path).Debug("analysis cancelled after PostPass1")
		return
	}

	irOut := b.sess.projectOf(edit.Project).ir
	all = append(all, b.sess.AnalyzePass2(edit.Project, edit.Tree, irOut)...)

	if b.cancelled.Load() {
		b.log.WithField("path", edit.Path).Debug("analysis cancelled after Pass2")
		return
	}

	all = append(all, b.sess.AnalyzePass3(edit.Project, edit.Tree)...)

	if b.cancelled.Load() {
		b.log.WithField("path", edit.Path).Debug("analysis cancelled after Pass3")
		return
	}

	b.publish(uri.File(edit.Path), toProtocolDiagnostics(all))
}

func toProtocolDiagnostics(diags []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))

	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    toProtocolRange(d.Span),
			Severity: toProtocolSeverity(d.Severity),
			Source:   "veryl-analyzer",
			Message:  d.Message,
			Code:     string(d.Code),
		})
	}

	return out
}

func toProtocolRange(r token.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: zeroBased(r.Begin.Line), Character: zeroBased(r.Begin.Column)},
		End:   protocol.Position{Line: zeroBased(r.End.Line), Character: zeroBased(r.End.Column)},
	}
}

func zeroBased(n uint32) uint32 {
	if n == 0 {
		return 0
	}

	return n - 1
}

func toProtocolSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	if s == diag.Warning {
		return protocol.DiagnosticSeverityWarning
	}

	return protocol.DiagnosticSeverityError
}
