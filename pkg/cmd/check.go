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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veryl-lang/veryl-analyzer/internal/diag"
	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/internal/token"
	"github.com/veryl-lang/veryl-analyzer/pkg/analyzer"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file(s)",
	Short: "Check Veryl source files for semantic errors.",
	Long: `Check runs the full three-pass analysis (declaration, resolution,
verification) over one project's worth of files, given as pre-parsed
JSON syntax-tree fixtures, and reports every diagnostic it finds.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		project := GetString(cmd, "project")
		color := !GetFlag(cmd, "no-color") && term.IsTerminal(int(os.Stdout.Fd()))

		sess := analyzer.NewSession(analyzer.WithMaxBits(GetUint(cmd, "max-bits")))

		if runCheck(sess, project, args, color) {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().String("project", "default", "project name used to group files for cross-file resolution")
	checkCmd.Flags().Uint("max-bits", 0, "maximum signal width in bits (0 uses the analyzer's default)")
	checkCmd.Flags().Bool("no-color", false, "disable colorized diagnostic output")
}

type treeFile struct {
	path string
	tree *token.Tree
}

// runCheck drives a project's files through every AnalyzePass* stage in the
// order spec.md §6 requires -- every file's Pass1 before any Pass2, since
// Pass2's cross-file instance resolution depends on every file in the
// project having already declared its top-level components -- and reports
// whether any Error-severity diagnostic was found.
func runCheck(sess *analyzer.Session, project string, paths []string, color bool) bool {
	trees := make([]*treeFile, 0, len(paths))
	for _, path := range paths {
		tree, err := readTree(sess.Interner, path)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		trees = append(trees, &treeFile{path: path, tree: tree})
	}

	var all []diag.Diagnostic

	for _, tf := range trees {
		all = append(all, sess.AnalyzePass1(project, tf.tree)...)
	}

	all = append(all, sess.AnalyzePostPass1()...)

	var irOut ir.Ir
	for _, tf := range trees {
		all = append(all, sess.AnalyzePass2(project, tf.tree, &irOut)...)
	}

	for _, tf := range trees {
		all = append(all, sess.AnalyzePass3(project, tf.tree)...)
	}

	if len(all) == 0 {
		fmt.Println("no issues found")
		return false
	}

	errored := false
	for _, d := range all {
		printDiagnostic(d, color)
		if d.Severity == diag.Error {
			errored = true
		}
	}

	return errored
}

func printDiagnostic(d diag.Diagnostic, color bool) {
	if !color {
		fmt.Println(d.Error())
		return
	}

	label := "\x1b[31merror\x1b[0m"
	if d.Severity == diag.Warning {
		label = "\x1b[33mwarning\x1b[0m"
	}

	fmt.Printf("%s: %s [%s]\n", label, d.Message, d.Code)
}
