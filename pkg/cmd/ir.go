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

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/veryl-lang/veryl-analyzer/internal/ir"
	"github.com/veryl-lang/veryl-analyzer/pkg/analyzer"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] file(s)",
	Short: "Lower Veryl source files and print their intermediate representation.",
	Long: `Ir runs Pass1 and Pass2 over a project's files and prints the
resulting lowered IR, either as the analyzer's own deterministic text
rendering or, with --json, as a machine-readable snapshot suitable for
golden-file comparisons.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		project := GetString(cmd, "project")
		asJSON := GetFlag(cmd, "json")

		sess := analyzer.NewSession(analyzer.WithMaxBits(GetUint(cmd, "max-bits")))

		trees := make([]*treeFile, 0, len(args))
		for _, path := range args {
			tree, err := readTree(sess.Interner, path)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			trees = append(trees, &treeFile{path: path, tree: tree})
		}

		for _, tf := range trees {
			sess.AnalyzePass1(project, tf.tree)
		}
		sess.AnalyzePostPass1()

		var out ir.Ir
		for _, tf := range trees {
			sess.AnalyzePass2(project, tf.tree, &out)
		}

		if asJSON {
			printIrJSON(&out)
		} else {
			fmt.Print(out.Format(sess.Interner))
		}
	},
}

func init() {
	irCmd.Flags().String("project", "default", "project name used to group files for cross-file resolution")
	irCmd.Flags().Uint("max-bits", 0, "maximum signal width in bits (0 uses the analyzer's default)")
	irCmd.Flags().Bool("json", false, "print the IR as JSON instead of the analyzer's text rendering")
}

func printIrJSON(out *ir.Ir) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Println(string(data))
}
