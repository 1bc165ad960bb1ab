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

// Package cmd implements the velc command-line front end (spec.md §9's
// AMBIENT-4): a cobra command tree mirroring the teacher's own pkg/cmd
// structure, exposing the analyzer's three passes and an IR dump.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in when building with make; "go install" leaves it
// empty, matching the teacher's own pkg/cmd/root.go convention.
var Version string

var rootCmd = &cobra.Command{
	Use:   "velc",
	Short: "A semantic analyzer for the Veryl hardware description language.",
	Long:  "velc checks Veryl source for semantic errors and dumps its lowered intermediate representation.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it. It is
// called exactly once, from cmd/velc/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("version", false, "report the version of this executable")

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			if Version != "" {
				fmt.Println("velc " + Version)
			} else {
				fmt.Println("velc (unknown version)")
			}
		} else {
			_ = cmd.Help()
		}
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(irCmd)
}
