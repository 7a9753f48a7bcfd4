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

	"github.com/opselect/isel/pkg/dot"
	"github.com/opselect/isel/pkg/match"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot <function.json> [target.json]",
	Short: "Render a function graph as Graphviz DOT text.",
	Long: `Renders the function graph as Graphviz DOT text. When a target
file is given and --matches is set, every pattern match found against that
target is drawn as a labeled cluster over its covered nodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 || len(args) > 2 {
			fmt.Println("expected one or two arguments: <function.json> [target.json]")
			os.Exit(2)
		}

		fe := readFunctionFile(args[0])

		fn, _, _, err := fe.Function()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var matches []match.PatternMatch

		if getFlag(cmd, "matches") {
			if len(args) != 2 {
				fmt.Println("--matches requires a target.json argument")
				os.Exit(2)
			}

			tm := readTargetFile(args[1])
			fn = runCleanupPipeline(fn, tm)
			matches = match.FindMatches(fn.Graph, patternSources(tm), getInt(cmd, "workers"))
		}

		text, err := dot.New().Render(fn.Graph, matches)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		labelPath := args[0]
		if len(args) == 2 {
			labelPath = args[1]
		}

		name := targetName(cmd, labelPath)
		path := outputPath(name, "dot", "dot")
		writeTextFile(path, text)
		fmt.Println(path)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().Bool("matches", false, "overlay pattern matches found against the given target")
	plotCmd.Flags().Int("workers", 1, "number of pattern sources matched concurrently")
}
