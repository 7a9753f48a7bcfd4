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

	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/match"
	"github.com/opselect/isel/pkg/model"
	"github.com/opselect/isel/pkg/util"
	"github.com/opselect/isel/pkg/wire"
	"github.com/spf13/cobra"
)

var makeCmd = &cobra.Command{
	Use:   "make <function.json> <target.json>",
	Short: "Match, build and lower a function against a target machine.",
	Long: `Runs the clean-up pipeline, finds every pattern match of the
target's instructions against the function graph, builds the high-level
constraint model, and lowers it to array-index form ready for an external
solver.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println("expected exactly two arguments: <function.json> <target.json>")
			os.Exit(2)
		}

		fe := readFunctionFile(args[0])
		tm := readTargetFile(args[1])

		fn, execFreq, _, err := fe.Function()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fn = runCleanupPipeline(fn, tm)

		matchPerf := util.NewPerfStats()
		matches := match.FindMatches(fn.Graph, patternSources(tm), getInt(cmd, "workers"))
		matchPerf.LogCount("matching", uint(len(matches)))

		hlm, err := model.Build(fn, tm, matches, execFreq)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		lowerPerf := util.NewPerfStats()
		maps, llm, err := lower.Lower(hlm)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		lowerPerf.LogCount("lowering", llm.NumMatches)

		wllm, err := wire.LowModelToWire(llm)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		out := struct {
			Maps  wire.Maplists     `json:"maps"`
			Model wire.LowLevelModel `json:"low-level-model"`
		}{
			Maps:  wire.MaplistsToWire(maps),
			Model: wllm,
		}

		name := targetName(cmd, args[1])
		path := outputPath(name, "lowmodel", "json")
		writeJSONFile(path, out)
		fmt.Println(path)
	},
}

func init() {
	rootCmd.AddCommand(makeCmd)
	makeCmd.Flags().Int("workers", 1, "number of pattern sources matched concurrently")
}
