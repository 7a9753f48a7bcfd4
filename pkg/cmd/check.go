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
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/solve"
	"github.com/opselect/isel/pkg/wire"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <lowsolution.json> <maps.json>",
	Short: "Raise a low-level solution back to node/block/location IDs.",
	Long: `Reads a solver's low-level solution and the array-index maps it
was solved against, raises the solution back to a high-level solution, and
pretty-prints it. A solution whose IsMatchSelected flags select no match
is reported as "no solution" rather than an empty result.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println("expected exactly two arguments: <lowsolution.json> <maps.json>")
			os.Exit(2)
		}

		sol := readLowSolutionFile(args[0])
		maps := readMaplistsFile(args[1])

		hls, err := raiseOrNoSolution(maps, sol)
		if err != nil {
			if errors.Is(err, solve.ErrNoSolution) {
				fmt.Println("no solution")
				os.Exit(0)
			}

			fmt.Println(err)
			os.Exit(1)
		}

		w := wire.SolutionToWire(hls)

		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// raiseOrNoSolution calls lower.Raise, translating a solution that selects
// no matches at all into solve.ErrNoSolution: that shape is what a solver
// reports when the model it was given has no feasible assignment.
func raiseOrNoSolution(maps wire.Maplists, sol lower.LowLevelSolution) (lower.HighLevelSolution, error) {
	anySelected := false

	for _, s := range sol.IsMatchSelected {
		if s {
			anySelected = true
			break
		}
	}

	if !anySelected && len(sol.IsMatchSelected) > 0 {
		return lower.HighLevelSolution{}, solve.ErrNoSolution
	}

	return lower.Raise(wire.MaplistsFromWire(maps), sol)
}

func readLowSolutionFile(path string) lower.LowLevelSolution {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var w wire.LowLevelSolution
	if err := json.Unmarshal(data, &w); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return wire.LowSolutionFromWire(w)
}

func readMaplistsFile(path string) wire.Maplists {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var w wire.Maplists
	if err := json.Unmarshal(data, &w); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return w
}
