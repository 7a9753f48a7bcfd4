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

	"github.com/opselect/isel/pkg/target"
	"github.com/opselect/isel/pkg/wire"
	"github.com/spf13/cobra"
)

type transformConfig struct {
	pointerSize      uint
	nullPointerValue int64
}

var transformCmd = &cobra.Command{
	Use:   "transform <function.json>",
	Short: "Run the op-structure clean-up pipeline and print the result.",
	Long: `Runs canonicalize-copies, lower-pointers, enforce-phi-invariants,
collapse-single-input-phis, eliminate-dead-code and remove-redundant-
conversions over a function, without matching or model building. Useful for
inspecting intermediate compiler state.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("expected exactly one argument: <function.json>")
			os.Exit(2)
		}

		cfg := transformConfig{
			pointerSize:      getUint(cmd, "pointer-size"),
			nullPointerValue: getInt64(cmd, "null-pointer-value"),
		}

		fe := readFunctionFile(args[0])

		fn, _, _, err := fe.Function()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		tm := target.New("transform", cfg.pointerSize*8, cfg.nullPointerValue)
		fn = runCleanupPipeline(fn, tm)

		w, err := wire.OpStructToWire(fn)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		name := targetName(cmd, args[0])
		path := outputPath(name, "cleaned", "json")
		writeJSONFile(path, w)
		fmt.Println(path)
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().Uint("pointer-size", 8, "pointer width in bytes used to lower pointer types")
	transformCmd.Flags().Int64("null-pointer-value", 0, "integer value the null pointer lowers to")
}
