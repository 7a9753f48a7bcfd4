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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/opselect/isel/pkg/frontend"
	"github.com/opselect/isel/pkg/target"
	"github.com/spf13/cobra"
)

// getFlag reads an expected bool flag, exiting the process if the flag was
// never registered — a programmer error, not a user-facing one.
func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// getString reads an expected string flag.
func getString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// getUint reads an expected uint flag.
func getUint(cmd *cobra.Command, name string) uint {
	v, err := cmd.Flags().GetUint(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// getInt reads an expected int flag.
func getInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// getInt64 reads an expected int64 flag.
func getInt64(cmd *cobra.Command, name string) int64 {
	v, err := cmd.Flags().GetInt64(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// targetName returns the --target label, falling back to the target file's
// base name (without extension) when the flag was left empty.
func targetName(cmd *cobra.Command, targetPath string) string {
	if name := getString(cmd, "target"); name != "" {
		return name
	}

	base := filepath.Base(targetPath)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readFunctionFile loads path as a function.json front-end document,
// reporting a malformed or unreadable file as a fatal CLI error.
func readFunctionFile(path string) frontend.FrontEnd {
	fe, err := frontend.NewJSONFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return fe
}

// readTargetFile loads path as a target.json document.
func readTargetFile(path string) target.TargetMachine {
	tm, err := frontend.LoadTargetMachine(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return tm
}

// writeJSONFile marshals v as indented JSON to path.
func writeJSONFile(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// writeTextFile writes text verbatim to path.
func writeTextFile(path, text string) {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// outputCounter is a per-process monotonic counter suffixing every output
// file name written during one CLI invocation, per spec.md §6.
var outputCounter uint64

// nextOutputID returns the next output file suffix.
func nextOutputID() uint64 {
	return atomic.AddUint64(&outputCounter, 1) - 1
}

// outputPath builds "<base>.<kind>-<id>.<ext>" for one output file, per
// spec.md §6's "output files whose names are suffixed with a per-output
// ID".
func outputPath(base, kind, ext string) string {
	return fmt.Sprintf("%s.%s-%d.%s", base, kind, nextOutputID(), ext)
}
