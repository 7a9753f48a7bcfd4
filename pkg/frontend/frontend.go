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

// Package frontend names the external collaborator the CLI driver reads a
// function from. Front-end IR ingestion proper (parsing some external
// compiler's intermediate representation) is out of scope; the one concrete
// implementation here reads the op-structure's own JSON wire encoding
// (pkg/wire), the same technique used for the model and solution shapes.
package frontend

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
	"github.com/opselect/isel/pkg/wire"
)

// FrontEnd supplies the function under compilation: its op-structure, the
// block execution-frequency weights used by the model builder, and the
// value nodes considered live-in at function entry.
type FrontEnd interface {
	Function() (opstruct.OpStruct, map[graph.NodeID]float64, []graph.NodeID, error)
}

// jsonFile is a FrontEnd backed by a function.json file, parsed eagerly on
// construction so that NewJSONFile's error is the only place a malformed
// file is reported.
type jsonFile struct {
	fn         opstruct.OpStruct
	execFreqs  map[graph.NodeID]float64
	inputIDs   []graph.NodeID
}

// functionFile is the on-disk shape of a function.json: an op-structure
// plus the two pieces of metadata the model builder needs but which
// opstruct.OpStruct itself does not carry.
type functionFile struct {
	OpStruct       wire.OpStruct           `json:"op-structure"`
	BlockExecFreqs map[graph.NodeID]float64 `json:"block-exec-freqs,omitempty"`
	InputValueIDs  []graph.NodeID          `json:"input-value-ids,omitempty"`
}

// NewJSONFile reads and parses path as a function.json document.
func NewJSONFile(path string) (FrontEnd, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frontend: reading %s: %w", path, err)
	}

	var ff functionFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("frontend: parsing %s: %w", path, err)
	}

	fn, err := wire.OpStructFromWire(ff.OpStruct)
	if err != nil {
		return nil, fmt.Errorf("frontend: %s: %w", path, err)
	}

	return &jsonFile{
		fn:        fn,
		execFreqs: ff.BlockExecFreqs,
		inputIDs:  append([]graph.NodeID(nil), ff.InputValueIDs...),
	}, nil
}

// Function implements FrontEnd.
func (j *jsonFile) Function() (opstruct.OpStruct, map[graph.NodeID]float64, []graph.NodeID, error) {
	return j.fn, j.execFreqs, j.inputIDs, nil
}
