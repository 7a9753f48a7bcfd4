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
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
)

// OpStruct is the wire form of an opstruct.OpStruct: a graph plus its
// constraint metadata. There is no spec-mandated key-name contract for this
// shape (only the model/solution trees have one) — it exists so the CLI's
// function-description input has a concrete JSON format at all, grounded on
// the same node-array/index-reference technique as Graph.
type OpStruct struct {
	Graph             Graph                      `json:"graph"`
	EntryBlock        *graph.NodeID              `json:"entry-block,omitempty"`
	ValidLocations    map[graph.NodeID][]uint64  `json:"valid-locations,omitempty"`
	Constraints       []json.RawMessage          `json:"constraints,omitempty"`
	SameLocationPairs [][2]graph.NodeID          `json:"same-location-pairs,omitempty"`
}

// OpStructToWire converts o to its wire form.
func OpStructToWire(o opstruct.OpStruct) (OpStruct, error) {
	g, err := GraphToWire(o.Graph)
	if err != nil {
		return OpStruct{}, fmt.Errorf("wire: graph: %w", err)
	}

	constraints, err := marshalConstraints(o.Constraints)
	if err != nil {
		return OpStruct{}, fmt.Errorf("wire: constraints: %w", err)
	}

	locs := make(map[graph.NodeID][]uint64, len(o.ValidLocations))
	for k, v := range o.ValidLocations {
		locs[k] = append([]uint64(nil), v...)
	}

	return OpStruct{
		Graph:             g,
		EntryBlock:        o.EntryBlock,
		ValidLocations:    locs,
		Constraints:       constraints,
		SameLocationPairs: append([][2]graph.NodeID(nil), o.SameLocationPairs...),
	}, nil
}

// OpStructFromWire is the inverse of OpStructToWire.
func OpStructFromWire(w OpStruct) (opstruct.OpStruct, error) {
	g, err := GraphFromWire(w.Graph)
	if err != nil {
		return opstruct.OpStruct{}, fmt.Errorf("wire: graph: %w", err)
	}

	o := opstruct.New(g)
	if w.EntryBlock != nil {
		o = o.WithEntryBlock(*w.EntryBlock)
	}

	for k, v := range w.ValidLocations {
		o = o.WithValidLocations(k, v)
	}

	constraints, err := unmarshalConstraints(w.Constraints)
	if err != nil {
		return opstruct.OpStruct{}, fmt.Errorf("wire: constraints: %w", err)
	}

	o = o.AddConstraints(constraints)

	for _, pair := range w.SameLocationPairs {
		o = o.AddSameLocationPair(pair[0], pair[1])
	}

	return o, nil
}
