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
package lower

import (
	"fmt"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/idmap"
	"github.com/opselect/isel/pkg/target"
)

// LowLevelSolution is what an external solver returns for a LowLevelModel.
// Every slice here is indexed by the array index of its own namespace (block
// order position, match index, or data index); LocSelectedForData and
// ImmValueOfData entries are meaningful only where the matching boolean flag
// is true.
type LowLevelSolution struct {
	OrderOfBBs          []uint
	IsMatchSelected     []bool
	BBAllocatedForMatch []uint
	HasDataLoc          []bool
	LocSelectedForData  []uint
	HasDataImmValue     []bool
	ImmValueOfData      []int64
	Cost                float64
}

// BlockAlloc is one (match, block) placement pair.
type BlockAlloc struct {
	MatchID uint64
	Block   graph.NodeID
}

// HighLevelSolution is a LowLevelSolution raised back through a Maplists to
// node/block/location IDs.
type HighLevelSolution struct {
	OrderOfBBs               []graph.NodeID
	SelectedMatches          []uint64
	BlockAllocsForSelMatches []BlockAlloc
	// RegsOfValueNodes and ImmValuesOfValueNodes carry no entry for a node
	// with no assignment; a missing key is never equivalent to assignment
	// to a zero location or a zero immediate.
	RegsOfValueNodes      map[graph.NodeID]target.LocationID
	ImmValuesOfValueNodes map[graph.NodeID]int64
	Cost                  float64
}

// Raise maps a solver's LowLevelSolution back to node, block, and location
// IDs using maps. It errors on any slice whose length disagrees with its
// namespace in maps — a malformed or truncated solver response.
func Raise(maps idmap.Maplists, sol LowLevelSolution) (HighLevelSolution, error) {
	if len(sol.IsMatchSelected) != len(maps.Matches) || len(sol.BBAllocatedForMatch) != len(maps.Matches) {
		return HighLevelSolution{}, fmt.Errorf(
			"lower: raise: match-indexed slices have length disagreeing with %d matches", len(maps.Matches))
	}

	if len(sol.HasDataLoc) != len(maps.Entities) || len(sol.LocSelectedForData) != len(maps.Entities) ||
		len(sol.HasDataImmValue) != len(maps.Entities) || len(sol.ImmValueOfData) != len(maps.Entities) {
		return HighLevelSolution{}, fmt.Errorf(
			"lower: raise: data-indexed slices have length disagreeing with %d data nodes", len(maps.Entities))
	}

	hls := HighLevelSolution{
		Cost:                  sol.Cost,
		RegsOfValueNodes:      map[graph.NodeID]target.LocationID{},
		ImmValuesOfValueNodes: map[graph.NodeID]int64{},
	}

	hls.OrderOfBBs = make([]graph.NodeID, len(sol.OrderOfBBs))

	for i, blockIdx := range sol.OrderOfBBs {
		id, err := idmap.IDAt(maps.Blocks, blockIdx)
		if err != nil {
			return HighLevelSolution{}, fmt.Errorf("lower: raise: order-of-bbs[%d]: %w", i, err)
		}

		hls.OrderOfBBs[i] = graph.NodeID(id)
	}

	for i, selected := range sol.IsMatchSelected {
		if !selected {
			continue
		}

		matchID := maps.Matches[i]
		hls.SelectedMatches = append(hls.SelectedMatches, matchID)

		blockID, err := idmap.IDAt(maps.Blocks, sol.BBAllocatedForMatch[i])
		if err != nil {
			return HighLevelSolution{}, fmt.Errorf("lower: raise: bb-allocated-for-match[%d]: %w", i, err)
		}

		hls.BlockAllocsForSelMatches = append(hls.BlockAllocsForSelMatches, BlockAlloc{
			MatchID: matchID,
			Block:   graph.NodeID(blockID),
		})
	}

	for i, hasLoc := range sol.HasDataLoc {
		nodeID, err := idmap.IDAt(maps.Entities, uint(i))
		if err != nil {
			return HighLevelSolution{}, fmt.Errorf("lower: raise: data index %d: %w", i, err)
		}

		if hasLoc {
			locID, err := idmap.IDAt(maps.Locations, sol.LocSelectedForData[i])
			if err != nil {
				return HighLevelSolution{}, fmt.Errorf("lower: raise: loc-selected-for-data[%d]: %w", i, err)
			}

			hls.RegsOfValueNodes[graph.NodeID(nodeID)] = target.LocationID(locID)
		}

		if sol.HasDataImmValue[i] {
			hls.ImmValuesOfValueNodes[graph.NodeID(nodeID)] = sol.ImmValueOfData[i]
		}
	}

	return hls, nil
}
