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
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/target"
)

// BlockAlloc mirrors lower.BlockAlloc.
type BlockAlloc struct {
	MatchID uint64       `json:"match-id"`
	Block   graph.NodeID `json:"block"`
}

// HighLevelSolution mirrors lower.HighLevelSolution under spec.md's
// high-level solution wire keys.
type HighLevelSolution struct {
	OrderOfBBs               []graph.NodeID                     `json:"order-of-bbs"`
	SelectedMatches          []uint64                            `json:"selected-matches"`
	BBsAllocatedForSelMatches []BlockAlloc                       `json:"bbs-allocated-for-sel-matches"`
	LocsOfDataNodes          map[graph.NodeID]target.LocationID  `json:"locs-of-data-nodes"`
	ImmValuesOfDataNodes     map[graph.NodeID]int64              `json:"imm-values-of-data-nodes"`
	Cost                     float64                             `json:"cost"`
}

// SolutionToWire converts a lower.HighLevelSolution to its wire form.
func SolutionToWire(hls lower.HighLevelSolution) HighLevelSolution {
	allocs := make([]BlockAlloc, len(hls.BlockAllocsForSelMatches))
	for i, a := range hls.BlockAllocsForSelMatches {
		allocs[i] = BlockAlloc{MatchID: a.MatchID, Block: a.Block}
	}

	locs := make(map[graph.NodeID]target.LocationID, len(hls.RegsOfValueNodes))
	for k, v := range hls.RegsOfValueNodes {
		locs[k] = v
	}

	imms := make(map[graph.NodeID]int64, len(hls.ImmValuesOfValueNodes))
	for k, v := range hls.ImmValuesOfValueNodes {
		imms[k] = v
	}

	return HighLevelSolution{
		OrderOfBBs:                append([]graph.NodeID(nil), hls.OrderOfBBs...),
		SelectedMatches:           append([]uint64(nil), hls.SelectedMatches...),
		BBsAllocatedForSelMatches: allocs,
		LocsOfDataNodes:           locs,
		ImmValuesOfDataNodes:      imms,
		Cost:                      hls.Cost,
	}
}

// SolutionFromWire is the inverse of SolutionToWire.
func SolutionFromWire(w HighLevelSolution) lower.HighLevelSolution {
	allocs := make([]lower.BlockAlloc, len(w.BBsAllocatedForSelMatches))
	for i, a := range w.BBsAllocatedForSelMatches {
		allocs[i] = lower.BlockAlloc{MatchID: a.MatchID, Block: a.Block}
	}

	locs := make(map[graph.NodeID]target.LocationID, len(w.LocsOfDataNodes))
	for k, v := range w.LocsOfDataNodes {
		locs[k] = v
	}

	imms := make(map[graph.NodeID]int64, len(w.ImmValuesOfDataNodes))
	for k, v := range w.ImmValuesOfDataNodes {
		imms[k] = v
	}

	return lower.HighLevelSolution{
		OrderOfBBs:               append([]graph.NodeID(nil), w.OrderOfBBs...),
		SelectedMatches:          append([]uint64(nil), w.SelectedMatches...),
		BlockAllocsForSelMatches: allocs,
		RegsOfValueNodes:         locs,
		ImmValuesOfValueNodes:    imms,
		Cost:                     w.Cost,
	}
}

// LowLevelSolution mirrors lower.LowLevelSolution under spec.md's low-level
// solution wire keys.
type LowLevelSolution struct {
	OrderOfBBs          []uint  `json:"order-of-bbs"`
	IsMatchSelected     []bool  `json:"is-match-selected"`
	BBAllocatedForMatch []uint  `json:"bb-allocated-for-match"`
	HasDataLoc          []bool  `json:"has-data-loc"`
	LocSelectedForData  []uint  `json:"loc-selected-for-data"`
	HasDataImmValue     []bool  `json:"has-data-imm-value"`
	ImmValueOfData      []int64 `json:"imm-value-of-data"`
	Cost                float64 `json:"cost"`
}

// LowSolutionToWire converts a lower.LowLevelSolution to its wire form.
func LowSolutionToWire(sol lower.LowLevelSolution) LowLevelSolution {
	return LowLevelSolution{
		OrderOfBBs:          append([]uint(nil), sol.OrderOfBBs...),
		IsMatchSelected:     append([]bool(nil), sol.IsMatchSelected...),
		BBAllocatedForMatch: append([]uint(nil), sol.BBAllocatedForMatch...),
		HasDataLoc:          append([]bool(nil), sol.HasDataLoc...),
		LocSelectedForData:  append([]uint(nil), sol.LocSelectedForData...),
		HasDataImmValue:     append([]bool(nil), sol.HasDataImmValue...),
		ImmValueOfData:      append([]int64(nil), sol.ImmValueOfData...),
		Cost:                sol.Cost,
	}
}

// LowSolutionFromWire is the inverse of LowSolutionToWire.
func LowSolutionFromWire(w LowLevelSolution) lower.LowLevelSolution {
	return lower.LowLevelSolution{
		OrderOfBBs:          append([]uint(nil), w.OrderOfBBs...),
		IsMatchSelected:     append([]bool(nil), w.IsMatchSelected...),
		BBAllocatedForMatch: append([]uint(nil), w.BBAllocatedForMatch...),
		HasDataLoc:          append([]bool(nil), w.HasDataLoc...),
		LocSelectedForData:  append([]uint(nil), w.LocSelectedForData...),
		HasDataImmValue:     append([]bool(nil), w.HasDataImmValue...),
		ImmValueOfData:      append([]int64(nil), w.ImmValueOfData...),
		Cost:                w.Cost,
	}
}
