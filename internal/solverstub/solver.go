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
package solverstub

import (
	"sort"

	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/solve"
)

// Solver is a deterministic greedy reference implementation of
// solve.Solver: it picks matches by a set-cover-over-operations heuristic,
// orders blocks by ascending dominator-set size, and assigns data locations
// round-robin over the available location count. It never fails a model
// whose operations can be fully covered by the matches on offer, and never
// discovers an immediate-value assignment (LowLevelModel carries no
// constant-value data to assign one from).
type Solver struct{}

// New returns the stub Solver.
func New() Solver {
	return Solver{}
}

// Solve implements solve.Solver.
func (Solver) Solve(model lower.LowLevelModel) (lower.LowLevelSolution, error) {
	selected, err := greedyCover(model)
	if err != nil {
		return lower.LowLevelSolution{}, err
	}

	sol := lower.LowLevelSolution{
		OrderOfBBs:          orderBlocks(model),
		IsMatchSelected:     make([]bool, model.NumMatches),
		BBAllocatedForMatch: make([]uint, model.NumMatches),
		HasDataLoc:          make([]bool, model.NumData),
		LocSelectedForData:  make([]uint, model.NumData),
		HasDataImmValue:     make([]bool, model.NumData),
		ImmValueOfData:      make([]int64, model.NumData),
	}

	var cost float64

	for _, i := range selected {
		sol.IsMatchSelected[i] = true
		sol.BBAllocatedForMatch[i] = allocationBlock(model, i)
		cost += float64(model.Latencies[i])

		for _, d := range model.DataDefined[i] {
			sol.HasDataLoc[d] = model.NumLocations > 0
			if model.NumLocations > 0 {
				sol.LocSelectedForData[d] = uint(int(d) % int(model.NumLocations))
			}
		}
	}

	sol.Cost = cost

	return sol, nil
}

// greedyCover repeatedly selects the not-yet-picked match that covers the
// most still-uncovered operations, breaking ties by lower latency then by
// lower match index, until every operation is covered or no candidate
// covers anything new.
func greedyCover(model lower.LowLevelModel) ([]uint, error) {
	covered := make([]bool, model.NumOperations)
	remaining := int(model.NumOperations)

	chosen := make([]bool, model.NumMatches)

	var selected []uint

	for remaining > 0 {
		best := -1
		bestGain := 0

		for i := uint(0); i < model.NumMatches; i++ {
			if chosen[i] {
				continue
			}

			gain := 0

			for _, op := range model.OperationsCovered[i] {
				if !covered[op] {
					gain++
				}
			}

			if gain > bestGain ||
				(gain == bestGain && gain > 0 && best >= 0 && betterCandidate(model, i, uint(best))) {
				best = int(i)
				bestGain = gain
			}
		}

		if best < 0 || bestGain == 0 {
			break
		}

		chosen[best] = true
		selected = append(selected, uint(best))

		for _, op := range model.OperationsCovered[best] {
			if !covered[op] {
				covered[op] = true
				remaining--
			}
		}
	}

	if remaining > 0 {
		return nil, solve.ErrNoSolution
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })

	return selected, nil
}

func betterCandidate(model lower.LowLevelModel, a, b uint) bool {
	if model.Latencies[a] != model.Latencies[b] {
		return model.Latencies[a] < model.Latencies[b]
	}

	return a < b
}

func allocationBlock(model lower.LowLevelModel, matchIdx uint) uint {
	if model.EntryBlocks[matchIdx] != nil {
		return *model.EntryBlocks[matchIdx]
	}

	if len(model.SpannedBlocks[matchIdx]) > 0 {
		return model.SpannedBlocks[matchIdx][0]
	}

	return model.EntryBlock
}

func orderBlocks(model lower.LowLevelModel) []uint {
	order := make([]uint, model.NumBlocks)
	for i := range order {
		order[i] = uint(i)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return len(model.BlockDomSets[order[i]]) < len(model.BlockDomSets[order[j]])
	})

	return order
}
