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
	"sort"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/idmap"
	"github.com/opselect/isel/pkg/model"
	"github.com/opselect/isel/pkg/util/collection/set"
)

// LowLevelModel is the array-index form of a model.HighLevelModel, ready to
// hand to an external solver. Every *_nodes list of the high-level model has
// become a count plus array-index-keyed lists-of-lists; every constraint has
// been rewritten with constraint.LowerIDsToArrayIndices.
type LowLevelModel struct {
	NumOperations uint
	NumData       uint
	// States lists, within the data/entity array-index namespace, the
	// indices that are State nodes rather than Value nodes.
	States         []uint
	NumBlocks      uint
	EntryBlock     uint
	BlockDomSets   [][]uint
	DefEdges       [][2]uint
	BBExecFreqs    []float64
	FunConstraints []constraint.BoolExpr

	NumLocations uint
	NumMatches   uint

	OperationsCovered [][]uint
	DataDefined       [][]uint
	DataUsed          [][]uint
	EntryBlocks       []*uint
	SpannedBlocks     [][]uint
	CodeSizes         []uint
	Latencies         []uint
	ADDUCSettings     []bool
	NonCopyInstrs     []bool
	MatchConstraints  [][]constraint.BoolExpr
}

// BuildMaplists derives the six array-index namespaces from a HighLevelModel.
// The instruction namespace is the deduplicated set of instruction IDs
// actually referenced by a match, since nothing else in a HighLevelModel
// names a target instruction.
func BuildMaplists(hlm model.HighLevelModel) idmap.Maplists {
	operations := toU64(hlm.FunctionParams.OperationNodes)

	entities := append(toU64(hlm.FunctionParams.DataNodes), toU64(hlm.FunctionParams.StateNodes)...)
	blocks := toU64(hlm.FunctionParams.BlockNodes)

	matches := make([]uint64, len(hlm.PerMatchParams))
	for i, mp := range hlm.PerMatchParams {
		matches[i] = mp.MatchID
	}

	locations := make([]uint64, len(hlm.MachineParams.Locations))
	for i, l := range hlm.MachineParams.Locations {
		locations[i] = uint64(l)
	}

	instrs := set.NewSortedSet[uint64]()
	for _, mp := range hlm.PerMatchParams {
		instrs.Insert(uint64(mp.InstructionID))
	}

	return idmap.Build(operations, entities, blocks, matches, locations, instrs.ToSlice())
}

// Lower rewrites hlm into array-index form. It returns an error naming the
// offending ID wherever hlm refers to an ID outside its own maplists — a
// model build (C5) invariant violation, not an expected runtime condition.
func Lower(hlm model.HighLevelModel) (idmap.Maplists, LowLevelModel, error) {
	maps := BuildMaplists(hlm)

	operationSet := make(map[uint64]bool, len(hlm.FunctionParams.OperationNodes))
	for _, id := range hlm.FunctionParams.OperationNodes {
		operationSet[uint64(id)] = true
	}

	classify := func(id uint64) constraint.NodeNamespace {
		if operationSet[id] {
			return constraint.NamespaceOperation
		}

		return constraint.NamespaceEntity
	}

	var llm LowLevelModel

	llm.NumOperations = uint(len(maps.Operations))
	llm.NumData = uint(len(maps.Entities))
	llm.NumBlocks = uint(len(maps.Blocks))
	llm.NumLocations = uint(len(maps.Locations))
	llm.NumMatches = uint(len(maps.Matches))

	states, err := indexAll(maps.Entities, toU64(hlm.FunctionParams.StateNodes))
	if err != nil {
		return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: state nodes: %w", err)
	}

	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	llm.States = states

	entryIdx, err := idmap.IndexOf(maps.Blocks, uint64(hlm.FunctionParams.EntryBlock))
	if err != nil {
		return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: entry block: %w", err)
	}

	llm.EntryBlock = entryIdx

	llm.BlockDomSets = make([][]uint, len(maps.Blocks))
	llm.BBExecFreqs = make([]float64, len(maps.Blocks))

	for i, blockID := range maps.Blocks {
		domIDs := toU64(hlm.FunctionParams.BlockDomSets[graph.NodeID(blockID)])

		domIdx, err := indexAll(maps.Blocks, domIDs)
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: dominator set of block %d: %w", blockID, err)
		}

		sort.Slice(domIdx, func(a, b int) bool { return domIdx[a] < domIdx[b] })
		llm.BlockDomSets[i] = domIdx

		if bp, ok := hlm.FunctionParams.BlockParams[graph.NodeID(blockID)]; ok {
			llm.BBExecFreqs[i] = bp.ExecFreq
		}
	}

	llm.DefEdges = make([][2]uint, len(hlm.FunctionParams.DefEdges))

	for i, de := range hlm.FunctionParams.DefEdges {
		blockIdx, err := idmap.IndexOf(maps.Blocks, uint64(de.Block))
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: def-edge block %d: %w", de.Block, err)
		}

		entityIdx, err := idmap.IndexOf(maps.Entities, uint64(de.Entity))
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: def-edge entity %d: %w", de.Entity, err)
		}

		llm.DefEdges[i] = [2]uint{blockIdx, entityIdx}
	}

	llm.FunConstraints = make([]constraint.BoolExpr, len(hlm.FunctionParams.Constraints))
	for i, c := range hlm.FunctionParams.Constraints {
		llm.FunConstraints[i] = constraint.LowerIDsToArrayIndices(c, maps, classify)
	}

	byMatchID := make(map[uint64]model.MatchParams, len(hlm.PerMatchParams))
	for _, mp := range hlm.PerMatchParams {
		byMatchID[mp.MatchID] = mp
	}

	n := len(maps.Matches)
	llm.OperationsCovered = make([][]uint, n)
	llm.DataDefined = make([][]uint, n)
	llm.DataUsed = make([][]uint, n)
	llm.EntryBlocks = make([]*uint, n)
	llm.SpannedBlocks = make([][]uint, n)
	llm.CodeSizes = make([]uint, n)
	llm.Latencies = make([]uint, n)
	llm.ADDUCSettings = make([]bool, n)
	llm.NonCopyInstrs = make([]bool, n)
	llm.MatchConstraints = make([][]constraint.BoolExpr, n)

	for i, matchID := range maps.Matches {
		mp := byMatchID[matchID]

		covered, err := indexAll(maps.Operations, toU64(mp.OperationsCovered))
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: match %d operations covered: %w", matchID, err)
		}

		defined, err := indexAll(maps.Entities, toU64(mp.DataDefined))
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: match %d data defined: %w", matchID, err)
		}

		used, err := indexAll(maps.Entities, toU64(mp.DataUsed))
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: match %d data used: %w", matchID, err)
		}

		spanned, err := indexAll(maps.Blocks, toU64(mp.SpannedBlocks))
		if err != nil {
			return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: match %d spanned blocks: %w", matchID, err)
		}

		llm.OperationsCovered[i] = covered
		llm.DataDefined[i] = defined
		llm.DataUsed[i] = used
		llm.SpannedBlocks[i] = spanned

		if mp.EntryBlock != nil {
			idx, err := idmap.IndexOf(maps.Blocks, uint64(*mp.EntryBlock))
			if err != nil {
				return idmap.Maplists{}, LowLevelModel{}, fmt.Errorf("lower: match %d entry block: %w", matchID, err)
			}

			llm.EntryBlocks[i] = &idx
		}

		llm.CodeSizes[i] = mp.CodeSize
		llm.Latencies[i] = mp.Latency
		llm.ADDUCSettings[i] = mp.ApplyDefDomUseConstraint
		llm.NonCopyInstrs[i] = mp.IsNonCopyInstruction

		mc := make([]constraint.BoolExpr, len(mp.Constraints))
		for j, c := range mp.Constraints {
			mc[j] = constraint.LowerIDsToArrayIndices(c, maps, classify)
		}

		llm.MatchConstraints[i] = mc
	}

	return maps, llm, nil
}

func toU64(ids []graph.NodeID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}

	return out
}

func indexAll(list []uint64, ids []uint64) ([]uint, error) {
	out := make([]uint, len(ids))

	for i, id := range ids {
		idx, err := idmap.IndexOf(list, id)
		if err != nil {
			return nil, err
		}

		out[i] = idx
	}

	return out, nil
}
