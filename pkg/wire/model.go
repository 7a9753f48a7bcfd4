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
	"math/big"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/model"
	"github.com/opselect/isel/pkg/target"
)

// constraintExpr is a local alias kept short for the many constraint-slice
// conversions below.
type constraintExpr = constraint.BoolExpr

// DefEdge mirrors model.DefEdge.
type DefEdge struct {
	Block  graph.NodeID `json:"block"`
	Entity graph.NodeID `json:"entity"`
}

// BlockParams mirrors model.BlockParams.
type BlockParams struct {
	Name     string       `json:"name"`
	Node     graph.NodeID `json:"node"`
	ExecFreq float64      `json:"exec-freq"`
}

// FunctionParams mirrors model.FunctionParams, field for field, under the
// wire-format key names of spec.md's "function-params" tree.
type FunctionParams struct {
	OperationNodes []graph.NodeID                   `json:"operation-nodes"`
	DataNodes      []graph.NodeID                   `json:"data-nodes"`
	StateNodes     []graph.NodeID                   `json:"state-nodes"`
	BlockNodes     []graph.NodeID                    `json:"block-nodes"`
	EntryBlock     graph.NodeID                      `json:"entry-block"`
	BlockDomSets   map[graph.NodeID][]graph.NodeID   `json:"block-dom-sets"`
	DefEdges       []DefEdge                         `json:"def-edges"`
	BlockParams    map[graph.NodeID]BlockParams      `json:"block-params"`
	IntConstData   map[graph.NodeID]string           `json:"int-const-data"`
	Constraints    []json.RawMessage                 `json:"constraints"`
}

// MachineParams mirrors model.MachineParams.
type MachineParams struct {
	TargetMachineID string               `json:"target-machine-id"`
	Locations       []target.LocationID  `json:"locations"`
}

// MatchParams mirrors model.MatchParams, one entry of the "match-params"
// array.
type MatchParams struct {
	InstructionID target.InstrID  `json:"instruction-id"`
	PatternID     target.PatternID `json:"pattern-id"`
	MatchID       uint64           `json:"match-id"`

	OperationsCovered []graph.NodeID `json:"operations-covered"`
	DataDefined       []graph.NodeID `json:"data-defined"`
	DataUsed          []graph.NodeID `json:"data-used"`
	EntryBlock        *graph.NodeID  `json:"entry-block,omitempty"`
	SpannedBlocks     []graph.NodeID `json:"spanned-blocks"`

	CodeSize uint `json:"code-size"`
	Latency  uint `json:"latency"`

	ApplyDefDomUseConstraint bool `json:"apply-def-dom-use-constraint"`
	IsNonCopyInstruction     bool `json:"is-non-copy-instruction"`
	HasControlFlow           bool `json:"has-control-flow"`

	DataUsedByPhis []graph.NodeID          `json:"data-used-by-phis"`
	AsmStrNodeMaps map[graph.NodeID]graph.NodeID `json:"asm-str-node-maps"`

	Constraints []json.RawMessage `json:"constraints"`
}

// HighLevelModel mirrors model.HighLevelModel.
type HighLevelModel struct {
	FunctionParams FunctionParams `json:"function-params"`
	MachineParams  MachineParams  `json:"machine-params"`
	MatchParams    []MatchParams  `json:"match-params"`
}

// ModelToWire converts a model.HighLevelModel to its wire form, encoding
// every embedded constraint tree.
func ModelToWire(hlm model.HighLevelModel) (HighLevelModel, error) {
	fp := hlm.FunctionParams

	domSets := make(map[graph.NodeID][]graph.NodeID, len(fp.BlockDomSets))
	for block, doms := range fp.BlockDomSets {
		domSets[block] = append([]graph.NodeID(nil), doms...)
	}

	defEdges := make([]DefEdge, len(fp.DefEdges))
	for i, de := range fp.DefEdges {
		defEdges[i] = DefEdge{Block: de.Block, Entity: de.Entity}
	}

	blockParams := make(map[graph.NodeID]BlockParams, len(fp.BlockParams))
	for id, bp := range fp.BlockParams {
		blockParams[id] = BlockParams{Name: bp.Name, Node: bp.Node, ExecFreq: bp.ExecFreq}
	}

	intConstData := make(map[graph.NodeID]string, len(fp.IntConstData))
	for id, v := range fp.IntConstData {
		value := v
		intConstData[id] = value.String()
	}

	constraints, err := marshalConstraints(fp.Constraints)
	if err != nil {
		return HighLevelModel{}, fmt.Errorf("wire: function-params.constraints: %w", err)
	}

	wfp := FunctionParams{
		OperationNodes: fp.OperationNodes,
		DataNodes:      fp.DataNodes,
		StateNodes:     fp.StateNodes,
		BlockNodes:     fp.BlockNodes,
		EntryBlock:     fp.EntryBlock,
		BlockDomSets:   domSets,
		DefEdges:       defEdges,
		BlockParams:    blockParams,
		IntConstData:   intConstData,
		Constraints:    constraints,
	}

	wmp := MachineParams{
		TargetMachineID: hlm.MachineParams.TargetMachineID,
		Locations:       append([]target.LocationID(nil), hlm.MachineParams.Locations...),
	}

	matches := make([]MatchParams, len(hlm.PerMatchParams))

	for i, mp := range hlm.PerMatchParams {
		mc, err := marshalConstraints(mp.Constraints)
		if err != nil {
			return HighLevelModel{}, fmt.Errorf("wire: match-params[%d].constraints: %w", i, err)
		}

		asmMap := make(map[graph.NodeID]graph.NodeID, len(mp.AsmStrNodeMap))
		for k, v := range mp.AsmStrNodeMap {
			asmMap[k] = v
		}

		matches[i] = MatchParams{
			InstructionID:            mp.InstructionID,
			PatternID:                mp.PatternID,
			MatchID:                  mp.MatchID,
			OperationsCovered:        mp.OperationsCovered,
			DataDefined:              mp.DataDefined,
			DataUsed:                 mp.DataUsed,
			EntryBlock:               mp.EntryBlock,
			SpannedBlocks:            mp.SpannedBlocks,
			CodeSize:                 mp.CodeSize,
			Latency:                  mp.Latency,
			ApplyDefDomUseConstraint: mp.ApplyDefDomUseConstraint,
			IsNonCopyInstruction:     mp.IsNonCopyInstruction,
			HasControlFlow:           mp.HasControlFlow,
			DataUsedByPhis:           mp.DataUsedByPhis,
			AsmStrNodeMaps:           asmMap,
			Constraints:              mc,
		}
	}

	return HighLevelModel{FunctionParams: wfp, MachineParams: wmp, MatchParams: matches}, nil
}

// ModelFromWire is the inverse of ModelToWire.
func ModelFromWire(w HighLevelModel) (model.HighLevelModel, error) {
	domSets := make(map[graph.NodeID][]graph.NodeID, len(w.FunctionParams.BlockDomSets))
	for block, doms := range w.FunctionParams.BlockDomSets {
		domSets[block] = append([]graph.NodeID(nil), doms...)
	}

	defEdges := make([]model.DefEdge, len(w.FunctionParams.DefEdges))
	for i, de := range w.FunctionParams.DefEdges {
		defEdges[i] = model.DefEdge{Block: de.Block, Entity: de.Entity}
	}

	blockParams := make(map[graph.NodeID]model.BlockParams, len(w.FunctionParams.BlockParams))
	for id, bp := range w.FunctionParams.BlockParams {
		blockParams[id] = model.BlockParams{Name: bp.Name, Node: bp.Node, ExecFreq: bp.ExecFreq}
	}

	intConstData := make(map[graph.NodeID]big.Int, len(w.FunctionParams.IntConstData))

	for id, s := range w.FunctionParams.IntConstData {
		var v big.Int
		if _, ok := v.SetString(s, 10); !ok {
			return model.HighLevelModel{}, fmt.Errorf("wire: function-params.int-const-data[%d]: invalid integer %q", id, s)
		}

		intConstData[id] = v
	}

	constraints, err := unmarshalConstraints(w.FunctionParams.Constraints)
	if err != nil {
		return model.HighLevelModel{}, fmt.Errorf("wire: function-params.constraints: %w", err)
	}

	fp := model.FunctionParams{
		OperationNodes: w.FunctionParams.OperationNodes,
		DataNodes:      w.FunctionParams.DataNodes,
		StateNodes:     w.FunctionParams.StateNodes,
		BlockNodes:     w.FunctionParams.BlockNodes,
		EntryBlock:     w.FunctionParams.EntryBlock,
		BlockDomSets:   domSets,
		DefEdges:       defEdges,
		BlockParams:    blockParams,
		IntConstData:   intConstData,
		Constraints:    constraints,
	}

	mp := model.MachineParams{
		TargetMachineID: w.MachineParams.TargetMachineID,
		Locations:       append([]target.LocationID(nil), w.MachineParams.Locations...),
	}

	matches := make([]model.MatchParams, len(w.MatchParams))

	for i, m := range w.MatchParams {
		mc, err := unmarshalConstraints(m.Constraints)
		if err != nil {
			return model.HighLevelModel{}, fmt.Errorf("wire: match-params[%d].constraints: %w", i, err)
		}

		asmMap := make(map[graph.NodeID]graph.NodeID, len(m.AsmStrNodeMaps))
		for k, v := range m.AsmStrNodeMaps {
			asmMap[k] = v
		}

		matches[i] = model.MatchParams{
			InstructionID:            m.InstructionID,
			PatternID:                m.PatternID,
			MatchID:                  m.MatchID,
			OperationsCovered:        m.OperationsCovered,
			DataDefined:              m.DataDefined,
			DataUsed:                 m.DataUsed,
			EntryBlock:               m.EntryBlock,
			SpannedBlocks:            m.SpannedBlocks,
			CodeSize:                 m.CodeSize,
			Latency:                  m.Latency,
			ApplyDefDomUseConstraint: m.ApplyDefDomUseConstraint,
			IsNonCopyInstruction:     m.IsNonCopyInstruction,
			HasControlFlow:           m.HasControlFlow,
			DataUsedByPhis:           m.DataUsedByPhis,
			AsmStrNodeMap:            asmMap,
			Constraints:              mc,
		}
	}

	return model.HighLevelModel{FunctionParams: fp, MachineParams: mp, PerMatchParams: matches}, nil
}

func marshalConstraints(cs []constraintExpr) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(cs))

	for i, c := range cs {
		raw, err := MarshalBoolExpr(c)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		out[i] = raw
	}

	return out, nil
}

func unmarshalConstraints(raw []json.RawMessage) ([]constraintExpr, error) {
	out := make([]constraintExpr, len(raw))

	for i, r := range raw {
		c, err := UnmarshalBoolExpr(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		out[i] = c
	}

	return out, nil
}

// LowLevelModel mirrors lower.LowLevelModel under the "fun-*"/"match-*"
// low-level wire key names.
type LowLevelModel struct {
	FunNumOperations uint `json:"fun-num-operations"`
	FunNumData       uint `json:"fun-num-data"`
	FunNumBlocks     uint `json:"fun-num-blocks"`

	FunStates       []uint             `json:"fun-states"`
	FunEntryBlock   uint               `json:"fun-entry-block"`
	FunBlockDomSets [][]uint           `json:"fun-block-dom-sets"`
	FunDefEdges     [][2]uint          `json:"fun-def-edges"`
	FunBBExecFreqs  []float64          `json:"fun-bb-exec-freqs"`
	FunConstraints  []json.RawMessage  `json:"fun-constraints"`

	NumLocations uint `json:"num-locations"`
	NumMatches   uint `json:"num-matches"`

	MatchOperationsCovered [][]uint            `json:"match-operations-covered"`
	MatchDataDefined       [][]uint             `json:"match-data-defined"`
	MatchDataUsed          [][]uint             `json:"match-data-used"`
	MatchEntryBlocks       []*uint              `json:"match-entry-blocks"`
	MatchSpannedBlocks     [][]uint             `json:"match-spanned-blocks"`
	MatchCodeSizes         []uint               `json:"match-code-sizes"`
	MatchLatencies         []uint               `json:"match-latencies"`
	MatchADDUCSettings     []bool               `json:"match-adduc-settings"`
	MatchNonCopyInstrs     []bool               `json:"match-non-copy-instructions"`
	MatchConstraints       [][]json.RawMessage  `json:"match-constraints"`
}

// LowModelToWire converts a lower.LowLevelModel to its wire form.
func LowModelToWire(llm lower.LowLevelModel) (LowLevelModel, error) {
	funConstraints, err := marshalConstraints(llm.FunConstraints)
	if err != nil {
		return LowLevelModel{}, fmt.Errorf("wire: fun-constraints: %w", err)
	}

	matchConstraints := make([][]json.RawMessage, len(llm.MatchConstraints))

	for i, mc := range llm.MatchConstraints {
		raw, err := marshalConstraints(mc)
		if err != nil {
			return LowLevelModel{}, fmt.Errorf("wire: match-constraints[%d]: %w", i, err)
		}

		matchConstraints[i] = raw
	}

	return LowLevelModel{
		FunNumOperations:       llm.NumOperations,
		FunNumData:             llm.NumData,
		FunNumBlocks:           llm.NumBlocks,
		FunStates:              llm.States,
		FunEntryBlock:          llm.EntryBlock,
		FunBlockDomSets:        llm.BlockDomSets,
		FunDefEdges:            llm.DefEdges,
		FunBBExecFreqs:         llm.BBExecFreqs,
		FunConstraints:         funConstraints,
		NumLocations:           llm.NumLocations,
		NumMatches:             llm.NumMatches,
		MatchOperationsCovered: llm.OperationsCovered,
		MatchDataDefined:       llm.DataDefined,
		MatchDataUsed:          llm.DataUsed,
		MatchEntryBlocks:       llm.EntryBlocks,
		MatchSpannedBlocks:     llm.SpannedBlocks,
		MatchCodeSizes:         llm.CodeSizes,
		MatchLatencies:         llm.Latencies,
		MatchADDUCSettings:     llm.ADDUCSettings,
		MatchNonCopyInstrs:     llm.NonCopyInstrs,
		MatchConstraints:       matchConstraints,
	}, nil
}

// LowModelFromWire is the inverse of LowModelToWire.
func LowModelFromWire(w LowLevelModel) (lower.LowLevelModel, error) {
	funConstraints, err := unmarshalConstraints(w.FunConstraints)
	if err != nil {
		return lower.LowLevelModel{}, fmt.Errorf("wire: fun-constraints: %w", err)
	}

	matchConstraints := make([][]constraintExpr, len(w.MatchConstraints))

	for i, raw := range w.MatchConstraints {
		mc, err := unmarshalConstraints(raw)
		if err != nil {
			return lower.LowLevelModel{}, fmt.Errorf("wire: match-constraints[%d]: %w", i, err)
		}

		matchConstraints[i] = mc
	}

	return lower.LowLevelModel{
		NumOperations:     w.FunNumOperations,
		NumData:           w.FunNumData,
		States:            w.FunStates,
		NumBlocks:         w.FunNumBlocks,
		EntryBlock:        w.FunEntryBlock,
		BlockDomSets:      w.FunBlockDomSets,
		DefEdges:          w.FunDefEdges,
		BBExecFreqs:       w.FunBBExecFreqs,
		FunConstraints:    funConstraints,
		NumLocations:      w.NumLocations,
		NumMatches:        w.NumMatches,
		OperationsCovered: w.MatchOperationsCovered,
		DataDefined:       w.MatchDataDefined,
		DataUsed:          w.MatchDataUsed,
		EntryBlocks:       w.MatchEntryBlocks,
		SpannedBlocks:     w.MatchSpannedBlocks,
		CodeSizes:         w.MatchCodeSizes,
		Latencies:         w.MatchLatencies,
		ADDUCSettings:     w.MatchADDUCSettings,
		NonCopyInstrs:     w.MatchNonCopyInstrs,
		MatchConstraints:  matchConstraints,
	}, nil
}
