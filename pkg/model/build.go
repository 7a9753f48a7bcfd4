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
package model

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/match"
	"github.com/opselect/isel/pkg/opstruct"
	"github.com/opselect/isel/pkg/target"
)

// defaultExecFreq is used for a block with no entry in the caller-supplied
// exec_freq map.
const defaultExecFreq = 1.0

// Build assembles the high-level model for function fn against target
// machine tm, given the matches already found against fn.Graph
// (pkg/match.FindMatches). execFreq supplies external profiling weight per
// block; a block missing from it gets defaultExecFreq.
func Build(
	fn opstruct.OpStruct,
	tm target.TargetMachine,
	matches []match.PatternMatch,
	execFreq map[graph.NodeID]float64,
) (HighLevelModel, error) {
	fp, err := buildFunctionParams(fn, execFreq)
	if err != nil {
		return HighLevelModel{}, err
	}

	mp := buildMachineParams(tm)

	perMatch := make([]MatchParams, 0, len(matches))

	for _, pm := range matches {
		params, err := buildMatchParams(fn.Graph, tm, pm)
		if err != nil {
			return HighLevelModel{}, err
		}

		perMatch = append(perMatch, params)
	}

	return HighLevelModel{FunctionParams: fp, MachineParams: mp, PerMatchParams: perMatch}, nil
}

func buildFunctionParams(fn opstruct.OpStruct, execFreq map[graph.NodeID]float64) (FunctionParams, error) {
	g := fn.Graph

	fp := FunctionParams{
		BlockDomSets: map[graph.NodeID][]graph.NodeID{},
		BlockParams:  map[graph.NodeID]BlockParams{},
		IntConstData: map[graph.NodeID]big.Int{},
		Constraints:  append([]constraint.BoolExpr(nil), fn.Constraints...),
	}

	for _, ref := range g.Nodes() {
		id := g.PublicID(ref)

		switch kind := g.Kind(ref).(type) {
		case graph.Value:
			fp.DataNodes = append(fp.DataNodes, id)

			if ic, ok := kind.DataType.(graph.IntConstType); ok {
				fp.IntConstData[id] = ic.Range.Lo
			}
		case graph.State:
			fp.StateNodes = append(fp.StateNodes, id)
		case graph.Block:
			fp.BlockNodes = append(fp.BlockNodes, id)

			freq := defaultExecFreq
			if f, ok := execFreq[id]; ok {
				freq = f
			}

			fp.BlockParams[id] = BlockParams{Name: kind.Name, Node: id, ExecFreq: freq}
		default:
			if graph.IsOperation(kind) {
				fp.OperationNodes = append(fp.OperationNodes, id)
			}
		}
	}

	sortNodeIDs(fp.OperationNodes)
	sortNodeIDs(fp.DataNodes)
	sortNodeIDs(fp.StateNodes)
	sortNodeIDs(fp.BlockNodes)

	entryBlock, err := resolveEntryBlock(fn)
	if err != nil {
		return FunctionParams{}, err
	}

	fp.EntryBlock = entryBlock

	dom, _, err := match.BlockDomSets(g)
	if err != nil {
		return FunctionParams{}, err
	}

	for block, ancestors := range dom {
		ids := make([]graph.NodeID, 0, len(ancestors))
		for a := range ancestors {
			ids = append(ids, a)
		}

		sortNodeIDs(ids)
		fp.BlockDomSets[block] = ids
	}

	fp.DefEdges = buildDefEdges(g)

	return fp, nil
}

// resolveEntryBlock prefers fn's own EntryBlock if set, falling back to the
// unique root of the function's control-flow graph.
func resolveEntryBlock(fn opstruct.OpStruct) (graph.NodeID, error) {
	if fn.EntryBlock != nil {
		return *fn.EntryBlock, nil
	}

	cfg := graph.ExtractCFG(fn.Graph)

	root, err := graph.RootOfCFG(cfg)
	if err != nil {
		return 0, fmt.Errorf("model: resolving function entry block: %w", err)
	}

	return cfg.PublicID(root), nil
}

// buildDefEdges collects every DefPlacement edge as a (block, entity) pair,
// normalizing orientation so the block always comes first regardless of
// which endpoint the original edge pointed from.
func buildDefEdges(g graph.Graph) []DefEdge {
	var out []DefEdge

	for _, ref := range g.Edges() {
		e := g.Edge(ref)
		if e.Kind != graph.DefPlacement {
			continue
		}

		srcIsBlock := graph.IsBlock(g.Kind(e.Src))

		block, entity := e.Src, e.Dst
		if !srcIsBlock {
			block, entity = e.Dst, e.Src
		}

		out = append(out, DefEdge{Block: g.PublicID(block), Entity: g.PublicID(entity)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Block != out[j].Block {
			return out[i].Block < out[j].Block
		}

		return out[i].Entity < out[j].Entity
	})

	return out
}

func buildMachineParams(tm target.TargetMachine) MachineParams {
	ids := tm.LocationIDs()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return MachineParams{TargetMachineID: tm.ID, Locations: ids}
}

func buildMatchParams(fg graph.Graph, tm target.TargetMachine, pm match.PatternMatch) (MatchParams, error) {
	instr, err := tm.Instruction(pm.InstrID)
	if err != nil {
		return MatchParams{}, fmt.Errorf("model: match %d: %w", pm.MatchID, err)
	}

	pattern, ok := instr.PatternByID(pm.PatternID)
	if !ok {
		return MatchParams{}, fmt.Errorf(
			"model: match %d: instruction %d has no pattern %d", pm.MatchID, pm.InstrID, pm.PatternID)
	}

	pairs := pm.Match.Pairs

	mapNode := func(patternNode graph.NodeID) (graph.NodeID, bool) {
		id, ok := pairs[patternNode]
		return id, ok
	}

	var operationsCovered []graph.NodeID

	for _, ref := range pattern.OpStructure.Graph.Nodes() {
		kind := pattern.OpStructure.Graph.Kind(ref)
		if !graph.IsOperation(kind) {
			continue
		}

		pid := pattern.OpStructure.Graph.PublicID(ref)

		fid, ok := mapNode(pid)
		if !ok {
			return MatchParams{}, fmt.Errorf(
				"model: match %d: pattern operation node %d has no assignment", pm.MatchID, pid)
		}

		operationsCovered = append(operationsCovered, fid)
	}

	sortNodeIDs(operationsCovered)

	dataDefined, err := mapAll(pattern.OutputDataNodeIDs, mapNode, pm.MatchID, "output")
	if err != nil {
		return MatchParams{}, err
	}

	dataUsed, err := mapAll(pattern.InputDataNodeIDs, mapNode, pm.MatchID, "input")
	if err != nil {
		return MatchParams{}, err
	}

	var entryBlock *graph.NodeID

	if pattern.OpStructure.EntryBlock != nil {
		fid, ok := mapNode(*pattern.OpStructure.EntryBlock)
		if !ok {
			return MatchParams{}, fmt.Errorf(
				"model: match %d: pattern entry block %d has no assignment", pm.MatchID, *pattern.OpStructure.EntryBlock)
		}

		entryBlock = &fid
	}

	spanned := spannedBlocks(fg, operationsCovered, dataDefined, dataUsed)

	hasControlFlow := false

	for _, ref := range pattern.OpStructure.Graph.Nodes() {
		if _, ok := pattern.OpStructure.Graph.Kind(ref).(graph.Control); ok {
			hasControlFlow = true
			break
		}
	}

	usedByPhis, err := dataUsedByPhis(pattern.OpStructure.Graph, fg, mapNode)
	if err != nil {
		return MatchParams{}, err
	}

	asmMap := map[graph.NodeID]graph.NodeID{}

	for _, pid := range pattern.EmitTemplate.ReferencedNodes() {
		fid, ok := mapNode(pid)
		if !ok {
			return MatchParams{}, fmt.Errorf(
				"model: match %d: emit template references unassigned pattern node %d", pm.MatchID, pid)
		}

		asmMap[pid] = fid
	}

	constraints := instantiateConstraints(pattern.OpStructure.Constraints, pm.MatchID, pairs)

	return MatchParams{
		InstructionID:            pm.InstrID,
		PatternID:                pm.PatternID,
		MatchID:                  pm.MatchID,
		OperationsCovered:        operationsCovered,
		DataDefined:              dataDefined,
		DataUsed:                 dataUsed,
		EntryBlock:               entryBlock,
		SpannedBlocks:            spanned,
		CodeSize:                 instr.Properties.CodeSize,
		Latency:                  instr.Properties.Latency,
		ApplyDefDomUseConstraint: !instr.Properties.IsPhi,
		IsNonCopyInstruction:     !instr.Properties.IsCopy,
		HasControlFlow:           hasControlFlow,
		DataUsedByPhis:           usedByPhis,
		AsmStrNodeMap:            asmMap,
		Constraints:              constraints,
	}, nil
}

func mapAll(
	patternNodes []graph.NodeID, mapNode func(graph.NodeID) (graph.NodeID, bool), matchID uint64, what string,
) ([]graph.NodeID, error) {
	out := make([]graph.NodeID, 0, len(patternNodes))

	for _, pid := range patternNodes {
		fid, ok := mapNode(pid)
		if !ok {
			return nil, fmt.Errorf("model: match %d: pattern %s node %d has no assignment", matchID, what, pid)
		}

		out = append(out, fid)
	}

	return out, nil
}

// spannedBlocks finds every function-side block connected by a DefPlacement
// edge (either orientation) to one of the match's covered/defined/used
// function nodes.
func spannedBlocks(fg graph.Graph, groups ...[]graph.NodeID) []graph.NodeID {
	seen := map[graph.NodeID]bool{}

	for _, group := range groups {
		for _, fid := range group {
			ref, ok := nodeRefByID(fg, fid)
			if !ok {
				continue
			}

			for _, nb := range fg.BothNeighbours(ref, graph.EdgeKindPtr(graph.DefPlacement)) {
				if graph.IsBlock(fg.Kind(nb)) {
					seen[fg.PublicID(nb)] = true
				}
			}
		}
	}

	out := make([]graph.NodeID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}

	sortNodeIDs(out)

	return out
}

// dataUsedByPhis returns, among the function nodes mapped from pg's Phi
// operations, the data-flow inputs feeding them — needed downstream to
// break definition cycles a phi's placement would otherwise introduce.
func dataUsedByPhis(
	pg, fg graph.Graph, mapNode func(graph.NodeID) (graph.NodeID, bool),
) ([]graph.NodeID, error) {
	seen := map[graph.NodeID]bool{}

	for _, ref := range pg.Nodes() {
		if _, ok := pg.Kind(ref).(graph.Phi); !ok {
			continue
		}

		pid := pg.PublicID(ref)

		fid, ok := mapNode(pid)
		if !ok {
			return nil, fmt.Errorf("model: pattern phi node %d has no assignment", pid)
		}

		fref, ok := nodeRefByID(fg, fid)
		if !ok {
			continue
		}

		for _, in := range fg.InNeighbours(fref, graph.EdgeKindPtr(graph.DataFlow)) {
			if graph.IsEntity(fg.Kind(in)) {
				seen[fg.PublicID(in)] = true
			}
		}
	}

	out := make([]graph.NodeID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}

	sortNodeIDs(out)

	return out, nil
}

// instantiateConstraints binds a pattern's template constraints to one
// concrete match: ThisMatchExpr becomes the match's own ID, and every
// pattern node ID becomes the function node ID the match assigns it.
func instantiateConstraints(
	templates []constraint.BoolExpr, matchID uint64, pairs map[graph.NodeID]graph.NodeID,
) []constraint.BoolExpr {
	raw := make(map[uint64]uint64, len(pairs))
	for p, f := range pairs {
		raw[uint64(p)] = uint64(f)
	}

	out := make([]constraint.BoolExpr, len(templates))

	for i, c := range templates {
		bound := constraint.ReplaceThisMatchWith(c, matchID)
		out[i] = constraint.ReplacePatternNodeIDsWithFunctionNodeIDs(bound, raw)
	}

	return out
}

// nodeRefByID is the bridge from a graph's public NodeID space back to one
// of its own NodeRefs, mirroring pkg/match's unexported refOfID: both
// packages need it and neither depends on the other, so each keeps its own
// small linear-scan copy rather than introducing a shared dependency for
// one five-line helper.
func nodeRefByID(g graph.Graph, id graph.NodeID) (graph.NodeRef, bool) {
	for _, ref := range g.Nodes() {
		if g.PublicID(ref) == id {
			return ref, true
		}
	}

	return 0, false
}

func sortNodeIDs(ids []graph.NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
