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
	"testing"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/match"
	"github.com/opselect/isel/pkg/opstruct"
	"github.com/opselect/isel/pkg/target"
)

// buildFunction returns a one-block function computing v3 = add(v1, v2),
// with v3's definition placed in block b.
func buildFunction() (opstruct.OpStruct, graph.NodeID, graph.NodeID, graph.NodeID, graph.NodeID) {
	g := graph.New()

	bRef, g := g.AddNode(graph.Block{Name: "entry"})
	opRef, g := g.AddNode(graph.Computation{Op: graph.OpAdd})
	v1Ref, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	v2Ref, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	v3Ref, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, g = g.AddEdge(graph.DataFlow, v1Ref, opRef)
	_, g = g.AddEdge(graph.DataFlow, v2Ref, opRef)
	_, g = g.AddEdge(graph.DataFlow, opRef, v3Ref)
	_, g = g.AddEdge(graph.DefPlacement, bRef, v3Ref)

	return opstruct.New(g), g.PublicID(opRef), g.PublicID(v1Ref), g.PublicID(v2Ref), g.PublicID(v3Ref)
}

// buildPattern returns the matching add(p1, p2) -> p3 pattern, with a
// no-reuse constraint on its output and an emit template referencing it.
func buildPattern() (target.InstrPattern, graph.NodeID, graph.NodeID, graph.NodeID) {
	pg := graph.New()

	opRef, pg := pg.AddNode(graph.Computation{Op: graph.OpAdd})
	p1Ref, pg := pg.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	p2Ref, pg := pg.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	p3Ref, pg := pg.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, pg = pg.AddEdge(graph.DataFlow, p1Ref, opRef)
	_, pg = pg.AddEdge(graph.DataFlow, p2Ref, opRef)
	_, pg = pg.AddEdge(graph.DataFlow, opRef, p3Ref)

	p3 := pg.PublicID(p3Ref)

	os := opstruct.New(pg).AddConstraint(opstruct.NoReuseConstraint(p3, 0))

	pattern := target.InstrPattern{
		ID:                target.PatternID(0),
		OpStructure:       os,
		InputDataNodeIDs:  []graph.NodeID{pg.PublicID(p1Ref), pg.PublicID(p2Ref)},
		OutputDataNodeIDs: []graph.NodeID{p3},
		EmitTemplate: target.EmitStringTemplate{
			Lines: []target.EmitLine{
				{target.Verbatim{Text: "add "}, target.LocationOf{Node: p3}},
			},
		},
	}

	return pattern, pg.PublicID(p1Ref), pg.PublicID(p2Ref), p3
}

func TestBuildAssemblesFunctionAndMatchParams(t *testing.T) {
	fn, opID, v1, v2, v3 := buildFunction()
	pattern, p1, p2, p3 := buildPattern()

	tm := target.New("toy", 64, 0).WithInstruction(target.Instruction{
		ID:       target.InstrID(1),
		Patterns: []target.InstrPattern{pattern},
		Properties: target.InstrProperties{
			CodeSize: 4,
			Latency:  2,
		},
	})

	pm := match.PatternMatch{
		InstrID:   target.InstrID(1),
		PatternID: target.PatternID(0),
		MatchID:   0,
		Match: match.Match{Pairs: map[graph.NodeID]graph.NodeID{
			pattern.OpStructure.Graph.PublicID(firstOpRef(pattern.OpStructure.Graph)): opID,
			p1: v1,
			p2: v2,
			p3: v3,
		}},
	}

	hlm, err := Build(fn, tm, []match.PatternMatch{pm}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hlm.FunctionParams.EntryBlock == 0 && len(hlm.FunctionParams.BlockNodes) != 1 {
		t.Fatalf("expected exactly one block node")
	}

	if len(hlm.FunctionParams.DataNodes) != 3 {
		t.Fatalf("expected 3 data nodes, got %d", len(hlm.FunctionParams.DataNodes))
	}

	foundDefEdge := false

	for _, e := range hlm.FunctionParams.DefEdges {
		if e.Block == hlm.FunctionParams.EntryBlock && e.Entity == v3 {
			foundDefEdge = true
		}
	}

	if !foundDefEdge {
		t.Fatalf("expected a def-edge (entry block, v3), got %+v", hlm.FunctionParams.DefEdges)
	}

	if len(hlm.PerMatchParams) != 1 {
		t.Fatalf("expected 1 match param entry, got %d", len(hlm.PerMatchParams))
	}

	mp := hlm.PerMatchParams[0]

	if len(mp.OperationsCovered) != 1 || mp.OperationsCovered[0] != opID {
		t.Fatalf("expected operations covered = [%d], got %v", opID, mp.OperationsCovered)
	}

	if len(mp.DataDefined) != 1 || mp.DataDefined[0] != v3 {
		t.Fatalf("expected data defined = [%d], got %v", v3, mp.DataDefined)
	}

	if len(mp.DataUsed) != 2 || mp.DataUsed[0] != v1 || mp.DataUsed[1] != v2 {
		t.Fatalf("expected data used = [%d, %d], got %v", v1, v2, mp.DataUsed)
	}

	if len(mp.SpannedBlocks) != 1 || mp.SpannedBlocks[0] != hlm.FunctionParams.EntryBlock {
		t.Fatalf("expected spanned blocks = [%d], got %v", hlm.FunctionParams.EntryBlock, mp.SpannedBlocks)
	}

	if mp.CodeSize != 4 || mp.Latency != 2 {
		t.Fatalf("expected code size 4 / latency 2, got %d / %d", mp.CodeSize, mp.Latency)
	}

	if !mp.ApplyDefDomUseConstraint || !mp.IsNonCopyInstruction || mp.HasControlFlow {
		t.Fatalf("unexpected flag combination: %+v", mp)
	}

	if got, ok := mp.AsmStrNodeMap[p3]; !ok || got != v3 {
		t.Fatalf("expected emit template node-map p3->v3, got %v", mp.AsmStrNodeMap)
	}

	if len(mp.Constraints) != 1 {
		t.Fatalf("expected 1 instantiated constraint, got %d", len(mp.Constraints))
	}

	eq, ok := mp.Constraints[0].(constraint.EqExpr)
	if !ok {
		t.Fatalf("expected an EqExpr, got %T", mp.Constraints[0])
	}

	loc, ok := eq.Lhs.(constraint.LocationOfValueNodeExpr)
	if !ok {
		t.Fatalf("expected LocationOfValueNodeExpr, got %T", eq.Lhs)
	}

	node, ok := loc.Node.(constraint.ANodeIDExpr)
	if !ok || node.ID != uint64(v3) {
		t.Fatalf("expected the constraint's node reference to be rewritten to function node %d, got %+v", v3, loc.Node)
	}
}

func firstOpRef(g graph.Graph) graph.NodeRef {
	for _, ref := range g.Nodes() {
		if graph.IsOperation(g.Kind(ref)) {
			return ref
		}
	}

	return 0
}

func TestBuildErrorsOnUnknownInstruction(t *testing.T) {
	fn, _, _, _, _ := buildFunction()
	tm := target.New("toy", 64, 0)

	pm := match.PatternMatch{InstrID: target.InstrID(99), PatternID: target.PatternID(0)}

	if _, err := Build(fn, tm, []match.PatternMatch{pm}, nil); err == nil {
		t.Fatalf("expected an error for an unknown instruction ID")
	}
}
