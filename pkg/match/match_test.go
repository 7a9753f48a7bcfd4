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
package match

import (
	"testing"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/target"
)

// addPattern builds a one-computation pattern graph op(v1,v2) -> v3, with
// the two data-flow-in edges added in the order named by firstInput
// ("v1" or "v2"), and returns the graph plus the NodeIDs of v1, v2, v3.
func addPattern(op graph.ComputeOp, firstInput string) (graph.Graph, graph.NodeID, graph.NodeID, graph.NodeID) {
	g := graph.New()

	opRef, g := g.AddNode(graph.Computation{Op: op})
	v1Ref, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})
	v2Ref, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})
	v3Ref, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})

	first, second := v1Ref, v2Ref
	if firstInput == "v2" {
		first, second = v2Ref, v1Ref
	}

	_, g = g.AddEdge(graph.DataFlow, first, opRef)
	_, g = g.AddEdge(graph.DataFlow, second, opRef)
	_, g = g.AddEdge(graph.DataFlow, opRef, v3Ref)

	return g, g.PublicID(v1Ref), g.PublicID(v2Ref), g.PublicID(v3Ref)
}

func TestCommutativeOpDedupesToOneMatch(t *testing.T) {
	pg, _, _, _ := addPattern(graph.OpAdd, "v1")
	fg, _, _, _ := addPattern(graph.OpAdd, "v2")

	raw := FindSubgraphMatches(fg, pg)
	if len(raw) != 2 {
		t.Fatalf("expected 2 raw matches before dedup, got %d", len(raw))
	}

	kept := RemoveDuplicateMatches(raw)
	if len(kept) != 1 {
		t.Fatalf("expected exactly 1 match after duplicate removal, got %d", len(kept))
	}
}

func TestNonCommutativeOpConstrainsOrdering(t *testing.T) {
	const opAddNC graph.ComputeOp = "add_noncommutative"

	pg, pv1, pv2, _ := addPattern(opAddNC, "v1")
	fg, fv1, fv2, _ := addPattern(opAddNC, "v2")

	kept := RemoveDuplicateMatches(FindSubgraphMatches(fg, pg))
	if len(kept) != 1 {
		t.Fatalf("expected exactly 1 surviving match once input order is significant, got %d", len(kept))
	}

	m := kept[0]
	if m.Pairs[pv1] != fv2 || m.Pairs[pv2] != fv1 {
		t.Fatalf("expected the order-respecting assignment v1->fv2,v2->fv1, got %v", m.Pairs)
	}
}

func TestDuplicateDefPlacementBlocksSplitsBlockAndSharesPublicID(t *testing.T) {
	g := graph.New()

	blockRef, g := g.AddNode(graph.Block{Name: "b"})
	valIn, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})
	valOut, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})

	_, g = g.AddEdge(graph.DefPlacement, valIn, blockRef)
	_, g = g.AddEdge(graph.DefPlacement, blockRef, valOut)

	blockID := g.PublicID(blockRef)

	split := DuplicateDefPlacementBlocks(g)

	var blockRefs []graph.NodeRef
	for _, ref := range split.Nodes() {
		if _, ok := split.Kind(ref).(graph.Block); ok {
			blockRefs = append(blockRefs, ref)
		}
	}

	if len(blockRefs) != 2 {
		t.Fatalf("expected the block to be duplicated into 2 nodes, got %d", len(blockRefs))
	}

	for _, ref := range blockRefs {
		if split.PublicID(ref) != blockID {
			t.Fatalf("duplicated block does not share the original public ID")
		}
	}

	var totalIn, totalOut int
	for _, ref := range blockRefs {
		totalIn += len(split.InEdges(ref, graph.EdgeKindPtr(graph.DefPlacement)))
		totalOut += len(split.OutEdges(ref, graph.EdgeKindPtr(graph.DefPlacement)))
	}

	if totalIn != 1 || totalOut != 1 {
		t.Fatalf("expected the original in-edge and out-edge to be split one per node, got in=%d out=%d", totalIn, totalOut)
	}
}

func TestHasCyclicDataDependencyRejectsExternalReachability(t *testing.T) {
	// opA and opB are the match's only two nodes; they share no direct
	// edge, so the induced subgraph splits them into two components. A
	// path opA -> outVal -> opX -> outVal2 -> opB exists only through opX,
	// entirely outside the match, and must still disqualify the match.
	g := graph.New()

	opA, g := g.AddNode(graph.Computation{Op: graph.OpAdd})
	opB, g := g.AddNode(graph.Computation{Op: graph.OpMul})
	opX, g := g.AddNode(graph.Computation{Op: graph.OpOr})
	outVal, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})
	outVal2, g := g.AddNode(graph.Value{DataType: graph.AnyType{}})

	_, g = g.AddEdge(graph.DataFlow, opA, outVal)
	_, g = g.AddEdge(graph.DataFlow, outVal, opX)
	_, g = g.AddEdge(graph.DataFlow, opX, outVal2)
	_, g = g.AddEdge(graph.DataFlow, outVal2, opB)

	m := Match{Pairs: map[graph.NodeID]graph.NodeID{
		0: g.PublicID(opA),
		1: g.PublicID(opB),
	}}

	if !HasCyclicDataDependency(g, m) {
		t.Fatalf("expected a match whose two halves are connected via an external path to be rejected")
	}
}

func TestHasCyclicDataDependencyAcceptsTrulyIndependentComponents(t *testing.T) {
	g := graph.New()

	opC, g := g.AddNode(graph.Computation{Op: graph.OpAdd})
	opD, g := g.AddNode(graph.Computation{Op: graph.OpMul})
	_, g = g.AddNode(graph.Value{DataType: graph.AnyType{}}) // unrelated, unreachable node

	m := Match{Pairs: map[graph.NodeID]graph.NodeID{
		0: g.PublicID(opC),
		1: g.PublicID(opD),
	}}

	if HasCyclicDataDependency(g, m) {
		t.Fatalf("two components with no path between them must not be flagged as cyclically dependent")
	}
}

func TestRemoveDuplicateMatchesKeepsOneRepresentative(t *testing.T) {
	a := Match{Pairs: map[graph.NodeID]graph.NodeID{0: 10, 1: 11}}
	b := Match{Pairs: map[graph.NodeID]graph.NodeID{0: 11, 1: 10}} // same function-node set, different roles
	c := Match{Pairs: map[graph.NodeID]graph.NodeID{0: 12, 1: 13}} // disjoint set

	kept := RemoveDuplicateMatches([]Match{a, b, c})
	if len(kept) != 2 {
		t.Fatalf("expected 2 distinct function-node sets to survive, got %d", len(kept))
	}
}

func TestFindMatchesAssignsDenseSortedMatchIDs(t *testing.T) {
	pg, _, _, _ := addPattern(graph.OpAdd, "v1")
	fg, _, _, _ := addPattern(graph.OpAdd, "v1")

	patterns := []PatternSource{
		{InstrID: target.InstrID(2), PatternID: target.PatternID(0), Pattern: pg},
		{InstrID: target.InstrID(1), PatternID: target.PatternID(0), Pattern: pg},
	}

	out := FindMatches(fg, patterns, 2)

	if len(out) == 0 {
		t.Fatalf("expected at least one match")
	}

	for i, pm := range out {
		if pm.MatchID != uint64(i) {
			t.Fatalf("match IDs must be dense starting at 0, got %d at position %d", pm.MatchID, i)
		}
	}

	for i := 1; i < len(out); i++ {
		if out[i-1].InstrID > out[i].InstrID {
			t.Fatalf("results must be sorted by instruction ID ascending")
		}
	}
}
