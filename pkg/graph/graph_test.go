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
package graph

import "testing"

func TestAddNodeAssignsDenseIDs(t *testing.T) {
	g := New()

	n0, g := g.AddNode(Value{DataType: IntTempType{Bits: 32}})
	n1, g := g.AddNode(Value{DataType: IntTempType{Bits: 32}})

	if g.PublicID(n0) != 0 || g.PublicID(n1) != 1 {
		t.Fatalf("expected dense public ids 0,1; got %d,%d", g.PublicID(n0), g.PublicID(n1))
	}
}

func TestAddEdgeNumbersAreContiguous(t *testing.T) {
	g := New()
	add, g := g.AddNode(Computation{Op: OpAdd})
	v1, g := g.AddNode(Value{DataType: IntTempType{Bits: 32}})
	v2, g := g.AddNode(Value{DataType: IntTempType{Bits: 32}})
	v3, g := g.AddNode(Value{DataType: IntTempType{Bits: 32}})

	_, g = g.AddEdge(DataFlow, v1, add)
	_, g = g.AddEdge(DataFlow, v2, add)
	_, g = g.AddEdge(DataFlow, add, v3)

	inNums := map[uint]bool{}
	for _, ref := range g.InEdges(add, EdgeKindPtr(DataFlow)) {
		inNums[g.Edge(ref).InNum] = true
	}

	if len(inNums) != 2 || !inNums[0] || !inNums[1] {
		t.Fatalf("expected contiguous in-numbers {0,1}, got %v", inNums)
	}
}

func TestDeleteEdgeRenumbers(t *testing.T) {
	g := New()
	blk, g := g.AddNode(Block{Name: "b0"})
	v1, g := g.AddNode(Value{DataType: AnyType{}})
	v2, g := g.AddNode(Value{DataType: AnyType{}})
	v3, g := g.AddNode(Value{DataType: AnyType{}})

	e1, g := g.AddEdge(DefPlacement, blk, v1)
	_, g = g.AddEdge(DefPlacement, blk, v2)
	_, g = g.AddEdge(DefPlacement, blk, v3)

	g = g.DeleteEdge(e1)

	nums := map[uint]bool{}
	for _, ref := range g.OutEdges(blk, EdgeKindPtr(DefPlacement)) {
		nums[g.Edge(ref).OutNum] = true
	}

	if len(nums) != 2 || !nums[0] || !nums[1] {
		t.Fatalf("expected renumbered contiguous out-numbers {0,1}, got %v", nums)
	}
}

func TestUpdateEdgeSourceDoesNotBackfill(t *testing.T) {
	g := New()
	a, g := g.AddNode(Block{Name: "a"})
	b, g := g.AddNode(Block{Name: "b"})
	v1, g := g.AddNode(Value{DataType: AnyType{}})
	v2, g := g.AddNode(Value{DataType: AnyType{}})

	e1, g := g.AddEdge(DefPlacement, a, v1)
	_, g = g.AddEdge(DefPlacement, a, v2)

	g = g.UpdateEdgeSource(e1, b)

	// a should now only have the v2 edge, but its OutNum (1) is untouched.
	remaining := g.OutEdges(a, EdgeKindPtr(DefPlacement))
	if len(remaining) != 1 || g.Edge(remaining[0]).OutNum != 1 {
		t.Fatalf("expected vacated slot left unrenumbered, got %+v", g.Edge(remaining[0]))
	}

	// b's new edge should get OutNum 0 (first out-edge there).
	moved := g.OutEdges(b, EdgeKindPtr(DefPlacement))
	if len(moved) != 1 || g.Edge(moved[0]).OutNum != 0 {
		t.Fatalf("expected moved edge renumbered at new endpoint, got %+v", g.Edge(moved[0]))
	}
}

func TestMergeNodesDropsSelfLoop(t *testing.T) {
	g := New()
	a, g := g.AddNode(Block{Name: "a"})
	b, g := g.AddNode(Control{Op: "br"})
	c, g := g.AddNode(Block{Name: "c"})

	_, g = g.AddEdge(ControlFlow, a, b)
	_, g = g.AddEdge(ControlFlow, b, c)

	g = g.MergeNodes(a, b)

	if g.IsInGraph(b) {
		t.Fatalf("discard node should be gone")
	}

	if len(g.EdgesBetween(a, a)) != 0 {
		t.Fatalf("self loop should have been dropped")
	}

	if len(g.EdgesBetween(a, c)) != 1 {
		t.Fatalf("expected a->c redirected edge")
	}
}

func TestDeleteNodeKeepEdgesRequiresUniquePredecessor(t *testing.T) {
	g := New()
	a, g := g.AddNode(Block{Name: "a"})
	b, g := g.AddNode(Block{Name: "b"})
	c, g := g.AddNode(Control{Op: "br"})

	_, g = g.AddEdge(ControlFlow, a, c)
	_, g = g.AddEdge(ControlFlow, b, c)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-unique predecessor")
		}
	}()

	g.DeleteNodeKeepEdges(c)
}

func TestValueCompatibility(t *testing.T) {
	if !Compatible(IntTempType{Bits: 32}, AnyType{}) {
		t.Fatalf("anything should satisfy Any")
	}

	if Compatible(IntTempType{Bits: 32}, IntTempType{Bits: 64}) {
		t.Fatalf("mismatched widths should not be compatible")
	}

	wide := IntConstType{Range: NewInterval64(0, 100)}
	narrow := IntConstType{Range: NewInterval64(10, 20)}

	if !Compatible(narrow, wide) {
		t.Fatalf("narrow range should satisfy wider pattern range")
	}

	if Compatible(wide, narrow) {
		t.Fatalf("wide range should not satisfy narrower pattern range")
	}
}
