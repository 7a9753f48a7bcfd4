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
package transform

import (
	"testing"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
)

func TestCanonicalizeCopiesFoldsIdentityOperand(t *testing.T) {
	g := graph.New()

	zero, g := g.AddNode(graph.Value{DataType: graph.IntConstType{Range: graph.NewInterval64(0, 0), Bits: 32, HasBits: true}})
	x, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	add, g := g.AddNode(graph.Computation{Op: graph.OpAdd})
	result, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, g = g.AddEdge(graph.DataFlow, x, add)
	_, g = g.AddEdge(graph.DataFlow, zero, add)
	_, g = g.AddEdge(graph.DataFlow, add, result)

	g = CanonicalizeCopies(g)

	if _, ok := g.Kind(add).(graph.Copy); !ok {
		t.Fatalf("expected add to become a Copy, got %v", g.Kind(add))
	}

	if len(g.EdgesBetween(zero, add)) != 0 {
		t.Fatalf("expected identity operand edge elided")
	}

	if len(g.EdgesBetween(x, add)) != 1 {
		t.Fatalf("expected non-identity operand edge preserved")
	}
}

func TestCanonicalizeCopiesLeavesNonIdentityAlone(t *testing.T) {
	g := graph.New()

	a, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	b, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	add, g := g.AddNode(graph.Computation{Op: graph.OpAdd})

	_, g = g.AddEdge(graph.DataFlow, a, add)
	_, g = g.AddEdge(graph.DataFlow, b, add)

	g = CanonicalizeCopies(g)

	if _, ok := g.Kind(add).(graph.Computation); !ok {
		t.Fatalf("expected add to remain a computation, got %v", g.Kind(add))
	}
}

func TestLowerPointersMergesEqualWidthCast(t *testing.T) {
	g := graph.New()

	intVal, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 64}})
	ptrVal, g := g.AddNode(graph.Value{DataType: graph.PointerType{Variant: graph.PointerTemp{}}})
	cast, g := g.AddNode(graph.Computation{Op: graph.OpIntToPtr})
	nullVal, g := g.AddNode(graph.Value{DataType: graph.PointerType{Variant: graph.PointerNull{}}})

	_, g = g.AddEdge(graph.DataFlow, intVal, cast)
	_, g = g.AddEdge(graph.DataFlow, cast, ptrVal)

	o := LowerPointers(opstruct.New(g), 64, 0)
	g2 := o.Graph

	if g2.IsInGraph(cast) {
		t.Fatalf("expected equal-width cast node deleted")
	}

	if g2.IsInGraph(ptrVal) {
		t.Fatalf("expected cast result merged away")
	}

	if !g2.IsInGraph(intVal) {
		t.Fatalf("expected cast operand to survive as the merge target")
	}

	nullType, ok := g2.Kind(nullVal).(graph.Value)
	if !ok {
		t.Fatalf("expected null pointer node to remain a value node")
	}

	ic, ok := nullType.DataType.(graph.IntConstType)
	if !ok || !ic.HasBits || ic.Bits != 64 {
		t.Fatalf("expected pointer-null rewritten to a 64-bit int-const, got %#v", nullType.DataType)
	}

	if ic.Range.Lo.Int64() != 0 || ic.Range.Hi.Int64() != 0 {
		t.Fatalf("expected pointer-null rewritten to the null pointer value 0, got %v", ic.Range)
	}
}

func TestLowerPointersWidensNarrowerSource(t *testing.T) {
	g := graph.New()

	intVal, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	ptrVal, g := g.AddNode(graph.Value{DataType: graph.PointerType{Variant: graph.PointerTemp{}}})
	cast, g := g.AddNode(graph.Computation{Op: graph.OpIntToPtr})

	_, g = g.AddEdge(graph.DataFlow, intVal, cast)
	_, g = g.AddEdge(graph.DataFlow, cast, ptrVal)

	o := LowerPointers(opstruct.New(g), 64, 0)
	g2 := o.Graph

	comp, ok := g2.Kind(cast).(graph.Computation)
	if !ok || comp.Op != graph.OpZExt {
		t.Fatalf("expected narrower-source cast rewritten to zext, got %v", g2.Kind(cast))
	}
}

func TestRemoveRedundantConversionsFoldsFullWidthMask(t *testing.T) {
	g := graph.New()

	src, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 8}})
	zext, g := g.AddNode(graph.Computation{Op: graph.OpZExt})
	extended, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	mask, g := g.AddNode(graph.Value{DataType: graph.IntConstType{Range: graph.NewInterval64(255, 255), Bits: 32, HasBits: true}})
	and, g := g.AddNode(graph.Computation{Op: graph.OpAnd})
	result, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, g = g.AddEdge(graph.DataFlow, src, zext)
	_, g = g.AddEdge(graph.DataFlow, zext, extended)
	_, g = g.AddEdge(graph.DataFlow, extended, and)
	_, g = g.AddEdge(graph.DataFlow, mask, and)
	_, g = g.AddEdge(graph.DataFlow, and, result)

	g = RemoveRedundantConversions(g)

	if _, ok := g.Kind(and).(graph.Copy); !ok {
		t.Fatalf("expected and to become a Copy, got %v", g.Kind(and))
	}

	if len(g.EdgesBetween(mask, and)) != 0 {
		t.Fatalf("expected mask operand elided")
	}

	if len(g.EdgesBetween(extended, and)) != 1 {
		t.Fatalf("expected extended operand preserved")
	}

	if _, ok := g.Kind(zext).(graph.Computation); !ok {
		t.Fatalf("expected the extension node left untouched, got %v", g.Kind(zext))
	}
}

func TestEnforcePhiInvariantsCollapsesDuplicateOperand(t *testing.T) {
	g := graph.New()

	b0, g := g.AddNode(graph.Block{Name: "b0"})
	b1, g := g.AddNode(graph.Block{Name: "b1"})
	b2, g := g.AddNode(graph.Block{Name: "b2"})
	b3, g := g.AddNode(graph.Block{Name: "b3"})

	_, g = g.AddEdge(graph.ControlFlow, b0, b1)
	_, g = g.AddEdge(graph.ControlFlow, b0, b2)
	_, g = g.AddEdge(graph.ControlFlow, b1, b3)
	_, g = g.AddEdge(graph.ControlFlow, b2, b3)

	v, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	_, g = g.AddEdge(graph.DefPlacement, b1, v)
	_, g = g.AddEdge(graph.DefPlacement, b2, v)

	phi, g := g.AddNode(graph.Phi{})
	_, g = g.AddEdge(graph.DataFlow, v, phi)
	_, g = g.AddEdge(graph.DataFlow, v, phi)

	out, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	_, g = g.AddEdge(graph.DataFlow, phi, out)

	g = EnforcePhiInvariants(g)

	if got := g.InEdges(phi, graph.EdgeKindPtr(graph.DataFlow)); len(got) != 1 {
		t.Fatalf("expected duplicate operand collapsed to one edge, got %d", len(got))
	}

	blocks := defPlacementBlocks(g, v)
	if len(blocks) != 1 || blocks[0] != b0 {
		t.Fatalf("expected v's definition placed at the closest common dominator b0, got %v", blocks)
	}
}

func TestEnforcePhiInvariantsKeepsOneOperandPerBlock(t *testing.T) {
	g := graph.New()

	b0, g := g.AddNode(graph.Block{Name: "b0"})

	v1, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	v2, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	_, g = g.AddEdge(graph.DefPlacement, b0, v1)
	_, g = g.AddEdge(graph.DefPlacement, b0, v2)

	phi, g := g.AddNode(graph.Phi{})
	_, g = g.AddEdge(graph.DataFlow, v1, phi)
	_, g = g.AddEdge(graph.DataFlow, v2, phi)

	g = EnforcePhiInvariants(g)

	if got := g.InEdges(phi, graph.EdgeKindPtr(graph.DataFlow)); len(got) != 1 {
		t.Fatalf("expected only one same-block operand kept, got %d", len(got))
	}
}

func TestRemoveRedundantPhiNodesMergesSingleInput(t *testing.T) {
	g := graph.New()

	v, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	phi, g := g.AddNode(graph.Phi{})
	out, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, g = g.AddEdge(graph.DataFlow, v, phi)
	_, g = g.AddEdge(graph.DataFlow, phi, out)

	vID := g.PublicID(v)
	outID := g.PublicID(out)

	o := opstruct.New(g).AddConstraint(constraint.EqExpr{
		Lhs: constraint.NumOfNodeExpr{Node: constraint.ANodeIDExpr{ID: uint64(outID)}},
		Rhs: constraint.IntLitExpr{Value: 1},
	})

	o = RemoveRedundantPhiNodes(o)
	g2 := o.Graph

	if g2.IsInGraph(phi) {
		t.Fatalf("expected single-input phi deleted")
	}

	if g2.IsInGraph(out) {
		t.Fatalf("expected phi's output value merged away")
	}

	if !g2.IsInGraph(v) || g2.PublicID(v) != vID {
		t.Fatalf("expected phi's input value to survive with its own id")
	}

	eq, ok := o.Constraints[0].(constraint.EqExpr)
	if !ok {
		t.Fatalf("expected constraint to remain an EqExpr, got %T", o.Constraints[0])
	}

	num, ok := eq.Lhs.(constraint.NumOfNodeExpr)
	if !ok {
		t.Fatalf("expected constraint lhs to remain a NumOfNodeExpr, got %T", eq.Lhs)
	}

	id, ok := num.Node.(constraint.ANodeIDExpr)
	if !ok || id.ID != uint64(vID) {
		t.Fatalf("expected constraint rewritten to name the surviving id %d, got %+v", vID, num.Node)
	}
}

func TestRemoveRedundantPhiNodesLeavesMultiInputAlone(t *testing.T) {
	g := graph.New()

	v1, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	v2, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	phi, g := g.AddNode(graph.Phi{})
	out, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, g = g.AddEdge(graph.DataFlow, v1, phi)
	_, g = g.AddEdge(graph.DataFlow, v2, phi)
	_, g = g.AddEdge(graph.DataFlow, phi, out)

	o := RemoveRedundantPhiNodes(opstruct.New(g))

	if !o.Graph.IsInGraph(phi) {
		t.Fatalf("expected multi-input phi left in place")
	}
}

func TestEliminateDeadCodeRemovesUnusedComputationTransitively(t *testing.T) {
	g := graph.New()

	call, g := g.AddNode(graph.Call{Fn: "foo"})
	usedVal, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	_, g = g.AddEdge(graph.DataFlow, call, usedVal)

	operand, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	comp, g := g.AddNode(graph.Computation{Op: graph.OpAdd})
	deadVal, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	_, g = g.AddEdge(graph.DataFlow, operand, comp)
	_, g = g.AddEdge(graph.DataFlow, comp, deadVal)

	g = EliminateDeadCode(g)

	if !g.IsInGraph(call) || !g.IsInGraph(usedVal) {
		t.Fatalf("expected call result kept despite having no consumers")
	}

	if g.IsInGraph(deadVal) || g.IsInGraph(comp) || g.IsInGraph(operand) {
		t.Fatalf("expected dead computation and its operand removed transitively")
	}
}
