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
	"github.com/opselect/isel/pkg/graph"
)

var allEdgeKinds = []graph.EdgeKind{
	graph.DataFlow, graph.ControlFlow, graph.StateFlow, graph.DefPlacement, graph.ReuseEdge,
}

// isIntermediateBlock reports whether n is a block with at least one
// inbound control-flow edge from a control node and at least one outbound
// control-flow edge to a control node.
func isIntermediateBlock(g graph.Graph, n graph.NodeRef) bool {
	if _, ok := g.Kind(n).(graph.Block); !ok {
		return false
	}

	hasControlIn := false

	for _, p := range g.InNeighbours(n, graph.EdgeKindPtr(graph.ControlFlow)) {
		if _, ok := g.Kind(p).(graph.Control); ok {
			hasControlIn = true
			break
		}
	}

	hasControlOut := false

	for _, s := range g.OutNeighbours(n, graph.EdgeKindPtr(graph.ControlFlow)) {
		if _, ok := g.Kind(s).(graph.Control); ok {
			hasControlOut = true
			break
		}
	}

	return hasControlIn && hasControlOut
}

// edgeRelevance records, for one node, which (edge kind, direction) pairs
// matter for edge-count compatibility.
type edgeRelevance struct {
	cfIn, cfOut, dfIn, dfOut, sfIn, sfOut bool
}

func relevanceFor(g graph.Graph, n graph.NodeRef) edgeRelevance {
	switch g.Kind(n).(type) {
	case graph.Computation:
		return edgeRelevance{true, true, true, true, true, true}
	case graph.Control:
		return edgeRelevance{cfIn: true, cfOut: true, dfIn: true}
	case graph.Block:
		if isIntermediateBlock(g, n) {
			return edgeRelevance{cfIn: true, cfOut: true}
		}

		return edgeRelevance{}
	default:
		return edgeRelevance{}
	}
}

// orderRelevance records, for one pattern node, which (edge kind, direction)
// pairs require the mapped neighbour sequence to match positionally (by
// ascending edge number) rather than merely as a set.
type orderRelevance struct {
	cfIn, cfOut, dfIn, dfOut bool
}

func orderRelevanceFor(g graph.Graph, n graph.NodeRef) orderRelevance {
	switch k := g.Kind(n).(type) {
	case graph.Block:
		if isIntermediateBlock(g, n) {
			return orderRelevance{cfIn: true}
		}

		return orderRelevance{}
	case graph.Control:
		return orderRelevance{cfOut: true, dfIn: true}
	case graph.Computation:
		return orderRelevance{dfIn: !graph.IsCommutative(k.Op), dfOut: true}
	case graph.Phi:
		return orderRelevance{dfIn: true}
	default:
		return orderRelevance{}
	}
}

// DoNodesMatch decides whether function node fn can satisfy pattern node pn:
// node kinds must be pairwise compatible, and then, for every (edge kind,
// direction) that matters at pn's kind, the distinct edge-number counts on
// both sides must agree.
func DoNodesMatch(fg, pg graph.Graph, fn, pn graph.NodeRef) bool {
	if !kindsCompatible(fg.Kind(fn), pg.Kind(pn)) {
		return false
	}

	rel := relevanceFor(pg, pn)

	check := func(matters bool, kind graph.EdgeKind, dir graph.Direction) bool {
		if !matters {
			return true
		}

		return distinctEdgeNumbers(fg, fn, kind, dir) == distinctEdgeNumbers(pg, pn, kind, dir)
	}

	return check(rel.cfIn, graph.ControlFlow, graph.In) &&
		check(rel.cfOut, graph.ControlFlow, graph.Out) &&
		check(rel.dfIn, graph.DataFlow, graph.In) &&
		check(rel.dfOut, graph.DataFlow, graph.Out) &&
		check(rel.sfIn, graph.StateFlow, graph.In) &&
		check(rel.sfOut, graph.StateFlow, graph.Out)
}

func distinctEdgeNumbers(g graph.Graph, n graph.NodeRef, kind graph.EdgeKind, dir graph.Direction) int {
	seen := map[uint]bool{}

	var refs []graph.EdgeRef
	if dir == graph.In {
		refs = g.InEdges(n, graph.EdgeKindPtr(kind))
	} else {
		refs = g.OutEdges(n, graph.EdgeKindPtr(kind))
	}

	for _, ref := range refs {
		e := g.Edge(ref)
		if dir == graph.In {
			seen[e.InNum] = true
		} else {
			seen[e.OutNum] = true
		}
	}

	return len(seen)
}

func kindsCompatible(fnKind, pnKind graph.NodeKind) bool {
	switch p := pnKind.(type) {
	case graph.Computation:
		f, ok := fnKind.(graph.Computation)
		return ok && graph.CompatibleComputeOps(f.Op, p.Op)
	case graph.Control:
		f, ok := fnKind.(graph.Control)
		return ok && f.Op == p.Op
	case graph.Call:
		_, ok := fnKind.(graph.Call)
		return ok
	case graph.IndirCall:
		_, ok := fnKind.(graph.IndirCall)
		return ok
	case graph.Value:
		f, ok := fnKind.(graph.Value)
		return ok && graph.Compatible(f.DataType, p.DataType)
	case graph.Block:
		_, ok := fnKind.(graph.Block)
		return ok
	case graph.Phi:
		_, ok := fnKind.(graph.Phi)
		return ok
	case graph.State:
		_, ok := fnKind.(graph.State)
		return ok
	case graph.Copy:
		_, ok := fnKind.(graph.Copy)
		return ok
	case graph.Reuse:
		_, ok := fnKind.(graph.Reuse)
		return ok
	default:
		return false
	}
}

// DoEdgesMatch checks, for a complete node mapping pairs (pattern ref ->
// function ref), that every (edge kind, direction) where order matters at
// each pattern node has its mapped neighbour sequence equal, position by
// position, between function and pattern side.
func DoEdgesMatch(fg, pg graph.Graph, pairs map[graph.NodeRef]graph.NodeRef) bool {
	for pn, fn := range pairs {
		rel := orderRelevanceFor(pg, pn)

		if rel.cfIn && !orderedNeighboursMatch(fg, pg, fn, pn, pairs, graph.ControlFlow, graph.In) {
			return false
		}

		if rel.cfOut && !orderedNeighboursMatch(fg, pg, fn, pn, pairs, graph.ControlFlow, graph.Out) {
			return false
		}

		if rel.dfIn && !orderedNeighboursMatch(fg, pg, fn, pn, pairs, graph.DataFlow, graph.In) {
			return false
		}

		if rel.dfOut && !orderedNeighboursMatch(fg, pg, fn, pn, pairs, graph.DataFlow, graph.Out) {
			return false
		}
	}

	return true
}

// other returns the endpoint of e that is not n: the source for an in-edge,
// the destination for an out-edge.
func other(e graph.Edge, dir graph.Direction) graph.NodeRef {
	if dir == graph.In {
		return e.Src
	}

	return e.Dst
}

func orderedNeighboursMatch(
	fg, pg graph.Graph, fn, pn graph.NodeRef, pairs map[graph.NodeRef]graph.NodeRef, kind graph.EdgeKind, dir graph.Direction,
) bool {
	pSeq := orderedEdges(pg, pn, kind, dir)
	fSeq := orderedEdges(fg, fn, kind, dir)

	if len(pSeq) != len(fSeq) {
		return false
	}

	for i, pe := range pSeq {
		mappedF, ok := pairs[other(pe, dir)]
		if !ok {
			// This pattern neighbour is not yet mapped; position i cannot
			// be checked until it is, so it is skipped rather than failed.
			continue
		}

		if mappedF != other(fSeq[i], dir) {
			return false
		}
	}

	return true
}

func orderedEdges(g graph.Graph, n graph.NodeRef, kind graph.EdgeKind, dir graph.Direction) []graph.Edge {
	var refs []graph.EdgeRef
	if dir == graph.In {
		refs = g.InEdges(n, graph.EdgeKindPtr(kind))
	} else {
		refs = g.OutEdges(n, graph.EdgeKindPtr(kind))
	}

	refs = g.SortByEdgeNumber(refs, dir)

	out := make([]graph.Edge, len(refs))
	for i, ref := range refs {
		out[i] = g.Edge(ref)
	}

	return out
}
