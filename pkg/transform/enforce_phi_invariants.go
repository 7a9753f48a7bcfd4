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
	"fmt"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/util/collection/set"
)

// EnforcePhiInvariants restores two invariants every Phi node must satisfy
// after the block-duplication pre-pass of pkg/match has run:
//
//   - a value entering a phi more than once is collapsed to a single
//     data-flow edge, and the value's definition edges are replaced by one
//     edge to the closest common dominator of the replaced definition
//     blocks;
//   - of several distinct values entering a phi from the same block, only
//     one is kept.
func EnforcePhiInvariants(g graph.Graph) graph.Graph {
	dom := cfgDominance(g)

	for _, ref := range g.Nodes() {
		if _, ok := g.Kind(ref).(graph.Phi); !ok {
			continue
		}

		g = collapseDuplicateOperands(g, ref, dom)
		g = keepOneOperandPerBlock(g, ref)
	}

	return g
}

// cfgDominance computes g's control-flow dominator sets, keyed by the
// NodeID of each block (so callers can look a block up from either g or the
// derived CFG graph, which assigns its own internal NodeRefs).
func cfgDominance(g graph.Graph) map[graph.NodeID]*set.SortedSet[graph.NodeID] {
	cfg := graph.ExtractCFG(g)

	root, err := graph.RootOfCFG(cfg)
	if err != nil {
		panic(fmt.Sprintf("transform: enforce_phi_invariants: %v", err))
	}

	byRef := graph.DomSets(cfg, root)

	dom := make(map[graph.NodeID]*set.SortedSet[graph.NodeID], len(byRef))
	for ref, doms := range byRef {
		ids := make([]graph.NodeID, 0, doms.Len())
		for _, d := range doms.ToSlice() {
			ids = append(ids, cfg.PublicID(d))
		}

		dom[cfg.PublicID(ref)] = set.NewSortedSetOf(ids)
	}

	return dom
}

// collapseDuplicateOperands collapses every operand of phi that appears on
// more than one DataFlow-in edge to a single edge, replacing the value's
// definition-placement edges by one edge to the closest common dominator of
// the replaced definition blocks.
func collapseDuplicateOperands(g graph.Graph, phi graph.NodeRef, dom map[graph.NodeID]*set.SortedSet[graph.NodeID]) graph.Graph {
	edges := g.InEdges(phi, graph.EdgeKindPtr(graph.DataFlow))

	byOperand := map[graph.NodeRef][]graph.EdgeRef{}
	for _, e := range edges {
		src := g.Edge(e).Src
		byOperand[src] = append(byOperand[src], e)
	}

	for operand, dup := range byOperand {
		if len(dup) < 2 {
			continue
		}

		for _, e := range dup[1:] {
			g = g.DeleteEdge(e)
		}

		blocks := defPlacementBlocks(g, operand)
		if len(blocks) < 2 {
			continue
		}

		ncd := closestCommonDominator(g, dom, blocks)

		for _, b := range blocks {
			if b == ncd {
				continue
			}

			for _, e := range g.EdgesBetween(b, operand) {
				g = g.DeleteEdge(e)
			}

			for _, e := range g.EdgesBetween(operand, b) {
				g = g.DeleteEdge(e)
			}
		}

		if !defPlacementContains(g, operand, ncd) {
			_, g = g.AddEdge(graph.DefPlacement, ncd, operand)
		}
	}

	return g
}

// keepOneOperandPerBlock deletes every DataFlow-in edge of phi beyond the
// first whose operand's definition block coincides with an already-kept
// operand's.
func keepOneOperandPerBlock(g graph.Graph, phi graph.NodeRef) graph.Graph {
	seen := map[graph.NodeRef]bool{}

	for _, e := range g.InEdges(phi, graph.EdgeKindPtr(graph.DataFlow)) {
		operand := g.Edge(e).Src

		blocks := defPlacementBlocks(g, operand)
		if len(blocks) != 1 {
			continue
		}

		block := blocks[0]
		if seen[block] {
			g = g.DeleteEdge(e)
			continue
		}

		seen[block] = true
	}

	return g
}

// defPlacementBlocks returns every Block node linked to value by a
// DefPlacement edge, in either direction.
func defPlacementBlocks(g graph.Graph, value graph.NodeRef) []graph.NodeRef {
	var blocks []graph.NodeRef

	for _, n := range g.OutNeighbours(value, graph.EdgeKindPtr(graph.DefPlacement)) {
		if _, ok := g.Kind(n).(graph.Block); ok {
			blocks = append(blocks, n)
		}
	}

	for _, n := range g.InNeighbours(value, graph.EdgeKindPtr(graph.DefPlacement)) {
		if _, ok := g.Kind(n).(graph.Block); ok {
			blocks = append(blocks, n)
		}
	}

	return blocks
}

// defPlacementContains reports whether value already has a DefPlacement
// edge to or from block.
func defPlacementContains(g graph.Graph, value, block graph.NodeRef) bool {
	for _, b := range defPlacementBlocks(g, value) {
		if b == block {
			return true
		}
	}

	return false
}

// closestCommonDominator returns the member of the intersection of blocks'
// dominator sets that is itself dominated by every other member: the
// unique deepest common dominator, resolved back to g's own NodeRef space.
func closestCommonDominator(g graph.Graph, dom map[graph.NodeID]*set.SortedSet[graph.NodeID], blocks []graph.NodeRef) graph.NodeRef {
	ids := make([]graph.NodeID, len(blocks))
	for i, b := range blocks {
		ids[i] = g.PublicID(b)
	}

	common := dom[ids[0]]
	for _, id := range ids[1:] {
		common = common.Intersect(dom[id])
	}

	candidates := common.ToSlice()
	if len(candidates) == 0 {
		panic("transform: enforce_phi_invariants: no common dominator found for phi operand definition blocks")
	}

	for _, c := range candidates {
		dominatedByAllOthers := true

		for _, d := range candidates {
			if d != c && !dom[c].Contains(d) {
				dominatedByAllOthers = false
				break
			}
		}

		if dominatedByAllOthers {
			ref, ok := g.RefOf(c)
			if !ok {
				panic(fmt.Sprintf("transform: enforce_phi_invariants: dominator %d does not resolve to a known block", c))
			}

			return ref
		}
	}

	panic("transform: enforce_phi_invariants: dominator intersection has no unique deepest member")
}
