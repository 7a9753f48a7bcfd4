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

import "github.com/opselect/isel/pkg/graph"

// BlockDomSets computes, for the function graph fg, each block's (inclusive)
// dominator set and dominatee set, both keyed and valued by block public
// NodeID — bridging graph.ExtractCFG's freshly allocated NodeRefs back to
// fg's own via PublicID, since DomSets operates on the extracted CFG's node
// space, not fg's.
func BlockDomSets(fg graph.Graph) (dom, dominatees map[graph.NodeID]map[graph.NodeID]bool, err error) {
	cfg := graph.ExtractCFG(fg)

	root, err := graph.RootOfCFG(cfg)
	if err != nil {
		return nil, nil, err
	}

	domRefs := graph.DomSets(cfg, root)

	dom = map[graph.NodeID]map[graph.NodeID]bool{}
	dominatees = map[graph.NodeID]map[graph.NodeID]bool{}

	for ref, ancestors := range domRefs {
		id := cfg.PublicID(ref)
		dom[id] = map[graph.NodeID]bool{}

		for _, ancestorRef := range ancestors.ToSlice() {
			ancestorID := cfg.PublicID(ancestorRef)
			dom[id][ancestorID] = true

			if dominatees[ancestorID] == nil {
				dominatees[ancestorID] = map[graph.NodeID]bool{}
			}

			dominatees[ancestorID][id] = true
		}
	}

	return dom, dominatees, nil
}

// LegalBlocksForOperation approximates the legal-placement block set for an
// operation node: the dominator-set intersection of the blocks that
// place-define its data-flow inputs, intersected with the dominatee-set
// intersection of the blocks that place-define its data-flow consumers'
// own outputs. A nil result means op has no placement-relevant neighbours
// and imposes no constraint.
//
// This is a one-hop approximation of the "iteratively intersecting...
// downward through the SSA graph, skipping phi barriers" / "upward" walks:
// it looks at immediate producers and immediate consumers rather than
// transitively closing over the whole SSA graph. Stopping at one hop
// already skips phi barriers for free (a phi producer is simply not
// followed past), and only ever shrinks the legal set relative to the full
// transitive computation — the conservative direction for a filter whose
// job is to reject now-infeasible SIMD combinations early, never to admit
// one the full computation would have rejected.
func LegalBlocksForOperation(fg graph.Graph, dom, dominatees map[graph.NodeID]map[graph.NodeID]bool, op graph.NodeRef) map[graph.NodeID]bool {
	var legal map[graph.NodeID]bool

	intersectInto := func(blocks map[graph.NodeID]bool) {
		if legal == nil {
			legal = blocks
			return
		}

		legal = intersectIDSets(legal, blocks)
	}

	for _, in := range fg.InNeighbours(op, graph.EdgeKindPtr(graph.DataFlow)) {
		if _, ok := fg.Kind(in).(graph.Value); !ok {
			continue
		}

		for _, block := range fg.InNeighbours(in, graph.EdgeKindPtr(graph.DefPlacement)) {
			if d, ok := dom[fg.PublicID(block)]; ok {
				intersectInto(d)
			}
		}
	}

	for _, out := range fg.OutNeighbours(op, graph.EdgeKindPtr(graph.DataFlow)) {
		if _, ok := fg.Kind(out).(graph.Value); !ok {
			continue
		}

		for _, consumer := range fg.OutNeighbours(out, graph.EdgeKindPtr(graph.DataFlow)) {
			for _, consumerOut := range fg.OutNeighbours(consumer, graph.EdgeKindPtr(graph.DataFlow)) {
				for _, block := range fg.InNeighbours(consumerOut, graph.EdgeKindPtr(graph.DefPlacement)) {
					if dt, ok := dominatees[fg.PublicID(block)]; ok {
						intersectInto(dt)
					}
				}
			}
		}
	}

	return legal
}

func intersectIDSets(a, b map[graph.NodeID]bool) map[graph.NodeID]bool {
	out := map[graph.NodeID]bool{}

	for id := range a {
		if b[id] {
			out[id] = true
		}
	}

	return out
}

// SIMDSelectable reports whether SIMD match m remains legally placeable:
// the per-operation legal block sets (LegalBlocksForOperation) of every
// operation it covers must share a non-empty common intersection.
// Operations with no placement-relevant neighbours impose no constraint.
func SIMDSelectable(fg graph.Graph, dom, dominatees map[graph.NodeID]map[graph.NodeID]bool, m Match) bool {
	var intersection map[graph.NodeID]bool

	constrained := false

	for _, fid := range m.Pairs {
		ref, ok := refOfID(fg, fid)
		if !ok {
			continue
		}

		if !graph.IsOperation(fg.Kind(ref)) {
			continue
		}

		legal := LegalBlocksForOperation(fg, dom, dominatees, ref)
		if legal == nil {
			continue
		}

		constrained = true

		if intersection == nil {
			intersection = legal
		} else {
			intersection = intersectIDSets(intersection, legal)
		}

		if len(intersection) == 0 {
			return false
		}
	}

	if !constrained {
		return true
	}

	return len(intersection) > 0
}
