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

import (
	"fmt"

	"github.com/opselect/isel/pkg/util/collection/set"
)

// ExtractCFG projects g down to its control-flow skeleton: only Block and
// Control nodes survive, and every Control node is then collapsed into its
// unique predecessor block via DeleteNodeKeepEdges, leaving a pure
// block-to-block control-flow graph (spec.md §4.1).
func ExtractCFG(g Graph) Graph {
	var keep []NodeRef

	for _, ref := range g.Nodes() {
		switch g.Kind(ref).(type) {
		case Block, Control:
			keep = append(keep, ref)
		}
	}

	cfg := g.ExtractSubgraph(keep)

	for {
		controls := cfg.NodesOfKind(func(k NodeKind) bool {
			_, ok := k.(Control)
			return ok
		})
		if len(controls) == 0 {
			return cfg
		}

		cfg = cfg.DeleteNodeKeepEdges(controls[0])
	}
}

// ExtractSSA projects g down to its operation and value nodes: Block and
// State nodes are dropped.
func ExtractSSA(g Graph) Graph {
	var keep []NodeRef

	for _, ref := range g.Nodes() {
		kind := g.Kind(ref)
		if IsOperation(kind) {
			keep = append(keep, ref)
			continue
		}

		if _, ok := kind.(Value); ok {
			keep = append(keep, ref)
		}
	}

	return g.ExtractSubgraph(keep)
}

// RootOfCFG returns the unique block with no predecessors in cfg (which
// should be the result of ExtractCFG).  An error is returned if there is
// not exactly one such block.
func RootOfCFG(cfg Graph) (NodeRef, error) {
	var roots []NodeRef

	for _, ref := range cfg.Nodes() {
		if len(cfg.InNeighbours(ref, nil)) == 0 {
			roots = append(roots, ref)
		}
	}

	if len(roots) != 1 {
		return 0, fmt.Errorf("graph: RootOfCFG expected exactly one root block, found %d", len(roots))
	}

	return roots[0], nil
}

// DomSets computes, for every block reachable from root in cfg, the set of
// blocks (including itself) that dominate it.  Uses the classic iterative
// data-flow fixed point rather than Lengauer-Tarjan, since function-sized
// CFGs make the asymptotic difference immaterial and the iterative form is
// far easier to verify against spec.md §8 scenario 4.
func DomSets(cfg Graph, root NodeRef) map[NodeRef]*set.SortedSet[NodeRef] {
	all := cfg.Nodes()
	dom := map[NodeRef]*set.SortedSet[NodeRef]{}

	universe := set.NewSortedSetOf(all)
	for _, n := range all {
		if n == root {
			dom[n] = set.NewSortedSetOf([]NodeRef{root})
		} else {
			dom[n] = set.NewSortedSetOf(universe.ToSlice())
		}
	}

	changed := true
	for changed {
		changed = false

		for _, n := range all {
			if n == root {
				continue
			}

			preds := cfg.InNeighbours(n, nil)

			var next *set.SortedSet[NodeRef]

			if len(preds) == 0 {
				next = set.NewSortedSet[NodeRef]()
			} else {
				next = set.NewSortedSetOf(dom[preds[0]].ToSlice())
				for _, p := range preds[1:] {
					next = next.Intersect(dom[p])
				}
			}

			next.Insert(n)

			if !next.Equals(dom[n]) {
				dom[n] = next
				changed = true
			}
		}
	}

	return dom
}

// IdomSets derives each node's immediate dominator from DomSets' result:
// the unique member of Dom[n]\{n} that is dominated by every other member
// of that set.  The root has no immediate dominator and is omitted.
func IdomSets(dom map[NodeRef]*set.SortedSet[NodeRef]) map[NodeRef]NodeRef {
	idom := map[NodeRef]NodeRef{}

	for n, domN := range dom {
		strict := domN.ToSlice()

		var candidates []NodeRef

		for _, c := range strict {
			if c != n {
				candidates = append(candidates, c)
			}
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
				idom[n] = c
				break
			}
		}
	}

	return idom
}
