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
	"sort"

	"github.com/opselect/isel/pkg/graph"
)

// HasCyclicDataDependency reports whether a match's function-side nodes,
// viewed on the SSA projection ssa of the function, decompose into more
// than one weakly-connected data-dependency component where one component
// is reachable from another. Such a match would require two independently
// rooted sub-computations to feed one another, which no single placement
// of the pattern's result can satisfy, so it is rejected.
//
// Nodes that merely supply a shared input (value nodes with no
// predecessor in the SSA view) are dropped first: a common input does not
// by itself make one root depend on another. Components are identified
// from the match's own (pruned) induced subgraph, but reachability between
// them is then tested over the whole function's SSA view — a path routed
// through nodes entirely outside the match is just as disqualifying as one
// routed through the match itself, since either way one half of the match
// would have to be scheduled strictly after the other.
func HasCyclicDataDependency(ssa graph.Graph, m Match) bool {
	nodes := matchNodeRefs(ssa, m)
	if len(nodes) == 0 {
		return false
	}

	induced := removeInputValueNodes(ssa.ExtractSubgraph(nodes))

	localComponents := weaklyConnectedComponents(induced)
	if len(localComponents) <= 1 {
		return false
	}

	components := make([][]graph.NodeRef, len(localComponents))

	for i, local := range localComponents {
		for _, ref := range local {
			if orig, ok := refOfID(ssa, induced.PublicID(ref)); ok {
				components[i] = append(components[i], orig)
			}
		}
	}

	stripped := stripEdgeKind(ssa, graph.StateFlow)

	for i := range components {
		for j := range components {
			if i == j {
				continue
			}

			if reachableFromAny(stripped, components[i], components[j]) {
				return true
			}
		}
	}

	return false
}

func matchNodeRefs(g graph.Graph, m Match) []graph.NodeRef {
	refs := make([]graph.NodeRef, 0, len(m.Pairs))

	for _, fid := range m.Pairs {
		if ref, ok := refOfID(g, fid); ok {
			refs = append(refs, ref)
		}
	}

	return refs
}

// removeInputValueNodes drops every Value node in g with no predecessor,
// in a single pass over the induced subgraph (not a fixed-point cascade).
func removeInputValueNodes(g graph.Graph) graph.Graph {
	var drop []graph.NodeRef

	for _, ref := range g.Nodes() {
		if _, ok := g.Kind(ref).(graph.Value); !ok {
			continue
		}

		if len(g.InNeighbours(ref, nil)) == 0 {
			drop = append(drop, ref)
		}
	}

	for _, ref := range drop {
		g = g.DeleteNode(ref)
	}

	return g
}

// stripEdgeKind returns a copy of g with every edge of kind k removed.
func stripEdgeKind(g graph.Graph, k graph.EdgeKind) graph.Graph {
	for _, ref := range g.Edges() {
		if g.Edge(ref).Kind == k {
			g = g.DeleteEdge(ref)
		}
	}

	return g
}

// weaklyConnectedComponents partitions g's nodes by undirected
// reachability (either edge direction, any kind).
func weaklyConnectedComponents(g graph.Graph) [][]graph.NodeRef {
	visited := map[graph.NodeRef]bool{}

	var components [][]graph.NodeRef

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	for _, root := range nodes {
		if visited[root] {
			continue
		}

		var component []graph.NodeRef

		stack := []graph.NodeRef{root}
		visited[root] = true

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, n)

			for _, nb := range g.BothNeighbours(n, nil) {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// reachableFromAny reports whether any node in from can reach any node in
// to via directed edges in g.
func reachableFromAny(g graph.Graph, from, to []graph.NodeRef) bool {
	target := make(map[graph.NodeRef]bool, len(to))
	for _, n := range to {
		target[n] = true
	}

	visited := map[graph.NodeRef]bool{}

	var stack []graph.NodeRef

	for _, n := range from {
		stack = append(stack, n)
		visited[n] = true
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, nb := range g.OutNeighbours(n, nil) {
			if target[nb] {
				return true
			}

			if !visited[nb] {
				visited[nb] = true
				stack = append(stack, nb)
			}
		}
	}

	return false
}
