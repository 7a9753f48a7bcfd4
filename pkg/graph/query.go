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

import "sort"

// Nodes returns every node ref in the graph, in no particular order.
func (g Graph) Nodes() []NodeRef {
	out := make([]NodeRef, 0, len(g.nodes))
	for ref := range g.nodes {
		out = append(out, ref)
	}

	return out
}

// Edges returns every edge ref in the graph, in no particular order.
func (g Graph) Edges() []EdgeRef {
	out := make([]EdgeRef, 0, len(g.edges))
	for ref := range g.edges {
		out = append(out, ref)
	}

	return out
}

// Edge looks up an edge by ref.
func (g Graph) Edge(ref EdgeRef) Edge {
	return g.edges[ref]
}

// kindFilter is nil to mean "every kind".
type kindFilter = *EdgeKind

func matchesKind(e Edge, filter kindFilter) bool {
	return filter == nil || e.Kind == *filter
}

// OutNeighbours returns the distinct nodes reachable from n via an
// out-edge, optionally restricted to one edge kind.
func (g Graph) OutNeighbours(n NodeRef, filter kindFilter) []NodeRef {
	seen := map[NodeRef]bool{}

	var out []NodeRef

	for _, e := range g.edges {
		if e.Src == n && matchesKind(e, filter) && !seen[e.Dst] {
			seen[e.Dst] = true
			out = append(out, e.Dst)
		}
	}

	return out
}

// InNeighbours returns the distinct nodes with an edge into n, optionally
// restricted to one edge kind.
func (g Graph) InNeighbours(n NodeRef, filter kindFilter) []NodeRef {
	seen := map[NodeRef]bool{}

	var out []NodeRef

	for _, e := range g.edges {
		if e.Dst == n && matchesKind(e, filter) && !seen[e.Src] {
			seen[e.Src] = true
			out = append(out, e.Src)
		}
	}

	return out
}

// BothNeighbours returns the union of InNeighbours and OutNeighbours.
func (g Graph) BothNeighbours(n NodeRef, filter kindFilter) []NodeRef {
	seen := map[NodeRef]bool{}

	var out []NodeRef

	add := func(refs []NodeRef) {
		for _, r := range refs {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}

	add(g.InNeighbours(n, filter))
	add(g.OutNeighbours(n, filter))

	return out
}

// EdgesBetween returns every edge from a to b, of any kind.
func (g Graph) EdgesBetween(a, b NodeRef) []EdgeRef {
	var out []EdgeRef

	for ref, e := range g.edges {
		if e.Src == a && e.Dst == b {
			out = append(out, ref)
		}
	}

	return out
}

// OutEdges returns every out-edge of n, optionally restricted to one kind.
func (g Graph) OutEdges(n NodeRef, filter kindFilter) []EdgeRef {
	var out []EdgeRef

	for ref, e := range g.edges {
		if e.Src == n && matchesKind(e, filter) {
			out = append(out, ref)
		}
	}

	return out
}

// InEdges returns every in-edge of n, optionally restricted to one kind.
func (g Graph) InEdges(n NodeRef, filter kindFilter) []EdgeRef {
	var out []EdgeRef

	for ref, e := range g.edges {
		if e.Dst == n && matchesKind(e, filter) {
			out = append(out, ref)
		}
	}

	return out
}

// SortByEdgeNumber sorts refs ascending by the edge number relevant to dir
// (OutNum for Out, InNum for In).
func (g Graph) SortByEdgeNumber(refs []EdgeRef, dir Direction) []EdgeRef {
	out := append([]EdgeRef(nil), refs...)

	sort.Slice(out, func(i, j int) bool {
		ei, ej := g.edges[out[i]], g.edges[out[j]]
		if dir == Out {
			return ei.OutNum < ej.OutNum
		}

		return ei.InNum < ej.InNum
	})

	return out
}

// ExtractSubgraph returns the induced subgraph on the given set of node
// refs: every one of those nodes, plus every edge of the original graph
// with both endpoints in the set.  Edge numbers are preserved as-is (the
// result need not itself satisfy the contiguity invariant; callers that
// need that should RepackEdgeNumbers it).
func (g Graph) ExtractSubgraph(nodes []NodeRef) Graph {
	keep := map[NodeRef]bool{}
	for _, n := range nodes {
		keep[n] = true
	}

	ng := New()
	remap := map[NodeRef]NodeRef{}

	for _, n := range nodes {
		ref, next := ng.addNodeWithID(g.Kind(n), g.PublicID(n))
		ng = next
		remap[n] = ref
	}

	for _, e := range g.edges {
		if keep[e.Src] && keep[e.Dst] {
			next := ng.clone()
			ref := next.nextEdge
			next.nextEdge++
			next.edges[ref] = Edge{Kind: e.Kind, Src: remap[e.Src], Dst: remap[e.Dst], OutNum: e.OutNum, InNum: e.InNum}
			ng = next
		}
	}

	return ng
}

// NodesOfKind filters Nodes to those whose kind matches pred.
func (g Graph) NodesOfKind(pred func(NodeKind) bool) []NodeRef {
	var out []NodeRef

	for ref, kind := range g.nodes {
		if pred(kind) {
			out = append(out, ref)
		}
	}

	return out
}

// EdgeKindPtr is a small convenience for constructing a kindFilter literal
// at call sites, e.g. graph.ControlFlow's address cannot be taken directly.
func EdgeKindPtr(k EdgeKind) *EdgeKind {
	return &k
}
