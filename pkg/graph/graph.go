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
	"maps"
)

// Graph is a typed, labelled multi-digraph.  The zero value is an empty
// graph.  Every mutating method is pure: it returns a new Graph and leaves
// the receiver untouched, per spec.md §5 ("every operation produces a new
// graph or model value").
type Graph struct {
	nodes      map[NodeRef]NodeKind
	publicIDs  map[NodeRef]NodeID
	edges      map[EdgeRef]Edge
	nextRef    NodeRef
	nextEdge   EdgeRef
}

// New returns an empty graph.
func New() Graph {
	return Graph{
		nodes:     map[NodeRef]NodeKind{},
		publicIDs: map[NodeRef]NodeID{},
		edges:     map[EdgeRef]Edge{},
	}
}

func (g Graph) clone() Graph {
	return Graph{
		nodes:     maps.Clone(g.nodes),
		publicIDs: maps.Clone(g.publicIDs),
		edges:     maps.Clone(g.edges),
		nextRef:   g.nextRef,
		nextEdge:  g.nextEdge,
	}
}

// PublicID returns the public NodeID of ref.
func (g Graph) PublicID(ref NodeRef) NodeID {
	id, ok := g.publicIDs[ref]
	if !ok {
		panic(fmt.Sprintf("graph: unknown node ref %d", ref))
	}

	return id
}

// Kind returns the NodeKind of ref.
func (g Graph) Kind(ref NodeRef) NodeKind {
	kind, ok := g.nodes[ref]
	if !ok {
		panic(fmt.Sprintf("graph: unknown node ref %d", ref))
	}

	return kind
}

// ReplaceKind returns a copy of g with ref's kind changed to kind, its
// identity and incident edges untouched. Used by pkg/transform to turn a
// computation node into a Copy, or a pointer-typed value node into an
// integer-typed one, in place.
func (g Graph) ReplaceKind(ref NodeRef, kind NodeKind) Graph {
	if !g.IsInGraph(ref) {
		panic(fmt.Sprintf("graph: ReplaceKind of unknown ref %d", ref))
	}

	ng := g.clone()
	ng.nodes[ref] = kind

	return ng
}

// RefOf returns the NodeRef currently carrying public identifier id, if
// any. Used by rewrites that derive a NodeID from a projection of g (such
// as ExtractCFG, whose result assigns its own NodeRefs) and need to resolve
// it back against g itself.
func (g Graph) RefOf(id NodeID) (NodeRef, bool) {
	for ref, pid := range g.publicIDs {
		if pid == id {
			return ref, true
		}
	}

	return 0, false
}

// IsInGraph reports whether ref is a node of g.
func (g Graph) IsInGraph(ref NodeRef) bool {
	_, ok := g.nodes[ref]
	return ok
}

// maxPublicID returns the largest public NodeID currently in use; its second
// result is false if the graph has no nodes.
func (g Graph) maxPublicID() (NodeID, bool) {
	var (
		max   NodeID
		found bool
	)

	for _, id := range g.publicIDs {
		if !found || id > max {
			max = id
			found = true
		}
	}

	return max, found
}

// AddNode adds a fresh node of the given kind, assigning it a fresh public
// NodeID equal to one more than the largest existing ID (or 0 if the graph
// is empty).  Returns the new node's internal ref and the resulting graph.
func (g Graph) AddNode(kind NodeKind) (NodeRef, Graph) {
	id := NodeID(0)
	if max, ok := g.maxPublicID(); ok {
		id = max + 1
	}

	return g.addNodeWithID(kind, id)
}

// addNodeWithID adds a node with an explicit public ID, used by the
// duplication pre-pass (pkg/match) to create a second instance sharing an
// existing node's public identity.
func (g Graph) addNodeWithID(kind NodeKind, id NodeID) (NodeRef, Graph) {
	ng := g.clone()
	ref := ng.nextRef
	ng.nextRef++
	ng.nodes[ref] = kind
	ng.publicIDs[ref] = id

	return ref, ng
}

// DuplicateNode adds a new node instance sharing ref's public ID and kind.
// Used by the pattern matcher's duplication pre-pass (spec.md §4.4).
func (g Graph) DuplicateNode(ref NodeRef) (NodeRef, Graph) {
	return g.addNodeWithID(g.Kind(ref), g.PublicID(ref))
}

func (g *Graph) nextOutNum(src NodeRef, kind EdgeKind) uint {
	var n uint
	for _, e := range g.edges {
		if e.Src == src && e.Kind == kind {
			n++
		}
	}

	return n
}

func (g *Graph) nextInNum(dst NodeRef, kind EdgeKind) uint {
	var n uint
	for _, e := range g.edges {
		if e.Dst == dst && e.Kind == kind {
			n++
		}
	}

	return n
}

// AddEdge adds a new edge of the given kind between src and dst, assigning
// it the next unused out-number at src and in-number at dst, scoped to
// kind.
func (g Graph) AddEdge(kind EdgeKind, src, dst NodeRef) (EdgeRef, Graph) {
	if !g.IsInGraph(src) || !g.IsInGraph(dst) {
		panic("graph: AddEdge with node not in graph")
	}

	ng := g.clone()
	outNum := ng.nextOutNum(src, kind)
	inNum := ng.nextInNum(dst, kind)
	ref := ng.nextEdge
	ng.nextEdge++
	ng.edges[ref] = Edge{Kind: kind, Src: src, Dst: dst, OutNum: outNum, InNum: inNum}

	return ref, ng
}

// renumberAfterRemoval closes the gap left at (node, kind, dir) by an edge
// numbered removedNum: every remaining edge at that endpoint with a higher
// number is shifted down by one.  This is what keeps DeleteEdge/DeleteNode
// satisfying the "edge numbers are contiguous from 0" invariant; compare
// UpdateEdgeSource/UpdateEdgeTarget, which deliberately do NOT do this (see
// spec.md §9's design note on edge renumbering).
func (g *Graph) renumberAfterRemoval(node NodeRef, kind EdgeKind, dir Direction, removedNum uint) {
	for ref, e := range g.edges {
		if e.Kind != kind {
			continue
		}

		switch dir {
		case Out:
			if e.Src == node && e.OutNum > removedNum {
				e.OutNum--
				g.edges[ref] = e
			}
		case In:
			if e.Dst == node && e.InNum > removedNum {
				e.InNum--
				g.edges[ref] = e
			}
		}
	}
}

// DeleteEdge removes ref from the graph, renumbering the remaining edges at
// both of its endpoints to keep their edge numbers contiguous.
func (g Graph) DeleteEdge(ref EdgeRef) Graph {
	ng := g.clone()
	e, ok := ng.edges[ref]

	if !ok {
		panic(fmt.Sprintf("graph: unknown edge ref %d", ref))
	}

	delete(ng.edges, ref)
	ng.renumberAfterRemoval(e.Src, e.Kind, Out, e.OutNum)
	ng.renumberAfterRemoval(e.Dst, e.Kind, In, e.InNum)

	return ng
}

// DeleteNode removes n and every edge incident on it (renumbering the
// neighbours it leaves behind).
func (g Graph) DeleteNode(n NodeRef) Graph {
	ng := g.clone()

	if !ng.IsInGraph(n) {
		panic(fmt.Sprintf("graph: DeleteNode of unknown ref %d", n))
	}

	for ref, e := range ng.edges {
		if e.Src == n || e.Dst == n {
			delete(ng.edges, ref)
			if e.Src != n {
				ng.renumberAfterRemoval(e.Src, e.Kind, Out, e.OutNum)
			}

			if e.Dst != n {
				ng.renumberAfterRemoval(e.Dst, e.Kind, In, e.InNum)
			}
		}
	}

	delete(ng.nodes, n)
	delete(ng.publicIDs, n)

	return ng
}

// distinctPredecessors returns, across every edge kind, the set of distinct
// nodes having an edge into n.
func (g Graph) distinctPredecessors(n NodeRef) []NodeRef {
	seen := map[NodeRef]bool{}

	var out []NodeRef

	for _, e := range g.edges {
		if e.Dst == n && !seen[e.Src] {
			seen[e.Src] = true
			out = append(out, e.Src)
		}
	}

	return out
}

// DeleteNodeKeepEdges removes n, redirecting all of its incident edges to
// n's unique predecessor.  Panics if n does not have exactly one distinct
// predecessor (spec.md §4.1).
func (g Graph) DeleteNodeKeepEdges(n NodeRef) Graph {
	preds := g.distinctPredecessors(n)
	if len(preds) != 1 {
		panic(fmt.Sprintf("graph: DeleteNodeKeepEdges requires a unique predecessor, node %d has %d", n, len(preds)))
	}

	return g.MergeNodes(preds[0], n)
}

// UpdateEdgeSource reassigns ref's source endpoint to newSrc, giving it the
// next unused out-number there.  The vacated number at the old source is
// NOT backfilled (see renumberAfterRemoval's doc comment); call
// RepackEdgeNumbers after a batch of updates if contiguity must be
// restored.
func (g Graph) UpdateEdgeSource(ref EdgeRef, newSrc NodeRef) Graph {
	ng := g.clone()
	e := ng.edges[ref]
	e.Src = newSrc
	e.OutNum = ng.nextOutNum(newSrc, e.Kind)
	ng.edges[ref] = e

	return ng
}

// UpdateEdgeTarget reassigns ref's destination endpoint to newDst,
// analogous to UpdateEdgeSource.
func (g Graph) UpdateEdgeTarget(ref EdgeRef, newDst NodeRef) Graph {
	ng := g.clone()
	e := ng.edges[ref]
	e.Dst = newDst
	e.InNum = ng.nextInNum(newDst, e.Kind)
	ng.edges[ref] = e

	return ng
}

// RedirectInEdges reassigns every in-edge of from to to, individually, via
// UpdateEdgeTarget.
func (g Graph) RedirectInEdges(from, to NodeRef) Graph {
	ng := g
	for ref, e := range g.edges {
		if e.Dst == from {
			ng = ng.UpdateEdgeTarget(ref, to)
		}
	}

	return ng
}

// RedirectOutEdges reassigns every out-edge of from to originate at to,
// individually, via UpdateEdgeSource.
func (g Graph) RedirectOutEdges(from, to NodeRef) Graph {
	ng := g
	for ref, e := range g.edges {
		if e.Src == from {
			ng = ng.UpdateEdgeSource(ref, to)
		}
	}

	return ng
}

// MergeNodes redirects every edge incident on discard to keep, dropping any
// edge that would become a self-loop between the pair, then deletes
// discard.
func (g Graph) MergeNodes(keep, discard NodeRef) Graph {
	ng := g.clone()

	for ref, e := range ng.edges {
		formsSelfLoop := (e.Src == discard && e.Dst == keep) || (e.Src == keep && e.Dst == discard)
		if formsSelfLoop {
			delete(ng.edges, ref)
			ng.renumberAfterRemoval(e.Src, e.Kind, Out, e.OutNum)
			ng.renumberAfterRemoval(e.Dst, e.Kind, In, e.InNum)
		}
	}

	ng = ng.RedirectInEdges(discard, keep)
	ng = ng.RedirectOutEdges(discard, keep)

	delete(ng.nodes, discard)
	delete(ng.publicIDs, discard)

	return ng
}

// RepackEdgeNumbers recomputes a contiguous 0-based numbering for every
// (node, kind, direction) group, preserving each group's relative order.
// This restores the universal invariant of spec.md §8 after a batch of
// UpdateEdgeSource/UpdateEdgeTarget calls; per spec.md §9 it must never be
// invoked automatically inside a single-edge operation, since some
// consumers depend on numbers staying stable during such a transaction.
func (g Graph) RepackEdgeNumbers() Graph {
	ng := g.clone()

	type key struct {
		node NodeRef
		kind EdgeKind
	}

	outGroups := map[key][]EdgeRef{}
	inGroups := map[key][]EdgeRef{}

	for ref, e := range ng.edges {
		outGroups[key{e.Src, e.Kind}] = append(outGroups[key{e.Src, e.Kind}], ref)
		inGroups[key{e.Dst, e.Kind}] = append(inGroups[key{e.Dst, e.Kind}], ref)
	}

	for _, refs := range outGroups {
		sortEdgeRefsByField(refs, ng.edges, func(e Edge) uint { return e.OutNum })

		for i, ref := range refs {
			e := ng.edges[ref]
			e.OutNum = uint(i)
			ng.edges[ref] = e
		}
	}

	for _, refs := range inGroups {
		sortEdgeRefsByField(refs, ng.edges, func(e Edge) uint { return e.InNum })

		for i, ref := range refs {
			e := ng.edges[ref]
			e.InNum = uint(i)
			ng.edges[ref] = e
		}
	}

	return ng
}

func sortEdgeRefsByField(refs []EdgeRef, edges map[EdgeRef]Edge, field func(Edge) uint) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && field(edges[refs[j-1]]) > field(edges[refs[j]]); j-- {
			refs[j-1], refs[j] = refs[j], refs[j-1]
		}
	}
}
