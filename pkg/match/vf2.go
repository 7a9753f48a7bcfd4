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
	"github.com/bits-and-blooms/bitset"
	"github.com/opselect/isel/pkg/graph"
)

// Match is an ordered collection of {function-node, pattern-node} pairs: a
// subgraph-isomorphic embedding of one pattern into one function graph.
type Match struct {
	// Pairs maps pattern node public ID to function node public ID.
	Pairs map[graph.NodeID]graph.NodeID
}

type vf2 struct {
	fg, pg graph.Graph

	fgNodes []graph.NodeRef
	pgNodes []graph.NodeRef
	fgIndex map[graph.NodeRef]int
	pgIndex map[graph.NodeRef]int

	pairs    map[graph.NodeRef]graph.NodeRef // pn -> fn
	revPairs map[graph.NodeRef]graph.NodeRef // fn -> pn
}

func newVF2(fg, pg graph.Graph) *vf2 {
	v := &vf2{
		fg: fg, pg: pg,
		fgNodes:  fg.Nodes(),
		pgNodes:  pg.Nodes(),
		fgIndex:  map[graph.NodeRef]int{},
		pgIndex:  map[graph.NodeRef]int{},
		pairs:    map[graph.NodeRef]graph.NodeRef{},
		revPairs: map[graph.NodeRef]graph.NodeRef{},
	}

	for i, r := range v.fgNodes {
		v.fgIndex[r] = i
	}

	for i, r := range v.pgNodes {
		v.pgIndex[r] = i
	}

	return v
}

// frontier computes, over g restricted to index/nodes, the bitset of nodes
// adjacent to some mapped node but not themselves mapped, separately for
// in- and out-neighbours, plus the mapped-set bitset itself.
func frontier(g graph.Graph, nodes []graph.NodeRef, index map[graph.NodeRef]int, mapped map[graph.NodeRef]bool) (mappedBS, tIn, tOut *bitset.BitSet) {
	n := uint(len(nodes))
	mappedBS = bitset.New(n)
	tIn = bitset.New(n)
	tOut = bitset.New(n)

	for ref := range mapped {
		mappedBS.Set(uint(index[ref]))
	}

	for ref := range mapped {
		for _, nb := range g.InNeighbours(ref, nil) {
			if !mapped[nb] {
				tIn.Set(uint(index[nb]))
			}
		}

		for _, nb := range g.OutNeighbours(ref, nil) {
			if !mapped[nb] {
				tOut.Set(uint(index[nb]))
			}
		}
	}

	return mappedBS, tIn, tOut
}

// nextPatternNode picks the next pattern node to extend the mapping with,
// preferring T_out, then T_in, then an unmapped non-frontier node restricted
// to operation/block kinds (to prune explosion from isolated entity nodes).
func (v *vf2) nextPatternNode() (graph.NodeRef, bool) {
	_, pTIn, pTOut := frontier(v.pg, v.pgNodes, v.pgIndex, mappedSet(v.pairs))

	if r, ok := firstSet(pTOut, v.pgNodes); ok {
		return r, true
	}

	if r, ok := firstSet(pTIn, v.pgNodes); ok {
		return r, true
	}

	for _, r := range v.pgNodes {
		if _, mapped := v.pairs[r]; mapped {
			continue
		}

		kind := v.pg.Kind(r)
		if graph.IsOperation(kind) || graph.IsBlock(kind) {
			return r, true
		}
	}

	return 0, false
}

func mappedSet(pairs map[graph.NodeRef]graph.NodeRef) map[graph.NodeRef]bool {
	out := make(map[graph.NodeRef]bool, len(pairs))
	for pn := range pairs {
		out[pn] = true
	}

	return out
}

func firstSet(bs *bitset.BitSet, nodes []graph.NodeRef) (graph.NodeRef, bool) {
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		return nodes[i], true
	}

	return 0, false
}

// candidateFunctionNodes returns the function nodes worth trying against pn:
// unmapped nodes in the same frontier set pn came from (T_out/T_in), or
// every unmapped node when pn itself came from outside both frontiers.
func (v *vf2) candidateFunctionNodes(pn graph.NodeRef) []graph.NodeRef {
	mapped := mappedSet(v.pairs)
	_, pTIn, pTOut := frontier(v.pg, v.pgNodes, v.pgIndex, mapped)

	fMapped := mappedSet(v.revPairs)
	_, fTIn, fTOut := frontier(v.fg, v.fgNodes, v.fgIndex, fMapped)

	pIdx := v.pgIndex[pn]

	var pool *bitset.BitSet

	switch {
	case pTOut.Test(uint(pIdx)):
		pool = fTOut
	case pTIn.Test(uint(pIdx)):
		pool = fTIn
	default:
		pool = nil
	}

	var out []graph.NodeRef

	if pool != nil {
		for i, ok := pool.NextSet(0); ok; i, ok = pool.NextSet(i + 1) {
			out = append(out, v.fgNodes[i])
		}

		return out
	}

	for _, r := range v.fgNodes {
		if !fMapped[r] {
			out = append(out, r)
		}
	}

	return out
}

// structurallyConsistent applies the classical VF2 pred/succ/in tests,
// pattern-side only (the function graph is allowed extra edges the pattern
// doesn't require).
func (v *vf2) structurallyConsistent(fn, pn graph.NodeRef) bool {
	for _, k := range allEdgeKinds {
		for _, pnbr := range v.pg.InNeighbours(pn, graph.EdgeKindPtr(k)) {
			if fnbr, ok := v.pairs[pnbr]; ok {
				if !hasNeighbour(v.fg.InNeighbours(fn, graph.EdgeKindPtr(k)), fnbr) {
					return false
				}
			}
		}

		for _, pnbr := range v.pg.OutNeighbours(pn, graph.EdgeKindPtr(k)) {
			if fnbr, ok := v.pairs[pnbr]; ok {
				if !hasNeighbour(v.fg.OutNeighbours(fn, graph.EdgeKindPtr(k)), fnbr) {
					return false
				}
			}
		}
	}

	return true
}

func hasNeighbour(neighbours []graph.NodeRef, target graph.NodeRef) bool {
	for _, n := range neighbours {
		if n == target {
			return true
		}
	}

	return false
}

func (v *vf2) feasible(fn, pn graph.NodeRef) bool {
	if _, ok := v.revPairs[fn]; ok {
		return false
	}

	if !DoNodesMatch(v.fg, v.pg, fn, pn) {
		return false
	}

	return v.structurallyConsistent(fn, pn)
}

func (v *vf2) addPair(fn, pn graph.NodeRef) {
	v.pairs[pn] = fn
	v.revPairs[fn] = pn
}

func (v *vf2) removePair(fn, pn graph.NodeRef) {
	delete(v.pairs, pn)
	delete(v.revPairs, fn)
}

func (v *vf2) snapshot() Match {
	out := make(map[graph.NodeID]graph.NodeID, len(v.pairs))
	for pn, fn := range v.pairs {
		out[v.pg.PublicID(pn)] = v.fg.PublicID(fn)
	}

	return Match{Pairs: out}
}

// FindSubgraphMatches enumerates every subgraph-isomorphic embedding of pg
// into fg.
func FindSubgraphMatches(fg, pg graph.Graph) []Match {
	v := newVF2(fg, pg)

	var results []Match

	if len(v.pgNodes) == 0 {
		return results
	}

	v.search(&results)

	return results
}

func (v *vf2) search(results *[]Match) {
	if len(v.pairs) == len(v.pgNodes) {
		if DoEdgesMatch(v.fg, v.pg, v.pairs) {
			*results = append(*results, v.snapshot())
		}

		return
	}

	pn, ok := v.nextPatternNode()
	if !ok {
		return
	}

	for _, fn := range v.candidateFunctionNodes(pn) {
		if v.feasible(fn, pn) {
			v.addPair(fn, pn)
			v.search(results)
			v.removePair(fn, pn)
		}
	}
}
