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

// IsSIMDPattern reports whether pg's weakly connected components number
// more than one, i.e. pg is several copies of one scalar pattern rather
// than a single connected pattern.
func IsSIMDPattern(pg graph.Graph) bool {
	return len(patternComponents(pg)) > 1
}

// patternComponents splits pg into its weakly connected components, each
// as its own induced Graph, ordered by the smallest node ref in each
// component so that results are reproducible across runs.
func patternComponents(pg graph.Graph) []graph.Graph {
	groups := weaklyConnectedComponents(pg)

	sort.Slice(groups, func(i, j int) bool { return minRef(groups[i]) < minRef(groups[j]) })

	out := make([]graph.Graph, len(groups))
	for i, g := range groups {
		out[i] = pg.ExtractSubgraph(g)
	}

	return out
}

func minRef(refs []graph.NodeRef) graph.NodeRef {
	m := refs[0]

	for _, r := range refs[1:] {
		if r < m {
			m = r
		}
	}

	return m
}

// SIMDPatternMatches finds every match of a SIMD pattern graph pg (several
// isomorphic weakly connected components) against the function graph fg.
// It matches the first component as an ordinary scalar pattern, then
// builds every k-combination (k = number of components) of the resulting
// scalar matches whose members are pairwise free of cyclic data
// dependency, filtering each candidate incrementally against the members
// already chosen rather than generating every combination up front.
//
// If pg is not actually SIMD (one component, or its later components
// aren't isomorphic to the first), this falls back to an ordinary match.
func SIMDPatternMatches(fg, pg graph.Graph) []Match {
	components := patternComponents(pg)
	if len(components) < 2 {
		return FindSubgraphMatches(fg, pg)
	}

	scalar := components[0]

	isos := make([]map[graph.NodeID]graph.NodeID, len(components))
	isos[0] = identityIso(scalar)

	for i := 1; i < len(components); i++ {
		found := FindSubgraphMatches(components[i], scalar)
		if len(found) == 0 {
			return nil
		}

		isos[i] = found[0].Pairs
	}

	scalarMatches := FindSubgraphMatches(fg, scalar)

	ssa := graph.ExtractSSA(fg)

	cyclic := func(i, j int) bool {
		return HasCyclicDataDependency(ssa, mergeFunctionNodes(scalarMatches[i], scalarMatches[j]))
	}

	combos := kCombinationsFiltering(len(scalarMatches), len(components), cyclic)

	out := make([]Match, 0, len(combos))

	for _, combo := range combos {
		pairs := map[graph.NodeID]graph.NodeID{}

		for compIdx, matchIdx := range combo {
			sm := scalarMatches[matchIdx]
			for scalarNodeID, fNodeID := range sm.Pairs {
				pairs[isos[compIdx][scalarNodeID]] = fNodeID
			}
		}

		out = append(out, Match{Pairs: pairs})
	}

	return out
}

func identityIso(g graph.Graph) map[graph.NodeID]graph.NodeID {
	out := map[graph.NodeID]graph.NodeID{}
	for _, ref := range g.Nodes() {
		id := g.PublicID(ref)
		out[id] = id
	}

	return out
}

// mergeFunctionNodes builds a synthetic Match whose pattern-side keys are
// arbitrary but distinct, carrying the union of a's and b's function-node
// IDs, for feeding into HasCyclicDataDependency (which only inspects the
// function-side values of a Match.Pairs).
func mergeFunctionNodes(a, b Match) Match {
	pairs := make(map[graph.NodeID]graph.NodeID, len(a.Pairs)+len(b.Pairs))

	var synthetic graph.NodeID

	for _, fid := range a.Pairs {
		pairs[synthetic] = fid
		synthetic++
	}

	for _, fid := range b.Pairs {
		pairs[synthetic] = fid
		synthetic++
	}

	return Match{Pairs: pairs}
}

// kCombinationsFiltering enumerates every size-k subset of {0,...,n-1} such
// that no two chosen indices are related by cyclic, extending partial
// combinations and discarding a candidate the moment it conflicts with an
// already-chosen member instead of generating all C(n,k) subsets first.
func kCombinationsFiltering(n, k int, cyclic func(i, j int) bool) [][]int {
	var results [][]int

	if k <= 0 || k > n {
		return results
	}

	var extend func(start int, cur []int)

	extend = func(start int, cur []int) {
		if len(cur) == k {
			results = append(results, append([]int(nil), cur...))
			return
		}

		for i := start; i < n; i++ {
			conflict := false

			for _, c := range cur {
				if cyclic(c, i) {
					conflict = true
					break
				}
			}

			if conflict {
				continue
			}

			extend(i+1, append(cur, i))
		}
	}

	extend(0, nil)

	return results
}
