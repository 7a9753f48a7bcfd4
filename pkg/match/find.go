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
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/target"
)

// PatternSource is one (instruction, pattern) pair to match against a
// function graph.
type PatternSource struct {
	InstrID   target.InstrID
	PatternID target.PatternID
	Pattern   graph.Graph
}

// PatternMatch is one retained embedding of a pattern graph into a
// function, tagged with the instruction/pattern it came from and a dense
// match ID assigned after all matching completes.
type PatternMatch struct {
	InstrID   target.InstrID
	PatternID target.PatternID
	MatchID   uint64
	Match     Match
}

// FindMatches runs the full matching pipeline for every pattern source
// against fg: the block-duplication pre-pass, VF2 (or SIMD composition for
// multi-component patterns), the cyclic-data-dependency post-filter, the
// SIMD selectability filter, and duplicate-match removal. Up to workers
// pattern sources are processed concurrently; the combined result is
// sorted deterministically (by instruction ID, then pattern ID, then a
// canonical serialization of the match itself) before dense match IDs
// starting at 0 are assigned, so that FindMatches is reproducible
// regardless of goroutine scheduling order.
func FindMatches(fg graph.Graph, patterns []PatternSource, workers int) []PatternMatch {
	prepared := DuplicateDefPlacementBlocks(fg)
	ssa := graph.ExtractSSA(prepared)
	dom, dominatees, err := BlockDomSets(prepared)

	if err != nil {
		dom, dominatees = nil, nil
	}

	if workers < 1 {
		workers = 1
	}

	type partial struct {
		instr   target.InstrID
		pat     target.PatternID
		matches []Match
	}

	results := make([]partial, len(patterns))

	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i, p := range patterns {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, p PatternSource) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = partial{
				instr:   p.InstrID,
				pat:     p.PatternID,
				matches: matchOnePattern(prepared, p.Pattern, ssa, dom, dominatees),
			}
		}(i, p)
	}

	wg.Wait()

	type flat struct {
		instr target.InstrID
		pat   target.PatternID
		match Match
	}

	var all []flat

	for _, r := range results {
		for _, m := range r.matches {
			all = append(all, flat{r.instr, r.pat, m})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].instr != all[j].instr {
			return all[i].instr < all[j].instr
		}

		if all[i].pat != all[j].pat {
			return all[i].pat < all[j].pat
		}

		return canonicalMatchKey(all[i].match) < canonicalMatchKey(all[j].match)
	})

	out := make([]PatternMatch, len(all))

	for i, f := range all {
		out[i] = PatternMatch{InstrID: f.instr, PatternID: f.pat, MatchID: uint64(i), Match: f.match}
	}

	return out
}

func matchOnePattern(
	fg, pattern, ssa graph.Graph, dom, dominatees map[graph.NodeID]map[graph.NodeID]bool,
) []Match {
	isSIMD := IsSIMDPattern(pattern)

	var raw []Match
	if isSIMD {
		raw = SIMDPatternMatches(fg, pattern)
	} else {
		raw = FindSubgraphMatches(fg, pattern)
	}

	filtered := make([]Match, 0, len(raw))

	for _, m := range raw {
		if HasCyclicDataDependency(ssa, m) {
			continue
		}

		if isSIMD && dom != nil && !SIMDSelectable(fg, dom, dominatees, m) {
			continue
		}

		filtered = append(filtered, m)
	}

	return RemoveDuplicateMatches(filtered)
}

func canonicalMatchKey(m Match) string {
	keys := make([]graph.NodeID, 0, len(m.Pairs))
	for k := range m.Pairs {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var b strings.Builder

	for _, k := range keys {
		fmt.Fprintf(&b, "%d:%d,", k, m.Pairs[k])
	}

	return b.String()
}
