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
package cmd

import (
	"sort"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/match"
	"github.com/opselect/isel/pkg/opstruct"
	"github.com/opselect/isel/pkg/target"
	"github.com/opselect/isel/pkg/transform"
)

// runCleanupPipeline runs the C8 op-structure clean-up passes in the order
// documented by pkg/transform: canonicalize copies, lower pointers, enforce
// phi invariants, collapse single-input phis, eliminate dead code, fold
// redundant conversions.
func runCleanupPipeline(o opstruct.OpStruct, tm target.TargetMachine) opstruct.OpStruct {
	o = withGraph(o, transform.CanonicalizeCopies(o.Graph))
	o = transform.LowerPointers(o, tm.PointerSize, tm.NullPointerValue)
	o = withGraph(o, transform.EnforcePhiInvariants(o.Graph))
	o = transform.RemoveRedundantPhiNodes(o)
	o = withGraph(o, transform.EliminateDeadCode(o.Graph))
	o = withGraph(o, transform.RemoveRedundantConversions(o.Graph))

	return o
}

// withGraph returns a copy of o with its Graph replaced, preserving every
// other field.
func withGraph(o opstruct.OpStruct, g graph.Graph) opstruct.OpStruct {
	return opstruct.OpStruct{
		Graph:             g,
		EntryBlock:        o.EntryBlock,
		ValidLocations:    o.ValidLocations,
		Constraints:       o.Constraints,
		SameLocationPairs: o.SameLocationPairs,
	}
}

// patternSources flattens every (instruction, pattern) pair of tm into the
// slice match.FindMatches expects, sorted by instruction ID then pattern ID
// so a run's pattern order does not depend on Go's map iteration order.
func patternSources(tm target.TargetMachine) []match.PatternSource {
	var instrIDs []target.InstrID
	for id := range tm.Instructions {
		instrIDs = append(instrIDs, id)
	}

	sort.Slice(instrIDs, func(i, j int) bool { return instrIDs[i] < instrIDs[j] })

	var out []match.PatternSource

	for _, iid := range instrIDs {
		instr := tm.Instructions[iid]

		patterns := append([]target.InstrPattern(nil), instr.Patterns...)
		sort.Slice(patterns, func(i, j int) bool { return patterns[i].ID < patterns[j].ID })

		for _, p := range patterns {
			out = append(out, match.PatternSource{
				InstrID:   iid,
				PatternID: p.ID,
				Pattern:   p.OpStructure.Graph,
			})
		}
	}

	return out
}
