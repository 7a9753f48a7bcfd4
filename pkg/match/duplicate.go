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

	"github.com/opselect/isel/pkg/graph"
)

// DuplicateDefPlacementBlocks splits every block node that carries both
// incoming and outgoing def-placement edges into two nodes sharing one
// public ID: the original keeps the incoming edges (definitions arriving at
// the block), a new duplicate takes the outgoing ones (definitions
// available for placement further down). A single such block would
// otherwise require the matcher to bind one pattern node to two
// structurally distinct roles at once; since both instances report the same
// public ID, a completed Match naturally collapses them back together (see
// vf2.snapshot), so no post-match rewrite step is needed.
func DuplicateDefPlacementBlocks(g graph.Graph) graph.Graph {
	blocks := g.NodesOfKind(graph.IsBlock)

	for _, ref := range blocks {
		in := g.InEdges(ref, graph.EdgeKindPtr(graph.DefPlacement))
		out := g.OutEdges(ref, graph.EdgeKindPtr(graph.DefPlacement))

		if len(in) == 0 || len(out) == 0 {
			continue
		}

		dup, next := g.DuplicateNode(ref)
		g = next

		for _, e := range out {
			g = g.UpdateEdgeSource(e, dup)
		}
	}

	return g
}

// RemoveDuplicateMatches discards matches that bind the identical set of
// function nodes as an earlier match in the slice, keeping the first
// occurrence as the arbitrary representative.
func RemoveDuplicateMatches(matches []Match) []Match {
	seen := make(map[string]bool, len(matches))

	out := make([]Match, 0, len(matches))

	for _, m := range matches {
		key := functionNodeSetKey(m)
		if seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, m)
	}

	return out
}

func functionNodeSetKey(m Match) string {
	ids := make([]uint64, 0, len(m.Pairs))
	for _, fid := range m.Pairs {
		ids = append(ids, uint64(fid))
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d,", id)
	}

	return b.String()
}
