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
package dot

import (
	"strings"
	"testing"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/match"
	"github.com/opselect/isel/pkg/util/assert"
)

func TestRenderIncludesNodesEdgesAndMatchClusters(t *testing.T) {
	g := graph.New()

	var a, b, sum graph.NodeRef

	a, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	b, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	sum, g = g.AddNode(graph.Computation{Op: graph.OpAdd})

	_, g = g.AddEdge(graph.DataFlow, a, sum)
	_, g = g.AddEdge(graph.DataFlow, b, sum)

	matches := []match.PatternMatch{
		{
			InstrID:   1,
			PatternID: 1,
			MatchID:   0,
			Match: match.Match{
				Pairs: map[graph.NodeID]graph.NodeID{0: 0, 1: 1, 2: 2},
			},
		},
	}

	out, err := New().Render(g, matches)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph function {"), "digraph header")

	for _, want := range []string{"n0 [label=\"value\"", "n2 [label=\"computation:add\"", "n0 -> n2", "subgraph cluster_0"} {
		assert.True(t, strings.Contains(out, want), "expected output to contain "+want)
	}
}

func TestRenderWithNoMatchesOmitsClusters(t *testing.T) {
	g := graph.New()
	_, g = g.AddNode(graph.Value{DataType: graph.AnyType{}})

	out, err := New().Render(g, nil)
	assert.NoError(t, err)
	assert.False(t, strings.Contains(out, "subgraph"), "expected no subgraph clusters")
}
