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
	"testing"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
	"github.com/opselect/isel/pkg/target"
	"github.com/opselect/isel/pkg/util/assert"
)

func TestPatternSourcesSortsByInstructionThenPattern(t *testing.T) {
	g := graph.New()

	tm := target.New("demo", 8, 0).
		WithInstruction(target.Instruction{
			ID: 5,
			Patterns: []target.InstrPattern{
				{ID: 2, OpStructure: opstruct.New(g)},
				{ID: 1, OpStructure: opstruct.New(g)},
			},
		}).
		WithInstruction(target.Instruction{
			ID: 3,
			Patterns: []target.InstrPattern{
				{ID: 0, OpStructure: opstruct.New(g)},
			},
		})

	sources := patternSources(tm)

	assert.Len(t, sources, 3, "pattern sources")
	assert.Equal(t, target.InstrID(3), sources[0].InstrID, "first source instruction")
	assert.Equal(t, target.InstrID(5), sources[1].InstrID, "second source instruction")
	assert.Equal(t, target.InstrID(5), sources[2].InstrID, "third source instruction")
	assert.Equal(t, target.PatternID(1), sources[1].PatternID, "lower pattern first within instruction 5")
	assert.Equal(t, target.PatternID(2), sources[2].PatternID, "higher pattern second within instruction 5")
}

func TestWithGraphPreservesOtherFields(t *testing.T) {
	g := graph.New()

	var n1, n2 graph.NodeRef
	n1, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	n2, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	entry := g.PublicID(n1)
	o := opstruct.New(g).WithEntryBlock(entry).AddSameLocationPair(g.PublicID(n1), g.PublicID(n2))

	replaced := withGraph(o, g)

	assert.True(t, replaced.EntryBlock != nil, "entry block preserved")
	assert.Equal(t, entry, *replaced.EntryBlock, "entry block value preserved")
	assert.Len(t, replaced.SameLocationPairs, 1, "same-location pairs preserved")
}
