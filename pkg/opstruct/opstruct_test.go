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
package opstruct

import (
	"testing"

	"github.com/opselect/isel/pkg/graph"
)

func testGraph() (graph.Graph, graph.NodeID, graph.NodeID) {
	g := graph.New()
	v1, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	v2, g := g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})

	return g, g.PublicID(v1), g.PublicID(v2)
}

func TestAddConstraintAcceptsKnownNode(t *testing.T) {
	g, v1, _ := testGraph()
	o := New(g)

	o = o.AddConstraint(NoReuseConstraint(v1, 0))

	if len(o.Constraints) != 1 {
		t.Fatalf("expected one constraint, got %d", len(o.Constraints))
	}
}

func TestAddConstraintPanicsOnUnknownNode(t *testing.T) {
	g, _, _ := testGraph()
	o := New(g)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for node not in graph")
		}
	}()

	o.AddConstraint(NoReuseConstraint(graph.NodeID(999), 0))
}

func TestAddSameLocationPair(t *testing.T) {
	g, v1, v2 := testGraph()
	o := New(g)

	o = o.AddSameLocationPair(v1, v2)

	if len(o.SameLocationPairs) != 1 || o.SameLocationPairs[0] != [2]graph.NodeID{v1, v2} {
		t.Fatalf("unexpected pairs: %+v", o.SameLocationPairs)
	}
}

func TestWithEntryBlockAndValidLocations(t *testing.T) {
	g, v1, _ := testGraph()
	blk, g := g.AddNode(graph.Block{Name: "entry"})

	o := New(g).WithEntryBlock(g.PublicID(blk)).WithValidLocations(v1, []uint64{1, 2, 3})

	if o.EntryBlock == nil || *o.EntryBlock != g.PublicID(blk) {
		t.Fatalf("expected entry block set")
	}

	if len(o.ValidLocations[v1]) != 3 {
		t.Fatalf("expected 3 valid locations, got %v", o.ValidLocations[v1])
	}
}

func TestMatchPlacementConstraintShape(t *testing.T) {
	g, _, _ := testGraph()
	blk, g := g.AddNode(graph.Block{Name: "entry"})
	o := New(g)

	c := MatchPlacementConstraint(g.PublicID(blk))

	ids := c.FreeIdentifiers().ToSlice()
	if len(ids) != 1 || ids[0].Value != uint64(g.PublicID(blk)) {
		t.Fatalf("unexpected free identifiers: %+v", ids)
	}

	_ = o
}
