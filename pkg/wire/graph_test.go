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
package wire

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/opselect/isel/pkg/graph"
)

func buildSampleGraph() graph.Graph {
	g := graph.New()

	var (
		a, b, c, sum, blk graph.NodeRef
	)

	a, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}, Origin: []string{"a"}})
	b, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	c, g = g.AddNode(graph.Value{DataType: graph.IntConstType{
		Range:   graph.NewInterval64(0, 255),
		Bits:    8,
		HasBits: true,
	}})
	sum, g = g.AddNode(graph.Computation{Op: graph.OpAdd})
	blk, g = g.AddNode(graph.Block{Name: "entry"})

	_, g = g.AddEdge(graph.DataFlow, a, sum)
	_, g = g.AddEdge(graph.DataFlow, b, sum)
	_, g = g.AddEdge(graph.DataFlow, sum, c)
	_, g = g.AddEdge(graph.DefPlacement, blk, sum)

	return g
}

func TestGraphRoundTrips(t *testing.T) {
	g := buildSampleGraph()

	w, err := GraphToWire(g)
	if err != nil {
		t.Fatalf("GraphToWire: %v", err)
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var decoded Graph
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	got, err := GraphFromWire(decoded)
	if err != nil {
		t.Fatalf("GraphFromWire: %v", err)
	}

	for _, ref := range got.Nodes() {
		id := got.PublicID(ref)

		wantRef, ok := g.RefOf(id)
		if !ok {
			t.Fatalf("round-tripped graph has unexpected public id %d", id)
		}

		if !reflect.DeepEqual(g.Kind(wantRef), got.Kind(ref)) {
			t.Fatalf("node %d kind mismatch:\nwant %#v\ngot  %#v", id, g.Kind(wantRef), got.Kind(ref))
		}
	}

	if len(got.Edges()) != len(g.Edges()) {
		t.Fatalf("edge count mismatch: want %d, got %d", len(g.Edges()), len(got.Edges()))
	}

	for _, ref := range got.Edges() {
		e := got.Edge(ref)
		srcID, dstID := got.PublicID(e.Src), got.PublicID(e.Dst)

		matched := false

		for _, origRef := range g.Edges() {
			orig := g.Edge(origRef)
			if orig.Kind == e.Kind && g.PublicID(orig.Src) == srcID && g.PublicID(orig.Dst) == dstID &&
				orig.OutNum == e.OutNum && orig.InNum == e.InNum {
				matched = true
				break
			}
		}

		if !matched {
			t.Fatalf("round-tripped edge %+v (src=%d dst=%d) has no match in the original graph", e, srcID, dstID)
		}
	}
}

func TestGraphFromWireRejectsOutOfRangeEdge(t *testing.T) {
	w := Graph{
		Nodes: []Node{{Kind: "state"}},
		Edges: []Edge{{Kind: "dataflow", Src: 0, Dst: 5}},
	}

	if _, err := GraphFromWire(w); err == nil {
		t.Fatalf("expected an error for an out-of-range edge endpoint")
	}
}

func TestGraphToWireRejectsSparsePublicIDs(t *testing.T) {
	g := graph.New()

	var first graph.NodeRef

	first, g = g.AddNode(graph.State{})
	_, g = g.AddNode(graph.State{})
	g = g.DeleteNode(first)

	if _, err := GraphToWire(g); err == nil {
		t.Fatalf("expected an error for a graph whose public ids are no longer dense")
	}
}
