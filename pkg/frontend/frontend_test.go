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
package frontend

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
	"github.com/opselect/isel/pkg/target"
	"github.com/opselect/isel/pkg/wire"
)

func TestJSONFileRoundTrips(t *testing.T) {
	g := graph.New()

	var entry, val graph.NodeRef

	entry, g = g.AddNode(graph.Block{Name: "entry"})
	val, g = g.AddNode(graph.Value{DataType: graph.IntTempType{Bits: 32}})
	_, g = g.AddEdge(graph.DefPlacement, entry, val)

	o := opstruct.New(g).WithEntryBlock(0)

	wireOS, err := wire.OpStructToWire(o)
	if err != nil {
		t.Fatalf("OpStructToWire: %v", err)
	}

	ff := functionFile{
		OpStruct:       wireOS,
		BlockExecFreqs: map[graph.NodeID]float64{0: 1.0},
		InputValueIDs:  []graph.NodeID{1},
	}

	data, err := json.Marshal(ff)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "function.json")

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fe, err := NewJSONFile(path)
	if err != nil {
		t.Fatalf("NewJSONFile: %v", err)
	}

	fn, freqs, inputs, err := fe.Function()
	if err != nil {
		t.Fatalf("Function: %v", err)
	}

	if len(fn.Graph.Nodes()) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(fn.Graph.Nodes()))
	}

	if freqs[0] != 1.0 {
		t.Fatalf("expected block 0 exec freq 1.0, got %v", freqs[0])
	}

	if len(inputs) != 1 || inputs[0] != 1 {
		t.Fatalf("expected input value ids [1], got %v", inputs)
	}
}

func TestLoadTargetMachineRoundTrips(t *testing.T) {
	m := target.New("demo64", 8, 0)
	m = m.WithLocation(target.Location{ID: 0, Name: "r0"})

	w, err := wire.TargetMachineToWire(m)
	if err != nil {
		t.Fatalf("TargetMachineToWire: %v", err)
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "target.json")

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadTargetMachine(path)
	if err != nil {
		t.Fatalf("LoadTargetMachine: %v", err)
	}

	if got.ID != "demo64" {
		t.Fatalf("expected id demo64, got %q", got.ID)
	}
}
