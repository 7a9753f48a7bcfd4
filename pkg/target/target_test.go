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
package target

import (
	"testing"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
)

func TestMachineInstructionLookupMissingIDIsError(t *testing.T) {
	m := New("toy", 64, 0)

	if _, err := m.Instruction(InstrID(7)); err == nil {
		t.Fatalf("expected an error looking up an unregistered instruction ID")
	}
}

func TestMachineWithInstructionRoundTrips(t *testing.T) {
	m := New("toy", 64, 0)

	instr := Instruction{
		ID: InstrID(1),
		Properties: InstrProperties{
			CodeSize: 4,
			Latency:  1,
		},
	}

	m = m.WithInstruction(instr)

	got, err := m.Instruction(InstrID(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Properties.CodeSize != 4 {
		t.Fatalf("expected code size 4, got %d", got.Properties.CodeSize)
	}
}

func TestMachineLocationLookupMissingIDIsError(t *testing.T) {
	m := New("toy", 64, 0)

	if _, err := m.Location(LocationID(3)); err == nil {
		t.Fatalf("expected an error looking up an unregistered location ID")
	}
}

func TestInstructionPatternByID(t *testing.T) {
	g := graph.New()
	instr := Instruction{
		ID: InstrID(1),
		Patterns: []InstrPattern{
			{ID: PatternID(0), OpStructure: opstruct.New(g)},
			{ID: PatternID(1), OpStructure: opstruct.New(g)},
		},
	}

	p, ok := instr.PatternByID(PatternID(1))
	if !ok {
		t.Fatalf("expected pattern 1 to be found")
	}

	if p.ID != PatternID(1) {
		t.Fatalf("expected pattern ID 1, got %d", p.ID)
	}

	if _, ok := instr.PatternByID(PatternID(5)); ok {
		t.Fatalf("expected pattern 5 to be absent")
	}
}

func TestEmitStringTemplateReferencedNodes(t *testing.T) {
	tmpl := EmitStringTemplate{
		Lines: []EmitLine{
			{Verbatim{Text: "add "}, LocationOf{Node: graph.NodeID(3)}, Verbatim{Text: ", "}, LocationOf{Node: graph.NodeID(4)}},
			{LocalTemporary{Index: 0}, Verbatim{Text: ":"}, FuncOfCall{Node: graph.NodeID(9)}},
		},
	}

	got := tmpl.ReferencedNodes()
	want := []graph.NodeID{3, 4, 9}

	if len(got) != len(want) {
		t.Fatalf("expected %d referenced nodes, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at position %d: expected node %d, got %d", i, want[i], got[i])
		}
	}
}
