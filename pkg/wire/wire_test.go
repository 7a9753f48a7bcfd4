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
	"math/big"
	"reflect"
	"testing"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/model"
	"github.com/opselect/isel/pkg/target"
)

func TestConstraintExprRoundTrips(t *testing.T) {
	c := constraint.AndExpr{Operands: []constraint.BoolExpr{
		constraint.EqExpr{
			Lhs: constraint.LocationOfValueNodeExpr{Node: constraint.ANodeIDExpr{ID: 17}},
			Rhs: constraint.ALocationIDExpr{ID: 3},
		},
		constraint.ImpliesExpr{
			Antecedent: constraint.FallThroughExpr{
				Match: constraint.ThisMatchExpr{},
				Block: constraint.ABlockIDExpr{ID: 5},
			},
			Consequent: constraint.NotExpr{Operand: constraint.InSetExpr{
				Value: constraint.IntLitExpr{Value: 4},
				Set:   []constraint.Term{constraint.IntLitExpr{Value: 1}, constraint.IntLitExpr{Value: 4}},
			}},
		},
		constraint.DistanceExpr{
			Lhs:   constraint.NumOfBlockExpr{Block: constraint.ABlockArrayIndexExpr{Index: 2}},
			Rhs:   constraint.AddExpr{Lhs: constraint.IntLitExpr{Value: 1}, Rhs: constraint.IntLitExpr{Value: 2}},
			Bound: constraint.SubExpr{Lhs: constraint.IntLitExpr{Value: 10}, Rhs: constraint.IntLitExpr{Value: 3}},
		},
	}}

	raw, err := MarshalBoolExpr(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := UnmarshalBoolExpr(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(c, got) {
		t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", c, got)
	}
}

func TestConstraintExprUnrecognizedKindErrors(t *testing.T) {
	if _, err := UnmarshalBoolExpr(json.RawMessage(`{"kind":"nonsense"}`)); err == nil {
		t.Fatalf("expected an error for an unrecognized kind")
	}
}

func TestModelRoundTrips(t *testing.T) {
	hlm := model.HighLevelModel{
		FunctionParams: model.FunctionParams{
			OperationNodes: []graph.NodeID{0, 1},
			DataNodes:      []graph.NodeID{2, 3},
			StateNodes:     []graph.NodeID{4},
			BlockNodes:     []graph.NodeID{5, 6},
			EntryBlock:     5,
			BlockDomSets:   map[graph.NodeID][]graph.NodeID{5: {5}, 6: {5, 6}},
			DefEdges:       []model.DefEdge{{Block: 5, Entity: 2}},
			BlockParams:    map[graph.NodeID]model.BlockParams{5: {Name: "entry", Node: 5, ExecFreq: 1.0}},
			IntConstData:   map[graph.NodeID]big.Int{3: *big.NewInt(42)},
			Constraints: []constraint.BoolExpr{
				constraint.EqExpr{Lhs: constraint.ANodeIDExpr{ID: 2}, Rhs: constraint.ANodeIDExpr{ID: 3}},
			},
		},
		MachineParams: model.MachineParams{
			TargetMachineID: "demo64",
			Locations:       []target.LocationID{0, 1},
		},
		PerMatchParams: []model.MatchParams{
			{
				InstructionID:            7,
				PatternID:                1,
				MatchID:                  0,
				OperationsCovered:        []graph.NodeID{1},
				DataDefined:              []graph.NodeID{2},
				DataUsed:                 []graph.NodeID{3},
				SpannedBlocks:            []graph.NodeID{5},
				CodeSize:                 4,
				Latency:                  1,
				ApplyDefDomUseConstraint: true,
				IsNonCopyInstruction:     true,
				AsmStrNodeMap:            map[graph.NodeID]graph.NodeID{1: 2},
				Constraints: []constraint.BoolExpr{
					constraint.LeExpr{Lhs: constraint.IntLitExpr{Value: 1}, Rhs: constraint.IntLitExpr{Value: 2}},
				},
			},
		},
	}

	w, err := ModelToWire(hlm)
	if err != nil {
		t.Fatalf("ModelToWire: %v", err)
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var decoded HighLevelModel
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	got, err := ModelFromWire(decoded)
	if err != nil {
		t.Fatalf("ModelFromWire: %v", err)
	}

	if !reflect.DeepEqual(hlm, got) {
		t.Fatalf("model round trip mismatch:\nwant %#v\ngot  %#v", hlm, got)
	}
}

func TestLowLevelSolutionRoundTrips(t *testing.T) {
	sol := lower.LowLevelSolution{
		OrderOfBBs:          []uint{0, 1},
		IsMatchSelected:     []bool{false, true},
		BBAllocatedForMatch: []uint{0, 0},
		HasDataLoc:          []bool{true, false},
		LocSelectedForData:  []uint{0, 0},
		HasDataImmValue:     []bool{false, true},
		ImmValueOfData:      []int64{0, 9},
		Cost:                3.5,
	}

	w := LowSolutionToWire(sol)

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var decoded LowLevelSolution
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	got := LowSolutionFromWire(decoded)
	if !reflect.DeepEqual(sol, got) {
		t.Fatalf("solution round trip mismatch:\nwant %#v\ngot  %#v", sol, got)
	}
}

func TestHighLevelSolutionRaisingExample(t *testing.T) {
	// Mirrors spec.md's "raising a solution" scenario: three matches with IDs
	// 7, 11, 13 and two blocks with IDs 21, 22; matches 11 and 13 are
	// selected, allocated to blocks 21 and 22 respectively.
	hls := lower.HighLevelSolution{
		OrderOfBBs:      []graph.NodeID{21, 22},
		SelectedMatches: []uint64{11, 13},
		BlockAllocsForSelMatches: []lower.BlockAlloc{
			{MatchID: 11, Block: 21},
			{MatchID: 13, Block: 22},
		},
		RegsOfValueNodes:      map[graph.NodeID]target.LocationID{},
		ImmValuesOfValueNodes: map[graph.NodeID]int64{},
		Cost:                  1,
	}

	w := SolutionToWire(hls)

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var decoded HighLevelSolution
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	got := SolutionFromWire(decoded)
	if !reflect.DeepEqual(hls, got) {
		t.Fatalf("solution round trip mismatch:\nwant %#v\ngot  %#v", hls, got)
	}
}
