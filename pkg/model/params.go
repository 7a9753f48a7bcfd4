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
package model

import (
	"math/big"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/target"
)

// DefEdge is one (block, entity) definition-placement pair, orientation
// normalized so the block always comes first regardless of which way the
// original DefPlacement edge pointed.
type DefEdge struct {
	Block  graph.NodeID
	Entity graph.NodeID
}

// BlockParams is the per-block metadata the model carries for scheduling
// cost.
type BlockParams struct {
	Name     string
	Node     graph.NodeID
	ExecFreq float64
}

// FunctionParams is the function-side third of a HighLevelModel.
type FunctionParams struct {
	OperationNodes []graph.NodeID
	DataNodes      []graph.NodeID
	StateNodes     []graph.NodeID
	BlockNodes     []graph.NodeID
	EntryBlock     graph.NodeID
	// BlockDomSets maps a block to its inclusive dominator set, both sides
	// named by block NodeID.
	BlockDomSets map[graph.NodeID][]graph.NodeID
	DefEdges     []DefEdge
	BlockParams  map[graph.NodeID]BlockParams
	// IntConstData binds every IntConst-typed value node to its concrete
	// value.
	IntConstData map[graph.NodeID]big.Int
	Constraints  []constraint.BoolExpr
}

// MachineParams is the target-machine-side third of a HighLevelModel.
type MachineParams struct {
	TargetMachineID string
	Locations       []target.LocationID
}

// MatchParams is one per-match entry of a HighLevelModel.
type MatchParams struct {
	InstructionID target.InstrID
	PatternID     target.PatternID
	MatchID       uint64

	OperationsCovered []graph.NodeID
	DataDefined       []graph.NodeID
	DataUsed          []graph.NodeID
	EntryBlock        *graph.NodeID
	SpannedBlocks     []graph.NodeID

	CodeSize uint
	Latency  uint

	// ApplyDefDomUseConstraint is true for every match except one placing a
	// generic phi-handling instruction, which has no single definition
	// point to dominate its uses from.
	ApplyDefDomUseConstraint bool
	// IsNonCopyInstruction is the negation of the instruction's IsCopy
	// property, named to match the wire format directly.
	IsNonCopyInstruction bool
	// HasControlFlow is true iff the pattern graph itself contains a
	// Control node (the "has control nodes" flag of spec.md §4.5).
	HasControlFlow bool
	// DataUsedByPhis lists, among this match's data nodes, those consumed
	// by a Phi operation covered by the match — needed by the emitter to
	// break definition cycles introduced by phi placement.
	DataUsedByPhis []graph.NodeID
	// AsmStrNodeMap maps every pattern node ID referenced by the
	// instruction's emit template to the function node ID the match
	// assigns it. Verbatim/LocalTemporary template parts reference no
	// pattern node and so have no entry here.
	AsmStrNodeMap map[graph.NodeID]graph.NodeID

	Constraints []constraint.BoolExpr
}

// HighLevelModel is the complete input to index lowering (pkg/lower).
type HighLevelModel struct {
	FunctionParams FunctionParams
	MachineParams  MachineParams
	PerMatchParams []MatchParams
}
