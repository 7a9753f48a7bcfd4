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
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
)

// PatternID identifies one pattern graph belonging to an Instruction,
// scoped to that instruction's own Patterns list.
type PatternID uint64

// InstrPattern is one pattern graph an instruction can match, plus the data
// nodes that carry its inputs/outputs and the template used to emit the
// instruction once matched.
type InstrPattern struct {
	ID                PatternID
	OpStructure       opstruct.OpStruct
	InputDataNodeIDs  []graph.NodeID
	OutputDataNodeIDs []graph.NodeID
	EmitTemplate      EmitStringTemplate
}
