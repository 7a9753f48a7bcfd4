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

// InstrID identifies one instruction of a TargetMachine.
type InstrID uint64

// InstrProperties are the flags and costs of an instruction that the model
// builder (pkg/model) and lowering (pkg/lower) consult without looking at
// any of its patterns.
type InstrProperties struct {
	CodeSize   uint
	Latency    uint
	IsCopy     bool
	IsInactive bool
	IsNull     bool
	IsPhi      bool
	IsSIMD     bool
}

// Instruction is one selectable operation of a target machine: an ordered
// list of pattern graphs (the first structurally eligible match wins no
// preference here — every pattern is matched independently and all
// surviving matches compete in the CP model) plus its cost/shape
// properties.
type Instruction struct {
	ID         InstrID
	Patterns   []InstrPattern
	Properties InstrProperties
}

// PatternByID returns the pattern of i with the given ID. Missing IDs are a
// caller error: every PatternID an Instruction hands out must belong to its
// own Patterns list.
func (i Instruction) PatternByID(id PatternID) (InstrPattern, bool) {
	for _, p := range i.Patterns {
		if p.ID == id {
			return p, true
		}
	}

	return InstrPattern{}, false
}
