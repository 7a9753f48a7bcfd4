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

import "fmt"

// TargetMachine is the full description of one target's instruction set,
// storage locations, and pointer ABI.
type TargetMachine struct {
	ID               string
	Instructions     map[InstrID]Instruction
	Locations        map[LocationID]Location
	PointerSize      uint
	NullPointerValue int64
}

// New returns an empty TargetMachine identified by id.
func New(id string, pointerSize uint, nullPointerValue int64) TargetMachine {
	return TargetMachine{
		ID:               id,
		Instructions:     map[InstrID]Instruction{},
		Locations:        map[LocationID]Location{},
		PointerSize:      pointerSize,
		NullPointerValue: nullPointerValue,
	}
}

func (m TargetMachine) clone() TargetMachine {
	instrs := make(map[InstrID]Instruction, len(m.Instructions))
	for k, v := range m.Instructions {
		instrs[k] = v
	}

	locs := make(map[LocationID]Location, len(m.Locations))
	for k, v := range m.Locations {
		locs[k] = v
	}

	return TargetMachine{
		ID:               m.ID,
		Instructions:     instrs,
		Locations:        locs,
		PointerSize:      m.PointerSize,
		NullPointerValue: m.NullPointerValue,
	}
}

// WithInstruction returns a copy of m with instr registered under its own
// ID, overwriting any existing instruction sharing that ID.
func (m TargetMachine) WithInstruction(instr Instruction) TargetMachine {
	next := m.clone()
	next.Instructions[instr.ID] = instr

	return next
}

// WithLocation returns a copy of m with loc registered under its own ID.
func (m TargetMachine) WithLocation(loc Location) TargetMachine {
	next := m.clone()
	next.Locations[loc.ID] = loc

	return next
}

// Instruction looks up an instruction by ID. Missing IDs are an error: a
// TargetMachine is expected to be fully populated before it is used to
// drive matching or model building.
func (m TargetMachine) Instruction(id InstrID) (Instruction, error) {
	instr, ok := m.Instructions[id]
	if !ok {
		return Instruction{}, fmt.Errorf("target: unknown instruction ID %d", id)
	}

	return instr, nil
}

// Location looks up a storage location by ID. Missing IDs are an error.
func (m TargetMachine) Location(id LocationID) (Location, error) {
	loc, ok := m.Locations[id]
	if !ok {
		return Location{}, fmt.Errorf("target: unknown location ID %d", id)
	}

	return loc, nil
}

// LocationIDs returns every location ID registered on m, in no particular
// order; callers needing a stable order should sort the result.
func (m TargetMachine) LocationIDs() []LocationID {
	out := make([]LocationID, 0, len(m.Locations))
	for id := range m.Locations {
		out = append(out, id)
	}

	return out
}
