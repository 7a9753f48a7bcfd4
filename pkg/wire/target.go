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
	"fmt"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/target"
)

// Location mirrors target.Location.
type Location struct {
	ID                 target.LocationID `json:"id"`
	Name               string            `json:"name"`
	OptionalFixedValue *int64            `json:"fixed-value,omitempty"`
}

// EmitPart is the wire form of one target.EmitPart. Kind selects Text,
// Node, or Index as appropriate.
type EmitPart struct {
	Kind  string        `json:"kind"`
	Text  string        `json:"text,omitempty"`
	Node  *graph.NodeID `json:"node,omitempty"`
	Index *uint         `json:"index,omitempty"`
}

// EmitStringTemplate mirrors target.EmitStringTemplate.
type EmitStringTemplate struct {
	Lines [][]EmitPart `json:"lines"`
}

// InstrProperties mirrors target.InstrProperties.
type InstrProperties struct {
	CodeSize   uint `json:"code-size"`
	Latency    uint `json:"latency"`
	IsCopy     bool `json:"is-copy"`
	IsInactive bool `json:"is-inactive"`
	IsNull     bool `json:"is-null"`
	IsPhi      bool `json:"is-phi"`
	IsSIMD     bool `json:"is-simd"`
}

// InstrPattern mirrors target.InstrPattern.
type InstrPattern struct {
	ID                target.PatternID `json:"id"`
	OpStructure       OpStruct         `json:"op-structure"`
	InputDataNodeIDs  []graph.NodeID   `json:"input-data-node-ids"`
	OutputDataNodeIDs []graph.NodeID   `json:"output-data-node-ids"`
	EmitTemplate      EmitStringTemplate `json:"emit-template"`
}

// Instruction mirrors target.Instruction.
type Instruction struct {
	ID         target.InstrID   `json:"id"`
	Patterns   []InstrPattern   `json:"patterns"`
	Properties InstrProperties  `json:"properties"`
}

// TargetMachine mirrors target.TargetMachine.
type TargetMachine struct {
	ID               string                              `json:"id"`
	Instructions     map[target.InstrID]Instruction       `json:"instructions"`
	Locations        map[target.LocationID]Location       `json:"locations"`
	PointerSize      uint                                `json:"pointer-size"`
	NullPointerValue int64                               `json:"null-pointer-value"`
}

func emitPartToWire(p target.EmitPart) (EmitPart, error) {
	switch e := p.(type) {
	case target.Verbatim:
		return EmitPart{Kind: "verbatim", Text: e.Text}, nil
	case target.IntConstOf:
		n := e.Node
		return EmitPart{Kind: "int-const-of", Node: &n}, nil
	case target.LocationOf:
		n := e.Node
		return EmitPart{Kind: "location-of", Node: &n}, nil
	case target.NameOfBlock:
		n := e.Node
		return EmitPart{Kind: "name-of-block", Node: &n}, nil
	case target.BlockOf:
		n := e.Node
		return EmitPart{Kind: "block-of", Node: &n}, nil
	case target.LocalTemporary:
		idx := e.Index
		return EmitPart{Kind: "local-temporary", Index: &idx}, nil
	case target.FuncOfCall:
		n := e.Node
		return EmitPart{Kind: "func-of-call", Node: &n}, nil
	default:
		return EmitPart{}, fmt.Errorf("wire: unrecognized emit part type %T", p)
	}
}

func emitPartFromWire(p EmitPart) (target.EmitPart, error) {
	switch p.Kind {
	case "verbatim":
		return target.Verbatim{Text: p.Text}, nil
	case "int-const-of":
		if p.Node == nil {
			return nil, fmt.Errorf("wire: int-const-of missing node")
		}

		return target.IntConstOf{Node: *p.Node}, nil
	case "location-of":
		if p.Node == nil {
			return nil, fmt.Errorf("wire: location-of missing node")
		}

		return target.LocationOf{Node: *p.Node}, nil
	case "name-of-block":
		if p.Node == nil {
			return nil, fmt.Errorf("wire: name-of-block missing node")
		}

		return target.NameOfBlock{Node: *p.Node}, nil
	case "block-of":
		if p.Node == nil {
			return nil, fmt.Errorf("wire: block-of missing node")
		}

		return target.BlockOf{Node: *p.Node}, nil
	case "local-temporary":
		if p.Index == nil {
			return nil, fmt.Errorf("wire: local-temporary missing index")
		}

		return target.LocalTemporary{Index: *p.Index}, nil
	case "func-of-call":
		if p.Node == nil {
			return nil, fmt.Errorf("wire: func-of-call missing node")
		}

		return target.FuncOfCall{Node: *p.Node}, nil
	default:
		return nil, fmt.Errorf("wire: unrecognized emit part kind %q", p.Kind)
	}
}

func emitTemplateToWire(t target.EmitStringTemplate) (EmitStringTemplate, error) {
	lines := make([][]EmitPart, len(t.Lines))

	for i, line := range t.Lines {
		parts := make([]EmitPart, len(line))

		for j, p := range line {
			w, err := emitPartToWire(p)
			if err != nil {
				return EmitStringTemplate{}, fmt.Errorf("line %d, part %d: %w", i, j, err)
			}

			parts[j] = w
		}

		lines[i] = parts
	}

	return EmitStringTemplate{Lines: lines}, nil
}

func emitTemplateFromWire(w EmitStringTemplate) (target.EmitStringTemplate, error) {
	lines := make([]target.EmitLine, len(w.Lines))

	for i, line := range w.Lines {
		parts := make(target.EmitLine, len(line))

		for j, p := range line {
			e, err := emitPartFromWire(p)
			if err != nil {
				return target.EmitStringTemplate{}, fmt.Errorf("line %d, part %d: %w", i, j, err)
			}

			parts[j] = e
		}

		lines[i] = parts
	}

	return target.EmitStringTemplate{Lines: lines}, nil
}

// InstrPatternToWire converts p to its wire form.
func InstrPatternToWire(p target.InstrPattern) (InstrPattern, error) {
	os, err := OpStructToWire(p.OpStructure)
	if err != nil {
		return InstrPattern{}, fmt.Errorf("op-structure: %w", err)
	}

	tmpl, err := emitTemplateToWire(p.EmitTemplate)
	if err != nil {
		return InstrPattern{}, fmt.Errorf("emit-template: %w", err)
	}

	return InstrPattern{
		ID:                p.ID,
		OpStructure:       os,
		InputDataNodeIDs:  append([]graph.NodeID(nil), p.InputDataNodeIDs...),
		OutputDataNodeIDs: append([]graph.NodeID(nil), p.OutputDataNodeIDs...),
		EmitTemplate:      tmpl,
	}, nil
}

// InstrPatternFromWire is the inverse of InstrPatternToWire.
func InstrPatternFromWire(w InstrPattern) (target.InstrPattern, error) {
	os, err := OpStructFromWire(w.OpStructure)
	if err != nil {
		return target.InstrPattern{}, fmt.Errorf("op-structure: %w", err)
	}

	tmpl, err := emitTemplateFromWire(w.EmitTemplate)
	if err != nil {
		return target.InstrPattern{}, fmt.Errorf("emit-template: %w", err)
	}

	return target.InstrPattern{
		ID:                w.ID,
		OpStructure:       os,
		InputDataNodeIDs:  append([]graph.NodeID(nil), w.InputDataNodeIDs...),
		OutputDataNodeIDs: append([]graph.NodeID(nil), w.OutputDataNodeIDs...),
		EmitTemplate:      tmpl,
	}, nil
}

// TargetMachineToWire converts a target.TargetMachine to its wire form.
func TargetMachineToWire(m target.TargetMachine) (TargetMachine, error) {
	instrs := make(map[target.InstrID]Instruction, len(m.Instructions))

	for id, instr := range m.Instructions {
		patterns := make([]InstrPattern, len(instr.Patterns))

		for i, p := range instr.Patterns {
			w, err := InstrPatternToWire(p)
			if err != nil {
				return TargetMachine{}, fmt.Errorf("instruction %d, pattern %d: %w", id, i, err)
			}

			patterns[i] = w
		}

		instrs[id] = Instruction{
			ID:       instr.ID,
			Patterns: patterns,
			Properties: InstrProperties{
				CodeSize:   instr.Properties.CodeSize,
				Latency:    instr.Properties.Latency,
				IsCopy:     instr.Properties.IsCopy,
				IsInactive: instr.Properties.IsInactive,
				IsNull:     instr.Properties.IsNull,
				IsPhi:      instr.Properties.IsPhi,
				IsSIMD:     instr.Properties.IsSIMD,
			},
		}
	}

	locs := make(map[target.LocationID]Location, len(m.Locations))
	for id, loc := range m.Locations {
		locs[id] = Location{ID: loc.ID, Name: loc.Name, OptionalFixedValue: loc.OptionalFixedValue}
	}

	return TargetMachine{
		ID:               m.ID,
		Instructions:     instrs,
		Locations:        locs,
		PointerSize:      m.PointerSize,
		NullPointerValue: m.NullPointerValue,
	}, nil
}

// TargetMachineFromWire is the inverse of TargetMachineToWire.
func TargetMachineFromWire(w TargetMachine) (target.TargetMachine, error) {
	m := target.New(w.ID, w.PointerSize, w.NullPointerValue)

	for id, instr := range w.Instructions {
		patterns := make([]target.InstrPattern, len(instr.Patterns))

		for i, p := range instr.Patterns {
			ip, err := InstrPatternFromWire(p)
			if err != nil {
				return target.TargetMachine{}, fmt.Errorf("instruction %d, pattern %d: %w", id, i, err)
			}

			patterns[i] = ip
		}

		m = m.WithInstruction(target.Instruction{
			ID:       instr.ID,
			Patterns: patterns,
			Properties: target.InstrProperties{
				CodeSize:   instr.Properties.CodeSize,
				Latency:    instr.Properties.Latency,
				IsCopy:     instr.Properties.IsCopy,
				IsInactive: instr.Properties.IsInactive,
				IsNull:     instr.Properties.IsNull,
				IsPhi:      instr.Properties.IsPhi,
				IsSIMD:     instr.Properties.IsSIMD,
			},
		})
	}

	for _, loc := range w.Locations {
		m = m.WithLocation(target.Location{ID: loc.ID, Name: loc.Name, OptionalFixedValue: loc.OptionalFixedValue})
	}

	return m, nil
}
