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

import "github.com/opselect/isel/pkg/graph"

// EmitPart is one piece of one line of an EmitStringTemplate. Implemented as
// a closed interface in the style of pkg/graph.NodeKind and
// pkg/constraint's per-sort expressions, since Go has no sum types.
type EmitPart interface {
	isEmitPart()
	// ReferencedNode reports the pattern node this part refers to, if any.
	// Verbatim and LocalTemporary parts reference no pattern node.
	ReferencedNode() (graph.NodeID, bool)
}

// Verbatim is printed unchanged.
type Verbatim struct{ Text string }

func (Verbatim) isEmitPart() {}
func (Verbatim) ReferencedNode() (graph.NodeID, bool) { return 0, false }

// IntConstOf prints the integer value bound to pattern node Node (an
// IntConst value node).
type IntConstOf struct{ Node graph.NodeID }

func (IntConstOf) isEmitPart() {}
func (p IntConstOf) ReferencedNode() (graph.NodeID, bool) { return p.Node, true }

// LocationOf prints the storage location assigned to pattern node Node.
type LocationOf struct{ Node graph.NodeID }

func (LocationOf) isEmitPart() {}
func (p LocationOf) ReferencedNode() (graph.NodeID, bool) { return p.Node, true }

// NameOfBlock prints the assembler-visible name of block Node.
type NameOfBlock struct{ Node graph.NodeID }

func (NameOfBlock) isEmitPart() {}
func (p NameOfBlock) ReferencedNode() (graph.NodeID, bool) { return p.Node, true }

// BlockOf prints the name of the block a value/state node Node is defined
// in.
type BlockOf struct{ Node graph.NodeID }

func (BlockOf) isEmitPart() {}
func (p BlockOf) ReferencedNode() (graph.NodeID, bool) { return p.Node, true }

// LocalTemporary prints a freshly-uniqued temporary name, scoped to one
// emission of one template. Two LocalTemporary parts with the same Index
// within the same template resolve to the same uniqued name; different
// templates (or different selected matches of the same template) never
// share a uniqued name.
type LocalTemporary struct{ Index uint }

func (LocalTemporary) isEmitPart() {}
func (LocalTemporary) ReferencedNode() (graph.NodeID, bool) { return 0, false }

// FuncOfCall prints the callee name of a Call node Node.
type FuncOfCall struct{ Node graph.NodeID }

func (FuncOfCall) isEmitPart() {}
func (p FuncOfCall) ReferencedNode() (graph.NodeID, bool) { return p.Node, true }

// EmitLine is one ordered sequence of parts, concatenated with no
// separator at emission time.
type EmitLine []EmitPart

// EmitStringTemplate is an ordered sequence of lines an InstrPattern expands
// into once a match has been placed and its nodes resolved to locations.
type EmitStringTemplate struct {
	Lines []EmitLine
}

// ReferencedNodes returns, in template order, every pattern NodeID named by
// some part of t (duplicates included, verbatim/local-temporary parts
// skipped). Used by the model builder to compute each match's emission
// template node-map (spec.md §4.5).
func (t EmitStringTemplate) ReferencedNodes() []graph.NodeID {
	var out []graph.NodeID

	for _, line := range t.Lines {
		for _, part := range line {
			if n, ok := part.ReferencedNode(); ok {
				out = append(out, n)
			}
		}
	}

	return out
}
