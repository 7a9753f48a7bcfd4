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
package transform

import (
	"fmt"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
)

// LowerPointers rewrites every pointer-typed value node of o into an
// integer-typed one of the target's pointerSize, then rewrites every
// surviving IntToPtr/PtrToInt cast: a cast whose two sides already agree in
// width is deleted outright, merging its operand and result value nodes;
// one where they disagree becomes a ZExt or Trunc computation, by comparing
// bit widths. nullPointerValue binds the unique Pointer-null value node's
// replacement constant.
func LowerPointers(o opstruct.OpStruct, pointerSize uint, nullPointerValue int64) opstruct.OpStruct {
	g := o.Graph

	for _, ref := range g.Nodes() {
		v, ok := g.Kind(ref).(graph.Value)
		if !ok {
			continue
		}

		pt, ok := v.DataType.(graph.PointerType)
		if !ok {
			continue
		}

		g = g.ReplaceKind(ref, graph.Value{DataType: pointerReplacementType(pt, pointerSize, nullPointerValue), Origin: v.Origin})
	}

	for _, ref := range g.Nodes() {
		if !g.IsInGraph(ref) {
			continue
		}

		comp, ok := g.Kind(ref).(graph.Computation)
		if !ok || (comp.Op != graph.OpIntToPtr && comp.Op != graph.OpPtrToInt) {
			continue
		}

		ins := dataFlowIn(g, ref)
		outs := dataFlowOut(g, ref)

		if len(ins) != 1 || len(outs) != 1 {
			panic(fmt.Sprintf("transform: lower_pointers: cast node %d must have exactly one operand and one result", ref))
		}

		srcBits, ok := bitsOf(valueDataType(g, ins[0]))
		if !ok {
			panic(fmt.Sprintf("transform: lower_pointers: cast node %d operand has no known bit width", ref))
		}

		dstBits, ok := bitsOf(valueDataType(g, outs[0]))
		if !ok {
			panic(fmt.Sprintf("transform: lower_pointers: cast node %d result has no known bit width", ref))
		}

		switch {
		case srcBits == dstBits:
			g = g.MergeNodes(ins[0], outs[0])
			g = g.DeleteNode(ref)
		case srcBits < dstBits:
			g = g.ReplaceKind(ref, graph.Computation{Op: graph.OpZExt})
		default:
			g = g.ReplaceKind(ref, graph.Computation{Op: graph.OpTrunc})
		}
	}

	o.Graph = g

	return o
}

func valueDataType(g graph.Graph, ref graph.NodeRef) graph.DataType {
	v, ok := g.Kind(ref).(graph.Value)
	if !ok {
		panic(fmt.Sprintf("transform: lower_pointers: node %d is not a value node", ref))
	}

	return v.DataType
}

func pointerReplacementType(pt graph.PointerType, pointerSize uint, nullPointerValue int64) graph.DataType {
	switch v := pt.Variant.(type) {
	case graph.PointerTemp:
		return graph.IntTempType{Bits: pointerSize}
	case graph.PointerNull:
		return graph.IntConstType{Range: graph.NewInterval64(nullPointerValue, nullPointerValue), Bits: pointerSize, HasBits: true}
	case graph.PointerConst:
		return graph.IntConstType{Range: v.Range, Bits: pointerSize, HasBits: true}
	default:
		panic(fmt.Sprintf("transform: lower_pointers: unknown pointer variant %T", pt.Variant))
	}
}
