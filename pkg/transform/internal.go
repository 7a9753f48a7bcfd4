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
	"math/big"

	"github.com/opselect/isel/pkg/graph"
)

// dataFlowIn returns ref's DataFlow in-neighbours, ordered by in-edge
// number (operand position).
func dataFlowIn(g graph.Graph, ref graph.NodeRef) []graph.NodeRef {
	edges := g.SortByEdgeNumber(g.InEdges(ref, graph.EdgeKindPtr(graph.DataFlow)), graph.In)

	out := make([]graph.NodeRef, len(edges))
	for i, e := range edges {
		out[i] = g.Edge(e).Src
	}

	return out
}

// dataFlowOut returns ref's DataFlow out-neighbours, ordered by out-edge
// number.
func dataFlowOut(g graph.Graph, ref graph.NodeRef) []graph.NodeRef {
	edges := g.SortByEdgeNumber(g.OutEdges(ref, graph.EdgeKindPtr(graph.DataFlow)), graph.Out)

	out := make([]graph.NodeRef, len(edges))
	for i, e := range edges {
		out[i] = g.Edge(e).Dst
	}

	return out
}

// convertToCopyEliding rewrites comp into a Copy node, dropping its
// DataFlow-in edge from elide. Used by both canonicalize-copies (eliding an
// identity-constant operand) and remove-redundant-conversions (eliding a
// full-width mask operand).
func convertToCopyEliding(g graph.Graph, comp, elide graph.NodeRef) graph.Graph {
	edges := g.EdgesBetween(elide, comp)
	for _, e := range edges {
		g = g.DeleteEdge(e)
	}

	return g.ReplaceKind(comp, graph.Copy{})
}

// intConstIdentity reports whether kind is a Value{IntConstType} pinned to
// exactly value.
func intConstIdentity(kind graph.NodeKind, value int64) bool {
	v, ok := kind.(graph.Value)
	if !ok {
		return false
	}

	ic, ok := v.DataType.(graph.IntConstType)
	if !ok {
		return false
	}

	want := big.NewInt(value)

	return ic.Range.Lo.Cmp(want) == 0 && ic.Range.Hi.Cmp(want) == 0
}

// intConstIdentityBig reports whether kind is a Value{IntConstType} pinned
// to exactly value.
func intConstIdentityBig(kind graph.NodeKind, value big.Int) bool {
	v, ok := kind.(graph.Value)
	if !ok {
		return false
	}

	ic, ok := v.DataType.(graph.IntConstType)
	if !ok {
		return false
	}

	return ic.Range.Lo.Cmp(&value) == 0 && ic.Range.Hi.Cmp(&value) == 0
}

// fullMask returns the unsigned all-ones value of the given bit width.
func fullMask(bits uint) big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), bits)
	mask.Sub(mask, big.NewInt(1))

	return *mask
}

// bitsOf returns the bit width of an integer-typed DataType, if it names
// one.
func bitsOf(dt graph.DataType) (uint, bool) {
	switch t := dt.(type) {
	case graph.IntTempType:
		return t.Bits, true
	case graph.IntConstType:
		if t.HasBits {
			return t.Bits, true
		}
	}

	return 0, false
}
