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
	"math/big"
	"sort"

	"github.com/opselect/isel/pkg/graph"
)

// Node is the wire form of one graph.NodeKind. Kind selects which of the
// remaining fields apply; a Graph's node array is ordered by public NodeID
// (0, 1, 2, …), which is how a freshly-parsed function.json establishes
// public IDs on the graph it builds — this codec is not meant to round-trip
// a graph produced mid-transformation, where public IDs may repeat or skip.
type Node struct {
	Kind string `json:"kind"`

	// Value
	DataType DataType `json:"data-type,omitempty"`
	Origin   []string `json:"origin,omitempty"`

	// Computation
	Op string `json:"op,omitempty"`

	// Control
	ControlOp string `json:"control-op,omitempty"`

	// Call
	Fn string `json:"fn,omitempty"`

	// Block
	Name string `json:"name,omitempty"`
}

// DataType is the wire form of one graph.DataType.
type DataType struct {
	Kind string `json:"kind"`

	Bits    uint `json:"bits,omitempty"`
	HasBits bool `json:"has-bits,omitempty"`

	RangeLo string `json:"range-lo,omitempty"`
	RangeHi string `json:"range-hi,omitempty"`

	// Variant is populated only for Kind == "pointer": "null", "temp" or
	// "const" (the latter using RangeLo/RangeHi).
	Variant string `json:"variant,omitempty"`
}

// Edge is the wire form of one graph edge, endpoints named by the public
// NodeID (array index) of the nodes they connect.
type Edge struct {
	Kind string       `json:"kind"`
	Src  graph.NodeID `json:"src"`
	Dst  graph.NodeID `json:"dst"`
}

// Graph is the wire form of a graph.Graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// GraphToWire converts g to its wire form. It requires g's public NodeIDs to
// be exactly {0, …, len(Nodes())-1}, i.e. an untransformed, freshly-built
// graph — the shape the CLI reads and writes for function.json.
func GraphToWire(g graph.Graph) (Graph, error) {
	refs := g.Nodes()

	byID := make(map[graph.NodeID]graph.NodeRef, len(refs))
	for _, ref := range refs {
		byID[g.PublicID(ref)] = ref
	}

	nodes := make([]Node, len(refs))

	for i := range nodes {
		ref, ok := byID[graph.NodeID(i)]
		if !ok {
			return Graph{}, fmt.Errorf("wire: graph has no node with public id %d (public ids must be dense)", i)
		}

		n, err := nodeToWire(g.Kind(ref))
		if err != nil {
			return Graph{}, fmt.Errorf("wire: node %d: %w", i, err)
		}

		nodes[i] = n
	}

	// Edges() iterates in map order; sort by ref (assigned in creation
	// order by AddEdge) so GraphFromWire reconstructs each node's OutNum/
	// InNum sequences in their original relative order.
	edgeRefs := g.Edges()
	sort.Slice(edgeRefs, func(i, j int) bool { return edgeRefs[i] < edgeRefs[j] })

	edges := make([]Edge, len(edgeRefs))

	for i, ref := range edgeRefs {
		e := g.Edge(ref)
		edges[i] = Edge{
			Kind: edgeKindToWire(e.Kind),
			Src:  g.PublicID(e.Src),
			Dst:  g.PublicID(e.Dst),
		}
	}

	return Graph{Nodes: nodes, Edges: edges}, nil
}

// GraphFromWire builds a fresh graph.Graph from its wire form, assigning
// nodes public IDs 0, …, len(Nodes())-1 in array order (AddNode's default
// dense-ID assignment does this automatically).
func GraphFromWire(w Graph) (graph.Graph, error) {
	g := graph.New()
	refs := make([]graph.NodeRef, len(w.Nodes))

	for i, n := range w.Nodes {
		kind, err := nodeFromWire(n)
		if err != nil {
			return graph.Graph{}, fmt.Errorf("wire: node %d: %w", i, err)
		}

		var ref graph.NodeRef

		ref, g = g.AddNode(kind)
		refs[i] = ref
	}

	for i, e := range w.Edges {
		kind, err := edgeKindFromWire(e.Kind)
		if err != nil {
			return graph.Graph{}, fmt.Errorf("wire: edge %d: %w", i, err)
		}

		if int(e.Src) >= len(refs) || int(e.Dst) >= len(refs) {
			return graph.Graph{}, fmt.Errorf("wire: edge %d: endpoint out of range", i)
		}

		_, g = g.AddEdge(kind, refs[e.Src], refs[e.Dst])
	}

	return g, nil
}

func edgeKindToWire(k graph.EdgeKind) string {
	switch k {
	case graph.DataFlow:
		return "dataflow"
	case graph.ControlFlow:
		return "controlflow"
	case graph.StateFlow:
		return "stateflow"
	case graph.DefPlacement:
		return "defplacement"
	case graph.ReuseEdge:
		return "reuse"
	default:
		return "unknown"
	}
}

func edgeKindFromWire(s string) (graph.EdgeKind, error) {
	switch s {
	case "dataflow":
		return graph.DataFlow, nil
	case "controlflow":
		return graph.ControlFlow, nil
	case "stateflow":
		return graph.StateFlow, nil
	case "defplacement":
		return graph.DefPlacement, nil
	case "reuse":
		return graph.ReuseEdge, nil
	default:
		return 0, fmt.Errorf("unrecognized edge kind %q", s)
	}
}

func nodeToWire(kind graph.NodeKind) (Node, error) {
	switch k := kind.(type) {
	case graph.Value:
		dt, err := dataTypeToWire(k.DataType)
		if err != nil {
			return Node{}, err
		}

		return Node{Kind: "value", DataType: dt, Origin: k.Origin}, nil
	case graph.State:
		return Node{Kind: "state"}, nil
	case graph.Block:
		return Node{Kind: "block", Name: k.Name}, nil
	case graph.Computation:
		return Node{Kind: "computation", Op: string(k.Op)}, nil
	case graph.Control:
		return Node{Kind: "control", ControlOp: string(k.Op)}, nil
	case graph.Call:
		return Node{Kind: "call", Fn: k.Fn}, nil
	case graph.IndirCall:
		return Node{Kind: "indircall"}, nil
	case graph.Phi:
		return Node{Kind: "phi"}, nil
	case graph.Copy:
		return Node{Kind: "copy"}, nil
	case graph.Reuse:
		return Node{Kind: "reuse"}, nil
	default:
		return Node{}, fmt.Errorf("unrecognized node kind %T", kind)
	}
}

func nodeFromWire(n Node) (graph.NodeKind, error) {
	switch n.Kind {
	case "value":
		dt, err := dataTypeFromWire(n.DataType)
		if err != nil {
			return nil, err
		}

		return graph.Value{DataType: dt, Origin: n.Origin}, nil
	case "state":
		return graph.State{}, nil
	case "block":
		return graph.Block{Name: n.Name}, nil
	case "computation":
		return graph.Computation{Op: graph.ComputeOp(n.Op)}, nil
	case "control":
		return graph.Control{Op: graph.ControlOp(n.ControlOp)}, nil
	case "call":
		return graph.Call{Fn: n.Fn}, nil
	case "indircall":
		return graph.IndirCall{}, nil
	case "phi":
		return graph.Phi{}, nil
	case "copy":
		return graph.Copy{}, nil
	case "reuse":
		return graph.Reuse{}, nil
	default:
		return nil, fmt.Errorf("unrecognized node kind %q", n.Kind)
	}
}

func dataTypeToWire(dt graph.DataType) (DataType, error) {
	switch t := dt.(type) {
	case graph.AnyType:
		return DataType{Kind: "any"}, nil
	case graph.VoidType:
		return DataType{Kind: "void"}, nil
	case graph.IntTempType:
		return DataType{Kind: "int-temp", Bits: t.Bits}, nil
	case graph.IntConstType:
		return DataType{
			Kind:    "int-const",
			Bits:    t.Bits,
			HasBits: t.HasBits,
			RangeLo: t.Range.Lo.String(),
			RangeHi: t.Range.Hi.String(),
		}, nil
	case graph.PointerType:
		switch v := t.Variant.(type) {
		case graph.PointerNull:
			return DataType{Kind: "pointer", Variant: "null"}, nil
		case graph.PointerTemp:
			return DataType{Kind: "pointer", Variant: "temp"}, nil
		case graph.PointerConst:
			return DataType{
				Kind:    "pointer",
				Variant: "const",
				RangeLo: v.Range.Lo.String(),
				RangeHi: v.Range.Hi.String(),
			}, nil
		default:
			return DataType{}, fmt.Errorf("unrecognized pointer variant %T", t.Variant)
		}
	default:
		return DataType{}, fmt.Errorf("unrecognized data type %T", dt)
	}
}

func dataTypeFromWire(dt DataType) (graph.DataType, error) {
	switch dt.Kind {
	case "any":
		return graph.AnyType{}, nil
	case "void":
		return graph.VoidType{}, nil
	case "int-temp":
		return graph.IntTempType{Bits: dt.Bits}, nil
	case "int-const":
		rng, err := parseInterval(dt.RangeLo, dt.RangeHi)
		if err != nil {
			return nil, err
		}

		return graph.IntConstType{Range: rng, Bits: dt.Bits, HasBits: dt.HasBits}, nil
	case "pointer":
		switch dt.Variant {
		case "null":
			return graph.PointerType{Variant: graph.PointerNull{}}, nil
		case "temp":
			return graph.PointerType{Variant: graph.PointerTemp{}}, nil
		case "const":
			rng, err := parseInterval(dt.RangeLo, dt.RangeHi)
			if err != nil {
				return nil, err
			}

			return graph.PointerType{Variant: graph.PointerConst{Range: rng}}, nil
		default:
			return nil, fmt.Errorf("unrecognized pointer variant %q", dt.Variant)
		}
	default:
		return nil, fmt.Errorf("unrecognized data type kind %q", dt.Kind)
	}
}

func parseInterval(lo, hi string) (graph.Interval, error) {
	var l, h big.Int

	if _, ok := l.SetString(lo, 10); !ok {
		return graph.Interval{}, fmt.Errorf("invalid range-lo %q", lo)
	}

	if _, ok := h.SetString(hi, 10); !ok {
		return graph.Interval{}, fmt.Errorf("invalid range-hi %q", hi)
	}

	return graph.Interval{Lo: l, Hi: h}, nil
}
