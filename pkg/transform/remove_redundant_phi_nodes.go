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

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/opstruct"
)

// RemoveRedundantPhiNodes deletes every Phi node with a single data-flow
// input, merging its input value and output value under the input's public
// ID and rewriting every constraint, same-location pair, and valid-location
// entry naming the discarded output ID to name the surviving one instead.
func RemoveRedundantPhiNodes(o opstruct.OpStruct) opstruct.OpStruct {
	g := o.Graph

	for _, ref := range g.Nodes() {
		if !g.IsInGraph(ref) {
			continue
		}

		if _, ok := g.Kind(ref).(graph.Phi); !ok {
			continue
		}

		ins := dataFlowIn(g, ref)
		if len(ins) != 1 {
			continue
		}

		outs := dataFlowOut(g, ref)
		if len(outs) != 1 {
			panic(fmt.Sprintf("transform: remove_redundant_phi_nodes: phi %d must have exactly one output value", ref))
		}

		keep, discard := ins[0], outs[0]
		keepID, discardID := g.PublicID(keep), g.PublicID(discard)

		g = g.MergeNodes(keep, discard)
		g = g.DeleteNode(ref)

		o.Graph = g
		o = renameNodeID(o, discardID, keepID)
		g = o.Graph
	}

	return o
}

// renameNodeID rewrites every constraint, same-location pair, and
// valid-location entry of o naming from to name to instead.
func renameNodeID(o opstruct.OpStruct, from, to graph.NodeID) opstruct.OpStruct {
	r := constraint.Reconstructor{
		MkNodeExpr: func(e constraint.NodeExpr) constraint.NodeExpr {
			id, ok := e.(constraint.ANodeIDExpr)
			if !ok || id.ID != uint64(from) {
				return e
			}

			return constraint.ANodeIDExpr{ID: uint64(to)}
		},
		MkBlockExpr: func(e constraint.BlockExpr) constraint.BlockExpr {
			id, ok := e.(constraint.ABlockIDExpr)
			if !ok || id.ID != uint64(from) {
				return e
			}

			return constraint.ABlockIDExpr{ID: uint64(to)}
		},
	}

	constraints := make([]constraint.BoolExpr, len(o.Constraints))
	for i, c := range o.Constraints {
		constraints[i] = r.RebuildBool(c)
	}

	pairs := make([][2]graph.NodeID, len(o.SameLocationPairs))
	for i, p := range o.SameLocationPairs {
		pairs[i] = [2]graph.NodeID{renameOne(p[0], from, to), renameOne(p[1], from, to)}
	}

	locations := make(map[graph.NodeID][]uint64, len(o.ValidLocations))

	for id, locs := range o.ValidLocations {
		locations[renameOne(id, from, to)] = locs
	}

	entry := o.EntryBlock
	if entry != nil && *entry == from {
		renamed := to
		entry = &renamed
	}

	return opstruct.OpStruct{
		Graph:             o.Graph,
		EntryBlock:        entry,
		ValidLocations:    locations,
		Constraints:       constraints,
		SameLocationPairs: pairs,
	}
}

func renameOne(id, from, to graph.NodeID) graph.NodeID {
	if id == from {
		return to
	}

	return id
}
