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

// Package opstruct is a thin container around a graph plus the metadata a
// pattern or function needs for constraint-based instruction selection: an
// optional entry block, per-value location hints, a constraint-expression
// list, and same-location equivalence pairs. Every mutating method returns a
// new OpStruct value, following the graph package's functional style.
package opstruct

import (
	"fmt"

	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
)

// OpStruct is a graph plus its associated constraint metadata.
type OpStruct struct {
	Graph             graph.Graph
	EntryBlock        *graph.NodeID
	ValidLocations    map[graph.NodeID][]uint64
	Constraints       []constraint.BoolExpr
	SameLocationPairs [][2]graph.NodeID
}

// New wraps g in an empty OpStruct: no entry block, no location hints, no
// constraints.
func New(g graph.Graph) OpStruct {
	return OpStruct{Graph: g, ValidLocations: map[graph.NodeID][]uint64{}}
}

func (o OpStruct) clone() OpStruct {
	locs := make(map[graph.NodeID][]uint64, len(o.ValidLocations))
	for k, v := range o.ValidLocations {
		locs[k] = append([]uint64(nil), v...)
	}

	return OpStruct{
		Graph:             o.Graph,
		EntryBlock:        o.EntryBlock,
		ValidLocations:    locs,
		Constraints:       append([]constraint.BoolExpr(nil), o.Constraints...),
		SameLocationPairs: append([][2]graph.NodeID(nil), o.SameLocationPairs...),
	}
}

func (o OpStruct) nodeIDSet() map[uint64]bool {
	ids := make(map[uint64]bool, len(o.Graph.Nodes()))
	for _, ref := range o.Graph.Nodes() {
		ids[uint64(o.Graph.PublicID(ref))] = true
	}

	return ids
}

// checkIdentifiers enforces the OpStruct invariant that every node or block
// identifier mentioned by c already names a node present in the graph. A
// violation is a precondition violation: fatal, naming the operation and the
// offending ID.
func (o OpStruct) checkIdentifiers(op string, c constraint.BoolExpr) {
	known := o.nodeIDSet()

	for _, id := range c.FreeIdentifiers().ToSlice() {
		if id.Sort != constraint.SortNode && id.Sort != constraint.SortBlock {
			continue
		}

		if !known[id.Value] {
			panic(fmt.Sprintf("opstruct: %s: node %d is not present in the graph", op, id.Value))
		}
	}
}

// WithEntryBlock returns a copy of o with its entry block set.
func (o OpStruct) WithEntryBlock(block graph.NodeID) OpStruct {
	next := o.clone()
	b := block
	next.EntryBlock = &b

	return next
}

// WithValidLocations returns a copy of o recording that value may be placed
// in any of locations.
func (o OpStruct) WithValidLocations(value graph.NodeID, locations []uint64) OpStruct {
	next := o.clone()
	next.ValidLocations[value] = append([]uint64(nil), locations...)

	return next
}

// AddConstraint appends one constraint root, after validating it references
// only nodes present in the graph.
func (o OpStruct) AddConstraint(c constraint.BoolExpr) OpStruct {
	o.checkIdentifiers("add_constraint", c)

	next := o.clone()
	next.Constraints = append(next.Constraints, c)

	return next
}

// AddConstraints appends every constraint in cs, in order.
func (o OpStruct) AddConstraints(cs []constraint.BoolExpr) OpStruct {
	next := o
	for _, c := range cs {
		next = next.AddConstraint(c)
	}

	return next
}

// AddSameLocationPair records that a and b must end up in the same location.
func (o OpStruct) AddSameLocationPair(a, b graph.NodeID) OpStruct {
	known := o.nodeIDSet()
	if !known[uint64(a)] || !known[uint64(b)] {
		panic(fmt.Sprintf("opstruct: add_same_location_pair: node %d or %d is not present in the graph", a, b))
	}

	next := o.clone()
	next.SameLocationPairs = append(next.SameLocationPairs, [2]graph.NodeID{a, b})

	return next
}
