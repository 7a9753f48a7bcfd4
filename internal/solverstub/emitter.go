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
package solverstub

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/target"
)

// Emitter is a plain-text reference implementation of emit.Emitter: one
// line per selected match naming its block allocation, and one line per
// value node naming its assigned location or immediate value. It makes no
// attempt to walk a target instruction's EmitStringTemplate; real assembly
// text emission is out of scope.
type Emitter struct{}

// NewEmitter returns the stub Emitter.
func NewEmitter() Emitter {
	return Emitter{}
}

// Emit implements emit.Emitter.
func (Emitter) Emit(sol lower.HighLevelSolution, machine target.TargetMachine) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "; target %s\n", machine.ID)

	for _, id := range sol.OrderOfBBs {
		fmt.Fprintf(&b, "block %d:\n", id)

		for _, alloc := range sol.BlockAllocsForSelMatches {
			if alloc.Block != id {
				continue
			}

			fmt.Fprintf(&b, "  match %d\n", alloc.MatchID)
		}
	}

	nodes := make([]uint64, 0, len(sol.RegsOfValueNodes)+len(sol.ImmValuesOfValueNodes))
	seen := map[uint64]bool{}

	for n := range sol.RegsOfValueNodes {
		if !seen[uint64(n)] {
			seen[uint64(n)] = true
			nodes = append(nodes, uint64(n))
		}
	}

	for n := range sol.ImmValuesOfValueNodes {
		if !seen[uint64(n)] {
			seen[uint64(n)] = true
			nodes = append(nodes, uint64(n))
		}
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	for _, n := range nodes {
		if loc, ok := sol.RegsOfValueNodes[graph.NodeID(n)]; ok {
			if l, err := machine.Location(loc); err == nil {
				fmt.Fprintf(&b, "; node %d -> %s\n", n, l.Name)
			} else {
				fmt.Fprintf(&b, "; node %d -> loc %d\n", n, loc)
			}
		}

		if v, ok := sol.ImmValuesOfValueNodes[graph.NodeID(n)]; ok {
			fmt.Fprintf(&b, "; node %d = %d\n", n, v)
		}
	}

	fmt.Fprintf(&b, "; cost %g\n", sol.Cost)

	return b.String(), nil
}
