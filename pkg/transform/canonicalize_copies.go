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

import "github.com/opselect/isel/pkg/graph"

// identityOperand names, per computation operator, the constant value an
// operand must equal for the other operand to pass straight through.
var identityOperand = map[graph.ComputeOp]int64{
	graph.OpAdd: 0,
	graph.OpMul: 1,
	graph.OpOr:  0,
	graph.OpAnd: -1,
}

// CanonicalizeCopies rewrites every add/mul/or/and computation with one
// operand equal to that operator's identity constant into a Copy node,
// eliding the identity operand.
func CanonicalizeCopies(g graph.Graph) graph.Graph {
	for _, ref := range g.Nodes() {
		comp, ok := g.Kind(ref).(graph.Computation)
		if !ok {
			continue
		}

		identity, ok := identityOperand[comp.Op]
		if !ok {
			continue
		}

		operands := dataFlowIn(g, ref)

		for _, operand := range operands {
			if intConstIdentity(g.Kind(operand), identity) {
				g = convertToCopyEliding(g, ref, operand)
				break
			}
		}
	}

	return g
}
