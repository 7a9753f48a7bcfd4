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

// RemoveRedundantConversions folds a ZExt/SExt immediately followed by an
// And/XOr against a mask equal to (1<<original_bits)-1 into a Copy of the
// extended value, eliding the mask operand — the extension itself is left
// in place.
func RemoveRedundantConversions(g graph.Graph) graph.Graph {
	for _, ref := range g.Nodes() {
		comp, ok := g.Kind(ref).(graph.Computation)
		if !ok || (comp.Op != graph.OpAnd && comp.Op != graph.OpXor) {
			continue
		}

		operands := dataFlowIn(g, ref)
		if len(operands) != 2 {
			continue
		}

		for i := 0; i < 2; i++ {
			extOperand, maskOperand := operands[i], operands[1-i]

			origBits, ok := extensionSourceBits(g, extOperand)
			if !ok {
				continue
			}

			mask := fullMask(origBits)
			if intConstIdentityBig(g.Kind(maskOperand), mask) {
				g = convertToCopyEliding(g, ref, maskOperand)
				break
			}
		}
	}

	return g
}

// extensionSourceBits reports the bit width of a ZExt/SExt node's own
// operand, if ref is one or is the value node such a node defines.
func extensionSourceBits(g graph.Graph, ref graph.NodeRef) (uint, bool) {
	if _, isValue := g.Kind(ref).(graph.Value); isValue {
		defs := dataFlowIn(g, ref)
		if len(defs) != 1 {
			return 0, false
		}

		ref = defs[0]
	}

	comp, ok := g.Kind(ref).(graph.Computation)
	if !ok || (comp.Op != graph.OpZExt && comp.Op != graph.OpSExt) {
		return 0, false
	}

	ins := dataFlowIn(g, ref)
	if len(ins) != 1 {
		return 0, false
	}

	return bitsOf(valueDataType(g, ins[0]))
}
