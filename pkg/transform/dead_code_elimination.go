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

// EliminateDeadCode repeatedly deletes Value nodes with no DataFlow-out
// consumer, unless they are the result of a Call or IndirCall (kept for
// their side effects even when unused). Deleting a value also deletes the
// operation that defines it and, transitively, that operation's own
// now-unused operands — iterated to a fixed point.
func EliminateDeadCode(g graph.Graph) graph.Graph {
	for {
		dead, ok := nextDeadValue(g)
		if !ok {
			return g
		}

		g = removeValueAndDefiner(g, dead)
	}
}

// nextDeadValue returns one Value node with no DataFlow-out edge whose
// definer is neither a Call nor an IndirCall, if any remain.
func nextDeadValue(g graph.Graph) (graph.NodeRef, bool) {
	for _, ref := range g.Nodes() {
		if _, ok := g.Kind(ref).(graph.Value); !ok {
			continue
		}

		if len(dataFlowOut(g, ref)) > 0 {
			continue
		}

		if hasSideEffectingDefiner(g, ref) {
			continue
		}

		return ref, true
	}

	return 0, false
}

// hasSideEffectingDefiner reports whether any DataFlow-in producer of ref is
// a Call or IndirCall.
func hasSideEffectingDefiner(g graph.Graph, ref graph.NodeRef) bool {
	for _, producer := range dataFlowIn(g, ref) {
		switch g.Kind(producer).(type) {
		case graph.Call, graph.IndirCall:
			return true
		}
	}

	return false
}

// removeValueAndDefiner deletes value and every operation node that defines
// it via a DataFlow-in edge; DeleteNode also removes their incident
// DefPlacement edges.
func removeValueAndDefiner(g graph.Graph, value graph.NodeRef) graph.Graph {
	definers := dataFlowIn(g, value)

	g = g.DeleteNode(value)
	for _, definer := range definers {
		if g.IsInGraph(definer) {
			g = g.DeleteNode(definer)
		}
	}

	return g
}
