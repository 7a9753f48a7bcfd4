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
package match

import "github.com/opselect/isel/pkg/graph"

// refOfID resolves a public node ID to its internal ref within g. Used only
// by the post-matching analyses (cyclic-dependency filter, SIMD
// composition), which operate on matches expressed in public IDs but need
// to re-enter the graph to walk edges.
func refOfID(g graph.Graph, id graph.NodeID) (graph.NodeRef, bool) {
	for _, r := range g.Nodes() {
		if g.PublicID(r) == id {
			return r, true
		}
	}

	return 0, false
}
