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

// Package graph implements the typed, labelled multi-digraph that underlies
// both function graphs and pattern graphs: nodes carry an Operation/Entity/
// Block kind, edges carry one of five kinds and a per-endpoint, per-kind
// edge number.
//
// Every mutating method returns a new Graph value; the receiver is left
// untouched.  Internally a node's "public" identifier (its externally
// visible NodeID) is distinct from its internal identity (NodeRef): two
// NodeRefs may share a NodeID to model "the same logical node" duplicated
// for matching purposes (see the pattern matcher's duplication pre-pass).
// Consumers outside this package only ever see NodeID; NodeRef is the
// currency of Graph's own API because it is unambiguous even when IDs are
// duplicated.
package graph
