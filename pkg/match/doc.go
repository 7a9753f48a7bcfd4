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

// Package match is the subgraph isomorphism engine: VF2 extended with
// domain-specific node/edge compatibility, a block-duplication pre-pass, a
// cyclic-data-dependency post-filter, duplicate-match removal, and SIMD
// pattern composition over scalar matches.
//
// Edge ordering (DoEdgesMatch) is checked once, against a completed
// candidate mapping, rather than incrementally during the VF2 search. This
// trades some search-tree pruning for a much simpler recursive core; it
// changes nothing about which matches are ultimately produced, since a
// complete mapping is validated in full regardless of when the check runs,
// and the matcher is explicitly not required to be the fastest possible
// implementation (only the function graphs involved are function-sized).
// Likewise, the classical VF2 "look-ahead" (1-level neighbour-count) pruning
// rule is omitted: every complete mapping is still fully validated by
// DoNodesMatch and DoEdgesMatch, so omitting a pruning-only rule cannot
// change the result set, only the size of the search tree.
package match
