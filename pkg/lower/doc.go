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

// Package lower translates between model.HighLevelModel, whose fields are
// keyed by opaque public IDs, and the dense array-index form an external
// solver consumes. Lower builds the idmap.Maplists bijection and rewrites
// every ID-keyed list and constraint into array-index form; Raise takes a
// solver's LowLevelSolution and maps it back to node/block/location IDs the
// rest of the toolchain understands.
//
// Field naming in this package mirrors the low-level wire keys of spec §6
// directly (fun-num-operations -> NumOperations, fun-block-dom-sets ->
// BlockDomSets, and so on) for the same reason pkg/model's field names
// mirror the high-level wire keys: a reader translating between the spec and
// the code should never have to guess a mapping.
package lower
