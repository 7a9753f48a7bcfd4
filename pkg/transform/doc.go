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

// Package transform holds the small pipeline of op-structure rewrites of
// spec.md §4.8: canonicalising identity-operand computations into Copy
// nodes, lowering pointer types to the target's integer representation,
// enforcing phi-node invariants, collapsing single-input phis, eliminating
// dead code, and folding redundant extend-then-mask conversions into Copy.
//
// Every pass is pure, in the style of the teacher's `.Simplify`/rewrite-pass
// functions: each takes a graph.Graph or opstruct.OpStruct and returns a new
// one, touching the receiver not at all. Every pass panics on an input that
// violates its documented precondition rather than returning an error — per
// spec.md §4.8, none of these rewrites reports a recoverable failure.
package transform
