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

// Package constraint defines the constraint expression tree shared by
// op-structures, matches and the high/low-level models, plus the two
// generic traversals used to rewrite and analyse it: a Reconstructor (rebuild
// with per-sort override hooks) and a Folder (bottom-up monoid fold).
//
// The tree is layered by sort: BoolExpr sits on top of NumExpr, which in turn
// lifts values out of five identifier sorts (NodeExpr, MatchExpr,
// LocationExpr, BlockExpr, InstructionExpr). Each identifier sort has a named
// variant carrying a plain identifier and, in most cases, one or more
// structural accessor variants that compute an identifier from another
// expression. Every identifier sort is present twice at the type level:
// *IDExpr variants carry an original public identifier, *ArrayIndexExpr
// variants carry a dense array index produced by pkg/idmap. A single
// constraint value never mixes the two within itself.
package constraint
