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

// Package solverstub is integration-test scaffolding, not a CP solver. It
// gives pkg/solve.Solver and pkg/emit.Emitter a deterministic, greedy
// implementation each so that pkg/cmd's make/check round trip can be
// exercised end to end without a real constraint solver wired in. Neither
// implementation evaluates the FunConstraints/MatchConstraints expression
// trees the model actually carries; a model whose feasibility depends on
// those constraints is out of scope for what this package can solve
// correctly.
package solverstub
