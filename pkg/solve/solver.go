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

// Package solve names the external CP solver collaborator. The constraint
// program itself (simplex, SAT, lazy clause generation, or any other
// solving technology) is out of scope; this package fixes only the shape a
// solver is handed and the shape it must return.
package solve

import (
	"errors"

	"github.com/opselect/isel/pkg/lower"
)

// ErrNoSolution is returned (or wrapped) by a Solver when the low-level
// model it was given admits no feasible assignment. Callers check for it
// with errors.Is rather than inspecting a zero LowLevelSolution, since a
// zero value is also what an ordinary Go error path produces.
var ErrNoSolution = errors.New("solve: model has no solution")

// Solver turns a LowLevelModel into a LowLevelSolution. Implementations are
// expected to be deterministic for a given model, since FindMatches and
// Lower already fix a deterministic array-index assignment upstream.
type Solver interface {
	Solve(model lower.LowLevelModel) (lower.LowLevelSolution, error)
}
