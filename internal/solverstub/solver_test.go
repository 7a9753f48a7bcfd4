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
package solverstub

import (
	"errors"
	"testing"

	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/solve"
	"github.com/opselect/isel/pkg/util/assert"
)

func TestSolveCoversAllOperations(t *testing.T) {
	model := lower.LowLevelModel{
		NumOperations: 2,
		NumData:       2,
		NumBlocks:     1,
		NumLocations:  2,
		NumMatches:    2,
		BlockDomSets:  [][]uint{{0}},
		OperationsCovered: [][]uint{
			{0},
			{1},
		},
		DataDefined: [][]uint{
			{0},
			{1},
		},
		DataUsed:      [][]uint{{}, {}},
		SpannedBlocks: [][]uint{{0}, {0}},
		EntryBlocks:   []*uint{nil, nil},
		Latencies:     []uint{1, 2},
		CodeSizes:     []uint{1, 1},
	}

	sol, err := New().Solve(model)
	assert.NoError(t, err)
	assert.True(t, sol.IsMatchSelected[0] && sol.IsMatchSelected[1], "both matches selected to cover all operations")
	assert.Equal(t, 3.0, sol.Cost, "cost")

	for _, has := range sol.HasDataLoc {
		assert.True(t, has, "data node should have a location assigned")
	}
}

func TestSolveReturnsErrNoSolutionWhenUncoverable(t *testing.T) {
	model := lower.LowLevelModel{
		NumOperations:     2,
		NumBlocks:         1,
		NumMatches:        1,
		BlockDomSets:      [][]uint{{0}},
		OperationsCovered: [][]uint{{0}},
		DataDefined:       [][]uint{{}},
		SpannedBlocks:     [][]uint{{0}},
		EntryBlocks:       []*uint{nil},
		Latencies:         []uint{1},
	}

	_, err := New().Solve(model)
	assert.True(t, errors.Is(err, solve.ErrNoSolution), "expected ErrNoSolution")
}
