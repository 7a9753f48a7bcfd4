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
package opstruct

import (
	"github.com/opselect/isel/pkg/constraint"
	"github.com/opselect/isel/pkg/graph"
)

// MatchPlacementConstraint requires that a match be placed in its pattern's
// entry block.
func MatchPlacementConstraint(entryBlock graph.NodeID) constraint.BoolExpr {
	return constraint.EqExpr{
		Lhs: constraint.BlockOfMatchExpr{Match: constraint.ThisMatchExpr{}},
		Rhs: constraint.ABlockIDExpr{ID: uint64(entryBlock)},
	}
}

// FallThroughConstraint requires that a match fall straight through into
// block with no intervening control transfer.
func FallThroughConstraint(block graph.NodeID) constraint.BoolExpr {
	return constraint.FallThroughExpr{
		Match: constraint.ThisMatchExpr{},
		Block: constraint.ABlockIDExpr{ID: uint64(block)},
	}
}

// ValueLocationInSetConstraint requires that value be assigned one of
// locations.
func ValueLocationInSetConstraint(value graph.NodeID, locations []uint64) constraint.BoolExpr {
	set := make([]constraint.Term, len(locations))
	for i, l := range locations {
		set[i] = constraint.ALocationIDExpr{ID: l}
	}

	return constraint.InSetExpr{
		Value: constraint.LocationOfValueNodeExpr{Node: constraint.ANodeIDExpr{ID: uint64(value)}},
		Set:   set,
	}
}

// NoReuseConstraint pins value to the null location, forbidding any match
// from reusing its storage.
func NoReuseConstraint(value graph.NodeID, nullLocation uint64) constraint.BoolExpr {
	return constraint.EqExpr{
		Lhs: constraint.LocationOfValueNodeExpr{Node: constraint.ANodeIDExpr{ID: uint64(value)}},
		Rhs: constraint.ALocationIDExpr{ID: nullLocation},
	}
}

// SameLocationEquivalenceConstraint requires that a and b be assigned the
// same location.
func SameLocationEquivalenceConstraint(a, b graph.NodeID) constraint.BoolExpr {
	return constraint.EqExpr{
		Lhs: constraint.LocationOfValueNodeExpr{Node: constraint.ANodeIDExpr{ID: uint64(a)}},
		Rhs: constraint.LocationOfValueNodeExpr{Node: constraint.ANodeIDExpr{ID: uint64(b)}},
	}
}
