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
package constraint

import (
	"fmt"

	"github.com/opselect/isel/pkg/idmap"
)

// ReplaceThisMatchWith rewrites every ThisMatchExpr in e to AMatchIDExpr(m).
func ReplaceThisMatchWith(e BoolExpr, m uint64) BoolExpr {
	r := Reconstructor{
		MkMatchExpr: func(expr MatchExpr) MatchExpr {
			if _, ok := expr.(ThisMatchExpr); ok {
				return AMatchIDExpr{ID: m}
			}

			return expr
		},
	}

	return r.RebuildBool(e)
}

// ReplacePatternNodeIDsWithFunctionNodeIDs rewrites every ANodeIDExpr(p) in e
// to the function node ID that match maps pattern node p to. It panics
// (a precondition violation per the core error taxonomy) if p has no entry
// in match: the caller is expected to have already validated match
// completeness before instantiating per-match constraints.
func ReplacePatternNodeIDsWithFunctionNodeIDs(e BoolExpr, match map[uint64]uint64) BoolExpr {
	r := Reconstructor{
		MkNodeExpr: func(expr NodeExpr) NodeExpr {
			id, ok := expr.(ANodeIDExpr)
			if !ok {
				return expr
			}

			fn, ok := match[id.ID]
			if !ok {
				panic(fmt.Sprintf(
					"constraint: ReplacePatternNodeIDsWithFunctionNodeIDs: pattern node %d not present in match",
					id.ID))
			}

			return ANodeIDExpr{ID: fn}
		},
	}

	return r.RebuildBool(e)
}

// NodeNamespace distinguishes the two node namespaces that ANodeIDExpr may
// range over; the array-index maplists keep them as two separate ordered
// lists (idmap.Maplists.Operations and .Entities), so lowering a generic node
// identifier needs to know which one it belongs to.
type NodeNamespace int

const (
	NamespaceOperation NodeNamespace = iota
	NamespaceEntity
)

// NodeClassifier reports which namespace a node ID belongs to.
type NodeClassifier func(id uint64) NodeNamespace

// LowerIDsToArrayIndices rewrites every *IDExpr in e to the corresponding
// *ArrayIndexExpr, using maps to look up each identifier's dense index and
// classify to disambiguate the two node namespaces. It panics on a missing
// ID: by the time a constraint is lowered, every identifier it mentions is
// expected to already be present in maps (a missing external entity is a
// fatal error upstream of this call, not something this rewrite tolerates).
func LowerIDsToArrayIndices(e BoolExpr, maps idmap.Maplists, classify NodeClassifier) BoolExpr {
	lowerNode := func(id uint64) uint {
		list := maps.Operations
		if classify(id) == NamespaceEntity {
			list = maps.Entities
		}

		idx, err := idmap.IndexOf(list, id)
		if err != nil {
			panic(fmt.Sprintf("constraint: LowerIDsToArrayIndices: node %d: %v", id, err))
		}

		return idx
	}

	lowerList := func(list []uint64, id uint64, what string) uint {
		idx, err := idmap.IndexOf(list, id)
		if err != nil {
			panic(fmt.Sprintf("constraint: LowerIDsToArrayIndices: %s %d: %v", what, id, err))
		}

		return idx
	}

	r := Reconstructor{
		MkNodeExpr: func(expr NodeExpr) NodeExpr {
			id, ok := expr.(ANodeIDExpr)
			if !ok {
				return expr
			}

			return ANodeArrayIndexExpr{Index: lowerNode(id.ID)}
		},
		MkMatchExpr: func(expr MatchExpr) MatchExpr {
			id, ok := expr.(AMatchIDExpr)
			if !ok {
				return expr
			}

			return AMatchArrayIndexExpr{Index: lowerList(maps.Matches, id.ID, "match")}
		},
		MkLocationExpr: func(expr LocationExpr) LocationExpr {
			id, ok := expr.(ALocationIDExpr)
			if !ok {
				return expr
			}

			return ALocationArrayIndexExpr{Index: lowerList(maps.Locations, id.ID, "location")}
		},
		MkBlockExpr: func(expr BlockExpr) BlockExpr {
			id, ok := expr.(ABlockIDExpr)
			if !ok {
				return expr
			}

			return ABlockArrayIndexExpr{Index: lowerList(maps.Blocks, id.ID, "block")}
		},
		MkInstructionExpr: func(expr InstructionExpr) InstructionExpr {
			id, ok := expr.(AInstructionIDExpr)
			if !ok {
				return expr
			}

			return AInstructionArrayIndexExpr{Index: lowerList(maps.Instructions, id.ID, "instruction")}
		},
	}

	return r.RebuildBool(e)
}
