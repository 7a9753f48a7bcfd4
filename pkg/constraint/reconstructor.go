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

import "fmt"

// Reconstructor rebuilds a constraint tree, visiting every child before
// delegating to the hook for that node's sort so overrides always see
// already-rewritten subtrees. A caller performing a single targeted rewrite
// sets exactly one hook; every other hook defaults to identity (return the
// rebuilt node unchanged).
type Reconstructor struct {
	MkBoolExpr        func(BoolExpr) BoolExpr
	MkNumExpr         func(NumExpr) NumExpr
	MkNodeExpr        func(NodeExpr) NodeExpr
	MkMatchExpr       func(MatchExpr) MatchExpr
	MkLocationExpr    func(LocationExpr) LocationExpr
	MkBlockExpr       func(BlockExpr) BlockExpr
	MkInstructionExpr func(InstructionExpr) InstructionExpr
}

// RebuildBool rebuilds a BoolExpr tree.
func (r Reconstructor) RebuildBool(e BoolExpr) BoolExpr {
	var rebuilt BoolExpr

	switch t := e.(type) {
	case EqExpr:
		rebuilt = EqExpr{Lhs: r.rebuildTerm(t.Lhs), Rhs: r.rebuildTerm(t.Rhs)}
	case LtExpr:
		rebuilt = LtExpr{Lhs: r.rebuildTerm(t.Lhs), Rhs: r.rebuildTerm(t.Rhs)}
	case LeExpr:
		rebuilt = LeExpr{Lhs: r.rebuildTerm(t.Lhs), Rhs: r.rebuildTerm(t.Rhs)}
	case InSetExpr:
		set := make([]Term, len(t.Set))
		for i, m := range t.Set {
			set[i] = r.rebuildTerm(m)
		}

		rebuilt = InSetExpr{Value: r.rebuildTerm(t.Value), Set: set}
	case AndExpr:
		rebuilt = AndExpr{Operands: r.rebuildBoolSlice(t.Operands)}
	case OrExpr:
		rebuilt = OrExpr{Operands: r.rebuildBoolSlice(t.Operands)}
	case ImpliesExpr:
		rebuilt = ImpliesExpr{Antecedent: r.RebuildBool(t.Antecedent), Consequent: r.RebuildBool(t.Consequent)}
	case NotExpr:
		rebuilt = NotExpr{Operand: r.RebuildBool(t.Operand)}
	case FallThroughExpr:
		rebuilt = FallThroughExpr{Match: r.RebuildMatch(t.Match), Block: r.RebuildBlock(t.Block)}
	case DistanceExpr:
		rebuilt = DistanceExpr{Lhs: r.RebuildNum(t.Lhs), Rhs: r.RebuildNum(t.Rhs), Bound: r.RebuildNum(t.Bound)}
	default:
		panic(fmt.Sprintf("constraint: Reconstructor: unknown BoolExpr variant %T", e))
	}

	if r.MkBoolExpr != nil {
		return r.MkBoolExpr(rebuilt)
	}

	return rebuilt
}

func (r Reconstructor) rebuildBoolSlice(operands []BoolExpr) []BoolExpr {
	out := make([]BoolExpr, len(operands))
	for i, o := range operands {
		out[i] = r.RebuildBool(o)
	}

	return out
}

// rebuildTerm dispatches to the Rebuild method for t's underlying sort. The
// sort interfaces are disjoint (each carries its own unexported marker
// method), so the type switch never matches more than one case.
func (r Reconstructor) rebuildTerm(t Term) Term {
	switch v := t.(type) {
	case NumExpr:
		return r.RebuildNum(v)
	case NodeExpr:
		return r.RebuildNode(v)
	case MatchExpr:
		return r.RebuildMatch(v)
	case LocationExpr:
		return r.RebuildLocation(v)
	case BlockExpr:
		return r.RebuildBlock(v)
	case InstructionExpr:
		return r.RebuildInstruction(v)
	default:
		panic(fmt.Sprintf("constraint: Reconstructor: unknown Term variant %T", t))
	}
}

// RebuildNum rebuilds a NumExpr tree.
func (r Reconstructor) RebuildNum(e NumExpr) NumExpr {
	var rebuilt NumExpr

	switch t := e.(type) {
	case IntLitExpr:
		rebuilt = t
	case NumOfNodeExpr:
		rebuilt = NumOfNodeExpr{Node: r.RebuildNode(t.Node)}
	case NumOfMatchExpr:
		rebuilt = NumOfMatchExpr{Match: r.RebuildMatch(t.Match)}
	case NumOfLocationExpr:
		rebuilt = NumOfLocationExpr{Location: r.RebuildLocation(t.Location)}
	case NumOfBlockExpr:
		rebuilt = NumOfBlockExpr{Block: r.RebuildBlock(t.Block)}
	case NumOfInstructionExpr:
		rebuilt = NumOfInstructionExpr{Instruction: r.RebuildInstruction(t.Instruction)}
	case AddExpr:
		rebuilt = AddExpr{Lhs: r.RebuildNum(t.Lhs), Rhs: r.RebuildNum(t.Rhs)}
	case SubExpr:
		rebuilt = SubExpr{Lhs: r.RebuildNum(t.Lhs), Rhs: r.RebuildNum(t.Rhs)}
	case MulExpr:
		rebuilt = MulExpr{Lhs: r.RebuildNum(t.Lhs), Rhs: r.RebuildNum(t.Rhs)}
	default:
		panic(fmt.Sprintf("constraint: Reconstructor: unknown NumExpr variant %T", e))
	}

	if r.MkNumExpr != nil {
		return r.MkNumExpr(rebuilt)
	}

	return rebuilt
}

// RebuildNode rebuilds a NodeExpr (a leaf sort: no substructure to recurse
// into, only the hook can change it).
func (r Reconstructor) RebuildNode(e NodeExpr) NodeExpr {
	if r.MkNodeExpr != nil {
		return r.MkNodeExpr(e)
	}

	return e
}

// RebuildMatch rebuilds a MatchExpr.
func (r Reconstructor) RebuildMatch(e MatchExpr) MatchExpr {
	if r.MkMatchExpr != nil {
		return r.MkMatchExpr(e)
	}

	return e
}

// RebuildLocation rebuilds a LocationExpr tree.
func (r Reconstructor) RebuildLocation(e LocationExpr) LocationExpr {
	var rebuilt LocationExpr

	switch t := e.(type) {
	case ALocationIDExpr, ALocationArrayIndexExpr:
		rebuilt = t.(LocationExpr)
	case LocationOfValueNodeExpr:
		rebuilt = LocationOfValueNodeExpr{Node: r.RebuildNode(t.Node)}
	default:
		panic(fmt.Sprintf("constraint: Reconstructor: unknown LocationExpr variant %T", e))
	}

	if r.MkLocationExpr != nil {
		return r.MkLocationExpr(rebuilt)
	}

	return rebuilt
}

// RebuildBlock rebuilds a BlockExpr tree.
func (r Reconstructor) RebuildBlock(e BlockExpr) BlockExpr {
	var rebuilt BlockExpr

	switch t := e.(type) {
	case ABlockIDExpr, ABlockArrayIndexExpr:
		rebuilt = t.(BlockExpr)
	case BlockOfNodeExpr:
		rebuilt = BlockOfNodeExpr{Node: r.RebuildNode(t.Node)}
	case BlockOfMatchExpr:
		rebuilt = BlockOfMatchExpr{Match: r.RebuildMatch(t.Match)}
	default:
		panic(fmt.Sprintf("constraint: Reconstructor: unknown BlockExpr variant %T", e))
	}

	if r.MkBlockExpr != nil {
		return r.MkBlockExpr(rebuilt)
	}

	return rebuilt
}

// RebuildInstruction rebuilds an InstructionExpr (a leaf sort).
func (r Reconstructor) RebuildInstruction(e InstructionExpr) InstructionExpr {
	if r.MkInstructionExpr != nil {
		return r.MkInstructionExpr(e)
	}

	return e
}
