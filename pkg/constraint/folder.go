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

// Folder is a read-only, bottom-up traversal of a constraint tree producing
// a caller-chosen monoid value M. Children are folded and combined with
// Combine before being handed to the hook for the node's own sort; a nil
// hook means "just return the combined children value" (for leaf sorts,
// Zero).
type Folder[M any] struct {
	Zero    M
	Combine func(M, M) M

	FoldBoolExpr        func(BoolExpr, M) M
	FoldNumExpr         func(NumExpr, M) M
	FoldNodeExpr        func(NodeExpr) M
	FoldMatchExpr       func(MatchExpr) M
	FoldLocationExpr    func(LocationExpr, M) M
	FoldBlockExpr       func(BlockExpr, M) M
	FoldInstructionExpr func(InstructionExpr) M
}

func (f Folder[M]) combineAll(values ...M) M {
	out := f.Zero
	for _, v := range values {
		out = f.Combine(out, v)
	}

	return out
}

// FoldBool folds a BoolExpr tree.
func (f Folder[M]) FoldBool(e BoolExpr) M {
	var children M

	switch t := e.(type) {
	case EqExpr:
		children = f.combineAll(f.foldTerm(t.Lhs), f.foldTerm(t.Rhs))
	case LtExpr:
		children = f.combineAll(f.foldTerm(t.Lhs), f.foldTerm(t.Rhs))
	case LeExpr:
		children = f.combineAll(f.foldTerm(t.Lhs), f.foldTerm(t.Rhs))
	case InSetExpr:
		vals := []M{f.foldTerm(t.Value)}
		for _, m := range t.Set {
			vals = append(vals, f.foldTerm(m))
		}

		children = f.combineAll(vals...)
	case AndExpr:
		children = f.foldBoolSlice(t.Operands)
	case OrExpr:
		children = f.foldBoolSlice(t.Operands)
	case ImpliesExpr:
		children = f.combineAll(f.FoldBool(t.Antecedent), f.FoldBool(t.Consequent))
	case NotExpr:
		children = f.FoldBool(t.Operand)
	case FallThroughExpr:
		children = f.combineAll(f.FoldMatch(t.Match), f.FoldBlockVal(t.Block))
	case DistanceExpr:
		children = f.combineAll(f.FoldNum(t.Lhs), f.FoldNum(t.Rhs), f.FoldNum(t.Bound))
	default:
		panic(fmt.Sprintf("constraint: Folder: unknown BoolExpr variant %T", e))
	}

	if f.FoldBoolExpr != nil {
		return f.FoldBoolExpr(e, children)
	}

	return children
}

func (f Folder[M]) foldBoolSlice(operands []BoolExpr) M {
	vals := make([]M, len(operands))
	for i, o := range operands {
		vals[i] = f.FoldBool(o)
	}

	return f.combineAll(vals...)
}

func (f Folder[M]) foldTerm(t Term) M {
	switch v := t.(type) {
	case NumExpr:
		return f.FoldNum(v)
	case NodeExpr:
		return f.FoldNodeVal(v)
	case MatchExpr:
		return f.FoldMatch(v)
	case LocationExpr:
		return f.FoldLocation(v)
	case BlockExpr:
		return f.FoldBlockVal(v)
	case InstructionExpr:
		return f.FoldInstruction(v)
	default:
		panic(fmt.Sprintf("constraint: Folder: unknown Term variant %T", t))
	}
}

// FoldNum folds a NumExpr tree.
func (f Folder[M]) FoldNum(e NumExpr) M {
	var children M

	switch t := e.(type) {
	case IntLitExpr:
		children = f.Zero
	case NumOfNodeExpr:
		children = f.FoldNodeVal(t.Node)
	case NumOfMatchExpr:
		children = f.FoldMatch(t.Match)
	case NumOfLocationExpr:
		children = f.FoldLocation(t.Location)
	case NumOfBlockExpr:
		children = f.FoldBlockVal(t.Block)
	case NumOfInstructionExpr:
		children = f.FoldInstruction(t.Instruction)
	case AddExpr:
		children = f.combineAll(f.FoldNum(t.Lhs), f.FoldNum(t.Rhs))
	case SubExpr:
		children = f.combineAll(f.FoldNum(t.Lhs), f.FoldNum(t.Rhs))
	case MulExpr:
		children = f.combineAll(f.FoldNum(t.Lhs), f.FoldNum(t.Rhs))
	default:
		panic(fmt.Sprintf("constraint: Folder: unknown NumExpr variant %T", e))
	}

	if f.FoldNumExpr != nil {
		return f.FoldNumExpr(e, children)
	}

	return children
}

// FoldNodeVal folds a NodeExpr leaf.
func (f Folder[M]) FoldNodeVal(e NodeExpr) M {
	if f.FoldNodeExpr != nil {
		return f.FoldNodeExpr(e)
	}

	return f.Zero
}

// FoldMatch folds a MatchExpr leaf.
func (f Folder[M]) FoldMatch(e MatchExpr) M {
	if f.FoldMatchExpr != nil {
		return f.FoldMatchExpr(e)
	}

	return f.Zero
}

// FoldLocation folds a LocationExpr tree.
func (f Folder[M]) FoldLocation(e LocationExpr) M {
	var children M

	switch t := e.(type) {
	case ALocationIDExpr, ALocationArrayIndexExpr:
		children = f.Zero
	case LocationOfValueNodeExpr:
		children = f.FoldNodeVal(t.Node)
	default:
		panic(fmt.Sprintf("constraint: Folder: unknown LocationExpr variant %T", e))
	}

	if f.FoldLocationExpr != nil {
		return f.FoldLocationExpr(e, children)
	}

	return children
}

// FoldBlockVal folds a BlockExpr tree.
func (f Folder[M]) FoldBlockVal(e BlockExpr) M {
	var children M

	switch t := e.(type) {
	case ABlockIDExpr, ABlockArrayIndexExpr:
		children = f.Zero
	case BlockOfNodeExpr:
		children = f.FoldNodeVal(t.Node)
	case BlockOfMatchExpr:
		children = f.FoldMatch(t.Match)
	default:
		panic(fmt.Sprintf("constraint: Folder: unknown BlockExpr variant %T", e))
	}

	if f.FoldBlockExpr != nil {
		return f.FoldBlockExpr(e, children)
	}

	return children
}

// FoldInstruction folds an InstructionExpr leaf.
func (f Folder[M]) FoldInstruction(e InstructionExpr) M {
	if f.FoldInstructionExpr != nil {
		return f.FoldInstructionExpr(e)
	}

	return f.Zero
}

// Size counts the total number of expression nodes in e, across every sort.
func Size(e BoolExpr) int {
	f := Folder[int]{
		Zero:                0,
		Combine:             func(a, b int) int { return a + b },
		FoldBoolExpr:        func(_ BoolExpr, children int) int { return children + 1 },
		FoldNumExpr:         func(_ NumExpr, children int) int { return children + 1 },
		FoldNodeExpr:        func(_ NodeExpr) int { return 1 },
		FoldMatchExpr:       func(_ MatchExpr) int { return 1 },
		FoldLocationExpr:    func(_ LocationExpr, children int) int { return children + 1 },
		FoldBlockExpr:       func(_ BlockExpr, children int) int { return children + 1 },
		FoldInstructionExpr: func(_ InstructionExpr) int { return 1 },
	}

	return f.FoldBool(e)
}
