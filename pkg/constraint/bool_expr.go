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

// BoolExpr is a logical constraint expression.
type BoolExpr interface {
	isBoolExpr()
	FreeIdentifiers() *IdentifierSet
}

// EqExpr holds iff Lhs and Rhs denote the same value. Operands may be any
// Term of matching sort — two identifier expressions directly, or two
// NumExpr after arithmetic.
type EqExpr struct{ Lhs, Rhs Term }

func (EqExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e EqExpr) FreeIdentifiers() *IdentifierSet {
	return e.Lhs.FreeIdentifiers().Union(e.Rhs.FreeIdentifiers())
}

// LtExpr holds iff Lhs is strictly less than Rhs.
type LtExpr struct{ Lhs, Rhs Term }

func (LtExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e LtExpr) FreeIdentifiers() *IdentifierSet {
	return e.Lhs.FreeIdentifiers().Union(e.Rhs.FreeIdentifiers())
}

// LeExpr holds iff Lhs is less than or equal to Rhs.
type LeExpr struct{ Lhs, Rhs Term }

func (LeExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e LeExpr) FreeIdentifiers() *IdentifierSet {
	return e.Lhs.FreeIdentifiers().Union(e.Rhs.FreeIdentifiers())
}

// InSetExpr holds iff Value equals some member of Set.
type InSetExpr struct {
	Value Term
	Set   []Term
}

func (InSetExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e InSetExpr) FreeIdentifiers() *IdentifierSet {
	out := e.Value.FreeIdentifiers()
	for _, m := range e.Set {
		out = out.Union(m.FreeIdentifiers())
	}

	return out
}

// AndExpr holds iff every operand holds. An empty AndExpr holds vacuously.
type AndExpr struct{ Operands []BoolExpr }

func (AndExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e AndExpr) FreeIdentifiers() *IdentifierSet { return foldBoolIdentifiers(e.Operands) }

// OrExpr holds iff at least one operand holds.
type OrExpr struct{ Operands []BoolExpr }

func (OrExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e OrExpr) FreeIdentifiers() *IdentifierSet { return foldBoolIdentifiers(e.Operands) }

func foldBoolIdentifiers(operands []BoolExpr) *IdentifierSet {
	out := NewIdentifierSet()
	for _, o := range operands {
		out = out.Union(o.FreeIdentifiers())
	}

	return out
}

// ImpliesExpr holds iff Antecedent is false or Consequent holds.
type ImpliesExpr struct{ Antecedent, Consequent BoolExpr }

func (ImpliesExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e ImpliesExpr) FreeIdentifiers() *IdentifierSet {
	return e.Antecedent.FreeIdentifiers().Union(e.Consequent.FreeIdentifiers())
}

// NotExpr holds iff Operand does not.
type NotExpr struct{ Operand BoolExpr }

func (NotExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e NotExpr) FreeIdentifiers() *IdentifierSet { return e.Operand.FreeIdentifiers() }

// FallThroughExpr holds iff Match is placed at the end of Block with no
// intervening control transfer, i.e. execution falls straight through.
type FallThroughExpr struct {
	Match MatchExpr
	Block BlockExpr
}

func (FallThroughExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e FallThroughExpr) FreeIdentifiers() *IdentifierSet {
	return e.Match.FreeIdentifiers().Union(e.Block.FreeIdentifiers())
}

// DistanceExpr holds iff the absolute difference between Lhs and Rhs does
// not exceed Bound.
type DistanceExpr struct{ Lhs, Rhs, Bound NumExpr }

func (DistanceExpr) isBoolExpr() {}

// FreeIdentifiers implements Term.
func (e DistanceExpr) FreeIdentifiers() *IdentifierSet {
	return e.Lhs.FreeIdentifiers().Union(e.Rhs.FreeIdentifiers()).Union(e.Bound.FreeIdentifiers())
}
