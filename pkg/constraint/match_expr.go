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

// MatchExpr is an expression naming a match.
type MatchExpr interface {
	isMatchExpr()
	FreeIdentifiers() *IdentifierSet
}

// AMatchIDExpr names a match by its original public identifier.
type AMatchIDExpr struct {
	ID uint64
}

func (AMatchIDExpr) isMatchExpr() {}

// FreeIdentifiers implements Term.
func (e AMatchIDExpr) FreeIdentifiers() *IdentifierSet {
	return NewIdentifierSet(Identifier{Sort: SortMatch, Value: e.ID})
}

// AMatchArrayIndexExpr names a match by its dense array index.
type AMatchArrayIndexExpr struct {
	Index uint
}

func (AMatchArrayIndexExpr) isMatchExpr() {}

// FreeIdentifiers implements Term.
func (e AMatchArrayIndexExpr) FreeIdentifiers() *IdentifierSet {
	return NewIdentifierSet(Identifier{Sort: SortMatch, Value: uint64(e.Index)})
}

// ThisMatchExpr refers to the match currently being instantiated. It carries
// no identifier of its own: a constraint template that mentions it only
// becomes concrete once ReplaceThisMatchWith binds it to a match ID.
type ThisMatchExpr struct{}

func (ThisMatchExpr) isMatchExpr() {}

// FreeIdentifiers implements Term. ThisMatchExpr is template-scoped, not a
// free identifier in the usual sense, so it contributes none.
func (ThisMatchExpr) FreeIdentifiers() *IdentifierSet {
	return NewIdentifierSet()
}
