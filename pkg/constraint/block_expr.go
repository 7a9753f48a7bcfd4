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

// BlockExpr is an expression naming a basic-block node.
type BlockExpr interface {
	isBlockExpr()
	FreeIdentifiers() *IdentifierSet
}

// ABlockIDExpr names a block by its original public identifier.
type ABlockIDExpr struct {
	ID uint64
}

func (ABlockIDExpr) isBlockExpr() {}

// FreeIdentifiers implements Term.
func (e ABlockIDExpr) FreeIdentifiers() *IdentifierSet {
	return NewIdentifierSet(Identifier{Sort: SortBlock, Value: e.ID})
}

// ABlockArrayIndexExpr names a block by its dense array index.
type ABlockArrayIndexExpr struct {
	Index uint
}

func (ABlockArrayIndexExpr) isBlockExpr() {}

// FreeIdentifiers implements Term.
func (e ABlockArrayIndexExpr) FreeIdentifiers() *IdentifierSet {
	return NewIdentifierSet(Identifier{Sort: SortBlock, Value: uint64(e.Index)})
}

// BlockOfNodeExpr names the block a given node is placed in.
type BlockOfNodeExpr struct {
	Node NodeExpr
}

func (BlockOfNodeExpr) isBlockExpr() {}

// FreeIdentifiers implements Term.
func (e BlockOfNodeExpr) FreeIdentifiers() *IdentifierSet {
	return e.Node.FreeIdentifiers()
}

// BlockOfMatchExpr names the block a given match is placed in.
type BlockOfMatchExpr struct {
	Match MatchExpr
}

func (BlockOfMatchExpr) isBlockExpr() {}

// FreeIdentifiers implements Term.
func (e BlockOfMatchExpr) FreeIdentifiers() *IdentifierSet {
	return e.Match.FreeIdentifiers()
}
