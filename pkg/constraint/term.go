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

// Term is satisfied by every non-boolean expression sort (NodeExpr,
// MatchExpr, LocationExpr, BlockExpr, InstructionExpr, NumExpr). EqExpr,
// LtExpr, LeExpr and InSetExpr accept Term operands so that equality and
// ordering can compare two expressions of the same identifier sort directly,
// without first lifting them through a NumExpr cast.
type Term interface {
	FreeIdentifiers() *IdentifierSet
}
