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

// Package idmap holds the bijection between original, possibly-sparse public
// identifiers and dense array indices, one ordered list per namespace. It is
// deliberately its own package (rather than living in pkg/lower, which
// consumes it, or pkg/constraint, which rewrites through it) so that both of
// those can depend on it without depending on each other.
package idmap

import (
	"fmt"
	"slices"
)

// Maplists is a 6-tuple of ordered ID sequences, one per namespace. Position
// in a sequence is the dense array index; the element is the original public
// identifier. Every sequence is sorted ascending so indices are stable and
// reproducible across builds from the same ID set.
type Maplists struct {
	Operations   []uint64
	Entities     []uint64
	Blocks       []uint64
	Matches      []uint64
	Locations    []uint64
	Instructions []uint64
}

// Build constructs a Maplists from unordered ID sets, sorting a copy of each.
func Build(operations, entities, blocks, matches, locations, instructions []uint64) Maplists {
	return Maplists{
		Operations:   sortedCopy(operations),
		Entities:     sortedCopy(entities),
		Blocks:       sortedCopy(blocks),
		Matches:      sortedCopy(matches),
		Locations:    sortedCopy(locations),
		Instructions: sortedCopy(instructions),
	}
}

func sortedCopy(ids []uint64) []uint64 {
	out := slices.Clone(ids)
	slices.Sort(out)

	return out
}

// IndexOf returns the array index of id within list. Missing IDs are a
// missing-external-entity error, not a panic: callers doing a batch lowering
// pass surface it as a fatal error naming the offending ID.
func IndexOf(list []uint64, id uint64) (uint, error) {
	idx, ok := slices.BinarySearch(list, id)
	if !ok {
		return 0, fmt.Errorf("idmap: id %d not present in map list", id)
	}

	return uint(idx), nil
}

// IDAt returns the original ID stored at array index idx.
func IDAt(list []uint64, idx uint) (uint64, error) {
	if int(idx) >= len(list) {
		return 0, fmt.Errorf("idmap: array index %d out of range (len %d)", idx, len(list))
	}

	return list[idx], nil
}
