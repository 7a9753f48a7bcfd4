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

// Package set provides a sorted, duplicate-free slice of ordered values.
// It underlies the dominator sets produced by pkg/graph's
// dom_sets/idom_sets.
package set

import (
	"cmp"
	"slices"

	"github.com/opselect/isel/pkg/util/collection/iter"
)

// SortedSet is a slice of unique values kept in ascending order.  The zero
// value is an empty set.
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns an empty sorted set.
func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{}
}

// NewSortedSetOf builds a sorted set from an arbitrary slice, deduplicating
// and sorting as needed.
func NewSortedSetOf[T cmp.Ordered](items []T) *SortedSet[T] {
	s := NewSortedSet[T]()
	for _, it := range items {
		s.Insert(it)
	}

	return s
}

func (p *SortedSet[T]) search(element T) int {
	data := *p
	return sortSearch(len(data), func(i int) bool { return element <= data[i] })
}

// Contains reports whether element is a member of this set.
func (p *SortedSet[T]) Contains(element T) bool {
	data := *p
	i := p.search(element)

	return i < len(data) && data[i] == element
}

// Len returns the number of elements in this set.
func (p *SortedSet[T]) Len() int {
	return len(*p)
}

// ToSlice returns (a copy of) the elements of this set, in ascending order.
func (p *SortedSet[T]) ToSlice() []T {
	return slices.Clone(*p)
}

// Insert adds element to this set, if not already present.
func (p *SortedSet[T]) Insert(element T) {
	data := *p
	i := p.search(element)

	if i >= len(data) || data[i] != element {
		ndata := make([]T, len(data)+1)
		copy(ndata, data[0:i])
		ndata[i] = element
		copy(ndata[i+1:], data[i:])
		*p = ndata
	}
}

// Remove deletes element from this set, if present.
func (p *SortedSet[T]) Remove(element T) {
	data := *p
	i := p.search(element)

	if i < len(data) && data[i] == element {
		ndata := make([]T, len(data)-1)
		copy(ndata, data[0:i])
		copy(ndata[i:], data[i+1:])
		*p = ndata
	}
}

// InsertSorted merges the elements of q into this set.
func (p *SortedSet[T]) InsertSorted(q *SortedSet[T]) {
	left := *p
	right := *q
	n := countDuplicates(left, right)

	if n == len(right) {
		// right is entirely contained in left already
		return
	}

	merged := make([]T, len(left)+len(right)-n)
	mergeSorted(merged, left, right)
	*p = merged
}

// Intersect returns a new set containing only elements present in both p
// and q.
func (p *SortedSet[T]) Intersect(q *SortedSet[T]) *SortedSet[T] {
	left := *p
	right := *q
	out := NewSortedSet[T]()
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			i++
		case left[i] > right[j]:
			j++
		default:
			out.Insert(left[i])
			i++
			j++
		}
	}

	return out
}

// Equals reports whether p and q contain exactly the same elements.
func (p *SortedSet[T]) Equals(q *SortedSet[T]) bool {
	return slices.Equal(*p, *q)
}

// Iter returns an iterator over the elements of this set, in ascending
// order.
func (p *SortedSet[T]) Iter() iter.Iterator[T] {
	return iter.NewArrayIterator(*p)
}

// UnionSortedSets maps each element of elems through fn and unions the
// resulting sets together.
func UnionSortedSets[S any, T cmp.Ordered](elems []S, fn func(S) *SortedSet[T]) *SortedSet[T] {
	out := NewSortedSet[T]()
	for _, e := range elems {
		out.InsertSorted(fn(e))
	}

	return out
}

// sortSearch is the same contract as sort.Search, inlined here to avoid an
// extra import for a single call site.
func sortSearch(n int, ok func(int) bool) int {
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if !ok(mid) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}

func countDuplicates[T cmp.Ordered](left, right []T) int {
	i, j, n := 0, 0, 0

	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			i++
		case left[i] > right[j]:
			j++
		default:
			i++
			j++
			n++
		}
	}

	return n
}

func mergeSorted[T cmp.Ordered](target, left, right []T) {
	i, j, k := 0, 0, 0

	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			target[k] = left[i]
			i++
		case left[i] > right[j]:
			target[k] = right[j]
			j++
		default:
			target[k] = left[i]
			i++
			j++
		}

		k++
	}

	if i < len(left) {
		copy(target[k:], left[i:])
	} else if j < len(right) {
		copy(target[k:], right[j:])
	}
}
