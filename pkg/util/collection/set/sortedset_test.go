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
package set

import "testing"

func TestSortedSetInsertDedups(t *testing.T) {
	s := NewSortedSet[uint]()

	for _, v := range []uint{5, 1, 3, 1, 5, 2} {
		s.Insert(v)
	}

	got := s.ToSlice()
	want := []uint{1, 2, 3, 5}

	if !sliceEq(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSortedSetContains(t *testing.T) {
	s := NewSortedSetOf([]uint{4, 8, 15, 16, 23, 42})

	for _, v := range []uint{4, 42, 16} {
		if !s.Contains(v) {
			t.Errorf("expected %d to be contained", v)
		}
	}

	for _, v := range []uint{0, 9, 100} {
		if s.Contains(v) {
			t.Errorf("did not expect %d to be contained", v)
		}
	}
}

func TestSortedSetRemove(t *testing.T) {
	s := NewSortedSetOf([]uint{1, 2, 3})
	s.Remove(2)

	if s.Contains(2) {
		t.Fatalf("2 should have been removed")
	}

	if !sliceEq(s.ToSlice(), []uint{1, 3}) {
		t.Fatalf("unexpected contents: %v", s.ToSlice())
	}
}

func TestSortedSetInsertSorted(t *testing.T) {
	left := NewSortedSetOf([]uint{1, 3, 5})
	right := NewSortedSetOf([]uint{2, 3, 4})
	left.InsertSorted(right)

	want := []uint{1, 2, 3, 4, 5}
	if !sliceEq(left.ToSlice(), want) {
		t.Fatalf("got %v, want %v", left.ToSlice(), want)
	}
}

func TestSortedSetIntersect(t *testing.T) {
	left := NewSortedSetOf([]uint{1, 2, 3, 4})
	right := NewSortedSetOf([]uint{2, 4, 6})
	got := left.Intersect(right).ToSlice()
	want := []uint{2, 4}

	if !sliceEq(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnionSortedSets(t *testing.T) {
	groups := [][]uint{{1, 2}, {2, 3}, {4}}
	union := UnionSortedSets(groups, func(g []uint) *SortedSet[uint] {
		return NewSortedSetOf(g)
	})

	want := []uint{1, 2, 3, 4}
	if !sliceEq(union.ToSlice(), want) {
		t.Fatalf("got %v, want %v", union.ToSlice(), want)
	}
}

func sliceEq(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
