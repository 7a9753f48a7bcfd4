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
package idmap

import "testing"

func TestBuildSortsAscending(t *testing.T) {
	m := Build(nil, []uint64{17, 3, 9}, nil, nil, []uint64{3, 0}, nil)

	if m.Entities[0] != 3 || m.Entities[1] != 9 || m.Entities[2] != 17 {
		t.Fatalf("expected ascending sort, got %v", m.Entities)
	}

	if m.Locations[0] != 0 || m.Locations[1] != 3 {
		t.Fatalf("expected ascending sort, got %v", m.Locations)
	}
}

func TestIndexOfRoundTrip(t *testing.T) {
	list := []uint64{3, 9, 17}

	idx, err := IndexOf(list, 9)
	if err != nil || idx != 1 {
		t.Fatalf("expected index 1, got %d, err %v", idx, err)
	}

	id, err := IDAt(list, 1)
	if err != nil || id != 9 {
		t.Fatalf("expected id 9, got %d, err %v", id, err)
	}
}

func TestIndexOfMissingID(t *testing.T) {
	if _, err := IndexOf([]uint64{1, 2, 3}, 42); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestIDAtOutOfRange(t *testing.T) {
	if _, err := IDAt([]uint64{1, 2}, 5); err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
}
