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
package wire

import "github.com/opselect/isel/pkg/idmap"

// Maplists mirrors idmap.Maplists under the array-index map list's own
// wire key names.
type Maplists struct {
	Operations   []uint64 `json:"operations"`
	Entities     []uint64 `json:"entities"`
	Blocks       []uint64 `json:"blocks"`
	Matches      []uint64 `json:"matches"`
	Locations    []uint64 `json:"locations"`
	Instructions []uint64 `json:"instructions"`
}

// MaplistsToWire converts an idmap.Maplists to its wire form.
func MaplistsToWire(m idmap.Maplists) Maplists {
	return Maplists{
		Operations:   append([]uint64(nil), m.Operations...),
		Entities:     append([]uint64(nil), m.Entities...),
		Blocks:       append([]uint64(nil), m.Blocks...),
		Matches:      append([]uint64(nil), m.Matches...),
		Locations:    append([]uint64(nil), m.Locations...),
		Instructions: append([]uint64(nil), m.Instructions...),
	}
}

// MaplistsFromWire is the inverse of MaplistsToWire.
func MaplistsFromWire(w Maplists) idmap.Maplists {
	return idmap.Maplists{
		Operations:   append([]uint64(nil), w.Operations...),
		Entities:     append([]uint64(nil), w.Entities...),
		Blocks:       append([]uint64(nil), w.Blocks...),
		Matches:      append([]uint64(nil), w.Matches...),
		Locations:    append([]uint64(nil), w.Locations...),
		Instructions: append([]uint64(nil), w.Instructions...),
	}
}
