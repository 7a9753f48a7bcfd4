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
package target

// LocationID identifies one storage location of a target machine (a
// register, a stack slot, or a sentinel like "no location").
type LocationID uint64

// Location is one storage location a value node may be assigned to.
// OptionalFixedValue is non-nil for a location whose contents are pinned to
// a known constant (e.g. a hard-wired zero register), which reuse/copy
// elimination may treat specially.
type Location struct {
	ID                 LocationID
	Name               string
	OptionalFixedValue *int64
}
