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

// Package target describes a target machine: the instructions it offers,
// each with an ordered list of pattern graphs to match against a function,
// the storage locations a value can be assigned to, and the emission
// templates used to print a selected instruction once a match is placed.
//
// Modelled on pkg/schema's map-of-ID-to-declaration container shape (the
// teacher's own pkg/ir/schema keeps typed declarations in slices indexed
// by a dense ID, looked up through an accessor that panics or errors on an
// out-of-range index); here IDs are the caller's own externally assigned
// identifiers rather than positions, so lookups are backed by maps, but the
// "missing ID is an error" contract is the same.
package target
