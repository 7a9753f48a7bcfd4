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

// Package model assembles the high-level constraint-programming model out of
// a function graph, a target machine, and the matches found against it.
// Field names mirror the wire-format keys of the reference driver exactly
// (function-params.*, machine-params.*, match-params[].*), using Go's
// idiomatic CamelCase; the mirror types in pkg/wire supply the literal
// hyphenated JSON tags.
//
// Grounded on the builder-pattern shape of the teacher's pkg/ir (a
// constructor function threading a handful of pre-computed lookups through
// a single assembly pass), generalised here into one pure Build call rather
// than a stateful builder object, since nothing in this model is ever
// built incrementally field-by-field from outside the package.
package model
