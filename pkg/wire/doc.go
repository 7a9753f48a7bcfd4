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

// Package wire holds the JSON mirror of the core's model and solution types,
// persisted between stages per the wire-format key names: a HighLevelModel
// goes out to a solver front-end as a make output, comes back as a
// LowLevelModel for the solver itself, and a solution travels the same path
// in reverse. Every exported Go struct in pkg/model and pkg/lower has a
// corresponding wire type here plus ToWire/FromWire conversions; none of the
// wire types round-trip through encoding/json tags on the core types
// themselves, so the core stays free of serialization concerns.
package wire
