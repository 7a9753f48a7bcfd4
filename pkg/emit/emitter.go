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

// Package emit names the external assembly-text-emission collaborator.
// Producing real target assembly from a HighLevelSolution's instruction
// selection and an EmitStringTemplate is out of scope; this package fixes
// only the shape the emitter is handed and the shape it must return.
package emit

import (
	"github.com/opselect/isel/pkg/lower"
	"github.com/opselect/isel/pkg/target"
)

// Emitter renders a raised solution against a target machine's instruction
// templates into the machine's assembly text.
type Emitter interface {
	Emit(sol lower.HighLevelSolution, machine target.TargetMachine) (string, error)
}
