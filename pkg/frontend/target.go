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
package frontend

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opselect/isel/pkg/target"
	"github.com/opselect/isel/pkg/wire"
)

// LoadTargetMachine reads and parses path as a target.json document.
func LoadTargetMachine(path string) (target.TargetMachine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return target.TargetMachine{}, fmt.Errorf("frontend: reading %s: %w", path, err)
	}

	var w wire.TargetMachine
	if err := json.Unmarshal(data, &w); err != nil {
		return target.TargetMachine{}, fmt.Errorf("frontend: parsing %s: %w", path, err)
	}

	tm, err := wire.TargetMachineFromWire(w)
	if err != nil {
		return target.TargetMachine{}, fmt.Errorf("frontend: %s: %w", path, err)
	}

	return tm, nil
}
