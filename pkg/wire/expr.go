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

import (
	"encoding/json"
	"fmt"

	"github.com/opselect/isel/pkg/constraint"
)

// exprEnvelope is the tagged-union wire shape shared by every constraint
// expression sort. Kind selects which fields are populated; unused fields
// are omitted. Every sort's FreeIdentifiers() method is satisfied by every
// expression variant, so a single envelope and a single pair of
// encode/decode functions cover BoolExpr, NumExpr, NodeExpr, MatchExpr,
// LocationExpr, BlockExpr and InstructionExpr at once — callers narrow the
// decoded value to the sort they need with a type assertion.
type exprEnvelope struct {
	Kind string `json:"kind"`

	Lhs json.RawMessage `json:"lhs,omitempty"`
	Rhs json.RawMessage `json:"rhs,omitempty"`

	Value json.RawMessage   `json:"value,omitempty"`
	Set   []json.RawMessage `json:"set,omitempty"`

	Operands []json.RawMessage `json:"operands,omitempty"`

	Antecedent json.RawMessage `json:"antecedent,omitempty"`
	Consequent json.RawMessage `json:"consequent,omitempty"`
	Operand    json.RawMessage `json:"operand,omitempty"`
	Bound      json.RawMessage `json:"bound,omitempty"`

	Match       json.RawMessage `json:"match,omitempty"`
	Block       json.RawMessage `json:"block,omitempty"`
	Node        json.RawMessage `json:"node,omitempty"`
	Location    json.RawMessage `json:"location,omitempty"`
	Instruction json.RawMessage `json:"instruction,omitempty"`

	ID       *uint64 `json:"id,omitempty"`
	Index    *uint   `json:"index,omitempty"`
	IntValue *int64  `json:"int-value,omitempty"`
}

// MarshalBoolExpr encodes a constraint tree rooted at a BoolExpr.
func MarshalBoolExpr(e constraint.BoolExpr) (json.RawMessage, error) {
	return encodeExpr(e)
}

// UnmarshalBoolExpr decodes a constraint tree, failing if its root is not a
// BoolExpr.
func UnmarshalBoolExpr(data json.RawMessage) (constraint.BoolExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	b, ok := t.(constraint.BoolExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a boolean expression, decoded %T", t)
	}

	return b, nil
}

func encodeExpr(v constraint.Term) (json.RawMessage, error) {
	env, err := buildEnvelope(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(env)
}

func buildEnvelope(v constraint.Term) (exprEnvelope, error) {
	switch e := v.(type) {
	case constraint.EqExpr:
		return envelopeLhsRhs("eq", e.Lhs, e.Rhs)
	case constraint.LtExpr:
		return envelopeLhsRhs("lt", e.Lhs, e.Rhs)
	case constraint.LeExpr:
		return envelopeLhsRhs("le", e.Lhs, e.Rhs)
	case constraint.InSetExpr:
		value, err := encodeExpr(e.Value)
		if err != nil {
			return exprEnvelope{}, err
		}

		set := make([]json.RawMessage, len(e.Set))
		for i, m := range e.Set {
			raw, err := encodeExpr(m)
			if err != nil {
				return exprEnvelope{}, err
			}

			set[i] = raw
		}

		return exprEnvelope{Kind: "in-set", Value: value, Set: set}, nil
	case constraint.AndExpr:
		return envelopeOperands("and", e.Operands)
	case constraint.OrExpr:
		return envelopeOperands("or", e.Operands)
	case constraint.ImpliesExpr:
		antecedent, err := encodeExpr(e.Antecedent)
		if err != nil {
			return exprEnvelope{}, err
		}

		consequent, err := encodeExpr(e.Consequent)
		if err != nil {
			return exprEnvelope{}, err
		}

		return exprEnvelope{Kind: "implies", Antecedent: antecedent, Consequent: consequent}, nil
	case constraint.NotExpr:
		operand, err := encodeExpr(e.Operand)
		if err != nil {
			return exprEnvelope{}, err
		}

		return exprEnvelope{Kind: "not", Operand: operand}, nil
	case constraint.FallThroughExpr:
		match, err := encodeExpr(e.Match)
		if err != nil {
			return exprEnvelope{}, err
		}

		block, err := encodeExpr(e.Block)
		if err != nil {
			return exprEnvelope{}, err
		}

		return exprEnvelope{Kind: "fall-through", Match: match, Block: block}, nil
	case constraint.DistanceExpr:
		lhs, err := encodeExpr(e.Lhs)
		if err != nil {
			return exprEnvelope{}, err
		}

		rhs, err := encodeExpr(e.Rhs)
		if err != nil {
			return exprEnvelope{}, err
		}

		bound, err := encodeExpr(e.Bound)
		if err != nil {
			return exprEnvelope{}, err
		}

		return exprEnvelope{Kind: "distance", Lhs: lhs, Rhs: rhs, Bound: bound}, nil

	case constraint.IntLitExpr:
		v := e.Value
		return exprEnvelope{Kind: "int-lit", IntValue: &v}, nil
	case constraint.NumOfNodeExpr:
		return envelopeSingle("num-of-node", "node", e.Node)
	case constraint.NumOfMatchExpr:
		return envelopeSingle("num-of-match", "match", e.Match)
	case constraint.NumOfLocationExpr:
		return envelopeSingle("num-of-location", "location", e.Location)
	case constraint.NumOfBlockExpr:
		return envelopeSingle("num-of-block", "block", e.Block)
	case constraint.NumOfInstructionExpr:
		return envelopeSingle("num-of-instruction", "instruction", e.Instruction)
	case constraint.AddExpr:
		return envelopeLhsRhs("add", e.Lhs, e.Rhs)
	case constraint.SubExpr:
		return envelopeLhsRhs("sub", e.Lhs, e.Rhs)
	case constraint.MulExpr:
		return envelopeLhsRhs("mul", e.Lhs, e.Rhs)

	case constraint.ANodeIDExpr:
		return envelopeID("node-id", e.ID), nil
	case constraint.ANodeArrayIndexExpr:
		return envelopeIndex("node-array-index", e.Index), nil

	case constraint.AMatchIDExpr:
		return envelopeID("match-id", e.ID), nil
	case constraint.AMatchArrayIndexExpr:
		return envelopeIndex("match-array-index", e.Index), nil
	case constraint.ThisMatchExpr:
		return exprEnvelope{Kind: "this-match"}, nil

	case constraint.ALocationIDExpr:
		return envelopeID("location-id", e.ID), nil
	case constraint.ALocationArrayIndexExpr:
		return envelopeIndex("location-array-index", e.Index), nil
	case constraint.LocationOfValueNodeExpr:
		return envelopeSingle("location-of-value-node", "node", e.Node)

	case constraint.ABlockIDExpr:
		return envelopeID("block-id", e.ID), nil
	case constraint.ABlockArrayIndexExpr:
		return envelopeIndex("block-array-index", e.Index), nil
	case constraint.BlockOfNodeExpr:
		return envelopeSingle("block-of-node", "node", e.Node)
	case constraint.BlockOfMatchExpr:
		return envelopeSingle("block-of-match", "match", e.Match)

	case constraint.AInstructionIDExpr:
		return envelopeID("instruction-id", e.ID), nil
	case constraint.AInstructionArrayIndexExpr:
		return envelopeIndex("instruction-array-index", e.Index), nil

	default:
		return exprEnvelope{}, fmt.Errorf("wire: unrecognized constraint expression type %T", v)
	}
}

func envelopeLhsRhs(kind string, lhs, rhs constraint.Term) (exprEnvelope, error) {
	l, err := encodeExpr(lhs)
	if err != nil {
		return exprEnvelope{}, err
	}

	r, err := encodeExpr(rhs)
	if err != nil {
		return exprEnvelope{}, err
	}

	return exprEnvelope{Kind: kind, Lhs: l, Rhs: r}, nil
}

func envelopeOperands(kind string, operands []constraint.BoolExpr) (exprEnvelope, error) {
	raw := make([]json.RawMessage, len(operands))

	for i, o := range operands {
		r, err := encodeExpr(o)
		if err != nil {
			return exprEnvelope{}, err
		}

		raw[i] = r
	}

	return exprEnvelope{Kind: kind, Operands: raw}, nil
}

func envelopeSingle(kind, field string, operand constraint.Term) (exprEnvelope, error) {
	raw, err := encodeExpr(operand)
	if err != nil {
		return exprEnvelope{}, err
	}

	env := exprEnvelope{Kind: kind}

	switch field {
	case "node":
		env.Node = raw
	case "match":
		env.Match = raw
	case "location":
		env.Location = raw
	case "block":
		env.Block = raw
	case "instruction":
		env.Instruction = raw
	}

	return env, nil
}

func envelopeID(kind string, id uint64) exprEnvelope {
	return exprEnvelope{Kind: kind, ID: &id}
}

func envelopeIndex(kind string, index uint) exprEnvelope {
	return exprEnvelope{Kind: kind, Index: &index}
}

func decodeExpr(data json.RawMessage) (constraint.Term, error) {
	var env exprEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("wire: decoding constraint expression: %w", err)
	}

	switch env.Kind {
	case "eq":
		return decodeLhsRhs(env, func(l, r constraint.Term) constraint.Term { return constraint.EqExpr{Lhs: l, Rhs: r} })
	case "lt":
		return decodeLhsRhs(env, func(l, r constraint.Term) constraint.Term { return constraint.LtExpr{Lhs: l, Rhs: r} })
	case "le":
		return decodeLhsRhs(env, func(l, r constraint.Term) constraint.Term { return constraint.LeExpr{Lhs: l, Rhs: r} })
	case "in-set":
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}

		set := make([]constraint.Term, len(env.Set))
		for i, raw := range env.Set {
			m, err := decodeExpr(raw)
			if err != nil {
				return nil, err
			}

			set[i] = m
		}

		return constraint.InSetExpr{Value: value, Set: set}, nil
	case "and":
		ops, err := decodeBoolOperands(env.Operands)
		if err != nil {
			return nil, err
		}

		return constraint.AndExpr{Operands: ops}, nil
	case "or":
		ops, err := decodeBoolOperands(env.Operands)
		if err != nil {
			return nil, err
		}

		return constraint.OrExpr{Operands: ops}, nil
	case "implies":
		antecedent, err := decodeBool(env.Antecedent)
		if err != nil {
			return nil, err
		}

		consequent, err := decodeBool(env.Consequent)
		if err != nil {
			return nil, err
		}

		return constraint.ImpliesExpr{Antecedent: antecedent, Consequent: consequent}, nil
	case "not":
		operand, err := decodeBool(env.Operand)
		if err != nil {
			return nil, err
		}

		return constraint.NotExpr{Operand: operand}, nil
	case "fall-through":
		match, err := decodeMatch(env.Match)
		if err != nil {
			return nil, err
		}

		block, err := decodeBlock(env.Block)
		if err != nil {
			return nil, err
		}

		return constraint.FallThroughExpr{Match: match, Block: block}, nil
	case "distance":
		lhs, err := decodeNum(env.Lhs)
		if err != nil {
			return nil, err
		}

		rhs, err := decodeNum(env.Rhs)
		if err != nil {
			return nil, err
		}

		bound, err := decodeNum(env.Bound)
		if err != nil {
			return nil, err
		}

		return constraint.DistanceExpr{Lhs: lhs, Rhs: rhs, Bound: bound}, nil

	case "int-lit":
		if env.IntValue == nil {
			return nil, fmt.Errorf("wire: int-lit missing int-value")
		}

		return constraint.IntLitExpr{Value: *env.IntValue}, nil
	case "num-of-node":
		n, err := decodeNode(env.Node)
		if err != nil {
			return nil, err
		}

		return constraint.NumOfNodeExpr{Node: n}, nil
	case "num-of-match":
		m, err := decodeMatch(env.Match)
		if err != nil {
			return nil, err
		}

		return constraint.NumOfMatchExpr{Match: m}, nil
	case "num-of-location":
		l, err := decodeLocation(env.Location)
		if err != nil {
			return nil, err
		}

		return constraint.NumOfLocationExpr{Location: l}, nil
	case "num-of-block":
		b, err := decodeBlock(env.Block)
		if err != nil {
			return nil, err
		}

		return constraint.NumOfBlockExpr{Block: b}, nil
	case "num-of-instruction":
		i, err := decodeInstruction(env.Instruction)
		if err != nil {
			return nil, err
		}

		return constraint.NumOfInstructionExpr{Instruction: i}, nil
	case "add":
		return decodeNumLhsRhs(env, func(l, r constraint.NumExpr) constraint.Term { return constraint.AddExpr{Lhs: l, Rhs: r} })
	case "sub":
		return decodeNumLhsRhs(env, func(l, r constraint.NumExpr) constraint.Term { return constraint.SubExpr{Lhs: l, Rhs: r} })
	case "mul":
		return decodeNumLhsRhs(env, func(l, r constraint.NumExpr) constraint.Term { return constraint.MulExpr{Lhs: l, Rhs: r} })

	case "node-id":
		id, err := requireID(env)
		if err != nil {
			return nil, err
		}

		return constraint.ANodeIDExpr{ID: id}, nil
	case "node-array-index":
		idx, err := requireIndex(env)
		if err != nil {
			return nil, err
		}

		return constraint.ANodeArrayIndexExpr{Index: idx}, nil

	case "match-id":
		id, err := requireID(env)
		if err != nil {
			return nil, err
		}

		return constraint.AMatchIDExpr{ID: id}, nil
	case "match-array-index":
		idx, err := requireIndex(env)
		if err != nil {
			return nil, err
		}

		return constraint.AMatchArrayIndexExpr{Index: idx}, nil
	case "this-match":
		return constraint.ThisMatchExpr{}, nil

	case "location-id":
		id, err := requireID(env)
		if err != nil {
			return nil, err
		}

		return constraint.ALocationIDExpr{ID: id}, nil
	case "location-array-index":
		idx, err := requireIndex(env)
		if err != nil {
			return nil, err
		}

		return constraint.ALocationArrayIndexExpr{Index: idx}, nil
	case "location-of-value-node":
		n, err := decodeNode(env.Node)
		if err != nil {
			return nil, err
		}

		return constraint.LocationOfValueNodeExpr{Node: n}, nil

	case "block-id":
		id, err := requireID(env)
		if err != nil {
			return nil, err
		}

		return constraint.ABlockIDExpr{ID: id}, nil
	case "block-array-index":
		idx, err := requireIndex(env)
		if err != nil {
			return nil, err
		}

		return constraint.ABlockArrayIndexExpr{Index: idx}, nil
	case "block-of-node":
		n, err := decodeNode(env.Node)
		if err != nil {
			return nil, err
		}

		return constraint.BlockOfNodeExpr{Node: n}, nil
	case "block-of-match":
		m, err := decodeMatch(env.Match)
		if err != nil {
			return nil, err
		}

		return constraint.BlockOfMatchExpr{Match: m}, nil

	case "instruction-id":
		id, err := requireID(env)
		if err != nil {
			return nil, err
		}

		return constraint.AInstructionIDExpr{ID: id}, nil
	case "instruction-array-index":
		idx, err := requireIndex(env)
		if err != nil {
			return nil, err
		}

		return constraint.AInstructionArrayIndexExpr{Index: idx}, nil

	default:
		return nil, fmt.Errorf("wire: unrecognized constraint expression kind %q", env.Kind)
	}
}

func decodeLhsRhs(env exprEnvelope, mk func(l, r constraint.Term) constraint.Term) (constraint.Term, error) {
	lhs, err := decodeExpr(env.Lhs)
	if err != nil {
		return nil, err
	}

	rhs, err := decodeExpr(env.Rhs)
	if err != nil {
		return nil, err
	}

	return mk(lhs, rhs), nil
}

func decodeNumLhsRhs(env exprEnvelope, mk func(l, r constraint.NumExpr) constraint.Term) (constraint.Term, error) {
	lhs, err := decodeNum(env.Lhs)
	if err != nil {
		return nil, err
	}

	rhs, err := decodeNum(env.Rhs)
	if err != nil {
		return nil, err
	}

	return mk(lhs, rhs), nil
}

func decodeBoolOperands(raw []json.RawMessage) ([]constraint.BoolExpr, error) {
	out := make([]constraint.BoolExpr, len(raw))

	for i, r := range raw {
		b, err := decodeBool(r)
		if err != nil {
			return nil, err
		}

		out[i] = b
	}

	return out, nil
}

func decodeBool(data json.RawMessage) (constraint.BoolExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	b, ok := t.(constraint.BoolExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a boolean expression, decoded %T", t)
	}

	return b, nil
}

func decodeNum(data json.RawMessage) (constraint.NumExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	n, ok := t.(constraint.NumExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a numeric expression, decoded %T", t)
	}

	return n, nil
}

func decodeNode(data json.RawMessage) (constraint.NodeExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	n, ok := t.(constraint.NodeExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a node expression, decoded %T", t)
	}

	return n, nil
}

func decodeMatch(data json.RawMessage) (constraint.MatchExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	m, ok := t.(constraint.MatchExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a match expression, decoded %T", t)
	}

	return m, nil
}

func decodeLocation(data json.RawMessage) (constraint.LocationExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	l, ok := t.(constraint.LocationExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a location expression, decoded %T", t)
	}

	return l, nil
}

func decodeBlock(data json.RawMessage) (constraint.BlockExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	b, ok := t.(constraint.BlockExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected a block expression, decoded %T", t)
	}

	return b, nil
}

func decodeInstruction(data json.RawMessage) (constraint.InstructionExpr, error) {
	t, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}

	i, ok := t.(constraint.InstructionExpr)
	if !ok {
		return nil, fmt.Errorf("wire: expected an instruction expression, decoded %T", t)
	}

	return i, nil
}

func requireID(env exprEnvelope) (uint64, error) {
	if env.ID == nil {
		return 0, fmt.Errorf("wire: %q missing id", env.Kind)
	}

	return *env.ID, nil
}

func requireIndex(env exprEnvelope) (uint, error) {
	if env.Index == nil {
		return 0, fmt.Errorf("wire: %q missing index", env.Kind)
	}

	return *env.Index, nil
}
