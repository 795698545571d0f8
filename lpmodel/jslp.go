// Copyright 2024 The lp-model Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lpmodel

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// JSLPConstraint is one named constraint of the sparse request schema.
// Exactly one of Min, Max, or Equal is set.
type JSLPConstraint struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Equal *float64 `json:"equal,omitempty"`
}

// JSLPRequest is the jsLPSolver-style engine request: the objective and
// every constraint appear as named coefficient entries in the per-variable
// maps.
//
// The engine has no native bound record. Non-default bounds are synthesized
// as extra constraints named <var>_lb and <var>_ub with a unit coefficient
// on the variable; a lower bound that is negative or unbounded below
// additionally sets the variable's unrestricted flag, since the engine
// assumes variables are non-negative by default.
type JSLPRequest struct {
	Optimize     string                        `json:"optimize"`
	OpType       string                        `json:"opType"`
	Constraints  map[string]JSLPConstraint     `json:"constraints"`
	Variables    map[string]map[string]float64 `json:"variables"`
	Ints         map[string]bool               `json:"ints,omitempty"`
	Binaries     map[string]bool               `json:"binaries,omitempty"`
	Unrestricted map[string]bool               `json:"unrestricted,omitempty"`
}

// JSLPResponse is the jsLPSolver-style engine response: a feasible/bounded
// status pair, the objective value, and a flat top-level map from variable
// name to value. Variables absent from the map took value 0. The engine
// never reports constraint primals or duals.
type JSLPResponse struct {
	Feasible bool
	Bounded  bool
	Result   float64
	Values   map[string]float64
}

// UnmarshalJSON reads the engine's flat document: the status keys live next
// to the variable values at the top level. Bounded defaults to true when
// absent.
func (r *JSLPResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Bounded = true
	r.Values = make(map[string]float64)
	for key, val := range raw {
		switch key {
		case "feasible":
			if err := json.Unmarshal(val, &r.Feasible); err != nil {
				return err
			}
		case "bounded":
			if err := json.Unmarshal(val, &r.Bounded); err != nil {
				return err
			}
		case "result":
			if err := json.Unmarshal(val, &r.Result); err != nil {
				return err
			}
		case "isIntegral":
			// Reported for MIP solves; carries no decodable value.
		default:
			var f float64
			if err := json.Unmarshal(val, &f); err != nil {
				// Non-numeric extras are not variable values.
				continue
			}
			r.Values[key] = f
		}
	}
	return nil
}

// MarshalJSON writes the flat document back out, mirroring UnmarshalJSON.
func (r *JSLPResponse) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Values)+3)
	for name, val := range r.Values {
		doc[name] = val
	}
	doc["feasible"] = r.Feasible
	doc["bounded"] = r.Bounded
	doc["result"] = r.Result
	return json.Marshal(doc)
}

// EncodeJSLP encodes the model into the jsLPSolver-style request schema.
// The engine accepts linear problems only; a model with quadratic terms
// fails with ErrQuadraticUnsupported.
func (m *Model) EncodeJSLP() (*JSLPRequest, error) {
	if err := m.checkLinear("jsLPSolver-style"); err != nil {
		return nil, err
	}

	opType := "min"
	if m.sense == Maximize {
		opType = "max"
	}
	req := &JSLPRequest{
		Optimize:    "obj",
		OpType:      opType,
		Constraints: make(map[string]JSLPConstraint),
		Variables:   make(map[string]map[string]float64),
	}
	for _, d := range m.vars {
		req.Variables[d.name] = make(map[string]float64)
	}

	for _, t := range m.objective.Terms {
		req.Variables[m.vars[t.X].name]["obj"] = t.Coef
	}

	for i, c := range m.constraints {
		name := jslpRowName(i)
		req.Constraints[name] = jslpRowBound(c.op, c.rhs)
		for _, t := range c.lhs.Terms {
			req.Variables[m.vars[t.X].name][name] = t.Coef
		}
	}

	for i, d := range m.vars {
		switch d.kind {
		case Binary:
			// The engine pins binaries to {0,1} itself; no bound synthesis.
			if req.Binaries == nil {
				req.Binaries = make(map[string]bool)
			}
			req.Binaries[d.name] = true
			continue
		case Integer:
			if req.Ints == nil {
				req.Ints = make(map[string]bool)
			}
			req.Ints[d.name] = true
		}

		lb, ub := m.effectiveBounds(VarIndex(i))
		if lb < 0 {
			// The engine assumes non-negative variables; lift that first.
			if req.Unrestricted == nil {
				req.Unrestricted = make(map[string]bool)
			}
			req.Unrestricted[d.name] = true
		}
		if lb != 0 && !math.IsInf(lb, -1) {
			cname := d.name + "_lb"
			v := lb
			req.Constraints[cname] = JSLPConstraint{Min: &v}
			req.Variables[d.name][cname] = 1
		}
		if !math.IsInf(ub, 1) {
			cname := d.name + "_ub"
			v := ub
			req.Constraints[cname] = JSLPConstraint{Max: &v}
			req.Variables[d.name][cname] = 1
		}
	}
	return req, nil
}

// DecodeJSLP clears the model's solution-session fields and ingests a
// jsLPSolver-style response. The feasible/bounded pair maps onto the common
// status enumeration; variable values come from the flat map, defaulting to
// zero for absent variables. Constraint primals and duals are never
// provided.
func (m *Model) DecodeJSLP(resp *JSLPResponse) *SolveResult {
	m.resetSolution()
	m.response = resp
	if resp == nil {
		m.status = StatusUndefined
		return m.result()
	}

	switch {
	case resp.Feasible && resp.Bounded:
		m.status = StatusOptimal
	case resp.Feasible:
		m.status = StatusUnbounded
	case resp.Bounded:
		m.status = StatusInfeasible
	default:
		m.status = StatusUndefined
	}

	if resp.Feasible {
		m.objValue = resp.Result + m.objective.Constant
		m.hasObjValue = true
		for i := range m.vars {
			// Absent from the map means the variable took value 0.
			m.vars[i].value = resp.Values[m.vars[i].name]
			m.vars[i].hasValue = true
		}
	}

	var extra []string
	for name := range resp.Values {
		if _, ok := m.varIndex[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		m.diag("jsLPSolver", name, "value matches no variable")
	}
	return m.result()
}

func jslpRowName(i int) string {
	return "c" + strconv.Itoa(i)
}

func jslpRowBound(op CmpOp, rhs float64) JSLPConstraint {
	v := rhs
	switch op {
	case LessEq:
		return JSLPConstraint{Max: &v}
	case GreaterEq:
		return JSLPConstraint{Min: &v}
	}
	return JSLPConstraint{Equal: &v}
}
