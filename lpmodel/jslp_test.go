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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func f64(v float64) *float64 { return &v }

func TestEncodeJSLP_Knapsack(t *testing.T) {
	m := knapsackModel(t)
	req, err := m.EncodeJSLP()
	if err != nil {
		t.Fatalf("EncodeJSLP() returned error %v", err)
	}

	want := &JSLPRequest{
		Optimize: "obj",
		OpType:   "max",
		Constraints: map[string]JSLPConstraint{
			"c0": {Max: f64(15)},
		},
		Variables: map[string]map[string]float64{
			"A": {"obj": 4, "c0": 3},
			"B": {"obj": 5, "c0": 4},
			"C": {"obj": 8, "c0": 5},
			"D": {"obj": 10, "c0": 8},
		},
		Binaries: map[string]bool{"A": true, "B": true, "C": true, "D": true},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("EncodeJSLP() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSLP_BoundSynthesis(t *testing.T) {
	m := NewModel()
	if _, err := m.AddVar(WithName("a"), WithBounds(2, 8)); err != nil {
		t.Fatalf("AddVar(a) returned error %v", err)
	}
	if _, err := m.AddVar(WithName("b"), WithBounds(math.Inf(-1), math.Inf(1))); err != nil {
		t.Fatalf("AddVar(b) returned error %v", err)
	}
	if _, err := m.AddVar(WithName("c"), WithBounds(-3, 5), AsInteger()); err != nil {
		t.Fatalf("AddVar(c) returned error %v", err)
	}

	req, err := m.EncodeJSLP()
	if err != nil {
		t.Fatalf("EncodeJSLP() returned error %v", err)
	}

	wantConstraints := map[string]JSLPConstraint{
		"a_lb": {Min: f64(2)},
		"a_ub": {Max: f64(8)},
		"c_lb": {Min: f64(-3)},
		"c_ub": {Max: f64(5)},
	}
	if diff := cmp.Diff(wantConstraints, req.Constraints); diff != "" {
		t.Errorf("Constraints mismatch (-want +got):\n%s", diff)
	}
	wantVars := map[string]map[string]float64{
		"a": {"a_lb": 1, "a_ub": 1},
		"b": {},
		"c": {"c_lb": 1, "c_ub": 1},
	}
	if diff := cmp.Diff(wantVars, req.Variables); diff != "" {
		t.Errorf("Variables mismatch (-want +got):\n%s", diff)
	}
	wantUnrestricted := map[string]bool{"b": true, "c": true}
	if diff := cmp.Diff(wantUnrestricted, req.Unrestricted); diff != "" {
		t.Errorf("Unrestricted mismatch (-want +got):\n%s", diff)
	}
	wantInts := map[string]bool{"c": true}
	if diff := cmp.Diff(wantInts, req.Ints); diff != "" {
		t.Errorf("Ints mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSLP_QuadraticRejected(t *testing.T) {
	m := NewModel()
	x, _ := m.AddVar(WithName("x"))
	if _, err := m.AddConstraint([]any{QuadTerm{1, x, x}}, "<=", 4); err != nil {
		t.Fatalf("AddConstraint() returned error %v", err)
	}
	if _, err := m.EncodeJSLP(); !errors.Is(err, ErrQuadraticUnsupported) {
		t.Errorf("EncodeJSLP() = %v, want ErrQuadraticUnsupported", err)
	}
}

func TestJSLPResponse_UnmarshalFlatDocument(t *testing.T) {
	raw := `{"feasible": true, "result": 19, "A": 1, "B": 1, "D": 1, "isIntegral": true}`
	var resp JSLPResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("Unmarshal() returned error %v", err)
	}
	want := JSLPResponse{
		Feasible: true,
		Bounded:  true, // defaults to true when absent
		Result:   19,
		Values:   map[string]float64{"A": 1, "B": 1, "D": 1},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestJSLPResponse_UnmarshalExplicitBounded(t *testing.T) {
	raw := `{"feasible": true, "bounded": false, "result": 0}`
	var resp JSLPResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("Unmarshal() returned error %v", err)
	}
	if resp.Bounded {
		t.Error("Bounded = true, want false")
	}
}

func TestDecodeJSLP_Optimal(t *testing.T) {
	m := knapsackModel(t)
	resp := &JSLPResponse{
		Feasible: true,
		Bounded:  true,
		Result:   19,
		// C is absent: the engine omits zero-valued variables.
		Values: map[string]float64{"A": 1, "B": 1, "D": 1},
	}
	res := m.DecodeJSLP(resp)

	if res.Status != StatusOptimal {
		t.Errorf("Status = %v, want Optimal", res.Status)
	}
	if !res.HasObjectiveValue || res.ObjectiveValue != 19 {
		t.Errorf("ObjectiveValue = %v, %t, want 19, true", res.ObjectiveValue, res.HasObjectiveValue)
	}
	for name, want := range map[string]float64{"A": 1, "B": 1, "C": 0, "D": 1} {
		v, _ := m.Var(name)
		got, ok := v.Value()
		if !ok || got != want {
			t.Errorf("Value(%s) = %v, %t, want %v, true", name, got, ok, want)
		}
	}
	// The engine never reports constraint activity.
	if _, ok := m.Constraints()[0].Primal(); ok {
		t.Error("Primal() set by a jsLPSolver-style decode")
	}
}

func TestDecodeJSLP_StatusMapping(t *testing.T) {
	testCases := []struct {
		name              string
		feasible, bounded bool
		want              Status
	}{
		{name: "FeasibleBounded", feasible: true, bounded: true, want: StatusOptimal},
		{name: "FeasibleUnbounded", feasible: true, bounded: false, want: StatusUnbounded},
		{name: "InfeasibleBounded", feasible: false, bounded: true, want: StatusInfeasible},
		{name: "InfeasibleUnbounded", feasible: false, bounded: false, want: StatusUndefined},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, x := infeasibleModel(t)
			res := m.DecodeJSLP(&JSLPResponse{Feasible: tc.feasible, Bounded: tc.bounded})
			if res.Status != tc.want {
				t.Errorf("Status = %v, want %v", res.Status, tc.want)
			}
			if tc.feasible {
				if _, ok := x.Value(); !ok {
					t.Error("Value(x) unset on feasible solve")
				}
			} else {
				if _, ok := x.Value(); ok {
					t.Error("Value(x) set on infeasible solve")
				}
				if res.HasObjectiveValue {
					t.Error("objective value set on infeasible solve")
				}
			}
		})
	}
}

func TestDecodeJSLP_ObjectiveConstantAddedBack(t *testing.T) {
	m := NewModel()
	x, _ := m.AddVar(WithName("x"))
	if err := m.SetObjective(Maximize, x, 2); err != nil {
		t.Fatalf("SetObjective() returned error %v", err)
	}
	if _, err := m.AddConstraint(x, "<=", 3); err != nil {
		t.Fatalf("AddConstraint() returned error %v", err)
	}
	res := m.DecodeJSLP(&JSLPResponse{
		Feasible: true,
		Bounded:  true,
		Result:   3,
		Values:   map[string]float64{"x": 3},
	})
	if !res.HasObjectiveValue || res.ObjectiveValue != 5 {
		t.Errorf("ObjectiveValue = %v, %t, want 5, true", res.ObjectiveValue, res.HasObjectiveValue)
	}
}

func TestDecodeJSLP_ExtraValueDiagnostic(t *testing.T) {
	m := NewModel()
	if _, err := m.AddVar(WithName("x")); err != nil {
		t.Fatalf("AddVar(x) returned error %v", err)
	}
	res := m.DecodeJSLP(&JSLPResponse{
		Feasible: true,
		Bounded:  true,
		Values:   map[string]float64{"x": 1, "ghost": 2},
	})
	want := []Diagnostic{{Engine: "jsLPSolver", Name: "ghost", Detail: "value matches no variable"}}
	if diff := cmp.Diff(want, res.Diagnostics); diff != "" {
		t.Errorf("Diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSLP_NilResponse(t *testing.T) {
	m := NewModel()
	res := m.DecodeJSLP(nil)
	if res.Status != StatusUndefined {
		t.Errorf("Status = %v, want Undefined", res.Status)
	}
}
