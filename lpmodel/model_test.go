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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddVar_Defaults(t *testing.T) {
	m := NewModel()
	v, err := m.AddVar()
	if err != nil {
		t.Fatalf("AddVar() returned error %v", err)
	}
	if got, want := v.Name(), "Var0"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if got := v.LowerBound(); got != 0 {
		t.Errorf("LowerBound() = %v, want 0", got)
	}
	if got := v.UpperBound(); !math.IsInf(got, 1) {
		t.Errorf("UpperBound() = %v, want +inf", got)
	}
	if got := v.Kind(); got != Continuous {
		t.Errorf("Kind() = %v, want continuous", got)
	}
	if _, ok := v.Value(); ok {
		t.Error("Value() populated before any solve")
	}
}

func TestAddVar_AutoNameSkipsTaken(t *testing.T) {
	m := NewModel()
	if _, err := m.AddVar(WithName("Var1")); err != nil {
		t.Fatalf("AddVar(Var1) returned error %v", err)
	}
	v, err := m.AddVar()
	if err != nil {
		t.Fatalf("AddVar() returned error %v", err)
	}
	if got, want := v.Name(), "Var2"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestAddVar_DuplicateName(t *testing.T) {
	m := NewModel()
	if _, err := m.AddVar(WithName("x")); err != nil {
		t.Fatalf("AddVar(x) returned error %v", err)
	}
	_, err := m.AddVar(WithName("x"), AsInteger())
	if !errors.Is(err, ErrDuplicateVariableName) {
		t.Fatalf("AddVar(x) again = %v, want ErrDuplicateVariableName", err)
	}
	// The failed call must not have touched the model.
	if got, want := m.NumVars(), 1; got != want {
		t.Errorf("NumVars() = %v, want %v", got, want)
	}
	if v, _ := m.Var("x"); v.Kind() != Continuous {
		t.Errorf("Kind() = %v, want continuous", v.Kind())
	}
}

func TestAddVar_InvalidSpec(t *testing.T) {
	testCases := []struct {
		name string
		opts []VarOption
	}{
		{name: "NaNLowerBound", opts: []VarOption{WithLowerBound(math.NaN())}},
		{name: "NaNUpperBound", opts: []VarOption{WithUpperBound(math.NaN())}},
		{name: "LowerBoundPlusInf", opts: []VarOption{WithLowerBound(math.Inf(1))}},
		{name: "UpperBoundMinusInf", opts: []VarOption{WithUpperBound(math.Inf(-1))}},
		{name: "UnknownKind", opts: []VarOption{WithKind(VarKind(42))}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel()
			if _, err := m.AddVar(tc.opts...); !errors.Is(err, ErrInvalidVariableSpec) {
				t.Errorf("AddVar() = %v, want ErrInvalidVariableSpec", err)
			}
			if m.NumVars() != 0 {
				t.Errorf("NumVars() = %v after failed AddVar, want 0", m.NumVars())
			}
		})
	}
}

func TestAddVars_Uniform(t *testing.T) {
	m := NewModel()
	vars, err := m.AddVars(3, AsBinary())
	if err != nil {
		t.Fatalf("AddVars(3) returned error %v", err)
	}
	var names []string
	for _, v := range vars {
		names = append(names, v.Name())
		if v.Kind() != Binary {
			t.Errorf("Kind(%s) = %v, want binary", v.Name(), v.Kind())
		}
	}
	want := []string{"Var0", "Var1", "Var2"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("AddVars names mismatch (-want +got):\n%s", diff)
	}
}

func TestVar_Lookup(t *testing.T) {
	m := NewModel()
	x, err := m.AddVar(WithName("x"))
	if err != nil {
		t.Fatalf("AddVar(x) returned error %v", err)
	}
	got, ok := m.Var("x")
	if !ok || got != x {
		t.Errorf("Var(x) = %v, %t, want %v, true", got, ok, x)
	}
	if _, ok := m.Var("y"); ok {
		t.Error("Var(y) found, want missing")
	}
}

func TestEffectiveBounds_Binary(t *testing.T) {
	m := NewModel()
	b, err := m.AddVar(WithName("b"), AsBinary())
	if err != nil {
		t.Fatalf("AddVar(b) returned error %v", err)
	}
	// Stored bounds keep the declaration defaults.
	if got := b.UpperBound(); !math.IsInf(got, 1) {
		t.Errorf("UpperBound() = %v, want +inf", got)
	}
	lb, ub := m.effectiveBounds(b.Index())
	if lb != 0 || ub != 1 {
		t.Errorf("effectiveBounds() = (%v, %v), want (0, 1)", lb, ub)
	}
}

func TestSetObjective_ReplacesPrevious(t *testing.T) {
	m := NewModel()
	x, _ := m.AddVar(WithName("x"))
	y, _ := m.AddVar(WithName("y"))
	if err := m.SetObjective(Minimize, LinTerm{2, x}); err != nil {
		t.Fatalf("SetObjective() returned error %v", err)
	}
	if err := m.SetObjective(Maximize, LinTerm{3, y}, 1); err != nil {
		t.Fatalf("SetObjective() returned error %v", err)
	}
	want := Expr{Constant: 1, Terms: []Term{{Coef: 3, X: y.Index(), Y: NoVar}}}
	if diff := cmp.Diff(&want, m.Objective()); diff != "" {
		t.Errorf("Objective mismatch (-want +got):\n%s", diff)
	}
	if m.Sense() != Maximize {
		t.Errorf("Sense() = %v, want Maximize", m.Sense())
	}
}

func TestSetObjective_InvalidTermKeepsOld(t *testing.T) {
	m := NewModel()
	x, _ := m.AddVar(WithName("x"))
	if err := m.SetObjective(Minimize, x); err != nil {
		t.Fatalf("SetObjective() returned error %v", err)
	}
	err := m.SetObjective(Maximize, "not a term")
	if !errors.Is(err, ErrInvalidExpressionTerm) {
		t.Fatalf("SetObjective(bad) = %v, want ErrInvalidExpressionTerm", err)
	}
	if m.Sense() != Minimize {
		t.Errorf("Sense() = %v after failed SetObjective, want Minimize", m.Sense())
	}
	want := Expr{Terms: []Term{{Coef: 1, X: x.Index(), Y: NoVar}}}
	if diff := cmp.Diff(&want, m.Objective()); diff != "" {
		t.Errorf("Objective mismatch (-want +got):\n%s", diff)
	}
}
