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

import "math"

// VarKind is the category of a decision variable.
type VarKind int

const (
	// Continuous variables may take any value within their bounds.
	Continuous VarKind = iota
	// Integer variables are restricted to integral values within their bounds.
	Integer
	// Binary variables are restricted to {0, 1}.
	Binary
)

// String returns a human-readable name for the kind.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	}
	return "unknown"
}

// Variable is a reference to a decision variable in a Model.
type Variable struct {
	ind VarIndex
	m   *Model
}

// Name returns the name of the variable.
func (v Variable) Name() string {
	return v.m.vars[v.ind].name
}

// Index returns the index of the variable in its model. Variables are never
// deleted, so the index is stable for the lifetime of the model.
func (v Variable) Index() VarIndex {
	return v.ind
}

// LowerBound returns the stored lower bound. math.Inf(-1) means the variable
// is unbounded below.
func (v Variable) LowerBound() float64 {
	return v.m.vars[v.ind].lb
}

// UpperBound returns the stored upper bound. math.Inf(1) means the variable
// is unbounded above.
func (v Variable) UpperBound() float64 {
	return v.m.vars[v.ind].ub
}

// Kind returns the kind of the variable.
func (v Variable) Kind() VarKind {
	return v.m.vars[v.ind].kind
}

// Value returns the solution value of the variable from the most recent
// solve. The second return value is false if no solve has populated it.
func (v Variable) Value() (float64, bool) {
	d := v.m.vars[v.ind]
	return d.value, d.hasValue
}

// varData is the arena entry backing a Variable handle.
type varData struct {
	name     string
	lb, ub   float64
	kind     VarKind
	value    float64
	hasValue bool
}

// effectiveBounds returns the bounds used for solving. Binary variables are
// clamped to [0,1] regardless of the stored bound fields.
func (m *Model) effectiveBounds(i VarIndex) (lb, ub float64) {
	d := m.vars[i]
	lb, ub = d.lb, d.ub
	if d.kind == Binary {
		lb = math.Max(lb, 0)
		ub = math.Min(ub, 1)
	}
	return lb, ub
}
