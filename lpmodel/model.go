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
	"fmt"
	"math"
)

// VarIndex is the index of a variable in the model's arena.
type VarIndex int32

// Sense is the objective direction.
type Sense int

const (
	// Minimize searches for the smallest objective value.
	Minimize Sense = iota
	// Maximize searches for the largest objective value.
	Maximize
)

// String returns the LP-format keyword for the sense.
func (s Sense) String() string {
	if s == Maximize {
		return "Maximize"
	}
	return "Minimize"
}

// Model holds the variables, the objective, and the constraints of one
// optimization problem, together with the results of the most recent solve.
//
// Variables live in an index-stable arena with a name lookup on the side, so
// insertion order is preserved and positional correlation with engine
// response rows and columns stays well-defined.
type Model struct {
	name        string
	vars        []varData
	varIndex    map[string]VarIndex
	constraints []*Constraint
	objective   Expr
	sense       Sense

	// Solve-session fields, reset at the start of every solve.
	status      Status
	rawStatus   string
	objValue    float64
	hasObjValue bool
	response    any
	diags       []Diagnostic
}

// NewModel creates and returns a new empty Model.
func NewModel() *Model {
	return &Model{varIndex: make(map[string]VarIndex)}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// SetName sets the model name. The name is only used when encoding requests
// for engines that carry one.
func (m *Model) SetName(name string) { m.name = name }

// varSpec collects the declaration attributes of a variable before it is
// committed to the arena.
type varSpec struct {
	name   string
	lb, ub float64
	kind   VarKind
}

// VarOption configures a variable declaration.
type VarOption func(*varSpec)

// WithName sets the variable name. Names are case-sensitive and must be
// unique within a model. If no name is given, one of the form Var<N> is
// generated.
func WithName(name string) VarOption {
	return func(s *varSpec) { s.name = name }
}

// WithBounds sets both bounds. Use math.Inf(-1) and math.Inf(1) for
// unbounded sides.
func WithBounds(lb, ub float64) VarOption {
	return func(s *varSpec) { s.lb, s.ub = lb, ub }
}

// WithLowerBound sets the lower bound.
func WithLowerBound(lb float64) VarOption {
	return func(s *varSpec) { s.lb = lb }
}

// WithUpperBound sets the upper bound.
func WithUpperBound(ub float64) VarOption {
	return func(s *varSpec) { s.ub = ub }
}

// WithKind sets the kind of the variable.
func WithKind(k VarKind) VarOption {
	return func(s *varSpec) { s.kind = k }
}

// AsInteger marks the variable as integer.
func AsInteger() VarOption { return WithKind(Integer) }

// AsBinary marks the variable as binary. Binary variables are solved with
// effective bounds [0,1] even though the stored bounds keep their defaults.
func AsBinary() VarOption { return WithKind(Binary) }

// AddVar declares a new variable and returns a reference to it. The default
// declaration is a continuous variable with bounds [0, +inf).
//
// The model is left untouched when the declaration is invalid or the name is
// already taken.
func (m *Model) AddVar(opts ...VarOption) (Variable, error) {
	spec := varSpec{lb: 0, ub: math.Inf(1), kind: Continuous}
	for _, opt := range opts {
		opt(&spec)
	}
	if err := spec.validate(); err != nil {
		return Variable{}, err
	}
	if spec.name == "" {
		spec.name = m.nextVarName()
	} else if _, taken := m.varIndex[spec.name]; taken {
		return Variable{}, fmt.Errorf("variable %q: %w", spec.name, ErrDuplicateVariableName)
	}

	ind := VarIndex(len(m.vars))
	m.vars = append(m.vars, varData{name: spec.name, lb: spec.lb, ub: spec.ub, kind: spec.kind})
	m.varIndex[spec.name] = ind
	return Variable{ind: ind, m: m}, nil
}

// AddVars declares n variables with uniform options and returns references
// to them. Names are auto-generated unless WithName is given, in which case
// only n == 1 is valid.
func (m *Model) AddVars(n int, opts ...VarOption) ([]Variable, error) {
	vars := make([]Variable, 0, n)
	for i := 0; i < n; i++ {
		v, err := m.AddVar(opts...)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// Var returns the variable with the given name.
func (m *Model) Var(name string) (Variable, bool) {
	ind, ok := m.varIndex[name]
	if !ok {
		return Variable{}, false
	}
	return Variable{ind: ind, m: m}, true
}

// Vars returns references to all variables in insertion order.
func (m *Model) Vars() []Variable {
	vars := make([]Variable, len(m.vars))
	for i := range m.vars {
		vars[i] = Variable{ind: VarIndex(i), m: m}
	}
	return vars
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int { return len(m.vars) }

// Constraints returns the constraints in insertion order.
func (m *Model) Constraints() []*Constraint { return m.constraints }

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// SetObjective canonicalizes the given terms and installs them as the
// objective with the given sense. The previous objective is replaced. The
// model keeps its old objective when a term is invalid.
func (m *Model) SetObjective(sense Sense, items ...any) error {
	e, err := m.canonicalize(items)
	if err != nil {
		return err
	}
	m.objective = e
	m.sense = sense
	return nil
}

// Objective returns the canonical objective expression.
func (m *Model) Objective() *Expr { return &m.objective }

// Sense returns the objective direction.
func (m *Model) Sense() Sense { return m.sense }

// Status returns the status of the most recent solve, or StatusNotSolved.
func (m *Model) Status() Status { return m.status }

// ObjectiveValue returns the objective value of the most recent solve. The
// second return value is false if no solve has populated it. The value
// includes the objective's constant term, which engine requests omit.
func (m *Model) ObjectiveValue() (float64, bool) {
	return m.objValue, m.hasObjValue
}

// Response returns the raw engine response of the most recent solve.
func (m *Model) Response() any { return m.response }

// Diagnostics returns the non-fatal diagnostics collected while decoding the
// most recent solve response.
func (m *Model) Diagnostics() []Diagnostic { return m.diags }

// nextVarName generates a fresh default variable name, skipping names that
// are already taken.
func (m *Model) nextVarName() string {
	for n := len(m.vars); ; n++ {
		name := fmt.Sprintf("Var%d", n)
		if _, taken := m.varIndex[name]; !taken {
			return name
		}
	}
}

func (s *varSpec) validate() error {
	if s.kind < Continuous || s.kind > Binary {
		return fmt.Errorf("kind %d: %w", s.kind, ErrInvalidVariableSpec)
	}
	if math.IsNaN(s.lb) || math.IsNaN(s.ub) {
		return fmt.Errorf("bound is NaN: %w", ErrInvalidVariableSpec)
	}
	if math.IsInf(s.lb, 1) {
		return fmt.Errorf("lower bound +inf: %w", ErrInvalidVariableSpec)
	}
	if math.IsInf(s.ub, -1) {
		return fmt.Errorf("upper bound -inf: %w", ErrInvalidVariableSpec)
	}
	return nil
}
