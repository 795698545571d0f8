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
	"context"
	"fmt"
)

// Status is the outcome of a solve, mapped onto a common enumeration from
// each engine's native status encoding.
type Status int

const (
	// StatusNotSolved means no solve has completed on this model.
	StatusNotSolved Status = iota
	// StatusUndefined means the engine reported no usable status.
	StatusUndefined
	// StatusFeasible means a feasible but not proven optimal solution was found.
	StatusFeasible
	// StatusInfeasible means the problem has no feasible solution.
	StatusInfeasible
	// StatusUnbounded means the objective is unbounded in the solve direction.
	StatusUnbounded
	// StatusOptimal means an optimal solution was found.
	StatusOptimal
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNotSolved:
		return "NotSolved"
	case StatusUndefined:
		return "Undefined"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusOptimal:
		return "Optimal"
	}
	return "Unknown"
}

// Options is an opaque bag of engine options. It is passed through to the
// backend untouched; option names and value types are engine-specific.
type Options map[string]any

// Diagnostic records a non-fatal mismatch observed while decoding an engine
// response, such as a solution column that names no model variable. The
// corresponding model field is left at its cleared default.
type Diagnostic struct {
	Engine string
	Name   string
	Detail string
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %q: %s", d.Engine, d.Name, d.Detail)
}

// SolveResult summarizes one completed solve. The same information is also
// written into the model's variables, constraints, and session fields.
type SolveResult struct {
	// Status is the common four-way status plus Optimal.
	Status Status
	// RawStatus is the engine's native status rendering, where the engine
	// provides one (the LP-text engine reports status as a string).
	RawStatus string
	// ObjectiveValue includes the model's objective constant, which every
	// engine request omits.
	ObjectiveValue float64
	// HasObjectiveValue is false when the engine reported no objective.
	HasObjectiveValue bool
	// Diagnostics lists the non-fatal mismatches observed during decoding.
	Diagnostics []Diagnostic
	// Response is the raw engine response.
	Response any
}

// Backend is an adapter around one external solving engine. A backend must
// additionally implement exactly one of the capability interfaces
// GLPKBackend, HiGHSBackend, or JSLPBackend; Solve dispatches on which one
// it finds, in that order.
type Backend interface {
	// Engine returns a short engine name used in errors and diagnostics.
	Engine() string
}

// GLPKBackend solves the GLPK-style request schema.
type GLPKBackend interface {
	Backend
	SolveGLPK(ctx context.Context, req *GLPKRequest, opts Options) (*GLPKResponse, error)
}

// HiGHSBackend solves the model from its LP-format text.
type HiGHSBackend interface {
	Backend
	SolveLP(ctx context.Context, lp string, opts Options) (*HiGHSResponse, error)
}

// JSLPBackend solves the jsLPSolver-style sparse map schema.
type JSLPBackend interface {
	Backend
	SolveJSLP(ctx context.Context, req *JSLPRequest, opts Options) (*JSLPResponse, error)
}

// Solve encodes the model for the backend's engine, calls the backend, and
// decodes the response into the model's variables, constraints, and status
// fields.
//
// Every invocation starts by clearing all solution-session fields, so a
// failed or partial solve never leaves stale values behind, and repeated
// solves with different backends on the same model are independent. Solve
// itself never retries and imposes no timeout; cancellation and engine
// timeouts are the caller's responsibility via ctx and opts.
func (m *Model) Solve(ctx context.Context, backend Backend, opts Options) (*SolveResult, error) {
	m.resetSolution()
	switch b := backend.(type) {
	case GLPKBackend:
		req, err := m.EncodeGLPK()
		if err != nil {
			return nil, err
		}
		resp, err := b.SolveGLPK(ctx, req, opts)
		if err != nil {
			return nil, fmt.Errorf("engine %s: %w", backend.Engine(), err)
		}
		return m.DecodeGLPK(resp), nil
	case HiGHSBackend:
		resp, err := b.SolveLP(ctx, m.WriteLP(), opts)
		if err != nil {
			return nil, fmt.Errorf("engine %s: %w", backend.Engine(), err)
		}
		return m.DecodeHiGHS(resp), nil
	case JSLPBackend:
		req, err := m.EncodeJSLP()
		if err != nil {
			return nil, err
		}
		resp, err := b.SolveJSLP(ctx, req, opts)
		if err != nil {
			return nil, fmt.Errorf("engine %s: %w", backend.Engine(), err)
		}
		return m.DecodeJSLP(resp), nil
	case nil:
		return nil, fmt.Errorf("nil backend: %w", ErrUnknownBackend)
	}
	return nil, fmt.Errorf("engine %s: %w", backend.Engine(), ErrUnknownBackend)
}

// resetSolution clears all solve-session state: the model status, the
// objective value, the raw response, the diagnostics, every variable value,
// and every constraint's primal and dual.
func (m *Model) resetSolution() {
	m.status = StatusNotSolved
	m.rawStatus = ""
	m.objValue = 0
	m.hasObjValue = false
	m.response = nil
	m.diags = nil
	for i := range m.vars {
		m.vars[i].value = 0
		m.vars[i].hasValue = false
	}
	for _, c := range m.constraints {
		c.primal, c.hasPrimal = 0, false
		c.dual, c.hasDual = 0, false
	}
}

// result assembles the SolveResult view of the model's session fields.
func (m *Model) result() *SolveResult {
	return &SolveResult{
		Status:            m.status,
		RawStatus:         m.rawStatus,
		ObjectiveValue:    m.objValue,
		HasObjectiveValue: m.hasObjValue,
		Diagnostics:       m.diags,
		Response:          m.response,
	}
}

// isContinuous reports whether the model has no integer or binary variables.
// Engines report constraint duals for continuous solves only.
func (m *Model) isContinuous() bool {
	for _, d := range m.vars {
		if d.kind != Continuous {
			return false
		}
	}
	return true
}

// diag appends a decoding diagnostic.
func (m *Model) diag(engine, name, detail string) {
	m.diags = append(m.diags, Diagnostic{Engine: engine, Name: name, Detail: detail})
}
