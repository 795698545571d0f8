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
	"sort"
)

// Objective direction codes of the GLPK-style schema.
const (
	GLPKMin = 1
	GLPKMax = 2
)

// Typed bound records of the GLPK-style schema. The unused side of a
// one-sided bound carries a zero placeholder.
const (
	GLPKBoundFree   = 1 // unbounded in both directions
	GLPKBoundLower  = 2 // lower bound only
	GLPKBoundUpper  = 3 // upper bound only
	GLPKBoundDouble = 4 // bounded on both sides
	GLPKBoundFixed  = 5 // lower bound equals upper bound
)

// Result status codes of the GLPK-style schema.
const (
	GLPKStatusUndefined  = 1
	GLPKStatusFeasible   = 2
	GLPKStatusInfeasible = 3
	GLPKStatusNoFeasible = 4
	GLPKStatusOptimal    = 5
	GLPKStatusUnbounded  = 6
)

// GLPKTerm is one variable/coefficient entry.
type GLPKTerm struct {
	Name string  `json:"name"`
	Coef float64 `json:"coef"`
}

// GLPKBnd is a typed bound record for a row or column.
type GLPKBnd struct {
	Type int     `json:"type"`
	LB   float64 `json:"lb"`
	UB   float64 `json:"ub"`
}

// GLPKObjective is the flat objective of the request. The model's constant
// term is dropped and re-added when decoding the objective value.
type GLPKObjective struct {
	Direction int        `json:"direction"`
	Name      string     `json:"name"`
	Vars      []GLPKTerm `json:"vars"`
}

// GLPKConstraint is one request row, named cons<i> with a 1-based index.
type GLPKConstraint struct {
	Name string     `json:"name"`
	Vars []GLPKTerm `json:"vars"`
	Bnds GLPKBnd    `json:"bnds"`
}

// GLPKBound is the typed bound record of one variable.
type GLPKBound struct {
	Name string  `json:"name"`
	Type int     `json:"type"`
	LB   float64 `json:"lb"`
	UB   float64 `json:"ub"`
}

// GLPKRequest is the full GLPK-style engine request.
type GLPKRequest struct {
	Name      string           `json:"name"`
	Objective GLPKObjective    `json:"objective"`
	SubjectTo []GLPKConstraint `json:"subjectTo"`
	Bounds    []GLPKBound      `json:"bounds,omitempty"`
	Binaries  []string         `json:"binaries,omitempty"`
	Generals  []string         `json:"generals,omitempty"`
}

// GLPKRow is one row of the response, matched to a constraint by its
// cons<i> name.
type GLPKRow struct {
	Name   string   `json:"name"`
	Primal float64  `json:"primal"`
	Dual   *float64 `json:"dual,omitempty"`
}

// GLPKResult is the solution section of the response.
type GLPKResult struct {
	Status int                `json:"status"`
	Z      float64            `json:"z"`
	Vars   map[string]float64 `json:"vars"`
	Rows   []GLPKRow          `json:"rows,omitempty"`
}

// GLPKResponse is the full GLPK-style engine response.
type GLPKResponse struct {
	Name   string     `json:"name"`
	Time   float64    `json:"time,omitempty"`
	Result GLPKResult `json:"result"`
}

// EncodeGLPK encodes the model into the GLPK-style request schema. The
// engine accepts linear problems only; a model with quadratic terms fails
// with ErrQuadraticUnsupported.
func (m *Model) EncodeGLPK() (*GLPKRequest, error) {
	if err := m.checkLinear("GLPK-style"); err != nil {
		return nil, err
	}

	direction := GLPKMin
	if m.sense == Maximize {
		direction = GLPKMax
	}
	req := &GLPKRequest{
		Name: m.requestName(),
		Objective: GLPKObjective{
			Direction: direction,
			Name:      "obj",
			Vars:      m.glpkTerms(&m.objective),
		},
	}

	for i, c := range m.constraints {
		req.SubjectTo = append(req.SubjectTo, GLPKConstraint{
			Name: glpkRowName(i),
			Vars: m.glpkTerms(&c.lhs),
			Bnds: glpkRowBnd(c.op, c.rhs),
		})
	}

	for i, d := range m.vars {
		lb, ub := m.effectiveBounds(VarIndex(i))
		req.Bounds = append(req.Bounds, glpkVarBound(d.name, lb, ub))
		switch d.kind {
		case Binary:
			req.Binaries = append(req.Binaries, d.name)
		case Integer:
			req.Generals = append(req.Generals, d.name)
		}
	}
	return req, nil
}

// DecodeGLPK clears the model's solution-session fields and ingests a
// GLPK-style response. Unmatched column or row names are recorded as
// diagnostics and leave the corresponding field unset.
func (m *Model) DecodeGLPK(resp *GLPKResponse) *SolveResult {
	m.resetSolution()
	m.response = resp
	if resp == nil {
		m.status = StatusUndefined
		return m.result()
	}

	switch resp.Result.Status {
	case GLPKStatusOptimal:
		m.status = StatusOptimal
	case GLPKStatusFeasible:
		m.status = StatusFeasible
	case GLPKStatusInfeasible, GLPKStatusNoFeasible:
		m.status = StatusInfeasible
	case GLPKStatusUnbounded:
		m.status = StatusUnbounded
	case GLPKStatusUndefined:
		m.status = StatusUndefined
	default:
		m.status = StatusUndefined
		m.diag("glpk", fmt.Sprintf("status %d", resp.Result.Status), "unknown result status")
	}

	if m.status == StatusOptimal || m.status == StatusFeasible {
		m.objValue = resp.Result.Z + m.objective.Constant
		m.hasObjValue = true
	}

	m.decodeColumnMap("glpk", resp.Result.Vars)

	rowIndex := make(map[string]int, len(m.constraints))
	for i := range m.constraints {
		rowIndex[glpkRowName(i)] = i
	}
	for _, row := range resp.Result.Rows {
		i, ok := rowIndex[row.Name]
		if !ok {
			m.diag("glpk", row.Name, "row matches no constraint")
			continue
		}
		c := m.constraints[i]
		c.primal, c.hasPrimal = row.Primal, true
		if row.Dual != nil && m.isContinuous() {
			c.dual, c.hasDual = *row.Dual, true
		}
	}
	return m.result()
}

// decodeColumnMap ingests a name-to-value column map, shared by the
// GLPK-style decoder. Response columns naming no model variable are
// reported in deterministic order.
func (m *Model) decodeColumnMap(engine string, cols map[string]float64) {
	var extra []string
	for name := range cols {
		if _, ok := m.varIndex[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		m.diag(engine, name, "column matches no variable")
	}
	for i := range m.vars {
		val, ok := cols[m.vars[i].name]
		if !ok {
			m.diag(engine, m.vars[i].name, "no value in response")
			continue
		}
		m.vars[i].value, m.vars[i].hasValue = val, true
	}
}

// checkLinear fails with ErrQuadraticUnsupported when the objective or any
// constraint carries a quadratic term.
func (m *Model) checkLinear(engine string) error {
	if m.objective.IsQuadratic() {
		return fmt.Errorf("%s objective: %w", engine, ErrQuadraticUnsupported)
	}
	for i, c := range m.constraints {
		if c.lhs.IsQuadratic() {
			return fmt.Errorf("%s constraint %d: %w", engine, i, ErrQuadraticUnsupported)
		}
	}
	return nil
}

func (m *Model) requestName() string {
	if m.name != "" {
		return m.name
	}
	return "lp_model"
}

func (m *Model) glpkTerms(e *Expr) []GLPKTerm {
	terms := make([]GLPKTerm, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = GLPKTerm{Name: m.vars[t.X].name, Coef: t.Coef}
	}
	return terms
}

func glpkRowName(i int) string {
	return fmt.Sprintf("cons%d", i+1)
}

// glpkRowBnd encodes a constraint operator and right-hand value as a typed
// bound record.
func glpkRowBnd(op CmpOp, rhs float64) GLPKBnd {
	switch op {
	case LessEq:
		return GLPKBnd{Type: GLPKBoundUpper, UB: rhs}
	case GreaterEq:
		return GLPKBnd{Type: GLPKBoundLower, LB: rhs}
	}
	return GLPKBnd{Type: GLPKBoundFixed, LB: rhs, UB: rhs}
}

// glpkVarBound encodes effective variable bounds as a typed bound record,
// with zero placeholders on unbounded sides.
func glpkVarBound(name string, lb, ub float64) GLPKBound {
	lbInf := math.IsInf(lb, -1)
	ubInf := math.IsInf(ub, 1)
	switch {
	case lbInf && ubInf:
		return GLPKBound{Name: name, Type: GLPKBoundFree}
	case lbInf:
		return GLPKBound{Name: name, Type: GLPKBoundUpper, UB: ub}
	case ubInf:
		return GLPKBound{Name: name, Type: GLPKBoundLower, LB: lb}
	case lb == ub:
		return GLPKBound{Name: name, Type: GLPKBoundFixed, LB: lb, UB: ub}
	}
	return GLPKBound{Name: name, Type: GLPKBoundDouble, LB: lb, UB: ub}
}
