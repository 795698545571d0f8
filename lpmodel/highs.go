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
	"sort"
	"strconv"
)

// The HiGHS-style engine solves the model natively from its LP-format text;
// the request side of this bridge is WriteLP. Quadratic models are
// supported.

// HiGHSColumn is one solution column, keyed by variable name.
type HiGHSColumn struct {
	Index  int      `json:"Index"`
	Primal float64  `json:"Primal"`
	Dual   *float64 `json:"Dual,omitempty"`
}

// HiGHSRow is one solution row, matched to a constraint by the c<i> names
// the writer emits.
type HiGHSRow struct {
	Index  int      `json:"Index"`
	Name   string   `json:"Name"`
	Primal float64  `json:"Primal"`
	Dual   *float64 `json:"Dual,omitempty"`
}

// HiGHSResponse is the full HiGHS-style engine response. Status is the
// engine's native status string, passed through as-is in
// SolveResult.RawStatus.
type HiGHSResponse struct {
	Status         string                 `json:"Status"`
	ObjectiveValue float64                `json:"ObjectiveValue"`
	Columns        map[string]HiGHSColumn `json:"Columns"`
	Rows           []HiGHSRow             `json:"Rows"`
}

// DecodeHiGHS clears the model's solution-session fields and ingests a
// HiGHS-style response. Unmatched column or row names are recorded as
// diagnostics and leave the corresponding field unset.
func (m *Model) DecodeHiGHS(resp *HiGHSResponse) *SolveResult {
	m.resetSolution()
	m.response = resp
	if resp == nil {
		m.status = StatusUndefined
		return m.result()
	}

	m.rawStatus = resp.Status
	switch resp.Status {
	case "Optimal":
		m.status = StatusOptimal
	case "Feasible":
		m.status = StatusFeasible
	case "Infeasible":
		m.status = StatusInfeasible
	case "Unbounded":
		m.status = StatusUnbounded
	default:
		m.status = StatusUndefined
		m.diag("highs", resp.Status, "unknown status string")
	}

	if m.status == StatusOptimal || m.status == StatusFeasible {
		// The LP text never carries the objective constant.
		m.objValue = resp.ObjectiveValue + m.objective.Constant
		m.hasObjValue = true
	}

	var extra []string
	for name := range resp.Columns {
		if _, ok := m.varIndex[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		m.diag("highs", name, "column matches no variable")
	}
	continuous := m.isContinuous()
	for i := range m.vars {
		col, ok := resp.Columns[m.vars[i].name]
		if !ok {
			m.diag("highs", m.vars[i].name, "no value in response")
			continue
		}
		m.vars[i].value, m.vars[i].hasValue = col.Primal, true
	}

	rowIndex := make(map[string]int, len(m.constraints))
	for i := range m.constraints {
		rowIndex[highsRowName(i)] = i
	}
	for _, row := range resp.Rows {
		i, ok := rowIndex[row.Name]
		if !ok {
			m.diag("highs", row.Name, "row matches no constraint")
			continue
		}
		c := m.constraints[i]
		c.primal, c.hasPrimal = row.Primal, true
		if row.Dual != nil && continuous {
			c.dual, c.hasDual = *row.Dual, true
		}
	}
	return m.result()
}

// highsRowName matches the constraint naming of WriteLP.
func highsRowName(i int) string {
	return "c" + strconv.Itoa(i+1)
}
