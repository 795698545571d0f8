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
	"strconv"
	"strings"
)

// WriteLP serializes the model into the textual LP exchange format. The
// output is deterministic: the sense line, the objective, one constraint
// line c<i> per constraint in insertion order, a Bounds section for every
// variable whose bounds differ from the default [0, +inf), a General section
// for integer variables, a Binary section for binary variables, and a
// terminating End line.
//
// The objective's constant term is never written; every solver bridge adds
// it back when decoding the objective value. Quadratic terms are rendered
// with the doubled-coefficient bracket convention "[ 2c x * y ]/2".
func (m *Model) WriteLP() string {
	var b strings.Builder
	b.WriteString(m.sense.String())
	b.WriteByte('\n')
	b.WriteString("obj: ")
	b.WriteString(m.exprString(&m.objective))
	b.WriteByte('\n')

	b.WriteString("Subject To\n")
	for i, c := range m.constraints {
		fmt.Fprintf(&b, "c%d: %s %s %s\n", i+1, m.exprString(&c.lhs), c.op, formatNum(c.rhs))
	}

	var bounds, generals, binaries []string
	for i, d := range m.vars {
		if d.lb != 0 || !math.IsInf(d.ub, 1) {
			bounds = append(bounds, m.boundString(VarIndex(i)))
		}
		switch d.kind {
		case Integer:
			generals = append(generals, d.name)
		case Binary:
			binaries = append(binaries, d.name)
		}
	}
	writeSection(&b, "Bounds", bounds)
	writeSection(&b, "General", generals)
	writeSection(&b, "Binary", binaries)

	b.WriteString("End\n")
	return b.String()
}

func writeSection(b *strings.Builder, keyword string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(keyword)
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// boundString renders one Bounds line. Variables unbounded in both
// directions are written as "<name> free"; everything else uses the double
// form with -inf/+inf tokens for unbounded sides.
func (m *Model) boundString(i VarIndex) string {
	d := m.vars[i]
	if math.IsInf(d.lb, -1) && math.IsInf(d.ub, 1) {
		return d.name + " free"
	}
	return fmt.Sprintf("%s <= %s <= %s", formatNum(d.lb), d.name, formatNum(d.ub))
}

// exprString renders the terms of a canonical expression, dropping the
// constant. An empty term list renders as "0".
func (m *Model) exprString(e *Expr) string {
	if len(e.Terms) == 0 {
		return "0"
	}
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		if t.IsQuadratic() {
			parts[i] = fmt.Sprintf("[ %s %s * %s ]/2", formatNum(2*t.Coef), m.vars[t.X].name, m.vars[t.Y].name)
		} else {
			parts[i] = fmt.Sprintf("%s %s", formatNum(t.Coef), m.vars[t.X].name)
		}
	}
	// "+ -2 x" reads better as "- 2 x".
	s := strings.Join(parts, " + ")
	return strings.ReplaceAll(s, "+ -", "- ")
}

// formatNum renders a coefficient or bound, using the -inf/+inf tokens for
// the unbounded sentinels.
func formatNum(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "+inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
