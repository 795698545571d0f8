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

import "fmt"

// CmpOp is a constraint comparison operator.
type CmpOp int

const (
	// LessEq is the "<=" operator.
	LessEq CmpOp = iota
	// Eq is the "=" operator.
	Eq
	// GreaterEq is the ">=" operator.
	GreaterEq
)

// String returns the LP-format spelling of the operator.
func (op CmpOp) String() string {
	switch op {
	case LessEq:
		return "<="
	case Eq:
		return "="
	case GreaterEq:
		return ">="
	}
	return "?"
}

// parseCmpOp normalizes an operator token. "==" is an alias for "=".
func parseCmpOp(op string) (CmpOp, error) {
	switch op {
	case "<=":
		return LessEq, nil
	case ">=":
		return GreaterEq, nil
	case "=", "==":
		return Eq, nil
	}
	return 0, fmt.Errorf("%q: %w", op, ErrInvalidComparisonOperator)
}

// Constraint is a reference to a normalized constraint in a Model: a
// canonical left-hand expression with zero constant, a comparison operator,
// and a scalar right-hand value. The primal and dual solution fields are
// populated by solution decoding only.
type Constraint struct {
	m   *Model
	ind int
	lhs Expr
	op  CmpOp
	rhs float64

	primal, dual       float64
	hasPrimal, hasDual bool
}

// Index returns the position of the constraint in its model. Engine response
// rows are correlated with constraints by this index.
func (c *Constraint) Index() int { return c.ind }

// LHS returns the canonical left-hand expression. Its constant is always
// zero; constants fold into the right-hand value during construction.
func (c *Constraint) LHS() *Expr { return &c.lhs }

// Op returns the comparison operator.
func (c *Constraint) Op() CmpOp { return c.op }

// RHS returns the right-hand value.
func (c *Constraint) RHS() float64 { return c.rhs }

// Primal returns the constraint's activity value from the most recent solve.
// The second return value is false if the engine did not report one.
func (c *Constraint) Primal() (float64, bool) { return c.primal, c.hasPrimal }

// Dual returns the constraint's shadow price from the most recent solve.
// Engines report duals for continuous (simplex) solves only.
func (c *Constraint) Dual() (float64, bool) { return c.dual, c.hasDual }

// AddConstraint folds a left-hand side, a comparison operator, and a
// right-hand side into one normalized constraint and appends it to the
// model.
//
// lhs and rhs each accept a []any term sequence (the shapes NewExpr
// accepts), a *Expr, or a single term item such as a Variable or a plain
// number. Terms appearing on both sides are merged: every right-hand term is
// negated and folded into the left-hand side, and the resulting constant c
// becomes the right-hand value -c.
//
// The model is left untouched when the operator or a term is invalid.
func (m *Model) AddConstraint(lhs any, op string, rhs any) (*Constraint, error) {
	cop, err := parseCmpOp(op)
	if err != nil {
		return nil, err
	}
	left, err := m.exprFromAny(lhs)
	if err != nil {
		return nil, fmt.Errorf("left-hand side: %w", err)
	}
	right, err := m.exprFromAny(rhs)
	if err != nil {
		return nil, fmt.Errorf("right-hand side: %w", err)
	}

	// Merge lhs with the negated rhs so that shared variables collapse.
	b := newExprBuilder()
	b.addExpr(&left, 1)
	b.addExpr(&right, -1)
	folded := b.build()

	rhsVal := -folded.Constant
	folded.Constant = 0

	c := &Constraint{m: m, ind: len(m.constraints), lhs: folded, op: cop, rhs: rhsVal}
	m.constraints = append(m.constraints, c)
	return c, nil
}

// exprFromAny canonicalizes one side of a constraint. A []any is treated as
// a term sequence, a *Expr is folded as-is, and anything else is treated as
// a single term item.
func (m *Model) exprFromAny(side any) (Expr, error) {
	switch s := side.(type) {
	case []any:
		return m.canonicalize(s)
	case *Expr:
		if s == nil {
			return Expr{}, fmt.Errorf("nil expression: %w", ErrInvalidExpressionTerm)
		}
		return m.canonicalize([]any{s})
	default:
		return m.canonicalize([]any{side})
	}
}
