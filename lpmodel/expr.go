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

// NoVar is the Y index of a linear term.
const NoVar VarIndex = -1

// Term is one canonical term of an expression: a coefficient applied to a
// variable (linear) or to an unordered pair of variables (quadratic). For
// quadratic terms the pair is stored with X <= Y, so (x,y) and (y,x) produce
// the same term.
type Term struct {
	Coef float64
	X    VarIndex
	Y    VarIndex
}

// IsQuadratic reports whether the term references a pair of variables.
func (t Term) IsQuadratic() bool { return t.Y != NoVar }

// Expr is a canonical expression: a constant plus a deduplicated list of
// non-zero terms in first-occurrence order. No two terms reference the same
// variable or the same unordered pair.
type Expr struct {
	Constant float64
	Terms    []Term
}

// IsQuadratic reports whether the expression contains any quadratic term.
func (e *Expr) IsQuadratic() bool {
	for _, t := range e.Terms {
		if t.IsQuadratic() {
			return true
		}
	}
	return false
}

// LinTerm pairs a coefficient with a variable, e.g. LinTerm{2, x} for 2x.
type LinTerm struct {
	Coef float64
	Var  Variable
}

// QuadTerm pairs a coefficient with a product of two variables, e.g.
// QuadTerm{1, x, y} for xy. The argument order of X and Y is irrelevant.
type QuadTerm struct {
	Coef float64
	X    Variable
	Y    Variable
}

// NewExpr canonicalizes a sequence of terms into an Expr. Each item must be
// one of:
//   - a numeric constant (int, int32, int64, float32, or float64),
//   - a Variable, contributing a linear term with coefficient 1,
//   - a LinTerm,
//   - a QuadTerm,
//   - a previously built *Expr, whose constant and terms are folded in.
//
// Terms referencing the same variable (or the same unordered pair) are
// merged, and terms whose merged coefficient is exactly zero are dropped.
// The term order of the result reflects first occurrence, not variable
// order, so canonicalization is independent of input order up to that
// first-seen ordering.
func (m *Model) NewExpr(items ...any) (*Expr, error) {
	e, err := m.canonicalize(items)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// termKey identifies a merge slot: the variable for linear terms, the
// ordered pair for quadratic terms.
type termKey struct {
	x, y VarIndex
}

// exprBuilder accumulates terms into insertion-ordered merge slots.
type exprBuilder struct {
	constant float64
	order    []termKey
	coefs    map[termKey]float64
}

func newExprBuilder() *exprBuilder {
	return &exprBuilder{coefs: make(map[termKey]float64)}
}

func (b *exprBuilder) addConstant(c float64) {
	b.constant += c
}

// add accumulates a coefficient under the canonical key for (x, y). Pass
// y == NoVar for a linear term.
func (b *exprBuilder) add(coef float64, x, y VarIndex) {
	if y != NoVar && y < x {
		x, y = y, x
	}
	key := termKey{x, y}
	if _, seen := b.coefs[key]; !seen {
		b.order = append(b.order, key)
	}
	b.coefs[key] += coef
}

func (b *exprBuilder) addExpr(e *Expr, scale float64) {
	b.constant += e.Constant * scale
	for _, t := range e.Terms {
		b.add(t.Coef*scale, t.X, t.Y)
	}
}

// build emits the canonical expression, dropping zero-coefficient slots.
func (b *exprBuilder) build() Expr {
	e := Expr{Constant: b.constant}
	for _, key := range b.order {
		c := b.coefs[key]
		if c == 0 {
			continue
		}
		e.Terms = append(e.Terms, Term{Coef: c, X: key.x, Y: key.y})
	}
	return e
}

// canonicalize reduces a term sequence into a canonical expression. See
// NewExpr for the accepted item shapes.
func (m *Model) canonicalize(items []any) (Expr, error) {
	b := newExprBuilder()
	for i, item := range items {
		if err := m.addItem(b, item); err != nil {
			return Expr{}, fmt.Errorf("term %d: %w", i, err)
		}
	}
	return b.build(), nil
}

func (m *Model) addItem(b *exprBuilder, item any) error {
	switch it := item.(type) {
	case int:
		b.addConstant(float64(it))
	case int32:
		b.addConstant(float64(it))
	case int64:
		b.addConstant(float64(it))
	case float32:
		b.addConstant(float64(it))
	case float64:
		if math.IsNaN(it) {
			return fmt.Errorf("constant is NaN: %w", ErrInvalidExpressionTerm)
		}
		b.addConstant(it)
	case Variable:
		if err := m.checkVar(it); err != nil {
			return err
		}
		b.add(1, it.ind, NoVar)
	case LinTerm:
		if math.IsNaN(it.Coef) {
			return fmt.Errorf("coefficient is NaN: %w", ErrInvalidExpressionTerm)
		}
		if err := m.checkVar(it.Var); err != nil {
			return err
		}
		b.add(it.Coef, it.Var.ind, NoVar)
	case QuadTerm:
		if math.IsNaN(it.Coef) {
			return fmt.Errorf("coefficient is NaN: %w", ErrInvalidExpressionTerm)
		}
		if err := m.checkVar(it.X); err != nil {
			return err
		}
		if err := m.checkVar(it.Y); err != nil {
			return err
		}
		b.add(it.Coef, it.X.ind, it.Y.ind)
	case *Expr:
		if it == nil {
			return fmt.Errorf("nil expression: %w", ErrInvalidExpressionTerm)
		}
		b.addExpr(it, 1)
	default:
		return fmt.Errorf("unsupported shape %T: %w", item, ErrInvalidExpressionTerm)
	}
	return nil
}

// checkVar verifies that a variable reference belongs to this model.
func (m *Model) checkVar(v Variable) error {
	if v.m == nil {
		return fmt.Errorf("zero variable: %w", ErrInvalidExpressionTerm)
	}
	if v.m != m {
		return fmt.Errorf("variable %q: %w", v.Name(), ErrMixedModels)
	}
	return nil
}
