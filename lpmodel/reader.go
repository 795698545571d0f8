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
	"math"

	"github.com/pkg/errors"

	"github.com/DominikPeters/lp-model/lpformat"
)

// ReadLP parses LP-format text and replaces the model's contents with the
// parsed problem. On failure the model is left untouched.
//
// Reconstruction follows a fixed order so that a parsed model and the same
// model built programmatically share one canonical shape: variables are
// created from the Bounds section first, then from the Binary and General
// sections (upgrading the kind of variables already seen), then from the
// objective and constraint expressions in source order with default bounds
// and kind; finally the objective and the constraints run through the same
// canonicalizer and constraint builder the programmatic path uses.
func (m *Model) ReadLP(src string) error {
	f, err := lpformat.Parse(src)
	if err != nil {
		return err
	}

	nm := NewModel()
	nm.name = m.name

	for _, bd := range f.Bounds {
		opts := []VarOption{WithName(bd.Name)}
		switch {
		case bd.Free:
			opts = append(opts, WithBounds(math.Inf(-1), math.Inf(1)))
		default:
			if bd.HasLower {
				opts = append(opts, WithLowerBound(bd.Lower))
			}
			if bd.HasUpper {
				opts = append(opts, WithUpperBound(bd.Upper))
			}
		}
		if _, err := nm.AddVar(opts...); err != nil {
			return errors.Wrapf(err, "bound for %q", bd.Name)
		}
	}

	for _, name := range f.Binaries {
		if err := nm.declareKind(name, Binary); err != nil {
			return err
		}
	}
	for _, name := range f.Generals {
		if err := nm.declareKind(name, Integer); err != nil {
			return err
		}
	}

	// Variables referenced only in expressions get defaults, in source order.
	if err := nm.declareFromTerms(f.Objective); err != nil {
		return err
	}
	for _, c := range f.Constraints {
		if err := nm.declareFromTerms(c.LHS); err != nil {
			return err
		}
	}

	sense := Minimize
	if f.Maximize {
		sense = Maximize
	}
	objItems, err := nm.itemsFromTerms(f.Objective)
	if err != nil {
		return err
	}
	if err := nm.SetObjective(sense, objItems...); err != nil {
		return errors.Wrap(err, "objective")
	}

	for i, c := range f.Constraints {
		items, err := nm.itemsFromTerms(c.LHS)
		if err != nil {
			return err
		}
		if _, err := nm.AddConstraint(items, c.Op, c.RHS); err != nil {
			return errors.Wrapf(err, "constraint %d", i+1)
		}
	}

	// Success: replace contents. Constraint back-references must follow.
	m.vars = nm.vars
	m.varIndex = nm.varIndex
	m.constraints = nm.constraints
	for _, c := range m.constraints {
		c.m = m
	}
	m.objective = nm.objective
	m.sense = nm.sense
	m.resetSolution()
	return nil
}

// declareKind creates the named variable with the given kind, or upgrades
// the kind of an existing one. The text format may mention a variable in a
// General or Binary section after it appeared in Bounds.
func (m *Model) declareKind(name string, kind VarKind) error {
	if ind, ok := m.varIndex[name]; ok {
		m.vars[ind].kind = kind
		return nil
	}
	_, err := m.AddVar(WithName(name), WithKind(kind))
	return err
}

// declareFromTerms creates every variable a term list references that is
// not declared yet, with default bounds and kind.
func (m *Model) declareFromTerms(terms []lpformat.Term) error {
	for _, t := range terms {
		for _, name := range t.Vars {
			if _, ok := m.varIndex[name]; ok {
				continue
			}
			if _, err := m.AddVar(WithName(name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// itemsFromTerms converts parsed terms into canonicalizer items.
func (m *Model) itemsFromTerms(terms []lpformat.Term) ([]any, error) {
	items := make([]any, 0, len(terms))
	for _, t := range terms {
		switch len(t.Vars) {
		case 0:
			items = append(items, t.Coef)
		case 1:
			v, ok := m.Var(t.Vars[0])
			if !ok {
				return nil, errors.Errorf("undeclared variable %q", t.Vars[0])
			}
			items = append(items, LinTerm{Coef: t.Coef, Var: v})
		default:
			x, okX := m.Var(t.Vars[0])
			y, okY := m.Var(t.Vars[1])
			if !okX || !okY {
				return nil, errors.Errorf("undeclared variable in quadratic term %v", t.Vars)
			}
			items = append(items, QuadTerm{Coef: t.Coef, X: x, Y: y})
		}
	}
	return items, nil
}
