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

// Package lpformat parses the textual LP exchange format into an
// intermediate parse tree.
//
// The grammar, with case-insensitive keywords, is
//
//	File        = Objective Constraints Sections "End"
//	Objective   = ("Maximize"|"Minimize"|"Max"|"Min") [Name ":"] Expression
//	Constraints = ("Subject To"|"ST"|"S.T.") Constraint+
//	Constraint  = [Name ":"] Expression Sense SignedNumber
//	Sections    = (BoundsSec | GeneralSec | BinarySec)*
//	BoundsSec   = "Bounds" Bound+
//	GeneralSec  = ("Generals"|"General"|"Gen") Name+
//	BinarySec   = ("Binaries"|"Binary"|"Bin") Name+
//	Expression  = Term (("+"|"-") Term)*
//
// A term is an optionally signed coefficient/variable pair, a bare variable
// (coefficient 1), a bare number, or a quadratic bracket group
// "[ c x * y ... ]/2". Bounds come in four forms: "x free",
// "l <= x <= u", "x <= u", and "l <= x", where either side of a double
// bound may be an infinity token (-inf/-infinity, +inf/+infinity). Runs of
// whitespace and backslash line comments may appear between any two tokens.
//
// The tree carries no model semantics; callers reconstruct their own
// representation from it.
package lpformat

import "fmt"

// File is the parse tree of one LP document.
type File struct {
	// Maximize is the objective direction, recorded by prefix match on
	// "max"/"min".
	Maximize bool
	// ObjName is the optional objective label, e.g. "obj".
	ObjName string
	// Objective holds the objective terms in source order.
	Objective []Term
	// Constraints holds the constraints in source order.
	Constraints []Constraint
	// Bounds holds the Bounds section entries in source order.
	Bounds []Bound
	// Generals and Binaries list the names declared integer and binary.
	Generals []string
	Binaries []string
}

// Term is one parsed term: a coefficient applied to zero (constant), one
// (linear), or two (quadratic) variable names. Coefficients of quadratic
// bracket groups are already divided by two.
type Term struct {
	Coef float64
	Vars []string
}

// Constraint is one parsed constraint. Op is normalized to "<=", "=", or
// ">=" ("<" and "=<" collapse to "<=", ">" and "=>" to ">=").
type Constraint struct {
	Name string
	LHS  []Term
	Op   string
	RHS  float64
}

// Bound is one parsed Bounds entry. Free means the variable is unbounded in
// both directions. Unbounded sides of the other forms carry infinities in
// Lower/Upper with the matching Has flag set.
type Bound struct {
	Name     string
	Free     bool
	HasLower bool
	Lower    float64
	HasUpper bool
	Upper    float64
}

// ParseError reports a grammar mismatch with its source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}
