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

package lpformat

import (
	"math"
	"strings"
)

// sectionKeywords are the name tokens that terminate an expression or name
// list and open the next section. Variable names may not collide with them.
var sectionKeywords = map[string]bool{
	"subject": true, "st": true, "s.t.": true,
	"bounds": true,
	"general": true, "generals": true, "gen": true,
	"binary": true, "binaries": true, "bin": true,
	"end": true,
}

type parser struct {
	toks []token
	pos  int
}

// Parse turns an LP document into its parse tree. It fails with a
// *ParseError carrying the source position of the first grammar mismatch.
func Parse(src string) (*File, error) {
	toks, lerr := lex(src)
	if lerr != nil {
		return nil, lerr
	}
	p := &parser{toks: toks}
	f := &File{}

	if err := p.parseObjective(f); err != nil {
		return nil, err
	}
	if err := p.parseConstraints(f); err != nil {
		return nil, err
	}
	if err := p.parseSections(f); err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errAt(t, "unexpected input after End")
	}
	return f, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) peekSym(text string) bool {
	t := p.peek()
	return t.kind == tokSym && t.text == text
}

// isVarName reports whether the token can serve as a variable name at this
// point, i.e. it is a name token that is not a section keyword.
func isVarName(t token) bool {
	return t.kind == tokName && !sectionKeywords[strings.ToLower(t.text)]
}

func (p *parser) errAt(t token, msg string) *ParseError {
	return &ParseError{Line: t.line, Col: t.col, Msg: msg}
}

func (p *parser) parseObjective(f *File) error {
	t := p.next()
	if t.kind != tokName {
		return p.errAt(t, "expected Maximize or Minimize")
	}
	switch low := strings.ToLower(t.text); {
	case strings.HasPrefix(low, "max"):
		f.Maximize = true
	case strings.HasPrefix(low, "min"):
		f.Maximize = false
	default:
		return p.errAt(t, "expected Maximize or Minimize")
	}

	if isVarName(p.peek()) && p.peekAt(1).kind == tokSym && p.peekAt(1).text == ":" {
		f.ObjName = p.next().text
		p.next()
	}

	terms, err := p.parseExpr()
	if err != nil {
		return err
	}
	f.Objective = terms
	return nil
}

func (p *parser) parseConstraints(f *File) error {
	t := p.next()
	if t.kind != tokName {
		return p.errAt(t, "expected Subject To")
	}
	switch strings.ToLower(t.text) {
	case "st", "s.t.":
	case "subject":
		to := p.next()
		if to.kind != tokName || strings.ToLower(to.text) != "to" {
			return p.errAt(to, "expected To after Subject")
		}
	default:
		return p.errAt(t, "expected Subject To")
	}

	for {
		t := p.peek()
		if t.kind == tokEOF {
			return p.errAt(t, "expected End")
		}
		if t.kind == tokName && sectionKeywords[strings.ToLower(t.text)] {
			break
		}
		c, err := p.parseConstraint()
		if err != nil {
			return err
		}
		f.Constraints = append(f.Constraints, *c)
	}
	if len(f.Constraints) == 0 {
		return p.errAt(p.peek(), "expected at least one constraint")
	}
	return nil
}

func (p *parser) parseConstraint() (*Constraint, error) {
	c := &Constraint{}
	if isVarName(p.peek()) && p.peekAt(1).kind == tokSym && p.peekAt(1).text == ":" {
		c.Name = p.next().text
		p.next()
	}

	terms, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, p.errAt(p.peek(), "expected expression")
	}
	c.LHS = terms

	op := p.next()
	if op.kind != tokSym {
		return nil, p.errAt(op, "expected comparison operator")
	}
	switch op.text {
	case "<", "<=", "=<":
		c.Op = "<="
	case ">", ">=", "=>":
		c.Op = ">="
	case "=", "==":
		c.Op = "="
	default:
		return nil, p.errAt(op, "expected comparison operator")
	}

	rhs, err := p.parseSignedNumber()
	if err != nil {
		return nil, err
	}
	c.RHS = rhs
	return c, nil
}

// parseExpr consumes terms until it reaches a token that cannot start one,
// such as a comparison operator or a section keyword. It may return an
// empty slice; callers that require at least one term check for it.
func (p *parser) parseExpr() ([]Term, error) {
	var terms []Term
	for {
		sign := 1.0
		sawSign := false
		for p.peekSym("+") || p.peekSym("-") {
			if p.peekSym("-") {
				sign = -sign
			}
			p.next()
			sawSign = true
		}

		t := p.peek()
		switch {
		case t.kind == tokNumber:
			p.next()
			coef := sign * t.num
			if isVarName(p.peek()) {
				name := p.next().text
				terms = append(terms, Term{Coef: coef, Vars: []string{name}})
			} else {
				terms = append(terms, Term{Coef: coef})
			}
		case isVarName(t):
			p.next()
			terms = append(terms, Term{Coef: sign, Vars: []string{t.text}})
		case t.kind == tokSym && t.text == "[":
			qts, err := p.parseQuadGroup(sign)
			if err != nil {
				return nil, err
			}
			terms = append(terms, qts...)
		default:
			if sawSign {
				return nil, p.errAt(t, "expected term after sign")
			}
			return terms, nil
		}
	}
}

// parseQuadGroup reads a bracket group "[ c x * y ... ]/2" and returns its
// terms with coefficients divided by two.
func (p *parser) parseQuadGroup(outerSign float64) ([]Term, error) {
	p.next() // consume "["
	var terms []Term
	for !p.peekSym("]") {
		sign := outerSign
		for p.peekSym("+") || p.peekSym("-") {
			if p.peekSym("-") {
				sign = -sign
			}
			p.next()
		}
		coef := 1.0
		if p.peek().kind == tokNumber {
			coef = p.next().num
		}
		if !isVarName(p.peek()) {
			return nil, p.errAt(p.peek(), "expected variable in quadratic group")
		}
		a := p.next().text
		if !p.peekSym("*") {
			return nil, p.errAt(p.peek(), "expected * between quadratic variables")
		}
		p.next()
		if !isVarName(p.peek()) {
			return nil, p.errAt(p.peek(), "expected variable after *")
		}
		b := p.next().text
		terms = append(terms, Term{Coef: sign * coef / 2, Vars: []string{a, b}})
	}
	p.next() // consume "]"
	if !p.peekSym("/") {
		return nil, p.errAt(p.peek(), "expected /2 after quadratic group")
	}
	p.next()
	div := p.next()
	if div.kind != tokNumber || div.num != 2 {
		return nil, p.errAt(div, "expected /2 after quadratic group")
	}
	return terms, nil
}

func (p *parser) parseSignedNumber() (float64, error) {
	sign := 1.0
	for p.peekSym("+") || p.peekSym("-") {
		if p.peekSym("-") {
			sign = -sign
		}
		p.next()
	}
	t := p.next()
	if t.kind != tokNumber {
		return 0, p.errAt(t, "expected number")
	}
	return sign * t.num, nil
}

// parseBoundValue reads a bound side: a signed number or a signed infinity
// token.
func (p *parser) parseBoundValue() (float64, error) {
	sign := 1.0
	for p.peekSym("+") || p.peekSym("-") {
		if p.peekSym("-") {
			sign = -sign
		}
		p.next()
	}
	t := p.next()
	switch {
	case t.kind == tokNumber:
		return sign * t.num, nil
	case t.kind == tokName && isInfToken(t.text):
		return sign * math.Inf(1), nil
	}
	return 0, p.errAt(t, "expected number or infinity")
}

func isInfToken(text string) bool {
	low := strings.ToLower(text)
	return low == "inf" || low == "infinity"
}

func (p *parser) parseSections(f *File) error {
	for {
		t := p.next()
		if t.kind != tokName {
			return p.errAt(t, "expected Bounds, General, Binary, or End")
		}
		switch strings.ToLower(t.text) {
		case "end":
			return nil
		case "bounds":
			if err := p.parseBounds(f); err != nil {
				return err
			}
		case "general", "generals", "gen":
			names, err := p.parseNameList()
			if err != nil {
				return err
			}
			f.Generals = append(f.Generals, names...)
		case "binary", "binaries", "bin":
			names, err := p.parseNameList()
			if err != nil {
				return err
			}
			f.Binaries = append(f.Binaries, names...)
		default:
			return p.errAt(t, "expected Bounds, General, Binary, or End")
		}
	}
}

func (p *parser) parseNameList() ([]string, error) {
	var names []string
	for isVarName(p.peek()) {
		names = append(names, p.next().text)
	}
	if len(names) == 0 {
		return nil, p.errAt(p.peek(), "expected at least one variable name")
	}
	return names, nil
}

func (p *parser) parseBounds(f *File) error {
	count := 0
	for {
		t := p.peek()
		if t.kind == tokEOF {
			break
		}
		if t.kind == tokName && sectionKeywords[strings.ToLower(t.text)] {
			break
		}
		b, err := p.parseBound()
		if err != nil {
			return err
		}
		f.Bounds = append(f.Bounds, *b)
		count++
	}
	if count == 0 {
		return p.errAt(p.peek(), "expected at least one bound")
	}
	return nil
}

// parseBound reads one Bounds entry in any of its four forms.
func (p *parser) parseBound() (*Bound, error) {
	t := p.peek()
	if isVarName(t) && !isInfToken(t.text) {
		// "x free" or "x <= u".
		name := p.next().text
		nt := p.peek()
		if nt.kind == tokName && strings.ToLower(nt.text) == "free" {
			p.next()
			return &Bound{Name: name, Free: true}, nil
		}
		if nt.kind == tokSym && (nt.text == "<=" || nt.text == "=<" || nt.text == "<") {
			p.next()
			u, err := p.parseBoundValue()
			if err != nil {
				return nil, err
			}
			return &Bound{Name: name, HasUpper: true, Upper: u}, nil
		}
		return nil, p.errAt(nt, "expected free or <= in bound")
	}

	// "l <= x" or "l <= x <= u".
	l, err := p.parseBoundValue()
	if err != nil {
		return nil, err
	}
	le := p.next()
	if le.kind != tokSym || (le.text != "<=" && le.text != "=<" && le.text != "<") {
		return nil, p.errAt(le, "expected <= after bound value")
	}
	nameTok := p.next()
	if !isVarName(nameTok) {
		return nil, p.errAt(nameTok, "expected variable name in bound")
	}
	b := &Bound{Name: nameTok.text, HasLower: true, Lower: l}
	if nt := p.peek(); nt.kind == tokSym && (nt.text == "<=" || nt.text == "=<" || nt.text == "<") {
		p.next()
		u, err := p.parseBoundValue()
		if err != nil {
			return nil, err
		}
		b.HasUpper = true
		b.Upper = u
	}
	return b, nil
}
