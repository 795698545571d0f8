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
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokName
	tokSym
)

type token struct {
	kind tokKind
	text string
	num  float64
	line int
	col  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

// namePunct is the punctuation allowed in variable names besides letters
// and, after the first character, digits and dots. Operators and grouping
// characters are deliberately absent so they terminate a name.
const namePunct = "!\"#$%&(),;?@_'`{}~"

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || strings.ContainsRune(namePunct, r)
}

func isNameRune(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '.'
}

// lex tokenizes the whole document. Whitespace and backslash line comments
// are insignificant and may separate any two tokens.
func lex(src string) ([]token, *ParseError) {
	var toks []token
	runes := []rune(src)
	line, col := 1, 1
	i := 0

	advance := func() {
		if runes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}

	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			advance()
		case r == '\\':
			for i < len(runes) && runes[i] != '\n' {
				advance()
			}
		case unicode.IsDigit(r) || r == '.':
			startLine, startCol := line, col
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				advance()
			}
			// Exponent part, e.g. 1e6, 2.5E-3.
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < len(runes) && unicode.IsDigit(runes[j]) {
					for i < j {
						advance()
					}
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						advance()
					}
				}
			}
			text := string(runes[start:i])
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &ParseError{Line: startLine, Col: startCol, Msg: fmt.Sprintf("malformed number %q", text)}
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: num, line: startLine, col: startCol})
		case isNameStart(r):
			startLine, startCol := line, col
			start := i
			for i < len(runes) && isNameRune(runes[i]) {
				advance()
			}
			toks = append(toks, token{kind: tokName, text: string(runes[start:i]), line: startLine, col: startCol})
		case r == '<' || r == '>' || r == '=':
			startLine, startCol := line, col
			text := string(r)
			advance()
			if i < len(runes) {
				two := text + string(runes[i])
				switch two {
				case "<=", ">=", "=<", "=>", "==":
					text = two
					advance()
				}
			}
			toks = append(toks, token{kind: tokSym, text: text, line: startLine, col: startCol})
		case strings.ContainsRune("+-*:[]/", r):
			toks = append(toks, token{kind: tokSym, text: string(r), line: line, col: col})
			advance()
		default:
			return nil, &ParseError{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, line: line, col: col})
	return toks, nil
}
