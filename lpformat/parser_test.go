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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullDocument(t *testing.T) {
	src := `\ a small mixed problem
Maximize
 obj: 3 x + 2 y - z + 4
Subject To
 c1: x + y <= 10
 c2: 2 x - 3 z >= -6
 y + z = 4
Bounds
 x <= 8
 -2 <= z <= 5
 y free
General
 x
Binary
 z
End
`
	f, err := Parse(src)
	require.NoError(t, err)

	assert.True(t, f.Maximize)
	assert.Equal(t, "obj", f.ObjName)
	assert.Equal(t, []Term{
		{Coef: 3, Vars: []string{"x"}},
		{Coef: 2, Vars: []string{"y"}},
		{Coef: -1, Vars: []string{"z"}},
		{Coef: 4},
	}, f.Objective)

	require.Len(t, f.Constraints, 3)
	assert.Equal(t, Constraint{
		Name: "c1",
		LHS:  []Term{{Coef: 1, Vars: []string{"x"}}, {Coef: 1, Vars: []string{"y"}}},
		Op:   "<=",
		RHS:  10,
	}, f.Constraints[0])
	assert.Equal(t, Constraint{
		Name: "c2",
		LHS:  []Term{{Coef: 2, Vars: []string{"x"}}, {Coef: -3, Vars: []string{"z"}}},
		Op:   ">=",
		RHS:  -6,
	}, f.Constraints[1])
	assert.Equal(t, Constraint{
		LHS: []Term{{Coef: 1, Vars: []string{"y"}}, {Coef: 1, Vars: []string{"z"}}},
		Op:  "=",
		RHS: 4,
	}, f.Constraints[2])

	require.Len(t, f.Bounds, 3)
	assert.Equal(t, Bound{Name: "x", HasUpper: true, Upper: 8}, f.Bounds[0])
	assert.Equal(t, Bound{Name: "z", HasLower: true, Lower: -2, HasUpper: true, Upper: 5}, f.Bounds[1])
	assert.Equal(t, Bound{Name: "y", Free: true}, f.Bounds[2])

	assert.Equal(t, []string{"x"}, f.Generals)
	assert.Equal(t, []string{"z"}, f.Binaries)
}

func TestParse_KeywordVariants(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "LongForms", src: "Minimize\nx\nSubject To\nx >= 1\nGenerals\nx\nEnd\n"},
		{name: "ShortForms", src: "min x st x >= 1 gen x end"},
		{name: "DottedST", src: "MAX x S.T. x <= 2 BIN x END"},
		{name: "MixedCase", src: "maximize x subject to x <= 2 end"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			assert.NoError(t, err)
		})
	}
}

func TestParse_Expressions(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []Term
	}{
		{
			name: "SignRunsFold",
			src:  "min - - 2 x + - y st x >= 0 end",
			want: []Term{{Coef: 2, Vars: []string{"x"}}, {Coef: -1, Vars: []string{"y"}}},
		},
		{
			name: "ExponentNumbers",
			src:  "min 1e3 x - 2.5E-1 y st x >= 0 end",
			want: []Term{{Coef: 1000, Vars: []string{"x"}}, {Coef: -0.25, Vars: []string{"y"}}},
		},
		{
			name: "QuadraticGroupHalvesCoefs",
			src:  "min [ 2 x * x + 4 x * y ]/2 + z st z >= 0 end",
			want: []Term{
				{Coef: 1, Vars: []string{"x", "x"}},
				{Coef: 2, Vars: []string{"x", "y"}},
				{Coef: 1, Vars: []string{"z"}},
			},
		},
		{
			name: "NegatedQuadraticGroup",
			src:  "min - [ 2 x * y ]/2 st x >= 0 end",
			want: []Term{{Coef: -1, Vars: []string{"x", "y"}}},
		},
		{
			name: "BareConstantTerm",
			src:  "min x + 5 st x >= 0 end",
			want: []Term{{Coef: 1, Vars: []string{"x"}}, {Coef: 5}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Objective)
		})
	}
}

func TestParse_BoundForms(t *testing.T) {
	src := `min x st x >= 0
Bounds
 x free
 0 <= a
 b <= 3
 -inf <= c <= +infinity
End`
	f, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, f.Bounds, 4)
	assert.Equal(t, Bound{Name: "x", Free: true}, f.Bounds[0])
	assert.Equal(t, Bound{Name: "a", HasLower: true, Lower: 0}, f.Bounds[1])
	assert.Equal(t, Bound{Name: "b", HasUpper: true, Upper: 3}, f.Bounds[2])

	c := f.Bounds[3]
	assert.Equal(t, "c", c.Name)
	assert.True(t, c.HasLower)
	assert.True(t, math.IsInf(c.Lower, -1))
	assert.True(t, c.HasUpper)
	assert.True(t, math.IsInf(c.Upper, 1))
}

func TestParse_OperatorAliases(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		{src: "min x st x < 3 end", want: "<="},
		{src: "min x st x =< 3 end", want: "<="},
		{src: "min x st x > 3 end", want: ">="},
		{src: "min x st x => 3 end", want: ">="},
		{src: "min x st x == 3 end", want: "="},
	}
	for _, tc := range testCases {
		f, err := Parse(tc.src)
		require.NoError(t, err, "source %q", tc.src)
		require.Len(t, f.Constraints, 1)
		assert.Equal(t, tc.want, f.Constraints[0].Op, "source %q", tc.src)
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		line    int
		col     int
		wantMsg string
	}{
		{
			name:    "MissingSenseKeyword",
			src:     "hello\nx >= 1\nEnd",
			line:    1,
			col:     1,
			wantMsg: "expected Maximize or Minimize",
		},
		{
			name:    "MissingSubjectTo",
			src:     "min x\nEnd",
			line:    2,
			col:     1,
			wantMsg: "expected Subject To",
		},
		{
			name:    "MissingConstraints",
			src:     "min x\nst\nEnd",
			line:    3,
			col:     1,
			wantMsg: "expected at least one constraint",
		},
		{
			name:    "DanglingSign",
			src:     "min x +\nst x >= 1\nend",
			line:    2,
			col:     1,
			wantMsg: "expected term after sign",
		},
		{
			name:    "QuadraticGroupMissingDivisor",
			src:     "min [ 2 x * x ] st x >= 1 end",
			line:    1,
			col:     17,
			wantMsg: "expected /2 after quadratic group",
		},
		{
			name:    "MissingEnd",
			src:     "min x st x >= 1",
			line:    1,
			col:     16,
			wantMsg: "expected End",
		},
		{
			name:    "TrailingInput",
			src:     "min x st x >= 1 end garbage",
			line:    1,
			col:     21,
			wantMsg: "unexpected input after End",
		},
		{
			name:    "BadCharacter",
			src:     "min x ^ 2 st x >= 1 end",
			line:    1,
			col:     7,
			wantMsg: `unexpected character '^'`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "error type %T", err)
			assert.Equal(t, tc.line, perr.Line)
			assert.Equal(t, tc.col, perr.Col)
			assert.Contains(t, perr.Error(), tc.wantMsg)
		})
	}
}

func TestParse_SectionKeywordNotAVarName(t *testing.T) {
	// "bounds" terminates the expression rather than being read as a name.
	_, err := Parse("min bounds st x >= 1 end")
	require.Error(t, err)
}
