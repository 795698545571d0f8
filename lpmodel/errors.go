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

import "errors"

// ErrInvalidVariableSpec holds the error when a variable is declared with a
// bound that is neither finite nor the matching infinity sentinel, or with an
// unknown kind.
var ErrInvalidVariableSpec = errors.New("invalid variable specification")

// ErrDuplicateVariableName holds the error when a variable name is already
// taken in the model.
var ErrDuplicateVariableName = errors.New("duplicate variable name")

// ErrInvalidExpressionTerm holds the error when an expression element is not
// one of the accepted term shapes.
var ErrInvalidExpressionTerm = errors.New("invalid expression term")

// ErrInvalidComparisonOperator holds the error when a constraint operator is
// not one of "<=", "=", "==", or ">=".
var ErrInvalidComparisonOperator = errors.New("invalid comparison operator")

// ErrQuadraticUnsupported holds the error when a model with quadratic terms
// is encoded for an engine that only accepts linear problems.
var ErrQuadraticUnsupported = errors.New("backend does not support quadratic terms")

// ErrMixedModels holds the error when a variable from a different model is
// used in an expression.
var ErrMixedModels = errors.New("variable is not part of the same model")

// ErrUnknownBackend holds the error when a backend implements none of the
// engine capability interfaces.
var ErrUnknownBackend = errors.New("backend implements no supported engine interface")
