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

// Package lpmodel offers a user-friendly API to build linear and quadratic
// optimization models and hand them to external solving engines.
//
// The `Model` struct owns the decision variables, the objective, and the
// constraints. The `Variable` and `Constraint` structs are references to
// entries in the model and provide methods for reading solution values once
// a solve has completed.
//
// Models can be built programmatically:
//
//	m := lpmodel.NewModel()
//	x, _ := m.AddVar(lpmodel.WithName("x"), lpmodel.WithBounds(0, 40))
//	y, _ := m.AddVar(lpmodel.WithName("y"))
//	m.SetObjective(lpmodel.Maximize, lpmodel.LinTerm{3, x}, lpmodel.LinTerm{4, y})
//	m.AddConstraint([]any{x, lpmodel.LinTerm{2, y}}, "<=", 14)
//
// or loaded from the textual LP exchange format with ReadLP. Both paths
// produce exactly the same canonical representation, so a model written with
// WriteLP and read back compares equal term for term.
//
// Solving is delegated to an external engine through a Backend. The package
// ships three bridges, one per engine schema: a GLPK-style request with typed
// bound records, a HiGHS-style solve on the LP text itself, and a
// jsLPSolver-style sparse per-variable map. Each bridge encodes the model
// into its engine's request shape and decodes the engine's response back into
// the model's variables, constraints, and status fields.
package lpmodel
