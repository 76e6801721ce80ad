// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
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

// Package category resolves ingredient categories into concrete item sets.
//
// Each category is described by a Rule: plain data naming a fixed table, a
// trait, a literal item list, another category, or a union or difference of
// other rules. The rule table is inspectable and can be overridden from a
// CategoryRules YAML document.
//
// A Resolver combines the rules with a trait index and the fixed tables
// captured from the recipe script:
//
//	tables := category.Synthesize(bindings.Sequences(dialect.CategoryAliases))
//	r := category.NewResolver(trait.NewIndex(traits), tables, category.DefaultRules())
//	items := r.Resolve("Main") // Meat plus every Vegetable
//
// Every resolution is unioned with the fixed table of the same name, and
// unknown categories resolve to an empty set. Results are cached for the
// lifetime of the Resolver.
package category
