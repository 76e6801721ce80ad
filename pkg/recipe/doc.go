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

// Package recipe turns parsed script bindings into recipe records.
//
// Every "<registry>.<Name> = <alias>" line recorded by the parser becomes a
// Record. Ingredient slots come from Requires.Ingredients; a recipe with no
// Ingredients table and Requires.Count == 1 gets a single "Any" slot.
// Registrations whose alias was not bound yet are kept as Registry.Skipped,
// not retried.
//
// A record is never dropped for being malformed. It is kept with Issues set
// (for example "no ingredient slots") so callers can tell bad data from
// missing data.
//
// Registries persist as a Document with a RecipeRegistry header:
//
//	doc := recipe.NewDocument(reg, version, "FoodRecipeData.lua")
//	err := serializer.WriteFile("data/recipes.json", doc)
package recipe
