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

package defaults

// Input and output file names, relative to the data directory.
const (
	// TraitsFile maps item identifiers to their trait names.
	TraitsFile = "plant_traits.json"

	// ShopFile holds the purchasable item list under the "shopseeds" key.
	ShopFile = "shopseeds.json"

	// ScriptFile is the declarative recipe script.
	ScriptFile = "FoodRecipeData.lua"

	// RecipesFile is the persisted recipe registry produced by conversion.
	RecipesFile = "recipes.json"

	// CategoriesFile is the persisted fixed category tables produced by conversion.
	CategoriesFile = "cooking.json"

	// RulesFile optionally overrides category resolution rules.
	RulesFile = "category_rules.yaml"

	// DisplayNamesFile optionally overrides recipe display names.
	DisplayNamesFile = "display_names.yaml"

	// DataDir is the default data directory.
	DataDir = "data"
)
