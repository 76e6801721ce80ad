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

// Package loader reads the recipe data inputs and builds what a catalog
// needs from them.
//
// Two layouts are supported. With FromScript the recipe script
// (FoodRecipeData.lua) is parsed directly; otherwise the documents written
// by Convert are read (recipes.json and cooking.json). Both modes also read
// the trait table (plant_traits.json) and the shop list (shopseeds.json),
// plus the optional category_rules.yaml and display_names.yaml overrides.
//
// Inputs are read concurrently. A missing input is reported as a
// MissingSourceFileError when Options.Strict is set and degrades to empty
// data with a warning otherwise:
//
//	d, err := loader.Load(ctx, loader.Options{DataDir: "data"})
//	if err != nil {
//	    return err
//	}
//	c := d.Catalog()
//
// Convert parses the script and persists the recipe registry and the fixed
// category tables so later loads can skip parsing.
package loader
