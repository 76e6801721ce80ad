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

// Package cli implements the larder command line.
//
// # Commands
//
//	larder convert    parse FoodRecipeData.lua and write recipes.json and cooking.json
//	larder recipes    list recipes with ingredient combinations
//	larder recipe     show one recipe by key or display name
//	larder resolve    resolve a category to concrete items
//	larder stats      show catalog totals
//	larder items      list items with their traits and shop availability
//	larder validate   check the script and report defective recipes
//	larder rules      list the category rules in effect
//
// Global flags select the data directory (--data-dir, LARDER_DATA_DIR),
// whether to parse the script directly (--from-script), and whether missing
// inputs are fatal (--strict). Output is written as a table by default;
// --format json or yaml and --output <file> are accepted by every command.
//
// # Examples
//
//	larder convert --data-dir ./data
//	larder recipes --shop-only
//	larder recipe --format json "Hot Dog"
//	larder resolve HerbalBase
//	larder rules --format yaml > category_rules.yaml
package cli
