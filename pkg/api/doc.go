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

// Package api runs larderd, the HTTP front end over the recipe catalog.
//
// Serve reads its configuration from the environment, starts pkg/server
// with the catalog routes, and loads the recipe data in the background. The
// server answers /health at once; /ready and every catalog route return 503
// until the data is loaded. A load failure stops the process.
//
// # Configuration
//
//	LARDER_DATA_DIR             data directory (default "data")
//	LARDER_STRICT               fail when an input file is missing
//	LARDER_FROM_SCRIPT          parse FoodRecipeData.lua instead of recipes.json
//	LARDER_SYNTAX_CHECK         compile the script before parsing it
//	LARDER_RULES_FILE           category rule overrides
//	LARDER_DISPLAY_NAMES_FILE   display-name overrides
//	LOG_LEVEL                   debug, info, warn, or error
//
// PORT, RATE_LIMIT, RATE_LIMIT_BURST and SHUTDOWN_TIMEOUT_SECONDS are read
// by pkg/server.
//
// # Endpoints
//
//	GET /v1/recipes[?shop_only=true]
//	GET /v1/recipes/{name}[?shop_only=true]
//	GET /v1/categories/{name}[?shop_only=true]
//	GET /v1/stats
//	GET /v1/items
//
// Example:
//
//	curl -s "http://localhost:8080/v1/recipes/hot%20dog?shop_only=true"
package api
