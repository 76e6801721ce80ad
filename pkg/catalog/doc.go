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

// Package catalog is the query surface over a loaded recipe registry.
//
// A Catalog is built once from the extracted registry, a category Resolver,
// and the shop seed list, and is read-only afterward. It serves recipe
// projections (display names applied, slots resolved to concrete items,
// combinations counted), a shop-only view in which every slot is narrowed to
// purchasable items, single-category resolutions, summary statistics, and the
// raw item data:
//
//	c := catalog.New(reg, resolver,
//	    catalog.WithShopSeeds(seeds...),
//	    catalog.WithTraitTable(traits),
//	)
//	list := c.Recipes(catalog.Query{ShopOnly: true})
//
// Lookups by name ignore case and accept display names. Unknown recipes
// return a NOT_FOUND error carrying close matches.
//
// The Handlers method exposes the same operations over HTTP for pkg/server.
package catalog
