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

// Package header provides the common header carried by persisted larder
// documents.
//
// A Header records what a document is, which schema it follows, and where and
// when it was produced:
//
//	{
//	  "kind": "RecipeRegistry",
//	  "apiVersion": "larder.dev/v1",
//	  "metadata": {
//	    "timestamp": "2026-01-30T10:30:00Z",
//	    "version": "v0.4.0",
//	    "source": "FoodRecipeData.lua"
//	  }
//	}
//
// The timestamp doubles as the "last updated" value reported by the stats
// endpoint.
package header
