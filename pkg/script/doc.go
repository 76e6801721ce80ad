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

// Package script reads the recipe data script into plain values.
//
// The script is a small, flat subset of Lua: top-level "local" bindings,
// property assignments into bound tables, registry hooks, and table literals
// whose fields hold strings, numbers, other aliases, trait lookups, and two
// set helpers (union and difference). Parsing is a single top-to-bottom pass
// with no evaluation of arbitrary code.
//
// Usage:
//
//	b, err := script.Parse(src, traits)
//	if err != nil {
//	    return err // *script.ParseError
//	}
//	for _, r := range b.Registrations {
//	    fmt.Println(r.Name, r.Value.Len())
//	}
//
// Non-fatal findings (unbound aliases, expressions kept verbatim, skipped
// registrations) are collected on Bindings.Diagnostics and logged at WARN.
package script
