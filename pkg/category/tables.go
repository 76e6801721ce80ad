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

package category

import (
	"slices"
	"sort"
)

// Tables maps fixed category names to their literal item lists.
type Tables map[string][]string

// Clone returns a deep copy of t.
func (t Tables) Clone() Tables {
	out := make(Tables, len(t))
	for n, items := range t {
		out[n] = slices.Clone(items)
	}
	return out
}

// Names returns the table names, sorted.
func (t Tables) Names() []string {
	out := make([]string, 0, len(t))
	for n := range t {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Synthesize returns the captured tables plus the derived tables the shipped
// data relies on. Derived tables replace captured ones of the same name.
func Synthesize(captured map[string][]string) Tables {
	out := Tables(captured).Clone()
	bread := slices.Clone(out["Bread"])

	out["Bamboo"] = []string{"Bamboo"}
	out["Wrap"] = slices.Clone(out["Leafy"])
	out["Rice"] = dedupe(append(slices.Clone(bread), "Coconut"))
	out["Apple"] = []string{"Apple", "Green Apple", "Sugar Apple", "Maple Apple"}
	out["Batter"] = []string{"Corn", "Violet Corn"}
	out["Pasta"] = bread
	out["Vegetables"] = []string{}
	out["Main"] = []string{}

	for n, items := range out {
		if items == nil {
			out[n] = []string{}
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
