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

package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps how many close names an unknown lookup reports.
const maxSuggestions = 3

// suggest returns up to maxSuggestions candidates close to name, nearest first.
func suggest(name string, candidates []string) []string {
	want := fold(name)
	if want == "" {
		return nil
	}
	limit := distanceLimit(len(want))

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	seen := make(map[string]struct{}, len(candidates))
	for _, cand := range candidates {
		if _, dup := seen[cand]; dup {
			continue
		}
		seen[cand] = struct{}{}

		folded := fold(cand)
		dist := levenshtein.ComputeDistance(want, folded)
		if strings.HasPrefix(folded, want) && dist > 0 {
			dist = min(dist, 1)
		}
		if dist > limit {
			continue
		}
		hits = append(hits, scored{name: cand, dist: dist})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, min(len(hits), maxSuggestions))
	for i := 0; i < len(hits) && i < maxSuggestions; i++ {
		out = append(out, hits[i].name)
	}
	return out
}

func distanceLimit(n int) int {
	switch {
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	default:
		return 3
	}
}

func (c *Catalog) suggestRecipes(name string) []string {
	names := make([]string, 0, len(c.all))
	for _, p := range c.all {
		names = append(names, p.Name)
	}
	return suggest(name, names)
}

func (c *Catalog) suggestCategories(name string) []string {
	return suggest(name, c.resolver.Categories())
}
