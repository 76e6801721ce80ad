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

// Package trait builds the reverse index from trait names to the items that
// carry them.
//
// The item table is loaded once and never mutated; an Index derived from it is
// therefore safe for concurrent readers.
package trait

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Table maps an item identifier to the trait names it carries.
type Table map[string][]string

// Validate reports every empty item identifier or trait name in the table.
func (t Table) Validate() error {
	var problems []string
	for item, traits := range t {
		if strings.TrimSpace(item) == "" {
			problems = append(problems, "empty item identifier")
			continue
		}
		for _, tr := range traits {
			if strings.TrimSpace(tr) == "" {
				problems = append(problems, fmt.Sprintf("item %q has an empty trait name", item))
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("invalid trait table: %s", strings.Join(problems, "; "))
}

// Index is the inverse of a Table: trait name to item identifiers.
type Index struct {
	byTrait map[string][]string
	byItem  map[string]map[string]struct{}
	items   []string
}

// NewIndex derives an Index from t. Entries with empty identifiers or trait
// names are skipped; duplicate traits on one item are collapsed.
func NewIndex(t Table) *Index {
	idx := &Index{
		byTrait: make(map[string][]string),
		byItem:  make(map[string]map[string]struct{}, len(t)),
		items:   make([]string, 0, len(t)),
	}

	for item, traits := range t {
		if item == "" {
			continue
		}
		set := make(map[string]struct{}, len(traits))
		for _, tr := range traits {
			if tr == "" {
				continue
			}
			if _, dup := set[tr]; dup {
				continue
			}
			set[tr] = struct{}{}
			idx.byTrait[tr] = append(idx.byTrait[tr], item)
		}
		idx.byItem[item] = set
		idx.items = append(idx.items, item)
	}

	sort.Strings(idx.items)
	for tr := range idx.byTrait {
		sort.Strings(idx.byTrait[tr])
	}
	return idx
}

// Items returns the items carrying trait, sorted. Unknown traits yield an
// empty, non-nil slice. The result is a copy.
func (x *Index) Items(trait string) []string {
	if x == nil {
		return []string{}
	}
	items, ok := x.byTrait[trait]
	if !ok {
		return []string{}
	}
	return slices.Clone(items)
}

// Has reports whether item carries trait.
func (x *Index) Has(item, trait string) bool {
	if x == nil {
		return false
	}
	_, ok := x.byItem[item][trait]
	return ok
}

// Contains reports whether item is present in the underlying table.
func (x *Index) Contains(item string) bool {
	if x == nil {
		return false
	}
	_, ok := x.byItem[item]
	return ok
}

// AllItems returns every item identifier, sorted.
func (x *Index) AllItems() []string {
	if x == nil {
		return []string{}
	}
	return slices.Clone(x.items)
}

// Traits returns every known trait name, sorted.
func (x *Index) Traits() []string {
	if x == nil {
		return nil
	}
	out := make([]string, 0, len(x.byTrait))
	for tr := range x.byTrait {
		out = append(out, tr)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of items in the index.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.items)
}
