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

package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AnySlot is the slot synthesized for recipes that accept one arbitrary
// ingredient (Requires.Count == 1 with no Ingredients table).
const AnySlot = "Any"

// Slot is one ingredient requirement. Category names what to resolve; Items
// carries a literal list that was already expanded in the source. A slot
// resolves to resolve(Category) plus Items.
type Slot struct {
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Items    []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// Values returns the slot in list form: the literal items if present,
// otherwise the category name as a one-element list.
func (s Slot) Values() []string {
	if len(s.Items) > 0 {
		return slices.Clone(s.Items)
	}
	if s.Category == "" {
		return []string{}
	}
	return []string{s.Category}
}

// UnmarshalJSON accepts the full object form as well as the shorthand forms
// found in older registry files: a number (slot present, nothing literal), a
// category string, or an item list.
func (s *Slot) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = Slot{}
		return nil
	}
	switch b[0] {
	case '{':
		type plain Slot
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*s = Slot(p)
	case '"':
		var c string
		if err := json.Unmarshal(b, &c); err != nil {
			return err
		}
		*s = Slot{Category: c}
	case '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*s = Slot{Items: items}
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return fmt.Errorf("unsupported ingredient slot value %s", b)
		}
		*s = Slot{}
	}
	return nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (s *Slot) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		type plain Slot
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*s = Slot(p)
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*s = Slot{Items: items}
	case yaml.ScalarNode:
		if node.Tag == "!!int" || node.Tag == "!!float" || node.Tag == "!!null" {
			*s = Slot{}
			return nil
		}
		*s = Slot{Category: node.Value}
	default:
		return fmt.Errorf("line %d: unsupported ingredient slot", node.Line)
	}
	return nil
}

// Record is one recipe as extracted from the script. It is immutable once
// the registry is built.
type Record struct {
	Name        string          `json:"name" yaml:"name"`
	ID          string          `json:"id" yaml:"id"`
	ImageID     string          `json:"image_id" yaml:"image_id"`
	Ingredients map[string]Slot `json:"ingredients" yaml:"ingredients"`
	Count       int             `json:"count" yaml:"count"`
	Priority    int             `json:"priority" yaml:"priority"`
	BaseTime    int             `json:"base_time" yaml:"base_time"`
	BaseWeight  float64         `json:"base_weight" yaml:"base_weight"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Issues      []string        `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SlotNames returns the ingredient slot names, sorted.
func (r *Record) SlotNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for n := range r.Ingredients {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether extraction found no defects in the record.
func (r *Record) Valid() bool { return len(r.Issues) == 0 }

// normalize fills defaults that older registry files leave out.
func (r *Record) normalize(name string) {
	if r.Name == "" {
		r.Name = name
	}
	if r.Ingredients == nil {
		r.Ingredients = map[string]Slot{}
	}
	for slot, s := range r.Ingredients {
		if s.Category == "" {
			s.Category = slot
			r.Ingredients[slot] = s
		}
	}
	if len(r.Ingredients) == 0 && !slices.Contains(r.Issues, IssueNoSlots) {
		r.Issues = append(r.Issues, IssueNoSlots)
	}
}
