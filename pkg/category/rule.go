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
	"fmt"
	"sort"
	"strings"
)

// RuleKind identifies how a category is derived.
type RuleKind string

const (
	// KindFixed takes the fixed table named by Rule.Table.
	KindFixed RuleKind = "fixed"
	// KindTrait takes every item carrying Rule.Trait.
	KindTrait RuleKind = "trait"
	// KindItems takes the literal Rule.Items. With Rule.Known set, only items
	// present in the trait table are kept.
	KindItems RuleKind = "items"
	// KindRef takes the full resolution of the category named by Rule.Ref.
	KindRef RuleKind = "ref"
	// KindUnion takes the union of Rule.Operands.
	KindUnion RuleKind = "union"
	// KindDifference takes the first operand minus every other operand.
	KindDifference RuleKind = "difference"
	// KindAll takes every item known to the trait table.
	KindAll RuleKind = "all"
)

// Rule describes how one category is derived. Rules are plain data so the
// whole table can be listed, validated, and overridden from a file.
type Rule struct {
	Kind     RuleKind `json:"kind" yaml:"kind"`
	Table    string   `json:"table,omitempty" yaml:"table,omitempty"`
	Trait    string   `json:"trait,omitempty" yaml:"trait,omitempty"`
	Items    []string `json:"items,omitempty" yaml:"items,omitempty"`
	Known    bool     `json:"known,omitempty" yaml:"known,omitempty"`
	Ref      string   `json:"ref,omitempty" yaml:"ref,omitempty"`
	Operands []Rule   `json:"operands,omitempty" yaml:"operands,omitempty"`
}

// Fixed returns a rule taking the named fixed table.
func Fixed(table string) Rule { return Rule{Kind: KindFixed, Table: table} }

// Trait returns a rule taking every item with the trait.
func Trait(name string) Rule { return Rule{Kind: KindTrait, Trait: name} }

// Items returns a rule taking the literal items.
func Items(items ...string) Rule { return Rule{Kind: KindItems, Items: items} }

// KnownItems returns a rule taking the literal items that exist in the trait table.
func KnownItems(items ...string) Rule { return Rule{Kind: KindItems, Items: items, Known: true} }

// Ref returns a rule taking another category's resolution.
func Ref(category string) Rule { return Rule{Kind: KindRef, Ref: category} }

// Union returns a rule taking the union of its operands.
func Union(operands ...Rule) Rule { return Rule{Kind: KindUnion, Operands: operands} }

// Difference returns a rule taking from minus every operand in minus.
func Difference(from Rule, minus ...Rule) Rule {
	return Rule{Kind: KindDifference, Operands: append([]Rule{from}, minus...)}
}

// All returns a rule taking every known item.
func All() Rule { return Rule{Kind: KindAll} }

// Validate checks that the rule carries what its kind needs.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindFixed:
		if r.Table == "" {
			return fmt.Errorf("%s rule needs a table", r.Kind)
		}
	case KindTrait:
		if r.Trait == "" {
			return fmt.Errorf("%s rule needs a trait", r.Kind)
		}
	case KindItems:
		if len(r.Items) == 0 {
			return fmt.Errorf("%s rule needs at least one item", r.Kind)
		}
	case KindRef:
		if r.Ref == "" {
			return fmt.Errorf("%s rule needs a category", r.Kind)
		}
	case KindUnion, KindDifference:
		if len(r.Operands) == 0 {
			return fmt.Errorf("%s rule needs operands", r.Kind)
		}
		for i, op := range r.Operands {
			if err := op.Validate(); err != nil {
				return fmt.Errorf("%s operand %d: %w", r.Kind, i, err)
			}
		}
	case KindAll:
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

// String renders the rule as a compact formula, e.g. "union(fixed(Meat), trait(Vegetable))".
func (r Rule) String() string {
	switch r.Kind {
	case KindFixed:
		return "fixed(" + r.Table + ")"
	case KindTrait:
		return "trait(" + r.Trait + ")"
	case KindItems:
		if r.Known {
			return "known(" + strings.Join(r.Items, ", ") + ")"
		}
		return "items(" + strings.Join(r.Items, ", ") + ")"
	case KindRef:
		return "ref(" + r.Ref + ")"
	case KindUnion, KindDifference:
		parts := make([]string, len(r.Operands))
		for i, op := range r.Operands {
			parts[i] = op.String()
		}
		return string(r.Kind) + "(" + strings.Join(parts, ", ") + ")"
	case KindAll:
		return "all()"
	default:
		return string(r.Kind) + "(?)"
	}
}

// Rules maps category names to their derivation.
type Rules map[string]Rule

// DefaultRules returns the rule table for the shipped recipe data.
func DefaultRules() Rules {
	return Rules{
		"Bread":  Fixed("Bread"),
		"Meat":   Fixed("Meat"),
		"Leafy":  Fixed("Leafy"),
		"Pastry": Fixed("Pastry"),
		"Tomato": Fixed("Tomato"),
		"Bamboo": Fixed("Bamboo"),
		"Wrap":   Fixed("Wrap"),
		"Rice":   Fixed("Rice"),
		"Apple":  Fixed("Apple"),
		"Batter": Fixed("Batter"),
		"Pasta":  Fixed("Pasta"),
		"Cone":   Fixed("Bread"),
		"Base":   Fixed("Bread"),

		"Fruit":        Trait("Fruit"),
		"Vegetable":    Trait("Vegetable"),
		"Vegetables":   Trait("Vegetable"),
		"Sweet":        Trait("Sweet"),
		"Woody":        Trait("Woody"),
		"Sauce":        Trait("Fruit"),
		"Cream":        Trait("Sweet"),
		"Icing":        Trait("Sweet"),
		"Sprinkles":    Trait("Sweet"),
		"CandyCoating": Trait("Sweet"),
		"Sweetener":    Trait("Sweet"),
		"Stick":        Trait("Woody"),

		"HerbalBase": Union(Difference(Trait("Flower"), Trait("Toxic")), KnownItems("Mint")),
		"Filling":    Union(Trait("Vegetable"), Fixed("Meat")),
		"Main":       Union(Fixed("Meat"), Trait("Vegetable")),

		"Any": All(),
	}
}

// Names returns the category names, sorted.
func (rs Rules) Names() []string {
	names := make([]string, 0, len(rs))
	for n := range rs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks every rule and reports the first failure by name.
func (rs Rules) Validate() error {
	for _, name := range rs.Names() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("rule with empty category name")
		}
		if err := rs[name].Validate(); err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
	}
	return nil
}

// Merge returns a copy of rs with every rule in overrides replacing the
// rule of the same name.
func (rs Rules) Merge(overrides Rules) Rules {
	out := make(Rules, len(rs)+len(overrides))
	for n, r := range rs {
		out[n] = r
	}
	for n, r := range overrides {
		out[n] = r
	}
	return out
}

// TableRows lays the rules out as NAME/KIND/FORMULA rows.
func (rs Rules) TableRows() ([]string, [][]string) {
	rows := make([][]string, 0, len(rs))
	for _, n := range rs.Names() {
		r := rs[n]
		rows = append(rows, []string{n, string(r.Kind), r.String()})
	}
	return []string{"CATEGORY", "KIND", "FORMULA"}, rows
}
