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
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mchmarny/larder/pkg/trait"
)

// Resolver turns category names into concrete item sets. It is built once
// from static inputs and is safe for concurrent use.
type Resolver struct {
	traits *trait.Index
	tables Tables
	rules  Rules

	// name -> []string; entries are written once and never mutated.
	cache sync.Map
}

// NewResolver returns a resolver over the trait index, the fixed tables and
// the rule table. A nil rules value selects DefaultRules. The inputs are
// copied so later changes by the caller do not leak into cached results.
func NewResolver(traits *trait.Index, tables Tables, rules Rules) *Resolver {
	if traits == nil {
		traits = trait.NewIndex(nil)
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Resolver{
		traits: traits,
		tables: tables.Clone(),
		rules:  rules.Merge(nil),
	}
}

// Resolve returns the sorted items the category denotes. Unknown categories
// resolve to an empty set. The result always includes the fixed table of the
// same name, and callers own the returned slice.
func (r *Resolver) Resolve(name string) []string {
	if cached, ok := r.cache.Load(name); ok {
		cacheHits.Inc()
		slog.Debug("category cache hit", "category", name)
		return cloneItems(cached.([]string))
	}
	cacheMisses.Inc()

	start := time.Now()
	items := r.resolve(name, map[string]bool{})
	resolveDuration.Observe(time.Since(start).Seconds())

	// A racing goroutine computes the same value, so either store wins.
	actual, _ := r.cache.LoadOrStore(name, items)
	return cloneItems(actual.([]string))
}

// ResolveTrait returns the sorted items carrying the trait.
func (r *Resolver) ResolveTrait(name string) []string {
	return r.traits.Items(name)
}

// Rule returns the rule registered for the category.
func (r *Resolver) Rule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Rules returns a copy of the rule table.
func (r *Resolver) Rules() Rules { return r.rules.Merge(nil) }

// Tables returns a copy of the fixed tables.
func (r *Resolver) Tables() Tables { return r.tables.Clone() }

// Traits returns the trait index the resolver reads.
func (r *Resolver) Traits() *trait.Index { return r.traits }

// Categories returns every name that has a rule or a fixed table, sorted.
func (r *Resolver) Categories() []string {
	seen := make(map[string]struct{}, len(r.rules)+len(r.tables))
	for n := range r.rules {
		seen[n] = struct{}{}
	}
	for n := range r.tables {
		seen[n] = struct{}{}
	}
	return sortedKeys(seen)
}

func (r *Resolver) resolve(name string, visiting map[string]bool) []string {
	set := make(map[string]struct{})
	if rule, ok := r.rules[name]; ok {
		visiting[name] = true
		r.eval(rule, set, visiting)
		delete(visiting, name)
	}
	for _, item := range r.tables[name] {
		set[item] = struct{}{}
	}
	return sortedKeys(set)
}

func (r *Resolver) eval(rule Rule, into map[string]struct{}, visiting map[string]bool) {
	switch rule.Kind {
	case KindFixed:
		for _, item := range r.tables[rule.Table] {
			into[item] = struct{}{}
		}
	case KindTrait:
		for _, item := range r.traits.Items(rule.Trait) {
			into[item] = struct{}{}
		}
	case KindItems:
		for _, item := range rule.Items {
			if rule.Known && !r.traits.Contains(item) {
				continue
			}
			into[item] = struct{}{}
		}
	case KindRef:
		if visiting[rule.Ref] {
			slog.Warn("category reference cycle, resolving to empty", "category", rule.Ref)
			return
		}
		for _, item := range r.resolve(rule.Ref, visiting) {
			into[item] = struct{}{}
		}
	case KindUnion:
		for _, op := range rule.Operands {
			r.eval(op, into, visiting)
		}
	case KindDifference:
		if len(rule.Operands) == 0 {
			return
		}
		base := make(map[string]struct{})
		r.eval(rule.Operands[0], base, visiting)
		for _, op := range rule.Operands[1:] {
			minus := make(map[string]struct{})
			r.eval(op, minus, visiting)
			for item := range minus {
				delete(base, item)
			}
		}
		for item := range base {
			into[item] = struct{}{}
		}
	case KindAll:
		for _, item := range r.traits.AllItems() {
			into[item] = struct{}{}
		}
	default:
		slog.Warn("unknown category rule kind", "kind", rule.Kind)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func cloneItems(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
