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

package script

import (
	"slices"
	"sort"
)

// Registration records "<registry>.<Name> = <alias>" as it was seen. Value is
// the alias binding at that line; later mutation of the alias is not visible.
type Registration struct {
	Name  string
	Alias string
	Line  int
	Value Value
}

// SkippedRegistration is a registry entry whose alias was not bound when the
// registration line was reached.
type SkippedRegistration struct {
	Name   string `json:"name" yaml:"name"`
	Alias  string `json:"alias" yaml:"alias"`
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

// Bindings is the result of one parse pass: every top-level alias binding in
// declaration order plus the registry hooks and non-fatal findings.
type Bindings struct {
	vars  map[string]Value
	order []string

	Dialect       Dialect
	Registrations []Registration
	Skipped       []SkippedRegistration
	Diagnostics   []Diagnostic
}

func newBindings(d Dialect) *Bindings {
	return &Bindings{vars: map[string]Value{}, Dialect: d}
}

func (b *Bindings) bind(alias string, v Value) {
	if _, exists := b.vars[alias]; !exists {
		b.order = append(b.order, alias)
	}
	b.vars[alias] = v
}

// Lookup returns a copy of the value bound to alias.
func (b *Bindings) Lookup(alias string) (Value, bool) {
	v, ok := b.vars[alias]
	if !ok {
		return Value{}, false
	}
	return v.Clone(), true
}

// Has reports whether alias is bound.
func (b *Bindings) Has(alias string) bool {
	_, ok := b.vars[alias]
	return ok
}

// Names returns the bound aliases in declaration order.
func (b *Bindings) Names() []string { return slices.Clone(b.order) }

// Len returns the number of bound aliases.
func (b *Bindings) Len() int { return len(b.vars) }

// Sequences returns the string lists bound to the given aliases, keyed by the
// mapped name. Aliases that are unbound or not sequences are left out.
func (b *Bindings) Sequences(aliases map[string]string) map[string][]string {
	out := make(map[string][]string, len(aliases))
	for alias, name := range aliases {
		v, ok := b.vars[alias]
		if !ok || v.Kind() != KindSequence {
			continue
		}
		items := v.StringSlice()
		if items == nil {
			items = []string{}
		}
		out[name] = items
	}
	return out
}

// Export converts every binding to plain Go values, for dumping.
func (b *Bindings) Export() map[string]any {
	out := make(map[string]any, len(b.vars))
	for k, v := range b.vars {
		out[k] = v.Interface()
	}
	return out
}

// SkippedNames returns the names of skipped registrations, sorted.
func (b *Bindings) SkippedNames() []string {
	out := make([]string, 0, len(b.Skipped))
	for _, s := range b.Skipped {
		out = append(out, s.Name)
	}
	sort.Strings(out)
	return out
}
