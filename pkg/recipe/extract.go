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
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/mchmarny/larder/pkg/script"
)

// Record defects. A record with issues is kept in the registry so that
// consumers see it with empty ingredients instead of losing it.
const (
	IssueNoSlots  = "no ingredient slots"
	IssueNotTable = "registered value is not a table"
)

// Registry is the canonical set of recipes keyed by registry name, plus the
// registrations that could not be honored.
type Registry struct {
	Recipes map[string]*Record
	Skipped []script.SkippedRegistration
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{Recipes: map[string]*Record{}}
}

// Len returns the number of recipes.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Recipes)
}

// Names returns the recipe names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Recipes))
	for n := range r.Recipes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the named recipe.
func (r *Registry) Get(name string) (*Record, bool) {
	if r == nil {
		return nil, false
	}
	rec, ok := r.Recipes[name]
	return rec, ok
}

// Invalid returns the names of recipes that carry issues, sorted.
func (r *Registry) Invalid() []string {
	var out []string
	for _, n := range r.Names() {
		if !r.Recipes[n].Valid() {
			out = append(out, n)
		}
	}
	return out
}

// Extract projects every registry registration recorded during parsing into
// a Record. Registrations whose alias was unbound are carried over as skipped
// and never retried.
func Extract(b *script.Bindings) *Registry {
	reg := NewRegistry()
	for _, r := range b.Registrations {
		if _, dup := reg.Recipes[r.Name]; dup {
			slog.Warn("recipe registered more than once, keeping the last", "recipe", r.Name, "line", r.Line)
		}
		rec := project(r.Name, r.Value)
		for _, issue := range rec.Issues {
			slog.Warn("recipe defect", "recipe", r.Name, "line", r.Line, "issue", issue)
			recipeDefects.Inc()
		}
		reg.Recipes[r.Name] = rec
	}

	reg.Skipped = slices.Clone(b.Skipped)
	for _, s := range reg.Skipped {
		slog.Warn("recipe registration skipped",
			"recipe", s.Name, "alias", s.Alias, "line", s.Line, "reason", s.Reason)
	}

	recipesExtracted.Add(float64(reg.Len()))
	skippedRegistrations.Set(float64(len(reg.Skipped)))

	slog.Info("recipes extracted",
		"recipes", reg.Len(),
		"skipped", len(reg.Skipped),
		"invalid", len(reg.Invalid()),
	)
	return reg
}

func project(name string, v script.Value) *Record {
	rec := &Record{Name: name, Ingredients: map[string]Slot{}}
	if v.Kind() != script.KindMapping {
		rec.Issues = append(rec.Issues, IssueNotTable)
		return rec
	}

	rec.ID = text(v, "Id")
	rec.ImageID = text(v, "ImageId")
	rec.Priority = integer(v, "Priority")
	rec.BaseTime = integer(v, "BaseTime")
	rec.BaseWeight = decimal(v, "BaseWeight")
	rec.Count = integer(v, "Requires", "Count")
	rec.Description = fmt.Sprintf("Requires %d ingredients", rec.Count)

	if ing, ok := v.Path("Requires", "Ingredients"); ok {
		addSlots(rec, ing)
	} else if rec.Count == 1 {
		rec.Ingredients[AnySlot] = Slot{Category: AnySlot}
	}

	if rec.BaseTime < 0 {
		rec.Issues = append(rec.Issues, fmt.Sprintf("negative base_time %d", rec.BaseTime))
		rec.BaseTime = 0
	}
	if rec.BaseWeight < 0 {
		rec.Issues = append(rec.Issues, fmt.Sprintf("negative base_weight %g", rec.BaseWeight))
		rec.BaseWeight = 0
	}
	if len(rec.Ingredients) == 0 {
		rec.Issues = append(rec.Issues, IssueNoSlots)
	}
	return rec
}

func addSlots(rec *Record, ing script.Value) {
	switch ing.Kind() {
	case script.KindMapping:
		for _, name := range ing.Keys() {
			sv, _ := ing.Get(name)
			slot, issue := slotFrom(name, sv)
			rec.Ingredients[name] = slot
			if issue != "" {
				rec.Issues = append(rec.Issues, issue)
			}
		}
	case script.KindSequence:
		// A plain list names its categories directly.
		for _, name := range ing.StringSlice() {
			rec.Ingredients[name] = Slot{Category: name}
		}
	default:
		name := ing.Text()
		rec.Ingredients[name] = Slot{Category: name}
	}
}

func slotFrom(name string, v script.Value) (Slot, string) {
	switch v.Kind() {
	case script.KindString:
		s, _ := v.Str()
		if strings.TrimSpace(s) == "" {
			return Slot{Category: name}, ""
		}
		return Slot{Category: s}, ""
	case script.KindInt, script.KindReal:
		return Slot{Category: name}, ""
	case script.KindSequence:
		return Slot{Category: name, Items: v.StringSlice()}, ""
	default:
		return Slot{Category: name}, fmt.Sprintf("slot %s holds a table instead of items", name)
	}
}

func text(v script.Value, keys ...string) string {
	f, ok := v.Path(keys...)
	if !ok || !f.IsScalar() {
		return ""
	}
	return f.Text()
}

func integer(v script.Value, keys ...string) int {
	f, ok := v.Path(keys...)
	if !ok {
		return 0
	}
	if i, ok := f.Int(); ok {
		return int(i)
	}
	if r, ok := f.Float(); ok {
		return int(r)
	}
	if s, ok := f.Str(); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	return 0
}

// decimal always yields a float64, even for integer-looking source tokens.
func decimal(v script.Value, keys ...string) float64 {
	f, ok := v.Path(keys...)
	if !ok {
		return 0
	}
	if r, ok := f.Float(); ok {
		return r
	}
	if s, ok := f.Str(); ok {
		if r, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return r
		}
	}
	return 0
}
