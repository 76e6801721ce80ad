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
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/mchmarny/larder/pkg/availability"
	"github.com/mchmarny/larder/pkg/category"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/recipe"
	"github.com/mchmarny/larder/pkg/trait"
)

// LastUpdatedLayout is how Stats renders the last update time.
const LastUpdatedLayout = "01/02/2006 03:04:05 PM"

// Projection is a recipe as served to clients: display name applied,
// ingredient slots resolved to concrete items, combinations counted.
type Projection struct {
	Key            string              `json:"key" yaml:"key"`
	ID             string              `json:"id" yaml:"id"`
	Name           string              `json:"name" yaml:"name"`
	ImageID        string              `json:"image_id" yaml:"image_id"`
	Description    string              `json:"description,omitempty" yaml:"description,omitempty"`
	Ingredients    map[string][]string `json:"ingredients" yaml:"ingredients"`
	Results        []string            `json:"results" yaml:"results"`
	BaseTime       int                 `json:"base_time" yaml:"base_time"`
	BaseWeight     float64             `json:"base_weight" yaml:"base_weight"`
	Combinations   int64               `json:"combinations" yaml:"combinations"`
	Priority       int                 `json:"priority" yaml:"priority"`
	IsObtainable   bool                `json:"is_obtainable" yaml:"is_obtainable"`
	ShopObtainable bool                `json:"shop_obtainable" yaml:"shop_obtainable"`
	Issues         []string            `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// TableRows lists one row per ingredient slot.
func (p Projection) TableRows() ([]string, [][]string) {
	names := make([]string, 0, len(p.Ingredients))
	for n := range p.Ingredients {
		names = append(names, n)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		items := p.Ingredients[n]
		rows = append(rows, []string{n, strconv.Itoa(len(items)), strings.Join(items, ", ")})
	}
	return []string{"SLOT", "COUNT", "ITEMS"}, rows
}

// RecipeList is an ordered set of projections.
type RecipeList []Projection

// TableRows lists one row per recipe.
func (l RecipeList) TableRows() ([]string, [][]string) {
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(len(p.Ingredients)),
			strconv.FormatInt(p.Combinations, 10),
			strconv.Itoa(p.Priority),
			strconv.FormatBool(p.IsObtainable),
		})
	}
	return []string{"NAME", "SLOTS", "COMBINATIONS", "PRIORITY", "OBTAINABLE"}, rows
}

// Query selects which view of the recipes to return.
type Query struct {
	// ShopOnly keeps only recipes makeable from shop seeds, with every slot
	// narrowed to shop seeds.
	ShopOnly bool
}

// CategoryView is the resolution of a single category.
type CategoryView struct {
	Name        string   `json:"name" yaml:"name"`
	Known       bool     `json:"known" yaml:"known"`
	Rule        string   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Fixed       []string `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Items       []string `json:"items" yaml:"items"`
	Count       int      `json:"count" yaml:"count"`
	ShopOnly    bool     `json:"shop_only" yaml:"shop_only"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Stats summarizes the catalog.
type Stats struct {
	TotalRecipes         int    `json:"total_recipes" yaml:"total_recipes"`
	ShopOnlyRecipes      int    `json:"shop_only_recipes" yaml:"shop_only_recipes"`
	InvalidRecipes       int    `json:"invalid_recipes" yaml:"invalid_recipes"`
	SkippedRegistrations int    `json:"skipped_registrations" yaml:"skipped_registrations"`
	Categories           int    `json:"categories" yaml:"categories"`
	LastUpdated          string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Items is the raw item data behind the catalog.
type Items struct {
	ShopSeeds []string    `json:"shop_seeds" yaml:"shop_seeds"`
	Traits    trait.Table `json:"traits" yaml:"traits"`
}

// TableRows lists every item with its traits and shop availability.
func (it Items) TableRows() ([]string, [][]string) {
	shop := availability.NewSet(it.ShopSeeds...)
	seen := make(map[string]struct{}, len(it.Traits)+len(it.ShopSeeds))
	for item := range it.Traits {
		seen[item] = struct{}{}
	}
	for _, item := range it.ShopSeeds {
		seen[item] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n, strings.Join(it.Traits[n], ", "), strconv.FormatBool(shop.Contains(n))})
	}
	return []string{"ITEM", "TRAITS", "SHOP"}, rows
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithShopSeeds sets the items purchasable from the shop.
func WithShopSeeds(items ...string) Option {
	return func(c *Catalog) {
		c.seeds = slices.Clone(items)
		sort.Strings(c.seeds)
		c.shop = availability.NewSet(items...)
	}
}

// WithTraitTable sets the raw trait table returned by Items.
func WithTraitTable(t trait.Table) Option {
	return func(c *Catalog) {
		c.traits = t
	}
}

// WithDisplayNames replaces the display-name table.
func WithDisplayNames(d DisplayNames) Option {
	return func(c *Catalog) {
		if d != nil {
			c.names = d
		}
	}
}

// WithLastUpdated records when the registry was produced.
func WithLastUpdated(t time.Time) Option {
	return func(c *Catalog) {
		c.updated = t
	}
}

// WithSourcePath names the registry file whose modification time stands in
// for a missing last-updated time.
func WithSourcePath(path string) Option {
	return func(c *Catalog) {
		c.source = path
	}
}

// Catalog is the read-only query surface over a loaded recipe registry. It
// is built once and shared by every request.
type Catalog struct {
	registry *recipe.Registry
	resolver *category.Resolver
	shop     availability.Set
	seeds    []string
	traits   trait.Table
	names    DisplayNames
	updated  time.Time
	source   string

	all      RecipeList
	shopOnly RecipeList
	index    map[string]int
	shopIdx  map[string]int
	folded   map[string]string
}

// New builds a catalog and computes every projection up front.
func New(reg *recipe.Registry, res *category.Resolver, opts ...Option) *Catalog {
	if reg == nil {
		reg = recipe.NewRegistry()
	}
	if res == nil {
		res = category.NewResolver(nil, nil, nil)
	}
	c := &Catalog{
		registry: reg,
		resolver: res,
		shop:     availability.NewSet(),
		seeds:    []string{},
		traits:   trait.Table{},
		names:    DefaultDisplayNames(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.build()
	return c
}

func (c *Catalog) build() {
	c.all = make(RecipeList, 0, c.registry.Len())
	c.shopOnly = make(RecipeList, 0, c.registry.Len())
	c.folded = make(map[string]string, 2*c.registry.Len())

	for _, name := range c.registry.Names() {
		rec, _ := c.registry.Get(name)
		full, shop := c.project(name, rec)
		c.all = append(c.all, full)
		if shop != nil {
			c.shopOnly = append(c.shopOnly, *shop)
		}
		c.folded[fold(name)] = name
		c.folded[fold(full.Name)] = name
	}

	sortProjections(c.all)
	sortProjections(c.shopOnly)
	c.index = indexOf(c.all)
	c.shopIdx = indexOf(c.shopOnly)

	slog.Debug("catalog built",
		"recipes", len(c.all),
		"shop_only", len(c.shopOnly),
		"categories", len(c.resolver.Categories()),
	)
}

// project returns the unrestricted projection and, when the recipe can be
// made from shop seeds, the shop-only projection.
func (c *Catalog) project(name string, rec *recipe.Record) (Projection, *Projection) {
	resolved := make(map[string][]string, len(rec.Ingredients))
	for slot, s := range rec.Ingredients {
		resolved[slot] = c.resolveSlot(s)
	}

	full := availability.FilterAndCount(resolved, nil)
	inShop := availability.FilterAndCount(resolved, c.shop)

	display := c.names.Display(name)
	p := Projection{
		Key:            name,
		ID:             rec.ID,
		Name:           display,
		ImageID:        rec.ImageID,
		Description:    rec.Description,
		Ingredients:    full.Slots,
		Results:        []string{display},
		BaseTime:       rec.BaseTime,
		BaseWeight:     rec.BaseWeight,
		Combinations:   full.Combinations,
		Priority:       rec.Priority,
		IsObtainable:   full.Obtainable,
		ShopObtainable: inShop.Obtainable,
		Issues:         slices.Clone(rec.Issues),
	}
	if !inShop.Obtainable {
		return p, nil
	}

	shop := p
	shop.Ingredients = inShop.Slots
	shop.Results = []string{display}
	shop.Combinations = inShop.Combinations
	shop.IsObtainable = true
	return p, &shop
}

// resolveSlot returns the category's items plus any literal items, sorted.
// The result is a union: a literal list that was narrowed in the script (for
// example with SetSubtract) is widened back to the full category of the same
// name. Recipe data relies on this key-based resolution, so a literal list
// never replaces its category.
func (c *Catalog) resolveSlot(s recipe.Slot) []string {
	items := c.resolver.Resolve(s.Category)
	for _, it := range s.Items {
		if !slices.Contains(items, it) {
			items = append(items, it)
		}
	}
	sort.Strings(items)
	return items
}

// Recipes returns the recipes for the query, highest priority first.
func (c *Catalog) Recipes(q Query) RecipeList {
	src := c.all
	if q.ShopOnly {
		src = c.shopOnly
	}
	out := make(RecipeList, len(src))
	for i, p := range src {
		out[i] = cloneProjection(p)
	}
	return out
}

// Recipe returns one recipe by registry or display name, ignoring case.
func (c *Catalog) Recipe(name string, shopOnly bool) (Projection, error) {
	key, ok := c.lookup(name)
	if !ok {
		return Projection{}, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("recipe %q not found", name),
			map[string]any{"name": name, "suggestions": c.suggestRecipes(name)})
	}
	if !shopOnly {
		return cloneProjection(c.all[c.index[key]]), nil
	}
	i, ok := c.shopIdx[key]
	if !ok {
		return Projection{}, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("recipe %q cannot be made from shop seeds", name),
			map[string]any{"name": name})
	}
	return cloneProjection(c.shopOnly[i]), nil
}

func (c *Catalog) lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if _, ok := c.index[name]; ok {
		return name, true
	}
	key, ok := c.folded[fold(name)]
	return key, ok
}

// Category resolves a single category. Unknown names yield an empty view
// with suggestions rather than an error.
func (c *Catalog) Category(name string, shopOnly bool) CategoryView {
	name = strings.TrimSpace(name)
	canonical, known := c.categoryName(name)

	view := CategoryView{Name: canonical, Known: known, ShopOnly: shopOnly}
	if rule, ok := c.resolver.Rule(canonical); ok {
		view.Rule = rule.String()
	}
	if fixed, ok := c.resolver.Tables()[canonical]; ok && len(fixed) > 0 {
		view.Fixed = fixed
	}

	items := c.resolver.Resolve(canonical)
	if shopOnly {
		items = c.shop.Filter(items)
	}
	view.Items = items
	view.Count = len(items)
	if !known {
		view.Suggestions = c.suggestCategories(name)
	}
	return view
}

func (c *Catalog) categoryName(name string) (string, bool) {
	categories := c.resolver.Categories()
	if slices.Contains(categories, name) {
		return name, true
	}
	want := fold(name)
	for _, cat := range categories {
		if fold(cat) == want {
			return cat, true
		}
	}
	return name, false
}

// Categories returns every known category name, sorted.
func (c *Catalog) Categories() []string { return c.resolver.Categories() }

// Stats summarizes the catalog.
func (c *Catalog) Stats() Stats {
	return Stats{
		TotalRecipes:         len(c.all),
		ShopOnlyRecipes:      len(c.shopOnly),
		InvalidRecipes:       len(c.registry.Invalid()),
		SkippedRegistrations: len(c.registry.Skipped),
		Categories:           len(c.resolver.Categories()),
		LastUpdated:          c.lastUpdated(),
	}
}

func (c *Catalog) lastUpdated() string {
	if !c.updated.IsZero() {
		return c.updated.Local().Format(LastUpdatedLayout)
	}
	if c.source == "" {
		return ""
	}
	info, err := os.Stat(c.source)
	if err != nil {
		slog.Debug("no registry modification time", "path", c.source, "error", err)
		return ""
	}
	return info.ModTime().Local().Format(LastUpdatedLayout)
}

// Items returns the shop seeds and the trait table.
func (c *Catalog) Items() Items {
	traits := make(trait.Table, len(c.traits))
	for k, v := range c.traits {
		traits[k] = slices.Clone(v)
	}
	return Items{ShopSeeds: slices.Clone(c.seeds), Traits: traits}
}

// Skipped returns the registrations dropped during extraction.
func (c *Catalog) Skipped() []string {
	out := make([]string, 0, len(c.registry.Skipped))
	for _, s := range c.registry.Skipped {
		out = append(out, s.Name)
	}
	sort.Strings(out)
	return out
}

func sortProjections(l RecipeList) {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Priority != l[j].Priority {
			return l[i].Priority > l[j].Priority
		}
		return l[i].Name < l[j].Name
	})
}

func indexOf(l RecipeList) map[string]int {
	out := make(map[string]int, len(l))
	for i, p := range l {
		out[p.Key] = i
	}
	return out
}

func cloneProjection(p Projection) Projection {
	ing := make(map[string][]string, len(p.Ingredients))
	for k, v := range p.Ingredients {
		ing[k] = slices.Clone(v)
	}
	p.Ingredients = ing
	p.Results = slices.Clone(p.Results)
	p.Issues = slices.Clone(p.Issues)
	return p
}

// fold normalizes a name for case-insensitive lookup. A Caser holds state,
// so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
