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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/larder/pkg/category"
	"github.com/mchmarny/larder/pkg/errors"
	"github.com/mchmarny/larder/pkg/recipe"
	"github.com/mchmarny/larder/pkg/script"
	"github.com/mchmarny/larder/pkg/trait"
)

func testTraits() trait.Table {
	return trait.Table{
		"Carrot": {"Vegetable"},
		"Corn":   {"Vegetable"},
		"Apple":  {"Fruit", "Sweet"},
		"Banana": {"Fruit", "Sweet"},
	}
}

func testRegistry() *recipe.Registry {
	reg := recipe.NewRegistry()
	reg.Recipes["HotDog"] = &recipe.Record{
		Name:     "HotDog",
		ID:       "hot-dog",
		Priority: 2,
		Ingredients: map[string]recipe.Slot{
			"Bread": {Category: "Bread"},
			"Main":  {Category: "Main"},
		},
		BaseTime:   30,
		BaseWeight: 1.5,
	}
	reg.Recipes["Salad"] = &recipe.Record{
		Name:        "Salad",
		Priority:    1,
		Ingredients: map[string]recipe.Slot{"Fruit": {Category: "Fruit"}},
	}
	reg.Recipes["Grill"] = &recipe.Record{
		Name:        "Grill",
		Priority:    1,
		Ingredients: map[string]recipe.Slot{"Meat": {Category: "Meat"}},
	}
	reg.Recipes["Broken"] = &recipe.Record{
		Name:        "Broken",
		Ingredients: map[string]recipe.Slot{},
		Issues:      []string{recipe.IssueNoSlots},
	}
	reg.Recipes["Mixed"] = &recipe.Record{
		Name: "Mixed",
		Ingredients: map[string]recipe.Slot{
			"Filling": {Category: "Vegetable", Items: []string{"Truffle", "Carrot"}},
		},
	}
	reg.Skipped = []script.SkippedRegistration{{Name: "Pie", Alias: "v99", Line: 42}}
	return reg
}

func testCatalog(opts ...Option) *Catalog {
	traits := testTraits()
	tables := category.Synthesize(map[string][]string{
		"Bread": {"Loaf", "Bun"},
		"Meat":  {"Steak", "Bacon"},
	})
	res := category.NewResolver(trait.NewIndex(traits), tables, category.DefaultRules())
	base := []Option{
		WithShopSeeds("Carrot", "Apple", "Bun"),
		WithTraitTable(traits),
	}
	return New(testRegistry(), res, append(base, opts...)...)
}

func names(l RecipeList) []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, p.Name)
	}
	return out
}

func TestRecipes(t *testing.T) {
	c := testCatalog()

	all := c.Recipes(Query{})
	assert.Equal(t, []string{"Hot Dog", "Grill", "Salad", "Broken", "Mixed"}, names(all))

	hot := all[0]
	assert.Equal(t, "HotDog", hot.Key)
	assert.Equal(t, []string{"Hot Dog"}, hot.Results)
	assert.Equal(t, []string{"Bun", "Loaf"}, hot.Ingredients["Bread"])
	assert.Equal(t, []string{"Bacon", "Carrot", "Corn", "Steak"}, hot.Ingredients["Main"])
	assert.Equal(t, int64(8), hot.Combinations)
	assert.True(t, hot.IsObtainable)
	assert.True(t, hot.ShopObtainable)
	assert.Equal(t, 30, hot.BaseTime)
	assert.InDelta(t, 1.5, hot.BaseWeight, 0.0001)

	broken := all[3]
	assert.Empty(t, broken.Ingredients)
	assert.Equal(t, int64(0), broken.Combinations)
	assert.False(t, broken.IsObtainable)
	assert.Equal(t, []string{recipe.IssueNoSlots}, broken.Issues)

	mixed := all[4]
	assert.Equal(t, []string{"Carrot", "Corn", "Truffle"}, mixed.Ingredients["Filling"])
	assert.Equal(t, int64(3), mixed.Combinations)
}

func TestSlotLiteralItemsDoNotNarrowCategory(t *testing.T) {
	reg := recipe.NewRegistry()
	reg.Recipes["FruitSalad"] = &recipe.Record{
		Name: "FruitSalad",
		Ingredients: map[string]recipe.Slot{
			"Fruit": {Category: "Fruit", Items: []string{"Banana"}},
		},
	}
	res := category.NewResolver(trait.NewIndex(testTraits()), category.Tables{}, category.DefaultRules())
	c := New(reg, res, WithTraitTable(testTraits()))

	p, err := c.Recipe("FruitSalad", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana"}, p.Ingredients["Fruit"])
	assert.Equal(t, int64(2), p.Combinations)
}

func TestRecipesShopOnly(t *testing.T) {
	c := testCatalog()

	shop := c.Recipes(Query{ShopOnly: true})
	assert.Equal(t, []string{"Hot Dog", "Salad", "Mixed"}, names(shop))

	hot := shop[0]
	assert.Equal(t, map[string][]string{"Bread": {"Bun"}, "Main": {"Carrot"}}, hot.Ingredients)
	assert.Equal(t, int64(1), hot.Combinations)
	assert.True(t, hot.IsObtainable)
}

func TestRecipesReturnsCopies(t *testing.T) {
	c := testCatalog()
	first := c.Recipes(Query{})
	first[0].Ingredients["Bread"][0] = "mutated"
	first[0].Name = "mutated"

	again := c.Recipes(Query{})
	assert.Equal(t, "Hot Dog", again[0].Name)
	assert.Equal(t, []string{"Bun", "Loaf"}, again[0].Ingredients["Bread"])
}

func TestRecipe(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name     string
		query    string
		shopOnly bool
		wantKey  string
		wantErr  bool
	}{
		{"exact", "HotDog", false, "HotDog", false},
		{"folded", "hotdog", false, "HotDog", false},
		{"display name", "hot dog", false, "HotDog", false},
		{"padded", "  Salad ", false, "Salad", false},
		{"shop only", "Salad", true, "Salad", false},
		{"not in shop", "Grill", true, "", true},
		{"unknown", "Pizza", false, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := c.Recipe(tt.query, tt.shopOnly)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, p.Key)
		})
	}
}

func TestRecipeSuggestions(t *testing.T) {
	c := testCatalog()
	_, err := c.Recipe("Salda", false)
	require.Error(t, err)

	se, ok := err.(*errors.StructuredError)
	require.True(t, ok)
	assert.Equal(t, []string{"Salad"}, se.Context["suggestions"])
}

func TestCategory(t *testing.T) {
	c := testCatalog()

	main := c.Category("main", false)
	assert.Equal(t, "Main", main.Name)
	assert.True(t, main.Known)
	assert.Equal(t, "union(fixed(Meat), trait(Vegetable))", main.Rule)
	assert.Equal(t, []string{"Bacon", "Carrot", "Corn", "Steak"}, main.Items)
	assert.Equal(t, 4, main.Count)
	assert.Empty(t, main.Fixed)

	bread := c.Category("Bread", true)
	assert.Equal(t, []string{"Bun"}, bread.Items)
	assert.Equal(t, []string{"Loaf", "Bun"}, bread.Fixed)
	assert.True(t, bread.ShopOnly)

	unknown := c.Category("Breadd", false)
	assert.False(t, unknown.Known)
	assert.Empty(t, unknown.Items)
	assert.NotNil(t, unknown.Items)
	assert.Contains(t, unknown.Suggestions, "Bread")
}

func TestStats(t *testing.T) {
	ts := time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)
	c := testCatalog(WithLastUpdated(ts))

	s := c.Stats()
	assert.Equal(t, 5, s.TotalRecipes)
	assert.Equal(t, 3, s.ShopOnlyRecipes)
	assert.Equal(t, 1, s.InvalidRecipes)
	assert.Equal(t, 1, s.SkippedRegistrations)
	assert.Equal(t, len(c.Categories()), s.Categories)
	assert.Equal(t, "01/02/2025 03:04:05 PM", s.LastUpdated)
	assert.Equal(t, []string{"Pie"}, c.Skipped())
}

func TestStatsModTimeFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	assert.NotEmpty(t, testCatalog(WithSourcePath(path)).Stats().LastUpdated)
	assert.Empty(t, testCatalog(WithSourcePath(path+".missing")).Stats().LastUpdated)
	assert.Empty(t, testCatalog().Stats().LastUpdated)
}

func TestItems(t *testing.T) {
	c := testCatalog()
	items := c.Items()
	assert.Equal(t, []string{"Apple", "Bun", "Carrot"}, items.ShopSeeds)
	assert.Equal(t, testTraits(), items.Traits)

	cols, rows := items.TableRows()
	assert.Equal(t, []string{"ITEM", "TRAITS", "SHOP"}, cols)
	assert.Len(t, rows, 5)
}

func TestEmptyCatalog(t *testing.T) {
	c := New(nil, nil)
	assert.Empty(t, c.Recipes(Query{}))
	assert.Equal(t, 0, c.Stats().TotalRecipes)
	assert.NotNil(t, c.Items().ShopSeeds)
}

func TestDisplayNames(t *testing.T) {
	d := DefaultDisplayNames()
	assert.Equal(t, "Corn Dog", d.Display("Corndog"))
	assert.Equal(t, "Soup", d.Display("Soup"))

	merged := d.Merge(DisplayNames{"Soup": "Hearty Soup"})
	assert.Equal(t, "Hearty Soup", merged.Display("Soup"))
	assert.Equal(t, "Soup", d.Display("Soup"))

	path := filepath.Join(t.TempDir(), "display_names.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Grill: Mixed Grill\n"), 0o600))
	loaded, err := LoadDisplayNames(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Mixed Grill", loaded.Display("Grill"))
	assert.Equal(t, "Hot Dog", loaded.Display("HotDog"))

	c := testCatalog(WithDisplayNames(loaded))
	p, err := c.Recipe("mixed grill", false)
	require.NoError(t, err)
	assert.Equal(t, "Grill", p.Key)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Bread", "Meat", "Pastry", "Sweet", "Sweetener"}
	tests := []struct {
		in   string
		want []string
	}{
		{"bred", []string{"Bread"}},
		{"swet", []string{"Sweet"}},
		{"", nil},
		{"zzzzzzzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.in, candidates))
		})
	}
}

func testMux(c *Catalog) *http.ServeMux {
	mux := http.NewServeMux()
	for pattern, h := range c.Handlers() {
		mux.HandleFunc(pattern, h)
	}
	return mux
}

func TestHandlers(t *testing.T) {
	mux := testMux(testCatalog())

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"recipes", http.MethodGet, "/v1/recipes", http.StatusOK},
		{"recipes shop only", http.MethodGet, "/v1/recipes?shop_only=true", http.StatusOK},
		{"recipes bad flag", http.MethodGet, "/v1/recipes?shop_only=maybe", http.StatusBadRequest},
		{"recipes post", http.MethodPost, "/v1/recipes", http.StatusMethodNotAllowed},
		{"recipe", http.MethodGet, "/v1/recipes/hotdog", http.StatusOK},
		{"recipe missing", http.MethodGet, "/v1/recipes/pizza", http.StatusNotFound},
		{"recipe not in shop", http.MethodGet, "/v1/recipes/Grill?shop_only=1", http.StatusNotFound},
		{"category", http.MethodGet, "/v1/categories/Main", http.StatusOK},
		{"unknown category", http.MethodGet, "/v1/categories/Nope", http.StatusOK},
		{"stats", http.MethodGet, "/v1/stats", http.StatusOK},
		{"items", http.MethodGet, "/v1/items", http.StatusOK},
		{"items delete", http.MethodDelete, "/v1/items", http.StatusMethodNotAllowed},
		{"recipes head", http.MethodHead, "/v1/recipes", http.StatusOK},
		{"stats head", http.MethodHead, "/v1/stats", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusMethodNotAllowed {
				assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
			}
		})
	}
}

func TestHandleRecipesBody(t *testing.T) {
	mux := testMux(testCatalog())
	req := httptest.NewRequest(http.MethodGet, "/v1/recipes?shop_only=true", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Hot Dog", got[0]["name"])
	assert.Equal(t, float64(1), got[0]["combinations"])
	assert.Equal(t, true, got[0]["is_obtainable"])
}
